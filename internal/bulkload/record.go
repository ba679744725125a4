package bulkload

import (
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/vvka-141/ecomadmin/internal/schema"
	"github.com/vvka-141/ecomadmin/pkg/ecomadmin"
)

// record is one coerced row ready to bind, values in declared column order.
type record struct {
	row    int
	values []any
}

// buildRecords coerces every row of table. Rows missing a required field are
// counted as skipped; rows with a bad field are rejected with the first failure.
func buildRecords(entity *schema.Entity, table *sourceTable, loadTime time.Time) ([]record, int, []*ecomadmin.ValidationError) {
	records := make([]record, 0, len(table.rows))
	rejected := append([]*ecomadmin.ValidationError(nil), table.unreadable...)
	skipped := 0

rows:
	for _, row := range table.rows {
		for _, col := range entity.Columns {
			if col.Required && table.field(row, col.Name) == "" {
				skipped++
				continue rows
			}
		}

		values := make([]any, len(entity.Columns))
		for i, col := range entity.Columns {
			raw := table.field(row, col.Name)
			v, reason := coerceField(col, raw, loadTime)
			if reason != "" {
				rejected = append(rejected, &ecomadmin.ValidationError{
					Entity: entity.Name,
					Row:    row.index,
					Column: col.Name,
					Value:  preview(raw, ecomadmin.MaxErrorPreviewLength),
					Reason: reason,
				})
				continue rows
			}
			values[i] = v
		}
		records = append(records, record{row: row.index, values: values})
	}
	return records, skipped, rejected
}

func insertStatement(entity *schema.Entity) string {
	columns := make([]string, len(entity.Columns))
	placeholders := make([]string, len(entity.Columns))
	for i, c := range entity.Columns {
		columns[i] = pgx.Identifier{c.Name}.Sanitize()
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		pgx.Identifier{entity.Table}.Sanitize(),
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "))
}

// sequenceStatement moves the identity sequence past the highest loaded id.
// It takes the sanitized table name and the id column as $1 and $2.
func sequenceStatement(entity *schema.Entity) string {
	return fmt.Sprintf("SELECT setval(pg_get_serial_sequence($1, $2), max(%s)) FROM %s",
		pgx.Identifier{entity.IDName}.Sanitize(),
		pgx.Identifier{entity.Table}.Sanitize())
}
