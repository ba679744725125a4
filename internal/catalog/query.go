package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/vvka-141/ecomadmin/pkg/ecomadmin"
)

// queryRows runs sql and collects every row keyed by result column name.
func queryRows(ctx context.Context, conn ecomadmin.DBConn, sql string, args ...any) ([]string, []Row, error) {
	rows, err := conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = f.Name
	}

	result := make([]Row, 0)
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, nil, err
		}
		row := make(Row, len(columns))
		for i, col := range columns {
			row[col] = normalize(values[i])
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return columns, result, nil
}

// normalize turns driver-specific values into plain Go values for rendering.
func normalize(v any) any {
	switch n := v.(type) {
	case pgtype.Numeric:
		if !n.Valid {
			return nil
		}
		if n.NaN || n.InfinityModifier != pgtype.Finite {
			s, _ := n.Value()
			return s
		}
		return decimal.NewFromBigInt(n.Int, n.Exp)
	case int32:
		return int64(n)
	case int16:
		return int64(n)
	default:
		return v
	}
}

// tableQuery builds a handler that binds the named parameters, in order, as
// $1..$n and returns every row.
func tableQuery(sql string, bind ...string) Handler {
	return func(ctx context.Context, conn ecomadmin.DBConn, args Args) (*Result, error) {
		columns, rows, err := queryRows(ctx, conn, sql, bound(args, bind)...)
		if err != nil {
			return nil, fmt.Errorf("query failed: %w", err)
		}
		return &Result{Columns: columns, Rows: rows}, nil
	}
}

// metricsQuery builds a handler for a single-row query whose columns are
// reported as metrics, labelled in column order.
func metricsQuery(sql string, labels map[string]string, bind ...string) Handler {
	return func(ctx context.Context, conn ecomadmin.DBConn, args Args) (*Result, error) {
		columns, rows, err := queryRows(ctx, conn, sql, bound(args, bind)...)
		if err != nil {
			return nil, fmt.Errorf("query failed: %w", err)
		}
		result := &Result{Columns: columns}
		if len(rows) == 0 {
			return result, nil
		}
		for _, col := range columns {
			label := labels[col]
			if label == "" {
				label = col
			}
			result.Metrics = append(result.Metrics, Metric{Name: col, Label: label, Value: rows[0][col]})
		}
		return result, nil
	}
}

// searchQuery is tableQuery for substring search: the term parameter is
// escaped and wrapped for ILIKE ... ESCAPE '\'.
func searchQuery(sql, term string) Handler {
	inner := tableQuery(sql, term)
	return func(ctx context.Context, conn ecomadmin.DBConn, args Args) (*Result, error) {
		patterned := make(Args, len(args))
		for k, v := range args {
			patterned[k] = v
		}
		patterned[term] = containsPattern(args.Text(term))
		return inner(ctx, conn, patterned)
	}
}

func bound(args Args, names []string) []any {
	out := make([]any, len(names))
	for i, name := range names {
		out[i] = args[name]
	}
	return out
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern matches term literally anywhere in a value.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
