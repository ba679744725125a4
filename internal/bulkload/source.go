package bulkload

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/vvka-141/ecomadmin/internal/checksum"
	"github.com/vvka-141/ecomadmin/internal/files/filesystem"
	"github.com/vvka-141/ecomadmin/internal/schema"
	"github.com/vvka-141/ecomadmin/pkg/ecomadmin"
)

const utf8BOM = "\ufeff"

// sourceRow is one data row; index is 1-based and excludes the header.
type sourceRow struct {
	index  int
	fields []string
}

// sourceTable is a parsed CSV file. columns maps a declared column name to its
// position in the header; optional columns may be absent.
type sourceTable struct {
	columns    map[string]int
	rows       []sourceRow
	unreadable []*ecomadmin.ValidationError
	checksum   string
}

func (t *sourceTable) field(row sourceRow, column string) string {
	pos, ok := t.columns[column]
	if !ok || pos >= len(row.fields) {
		return ""
	}
	return strings.TrimSpace(row.fields[pos])
}

// readSource opens path and matches its header against the declared columns.
func readSource(fsys filesystem.FileSystemProvider, entity *schema.Entity, path string) (*sourceTable, error) {
	rc, err := fsys.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ecomadmin.ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	r := csv.NewReader(bytes.NewReader(content))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, &ecomadmin.SchemaMismatchError{Entity: entity.Name, Source: path, Missing: required(entity)}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}

	table := &sourceTable{
		columns:  make(map[string]int, len(header)),
		checksum: checksum.New().CalculateNormalized(content),
	}
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		name = strings.ToLower(strings.TrimSpace(name))
		if _, ok := entity.Column(name); ok {
			if _, dup := table.columns[name]; !dup {
				table.columns[name] = i
			}
		}
	}

	var missing []string
	for _, c := range entity.Columns {
		if _, ok := table.columns[c.Name]; !ok && !c.Optional {
			missing = append(missing, c.Name)
		}
	}
	if len(missing) > 0 {
		return nil, &ecomadmin.SchemaMismatchError{Entity: entity.Name, Source: path, Missing: missing}
	}

	for index := 1; ; index++ {
		fields, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			table.unreadable = append(table.unreadable, &ecomadmin.ValidationError{
				Entity: entity.Name,
				Row:    index,
				Reason: parseErr.Err.Error(),
			})
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		if isBlank(fields) {
			index--
			continue
		}
		table.rows = append(table.rows, sourceRow{index: index, fields: fields})
	}
	return table, nil
}

func required(entity *schema.Entity) []string {
	var names []string
	for _, c := range entity.Columns {
		if !c.Optional {
			names = append(names, c.Name)
		}
	}
	return names
}

func isBlank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
