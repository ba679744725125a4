// Package catalog is the registry of named report queries and insert forms.
//
// Every entry declares typed parameters, a result shape and a handler. Callers
// pass raw string arguments; the entry parses them per parameter kind and the
// handler binds them as $n placeholders. No argument is ever spliced into SQL.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vvka-141/ecomadmin/internal/schema"
	"github.com/vvka-141/ecomadmin/pkg/ecomadmin"
)

// Group is the page section an entry is listed under.
type Group string

const (
	GroupBasic      Group = "basic"
	GroupAnalytics  Group = "analytics"
	GroupManagement Group = "management"
)

// Shape tells the renderer how to present a Result.
type Shape int

const (
	ShapeTable Shape = iota
	ShapeMetrics
	ShapeInsert
)

func (s Shape) String() string {
	switch s {
	case ShapeTable:
		return "table"
	case ShapeMetrics:
		return "metrics"
	case ShapeInsert:
		return "insert"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// ParamKind is the type a raw argument is parsed into.
type ParamKind int

const (
	ParamInt      ParamKind = iota // int64
	ParamText                      // string
	ParamFraction                  // decimal.Decimal in [0,1]
)

func (k ParamKind) String() string {
	switch k {
	case ParamInt:
		return "int"
	case ParamText:
		return "text"
	case ParamFraction:
		return "fraction"
	default:
		return fmt.Sprintf("ParamKind(%d)", int(k))
	}
}

// Param is one declared argument of an entry.
type Param struct {
	Name     string
	Label    string
	Kind     ParamKind
	Optional bool
}

// Args holds parsed arguments keyed by parameter name. Absent optional
// parameters are present with a nil value.
type Args map[string]any

func (a Args) Int(name string) (int64, bool) {
	v, ok := a[name].(int64)
	return v, ok
}

func (a Args) Text(name string) string {
	v, _ := a[name].(string)
	return v
}

func (a Args) Fraction(name string) decimal.Decimal {
	v, _ := a[name].(decimal.Decimal)
	return v
}

// Handler executes an entry with parsed arguments.
type Handler func(ctx context.Context, conn ecomadmin.DBConn, args Args) (*Result, error)

// Entry is one catalog page.
type Entry struct {
	Name        string
	Title       string
	Group       Group
	Description string
	Params      []Param
	Shape       Shape
	Handler     Handler
}

// Row maps column name to value.
type Row map[string]any

// Metric is a single named scalar.
type Metric struct {
	Name  string
	Label string
	Value any
}

// Result is what every entry returns. Only the fields matching Shape are set.
// An empty Rows slice means no matching rows, not an error.
type Result struct {
	Entry      string
	Shape      Shape
	Columns    []string
	Rows       []Row
	Metrics    []Metric
	InsertedID int64
}

// Catalog is a name-indexed set of entries.
type Catalog struct {
	entries []*Entry
	byName  map[string]*Entry
}

// New returns a catalog holding every built-in entry.
func New() *Catalog {
	c := &Catalog{byName: map[string]*Entry{}}
	for _, e := range builtinEntries() {
		if err := c.Register(e); err != nil {
			panic(err)
		}
	}
	return c
}

// Register adds an entry. Names must be unique and every entry needs a handler.
func (c *Catalog) Register(e *Entry) error {
	if e == nil || e.Name == "" || e.Handler == nil {
		return fmt.Errorf("catalog entry needs a name and a handler: %w", ecomadmin.ErrInvalidConfig)
	}
	if _, dup := c.byName[e.Name]; dup {
		return fmt.Errorf("catalog entry %q registered twice: %w", e.Name, ecomadmin.ErrInvalidConfig)
	}
	c.entries = append(c.entries, e)
	c.byName[e.Name] = e
	return nil
}

// Lookup finds an entry by name.
func (c *Catalog) Lookup(name string) (*Entry, error) {
	e, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q (run 'ecomadmin query list' to see entries)", ecomadmin.ErrUnknownQuery, name)
	}
	return e, nil
}

// Entries returns entries in registration order.
func (c *Catalog) Entries() []*Entry {
	return append([]*Entry(nil), c.entries...)
}

// ByGroup returns entries of one group in registration order.
func (c *Catalog) ByGroup(g Group) []*Entry {
	var out []*Entry
	for _, e := range c.entries {
		if e.Group == g {
			out = append(out, e)
		}
	}
	return out
}

// Run looks up name, parses raw and executes the entry.
func (c *Catalog) Run(ctx context.Context, conn ecomadmin.DBConn, name string, raw map[string]string) (*Result, error) {
	e, err := c.Lookup(name)
	if err != nil {
		return nil, err
	}
	return e.Run(ctx, conn, raw)
}

// Run parses raw and executes the entry.
func (e *Entry) Run(ctx context.Context, conn ecomadmin.DBConn, raw map[string]string) (*Result, error) {
	args, err := e.ParseArgs(raw)
	if err != nil {
		return nil, err
	}
	result, err := e.Handler(ctx, conn, args)
	if err != nil {
		return nil, err
	}
	result.Entry = e.Name
	result.Shape = e.Shape
	return result, nil
}

// ParseArgs converts raw strings into typed arguments. All problems are
// reported together as joined *ecomadmin.ValidationError values.
func (e *Entry) ParseArgs(raw map[string]string) (Args, error) {
	args := make(Args, len(e.Params))
	var errs []error

	declared := make(map[string]bool, len(e.Params))
	for _, p := range e.Params {
		declared[p.Name] = true

		value, present := raw[p.Name]
		if p.Kind != ParamText {
			value = strings.TrimSpace(value)
		}
		if !present || (value == "" && p.Kind != ParamText) {
			if !p.Optional {
				errs = append(errs, &ecomadmin.ValidationError{Entity: e.Name, Column: p.Name, Reason: "is required"})
			}
			args[p.Name] = nil
			continue
		}

		v, reason := parseParam(p.Kind, value)
		if reason != "" {
			errs = append(errs, &ecomadmin.ValidationError{Entity: e.Name, Column: p.Name, Value: value, Reason: reason})
			continue
		}
		args[p.Name] = v
	}

	var unknown []string
	for name := range raw {
		if !declared[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		errs = append(errs, &ecomadmin.ValidationError{Entity: e.Name, Column: name, Reason: "is not a parameter of this query"})
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return args, nil
}

// Check validates one raw value for p the way ParseArgs would, so forms can
// report problems per field. An empty value is only an error when required.
func (p Param) Check(raw string) error {
	value := raw
	if p.Kind != ParamText {
		value = strings.TrimSpace(raw)
	}
	if value == "" {
		if p.Optional || p.Kind == ParamText {
			return nil
		}
		return &ecomadmin.ValidationError{Column: p.Name, Reason: "is required"}
	}
	if _, reason := parseParam(p.Kind, value); reason != "" {
		return &ecomadmin.ValidationError{Column: p.Name, Value: value, Reason: reason}
	}
	return nil
}

func parseParam(kind ParamKind, value string) (any, string) {
	switch kind {
	case ParamInt:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, "not an integer"
		}
		return n, ""
	case ParamFraction:
		d, reason := schema.ParseFraction(value)
		if reason != "" {
			return nil, reason
		}
		return d, ""
	case ParamText:
		return value, ""
	default:
		return nil, fmt.Sprintf("unsupported parameter kind %s", kind)
	}
}
