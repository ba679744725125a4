// Package schema describes the e-commerce tables, their columns and the
// foreign-key graph that fixes the order in which they are loaded and cleared.
package schema

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vvka-141/ecomadmin/pkg/ecomadmin"
)

// Kind is the semantic type a source field is coerced to.
type Kind int

const (
	KindInt Kind = iota
	KindText
	KindFraction // decimal in [0,1], two places
	KindDate     // calendar date
	KindTimestamp
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "integer"
	case KindText:
		return "text"
	case KindFraction:
		return "fraction"
	case KindDate:
		return "date"
	case KindTimestamp:
		return "timestamp"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

var fractionMax = decimal.NewFromInt(1)

// ParseFraction parses a KindFraction value. It rounds to two places first
// and then requires the result to lie in [0,1]. A non-empty reason means the
// value was rejected.
func ParseFraction(raw string) (decimal.Decimal, string) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, "not a decimal number"
	}
	d = d.Round(2)
	if d.IsNegative() || d.GreaterThan(fractionMax) {
		return decimal.Decimal{}, "must be between 0 and 1"
	}
	return d, ""
}

// Column is one declared field of an entity.
type Column struct {
	Name string
	Kind Kind

	// Required fields must be non-empty; a row lacking one is skipped.
	Required bool

	// Optional columns may be absent from the source header altogether.
	Optional bool

	// References names the parent table of a foreign key.
	References string

	// Min is the inclusive lower bound for KindInt values, when HasMin is set.
	Min    int64
	HasMin bool
}

// Entity is one table and the shape of its records.
type Entity struct {
	Name    string // identifier used on the command line
	Table   string
	File    string // source file name inside a load directory
	IDName  string // identity column
	Columns []Column
}

// ColumnNames returns the declared column names in declaration order.
func (e *Entity) ColumnNames() []string {
	names := make([]string, len(e.Columns))
	for i, c := range e.Columns {
		names[i] = c.Name
	}
	return names
}

// Column returns the named column.
func (e *Entity) Column(name string) (Column, bool) {
	for _, c := range e.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Parents returns the tables this entity references, deduplicated, in column order.
func (e *Entity) Parents() []string {
	var parents []string
	seen := map[string]bool{}
	for _, c := range e.Columns {
		if c.References != "" && c.References != e.Table && !seen[c.References] {
			seen[c.References] = true
			parents = append(parents, c.References)
		}
	}
	return parents
}

func id(name string) Column {
	return Column{Name: name, Kind: KindInt, Required: true}
}

func ref(name, table string, required bool) Column {
	return Column{Name: name, Kind: KindInt, Required: required, References: table}
}

func text(name string, required bool) Column {
	return Column{Name: name, Kind: KindText, Required: required}
}

var (
	Customer = &Entity{
		Name: "customer", Table: "customer", File: "customer.csv", IDName: "customer_id",
		Columns: []Column{
			id("customer_id"),
			text("name", true),
			text("email", false),
			text("phone", false),
			text("bio", false),
		},
	}

	Address = &Entity{
		Name: "address", Table: "address", File: "address.csv", IDName: "address_id",
		Columns: []Column{
			id("address_id"),
			text("street", true),
			text("zip_code", true),
			text("city", true),
		},
	}

	Payment = &Entity{
		Name: "payment", Table: "payment", File: "payment.csv", IDName: "payment_id",
		Columns: []Column{
			id("payment_id"),
			text("card_number", true),
			text("cvv", true),
			{Name: "expiration_date", Kind: KindDate, Required: true},
		},
	}

	Category = &Entity{
		Name: "category", Table: "category", File: "category.csv", IDName: "category_id",
		Columns: []Column{
			id("category_id"),
			text("name", true),
		},
	}

	Vendor = &Entity{
		Name: "vendor", Table: "vendor", File: "vendor.csv", IDName: "vendor_id",
		Columns: []Column{
			id("vendor_id"),
			text("name", true),
			text("hotline", false),
			text("description", false),
		},
	}

	Profile = &Entity{
		Name: "profile", Table: "profile", File: "profile.csv", IDName: "profile_id",
		Columns: []Column{
			id("profile_id"),
			ref("customer_id", "customer", true),
			ref("primary_address_id", "address", false),
			ref("primary_payment_id", "payment", false),
		},
	}

	Product = &Entity{
		Name: "product", Table: "product", File: "product.csv", IDName: "product_id",
		Columns: []Column{
			id("product_id"),
			text("name", true),
			text("description", false),
			{Name: "quantity", Kind: KindInt, Required: true, Min: 0, HasMin: true},
			{Name: "discount", Kind: KindFraction, Required: true},
			ref("category_id", "category", false),
		},
	}

	Order = &Entity{
		Name: "order", Table: "orders", File: "order.csv", IDName: "order_id",
		Columns: []Column{
			id("order_id"),
			ref("customer_id", "customer", true),
			ref("product_id", "product", true),
			ref("created_by", "vendor", true),
			{Name: "quantity", Kind: KindInt, Required: true, Min: 1, HasMin: true},
			{Name: "created_at", Kind: KindTimestamp, Optional: true},
		},
	}
)

// LoadOrder lists every entity with parents before children.
var LoadOrder = []*Entity{Customer, Address, Payment, Category, Vendor, Profile, Product, Order}

// clearOrder lists every entity with children before parents. Profile is
// cleared ahead of product, which differs from a plain reversal of LoadOrder.
var clearOrder = []*Entity{Order, Profile, Product, Vendor, Category, Payment, Address, Customer}

// TruncateOrder returns the table names in the order they are cleared.
func TruncateOrder() []string {
	tables := make([]string, len(clearOrder))
	for i, e := range clearOrder {
		tables[i] = e.Table
	}
	return tables
}

// Lookup finds an entity by name or table name, case-insensitively.
func Lookup(name string) (*Entity, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, e := range LoadOrder {
		if e.Name == name || e.Table == name {
			return e, nil
		}
	}
	return nil, fmt.Errorf("%q (known: %s): %w", name, strings.Join(Names(), ", "), ecomadmin.ErrUnknownEntity)
}

// Names returns entity names in load order.
func Names() []string {
	names := make([]string, len(LoadOrder))
	for i, e := range LoadOrder {
		names[i] = e.Name
	}
	return names
}

// ValidateOrder checks that every entity in order appears after all of the
// parents it references.
func ValidateOrder(order []*Entity) error {
	position := make(map[string]int, len(order))
	for i, e := range order {
		position[e.Table] = i
	}
	for i, e := range order {
		for _, parent := range e.Parents() {
			p, ok := position[parent]
			if !ok {
				return fmt.Errorf("%s references %s, which is not in the order: %w", e.Table, parent, ecomadmin.ErrInvalidConfig)
			}
			if p > i {
				return fmt.Errorf("%s is loaded before its parent %s: %w", e.Table, parent, ecomadmin.ErrInvalidConfig)
			}
		}
	}
	return nil
}
