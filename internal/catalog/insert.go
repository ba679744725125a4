package catalog

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/vvka-141/ecomadmin/pkg/ecomadmin"
)

func insertProductEntry() *Entry {
	return &Entry{
		Name:        "insert-product",
		Title:       "Insert New Product",
		Group:       GroupBasic,
		Description: "Adds a product and returns its id.",
		Params: []Param{
			{Name: "name", Label: "Product name", Kind: ParamText},
			{Name: "description", Label: "Description", Kind: ParamText, Optional: true},
			{Name: "quantity", Label: "Quantity (at least 1)", Kind: ParamInt},
			{Name: "discount", Label: "Discount (0-1)", Kind: ParamFraction},
			{Name: "category_id", Label: "Category ID (optional)", Kind: ParamInt, Optional: true},
		},
		Shape:   ShapeInsert,
		Handler: insertProduct,
	}
}

func insertProduct(ctx context.Context, conn ecomadmin.DBConn, args Args) (*Result, error) {
	var errs []error
	name := strings.TrimSpace(args.Text("name"))
	if name == "" {
		errs = append(errs, &ecomadmin.ValidationError{Entity: "product", Column: "name", Reason: "must not be empty"})
	}
	quantity, _ := args.Int("quantity")
	if quantity < 1 {
		errs = append(errs, &ecomadmin.ValidationError{
			Entity: "product", Column: "quantity", Value: strconv.FormatInt(quantity, 10), Reason: "must be at least 1",
		})
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	discount := args.Fraction("discount")
	return insertReturningID(ctx, conn, "product", `
INSERT INTO product (name, description, quantity, discount, category_id)
VALUES ($1, $2, $3, $4, $5)
RETURNING product_id`,
		name, nullableText(args.Text("description")), quantity, discount, args["category_id"])
}

func insertCategoryEntry() *Entry {
	return &Entry{
		Name:        "insert-category",
		Title:       "Add Category",
		Group:       GroupManagement,
		Description: "Adds a category and returns its id.",
		Params:      []Param{{Name: "name", Label: "Category name", Kind: ParamText}},
		Shape:       ShapeInsert,
		Handler: func(ctx context.Context, conn ecomadmin.DBConn, args Args) (*Result, error) {
			name := strings.TrimSpace(args.Text("name"))
			if name == "" {
				return nil, &ecomadmin.ValidationError{Entity: "category", Column: "name", Reason: "must not be empty"}
			}
			return insertReturningID(ctx, conn, "category",
				`INSERT INTO category (name) VALUES ($1) RETURNING category_id`, name)
		},
	}
}

func insertVendorEntry() *Entry {
	return &Entry{
		Name:        "insert-vendor",
		Title:       "Add Vendor",
		Group:       GroupManagement,
		Description: "Adds a vendor and returns its id.",
		Params: []Param{
			{Name: "name", Label: "Vendor name", Kind: ParamText},
			{Name: "hotline", Label: "Hotline", Kind: ParamText, Optional: true},
			{Name: "description", Label: "Description", Kind: ParamText, Optional: true},
		},
		Shape: ShapeInsert,
		Handler: func(ctx context.Context, conn ecomadmin.DBConn, args Args) (*Result, error) {
			name := strings.TrimSpace(args.Text("name"))
			if name == "" {
				return nil, &ecomadmin.ValidationError{Entity: "vendor", Column: "name", Reason: "must not be empty"}
			}
			return insertReturningID(ctx, conn, "vendor",
				`INSERT INTO vendor (name, hotline, description) VALUES ($1, $2, $3) RETURNING vendor_id`,
				name, nullableText(args.Text("hotline")), nullableText(args.Text("description")))
		},
	}
}

func insertReturningID(ctx context.Context, conn ecomadmin.DBConn, entity, sql string, args ...any) (*Result, error) {
	var id int64
	if err := conn.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return nil, &ecomadmin.PersistenceError{Entity: entity, Op: "insert", Err: err}
	}
	return &Result{InsertedID: id}, nil
}

func nullableText(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}
