package fixtures

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/vvka-141/ecomadmin/internal/files/filesystem"
)

// SeedBuilder assembles a directory of entity CSV files for load tests.
//
// Example usage:
//
//	fsys := fixtures.Standard("seed").
//	    Without("order.csv").
//	    AddFile("product.csv", "product_id,name\n1,Lamp\n").
//	    Build()
type SeedBuilder struct {
	dir   string
	files map[string]string // file name -> content
}

// NewSeedBuilder returns an empty builder rooted at dir.
func NewSeedBuilder(dir string) *SeedBuilder {
	return &SeedBuilder{dir: dir, files: map[string]string{}}
}

// AddFile adds or replaces one file of the directory.
func (b *SeedBuilder) AddFile(name, content string) *SeedBuilder {
	b.files[name] = content
	return b
}

// Without drops files from the directory.
func (b *SeedBuilder) Without(names ...string) *SeedBuilder {
	for _, name := range names {
		delete(b.files, name)
	}
	return b
}

// Dir is the directory the files are placed under.
func (b *SeedBuilder) Dir() string {
	return b.dir
}

// Names lists the files currently in the directory, sorted.
func (b *SeedBuilder) Names() []string {
	names := make([]string, 0, len(b.files))
	for name := range b.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build returns an in-memory file system holding the directory.
func (b *SeedBuilder) Build() *filesystem.MemoryFileSystem {
	fsys := filesystem.NewMemoryFileSystem()
	for name, content := range b.files {
		fsys.AddFile(path.Join(b.dir, name), content)
	}
	return fsys
}

// WriteTo writes the files into root/dir on disk and returns that directory.
func (b *SeedBuilder) WriteTo(root string) (string, error) {
	dir := filepath.Join(root, filepath.FromSlash(b.dir))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create seed directory: %w", err)
	}
	for name, content := range b.files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			return "", fmt.Errorf("write %s: %w", name, err)
		}
	}
	return dir, nil
}

// StandardRowCounts is the number of rows Standard loads into each table.
var StandardRowCounts = map[string]int64{
	"customer": 3,
	"address":  2,
	"payment":  2,
	"category": 2,
	"vendor":   2,
	"profile":  2,
	"product":  4,
	"orders":   4,
}

// Standard is a small consistent dataset covering every entity.
//
// Product 1 (Lamp) has two orders, products 2 and 3 one each, product 4 none.
// Customer 3 has no profile and no orders; profile 2 has no payment.
func Standard(dir string) *SeedBuilder {
	return NewSeedBuilder(dir).
		AddFile("customer.csv", `customer_id,name,email,phone,bio
1,Ann Lee,ann@example.com,555-0101,Reads a lot
2,Bob Stone,bob@example.com,,
3,Cara Diaz,cara@shop.test,555-0103,
`).
		AddFile("address.csv", `address_id,street,zip_code,city
1,Main St 1,00-001,Warsaw
2,Oak Ave 5,10001,New York
`).
		AddFile("payment.csv", `payment_id,card_number,cvv,expiration_date
1,4111111111111111,123,12/27
2,5500000000000004,456,2026-03-31
`).
		AddFile("category.csv", `category_id,name
1,Books
2,Lighting
`).
		AddFile("vendor.csv", `vendor_id,name,hotline,description
1,Acme,555-0100,Tools and lamps
2,Globex,555-0200,Home goods
`).
		AddFile("profile.csv", `profile_id,customer_id,primary_address_id,primary_payment_id
1,1,1,1
2,2,2,
`).
		AddFile("product.csv", `product_id,name,description,quantity,discount,category_id
1,Lamp,Desk lamp,10,0.10,2
2,Novel,Paperback 100% recycled,5,0.25,1
3,Bulb,LED_bulb,100,0,2
4,Atlas,,2,0.5,1
`).
		AddFile("order.csv", `order_id,customer_id,product_id,created_by,quantity,created_at
1,1,1,1,2,2025-01-01 10:00:00
2,1,2,2,1,2025-01-02 11:30:00
3,2,1,1,1,
4,2,3,2,5,2025-01-03T09:15:00
`)
}
