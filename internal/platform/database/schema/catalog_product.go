package schema

// CatalogProductTable represents the 'catalog.product' table
type CatalogProductTable struct {
	Table     string
	ID        string
	Name      string
	Slug      string
	Category  string
	Unit      string
	CreatedAt string
	UpdatedAt string
	DeletedAt string
}

// CatalogProduct is the schema definition for catalog.product
var CatalogProduct = CatalogProductTable{
	Table:     "catalog.product",
	ID:        "id",
	Name:      "name",
	Slug:      "slug",
	Category:  "category",
	Unit:      "unit",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
	DeletedAt: "deletedat",
}

func (t CatalogProductTable) Columns() []string {
	return []string{t.ID, t.Name, t.Slug, t.Category, t.Unit, t.CreatedAt, t.UpdatedAt, t.DeletedAt}
}
