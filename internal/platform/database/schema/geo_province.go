package schema

// GeoProvinceTable represents the 'geo.province' table
type GeoProvinceTable struct {
	Table     string
	ID        string
	Name      string
	Code      string
	CreatedAt string
	UpdatedAt string
	DeletedAt string
}

// GeoProvince is the schema definition for geo.province
var GeoProvince = GeoProvinceTable{
	Table:     "geo.province",
	ID:        "id",
	Name:      "name",
	Code:      "code",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
	DeletedAt: "deletedat",
}

func (t GeoProvinceTable) Columns() []string {
	return []string{t.ID, t.Name, t.Code, t.CreatedAt, t.UpdatedAt, t.DeletedAt}
}
