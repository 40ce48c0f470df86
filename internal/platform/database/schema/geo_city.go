package schema

// GeoCityTable represents the 'geo.city' table
type GeoCityTable struct {
	Table      string
	ID         string
	ProvinceID string
	Name       string
	CreatedAt  string
	UpdatedAt  string
	DeletedAt  string
}

// GeoCity is the schema definition for geo.city
var GeoCity = GeoCityTable{
	Table:      "geo.city",
	ID:         "id",
	ProvinceID: "provinceid",
	Name:       "name",
	CreatedAt:  "createdat",
	UpdatedAt:  "updatedat",
	DeletedAt:  "deletedat",
}

func (t GeoCityTable) Columns() []string {
	return []string{t.ID, t.ProvinceID, t.Name, t.CreatedAt, t.UpdatedAt, t.DeletedAt}
}
