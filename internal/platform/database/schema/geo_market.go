package schema

// GeoMarketTable represents the 'geo.market' table
type GeoMarketTable struct {
	Table     string
	ID        string
	CityID    string
	Name      string
	Slug      string
	Kind      string
	CreatedAt string
	UpdatedAt string
	DeletedAt string
}

// GeoMarket is the schema definition for geo.market
var GeoMarket = GeoMarketTable{
	Table:     "geo.market",
	ID:        "id",
	CityID:    "cityid",
	Name:      "name",
	Slug:      "slug",
	Kind:      "kind",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
	DeletedAt: "deletedat",
}

func (t GeoMarketTable) Columns() []string {
	return []string{t.ID, t.CityID, t.Name, t.Slug, t.Kind, t.CreatedAt, t.UpdatedAt, t.DeletedAt}
}
