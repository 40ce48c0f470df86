package schema

// PricingPriceTable represents the 'pricing.price' table
type PricingPriceTable struct {
	Table        string
	ID           string
	ProductID    string
	MarketID     string
	Amount       string
	Currency     string
	Status       string
	Note         string
	RejectReason string
	SubmittedBy  string
	ModeratedBy  string
	RecordedAt   string
	CreatedAt    string
	UpdatedAt    string
}

// PricingPrice is the schema definition for pricing.price
var PricingPrice = PricingPriceTable{
	Table:        "pricing.price",
	ID:           "id",
	ProductID:    "productid",
	MarketID:     "marketid",
	Amount:       "amount",
	Currency:     "currency",
	Status:       "status",
	Note:         "note",
	RejectReason: "rejectreason",
	SubmittedBy:  "submittedby",
	ModeratedBy:  "moderatedby",
	RecordedAt:   "recordedat",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

func (t PricingPriceTable) Columns() []string {
	return []string{t.ID, t.ProductID, t.MarketID, t.Amount, t.Currency, t.Status, t.Note, t.RejectReason, t.SubmittedBy, t.ModeratedBy, t.RecordedAt, t.CreatedAt, t.UpdatedAt}
}
