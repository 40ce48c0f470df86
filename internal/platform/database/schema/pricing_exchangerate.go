package schema

// PricingExchangeRateTable represents the 'pricing.exchangerate' table
type PricingExchangeRateTable struct {
	Table         string
	ID            string
	MarketID      string
	BaseCurrency  string
	QuoteCurrency string
	Buy           string
	Sell          string
	Status        string
	RejectReason  string
	SubmittedBy   string
	ModeratedBy   string
	RecordedAt    string
	CreatedAt     string
	UpdatedAt     string
}

// PricingExchangeRate is the schema definition for pricing.exchangerate
var PricingExchangeRate = PricingExchangeRateTable{
	Table:         "pricing.exchangerate",
	ID:            "id",
	MarketID:      "marketid",
	BaseCurrency:  "basecurrency",
	QuoteCurrency: "quotecurrency",
	Buy:           "buy",
	Sell:          "sell",
	Status:        "status",
	RejectReason:  "rejectreason",
	SubmittedBy:   "submittedby",
	ModeratedBy:   "moderatedby",
	RecordedAt:    "recordedat",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
}

func (t PricingExchangeRateTable) Columns() []string {
	return []string{t.ID, t.MarketID, t.BaseCurrency, t.QuoteCurrency, t.Buy, t.Sell, t.Status, t.RejectReason, t.SubmittedBy, t.ModeratedBy, t.RecordedAt, t.CreatedAt, t.UpdatedAt}
}
