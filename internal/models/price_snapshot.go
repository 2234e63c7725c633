package models

import "github.com/shopspring/decimal"

// PriceSnapshot is the price_snapshots table row. Rows are insert-only;
// cart lines are repointed to new snapshots instead of updating old ones.
type PriceSnapshot struct {
	SnapshotID        string          `db:"snapshot_id"`
	RateUsed          decimal.Decimal `db:"rate_used"`
	ConvertedAmount   decimal.Decimal `db:"converted_amount"`
	FinalPerItemPrice decimal.Decimal `db:"final_per_item_price"`
	ServiceFeePercent decimal.Decimal `db:"service_fee_percent"`
	AuditFields
}
