package domain

import "github.com/shopspring/decimal"

// PriceBreakdown is the fully itemized result of converting a base-currency
// amount into a customer-facing price. Output fields are rounded to 2
// decimal places; intermediate math keeps full precision.
type PriceBreakdown struct {
	Rate                decimal.Decimal `json:"rate"`
	RateWithMarkup      decimal.Decimal `json:"rateWithMarkup"`
	Converted           decimal.Decimal `json:"converted"`
	ConvertedWithMarkup decimal.Decimal `json:"convertedWithMarkup"`
	ServiceFeePercent   decimal.Decimal `json:"serviceFeePercent"`
	ServiceFeeAmount    decimal.Decimal `json:"serviceFeeAmount"`
	FinalPerItem        decimal.Decimal `json:"finalPerItem"`
}

// PriceSnapshot freezes a price computation at a specific instant. Snapshots
// are immutable once created; a cart line is repointed to a fresh snapshot on
// every re-resolution so earlier ones remain for audit.
type PriceSnapshot struct {
	SnapshotID        string          `json:"snapshotID"` // Primary Key (UUID)
	RateUsed          decimal.Decimal `json:"rateUsed"`
	ConvertedAmount   decimal.Decimal `json:"convertedAmount"`
	FinalPerItemPrice decimal.Decimal `json:"finalPerItemPrice"`
	ServiceFeePercent decimal.Decimal `json:"serviceFeePercent"`
	AuditFields
}
