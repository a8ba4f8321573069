package model

import "github.com/shopspring/decimal"

// PendingSummary aggregates the orders still awaiting cash collection.
type PendingSummary struct {
	Count            int
	TotalOutstanding decimal.Decimal
}
