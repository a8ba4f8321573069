package dto

import (
	"github.com/shopspring/decimal"

	"github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/domain/model"
)

// SummaryResponse is the dashboard headline: how many orders still owe
// money and how much in total.
type SummaryResponse struct {
	PendingCount     int             `json:"pending_count"`
	TotalOutstanding decimal.Decimal `json:"total_outstanding"`
}

// NewSummaryResponse converts a domain summary to its wire form.
func NewSummaryResponse(s model.PendingSummary) SummaryResponse {
	return SummaryResponse{PendingCount: s.Count, TotalOutstanding: s.TotalOutstanding}
}

// Summary converts the wire form back to a domain summary.
func (r SummaryResponse) Summary() model.PendingSummary {
	return model.PendingSummary{Count: r.PendingCount, TotalOutstanding: r.TotalOutstanding}
}
