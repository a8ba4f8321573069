package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/domain/model"
	"github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/domain/repository"
)

const defaultPendingPageSize = 100

// SummarizePending folds a pending-order snapshot into count and exact
// decimal total. Pure function over the snapshot, nothing cached.
func SummarizePending(orders []model.PendingOrder) model.PendingSummary {
	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.Total)
	}
	return model.PendingSummary{Count: len(orders), TotalOutstanding: total}
}

// DashboardUseCase derives the collections dashboard figures. Every call
// re-reads the directory so the summary cannot drift from ground truth.
type DashboardUseCase struct {
	orders   repository.OrderRepository
	pageSize int
}

// NewDashboardUseCase constructs DashboardUseCase.
func NewDashboardUseCase(orders repository.OrderRepository, pageSize int) *DashboardUseCase {
	if pageSize <= 0 {
		pageSize = defaultPendingPageSize
	}
	return &DashboardUseCase{orders: orders, pageSize: pageSize}
}

// PendingOrders returns one page of the pending-payment listing.
func (u *DashboardUseCase) PendingOrders(ctx context.Context, limit, offset int) ([]model.PendingOrder, error) {
	if limit <= 0 || limit > u.pageSize {
		limit = u.pageSize
	}
	if offset < 0 {
		offset = 0
	}
	return u.orders.ListPendingPayment(ctx, limit, offset)
}

// Summary walks the entire pending set page by page. The sum must cover
// every pending order, not the first page, and must stay exact.
func (u *DashboardUseCase) Summary(ctx context.Context) (model.PendingSummary, error) {
	summary := model.PendingSummary{TotalOutstanding: decimal.Zero}
	offset := 0
	for {
		page, err := u.orders.ListPendingPayment(ctx, u.pageSize, offset)
		if err != nil {
			return model.PendingSummary{}, err
		}
		partial := SummarizePending(page)
		summary.Count += partial.Count
		summary.TotalOutstanding = summary.TotalOutstanding.Add(partial.TotalOutstanding)
		if len(page) < u.pageSize {
			return summary, nil
		}
		offset += len(page)
	}
}
