package repository

import (
	"context"

	"github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/domain/model"
)

// OrderRepository is the Order Directory contract: the single authority on
// order state and the only place the pending -> paid transition happens.
type OrderRepository interface {
	// Create ingests an order produced by the checkout flow. Returns
	// ErrAlreadyExists when the order number is taken.
	Create(ctx context.Context, order *model.Order) (*model.Order, error)

	// GetByNumber resolves a normalized order number to the full order.
	GetByNumber(ctx context.Context, number string) (*model.Order, error)

	// ListPendingPayment pages through orders still awaiting collection.
	ListPendingPayment(ctx context.Context, limit, offset int) ([]model.PendingOrder, error)

	// CommitPayment atomically flips the order to paid and stores the
	// evidence. Returns ErrOrderAlreadyPaid when another agent won the
	// race, ErrNotFound when the number does not resolve. The receipt's
	// transaction reference is assigned by the directory.
	CommitPayment(ctx context.Context, number string, record model.PaymentRecord) (*model.PaymentReceipt, error)
}
