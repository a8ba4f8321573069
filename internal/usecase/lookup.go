package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/domain/errors"
	"github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/domain/model"
	"github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/domain/repository"
)

// NormalizeOrderNumber trims whitespace and upper-cases the identifier.
// Order numbers are case-insensitive by convention.
func NormalizeOrderNumber(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// LookupUseCase resolves free-text order identifiers through the directory.
type LookupUseCase struct {
	orders repository.OrderRepository
}

// NewLookupUseCase constructs LookupUseCase.
func NewLookupUseCase(orders repository.OrderRepository) *LookupUseCase {
	return &LookupUseCase{orders: orders}
}

// Find normalizes raw input and resolves it. Empty input is rejected
// locally with ErrEmptyOrderNumber before any directory call. ErrNotFound
// from the directory stays distinguishable from transport failures so the
// caller can say "no such order" instead of "try again".
func (u *LookupUseCase) Find(ctx context.Context, raw string) (*model.Order, error) {
	number := NormalizeOrderNumber(raw)
	if number == "" {
		return nil, domainErrors.ErrEmptyOrderNumber
	}
	return u.orders.GetByNumber(ctx, number)
}
