package usecase

import (
	"context"
	"errors"

	domainErrors "github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/domain/errors"
	"github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/domain/model"
	"github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/domain/repository"
)

// OutcomeKind enumerates the possible results of a payment recording
// attempt. Callers switch on it instead of unwinding error chains.
type OutcomeKind string

const (
	OutcomeCommitted        OutcomeKind = "committed"
	OutcomeRejected         OutcomeKind = "rejected"
	OutcomeConflict         OutcomeKind = "conflict"
	OutcomeNotFound         OutcomeKind = "not_found"
	OutcomeTransportFailure OutcomeKind = "transport_failure"
)

// Outcome is the tagged result of RecordPayment. Exactly the fields for its
// kind are populated: Receipt on committed, Validation on rejected, Order on
// conflict (the authoritative paid state), Err on transport failure.
type Outcome struct {
	Kind       OutcomeKind
	Receipt    *model.PaymentReceipt
	Validation *ValidationError
	Order      *model.Order
	Err        error
}

// ReconcileUseCase mediates between the recording surface and the Order
// Directory: fetch, validate, then a single commit. The directory is the
// sole arbiter of the pending -> paid transition; this use case never
// retries a commit on its own.
type ReconcileUseCase struct {
	orders repository.OrderRepository
}

// NewReconcileUseCase constructs ReconcileUseCase.
func NewReconcileUseCase(orders repository.OrderRepository) *ReconcileUseCase {
	return &ReconcileUseCase{orders: orders}
}

// RecordPayment runs the full reconciliation flow for one order. Local
// rejections (empty number, failed validation) never contact the
// directory's write path.
func (u *ReconcileUseCase) RecordPayment(ctx context.Context, rawNumber string, candidate model.PaymentRecord) Outcome {
	number := NormalizeOrderNumber(rawNumber)
	if number == "" {
		return Outcome{
			Kind:       OutcomeRejected,
			Validation: &ValidationError{Fields: []FieldError{{Field: FieldOrderNumber, Reason: "required"}}},
		}
	}

	order, err := u.orders.GetByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return Outcome{Kind: OutcomeNotFound}
		}
		return Outcome{Kind: OutcomeTransportFailure, Err: err}
	}

	if err := ValidatePayment(order, candidate); err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			return Outcome{Kind: OutcomeRejected, Validation: vErr}
		}
		if errors.Is(err, domainErrors.ErrOrderAlreadyPaid) {
			return u.conflict(ctx, number, order)
		}
		return Outcome{Kind: OutcomeTransportFailure, Err: err}
	}

	receipt, err := u.orders.CommitPayment(ctx, number, candidate)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrOrderAlreadyPaid):
			// Another agent won the race between our fetch and commit.
			return u.conflict(ctx, number, order)
		case errors.Is(err, domainErrors.ErrNotFound):
			return Outcome{Kind: OutcomeNotFound}
		default:
			return Outcome{Kind: OutcomeTransportFailure, Err: err}
		}
	}

	return Outcome{Kind: OutcomeCommitted, Receipt: receipt, Order: order}
}

// ConfirmPayment re-queries order status after an indeterminate commit
// (timeout, dropped connection). It never resubmits anything: the caller
// inspects the returned order to learn whether the earlier attempt landed.
func (u *ReconcileUseCase) ConfirmPayment(ctx context.Context, rawNumber string) (*model.Order, error) {
	number := NormalizeOrderNumber(rawNumber)
	if number == "" {
		return nil, domainErrors.ErrEmptyOrderNumber
	}
	return u.orders.GetByNumber(ctx, number)
}

// conflict re-fetches the order so the caller sees the authoritative paid
// state. A failed refresh falls back to the stale view; the conflict itself
// is never hidden.
func (u *ReconcileUseCase) conflict(ctx context.Context, number string, stale *model.Order) Outcome {
	if fresh, err := u.orders.GetByNumber(ctx, number); err == nil {
		stale = fresh
	}
	return Outcome{Kind: OutcomeConflict, Order: stale}
}
