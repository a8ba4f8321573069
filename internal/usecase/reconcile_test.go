package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/domain/errors"
	"github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/domain/model"
	testhelpers "github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/test"
)

// directoryStub mimics the directory's compare-and-set: the first commit
// wins, later attempts observe the paid state.
func directoryStub(order model.Order) *testhelpers.OrderRepositoryStub {
	stub := &testhelpers.OrderRepositoryStub{Orders: []model.Order{order}}
	stub.CommitPaymentFn = func(ctx context.Context, number string, record model.PaymentRecord) (*model.PaymentReceipt, error) {
		if number != stub.Orders[0].OrderNumber {
			return nil, domainErrors.ErrNotFound
		}
		if stub.Orders[0].PaymentStatus == model.PaymentStatusPaid {
			return nil, domainErrors.ErrOrderAlreadyPaid
		}
		now := time.Now()
		stub.Orders[0].PaymentStatus = model.PaymentStatusPaid
		stub.Orders[0].PaidAt = &now
		return &model.PaymentReceipt{
			TransactionReference: "TXN-20240101-0001",
			OrderNumber:          number,
			Method:               record.Method,
			AmountReceived:       stub.Orders[0].Total,
			PaidAt:               now,
		}, nil
	}
	return stub
}

func mpesaOrder() model.Order {
	return model.Order{
		OrderNumber:   "OS001",
		Total:         decimal.RequireFromString("57000"),
		PaymentMethod: model.PaymentMethodMpesaManual,
		PaymentStatus: model.PaymentStatusPending,
	}
}

func TestRecordPaymentCommitsOnceThenConflicts(t *testing.T) {
	stub := directoryStub(mpesaOrder())
	uc := NewReconcileUseCase(stub)

	candidate := model.PaymentRecord{
		Method:                model.PaymentMethodMpesaManual,
		ExternalReference:     "CUSTOMERA",
		ExternalTransactionID: "MPX1234567",
	}

	first := uc.RecordPayment(context.Background(), "OS001", candidate)
	if first.Kind != OutcomeCommitted {
		t.Fatalf("expected committed, got %s (%v)", first.Kind, first.Err)
	}
	if first.Receipt == nil || first.Receipt.TransactionReference == "" {
		t.Fatal("expected server-assigned transaction reference")
	}
	if !first.Receipt.AmountReceived.Equal(decimal.RequireFromString("57000")) {
		t.Fatalf("amount received must equal order total, got %s", first.Receipt.AmountReceived)
	}

	second := uc.RecordPayment(context.Background(), "OS001", candidate)
	if second.Kind != OutcomeConflict {
		t.Fatalf("expected conflict on resubmission, got %s", second.Kind)
	}
	if second.Order == nil || second.Order.PaymentStatus != model.PaymentStatusPaid {
		t.Fatal("conflict must surface the authoritative paid state")
	}
	if len(stub.Commits) != 1 {
		t.Fatalf("expected exactly one commit attempt to reach the write path, got %d", len(stub.Commits))
	}
}

func TestRecordPaymentRejectsShortEvidenceWithoutCommit(t *testing.T) {
	stub := directoryStub(mpesaOrder())
	uc := NewReconcileUseCase(stub)

	candidate := model.PaymentRecord{
		Method:                model.PaymentMethodMpesaManual,
		ExternalReference:     "SHORT",
		ExternalTransactionID: "MPX1234567",
	}
	outcome := uc.RecordPayment(context.Background(), "OS001", candidate)
	if outcome.Kind != OutcomeRejected {
		t.Fatalf("expected rejected, got %s", outcome.Kind)
	}
	if outcome.Validation == nil || !outcome.Validation.Has(FieldExternalReference) {
		t.Fatalf("expected rejection naming %s, got %v", FieldExternalReference, outcome.Validation)
	}
	if len(stub.Commits) != 0 {
		t.Fatal("rejected submissions must never reach the write path")
	}
}

func TestRecordPaymentNormalizesOrderNumber(t *testing.T) {
	order := mpesaOrder()
	order.OrderNumber = "OS12345678"
	order.PaymentMethod = model.PaymentMethodCash
	stub := directoryStub(order)
	uc := NewReconcileUseCase(stub)

	outcome := uc.RecordPayment(context.Background(), "  os12345678  ", model.PaymentRecord{Method: model.PaymentMethodCash})
	if outcome.Kind != OutcomeCommitted {
		t.Fatalf("expected committed for normalized number, got %s", outcome.Kind)
	}
	if stub.Commits[0].Number != "OS12345678" {
		t.Fatalf("expected normalized number on the wire, got %q", stub.Commits[0].Number)
	}
}

func TestRecordPaymentEmptyNumberRejectedLocally(t *testing.T) {
	stub := &testhelpers.OrderRepositoryStub{}
	uc := NewReconcileUseCase(stub)

	outcome := uc.RecordPayment(context.Background(), "   ", model.PaymentRecord{Method: model.PaymentMethodCash})
	if outcome.Kind != OutcomeRejected {
		t.Fatalf("expected rejected, got %s", outcome.Kind)
	}
	if outcome.Validation == nil || !outcome.Validation.Has(FieldOrderNumber) {
		t.Fatalf("expected order_number rejection, got %v", outcome.Validation)
	}
	if len(stub.Gets) != 0 || len(stub.Commits) != 0 {
		t.Fatal("empty input must not produce any directory call")
	}
}

func TestRecordPaymentNotFound(t *testing.T) {
	stub := &testhelpers.OrderRepositoryStub{}
	uc := NewReconcileUseCase(stub)

	outcome := uc.RecordPayment(context.Background(), "OS404", model.PaymentRecord{Method: model.PaymentMethodCash})
	if outcome.Kind != OutcomeNotFound {
		t.Fatalf("expected not found, got %s", outcome.Kind)
	}
}

func TestRecordPaymentTransportFailureOnFetch(t *testing.T) {
	stub := &testhelpers.OrderRepositoryStub{
		GetByNumberFn: func(context.Context, string) (*model.Order, error) {
			return nil, errors.New("connection reset")
		},
	}
	uc := NewReconcileUseCase(stub)

	outcome := uc.RecordPayment(context.Background(), "OS001", model.PaymentRecord{Method: model.PaymentMethodCash})
	if outcome.Kind != OutcomeTransportFailure {
		t.Fatalf("expected transport failure, got %s", outcome.Kind)
	}
	if outcome.Err == nil {
		t.Fatal("transport failures must carry the underlying error")
	}
}

func TestRecordPaymentTransportFailureOnCommit(t *testing.T) {
	order := mpesaOrder()
	order.PaymentMethod = model.PaymentMethodCash
	stub := directoryStub(order)
	stub.CommitPaymentFn = func(context.Context, string, model.PaymentRecord) (*model.PaymentReceipt, error) {
		return nil, errors.New("i/o timeout")
	}
	uc := NewReconcileUseCase(stub)

	outcome := uc.RecordPayment(context.Background(), "OS001", model.PaymentRecord{Method: model.PaymentMethodCash})
	if outcome.Kind != OutcomeTransportFailure {
		t.Fatalf("expected transport failure, got %s", outcome.Kind)
	}
}

func TestRecordPaymentAlreadyPaidShortCircuitsFieldRules(t *testing.T) {
	order := mpesaOrder()
	now := time.Now()
	order.PaymentStatus = model.PaymentStatusPaid
	order.PaidAt = &now
	stub := directoryStub(order)
	uc := NewReconcileUseCase(stub)

	// Evidence is deliberately invalid; status must win.
	candidate := model.PaymentRecord{Method: model.PaymentMethodMpesaManual, ExternalReference: "X"}
	outcome := uc.RecordPayment(context.Background(), "OS001", candidate)
	if outcome.Kind != OutcomeConflict {
		t.Fatalf("expected conflict for already-paid order, got %s", outcome.Kind)
	}
	if outcome.Validation != nil {
		t.Fatal("field rules must not run for an already-paid order")
	}
	if len(stub.Commits) != 0 {
		t.Fatal("already-paid orders must never reach the write path")
	}
}

func TestRecordPaymentConflictRaceRefreshes(t *testing.T) {
	// Fetch observes pending, but another agent commits in between.
	order := mpesaOrder()
	order.PaymentMethod = model.PaymentMethodCash
	stale := order
	paid := order
	now := time.Now()
	paid.PaymentStatus = model.PaymentStatusPaid
	paid.PaidAt = &now

	calls := 0
	stub := &testhelpers.OrderRepositoryStub{
		GetByNumberFn: func(context.Context, string) (*model.Order, error) {
			calls++
			if calls == 1 {
				o := stale
				return &o, nil
			}
			o := paid
			return &o, nil
		},
		CommitPaymentFn: func(context.Context, string, model.PaymentRecord) (*model.PaymentReceipt, error) {
			return nil, domainErrors.ErrOrderAlreadyPaid
		},
	}
	uc := NewReconcileUseCase(stub)

	outcome := uc.RecordPayment(context.Background(), "OS001", model.PaymentRecord{Method: model.PaymentMethodCash})
	if outcome.Kind != OutcomeConflict {
		t.Fatalf("expected conflict, got %s", outcome.Kind)
	}
	if outcome.Order.PaymentStatus != model.PaymentStatusPaid {
		t.Fatal("conflict must re-fetch the authoritative paid state")
	}
}

func TestConfirmPayment(t *testing.T) {
	order := mpesaOrder()
	stub := directoryStub(order)
	uc := NewReconcileUseCase(stub)

	got, err := uc.ConfirmPayment(context.Background(), " os001 ")
	if err != nil {
		t.Fatalf("confirm returned error: %v", err)
	}
	if got.OrderNumber != "OS001" {
		t.Fatalf("unexpected order %q", got.OrderNumber)
	}

	if _, err := uc.ConfirmPayment(context.Background(), "  "); !errors.Is(err, domainErrors.ErrEmptyOrderNumber) {
		t.Fatalf("expected ErrEmptyOrderNumber, got %v", err)
	}
}
