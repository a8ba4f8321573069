package usecase

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	domainErrors "github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/domain/errors"
	"github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/domain/model"
)

func pendingOrder(total string) *model.Order {
	return &model.Order{
		OrderNumber:   "OS00000001",
		Total:         decimal.RequireFromString(total),
		PaymentMethod: model.PaymentMethodMpesaManual,
		PaymentStatus: model.PaymentStatusPending,
	}
}

func TestValidatePaymentCashNeedsNoEvidence(t *testing.T) {
	order := pendingOrder("57000")
	if err := ValidatePayment(order, model.PaymentRecord{Method: model.PaymentMethodCash}); err != nil {
		t.Fatalf("expected cash without evidence to pass, got %v", err)
	}
	// Optional evidence on cash is accepted unchecked, even when short.
	candidate := model.PaymentRecord{Method: model.PaymentMethodCash, ExternalReference: "X"}
	if err := ValidatePayment(order, candidate); err != nil {
		t.Fatalf("expected optional evidence to be ignored for cash, got %v", err)
	}
}

func TestValidatePaymentEvidenceRules(t *testing.T) {
	cases := []struct {
		name      string
		method    model.PaymentMethod
		reference string
		txID      string
		wantField string
	}{
		{"missing reference", model.PaymentMethodMpesaManual, "", "MPX1234567", FieldExternalReference},
		{"short reference", model.PaymentMethodMpesaManual, "SHORT", "MPX1234567", FieldExternalReference},
		{"missing transaction id", model.PaymentMethodBankTransfer, "CUSTOMERA", "", FieldExternalTransaction},
		{"short transaction id", model.PaymentMethodBankTransfer, "CUSTOMERA", "TX1", FieldExternalTransaction},
		{"whitespace only reference", model.PaymentMethodMpesaManual, "   ", "MPX1234567", FieldExternalReference},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			candidate := model.PaymentRecord{
				Method:                tc.method,
				ExternalReference:     tc.reference,
				ExternalTransactionID: tc.txID,
			}
			err := ValidatePayment(pendingOrder("57000"), candidate)
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if !vErr.Has(tc.wantField) {
				t.Fatalf("expected rejection for field %q, got %v", tc.wantField, vErr)
			}
		})
	}
}

func TestValidatePaymentEvidenceBoundaryLengths(t *testing.T) {
	candidate := model.PaymentRecord{
		Method:                model.PaymentMethodMpesaManual,
		ExternalReference:     "CUSTOMERA",  // 9 chars
		ExternalTransactionID: "MPX1234567", // 10 chars
	}
	if err := ValidatePayment(pendingOrder("57000"), candidate); err != nil {
		t.Fatalf("expected boundary-length evidence to pass, got %v", err)
	}

	candidate.ExternalReference = "12345678" // exactly the minimum
	if err := ValidatePayment(pendingOrder("57000"), candidate); err != nil {
		t.Fatalf("expected minimum-length reference to pass, got %v", err)
	}
}

func TestValidatePaymentMethodRequired(t *testing.T) {
	err := ValidatePayment(pendingOrder("57000"), model.PaymentRecord{})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !vErr.Has(FieldPaymentMethod) {
		t.Fatalf("expected payment_method rejection, got %v", vErr)
	}
}

func TestValidatePaymentUnsupportedMethod(t *testing.T) {
	for _, method := range []model.PaymentMethod{model.PaymentMethodCard, model.PaymentMethodMpesaAuto, "cheque"} {
		err := ValidatePayment(pendingOrder("57000"), model.PaymentRecord{Method: method})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected validation error for %q, got %v", method, err)
		}
		if !vErr.Has(FieldPaymentMethod) {
			t.Fatalf("expected payment_method rejection for %q, got %v", method, vErr)
		}
	}
}

func TestValidatePaymentAlreadyPaidShortCircuits(t *testing.T) {
	order := pendingOrder("57000")
	order.PaymentStatus = model.PaymentStatusPaid

	// Field rules must not run: the candidate below would otherwise be
	// rejected for short evidence, but status wins.
	candidate := model.PaymentRecord{Method: model.PaymentMethodMpesaManual, ExternalReference: "X"}
	err := ValidatePayment(order, candidate)
	if !errors.Is(err, domainErrors.ErrOrderAlreadyPaid) {
		t.Fatalf("expected ErrOrderAlreadyPaid, got %v", err)
	}
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		t.Fatal("already-paid rejection must not be a field-level error")
	}
}

func TestValidationErrorMessageNamesEveryField(t *testing.T) {
	candidate := model.PaymentRecord{Method: model.PaymentMethodBankTransfer}
	err := ValidatePayment(pendingOrder("1000"), candidate)
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(vErr.Fields) != 2 {
		t.Fatalf("expected both evidence fields rejected, got %v", vErr.Fields)
	}
	msg := vErr.Error()
	for _, field := range []string{FieldExternalReference, FieldExternalTransaction} {
		if !vErr.Has(field) {
			t.Fatalf("expected %q in %v", field, vErr.Fields)
		}
		if !strings.Contains(msg, field) {
			t.Fatalf("expected message to mention %q, got %q", field, msg)
		}
	}
}
