package usecase

import (
	"fmt"
	"strings"

	domainErrors "github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/domain/errors"
	"github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/domain/model"
)

// Evidence field minimums for electronically settled methods.
const (
	MinReferenceLength     = 8
	MinTransactionIDLength = 10
)

// Field names reported in validation errors. They match the wire contract
// so a client can highlight the exact form control.
const (
	FieldOrderNumber         = "order_number"
	FieldPaymentMethod       = "payment_method"
	FieldExternalReference   = "external_reference"
	FieldExternalTransaction = "external_transaction_id"
)

// FieldError names a single offending field and the rule it violated.
type FieldError struct {
	Field  string
	Reason string
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Reason
}

// ValidationError carries every field rejection for one candidate payment.
// It is produced locally and never reaches the directory's write path.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	reasons := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		reasons = append(reasons, f.Error())
	}
	return "validation failed: " + strings.Join(reasons, "; ")
}

// Has reports whether the given field was rejected.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// ValidatePayment applies method-specific evidence rules to a candidate
// payment. Pure and deterministic: no I/O, no side effects.
//
// An already-paid order short-circuits with ErrOrderAlreadyPaid before any
// field rule runs; paid is terminal for this subsystem. The amount is not
// checked because it is not an input: the directory derives it from the
// order total at commit time.
func ValidatePayment(order *model.Order, candidate model.PaymentRecord) error {
	if order.PaymentStatus == model.PaymentStatusPaid {
		return domainErrors.ErrOrderAlreadyPaid
	}

	var fields []FieldError
	switch candidate.Method {
	case model.PaymentMethodCash:
		// Evidence fields may be supplied but are not checked.
	case model.PaymentMethodMpesaManual, model.PaymentMethodBankTransfer:
		fields = append(fields, checkEvidence(FieldExternalReference, candidate.ExternalReference, MinReferenceLength)...)
		fields = append(fields, checkEvidence(FieldExternalTransaction, candidate.ExternalTransactionID, MinTransactionIDLength)...)
	case "":
		fields = append(fields, FieldError{Field: FieldPaymentMethod, Reason: "required"})
	default:
		fields = append(fields, FieldError{Field: FieldPaymentMethod, Reason: fmt.Sprintf("unsupported method %q", candidate.Method)})
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func checkEvidence(field, value string, minLen int) []FieldError {
	value = strings.TrimSpace(value)
	if value == "" {
		return []FieldError{{Field: field, Reason: "required"}}
	}
	if len(value) < minLen {
		return []FieldError{{Field: field, Reason: fmt.Sprintf("must be at least %d characters", minLen)}}
	}
	return nil
}
