package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/domain/model"
)

// RecordPaymentRequest carries a field agent's candidate evidence.
// AmountReceived is accepted on the wire but never trusted: the amount is
// always derived from the order total on the server.
type RecordPaymentRequest struct {
	Method                string `json:"payment_method"`
	ExternalReference     string `json:"external_reference,omitempty"`
	ExternalTransactionID string `json:"external_transaction_id,omitempty"`
	CustomerPhone         string `json:"customer_phone,omitempty"`
	Notes                 string `json:"notes,omitempty"`
	AmountReceived        string `json:"amount_received,omitempty"`
}

// Record converts the payload to a domain candidate. The amount field is
// deliberately dropped here.
func (r RecordPaymentRequest) Record() model.PaymentRecord {
	return model.PaymentRecord{
		Method:                model.PaymentMethod(r.Method),
		ExternalReference:     r.ExternalReference,
		ExternalTransactionID: r.ExternalTransactionID,
		CustomerPhone:         r.CustomerPhone,
		Notes:                 r.Notes,
	}
}

// NewRecordPaymentRequest converts a domain candidate to its wire form.
func NewRecordPaymentRequest(record model.PaymentRecord) RecordPaymentRequest {
	return RecordPaymentRequest{
		Method:                string(record.Method),
		ExternalReference:     record.ExternalReference,
		ExternalTransactionID: record.ExternalTransactionID,
		CustomerPhone:         record.CustomerPhone,
		Notes:                 record.Notes,
	}
}

// PaymentReceiptResponse is returned by a successful commit.
type PaymentReceiptResponse struct {
	TransactionReference string          `json:"transaction_reference"`
	OrderNumber          string          `json:"order_number"`
	Method               string          `json:"payment_method"`
	AmountReceived       decimal.Decimal `json:"amount_received"`
	PaidAt               time.Time       `json:"paid_at"`
}

// NewPaymentReceiptResponse converts a domain receipt to its wire form.
func NewPaymentReceiptResponse(r *model.PaymentReceipt) PaymentReceiptResponse {
	return PaymentReceiptResponse{
		TransactionReference: r.TransactionReference,
		OrderNumber:          r.OrderNumber,
		Method:               string(r.Method),
		AmountReceived:       r.AmountReceived,
		PaidAt:               r.PaidAt,
	}
}

// Receipt converts the wire form back to a domain receipt.
func (r PaymentReceiptResponse) Receipt() *model.PaymentReceipt {
	return &model.PaymentReceipt{
		TransactionReference: r.TransactionReference,
		OrderNumber:          r.OrderNumber,
		Method:               model.PaymentMethod(r.Method),
		AmountReceived:       r.AmountReceived,
		PaidAt:               r.PaidAt,
	}
}

// PaymentResponse is the stored evidence attached to a settled order.
type PaymentResponse struct {
	OrderNumber           string          `json:"order_number"`
	Method                string          `json:"payment_method"`
	AmountReceived        decimal.Decimal `json:"amount_received"`
	ExternalReference     string          `json:"external_reference,omitempty"`
	ExternalTransactionID string          `json:"external_transaction_id,omitempty"`
	CustomerPhone         string          `json:"customer_phone,omitempty"`
	Notes                 string          `json:"notes,omitempty"`
	Zone                  string          `json:"zone,omitempty"`
	County                string          `json:"county,omitempty"`
	TransactionReference  string          `json:"transaction_reference"`
	RecordedAt            time.Time       `json:"recorded_at"`
}

// NewPaymentResponse converts stored evidence to its wire form.
func NewPaymentResponse(p *model.Payment) PaymentResponse {
	return PaymentResponse{
		OrderNumber:           p.OrderNumber,
		Method:                string(p.Method),
		AmountReceived:        p.AmountReceived,
		ExternalReference:     p.ExternalReference,
		ExternalTransactionID: p.ExternalTransactionID,
		CustomerPhone:         p.CustomerPhone,
		Notes:                 p.Notes,
		Zone:                  p.Zone,
		County:                p.County,
		TransactionReference:  p.TransactionReference,
		RecordedAt:            p.RecordedAt,
	}
}

// FieldErrorPayload names a single rejected field and the rule it broke.
type FieldErrorPayload struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationErrorResponse is the 422 body listing every field error.
type ValidationErrorResponse struct {
	Errors []FieldErrorPayload `json:"errors"`
}

// ConflictResponse is the 409 body: the authoritative order state so the
// caller can show who actually settled it.
type ConflictResponse struct {
	Error string         `json:"error"`
	Order *OrderResponse `json:"order,omitempty"`
}
