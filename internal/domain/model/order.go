package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus describes whether cash for an order has been collected.
// The transition pending -> paid happens at most once and never reverts.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// PaymentMethod identifies the channel an order is settled through.
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodMpesaManual  PaymentMethod = "mpesa_manual"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodMpesaAuto    PaymentMethod = "mpesa_auto"
)

// CollectibleOnDelivery reports whether the method is settled by a field
// agent and therefore eligible for manual reconciliation.
func (m PaymentMethod) CollectibleOnDelivery() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodMpesaManual, PaymentMethodBankTransfer:
		return true
	default:
		return false
	}
}

// RequiresEvidence reports whether the method needs reference fields
// proving an electronic transfer took place.
func (m PaymentMethod) RequiresEvidence() bool {
	return m == PaymentMethodMpesaManual || m == PaymentMethodBankTransfer
}

// OrderItem is a single purchased line on an order.
type OrderItem struct {
	ID        int64
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

// Order is the directory's authoritative view of a customer order.
type Order struct {
	ID              int64
	OrderNumber     string
	CustomerName    string
	CustomerPhone   string
	DeliveryAddress string
	Zone            string
	County          string
	Items           []OrderItem
	Subtotal        decimal.Decimal
	ShippingFee     decimal.Decimal
	Tax             decimal.Decimal
	Discount        decimal.Decimal
	Total           decimal.Decimal
	PaymentMethod   PaymentMethod
	PaymentStatus   PaymentStatus
	PaidAt          *time.Time
	PlacedAt        time.Time
	UpdatedAt       time.Time
}

// TotalsConsistent verifies total = subtotal + shipping + tax - discount
// using exact decimal arithmetic.
func (o *Order) TotalsConsistent() bool {
	expected := o.Subtotal.Add(o.ShippingFee).Add(o.Tax).Sub(o.Discount)
	return o.Total.Equal(expected)
}

// PendingOrder is the slim listing row shown on the collections dashboard.
type PendingOrder struct {
	OrderNumber   string
	CustomerName  string
	CustomerPhone string
	Zone          string
	County        string
	Total         decimal.Decimal
	ItemCount     int
	PlacedAt      time.Time
}
