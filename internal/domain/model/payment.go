package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentRecord is a candidate submission assembled in the field before the
// directory accepts it. It deliberately carries no amount: the amount
// received is derived from the order total at commit time, never typed in.
type PaymentRecord struct {
	Method                PaymentMethod
	ExternalReference     string
	ExternalTransactionID string
	CustomerPhone         string
	Notes                 string
}

// Payment is the accepted, immutable evidence of a collection attached to
// an order. At most one exists per order number.
type Payment struct {
	ID                    int64
	OrderNumber           string
	Method                PaymentMethod
	AmountReceived        decimal.Decimal
	ExternalReference     string
	ExternalTransactionID string
	CustomerPhone         string
	Notes                 string
	Zone                  string
	County                string
	TransactionReference  string
	RecordedAt            time.Time
}

// PaymentReceipt is returned on a successful commit. TransactionReference
// is assigned by the directory and is the receipt of record.
type PaymentReceipt struct {
	TransactionReference string
	OrderNumber          string
	Method               PaymentMethod
	AmountReceived       decimal.Decimal
	PaidAt               time.Time
}
