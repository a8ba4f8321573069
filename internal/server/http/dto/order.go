package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/domain/model"
)

// OrderItemPayload is a purchased line as it travels over the wire.
type OrderItemPayload struct {
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// OrderResponse is the full directory view of an order. Payment is present
// only when the order has been settled.
type OrderResponse struct {
	OrderNumber     string             `json:"order_number"`
	CustomerName    string             `json:"customer_name"`
	CustomerPhone   string             `json:"customer_phone"`
	DeliveryAddress string             `json:"delivery_address"`
	Zone            string             `json:"zone"`
	County          string             `json:"county"`
	Items           []OrderItemPayload `json:"items"`
	Subtotal        decimal.Decimal    `json:"subtotal"`
	ShippingFee     decimal.Decimal    `json:"shipping_fee"`
	Tax             decimal.Decimal    `json:"tax"`
	Discount        decimal.Decimal    `json:"discount"`
	Total           decimal.Decimal    `json:"total"`
	PaymentMethod   string             `json:"payment_method"`
	PaymentStatus   string             `json:"payment_status"`
	PaidAt          *time.Time         `json:"paid_at,omitempty"`
	PlacedAt        time.Time          `json:"placed_at"`
	Payment         *PaymentResponse   `json:"payment,omitempty"`
}

// PendingOrderResponse is the slim listing row for the collections page.
type PendingOrderResponse struct {
	OrderNumber   string          `json:"order_number"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	Zone          string          `json:"zone"`
	County        string          `json:"county"`
	Total         decimal.Decimal `json:"total"`
	ItemCount     int             `json:"item_count"`
	PlacedAt      time.Time       `json:"placed_at"`
}

// CreateOrderRequest is the checkout ingest payload.
type CreateOrderRequest struct {
	OrderNumber     string             `json:"order_number"`
	CustomerName    string             `json:"customer_name"`
	CustomerPhone   string             `json:"customer_phone"`
	DeliveryAddress string             `json:"delivery_address"`
	Zone            string             `json:"zone"`
	County          string             `json:"county"`
	Items           []OrderItemPayload `json:"items"`
	Subtotal        decimal.Decimal    `json:"subtotal"`
	ShippingFee     decimal.Decimal    `json:"shipping_fee"`
	Tax             decimal.Decimal    `json:"tax"`
	Discount        decimal.Decimal    `json:"discount"`
	Total           decimal.Decimal    `json:"total"`
	PaymentMethod   string             `json:"payment_method"`
}

// NewOrderResponse converts a domain order to its wire form.
func NewOrderResponse(o *model.Order) OrderResponse {
	items := make([]OrderItemPayload, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemPayload{Name: item.Name, UnitPrice: item.UnitPrice, Quantity: item.Quantity})
	}
	return OrderResponse{
		OrderNumber:     o.OrderNumber,
		CustomerName:    o.CustomerName,
		CustomerPhone:   o.CustomerPhone,
		DeliveryAddress: o.DeliveryAddress,
		Zone:            o.Zone,
		County:          o.County,
		Items:           items,
		Subtotal:        o.Subtotal,
		ShippingFee:     o.ShippingFee,
		Tax:             o.Tax,
		Discount:        o.Discount,
		Total:           o.Total,
		PaymentMethod:   string(o.PaymentMethod),
		PaymentStatus:   string(o.PaymentStatus),
		PaidAt:          o.PaidAt,
		PlacedAt:        o.PlacedAt,
	}
}

// Order converts the wire form back to a domain order.
func (r OrderResponse) Order() *model.Order {
	items := make([]model.OrderItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, model.OrderItem{Name: item.Name, UnitPrice: item.UnitPrice, Quantity: item.Quantity})
	}
	return &model.Order{
		OrderNumber:     r.OrderNumber,
		CustomerName:    r.CustomerName,
		CustomerPhone:   r.CustomerPhone,
		DeliveryAddress: r.DeliveryAddress,
		Zone:            r.Zone,
		County:          r.County,
		Items:           items,
		Subtotal:        r.Subtotal,
		ShippingFee:     r.ShippingFee,
		Tax:             r.Tax,
		Discount:        r.Discount,
		Total:           r.Total,
		PaymentMethod:   model.PaymentMethod(r.PaymentMethod),
		PaymentStatus:   model.PaymentStatus(r.PaymentStatus),
		PaidAt:          r.PaidAt,
		PlacedAt:        r.PlacedAt,
	}
}

// NewPendingOrderResponse converts a listing row to its wire form.
func NewPendingOrderResponse(p model.PendingOrder) PendingOrderResponse {
	return PendingOrderResponse{
		OrderNumber:   p.OrderNumber,
		CustomerName:  p.CustomerName,
		CustomerPhone: p.CustomerPhone,
		Zone:          p.Zone,
		County:        p.County,
		Total:         p.Total,
		ItemCount:     p.ItemCount,
		PlacedAt:      p.PlacedAt,
	}
}

// PendingOrder converts the wire form back to a domain listing row.
func (r PendingOrderResponse) PendingOrder() model.PendingOrder {
	return model.PendingOrder{
		OrderNumber:   r.OrderNumber,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		Zone:          r.Zone,
		County:        r.County,
		Total:         r.Total,
		ItemCount:     r.ItemCount,
		PlacedAt:      r.PlacedAt,
	}
}

// Order converts the ingest payload to a domain order.
func (r CreateOrderRequest) Order() *model.Order {
	items := make([]model.OrderItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, model.OrderItem{Name: item.Name, UnitPrice: item.UnitPrice, Quantity: item.Quantity})
	}
	return &model.Order{
		OrderNumber:     r.OrderNumber,
		CustomerName:    r.CustomerName,
		CustomerPhone:   r.CustomerPhone,
		DeliveryAddress: r.DeliveryAddress,
		Zone:            r.Zone,
		County:          r.County,
		Items:           items,
		Subtotal:        r.Subtotal,
		ShippingFee:     r.ShippingFee,
		Tax:             r.Tax,
		Discount:        r.Discount,
		Total:           r.Total,
		PaymentMethod:   model.PaymentMethod(r.PaymentMethod),
	}
}

// NewCreateOrderRequest converts a domain order to the ingest payload.
func NewCreateOrderRequest(o *model.Order) CreateOrderRequest {
	items := make([]OrderItemPayload, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemPayload{Name: item.Name, UnitPrice: item.UnitPrice, Quantity: item.Quantity})
	}
	return CreateOrderRequest{
		OrderNumber:     o.OrderNumber,
		CustomerName:    o.CustomerName,
		CustomerPhone:   o.CustomerPhone,
		DeliveryAddress: o.DeliveryAddress,
		Zone:            o.Zone,
		County:          o.County,
		Items:           items,
		Subtotal:        o.Subtotal,
		ShippingFee:     o.ShippingFee,
		Tax:             o.Tax,
		Discount:        o.Discount,
		Total:           o.Total,
		PaymentMethod:   string(o.PaymentMethod),
	}
}
