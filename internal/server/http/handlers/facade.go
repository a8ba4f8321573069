package handlers

import (
	"context"

	"github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/domain/model"
	"github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/usecase"
)

// AgentFacade describes authentication capabilities required by handlers.
type AgentFacade interface {
	Register(ctx context.Context, login, password string) (string, error)
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (int64, error)
}

// OrderFacade exposes directory reads and checkout ingest.
type OrderFacade interface {
	PendingOrders(ctx context.Context, page, limit int) ([]model.PendingOrder, error)
	FindOrder(ctx context.Context, query string) (*model.Order, error)
	OrderDetail(ctx context.Context, number string) (*model.Order, *model.Payment, error)
	IngestOrder(ctx context.Context, order *model.Order) (*model.Order, error)
}

// PaymentFacade runs the reconciliation flow for submitted evidence.
type PaymentFacade interface {
	RecordPayment(ctx context.Context, number string, record model.PaymentRecord) usecase.Outcome
}

// DashboardFacade computes collection figures over the whole pending set.
type DashboardFacade interface {
	PendingSummary(ctx context.Context) (model.PendingSummary, error)
}

// CollectionsFacade aggregates the full set of operations used across handlers.
type CollectionsFacade interface {
	AgentFacade
	OrderFacade
	PaymentFacade
	DashboardFacade
}
