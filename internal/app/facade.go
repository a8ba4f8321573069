package app

import (
	"context"

	domainErrors "github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/domain/errors"
	"github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/domain/model"
	"github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/domain/repository"
	"github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/usecase"
)

// CollectionsFacade is the application surface behind the HTTP handlers and
// the background reporter. It adapts use-case signatures to the transport's
// needs: token-only auth results, page-based listing, evidence attached to
// settled orders.
type CollectionsFacade struct {
	agents    *usecase.AgentUseCase
	lookup    *usecase.LookupUseCase
	reconcile *usecase.ReconcileUseCase
	dashboard *usecase.DashboardUseCase
	orders    repository.OrderRepository
	payments  repository.PaymentRepository
	pageSize  int
}

// NewCollectionsFacade constructs the application facade.
func NewCollectionsFacade(
	agents *usecase.AgentUseCase,
	lookup *usecase.LookupUseCase,
	reconcile *usecase.ReconcileUseCase,
	dashboard *usecase.DashboardUseCase,
	orders repository.OrderRepository,
	payments repository.PaymentRepository,
	pageSize int,
) *CollectionsFacade {
	if pageSize <= 0 {
		pageSize = 1
	}
	return &CollectionsFacade{
		agents:    agents,
		lookup:    lookup,
		reconcile: reconcile,
		dashboard: dashboard,
		orders:    orders,
		payments:  payments,
		pageSize:  pageSize,
	}
}

func (f *CollectionsFacade) Register(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.agents.Register(ctx, login, password)
	return token, err
}

func (f *CollectionsFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.agents.Authenticate(ctx, login, password)
	return token, err
}

func (f *CollectionsFacade) ParseToken(token string) (int64, error) {
	return f.agents.ParseToken(token)
}

// PendingOrders translates 1-based pages into offsets. The page size is
// clamped to the configured maximum so no request can drag in the whole
// pending set at once.
func (f *CollectionsFacade) PendingOrders(ctx context.Context, page, limit int) ([]model.PendingOrder, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > f.pageSize {
		limit = f.pageSize
	}
	offset := (page - 1) * limit
	return f.dashboard.PendingOrders(ctx, limit, offset)
}

func (f *CollectionsFacade) FindOrder(ctx context.Context, query string) (*model.Order, error) {
	return f.lookup.Find(ctx, query)
}

// OrderDetail resolves an order and, once it is settled, the payment
// evidence recorded against it. A paid order whose evidence row is missing
// is served without it rather than failing the whole read.
func (f *CollectionsFacade) OrderDetail(ctx context.Context, number string) (*model.Order, *model.Payment, error) {
	order, err := f.lookup.Find(ctx, number)
	if err != nil {
		return nil, nil, err
	}
	if order.PaymentStatus != model.PaymentStatusPaid {
		return order, nil, nil
	}
	payment, err := f.payments.GetByOrderNumber(ctx, order.OrderNumber)
	if err != nil {
		if err == domainErrors.ErrNotFound {
			return order, nil, nil
		}
		return nil, nil, err
	}
	return order, payment, nil
}

// IngestOrder validates and stores a checkout order. Numbers are normalized
// before storage so later lookups match regardless of input casing.
func (f *CollectionsFacade) IngestOrder(ctx context.Context, order *model.Order) (*model.Order, error) {
	order.OrderNumber = usecase.NormalizeOrderNumber(order.OrderNumber)
	if order.OrderNumber == "" {
		return nil, domainErrors.ErrEmptyOrderNumber
	}
	if !order.TotalsConsistent() {
		return nil, domainErrors.ErrInvalidOrderTotal
	}
	return f.orders.Create(ctx, order)
}

func (f *CollectionsFacade) RecordPayment(ctx context.Context, number string, record model.PaymentRecord) usecase.Outcome {
	return f.reconcile.RecordPayment(ctx, number, record)
}

func (f *CollectionsFacade) PendingSummary(ctx context.Context) (model.PendingSummary, error) {
	return f.dashboard.Summary(ctx)
}
