package test

import (
	"context"

	domainErrors "github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/domain/errors"
	"github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/domain/model"
)

// AgentRepositoryStub stores agents in-memory for tests.
type AgentRepositoryStub struct {
	Agents map[string]*model.Agent
	ByID   map[int64]*model.Agent
	Next   int64
	Err    error
}

// NewAgentRepositoryStub constructs stub repository with initialized maps.
func NewAgentRepositoryStub() *AgentRepositoryStub {
	return &AgentRepositoryStub{
		Agents: make(map[string]*model.Agent),
		ByID:   make(map[int64]*model.Agent),
		Next:   1,
	}
}

// Create registers agent unless already exists or stub has explicit error.
func (s *AgentRepositoryStub) Create(ctx context.Context, login, passwordHash string) (*model.Agent, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Agents == nil {
		s.Agents = make(map[string]*model.Agent)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.Agent)
	}
	if _, exists := s.Agents[login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	agent := &model.Agent{ID: s.Next, Login: login, PasswordHash: passwordHash}
	s.Next++
	s.Agents[login] = agent
	s.ByID[agent.ID] = agent
	return agent, nil
}

// GetByLogin fetches agent by login or returns not found.
func (s *AgentRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.Agent, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if agent, ok := s.Agents[login]; ok {
		return agent, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches agent by identifier or returns not found.
func (s *AgentRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Agent, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if agent, ok := s.ByID[id]; ok {
		return agent, nil
	}
	return nil, domainErrors.ErrNotFound
}

// CommitCall records one CommitPayment invocation.
type CommitCall struct {
	Number string
	Record model.PaymentRecord
}

// OrderRepositoryStub allows tests to customize directory behaviour and to
// assert how many times the write path was touched.
type OrderRepositoryStub struct {
	CreateFn             func(context.Context, *model.Order) (*model.Order, error)
	GetByNumberFn        func(context.Context, string) (*model.Order, error)
	ListPendingPaymentFn func(context.Context, int, int) ([]model.PendingOrder, error)
	CommitPaymentFn      func(context.Context, string, model.PaymentRecord) (*model.PaymentReceipt, error)

	Orders  []model.Order
	Pending []model.PendingOrder
	Commits []CommitCall
	Gets    []string
}

// Create delegates to override or echoes the order back.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	return order, nil
}

// GetByNumber returns matched order either via override or stored slice.
func (s *OrderRepositoryStub) GetByNumber(ctx context.Context, number string) (*model.Order, error) {
	s.Gets = append(s.Gets, number)
	if s.GetByNumberFn != nil {
		return s.GetByNumberFn(ctx, number)
	}
	for _, o := range s.Orders {
		if o.OrderNumber == number {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListPendingPayment pages through the configured pending slice.
func (s *OrderRepositoryStub) ListPendingPayment(ctx context.Context, limit, offset int) ([]model.PendingOrder, error) {
	if s.ListPendingPaymentFn != nil {
		return s.ListPendingPaymentFn(ctx, limit, offset)
	}
	if offset >= len(s.Pending) {
		return nil, nil
	}
	end := offset + limit
	if end > len(s.Pending) {
		end = len(s.Pending)
	}
	return s.Pending[offset:end], nil
}

// CommitPayment records the call and delegates to the override.
func (s *OrderRepositoryStub) CommitPayment(ctx context.Context, number string, record model.PaymentRecord) (*model.PaymentReceipt, error) {
	s.Commits = append(s.Commits, CommitCall{Number: number, Record: record})
	if s.CommitPaymentFn != nil {
		return s.CommitPaymentFn(ctx, number, record)
	}
	return &model.PaymentReceipt{TransactionReference: "TXN-STUB", OrderNumber: number, Method: record.Method}, nil
}

// PaymentRepositoryStub returns configured payment evidence.
type PaymentRepositoryStub struct {
	GetFn   func(context.Context, string) (*model.Payment, error)
	Payment *model.Payment
}

// GetByOrderNumber returns stored evidence or not found.
func (s *PaymentRepositoryStub) GetByOrderNumber(ctx context.Context, number string) (*model.Payment, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, number)
	}
	if s.Payment == nil {
		return nil, domainErrors.ErrNotFound
	}
	return s.Payment, nil
}
