package repository

import (
	"context"

	"github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/domain/model"
)

// AgentRepository describes persistence operations for field agents.
type AgentRepository interface {
	Create(ctx context.Context, login, passwordHash string) (*model.Agent, error)
	GetByLogin(ctx context.Context, login string) (*model.Agent, error)
	GetByID(ctx context.Context, id int64) (*model.Agent, error)
}
