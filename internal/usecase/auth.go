package usecase

import (
	"context"
	"errors"
	"strings"

	domainErrors "github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/domain/errors"
	"github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/domain/model"
	"github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/domain/repository"
	pkgAuth "github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/pkg/auth"
)

// AgentUseCase handles field agent accounts and token management.
type AgentUseCase struct {
	agents repository.AgentRepository
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.Strategy
}

// NewAgentUseCase constructs AgentUseCase.
func NewAgentUseCase(agents repository.AgentRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AgentUseCase {
	return &AgentUseCase{agents: agents, hasher: hasher, tokens: strategy}
}

// Register creates a new agent with login/password and returns auth token.
func (u *AgentUseCase) Register(ctx context.Context, login, password string) (*model.Agent, string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	agent, err := u.agents.Create(ctx, login, hash)
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, "", domainErrors.ErrAlreadyExists
		}
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(agent.ID)
	if err != nil {
		return nil, "", err
	}

	return agent, token, nil
}

// Authenticate validates credentials and returns auth token.
func (u *AgentUseCase) Authenticate(ctx context.Context, login, password string) (*model.Agent, string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	agent, err := u.agents.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(agent.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(agent.ID)
	if err != nil {
		return nil, "", err
	}

	return agent, token, nil
}

// ParseToken extracts agent ID from provided token.
func (u *AgentUseCase) ParseToken(token string) (int64, error) {
	if token == "" {
		return 0, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}
