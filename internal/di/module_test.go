package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/app"
	"github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/config"
	"github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/domain/repository"
	"github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/storage/postgres"
	"github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/test"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:      ":0",
		DatabaseURI:     "postgres://stub",
		AuthSecret:      "secret",
		SummaryInterval: time.Millisecond,
		ShutdownTimeout: time.Millisecond,
		PendingPageSize: 1,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	agentRepo := test.NewAgentRepositoryStub()
	orderRepo := &test.OrderRepositoryStub{}
	paymentRepo := &test.PaymentRepositoryStub{}

	var facade *app.CollectionsFacade
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(repository.AgentRepository(agentRepo)),
			fx.Replace(repository.OrderRepository(orderRepo)),
			fx.Replace(repository.PaymentRepository(paymentRepo)),
		),
		fx.Populate(&facade),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected collections facade instance")
	}
}
