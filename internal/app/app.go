package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/config"
	"github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/domain/repository"
	"github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/server/http/handlers"
	"github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/usecase"
	"github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		newCollectionsFacade,
		func(f *CollectionsFacade) handlers.CollectionsFacade { return f },
		func(f *CollectionsFacade) worker.CollectionsFacade { return f },
		newHTTPServer,
		newSummaryReporter,
	),
	fx.Invoke(registerLifecycle),
)

type facadeParams struct {
	fx.In

	Agents    *usecase.AgentUseCase
	Lookup    *usecase.LookupUseCase
	Reconcile *usecase.ReconcileUseCase
	Dashboard *usecase.DashboardUseCase
	Orders    repository.OrderRepository
	Payments  repository.PaymentRepository
	Config    *config.Config
}

func newCollectionsFacade(p facadeParams) *CollectionsFacade {
	return NewCollectionsFacade(p.Agents, p.Lookup, p.Reconcile, p.Dashboard, p.Orders, p.Payments, p.Config.PendingPageSize)
}

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type reporterParams struct {
	fx.In

	Facade worker.CollectionsFacade
	Config *config.Config
	Logger *slog.Logger
}

func newSummaryReporter(p reporterParams) *worker.SummaryReporter {
	return worker.NewSummaryReporter(p.Facade, p.Config.SummaryInterval, p.Logger)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Reporter   *worker.SummaryReporter
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting collections service", slog.String("addr", p.Server.Addr))
			p.Reporter.Start(ctx)
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Reporter.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("collections service stopped")
			return nil
		},
	})
}
