package di

import (
	"go.uber.org/fx"

	"github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/app"
	"github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/config"
	"github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/logger"
	"github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/pkg/auth"
	"github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/server/http/router"
	"github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/storage/postgres"
	"github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/usecase"
)

// Module assembles the full service graph. Extra options let tests swap
// storage and repositories for stubs.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
