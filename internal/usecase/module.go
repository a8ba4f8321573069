package usecase

import (
	"go.uber.org/fx"

	"github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/config"
	"github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/domain/repository"
)

// Module provides core business use cases to the fx container.
var Module = fx.Options(
	fx.Provide(
		NewAgentUseCase,
		NewLookupUseCase,
		NewReconcileUseCase,
	),
	fx.Provide(newDashboardUseCase),
)

type dashboardParams struct {
	fx.In

	Orders repository.OrderRepository
	Config *config.Config
}

func newDashboardUseCase(p dashboardParams) *DashboardUseCase {
	return NewDashboardUseCase(p.Orders, p.Config.PendingPageSize)
}
