package api

import (
	"aureliaskin_server/api/health"
	"aureliaskin_server/api/orders"
	"aureliaskin_server/services"

	"github.com/go-chi/chi/v5"
)

type routerManager struct {
	orderRoutes  *orders.OrderRoutesManager
	healthRoutes *health.HealthRoutesManager
}

func NewRouterManager(sm *services.ServiceManager) *routerManager {
	return &routerManager{
		orderRoutes:  orders.NewOrderRoutesManager(sm.OrderService, sm.ReceiptService),
		healthRoutes: health.NewHealthRoutesManager(sm.HealthService),
	}
}

func (rm *routerManager) RegisterRoutes(r chi.Router) {
	rm.orderRoutes.RegisterRoutes(r)
	rm.healthRoutes.RegisterRoutes(r)
}
