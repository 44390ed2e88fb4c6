package orders

import (
	"aureliaskin_server/services"

	"github.com/go-chi/chi/v5"
)

type OrderRoutesManager struct {
	orderService   *services.OrderService
	receiptService *services.ReceiptService
}

func NewOrderRoutesManager(orderService *services.OrderService, receiptService *services.ReceiptService) *OrderRoutesManager {
	return &OrderRoutesManager{
		orderService:   orderService,
		receiptService: receiptService,
	}
}

func (orm *OrderRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/api/orders", func(r chi.Router) {
		r.Post("/", orm.PlaceOrder)
		r.Get("/{orderNumber}", orm.GetReceipt)
	})
}
