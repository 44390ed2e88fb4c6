package services

import (
	"aureliaskin_server/database"
	"aureliaskin_server/structs"

	"github.com/MonkyMars/gecho"
)

type ServiceManager struct {
	CacheService   *CacheService
	EmailService   *EmailService
	HealthService  *HealthService
	OrderService   *OrderService
	ReceiptService *ReceiptService
}

func NewServiceManager(logger *gecho.Logger, cfg *structs.Config, db *database.DB) *ServiceManager {
	cacheService := NewCacheService(logger, cfg)
	emailService := NewEmailService(logger, cfg)
	healthService := NewHealthService(logger, db)
	orderService := NewOrderService(logger, cfg, NewOrderStore(db), emailService)
	receiptService := NewReceiptService(logger, cfg, NewReceiptStore(db), cacheService)

	return &ServiceManager{
		CacheService:   cacheService,
		EmailService:   emailService,
		HealthService:  healthService,
		OrderService:   orderService,
		ReceiptService: receiptService,
	}
}
