package services

import (
	"aureliaskin_server/lib"
	"aureliaskin_server/structs"
	"context"

	"github.com/MonkyMars/gecho"
)

// UnknownPaymentMethod is substituted when the payment row or its method
// cannot be resolved for a receipt.
const UnknownPaymentMethod = "Unknown"

// ReceiptCache is the slice of the cache service the receipt reader needs.
type ReceiptCache interface {
	GetReceipt(orderNumber string) (*structs.Receipt, error)
	SetReceipt(orderNumber string, receipt *structs.Receipt) error
}

type ReceiptService struct {
	logger       *gecho.Logger
	cfg          *structs.Config
	store        ReceiptStore
	cacheService ReceiptCache
}

func NewReceiptService(
	logger *gecho.Logger,
	cfg *structs.Config,
	store ReceiptStore,
	cacheService ReceiptCache,
) *ReceiptService {
	return &ReceiptService{
		logger:       logger,
		cfg:          cfg,
		store:        store,
		cacheService: cacheService,
	}
}

// GetReceipt assembles the customer-facing receipt for an order number. The
// order itself must exist; payment method and item images are optional
// enrichments that degrade to defaults instead of failing the read.
func (rs *ReceiptService) GetReceipt(ctx context.Context, orderNumber string) (*structs.Receipt, error) {
	if cached, err := rs.cacheService.GetReceipt(orderNumber); err != nil {
		rs.logger.Warn("Failed to read receipt from cache", gecho.Field("error", err), gecho.Field("order_number", orderNumber))
	} else if cached != nil {
		rs.logger.Debug("Receipt served from cache", gecho.Field("order_number", orderNumber))
		return cached, nil
	}

	order, err := rs.store.FindOrderByNumber(ctx, orderNumber)
	if err != nil {
		rs.logger.Error("Failed to fetch order for receipt", gecho.Field("error", err), gecho.Field("order_number", orderNumber))
		return nil, err
	}
	if order == nil {
		return nil, lib.ErrNotFound
	}

	// Optional enrichment: resolve the payment method display name
	paymentMethod := UnknownPaymentMethod
	payment, err := rs.store.FindPayment(ctx, order.Id)
	if err != nil {
		rs.logger.Warn("Failed to fetch payment for receipt, degrading",
			gecho.Field("error", err), gecho.Field("order_id", order.Id))
	} else if payment != nil {
		method, err := rs.store.FindPaymentMethod(ctx, payment.PaymentMethodId)
		if err != nil {
			rs.logger.Warn("Failed to fetch payment method for receipt, degrading",
				gecho.Field("error", err), gecho.Field("payment_method_id", payment.PaymentMethodId))
		} else if method != nil {
			paymentMethod = method.Name
		}
	}

	items, err := rs.store.ListOrderItems(ctx, order.Id)
	if err != nil {
		rs.logger.Error("Failed to fetch order items for receipt", gecho.Field("error", err), gecho.Field("order_id", order.Id))
		return nil, err
	}

	receiptItems := make([]structs.ReceiptItem, 0, len(items))
	for _, item := range items {
		// Optional enrichment: primary product image
		imageURL := ""
		image, err := rs.store.FindPrimaryImage(ctx, item.ProductId)
		if err != nil {
			rs.logger.Warn("Failed to fetch product image for receipt, degrading",
				gecho.Field("error", err), gecho.Field("product_id", item.ProductId))
		} else if image != nil {
			imageURL = image.URL
		}

		receiptItems = append(receiptItems, structs.ReceiptItem{
			Name:     item.ProductName,
			Quantity: item.Quantity,
			Price:    item.Price,
			Image:    imageURL,
		})
	}

	receipt := &structs.Receipt{
		OrderNumber:   order.OrderNumber,
		Date:          order.CreatedAt.Format("2006-01-02"),
		Total:         order.TotalAmount,
		PaymentMethod: paymentMethod,
		Items:         receiptItems,
		Address: structs.ShippingAddress{
			RecipientName: order.RecipientName,
			PhoneNumber:   order.PhoneNumber,
			AddressLine1:  order.AddressLine1,
			AddressLine2:  order.AddressLine2,
			City:          order.City,
			Province:      order.Province,
			PostalCode:    order.PostalCode,
			Country:       order.Country,
		},
		EstimatedDelivery: rs.cfg.Orders.EstimatedDelivery,
	}

	// Cache asynchronously; a cache failure never affects the response
	go func() {
		if err := rs.cacheService.SetReceipt(orderNumber, receipt); err != nil {
			rs.logger.Warn("Failed to cache receipt", gecho.Field("error", err), gecho.Field("order_number", orderNumber))
		}
	}()

	return receipt, nil
}
