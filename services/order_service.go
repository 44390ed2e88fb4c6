package services

import (
	"aureliaskin_server/lib"
	"aureliaskin_server/structs"
	"aureliaskin_server/structs/tables"
	"context"
	"fmt"
	"time"

	"github.com/MonkyMars/gecho"
)

type OrderService struct {
	logger       *gecho.Logger
	cfg          *structs.Config
	store        OrderStore
	emailService *EmailService
}

func NewOrderService(
	logger *gecho.Logger,
	cfg *structs.Config,
	store OrderStore,
	emailService *EmailService,
) *OrderService {
	return &OrderService{
		logger:       logger,
		cfg:          cfg,
		store:        store,
		emailService: emailService,
	}
}

// PlaceOrder executes the checkout sequence: resolve the buyer profile,
// create the order with its shipping snapshot, insert one order item and one
// stock decrement per line item, create a pending payment, and clear the
// buyer's cart. Stages two through five run in a single transaction, so a
// failure at any stage leaves no partial writes behind.
func (os *OrderService) PlaceOrder(ctx context.Context, req *structs.PlaceOrderRequest) (*structs.PlaceOrderResult, error) {
	os.logger.Info("PlaceOrder started",
		gecho.Field("user_id", req.UserID),
		gecho.Field("items_count", len(req.Items)))

	// Stage 1: resolve the buyer. Read-only, so it runs before the
	// transaction; a miss short-circuits with nothing written.
	profile, err := os.store.ResolveProfile(ctx, req.UserID)
	if err != nil {
		os.logger.Error("Failed to resolve profile", gecho.Field("error", err), gecho.Field("user_id", req.UserID))
		return nil, err
	}
	if profile == nil {
		os.logger.Warn("Profile not found for checkout", gecho.Field("user_id", req.UserID))
		return nil, lib.ErrProfileNotFound
	}

	orderNumber := lib.GenerateOrderNumber(os.cfg.Orders.NumberPrefix)

	order := &tables.Order{
		ProfileId:     profile.Id,
		OrderNumber:   orderNumber,
		RecipientName: req.Address.RecipientName,
		PhoneNumber:   req.Address.PhoneNumber,
		AddressLine1:  req.Address.AddressLine1,
		AddressLine2:  req.Address.AddressLine2,
		City:          req.Address.City,
		Province:      req.Address.Province,
		PostalCode:    req.Address.PostalCode,
		Country:       req.Address.Country,
		TotalAmount:   req.Total,
		Status:        tables.OrderStatusCreated,
		CreatedAt:     time.Now(),
	}

	err = os.store.RunCheckout(ctx, func(tx CheckoutTx) error {
		// Stage 2: create the order row
		if err := tx.InsertOrder(ctx, order); err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		// Stage 3: order items and stock decrements, in the array order
		// the client supplied
		for _, item := range req.Items {
			orderItem := &tables.OrderItem{
				OrderId:     order.Id,
				ProductId:   item.ID,
				ProductName: item.Name,
				Price:       item.Price,
				Quantity:    item.Quantity,
			}
			if err := tx.InsertOrderItem(ctx, orderItem); err != nil {
				return fmt.Errorf("insert order item for product %d: %w", item.ID, err)
			}
			if err := tx.DecrementStock(ctx, item.ID, item.Quantity); err != nil {
				return fmt.Errorf("decrement stock for product %d: %w", item.ID, err)
			}
		}

		// Stage 4: pending payment for the full order total
		payment := &tables.Payment{
			OrderId:         order.Id,
			PaymentMethodId: req.PaymentMethodID,
			Amount:          req.Total,
			Status:          tables.PaymentStatusPending,
			CreatedAt:       time.Now(),
		}
		if err := tx.InsertPayment(ctx, payment); err != nil {
			return fmt.Errorf("insert payment: %w", err)
		}

		// Stage 5: clear the buyer's cart, items before parent
		cart, err := tx.FindCart(ctx, profile.Id)
		if err != nil {
			return fmt.Errorf("find cart: %w", err)
		}
		if cart == nil {
			return lib.ErrCartNotFound
		}
		if _, err := tx.DeleteCartItems(ctx, cart.Id); err != nil {
			return fmt.Errorf("delete cart items: %w", err)
		}
		if err := tx.DeleteCart(ctx, cart.Id); err != nil {
			return fmt.Errorf("delete cart: %w", err)
		}

		return nil
	})
	if err != nil {
		os.logger.Error("Checkout transaction failed, rolled back",
			gecho.Field("error", err),
			gecho.Field("order_number", orderNumber))
		return nil, err
	}

	// Confirmation email is best-effort and never blocks the response
	go func() {
		if emailErr := os.emailService.SendOrderConfirmationEmail(profile.Email, req.Address.RecipientName, order, req.Items); emailErr != nil {
			os.logger.Error("Failed to send order confirmation email",
				gecho.Field("error", emailErr),
				gecho.Field("order_number", orderNumber))
		}
	}()

	os.logger.Info("Order placed successfully",
		gecho.Field("order_id", order.Id),
		gecho.Field("order_number", orderNumber),
		gecho.Field("total", req.Total))

	return &structs.PlaceOrderResult{
		OrderID:     order.Id,
		OrderNumber: orderNumber,
	}, nil
}
