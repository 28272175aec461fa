package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/087pedyedkai/merch-shop/internal/domain"
	"github.com/087pedyedkai/merch-shop/internal/repository"

	"go.uber.org/zap"
)

var (
	ErrNotSignedIn     = errors.New("checkout requires a signed-in customer")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrInvalidShipping = errors.New("invalid shipping info")
)

// CheckoutService orchestrates the one multi-store operation: turning a
// cart into a placed order, decrementing stock and clearing the cart.
type CheckoutService interface {
	PlaceOrder(ctx context.Context, identity domain.Identity, shipping domain.ShippingInfo, payment domain.PaymentMethod) (*domain.Order, error)
}

type checkoutService struct {
	catalog repository.CatalogRepository
	carts   repository.CartRepository
	orders  repository.OrderRepository
	logger  *zap.Logger
}

// NewCheckoutService creates a new instance of CheckoutService
func NewCheckoutService(
	catalog repository.CatalogRepository,
	carts repository.CartRepository,
	orders repository.OrderRepository,
	logger *zap.Logger,
) CheckoutService {
	return &checkoutService{
		catalog: catalog,
		carts:   carts,
		orders:  orders,
		logger:  logger,
	}
}

// PlaceOrder runs the checkout sequence. The order is created first: if
// that fails, nothing else has happened and the system is unchanged.
// Stock decrements and the cart clear follow; a failure in those steps
// leaves the order in place and is logged rather than rolled back, since
// the single-writer deployment has no compensating transaction.
func (s *checkoutService) PlaceOrder(ctx context.Context, identity domain.Identity, shipping domain.ShippingInfo, payment domain.PaymentMethod) (*domain.Order, error) {
	if identity.ID == "" {
		return nil, ErrNotSignedIn
	}
	if err := domain.Validate(shipping); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidShipping, domain.FormatValidationErrors(err))
	}

	items, err := s.carts.Items(ctx, identity.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	order, err := s.orders.Create(ctx, identity, items, shipping, payment)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	for _, item := range items {
		if err := s.catalog.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			s.logger.Error("partial checkout: stock decrement failed after order creation",
				zap.String("order_id", order.ID),
				zap.String("product_id", item.ProductID),
				zap.Error(err),
			)
		}
	}

	if err := s.carts.Clear(ctx, identity.ID); err != nil {
		s.logger.Error("partial checkout: cart clear failed after order creation",
			zap.String("order_id", order.ID),
			zap.String("customer_id", identity.ID),
			zap.Error(err),
		)
	}

	s.logger.Info("order placed",
		zap.String("order_id", order.ID),
		zap.String("customer_id", identity.ID),
		zap.Float64("total", order.Total),
	)

	return order, nil
}
