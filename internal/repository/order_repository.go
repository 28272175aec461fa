package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/087pedyedkai/merch-shop/internal/domain"
	"github.com/087pedyedkai/merch-shop/internal/kvstore"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrEmptyOrder         = errors.New("order must contain at least one item")
	ErrMissingCustomer    = errors.New("order requires a signed-in customer")
	ErrInvalidOrderStatus = errors.New("invalid order status")
	ErrInvalidPayment     = errors.New("invalid payment method")
)

// OrderRepository defines the interface for order data access. Orders are
// immutable once created except for their status.
type OrderRepository interface {
	Create(ctx context.Context, identity domain.Identity, items []domain.CartItem, shipping domain.ShippingInfo, payment domain.PaymentMethod) (*domain.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error)
	FindByID(ctx context.Context, orderID string) (*domain.Order, error)
	ListForCustomer(ctx context.Context, customerID string) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	ListByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error)
	Stats(ctx context.Context) (*domain.OrderStats, error)
}

type orderRepository struct {
	kv kvstore.Store
	mu sync.Mutex
}

// NewOrderRepository creates a new instance of OrderRepository
func NewOrderRepository(kv kvstore.Store) OrderRepository {
	return &orderRepository{kv: kv}
}

func (r *orderRepository) load(ctx context.Context) []domain.Order {
	orders := []domain.Order{}
	kvstore.Load(ctx, r.kv, kvstore.KeyOrders, &orders)
	return orders
}

func (r *orderRepository) save(ctx context.Context, orders []domain.Order) error {
	if err := kvstore.Save(ctx, r.kv, kvstore.KeyOrders, orders); err != nil {
		return fmt.Errorf("failed to persist orders: %w", err)
	}
	return nil
}

// Create assembles and persists a new pending order. The customer fields
// are denormalized from the identity and the line items are frozen as
// given; the total is computed here once and never recomputed, so later
// catalog price changes cannot alter order history.
func (r *orderRepository) Create(ctx context.Context, identity domain.Identity, items []domain.CartItem, shipping domain.ShippingInfo, payment domain.PaymentMethod) (*domain.Order, error) {
	if identity.ID == "" {
		return nil, ErrMissingCustomer
	}
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}
	if !payment.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPayment, payment)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	orders := r.load(ctx)

	frozen := make([]domain.CartItem, len(items))
	copy(frozen, items)

	var total float64
	for _, item := range frozen {
		total += item.Subtotal()
	}

	order := domain.Order{
		ID:            nextOrderID(orders),
		CustomerID:    identity.ID,
		CustomerName:  identity.Name,
		CustomerEmail: identity.Email,
		Items:         frozen,
		Total:         total,
		ShippingInfo:  shipping,
		PaymentMethod: payment,
		Status:        domain.OrderStatusPending,
		CreatedAt:     time.Now().UTC(),
	}

	orders = append(orders, order)
	if err := r.save(ctx, orders); err != nil {
		return nil, err
	}

	return &order, nil
}

// UpdateStatus sets an order's status and stamps UpdatedAt. Any status
// may follow any other; there is no transition graph.
func (r *orderRepository) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidOrderStatus, status)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	orders := r.load(ctx)
	for i := range orders {
		if orders[i].ID != orderID {
			continue
		}

		orders[i].Status = status
		now := time.Now().UTC()
		orders[i].UpdatedAt = &now

		if err := r.save(ctx, orders); err != nil {
			return nil, err
		}
		return &orders[i], nil
	}

	return nil, ErrOrderNotFound
}

// FindByID retrieves an order by ID
func (r *orderRepository) FindByID(ctx context.Context, orderID string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, order := range r.load(ctx) {
		if order.ID == orderID {
			return &order, nil
		}
	}

	return nil, ErrOrderNotFound
}

// ListForCustomer retrieves a customer's orders, newest first.
func (r *orderRepository) ListForCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matched := []domain.Order{}
	for _, order := range r.load(ctx) {
		if order.CustomerID == customerID {
			matched = append(matched, order)
		}
	}
	sortNewestFirst(matched)

	return matched, nil
}

// ListAll retrieves every order, newest first.
func (r *orderRepository) ListAll(ctx context.Context) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders := r.load(ctx)
	sortNewestFirst(orders)

	return orders, nil
}

// ListByStatus retrieves all orders currently in the given status.
func (r *orderRepository) ListByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matched := []domain.Order{}
	for _, order := range r.load(ctx) {
		if order.Status == status {
			matched = append(matched, order)
		}
	}

	return matched, nil
}

// Stats aggregates the order collection. Revenue counts completed orders
// only: pending and cancelled orders contribute nothing.
func (r *orderRepository) Stats(ctx context.Context) (*domain.OrderStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats := &domain.OrderStats{}
	for _, order := range r.load(ctx) {
		stats.TotalOrders++
		switch order.Status {
		case domain.OrderStatusPending:
			stats.PendingOrders++
		case domain.OrderStatusCompleted:
			stats.CompletedOrders++
			stats.TotalRevenue += order.Total
		case domain.OrderStatusCancelled:
			stats.CancelledOrders++
		}
	}

	return stats, nil
}

// nextOrderID derives an order ID from the current time in milliseconds.
// If two orders land in the same millisecond the candidate is bumped
// until it is unique within the collection.
func nextOrderID(orders []domain.Order) string {
	taken := make(map[string]bool, len(orders))
	for _, order := range orders {
		taken[order.ID] = true
	}

	candidate := time.Now().UnixMilli()
	for taken[strconv.FormatInt(candidate, 10)] {
		candidate++
	}
	return strconv.FormatInt(candidate, 10)
}

func sortNewestFirst(orders []domain.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}
