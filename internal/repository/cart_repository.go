package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/087pedyedkai/merch-shop/internal/domain"
	"github.com/087pedyedkai/merch-shop/internal/kvstore"
)

// CartRepository defines the interface for cart data access. Every
// operation takes the owning customer ID explicitly; there is no ambient
// "current user". With an empty customer ID the cart observes as empty
// and mutations do nothing, so a signed-out session can never read or
// write another identity's cart.
type CartRepository interface {
	Items(ctx context.Context, customerID string) ([]domain.CartItem, error)
	AddItem(ctx context.Context, customerID string, product *domain.Product, quantity int) error
	RemoveItem(ctx context.Context, customerID, productID string) error
	SetQuantity(ctx context.Context, customerID, productID string, quantity int) error
	Clear(ctx context.Context, customerID string) error
	Total(ctx context.Context, customerID string) (float64, error)
	ItemCount(ctx context.Context, customerID string) (int, error)
	Contains(ctx context.Context, customerID, productID string) (bool, error)
	Find(ctx context.Context, customerID, productID string) (*domain.CartItem, error)
}

type cartRepository struct {
	kv kvstore.Store
	mu sync.Mutex
}

// NewCartRepository creates a new instance of CartRepository
func NewCartRepository(kv kvstore.Store) CartRepository {
	return &cartRepository{kv: kv}
}

func (r *cartRepository) load(ctx context.Context, customerID string) []domain.CartItem {
	items := []domain.CartItem{}
	if customerID == "" {
		return items
	}
	kvstore.Load(ctx, r.kv, kvstore.CartKey(customerID), &items)
	return items
}

func (r *cartRepository) save(ctx context.Context, customerID string, items []domain.CartItem) error {
	if err := kvstore.Save(ctx, r.kv, kvstore.CartKey(customerID), items); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	return nil
}

// Items returns the cart lines for the customer.
func (r *cartRepository) Items(ctx context.Context, customerID string) ([]domain.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.load(ctx, customerID), nil
}

// AddItem merges a product into the cart: an existing line for the same
// product has its quantity incremented, otherwise a new line snapshots
// the product as it is right now. Quantities below one count as one.
func (r *cartRepository) AddItem(ctx context.Context, customerID string, product *domain.Product, quantity int) error {
	if customerID == "" {
		return nil
	}
	if quantity < 1 {
		quantity = 1
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.load(ctx, customerID)
	for i := range items {
		if items[i].ProductID == product.ID {
			items[i].Quantity += quantity
			return r.save(ctx, customerID, items)
		}
	}

	items = append(items, domain.NewCartItem(product, quantity))
	return r.save(ctx, customerID, items)
}

// RemoveItem deletes the line for productID if present.
func (r *cartRepository) RemoveItem(ctx context.Context, customerID, productID string) error {
	if customerID == "" {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.load(ctx, customerID)
	kept := items[:0]
	for _, item := range items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}

	return r.save(ctx, customerID, kept)
}

// SetQuantity overwrites a line's quantity. A quantity of zero or less
// removes the line. Live stock is not consulted here; clamping a
// quantity against stock is a presentation concern.
func (r *cartRepository) SetQuantity(ctx context.Context, customerID, productID string, quantity int) error {
	if customerID == "" {
		return nil
	}
	if quantity <= 0 {
		return r.RemoveItem(ctx, customerID, productID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.load(ctx, customerID)
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity = quantity
			return r.save(ctx, customerID, items)
		}
	}

	return nil
}

// Clear empties the cart and removes its persisted record.
func (r *cartRepository) Clear(ctx context.Context, customerID string) error {
	if customerID == "" {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.kv.Delete(ctx, kvstore.CartKey(customerID)); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// Total returns the sum of price * quantity over all lines.
func (r *cartRepository) Total(ctx context.Context, customerID string) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var total float64
	for _, item := range r.load(ctx, customerID) {
		total += item.Subtotal()
	}
	return total, nil
}

// ItemCount returns the sum of quantities over all lines.
func (r *cartRepository) ItemCount(ctx context.Context, customerID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int
	for _, item := range r.load(ctx, customerID) {
		count += item.Quantity
	}
	return count, nil
}

// Contains reports whether the cart holds a line for productID.
func (r *cartRepository) Contains(ctx context.Context, customerID, productID string) (bool, error) {
	item, err := r.Find(ctx, customerID, productID)
	if err != nil {
		return false, err
	}
	return item != nil, nil
}

// Find returns the cart line for productID, or nil if absent.
func (r *cartRepository) Find(ctx context.Context, customerID, productID string) (*domain.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range r.load(ctx, customerID) {
		if item.ProductID == productID {
			return &item, nil
		}
	}
	return nil, nil
}
