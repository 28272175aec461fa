package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/087pedyedkai/merch-shop/internal/domain"
	"github.com/087pedyedkai/merch-shop/internal/kvstore"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidProduct  = errors.New("invalid product")
)

// CatalogRepository defines the interface for product data access
type CatalogRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	ListByCategory(ctx context.Context, category string) ([]domain.Product, error)
	Search(ctx context.Context, query string) ([]domain.Product, error)
	Add(ctx context.Context, draft domain.Product) (*domain.Product, error)
	Update(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error)
	Remove(ctx context.Context, id string) error
	DecrementStock(ctx context.Context, id string, quantity int) error
}

type catalogRepository struct {
	kv kvstore.Store
	mu sync.Mutex
}

// NewCatalogRepository creates a new instance of CatalogRepository
func NewCatalogRepository(kv kvstore.Store) CatalogRepository {
	return &catalogRepository{kv: kv}
}

// load reads the product collection, seeding the default catalog the
// first time the store is found empty so the shop is usable without an
// administrator adding items.
func (r *catalogRepository) load(ctx context.Context) []domain.Product {
	var products []domain.Product
	if kvstore.Load(ctx, r.kv, kvstore.KeyProducts, &products) {
		return products
	}

	products = defaultCatalog()
	_ = kvstore.Save(ctx, r.kv, kvstore.KeyProducts, products)
	return products
}

func (r *catalogRepository) save(ctx context.Context, products []domain.Product) error {
	if err := kvstore.Save(ctx, r.kv, kvstore.KeyProducts, products); err != nil {
		return fmt.Errorf("failed to persist catalog: %w", err)
	}
	return nil
}

// List retrieves all products. Order is not significant; consumers sort
// and filter as needed.
func (r *catalogRepository) List(ctx context.Context) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.load(ctx), nil
}

// FindByID retrieves a product by ID
func (r *catalogRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.load(ctx) {
		if p.ID == id {
			return &p, nil
		}
	}

	return nil, ErrProductNotFound
}

// ListByCategory retrieves all products with the given category label.
func (r *catalogRepository) ListByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matched := []domain.Product{}
	for _, p := range r.load(ctx) {
		if p.Category == category {
			matched = append(matched, p)
		}
	}

	return matched, nil
}

// Search retrieves products whose name, description or category contains
// the query, case-insensitively. An empty query matches everything.
func (r *catalogRepository) Search(ctx context.Context, query string) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	q := strings.ToLower(query)
	matched := []domain.Product{}
	for _, p := range r.load(ctx) {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) ||
			strings.Contains(strings.ToLower(p.Category), q) {
			matched = append(matched, p)
		}
	}

	return matched, nil
}

// Add validates a product draft, assigns it an ID and creation time and
// appends it to the catalog.
func (r *catalogRepository) Add(ctx context.Context, draft domain.Product) (*domain.Product, error) {
	if err := domain.Validate(draft); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProduct, domain.FormatValidationErrors(err))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	draft.ID = uuid.NewString()
	draft.CreatedAt = time.Now().UTC()
	draft.UpdatedAt = nil

	products := append(r.load(ctx), draft)
	if err := r.save(ctx, products); err != nil {
		return nil, err
	}

	return &draft, nil
}

// Update merges patch fields into an existing product and stamps UpdatedAt.
func (r *catalogRepository) Update(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error) {
	if err := domain.Validate(patch); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProduct, domain.FormatValidationErrors(err))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	products := r.load(ctx)
	for i := range products {
		if products[i].ID != id {
			continue
		}

		applyPatch(&products[i], patch)
		now := time.Now().UTC()
		products[i].UpdatedAt = &now

		if err := r.save(ctx, products); err != nil {
			return nil, err
		}
		return &products[i], nil
	}

	return nil, ErrProductNotFound
}

// Remove deletes a product. Removing an unknown ID is not an error.
func (r *catalogRepository) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	products := r.load(ctx)
	kept := products[:0]
	for _, p := range products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}

	return r.save(ctx, kept)
}

// DecrementStock reduces a product's stock by quantity, clamping at zero.
// The clamp (rather than a rejection) on over-decrement is the observed
// behavior of the system and is preserved. Unknown IDs are ignored.
func (r *catalogRepository) DecrementStock(ctx context.Context, id string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	products := r.load(ctx)
	for i := range products {
		if products[i].ID == id {
			products[i].Stock = max(0, products[i].Stock-quantity)
			return r.save(ctx, products)
		}
	}

	return nil
}

func applyPatch(p *domain.Product, patch domain.ProductPatch) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Image != nil {
		p.Image = *patch.Image
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
}
