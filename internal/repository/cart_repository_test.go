package repository

import (
	"context"
	"reflect"
	"testing"

	"github.com/087pedyedkai/merch-shop/internal/domain"
	"github.com/087pedyedkai/merch-shop/internal/kvstore"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCustomer = "customer1"

func testProduct(id string, price float64) *domain.Product {
	return &domain.Product{
		ID:          id,
		Name:        "Product " + id,
		Description: "Test product",
		Price:       price,
		Category:    "Test",
		Image:       "https://example.com/" + id + ".png",
		Stock:       10,
	}
}

func TestCartRepository_AddItemMergesByProductID(t *testing.T) {
	repo := NewCartRepository(newTestKV(t))
	ctx := context.Background()
	p := testProduct("p1", 350)

	require.NoError(t, repo.AddItem(ctx, testCustomer, p, 2))
	require.NoError(t, repo.AddItem(ctx, testCustomer, p, 3))

	items, err := repo.Items(ctx, testCustomer)
	require.NoError(t, err)
	require.Len(t, items, 1, "same product never produces two lines")
	assert.Equal(t, 5, items[0].Quantity)
}

func TestCartRepository_AddItemSnapshotsProduct(t *testing.T) {
	repo := NewCartRepository(newTestKV(t))
	ctx := context.Background()
	p := testProduct("p1", 350)

	require.NoError(t, repo.AddItem(ctx, testCustomer, p, 1))

	// Mutating the product after the add must not affect the line.
	p.Price = 999
	p.Name = "changed"

	line, err := repo.Find(ctx, testCustomer, "p1")
	require.NoError(t, err)
	require.NotNil(t, line)
	assert.Equal(t, 350.0, line.Price)
	assert.Equal(t, "Product p1", line.Name)
}

func TestCartRepository_AddItemDefaultsQuantityToOne(t *testing.T) {
	repo := NewCartRepository(newTestKV(t))
	ctx := context.Background()

	require.NoError(t, repo.AddItem(ctx, testCustomer, testProduct("p1", 100), 0))

	count, err := repo.ItemCount(ctx, testCustomer)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCartRepository_SetQuantity(t *testing.T) {
	repo := NewCartRepository(newTestKV(t))
	ctx := context.Background()

	require.NoError(t, repo.AddItem(ctx, testCustomer, testProduct("p1", 100), 2))

	require.NoError(t, repo.SetQuantity(ctx, testCustomer, "p1", 7))
	line, err := repo.Find(ctx, testCustomer, "p1")
	require.NoError(t, err)
	require.NotNil(t, line)
	assert.Equal(t, 7, line.Quantity)

	// Zero or negative removes the line.
	require.NoError(t, repo.SetQuantity(ctx, testCustomer, "p1", 0))
	contains, err := repo.Contains(ctx, testCustomer, "p1")
	require.NoError(t, err)
	assert.False(t, contains)

	// Setting quantity on an absent line is a no-op.
	assert.NoError(t, repo.SetQuantity(ctx, testCustomer, "p1", 3))
}

func TestCartRepository_RemoveItem(t *testing.T) {
	repo := NewCartRepository(newTestKV(t))
	ctx := context.Background()

	require.NoError(t, repo.AddItem(ctx, testCustomer, testProduct("p1", 100), 1))
	require.NoError(t, repo.AddItem(ctx, testCustomer, testProduct("p2", 200), 1))

	require.NoError(t, repo.RemoveItem(ctx, testCustomer, "p1"))

	items, err := repo.Items(ctx, testCustomer)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "p2", items[0].ProductID)

	// Removing an absent line is a no-op.
	assert.NoError(t, repo.RemoveItem(ctx, testCustomer, "p1"))
}

func TestCartRepository_ClearRemovesPersistedRecord(t *testing.T) {
	kv := newTestKV(t)
	repo := NewCartRepository(kv)
	ctx := context.Background()

	require.NoError(t, repo.AddItem(ctx, testCustomer, testProduct("p1", 100), 2))
	require.NoError(t, repo.Clear(ctx, testCustomer))

	count, err := repo.ItemCount(ctx, testCustomer)
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = kv.Read(ctx, kvstore.CartKey(testCustomer))
	assert.ErrorIs(t, err, kvstore.ErrKeyNotFound)
}

func TestCartRepository_TotalAndItemCount(t *testing.T) {
	repo := NewCartRepository(newTestKV(t))
	ctx := context.Background()

	require.NoError(t, repo.AddItem(ctx, testCustomer, testProduct("p1", 350), 2))
	require.NoError(t, repo.AddItem(ctx, testCustomer, testProduct("p2", 450), 1))

	total, err := repo.Total(ctx, testCustomer)
	require.NoError(t, err)
	assert.Equal(t, 2*350.0+450.0, total)

	count, err := repo.ItemCount(ctx, testCustomer)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestCartRepository_IsolatedPerIdentity(t *testing.T) {
	repo := NewCartRepository(newTestKV(t))
	ctx := context.Background()

	require.NoError(t, repo.AddItem(ctx, "alice", testProduct("p1", 350), 2))

	// A different identity observes an empty cart.
	items, err := repo.Items(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, items)

	// Alice's cart survives the switch unchanged.
	items, err = repo.Items(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestCartRepository_AbsentIdentityObservesEmptyCart(t *testing.T) {
	repo := NewCartRepository(newTestKV(t))
	ctx := context.Background()

	// Mutations without an identity are no-ops.
	require.NoError(t, repo.AddItem(ctx, "", testProduct("p1", 350), 2))
	require.NoError(t, repo.SetQuantity(ctx, "", "p1", 4))
	require.NoError(t, repo.Clear(ctx, ""))

	items, err := repo.Items(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, items)

	total, err := repo.Total(ctx, "")
	require.NoError(t, err)
	assert.Zero(t, total)
}

type addOp struct {
	ProductID int
	Price     float64
	Quantity  int
}

// Property: the cart total always equals the sum of price * quantity over
// its lines, after any sequence of adds.
func TestProperty_CartTotalAdditivity(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("total equals sum of line subtotals", prop.ForAll(
		func(ops []addOp) bool {
			repo := NewCartRepository(newTestKV(t))
			ctx := context.Background()

			for _, op := range ops {
				id := string(rune('a' + op.ProductID))
				if err := repo.AddItem(ctx, testCustomer, testProduct(id, op.Price), op.Quantity); err != nil {
					t.Logf("FAIL: add failed: %v", err)
					return false
				}
			}

			items, err := repo.Items(ctx, testCustomer)
			if err != nil {
				t.Logf("FAIL: items failed: %v", err)
				return false
			}

			var want float64
			for _, item := range items {
				want += item.Price * float64(item.Quantity)
			}

			total, err := repo.Total(ctx, testCustomer)
			if err != nil {
				t.Logf("FAIL: total failed: %v", err)
				return false
			}

			return total == want
		},
		gen.SliceOf(gen.Struct(reflect.TypeOf(addOp{}), map[string]gopter.Gen{
			"ProductID": gen.IntRange(0, 5),
			"Price":     gen.Float64Range(0, 1000),
			"Quantity":  gen.IntRange(1, 10),
		})),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
