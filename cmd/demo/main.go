// Command demo runs the storefront walkthrough: it seeds the demo data,
// signs in the demo customer, fills a cart and checks out, then prints
// the order statistics an administrator would see.
package main

import (
	"context"
	"fmt"

	"github.com/087pedyedkai/merch-shop/internal/config"
	"github.com/087pedyedkai/merch-shop/internal/database"
	"github.com/087pedyedkai/merch-shop/internal/domain"
	"github.com/087pedyedkai/merch-shop/internal/kvstore"
	"github.com/087pedyedkai/merch-shop/internal/logger"
	"github.com/087pedyedkai/merch-shop/internal/repository"
	"github.com/087pedyedkai/merch-shop/internal/service"

	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log, err := logger.New(cfg.App.Env)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting merch shop demo",
		zap.String("env", cfg.App.Env),
		zap.String("backend", cfg.Storage.Backend),
	)

	ctx := context.Background()

	// Open the persisted store
	kv, err := kvstore.Open(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to open storage backend", zap.Error(err))
	}
	defer kv.Close()

	// The postgres backend keeps its schema under goose control
	if pg, ok := kv.(*kvstore.PostgresStore); ok {
		if err := database.RunMigrations(pg.DB(), log); err != nil {
			log.Fatal("Failed to run migrations", zap.Error(err))
		}
	}

	// Initialize repositories
	catalog := repository.NewCatalogRepository(kv)
	carts := repository.NewCartRepository(kv)
	orders := repository.NewOrderRepository(kv)
	users := repository.NewUserRepository(kv)

	// Initialize services
	session := service.NewSessionService(users, kv)
	checkout := service.NewCheckoutService(catalog, carts, orders, log)

	if err := users.Seed(ctx); err != nil {
		log.Fatal("Failed to seed demo accounts", zap.Error(err))
	}

	if err := run(ctx, log, catalog, carts, orders, session, checkout); err != nil {
		log.Fatal("Demo walkthrough failed", zap.Error(err))
	}

	log.Info("Demo walkthrough complete")
}

func run(
	ctx context.Context,
	log *zap.Logger,
	catalog repository.CatalogRepository,
	carts repository.CartRepository,
	orders repository.OrderRepository,
	session service.SessionService,
	checkout service.CheckoutService,
) error {
	// Browse: first use of an empty store seeds the default catalog
	products, err := catalog.List(ctx)
	if err != nil {
		return err
	}
	log.Info("Catalog loaded", zap.Int("products", len(products)))

	// Sign in the seeded demo customer
	identity, err := session.SignIn(ctx, "customer@merch.com", "customer123")
	if err != nil {
		return err
	}
	log.Info("Signed in", zap.String("customer", identity.Name))

	// Fill the cart
	if err := carts.AddItem(ctx, identity.ID, &products[0], 2); err != nil {
		return err
	}
	if err := carts.AddItem(ctx, identity.ID, &products[1], 1); err != nil {
		return err
	}

	total, err := carts.Total(ctx, identity.ID)
	if err != nil {
		return err
	}
	log.Info("Cart ready", zap.Float64("total", total))

	// Check out
	shipping := domain.ShippingInfo{
		FirstName: "Demo",
		LastName:  "Customer",
		Phone:     "0812345678",
		Address:   "1 University Road",
		City:      "Bangkok",
	}
	order, err := checkout.PlaceOrder(ctx, *identity, shipping, domain.PaymentBankTransfer)
	if err != nil {
		return err
	}
	log.Info("Order confirmed",
		zap.String("order_id", order.ID),
		zap.Float64("total", order.Total),
	)

	// Admin view: move the order along and report revenue
	if _, err := orders.UpdateStatus(ctx, order.ID, domain.OrderStatusCompleted); err != nil {
		return err
	}

	stats, err := orders.Stats(ctx)
	if err != nil {
		return err
	}
	log.Info("Order statistics",
		zap.Int("total_orders", stats.TotalOrders),
		zap.Int("completed", stats.CompletedOrders),
		zap.Float64("revenue", stats.TotalRevenue),
	)

	return session.SignOut(ctx)
}
