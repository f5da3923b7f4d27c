package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"

	"github.com/angelmondragon/pricing-engine-backend/internal/customers"
	"github.com/angelmondragon/pricing-engine-backend/internal/fixtures"
	"github.com/angelmondragon/pricing-engine-backend/internal/orders"
	"github.com/angelmondragon/pricing-engine-backend/internal/pricing"
	"github.com/angelmondragon/pricing-engine-backend/internal/products"
	"github.com/angelmondragon/pricing-engine-backend/pkg/config"
	"github.com/angelmondragon/pricing-engine-backend/pkg/db"
	"github.com/angelmondragon/pricing-engine-backend/pkg/logger"
	"github.com/angelmondragon/pricing-engine-backend/pkg/migrate"
)

// seed installs the demo dataset and optionally prices the demo order batch
// so quote history has rows to show.
func main() {
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	withQuotes := flag.Bool("quotes", true, "price the demo order batch after seeding")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx := logg.WithField(context.Background(), "env", cfg.App.Env)

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	productRepo := products.NewRepository(dbClient.DB())
	productSvc, err := products.NewService(productRepo, dbClient)
	if err != nil {
		logg.Error(ctx, "failed to create product service", err)
		os.Exit(1)
	}

	customerRepo := customers.NewRepository(dbClient.DB())
	customerSvc, err := customers.NewService(customerRepo, dbClient, productRepo)
	if err != nil {
		logg.Error(ctx, "failed to create customer service", err)
		os.Exit(1)
	}

	seeder := fixtures.NewSeeder(productSvc, customerSvc, logg)
	summary, err := seeder.Install(ctx)
	if err != nil {
		logg.Error(ctx, "seeding failed", err)
		os.Exit(1)
	}

	ctx = logg.WithFields(ctx, map[string]any{
		"products":  summary.Products,
		"customers": summary.Customers,
		"rules":     summary.Rules,
		"skipped":   summary.Skipped,
	})
	logg.Info(ctx, "seed complete")

	if !*withQuotes {
		return
	}

	ordersRepo := orders.NewRepository(dbClient.DB())
	pricingSvc, err := pricing.NewService(
		productRepo,
		customerRepo,
		ordersRepo,
		nil,
		cfg.Quote.CacheTTL,
		nil,
		logg,
	)
	if err != nil {
		logg.Error(ctx, "failed to create pricing service", err)
		os.Exit(1)
	}

	quotes, err := pricingSvc.QuoteBatch(ctx, fixtures.DemoOrders())
	if err != nil {
		logg.Error(ctx, "failed to price demo orders", err)
		os.Exit(1)
	}
	logg.Info(logg.WithField(ctx, "quotes", len(quotes)), "demo orders priced")
}
