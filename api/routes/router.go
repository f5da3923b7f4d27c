package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/pricing-engine-backend/api/controllers"
	"github.com/angelmondragon/pricing-engine-backend/api/middleware"
	"github.com/angelmondragon/pricing-engine-backend/internal/customers"
	"github.com/angelmondragon/pricing-engine-backend/internal/fixtures"
	"github.com/angelmondragon/pricing-engine-backend/internal/orders"
	"github.com/angelmondragon/pricing-engine-backend/internal/pricing"
	"github.com/angelmondragon/pricing-engine-backend/internal/products"
	"github.com/angelmondragon/pricing-engine-backend/pkg/config"
	"github.com/angelmondragon/pricing-engine-backend/pkg/db"
	"github.com/angelmondragon/pricing-engine-backend/pkg/logger"
	"github.com/angelmondragon/pricing-engine-backend/pkg/metrics"
	"github.com/angelmondragon/pricing-engine-backend/pkg/redis"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config       *config.Config
	Logger       *logger.Logger
	DB           *db.Client
	Redis        *redis.Client
	HTTPMetrics  *metrics.HTTPMetrics
	Registry     *prometheus.Registry
	PricingSvc   pricing.Service
	ProductSvc   products.Service
	CustomerSvc  customers.Service
	OrdersSvc    orders.Service
	ProductRepo  *products.Repository
	CustomerRepo *customers.Repository
	OrdersRepo   *orders.Repository
	Seeder       *fixtures.Seeder
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, deps.Redis, logg))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/pricing", func(r chi.Router) {
			r.Post("/quote", controllers.QuoteOrder(deps.PricingSvc, logg))
			r.Post("/quotes", controllers.QuoteOrders(deps.PricingSvc, logg))
			r.Post("/candidates", controllers.OrderCandidates(deps.PricingSvc, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(deps.ProductSvc, logg))
			r.Post("/", controllers.CreateProduct(deps.ProductSvc, logg))
			r.Route("/{productID}", func(r chi.Router) {
				r.Get("/", controllers.GetProduct(deps.ProductSvc, logg))
				r.Delete("/", controllers.DeleteProduct(deps.ProductSvc, logg))
				r.Post("/tier-prices", controllers.AddTierPrice(deps.ProductSvc, logg))
				r.Post("/group-prices", controllers.AddGroupPrice(deps.ProductSvc, logg))
			})
		})

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", controllers.ListCustomers(deps.CustomerSvc, logg))
			r.Post("/", controllers.CreateCustomer(deps.CustomerSvc, logg))
			r.Route("/{customerID}", func(r chi.Router) {
				r.Get("/", controllers.GetCustomer(deps.CustomerSvc, logg))
				r.Delete("/", controllers.DeleteCustomer(deps.CustomerSvc, logg))
				r.Post("/loyalty-prices", controllers.AddLoyaltyPrice(deps.CustomerSvc, logg))
			})
		})

		r.Get("/orders", controllers.ListQuoteHistory(deps.OrdersSvc, logg))
		r.Get("/status", controllers.Status(cfg, deps.ProductRepo, deps.CustomerRepo, deps.OrdersRepo, deps.Redis, logg))

		if !cfg.App.IsProd() {
			r.Post("/sample-data", controllers.InstallSampleData(deps.Seeder, deps.PricingSvc, logg))
		}
	})

	return r
}
