package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/pricing-engine-backend/internal/customers"
	"github.com/angelmondragon/pricing-engine-backend/internal/fixtures"
	"github.com/angelmondragon/pricing-engine-backend/internal/orders"
	"github.com/angelmondragon/pricing-engine-backend/internal/pricing"
	"github.com/angelmondragon/pricing-engine-backend/internal/products"
	"github.com/angelmondragon/pricing-engine-backend/pkg/config"
	"github.com/angelmondragon/pricing-engine-backend/pkg/db"
	"github.com/angelmondragon/pricing-engine-backend/pkg/logger"
	"github.com/angelmondragon/pricing-engine-backend/pkg/metrics"
)

var testSchema = []string{
	`CREATE TABLE IF NOT EXISTS products (
  product_id INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  base_price TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE TABLE IF NOT EXISTS tier_price_rules (
  id TEXT PRIMARY KEY,
  product_id INTEGER NOT NULL,
  tier TEXT NOT NULL,
  discount_rate TEXT NOT NULL,
  min_qty INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (product_id, tier)
);`,
	`CREATE TABLE IF NOT EXISTS group_price_rules (
  id TEXT PRIMARY KEY,
  product_id INTEGER NOT NULL,
  customer_group TEXT NOT NULL,
  discount_rate TEXT NOT NULL,
  min_qty INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (product_id, customer_group)
);`,
	`CREATE TABLE IF NOT EXISTS customers (
  customer_id INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  tier TEXT NOT NULL,
  groups TEXT NOT NULL DEFAULT '{}',
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE TABLE IF NOT EXISTS loyalty_price_rules (
  id TEXT PRIMARY KEY,
  customer_id INTEGER NOT NULL,
  product_id INTEGER NOT NULL,
  discount_rate TEXT NOT NULL,
  min_qty INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (customer_id, product_id)
);`,
	`CREATE TABLE IF NOT EXISTS order_quotes (
  id TEXT PRIMARY KEY,
  customer_id INTEGER NOT NULL,
  product_id INTEGER NOT NULL,
  quantity INTEGER NOT NULL,
  product_ref TEXT NOT NULL,
  price TEXT NOT NULL,
  price_type TEXT NOT NULL,
  created_at DATETIME
);`,
}

func setupRouter(t *testing.T) http.Handler {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	for _, statement := range testSchema {
		require.NoError(t, conn.Exec(statement).Error)
	}
	for _, table := range []string{"order_quotes", "loyalty_price_rules", "group_price_rules", "tier_price_rules", "customers", "products"} {
		require.NoError(t, conn.Exec("DELETE FROM "+table).Error)
	}

	client := db.NewFromGorm(conn)
	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled})
	cfg := &config.Config{}
	cfg.App.Env = "dev"
	cfg.App.Port = "0"

	productRepo := products.NewRepository(conn)
	productSvc, err := products.NewService(productRepo, client)
	require.NoError(t, err)

	customerRepo := customers.NewRepository(conn)
	customerSvc, err := customers.NewService(customerRepo, client, productRepo)
	require.NoError(t, err)

	ordersRepo := orders.NewRepository(conn)
	ordersSvc, err := orders.NewService(ordersRepo)
	require.NoError(t, err)

	registry := prometheus.NewRegistry()
	pricingSvc, err := pricing.NewService(
		productRepo,
		customerRepo,
		ordersRepo,
		nil,
		time.Minute,
		metrics.NewQuoteMetrics(registry),
		logg,
	)
	require.NoError(t, err)

	seeder := fixtures.NewSeeder(productSvc, customerSvc, logg)
	require.NoError(t, err)
	_, err = seeder.Install(context.Background())
	require.NoError(t, err)

	return NewRouter(Deps{
		Config:       cfg,
		Logger:       logg,
		DB:           client,
		Redis:        nil,
		HTTPMetrics:  metrics.NewHTTPMetrics(registry),
		Registry:     registry,
		PricingSvc:   pricingSvc,
		ProductSvc:   productSvc,
		CustomerSvc:  customerSvc,
		OrdersSvc:    ordersSvc,
		ProductRepo:  productRepo,
		CustomerRepo: customerRepo,
		OrdersRepo:   ordersRepo,
		Seeder:       seeder,
	})
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	decoded := map[string]any{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

func TestRouterHealth(t *testing.T) {
	handler := setupRouter(t)

	rec, body := doJSON(t, handler, http.MethodGet, "/health/live", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].(map[string]any)
	assert.Equal(t, "live", data["status"])

	rec, _ = doJSON(t, handler, http.MethodGet, "/health/ready", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterQuote(t *testing.T) {
	handler := setupRouter(t)

	rec, body := doJSON(t, handler, http.MethodPost, "/api/v1/pricing/quote", map[string]any{
		"customer_id": 1,
		"product_id":  1,
		"quantity":    5,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	data := body["data"].(map[string]any)
	assert.Equal(t, "P001", data["product_id"])
	assert.Equal(t, "175000", data["price"])
	assert.Equal(t, "GROUP", data["price_type"])
}

func TestRouterQuoteBatch(t *testing.T) {
	handler := setupRouter(t)

	rec, body := doJSON(t, handler, http.MethodPost, "/api/v1/pricing/quotes", map[string]any{
		"orders": []map[string]any{
			{"customer_id": 1, "product_id": 1, "quantity": 5},
			{"customer_id": 2, "product_id": 1, "quantity": 1},
			{"customer_id": 1, "product_id": 999, "quantity": 1},
			{"customer_id": 1, "product_id": 2, "quantity": 5},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	payload := body["data"].(map[string]any)
	assert.EqualValues(t, 4, payload["count"])
	data := payload["quotes"].([]any)
	require.Len(t, data, 4)

	first := data[0].(map[string]any)
	assert.Equal(t, "GROUP", first["price_type"])
	second := data[1].(map[string]any)
	assert.Equal(t, "NORMAL", second["price_type"])
	assert.Equal(t, "350000", second["price"])
	third := data[2].(map[string]any)
	assert.Equal(t, "ERROR", third["price_type"])
	assert.Equal(t, "0", third["price"])
	assert.Equal(t, "P999", third["product_id"])
	fourth := data[3].(map[string]any)
	assert.Equal(t, "CUSTOMER", fourth["price_type"])
	assert.Equal(t, "160000", fourth["price"])
}

func TestRouterQuoteBatch_validation(t *testing.T) {
	handler := setupRouter(t)

	rec, body := doJSON(t, handler, http.MethodPost, "/api/v1/pricing/quotes", map[string]any{
		"orders": []map[string]any{},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	errBody := body["error"].(map[string]any)
	assert.Equal(t, "VALIDATION_ERROR", errBody["code"])
}

func TestRouterCandidates(t *testing.T) {
	handler := setupRouter(t)

	rec, body := doJSON(t, handler, http.MethodPost, "/api/v1/pricing/candidates", map[string]any{
		"customer_id": 1,
		"product_id":  1,
		"quantity":    5,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	data := body["data"].(map[string]any)
	assert.Equal(t, "350000", data["base_price"])
	assert.Equal(t, "297500", data["tier_price"])
	selected := data["selected"].(map[string]any)
	assert.Equal(t, "GROUP", selected["price_type"])
}

func TestRouterCandidates_missingProduct(t *testing.T) {
	handler := setupRouter(t)

	rec, body := doJSON(t, handler, http.MethodPost, "/api/v1/pricing/candidates", map[string]any{
		"customer_id": 1,
		"product_id":  999,
		"quantity":    1,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	errBody := body["error"].(map[string]any)
	assert.Equal(t, "NOT_FOUND", errBody["code"])
	assert.Equal(t, "MISSING_PRODUCT", errBody["reason"])
}

func TestRouterProductCRUD(t *testing.T) {
	handler := setupRouter(t)

	rec, body := doJSON(t, handler, http.MethodGet, "/api/v1/products/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["data"].([]any), 3)

	rec, _ = doJSON(t, handler, http.MethodPost, "/api/v1/products/", map[string]any{
		"product_id": 42,
		"name":       "Monitor",
		"base_price": "90000",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec, body = doJSON(t, handler, http.MethodPost, "/api/v1/products/42/tier-prices", map[string]any{
		"tier":          "GOLD",
		"discount_rate": "0.25",
		"min_qty":       2,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rule := body["data"].(map[string]any)
	assert.Equal(t, "GOLD", rule["tier"])

	rec, body = doJSON(t, handler, http.MethodGet, "/api/v1/products/42/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	detail := body["data"].(map[string]any)
	assert.Len(t, detail["tier_prices"].([]any), 1)

	rec, _ = doJSON(t, handler, http.MethodDelete, "/api/v1/products/42/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doJSON(t, handler, http.MethodGet, "/api/v1/products/42/", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouterInvalidDiscountRate(t *testing.T) {
	handler := setupRouter(t)

	rec, body := doJSON(t, handler, http.MethodPost, "/api/v1/products/2/group-prices", map[string]any{
		"group":         "REGULAR",
		"discount_rate": "1.5",
		"min_qty":       1,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	errBody := body["error"].(map[string]any)
	assert.Equal(t, "VALIDATION_ERROR", errBody["code"])

	// duplicate (product, group) pair conflicts
	rec, body = doJSON(t, handler, http.MethodPost, "/api/v1/products/1/group-prices", map[string]any{
		"group":         "VIP",
		"discount_rate": "0.3",
		"min_qty":       1,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	errBody = body["error"].(map[string]any)
	assert.Equal(t, "CONFLICT", errBody["code"])
}

func TestRouterQuoteHistory(t *testing.T) {
	handler := setupRouter(t)

	rec, _ := doJSON(t, handler, http.MethodPost, "/api/v1/pricing/quotes", map[string]any{
		"orders": []map[string]any{
			{"customer_id": 1, "product_id": 1, "quantity": 5},
			{"customer_id": 1, "product_id": 999, "quantity": 1},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body := doJSON(t, handler, http.MethodGet, "/api/v1/orders?customer_id=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["data"].([]any), 2)
}

func TestRouterStatus(t *testing.T) {
	handler := setupRouter(t)

	rec, body := doJSON(t, handler, http.MethodGet, "/api/v1/status", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].(map[string]any)
	assert.Equal(t, "dev", data["env"])
	assert.EqualValues(t, 3, data["products"])
	assert.EqualValues(t, 3, data["customers"])
	assert.Equal(t, false, data["cache_up"])
}

func TestRouterSampleDataRerun(t *testing.T) {
	handler := setupRouter(t)

	rec, body := doJSON(t, handler, http.MethodPost, "/api/v1/sample-data", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	data := body["data"].(map[string]any)
	summary := data["summary"].(map[string]any)
	assert.EqualValues(t, 15, summary["skipped"])
	assert.Len(t, data["demo_quotes"].([]any), 6)
}
