package products

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/pricing-engine-backend/pkg/db"
	"github.com/angelmondragon/pricing-engine-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/pricing-engine-backend/pkg/errors"
)

func setupProductsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	products := `
CREATE TABLE IF NOT EXISTS products (
  product_id INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  base_price TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	tierRules := `
CREATE TABLE IF NOT EXISTS tier_price_rules (
  id TEXT PRIMARY KEY,
  product_id INTEGER NOT NULL,
  tier TEXT NOT NULL,
  discount_rate TEXT NOT NULL,
  min_qty INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (product_id, tier)
);`
	groupRules := `
CREATE TABLE IF NOT EXISTS group_price_rules (
  id TEXT PRIMARY KEY,
  product_id INTEGER NOT NULL,
  customer_group TEXT NOT NULL,
  discount_rate TEXT NOT NULL,
  min_qty INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (product_id, customer_group)
);`
	require.NoError(t, conn.Exec(products).Error)
	require.NoError(t, conn.Exec(tierRules).Error)
	require.NoError(t, conn.Exec(groupRules).Error)

	// shared-cache memory keeps rows between tests in this package
	require.NoError(t, conn.Exec(`DELETE FROM group_price_rules`).Error)
	require.NoError(t, conn.Exec(`DELETE FROM tier_price_rules`).Error)
	require.NoError(t, conn.Exec(`DELETE FROM products`).Error)
	return conn
}

func newProductService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()

	conn := setupProductsTestDB(t)
	svc, err := NewService(NewRepository(conn), db.NewFromGorm(conn))
	require.NoError(t, err)
	return svc, conn
}

func mustDecimal(t *testing.T, raw string) decimal.Decimal {
	t.Helper()
	value, err := decimal.NewFromString(raw)
	require.NoError(t, err)
	return value
}

func TestServiceCreateProduct(t *testing.T) {
	svc, _ := newProductService(t)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, CreateProductInput{
		ProductID: 1,
		Name:      "Laptop",
		BasePrice: mustDecimal(t, "350000"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, created.ProductID)
	assert.Equal(t, "Laptop", created.Name)
	assert.True(t, created.BasePrice.Equal(mustDecimal(t, "350000")))

	_, err = svc.CreateProduct(ctx, CreateProductInput{
		ProductID: 1,
		Name:      "Laptop again",
		BasePrice: mustDecimal(t, "1"),
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.CodeOf(err))
}

func TestServiceCreateProduct_negativePrice(t *testing.T) {
	svc, _ := newProductService(t)

	_, err := svc.CreateProduct(context.Background(), CreateProductInput{
		ProductID: 9,
		Name:      "Broken",
		BasePrice: mustDecimal(t, "-1"),
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
}

func TestServiceAddTierPrice(t *testing.T) {
	svc, _ := newProductService(t)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, CreateProductInput{
		ProductID: 1,
		Name:      "Laptop",
		BasePrice: mustDecimal(t, "350000"),
	})
	require.NoError(t, err)

	rule, err := svc.AddTierPrice(ctx, 1, AddTierPriceInput{
		Tier:         enums.TierGold,
		DiscountRate: mustDecimal(t, "0.15"),
		MinQty:       4,
	})
	require.NoError(t, err)
	assert.Equal(t, enums.TierGold, rule.Tier)
	assert.Equal(t, 4, rule.MinQty)

	// a second rule for the same (product, tier) pair conflicts
	_, err = svc.AddTierPrice(ctx, 1, AddTierPriceInput{
		Tier:         enums.TierGold,
		DiscountRate: mustDecimal(t, "0.2"),
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.CodeOf(err))
}

func TestServiceAddTierPrice_missingProduct(t *testing.T) {
	svc, _ := newProductService(t)

	_, err := svc.AddTierPrice(context.Background(), 404, AddTierPriceInput{
		Tier:         enums.TierSilver,
		DiscountRate: mustDecimal(t, "0.05"),
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.CodeOf(err))
	assert.Equal(t, pkgerrors.ReasonMissingProduct, pkgerrors.ReasonOf(err))
}

func TestServiceAddGroupPrice(t *testing.T) {
	svc, _ := newProductService(t)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, CreateProductInput{
		ProductID: 2,
		Name:      "Smartphone",
		BasePrice: mustDecimal(t, "200000"),
	})
	require.NoError(t, err)

	rule, err := svc.AddGroupPrice(ctx, 2, AddGroupPriceInput{
		Group:        enums.GroupVIP,
		DiscountRate: mustDecimal(t, "0.5"),
		MinQty:       2,
	})
	require.NoError(t, err)
	assert.Equal(t, enums.GroupVIP, rule.Group)
	assert.True(t, rule.DiscountRate.Equal(mustDecimal(t, "0.5")))
}

func TestValidateDiscountRate(t *testing.T) {
	cases := []struct {
		name    string
		rate    string
		wantErr bool
	}{
		{name: "zero", rate: "0"},
		{name: "typical", rate: "0.15"},
		{name: "near one", rate: "0.9999"},
		{name: "one", rate: "1", wantErr: true},
		{name: "above one", rate: "1.5", wantErr: true},
		{name: "negative", rate: "-0.1", wantErr: true},
		{name: "too precise", rate: "0.12345", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateDiscountRate(mustDecimal(t, tc.rate))
			if tc.wantErr {
				require.Error(t, err)
				assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestServiceGetProductDetail(t *testing.T) {
	svc, _ := newProductService(t)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, CreateProductInput{
		ProductID: 1,
		Name:      "Laptop",
		BasePrice: mustDecimal(t, "350000"),
	})
	require.NoError(t, err)
	_, err = svc.AddTierPrice(ctx, 1, AddTierPriceInput{
		Tier:         enums.TierGold,
		DiscountRate: mustDecimal(t, "0.15"),
		MinQty:       4,
	})
	require.NoError(t, err)
	_, err = svc.AddGroupPrice(ctx, 1, AddGroupPriceInput{
		Group:        enums.GroupBulk,
		DiscountRate: mustDecimal(t, "0.1"),
		MinQty:       10,
	})
	require.NoError(t, err)

	detail, err := svc.GetProduct(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, detail.TierPrices, 1)
	assert.Len(t, detail.GroupPrices, 1)

	_, err = svc.GetProduct(ctx, 404)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.ReasonMissingProduct, pkgerrors.ReasonOf(err))
}

func TestServiceDeleteProduct(t *testing.T) {
	svc, conn := newProductService(t)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, CreateProductInput{
		ProductID: 3,
		Name:      "Tablet",
		BasePrice: mustDecimal(t, "150000"),
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(ctx, 3))

	var count int64
	require.NoError(t, conn.Table("products").Count(&count).Error)
	assert.Zero(t, count)

	err = svc.DeleteProduct(ctx, 3)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.CodeOf(err))
}

func TestServiceListProducts(t *testing.T) {
	svc, _ := newProductService(t)
	ctx := context.Background()

	for _, seed := range []CreateProductInput{
		{ProductID: 2, Name: "Smartphone", BasePrice: mustDecimal(t, "200000")},
		{ProductID: 1, Name: "Laptop", BasePrice: mustDecimal(t, "350000")},
	} {
		_, err := svc.CreateProduct(ctx, seed)
		require.NoError(t, err)
	}

	list, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 1, list[0].ProductID)
	assert.Equal(t, 2, list[1].ProductID)
}
