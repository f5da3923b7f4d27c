package orders

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/pricing-engine-backend/pkg/db/models"
	"github.com/angelmondragon/pricing-engine-backend/pkg/enums"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	quotes := `
CREATE TABLE IF NOT EXISTS order_quotes (
  id TEXT PRIMARY KEY,
  customer_id INTEGER NOT NULL,
  product_id INTEGER NOT NULL,
  quantity INTEGER NOT NULL,
  product_ref TEXT NOT NULL,
  price TEXT NOT NULL,
  price_type TEXT NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, conn.Exec(quotes).Error)

	// shared-cache memory keeps rows between tests in this package
	require.NoError(t, conn.Exec(`DELETE FROM order_quotes`).Error)
	return conn
}

func storedQuote(t *testing.T, customerID, productID, qty int, ref, price string, priceType enums.PriceType, created time.Time) models.OrderQuote {
	t.Helper()

	value, err := decimal.NewFromString(price)
	require.NoError(t, err)
	return models.OrderQuote{
		CustomerID: customerID,
		ProductID:  productID,
		Quantity:   qty,
		ProductRef: ref,
		Price:      value,
		PriceType:  priceType,
		CreatedAt:  created,
	}
}

func TestRepositoryRecordAndList(t *testing.T) {
	conn := setupOrdersTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	err := repo.RecordQuotes(ctx, []models.OrderQuote{
		storedQuote(t, 1, 1, 5, "P001", "175000", enums.PriceTypeGroup, base),
		storedQuote(t, 2, 1, 1, "P001", "350000", enums.PriceTypeNormal, base.Add(time.Minute)),
		storedQuote(t, 1, 999, 1, "P999", "0", enums.PriceTypeError, base.Add(2*time.Minute)),
	})
	require.NoError(t, err)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	all, err := repo.List(ctx, ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	// newest first
	assert.Equal(t, "P999", all[0].ProductRef)
	assert.Equal(t, enums.PriceTypeError, all[0].PriceType)

	byCustomer, err := repo.List(ctx, ListFilter{CustomerID: 1})
	require.NoError(t, err)
	assert.Len(t, byCustomer, 2)

	byProduct, err := repo.List(ctx, ListFilter{ProductID: 999})
	require.NoError(t, err)
	require.Len(t, byProduct, 1)
	assert.True(t, byProduct[0].Price.IsZero())

	limited, err := repo.List(ctx, ListFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestRepositoryRecordQuotes_empty(t *testing.T) {
	conn := setupOrdersTestDB(t)
	repo := NewRepository(conn)

	require.NoError(t, repo.RecordQuotes(context.Background(), nil))

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestServiceListQuotes(t *testing.T) {
	conn := setupOrdersTestDB(t)
	repo := NewRepository(conn)
	svc, err := NewService(repo)
	require.NoError(t, err)
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	rows := make([]models.OrderQuote, 0, 5)
	for i := 0; i < 5; i++ {
		rows = append(rows, storedQuote(t, 1, 2, i+1, "P002", "160000", enums.PriceTypeCustomer, base.Add(time.Duration(i)*time.Second)))
	}
	require.NoError(t, repo.RecordQuotes(ctx, rows))

	listed, err := svc.ListQuotes(ctx, ListQuotesInput{Limit: 2})
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, 5, listed[0].Quantity)
	assert.Equal(t, enums.PriceTypeCustomer, listed[0].PriceType)

	all, err := svc.ListQuotes(ctx, ListQuotesInput{})
	require.NoError(t, err)
	assert.Len(t, all, 5)
}
