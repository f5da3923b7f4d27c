package orders

import (
	"context"

	"gorm.io/gorm"

	"github.com/angelmondragon/pricing-engine-backend/pkg/db/models"
)

// Repository persists resolved order quotes.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// RecordQuotes inserts one row per resolved quote.
func (r *Repository) RecordQuotes(ctx context.Context, quotes []models.OrderQuote) error {
	if len(quotes) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&quotes).Error
}

// ListFilter narrows a history listing. Zero values mean no filtering on
// that column.
type ListFilter struct {
	CustomerID int
	ProductID  int
	Limit      int
}

// List returns quote history, newest first.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.OrderQuote, error) {
	query := r.db.WithContext(ctx).Model(&models.OrderQuote{}).Order("created_at DESC")
	if filter.CustomerID > 0 {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.ProductID > 0 {
		query = query.Where("product_id = ?", filter.ProductID)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var rows []models.OrderQuote
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns the number of stored quotes.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.OrderQuote{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
