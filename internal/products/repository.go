package products

import (
	"context"

	"gorm.io/gorm"

	"github.com/angelmondragon/pricing-engine-backend/pkg/db/models"
)

// Repository wires together product and product-rule persistence.
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

// FindByID loads the product without rule associations.
func (r *Repository) FindByID(ctx context.Context, id int) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "product_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindDetail loads the product with its tier and group rules preloaded.
func (r *Repository) FindDetail(ctx context.Context, id int) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("TierPrices").
		Preload("GroupPrices").
		First(&product, "product_id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ListWithRules loads the whole catalog with rule associations. The pricing
// service snapshots this result for one calculation.
func (r *Repository) ListWithRules(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Preload("TierPrices").
		Preload("GroupPrices").
		Order("product_id").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// CreateProduct inserts a new product row.
func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product by id; rules cascade.
func (r *Repository) DeleteProduct(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Where("product_id = ?", id).Delete(&models.Product{}).Error
}

// CreateTierPrice inserts a tier rule for a product.
func (r *Repository) CreateTierPrice(ctx context.Context, rule *models.TierPriceRule) (*models.TierPriceRule, error) {
	if err := r.db.WithContext(ctx).Create(rule).Error; err != nil {
		return nil, err
	}
	return rule, nil
}

// CreateGroupPrice inserts a group rule for a product.
func (r *Repository) CreateGroupPrice(ctx context.Context, rule *models.GroupPriceRule) (*models.GroupPriceRule, error) {
	if err := r.db.WithContext(ctx).Create(rule).Error; err != nil {
		return nil, err
	}
	return rule, nil
}

// Count returns the number of products in the catalog.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
