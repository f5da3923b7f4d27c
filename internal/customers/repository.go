package customers

import (
	"context"

	"gorm.io/gorm"

	"github.com/angelmondragon/pricing-engine-backend/pkg/db/models"
)

// Repository handles customer and loyalty-rule persistence.
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

// FindByID loads the customer without loyalty associations.
func (r *Repository) FindByID(ctx context.Context, id int) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).First(&customer, "customer_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// FindDetail loads the customer with loyalty rules preloaded.
func (r *Repository) FindDetail(ctx context.Context, id int) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).
		Preload("LoyaltyPrices").
		First(&customer, "customer_id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// ListWithRules loads every customer with loyalty rules. The pricing service
// snapshots this result for one calculation.
func (r *Repository) ListWithRules(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	err := r.db.WithContext(ctx).
		Preload("LoyaltyPrices").
		Order("customer_id").
		Find(&customers).Error
	if err != nil {
		return nil, err
	}
	return customers, nil
}

// CreateCustomer inserts a new customer row.
func (r *Repository) CreateCustomer(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	if err := r.db.WithContext(ctx).Create(customer).Error; err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer removes a customer by id; loyalty rules cascade.
func (r *Repository) DeleteCustomer(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Where("customer_id = ?", id).Delete(&models.Customer{}).Error
}

// CreateLoyaltyPrice inserts a loyalty rule for a customer/product pair.
func (r *Repository) CreateLoyaltyPrice(ctx context.Context, rule *models.LoyaltyPriceRule) (*models.LoyaltyPriceRule, error) {
	if err := r.db.WithContext(ctx).Create(rule).Error; err != nil {
		return nil, err
	}
	return rule, nil
}

// Count returns the number of customers in the directory.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Customer{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
