package customers

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/pricing-engine-backend/pkg/db"
	"github.com/angelmondragon/pricing-engine-backend/pkg/db/models"
	"github.com/angelmondragon/pricing-engine-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/pricing-engine-backend/pkg/errors"
)

// Service exposes customer directory management operations.
type Service interface {
	CreateCustomer(ctx context.Context, input CreateCustomerInput) (*CustomerDTO, error)
	GetCustomer(ctx context.Context, customerID int) (*CustomerDetailDTO, error)
	ListCustomers(ctx context.Context) ([]CustomerDTO, error)
	DeleteCustomer(ctx context.Context, customerID int) error
	AddLoyaltyPrice(ctx context.Context, customerID int, input AddLoyaltyPriceInput) (*LoyaltyPriceDTO, error)
}

type productFinder interface {
	FindByID(ctx context.Context, id int) (*models.Product, error)
}

// service implements the customer service.
type service struct {
	repo     *Repository
	dbClient *db.Client
	products productFinder
}

// NewService constructs a customer service instance.
func NewService(repo *Repository, dbClient *db.Client, products productFinder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customer repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if products == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: repo, dbClient: dbClient, products: products}, nil
}

// CreateCustomer registers a customer with tier and group memberships.
func (s *service) CreateCustomer(ctx context.Context, input CreateCustomerInput) (*CustomerDTO, error) {
	if !input.Tier.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown tier %q", input.Tier))
	}
	groups, err := enums.ParseGroups(input.Groups)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid groups")
	}

	stored := make(pq.StringArray, 0, len(groups))
	for _, group := range groups {
		stored = append(stored, group.String())
	}
	customer := &models.Customer{
		CustomerID: input.CustomerID,
		Name:       input.Name,
		Tier:       input.Tier,
		Groups:     stored,
	}
	created, err := s.repo.CreateCustomer(ctx, customer)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "customer already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert customer")
	}
	return toCustomerDTO(created), nil
}

// GetCustomer returns one customer with loyalty rules.
func (s *service) GetCustomer(ctx context.Context, customerID int) (*CustomerDetailDTO, error) {
	customer, err := s.repo.FindDetail(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found").
				WithReason(pkgerrors.ReasonMissingCustomer)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load customer")
	}
	return toCustomerDetailDTO(customer), nil
}

// ListCustomers returns directory summaries ordered by customer id.
func (s *service) ListCustomers(ctx context.Context) ([]CustomerDTO, error) {
	rows, err := s.repo.ListWithRules(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list customers")
	}
	out := make([]CustomerDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *toCustomerDTO(&rows[i]))
	}
	return out, nil
}

// DeleteCustomer removes a customer and their loyalty rules.
func (s *service) DeleteCustomer(ctx context.Context, customerID int) error {
	if _, err := s.repo.FindByID(ctx, customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "customer not found").
				WithReason(pkgerrors.ReasonMissingCustomer)
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load customer")
	}
	if err := s.repo.DeleteCustomer(ctx, customerID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete customer")
	}
	return nil
}

// AddLoyaltyPrice attaches a customer-specific discount on one product. The
// customer and the product must both exist.
func (s *service) AddLoyaltyPrice(ctx context.Context, customerID int, input AddLoyaltyPriceInput) (*LoyaltyPriceDTO, error) {
	if err := validateDiscountRate(input.DiscountRate); err != nil {
		return nil, err
	}
	if input.MinQty < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "min_qty cannot be negative")
	}

	var created *models.LoyaltyPriceRule
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if _, err := txRepo.FindByID(ctx, customerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "customer not found").
					WithReason(pkgerrors.ReasonMissingCustomer)
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load customer")
		}
		if _, err := s.products.FindByID(ctx, input.ProductID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
					WithReason(pkgerrors.ReasonMissingProduct)
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
		}
		rule := &models.LoyaltyPriceRule{
			CustomerID:   customerID,
			ProductID:    input.ProductID,
			DiscountRate: input.DiscountRate,
			MinQty:       input.MinQty,
		}
		var err error
		created, err = txRepo.CreateLoyaltyPrice(ctx, rule)
		if err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.New(pkgerrors.CodeConflict, "loyalty rule already exists for this customer and product")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert loyalty rule")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toLoyaltyPriceDTO(created), nil
}

var maxDiscountRate = decimal.NewFromInt(1)

func validateDiscountRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThanOrEqual(maxDiscountRate) {
		return pkgerrors.New(pkgerrors.CodeValidation, "discount_rate must be at least 0 and below 1")
	}
	if rate.Exponent() < -4 {
		return pkgerrors.New(pkgerrors.CodeValidation, "discount_rate supports at most 4 decimal places")
	}
	return nil
}
