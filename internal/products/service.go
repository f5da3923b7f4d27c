package products

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/pricing-engine-backend/pkg/db"
	"github.com/angelmondragon/pricing-engine-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/pricing-engine-backend/pkg/errors"
)

// Service exposes catalog management operations.
type Service interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	GetProduct(ctx context.Context, productID int) (*ProductDetailDTO, error)
	ListProducts(ctx context.Context) ([]ProductDTO, error)
	DeleteProduct(ctx context.Context, productID int) error
	AddTierPrice(ctx context.Context, productID int, input AddTierPriceInput) (*TierPriceDTO, error)
	AddGroupPrice(ctx context.Context, productID int, input AddGroupPriceInput) (*GroupPriceDTO, error)
}

// service implements the catalog service.
type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs a product service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

// CreateProduct registers a product with its base price.
func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	if input.BasePrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "base_price cannot be negative")
	}

	product := &models.Product{
		ProductID: input.ProductID,
		Name:      input.Name,
		BasePrice: input.BasePrice,
	}
	created, err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "product already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
	}
	return toProductDTO(created), nil
}

// GetProduct returns one product with its rules.
func (s *service) GetProduct(ctx context.Context, productID int) (*ProductDetailDTO, error) {
	product, err := s.repo.FindDetail(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
				WithReason(pkgerrors.ReasonMissingProduct)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}
	return toProductDetailDTO(product), nil
}

// ListProducts returns the catalog summaries ordered by product id.
func (s *service) ListProducts(ctx context.Context) ([]ProductDTO, error) {
	rows, err := s.repo.ListWithRules(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list products")
	}
	out := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *toProductDTO(&rows[i]))
	}
	return out, nil
}

// DeleteProduct removes a product and its rules.
func (s *service) DeleteProduct(ctx context.Context, productID int) error {
	if _, err := s.repo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
				WithReason(pkgerrors.ReasonMissingProduct)
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}
	if err := s.repo.DeleteProduct(ctx, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete product")
	}
	return nil
}

// AddTierPrice attaches a tier discount rule to a product.
func (s *service) AddTierPrice(ctx context.Context, productID int, input AddTierPriceInput) (*TierPriceDTO, error) {
	if !input.Tier.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown tier %q", input.Tier))
	}
	if err := validateDiscountRate(input.DiscountRate); err != nil {
		return nil, err
	}
	if err := validateMinQty(input.MinQty); err != nil {
		return nil, err
	}

	var created *models.TierPriceRule
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if _, err := txRepo.FindByID(ctx, productID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
					WithReason(pkgerrors.ReasonMissingProduct)
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
		}
		rule := &models.TierPriceRule{
			ProductID:    productID,
			Tier:         input.Tier,
			DiscountRate: input.DiscountRate,
			MinQty:       input.MinQty,
		}
		var err error
		created, err = txRepo.CreateTierPrice(ctx, rule)
		if err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.New(pkgerrors.CodeConflict, "tier rule already exists for this product")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert tier rule")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toTierPriceDTO(created), nil
}

// AddGroupPrice attaches a group discount rule to a product.
func (s *service) AddGroupPrice(ctx context.Context, productID int, input AddGroupPriceInput) (*GroupPriceDTO, error) {
	if !input.Group.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown group %q", input.Group))
	}
	if err := validateDiscountRate(input.DiscountRate); err != nil {
		return nil, err
	}
	if err := validateMinQty(input.MinQty); err != nil {
		return nil, err
	}

	var created *models.GroupPriceRule
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if _, err := txRepo.FindByID(ctx, productID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
					WithReason(pkgerrors.ReasonMissingProduct)
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
		}
		rule := &models.GroupPriceRule{
			ProductID:    productID,
			Group:        input.Group,
			DiscountRate: input.DiscountRate,
			MinQty:       input.MinQty,
		}
		var err error
		created, err = txRepo.CreateGroupPrice(ctx, rule)
		if err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.New(pkgerrors.CodeConflict, "group rule already exists for this product")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert group rule")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toGroupPriceDTO(created), nil
}

var maxDiscountRate = decimal.NewFromInt(1)

// validateDiscountRate enforces rates in [0, 1). A rate of 1 would zero the
// price and anything above it would go negative.
func validateDiscountRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThanOrEqual(maxDiscountRate) {
		return pkgerrors.New(pkgerrors.CodeValidation, "discount_rate must be at least 0 and below 1")
	}
	if rate.Exponent() < -4 {
		return pkgerrors.New(pkgerrors.CodeValidation, "discount_rate supports at most 4 decimal places")
	}
	return nil
}

// validateMinQty rejects negative thresholds.
func validateMinQty(minQty int) error {
	if minQty < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "min_qty cannot be negative")
	}
	return nil
}
