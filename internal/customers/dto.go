package customers

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/pricing-engine-backend/pkg/db/models"
	"github.com/angelmondragon/pricing-engine-backend/pkg/enums"
)

// CreateCustomerInput is the payload for registering a customer.
type CreateCustomerInput struct {
	CustomerID int        `json:"customer_id" validate:"required,gt=0"`
	Name       string     `json:"name" validate:"required,min=1,max=255"`
	Tier       enums.Tier `json:"tier" validate:"required"`
	Groups     []string   `json:"groups" validate:"dive,min=1"`
}

// AddLoyaltyPriceInput is the payload for attaching a per-customer discount
// on a specific product.
type AddLoyaltyPriceInput struct {
	ProductID    int             `json:"product_id" validate:"required,gt=0"`
	DiscountRate decimal.Decimal `json:"discount_rate" validate:"required"`
	MinQty       int             `json:"min_qty" validate:"gte=0"`
}

// CustomerDTO is the list/summary view of a customer.
type CustomerDTO struct {
	CustomerID    int           `json:"customer_id"`
	Name          string        `json:"name"`
	Tier          enums.Tier    `json:"tier"`
	Groups        []enums.Group `json:"groups"`
	LoyaltyPrices int           `json:"loyalty_prices"`
	CreatedAt     time.Time     `json:"created_at"`
}

// LoyaltyPriceDTO is the serialized form of a loyalty rule.
type LoyaltyPriceDTO struct {
	ID           uuid.UUID       `json:"id"`
	CustomerID   int             `json:"customer_id"`
	ProductID    int             `json:"product_id"`
	DiscountRate decimal.Decimal `json:"discount_rate"`
	MinQty       int             `json:"min_qty"`
}

// CustomerDetailDTO is the single-customer view including loyalty rules.
type CustomerDetailDTO struct {
	CustomerID    int               `json:"customer_id"`
	Name          string            `json:"name"`
	Tier          enums.Tier        `json:"tier"`
	Groups        []enums.Group     `json:"groups"`
	LoyaltyPrices []LoyaltyPriceDTO `json:"loyalty_prices"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

func toCustomerDTO(m *models.Customer) *CustomerDTO {
	return &CustomerDTO{
		CustomerID:    m.CustomerID,
		Name:          m.Name,
		Tier:          m.Tier,
		Groups:        m.GroupEnums(),
		LoyaltyPrices: len(m.LoyaltyPrices),
		CreatedAt:     m.CreatedAt,
	}
}

func toLoyaltyPriceDTO(m *models.LoyaltyPriceRule) *LoyaltyPriceDTO {
	return &LoyaltyPriceDTO{
		ID:           m.ID,
		CustomerID:   m.CustomerID,
		ProductID:    m.ProductID,
		DiscountRate: m.DiscountRate,
		MinQty:       m.MinQty,
	}
}

func toCustomerDetailDTO(m *models.Customer) *CustomerDetailDTO {
	out := &CustomerDetailDTO{
		CustomerID:    m.CustomerID,
		Name:          m.Name,
		Tier:          m.Tier,
		Groups:        m.GroupEnums(),
		LoyaltyPrices: make([]LoyaltyPriceDTO, 0, len(m.LoyaltyPrices)),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	for i := range m.LoyaltyPrices {
		out.LoyaltyPrices = append(out.LoyaltyPrices, *toLoyaltyPriceDTO(&m.LoyaltyPrices[i]))
	}
	return out
}
