package products

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/pricing-engine-backend/pkg/db/models"
	"github.com/angelmondragon/pricing-engine-backend/pkg/enums"
)

// CreateProductInput is the payload for registering a product.
type CreateProductInput struct {
	ProductID int             `json:"product_id" validate:"required,gt=0"`
	Name      string          `json:"name" validate:"required,min=1,max=255"`
	BasePrice decimal.Decimal `json:"base_price" validate:"required"`
}

// AddTierPriceInput is the payload for attaching a tier discount to a product.
type AddTierPriceInput struct {
	Tier         enums.Tier      `json:"tier" validate:"required"`
	DiscountRate decimal.Decimal `json:"discount_rate" validate:"required"`
	MinQty       int             `json:"min_qty" validate:"gte=0"`
}

// AddGroupPriceInput is the payload for attaching a group discount to a product.
type AddGroupPriceInput struct {
	Group        enums.Group     `json:"group" validate:"required"`
	DiscountRate decimal.Decimal `json:"discount_rate" validate:"required"`
	MinQty       int             `json:"min_qty" validate:"gte=0"`
}

// ProductDTO is the list/summary view of a product.
type ProductDTO struct {
	ProductID   int             `json:"product_id"`
	Name        string          `json:"name"`
	BasePrice   decimal.Decimal `json:"base_price"`
	TierPrices  int             `json:"tier_prices"`
	GroupPrices int             `json:"group_prices"`
	CreatedAt   time.Time       `json:"created_at"`
}

// TierPriceDTO is the serialized form of a tier rule.
type TierPriceDTO struct {
	ID           uuid.UUID       `json:"id"`
	ProductID    int             `json:"product_id"`
	Tier         enums.Tier      `json:"tier"`
	DiscountRate decimal.Decimal `json:"discount_rate"`
	MinQty       int             `json:"min_qty"`
}

// GroupPriceDTO is the serialized form of a group rule.
type GroupPriceDTO struct {
	ID           uuid.UUID       `json:"id"`
	ProductID    int             `json:"product_id"`
	Group        enums.Group     `json:"group"`
	DiscountRate decimal.Decimal `json:"discount_rate"`
	MinQty       int             `json:"min_qty"`
}

// ProductDetailDTO is the single-product view including its rules.
type ProductDetailDTO struct {
	ProductID   int             `json:"product_id"`
	Name        string          `json:"name"`
	BasePrice   decimal.Decimal `json:"base_price"`
	TierPrices  []TierPriceDTO  `json:"tier_prices"`
	GroupPrices []GroupPriceDTO `json:"group_prices"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func toProductDTO(m *models.Product) *ProductDTO {
	return &ProductDTO{
		ProductID:   m.ProductID,
		Name:        m.Name,
		BasePrice:   m.BasePrice,
		TierPrices:  len(m.TierPrices),
		GroupPrices: len(m.GroupPrices),
		CreatedAt:   m.CreatedAt,
	}
}

func toTierPriceDTO(m *models.TierPriceRule) *TierPriceDTO {
	return &TierPriceDTO{
		ID:           m.ID,
		ProductID:    m.ProductID,
		Tier:         m.Tier,
		DiscountRate: m.DiscountRate,
		MinQty:       m.MinQty,
	}
}

func toGroupPriceDTO(m *models.GroupPriceRule) *GroupPriceDTO {
	return &GroupPriceDTO{
		ID:           m.ID,
		ProductID:    m.ProductID,
		Group:        m.Group,
		DiscountRate: m.DiscountRate,
		MinQty:       m.MinQty,
	}
}

func toProductDetailDTO(m *models.Product) *ProductDetailDTO {
	out := &ProductDetailDTO{
		ProductID:   m.ProductID,
		Name:        m.Name,
		BasePrice:   m.BasePrice,
		TierPrices:  make([]TierPriceDTO, 0, len(m.TierPrices)),
		GroupPrices: make([]GroupPriceDTO, 0, len(m.GroupPrices)),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	for i := range m.TierPrices {
		out.TierPrices = append(out.TierPrices, *toTierPriceDTO(&m.TierPrices[i]))
	}
	for i := range m.GroupPrices {
		out.GroupPrices = append(out.GroupPrices, *toGroupPriceDTO(&m.GroupPrices[i]))
	}
	return out
}
