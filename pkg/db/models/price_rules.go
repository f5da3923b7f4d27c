package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/pricing-engine-backend/pkg/enums"
)

// TierPriceRule discounts a product for customers of a given tier once the
// order quantity reaches MinQty. One rule per (product, tier) pair.
type TierPriceRule struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	ProductID    int             `gorm:"column:product_id;not null;uniqueIndex:idx_tier_rules_product_tier"`
	Tier         enums.Tier      `gorm:"column:tier;not null;uniqueIndex:idx_tier_rules_product_tier"`
	DiscountRate decimal.Decimal `gorm:"column:discount_rate;type:numeric(5,4);not null"`
	MinQty       int             `gorm:"column:min_qty;not null"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (r *TierPriceRule) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// GroupPriceRule discounts a product for members of a given group. Because
// group membership is non-exclusive, several group rules can apply to the
// same order at once.
type GroupPriceRule struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	ProductID    int             `gorm:"column:product_id;not null;uniqueIndex:idx_group_rules_product_group"`
	Group        enums.Group     `gorm:"column:customer_group;not null;uniqueIndex:idx_group_rules_product_group"`
	DiscountRate decimal.Decimal `gorm:"column:discount_rate;type:numeric(5,4);not null"`
	MinQty       int             `gorm:"column:min_qty;not null"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (r *GroupPriceRule) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// LoyaltyPriceRule discounts one product for one specific customer. One rule
// per (customer, product) pair.
type LoyaltyPriceRule struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	CustomerID   int             `gorm:"column:customer_id;not null;uniqueIndex:idx_loyalty_rules_customer_product"`
	ProductID    int             `gorm:"column:product_id;not null;uniqueIndex:idx_loyalty_rules_customer_product"`
	DiscountRate decimal.Decimal `gorm:"column:discount_rate;type:numeric(5,4);not null"`
	MinQty       int             `gorm:"column:min_qty;not null"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (r *LoyaltyPriceRule) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
