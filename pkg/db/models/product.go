package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Tier and group price rules hang off the product
// they discount.
type Product struct {
	ProductID   int              `gorm:"column:product_id;primaryKey"`
	Name        string           `gorm:"column:name;not null"`
	BasePrice   decimal.Decimal  `gorm:"column:base_price;type:numeric(14,2);not null"`
	TierPrices  []TierPriceRule  `gorm:"foreignKey:ProductID;references:ProductID;constraint:OnDelete:CASCADE"`
	GroupPrices []GroupPriceRule `gorm:"foreignKey:ProductID;references:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
