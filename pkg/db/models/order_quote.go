package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/pricing-engine-backend/pkg/enums"
)

// OrderQuote records a priced order: the raw request plus the winning price
// and its provenance. Price is the resolved unit price; any line-item total a
// caller displays is quantity-scaled outside the engine.
type OrderQuote struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	CustomerID int             `gorm:"column:customer_id;not null"`
	ProductID  int             `gorm:"column:product_id;not null"`
	Quantity   int             `gorm:"column:quantity;not null"`
	ProductRef string          `gorm:"column:product_ref;not null"`
	Price      decimal.Decimal `gorm:"column:price;type:numeric(14,2);not null"`
	PriceType  enums.PriceType `gorm:"column:price_type;not null"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (q *OrderQuote) BeforeCreate(*gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}
