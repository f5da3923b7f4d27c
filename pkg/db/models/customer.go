package models

import (
	"time"

	"github.com/lib/pq"

	"github.com/angelmondragon/pricing-engine-backend/pkg/enums"
)

// Customer is a directory entry. Tier is exclusive; groups are not. Loyalty
// price rules are scoped to the customer that owns them.
type Customer struct {
	CustomerID    int                `gorm:"column:customer_id;primaryKey"`
	Name          string             `gorm:"column:name;not null"`
	Tier          enums.Tier         `gorm:"column:tier;not null"`
	Groups        pq.StringArray     `gorm:"column:groups;type:text[];not null;default:ARRAY[]::text[]"`
	LoyaltyPrices []LoyaltyPriceRule `gorm:"foreignKey:CustomerID;references:CustomerID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

// GroupEnums converts the stored strings back into validated Group values.
// Unknown values are skipped; ingestion validates, so none should appear.
func (c Customer) GroupEnums() []enums.Group {
	groups := make([]enums.Group, 0, len(c.Groups))
	for _, raw := range c.Groups {
		group := enums.Group(raw)
		if group.IsValid() {
			groups = append(groups, group)
		}
	}
	return groups
}
