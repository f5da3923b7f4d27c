package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/pricing-engine-backend/pkg/enums"
)

// OrderInput is one purchase order to price.
type OrderInput struct {
	CustomerID int `json:"customer_id" validate:"required,gt=0"`
	ProductID  int `json:"product_id" validate:"required,gt=0"`
	Quantity   int `json:"quantity" validate:"required,gt=0"`
}

// QuoteDTO is the priced outcome for one order. ProductID is the formatted
// reference, not the numeric id.
type QuoteDTO struct {
	ProductID string          `json:"product_id"`
	Price     decimal.Decimal `json:"price"`
	PriceType enums.PriceType `json:"price_type"`
}

// GroupPriceDTO is one qualifying group candidate in a breakdown.
type GroupPriceDTO struct {
	Group enums.Group     `json:"group"`
	Price decimal.Decimal `json:"price"`
}

// BreakdownDTO exposes every candidate an order qualified for alongside the
// selected quote. Zero loyalty or tier prices mean no rule of that kind
// applied.
type BreakdownDTO struct {
	BasePrice    decimal.Decimal `json:"base_price"`
	LoyaltyPrice decimal.Decimal `json:"loyalty_price"`
	TierPrice    decimal.Decimal `json:"tier_price"`
	GroupPrices  []GroupPriceDTO `json:"group_prices"`
	Selected     QuoteDTO        `json:"selected"`
}

func toQuoteDTO(result Result) QuoteDTO {
	return QuoteDTO{
		ProductID: result.ProductID,
		Price:     result.Price,
		PriceType: result.PriceType,
	}
}
