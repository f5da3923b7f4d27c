package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/pricing-engine-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/pricing-engine-backend/pkg/errors"
)

const defaultListLimit = 100
const maxListLimit = 500

// Service exposes quote history reads.
type Service interface {
	ListQuotes(ctx context.Context, input ListQuotesInput) ([]QuoteHistoryDTO, error)
}

// ListQuotesInput narrows a history listing.
type ListQuotesInput struct {
	CustomerID int `json:"customer_id" validate:"gte=0"`
	ProductID  int `json:"product_id" validate:"gte=0"`
	Limit      int `json:"limit" validate:"gte=0"`
}

// QuoteHistoryDTO is one stored quote outcome.
type QuoteHistoryDTO struct {
	ID         uuid.UUID       `json:"id"`
	CustomerID int             `json:"customer_id"`
	ProductID  int             `json:"product_id"`
	Quantity   int             `json:"quantity"`
	ProductRef string          `json:"product_ref"`
	Price      decimal.Decimal `json:"price"`
	PriceType  enums.PriceType `json:"price_type"`
	CreatedAt  time.Time       `json:"created_at"`
}

// service implements the history service.
type service struct {
	repo *Repository
}

// NewService constructs a quote history service.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	return &service{repo: repo}, nil
}

// ListQuotes returns stored quotes, newest first, capped at maxListLimit.
func (s *service) ListQuotes(ctx context.Context, input ListQuotesInput) ([]QuoteHistoryDTO, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	rows, err := s.repo.List(ctx, ListFilter{
		CustomerID: input.CustomerID,
		ProductID:  input.ProductID,
		Limit:      limit,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list quote history")
	}

	out := make([]QuoteHistoryDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, QuoteHistoryDTO{
			ID:         row.ID,
			CustomerID: row.CustomerID,
			ProductID:  row.ProductID,
			Quantity:   row.Quantity,
			ProductRef: row.ProductRef,
			Price:      row.Price,
			PriceType:  row.PriceType,
			CreatedAt:  row.CreatedAt,
		})
	}
	return out, nil
}
