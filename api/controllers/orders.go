package controllers

import (
	"net/http"

	"github.com/angelmondragon/pricing-engine-backend/api/responses"
	"github.com/angelmondragon/pricing-engine-backend/api/validators"
	ordersvc "github.com/angelmondragon/pricing-engine-backend/internal/orders"
	pkgerrors "github.com/angelmondragon/pricing-engine-backend/pkg/errors"
	"github.com/angelmondragon/pricing-engine-backend/pkg/logger"
)

// ListQuoteHistory returns stored quote outcomes, newest first. Supports
// customer_id, product_id, and limit query filters.
func ListQuoteHistory(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		customerID, err := validators.ParseQueryInt(r, "customer_id", 0, 0, 1<<31-1)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := validators.ParseQueryInt(r, "product_id", 0, 0, 1<<31-1)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, 500)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quotes, err := svc.ListQuotes(r.Context(), ordersvc.ListQuotesInput{
			CustomerID: customerID,
			ProductID:  productID,
			Limit:      limit,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quotes)
	}
}
