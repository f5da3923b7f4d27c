package controllers

import (
	"net/http"

	"github.com/angelmondragon/pricing-engine-backend/api/responses"
	"github.com/angelmondragon/pricing-engine-backend/api/validators"
	"github.com/angelmondragon/pricing-engine-backend/internal/pricing"
	pkgerrors "github.com/angelmondragon/pricing-engine-backend/pkg/errors"
	"github.com/angelmondragon/pricing-engine-backend/pkg/logger"
)

const maxBatchOrders = 1000

type quoteBatchRequest struct {
	Orders []pricing.OrderInput `json:"orders" validate:"required,min=1,dive"`
}

type quoteBatchResponse struct {
	Quotes []pricing.QuoteDTO `json:"quotes"`
	Count  int                `json:"count"`
}

// QuoteOrder prices one order.
func QuoteOrder(svc pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing service unavailable"))
			return
		}

		var payload pricing.OrderInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := logg.WithCustomerID(r.Context(), payload.CustomerID)
		ctx = logg.WithProductID(ctx, payload.ProductID)

		quote, err := svc.Quote(ctx, payload)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}

// QuoteOrders prices a batch of orders against one snapshot. The response
// slice is positionally aligned with the request; unresolvable orders come
// back as ERROR entries.
func QuoteOrders(svc pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing service unavailable"))
			return
		}

		var payload quoteBatchRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if len(payload.Orders) > maxBatchOrders {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "too many orders in one batch"))
			return
		}

		quotes, err := svc.QuoteBatch(r.Context(), payload.Orders)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quoteBatchResponse{Quotes: quotes, Count: len(quotes)})
	}
}

// OrderCandidates exposes the full candidate breakdown for one order.
func OrderCandidates(svc pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing service unavailable"))
			return
		}

		var payload pricing.OrderInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		breakdown, err := svc.Candidates(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, breakdown)
	}
}
