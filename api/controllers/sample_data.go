package controllers

import (
	"net/http"

	"github.com/angelmondragon/pricing-engine-backend/api/responses"
	"github.com/angelmondragon/pricing-engine-backend/internal/fixtures"
	"github.com/angelmondragon/pricing-engine-backend/internal/pricing"
	pkgerrors "github.com/angelmondragon/pricing-engine-backend/pkg/errors"
	"github.com/angelmondragon/pricing-engine-backend/pkg/logger"
)

// InstallSampleData seeds the demo catalog and directory, then prices the
// demo order batch so the history endpoint has data to show. Rerunning is
// safe; existing rows are skipped.
func InstallSampleData(seeder *fixtures.Seeder, pricingSvc pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if seeder == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "seeder unavailable"))
			return
		}

		summary, err := seeder.Install(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var quotes []pricing.QuoteDTO
		if pricingSvc != nil {
			quotes, err = pricingSvc.QuoteBatch(r.Context(), fixtures.DemoOrders())
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{
			"summary":     summary,
			"demo_quotes": quotes,
		})
	}
}
