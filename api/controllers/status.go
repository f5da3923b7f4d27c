package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/pricing-engine-backend/api/responses"
	"github.com/angelmondragon/pricing-engine-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/pricing-engine-backend/pkg/errors"
	"github.com/angelmondragon/pricing-engine-backend/pkg/logger"
	"github.com/angelmondragon/pricing-engine-backend/pkg/redis"
)

type rowCounter interface {
	Count(ctx context.Context) (int64, error)
}

// Status reports entity counts and runtime toggles for operators.
func Status(cfg *config.Config, products, customers, quotes rowCounter, cache *redis.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		productCount, err := products.Count(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count products"))
			return
		}
		customerCount, err := customers.Count(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count customers"))
			return
		}
		quoteCount, err := quotes.Count(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count quotes"))
			return
		}

		cacheUp := false
		if cache != nil {
			cacheUp = cache.Ping(ctx) == nil
		}

		responses.WriteSuccess(w, map[string]any{
			"env":           cfg.App.Env,
			"products":      productCount,
			"customers":     customerCount,
			"stored_quotes": quoteCount,
			"cache_up":      cacheUp,
		})
	}
}
