package controllers

import (
	"net/http"

	"github.com/angelmondragon/pricing-engine-backend/api/responses"
	"github.com/angelmondragon/pricing-engine-backend/pkg/config"
	"github.com/angelmondragon/pricing-engine-backend/pkg/db"
	pkgerrors "github.com/angelmondragon/pricing-engine-backend/pkg/errors"
	"github.com/angelmondragon/pricing-engine-backend/pkg/logger"
	"github.com/angelmondragon/pricing-engine-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Pricing-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the database and, when configured, the quote cache. A
// nil cache client means caching is disabled and does not block readiness.
func HealthReady(cfg *config.Config, dbClient *db.Client, cache *redis.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Pricing-Env", cfg.App.Env)

		if dbClient != nil {
			if err := dbClient.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db unreachable"))
				return
			}
		}
		if cache != nil {
			if err := cache.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cache unreachable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
