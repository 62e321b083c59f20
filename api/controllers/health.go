package controllers

import (
	"net/http"

	"github.com/bebifresh/bebifresh-backend/api/responses"
	"github.com/bebifresh/bebifresh-backend/pkg/config"
	"github.com/bebifresh/bebifresh-backend/pkg/db"
	pkgerrors "github.com/bebifresh/bebifresh-backend/pkg/errors"
	"github.com/bebifresh/bebifresh-backend/pkg/logger"
	"github.com/bebifresh/bebifresh-backend/pkg/redis"
)

// HealthLive reports process liveness.
func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-BebiFresh-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports readiness after checking the backing stores.
func HealthReady(cfg *config.Config, logg *logger.Logger, database db.Pinger, cache redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-BebiFresh-Env", cfg.App.Env)

		if database != nil {
			if err := database.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unavailable"))
				return
			}
		}
		if cache != nil {
			if err := cache.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unavailable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
