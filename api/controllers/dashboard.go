package controllers

import (
	"net/http"

	"github.com/bebifresh/bebifresh-backend/api/middleware"
	"github.com/bebifresh/bebifresh-backend/api/responses"
	dashsvc "github.com/bebifresh/bebifresh-backend/internal/dashboard"
	pkgerrors "github.com/bebifresh/bebifresh-backend/pkg/errors"
	"github.com/bebifresh/bebifresh-backend/pkg/logger"
)

// DashboardSummary handles GET /api/v1/dashboard/summary.
func DashboardSummary(svc dashsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dashboard service unavailable"))
			return
		}

		summary, err := svc.Summary(r.Context(), middleware.AgeModeFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}
