package middleware

import "net/http"

// SummaryInvalidator is the debounced refresh hook mutating routes poke.
type SummaryInvalidator interface {
	Invalidate()
}

// InvalidateSummary marks the cached dashboard summary stale after any
// successful mutating request passing through it.
func InvalidateSummary(inv SummaryInvalidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if inv == nil || r.Method == http.MethodGet || r.Method == http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}

			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)

			if recorder.status < http.StatusBadRequest {
				inv.Invalidate()
			}
		})
	}
}
