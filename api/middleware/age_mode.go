package middleware

import (
	"net/http"
	"strings"

	"github.com/bebifresh/bebifresh-backend/pkg/enums"
)

const ageModeHeader = "X-Age-Mode"

// AgeMode resolves the storefront copy audience from the X-Age-Mode header.
// The header is the only source; anything absent or unrecognized falls back
// to adults.
func AgeMode() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get(ageModeHeader))

			mode := enums.AgeModeAdultos
			if parsed, err := enums.ParseAgeMode(raw); err == nil {
				mode = parsed
			}

			next.ServeHTTP(w, r.WithContext(WithAgeMode(r.Context(), mode)))
		})
	}
}
