// Package requesttime captures one "now" per request so that createdAt and
// updatedAt written during the same request agree.
package requesttime

import (
	"net/http"
	"time"

	"github.com/nraford7/matchmaker-gem-68-sub000/pkg/requestcontext"
)

// Middleware stores the request start time in the context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now().UTC())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
