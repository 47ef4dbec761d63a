package middleware

import (
	"context"
	"net/http"

	"github.com/mcamac38/stock-trader-simulator/internal/auth"
	"github.com/mcamac38/stock-trader-simulator/internal/http/respond"
	"github.com/mcamac38/stock-trader-simulator/internal/models"
)

type contextKey struct{}

var userKey contextKey

// UserFromContext returns the authenticated user set by RequireUser.
func UserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userKey).(models.User)
	return user, ok
}

// RequireUser resolves the Authorization header to a user and stores it in
// the request context. Missing or invalid credentials get a 401.
func RequireUser(resolver *auth.SessionResolver, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := resolver.Resolve(r.Context(), r.Header.Get("Authorization"))
		if err != nil {
			respond.Detail(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		ctx := context.WithValue(r.Context(), userKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
