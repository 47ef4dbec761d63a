package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/mcamac38/stock-trader-simulator/internal/models"
	"github.com/mcamac38/stock-trader-simulator/internal/storage"
)

// ErrUnauthenticated indicates the Authorization header did not resolve to a
// known user.
var ErrUnauthenticated = errors.New("not authenticated")

const bearerPrefix = "Bearer "

// SessionResolver maps an inbound Authorization header to a full user
// identity. The signed-token path is always tried first; the legacy
// raw-username-as-token path is only consulted when explicitly enabled,
// since it bypasses signature verification entirely.
type SessionResolver struct {
	tokens         *TokenManager
	users          storage.UserStore
	legacyFallback bool
}

// NewSessionResolver constructs a resolver. legacyFallback enables the
// pre-token compatibility path where the bearer value is a bare username.
func NewSessionResolver(tokens *TokenManager, users storage.UserStore, legacyFallback bool) *SessionResolver {
	return &SessionResolver{
		tokens:         tokens,
		users:          users,
		legacyFallback: legacyFallback,
	}
}

// Resolve returns the authenticated user for the header, or
// ErrUnauthenticated. The returned identity is always fully populated.
func (r *SessionResolver) Resolve(ctx context.Context, authorizationHeader string) (models.User, error) {
	if !strings.HasPrefix(authorizationHeader, bearerPrefix) {
		return models.User{}, ErrUnauthenticated
	}
	raw := strings.TrimSpace(strings.TrimPrefix(authorizationHeader, bearerPrefix))
	if raw == "" {
		return models.User{}, ErrUnauthenticated
	}

	if subject, err := r.tokens.Verify(raw); err == nil {
		return r.lookup(ctx, subject)
	}

	if r.legacyFallback {
		return r.lookup(ctx, raw)
	}
	return models.User{}, ErrUnauthenticated
}

func (r *SessionResolver) lookup(ctx context.Context, username string) (models.User, error) {
	user, err := r.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.User{}, ErrUnauthenticated
		}
		return models.User{}, err
	}
	return user, nil
}
