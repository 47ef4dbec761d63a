package auth

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mcamac38/stock-trader-simulator/internal/models"
	"github.com/mcamac38/stock-trader-simulator/internal/storage"
)

// stubUserStore serves a fixed set of users by username.
type stubUserStore struct {
	users map[string]models.User
}

func (s *stubUserStore) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	return user, nil
}

func (s *stubUserStore) FindByUsername(ctx context.Context, username string) (models.User, error) {
	user, ok := s.users[username]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return user, nil
}

func (s *stubUserStore) GetBalance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (s *stubUserStore) Deposit(ctx context.Context, userID int64, amount decimal.Decimal) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (s *stubUserStore) Withdraw(ctx context.Context, userID int64, amount decimal.Decimal) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func newTestResolver(t *testing.T, legacy bool) (*SessionResolver, *TokenManager) {
	t.Helper()
	tm := NewTokenManager("test-secret", "stock-trader-api", time.Hour)
	store := &stubUserStore{users: map[string]models.User{
		"alice": {ID: 1, Username: "alice", Email: "alice@example.com", FullName: "Alice A", Role: models.RoleUser},
	}}
	return NewSessionResolver(tm, store, legacy), tm
}

func TestResolveValidToken(t *testing.T) {
	resolver, tm := newTestResolver(t, false)

	raw, err := tm.Generate("alice")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	user, err := resolver.Resolve(context.Background(), "Bearer "+raw)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if user.ID != 1 || user.Username != "alice" || user.Email == "" || user.FullName == "" || user.Role == "" {
		t.Errorf("identity not fully populated: %+v", user)
	}
}

func TestResolveRejectsBadHeaders(t *testing.T) {
	resolver, tm := newTestResolver(t, false)

	raw, _ := tm.Generate("alice")
	headers := []string{
		"",
		"Bearer ",
		"Bearer    ",
		"Basic " + raw,
		raw, // no scheme
	}
	for _, header := range headers {
		if _, err := resolver.Resolve(context.Background(), header); err != ErrUnauthenticated {
			t.Errorf("Resolve(%q): err = %v, want ErrUnauthenticated", header, err)
		}
	}
}

func TestResolveUnknownSubject(t *testing.T) {
	resolver, tm := newTestResolver(t, false)

	raw, err := tm.Generate("mallory")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if _, err := resolver.Resolve(context.Background(), "Bearer "+raw); err != ErrUnauthenticated {
		t.Errorf("unknown subject: err = %v, want ErrUnauthenticated", err)
	}
}

func TestResolveLegacyFallbackDisabled(t *testing.T) {
	resolver, _ := newTestResolver(t, false)

	if _, err := resolver.Resolve(context.Background(), "Bearer alice"); err != ErrUnauthenticated {
		t.Errorf("raw username accepted with fallback disabled: err = %v", err)
	}
}

func TestResolveLegacyFallbackEnabled(t *testing.T) {
	resolver, _ := newTestResolver(t, true)

	user, err := resolver.Resolve(context.Background(), "Bearer alice")
	if err != nil {
		t.Fatalf("legacy fallback rejected a known username: %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("user = %q, want alice", user.Username)
	}

	if _, err := resolver.Resolve(context.Background(), "Bearer nobody"); err != ErrUnauthenticated {
		t.Errorf("unknown legacy username: err = %v, want ErrUnauthenticated", err)
	}
}
