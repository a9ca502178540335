// Package session holds the authenticated-user state every view reads: the
// bearer token, the loaded profile and the derived cart item count. All
// mutation goes through Login, Logout and RefreshCartCount.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/padhusmiler/mstex/internal/api"
	"github.com/padhusmiler/mstex/internal/domain"
)

var ErrNotLoggedIn = errors.New("not logged in")

type Session struct {
	client *api.Client
	store  TokenStore
	log    *zap.Logger

	mu        sync.Mutex
	token     string
	user      *domain.User
	cartCount int
}

func New(client *api.Client, store TokenStore, log *zap.Logger) *Session {
	return &Session{client: client, store: store, log: log}
}

// Restore picks up a token left by a previous run and eagerly loads the
// profile and cart count. A failed profile fetch means the token is dead
// (expired, revoked) and forces a logout; there is no retry. A failed cart
// fetch only loses the count.
func (s *Session) Restore(ctx context.Context) error {
	token, err := s.store.Load()
	if errors.Is(err, ErrNoToken) {
		return nil
	}
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	user, err := s.client.Profile(ctx, token)
	if err != nil {
		s.log.Warn("failed to load user, dropping session", zap.Error(err))
		if logoutErr := s.Logout(); logoutErr != nil {
			s.log.Warn("logout cleanup failed", zap.Error(logoutErr))
		}
		return fmt.Errorf("stored session is invalid: %w", err)
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()

	s.RefreshCartCount(ctx)
	return nil
}

// Login persists the token and installs the user. The cart count is
// refreshed separately by the caller once the cart is reachable.
func (s *Session) Login(token string, user domain.User) error {
	if err := s.store.Save(token); err != nil {
		return err
	}
	s.mu.Lock()
	s.token = token
	s.user = &user
	s.mu.Unlock()
	return nil
}

// Logout clears the stored token, the in-memory user and the cart count.
func (s *Session) Logout() error {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.cartCount = 0
	s.mu.Unlock()
	return s.store.Clear()
}

// RefreshCartCount re-derives the badge count from the server-held cart.
// Failures are logged and the previous count kept, matching the original
// behavior of a non-fatal cart load error.
func (s *Session) RefreshCartCount(ctx context.Context) {
	token := s.Token()
	if token == "" {
		return
	}
	cart, err := s.client.Cart(ctx, token)
	if err != nil {
		s.log.Warn("failed to load cart count", zap.Error(err))
		return
	}
	s.mu.Lock()
	s.cartCount = len(cart.Items)
	s.mu.Unlock()
}

func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Session) User() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

func (s *Session) CartCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartCount
}

func (s *Session) LoggedIn() bool { return s.Token() != "" }

func (s *Session) IsAdmin() bool { return s.User().IsAdmin() }

// SetUser replaces the cached profile after an edit.
func (s *Session) SetUser(user domain.User) {
	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
}

// TokenExpiresAt peeks at the token's exp claim without verifying the
// signature (the secret belongs to the backend). Zero time when the token is
// absent, opaque or carries no expiry.
func (s *Session) TokenExpiresAt() time.Time {
	token := s.Token()
	if token == "" {
		return time.Time{}
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
