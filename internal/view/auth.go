package view

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/padhusmiler/mstex/internal/api"
	"github.com/padhusmiler/mstex/internal/domain"
	"github.com/padhusmiler/mstex/internal/session"
)

// Auth covers the login and registration pages. Both end in a session login
// followed by a cart-count refresh.
type Auth struct {
	client *api.Client
	sess   *session.Session
	log    *zap.Logger
}

func NewAuth(client *api.Client, sess *session.Session, log *zap.Logger) *Auth {
	return &Auth{client: client, sess: sess, log: log}
}

func (v *Auth) Login(ctx context.Context, email, password string) (*domain.User, error) {
	resp, err := v.client.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	if err := v.sess.Login(resp.Token, resp.User); err != nil {
		return nil, err
	}
	v.sess.RefreshCartCount(ctx)
	return &resp.User, nil
}

func (v *Auth) Register(ctx context.Context, profile domain.Profile, password string) (*domain.User, error) {
	resp, err := v.client.Register(ctx, profile, password)
	if err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}
	if err := v.sess.Login(resp.Token, resp.User); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Profile is the account page: the cached user prefills the form and a save
// round-trips through the backend before updating the session copy.
type Profile struct {
	client *api.Client
	sess   *session.Session
	log    *zap.Logger
}

func NewProfile(client *api.Client, sess *session.Session, log *zap.Logger) *Profile {
	return &Profile{client: client, sess: sess, log: log}
}

func (v *Profile) Current() *domain.User { return v.sess.User() }

func (v *Profile) Save(ctx context.Context, draft domain.Profile) (*domain.User, error) {
	token := v.sess.Token()
	if token == "" {
		return nil, session.ErrNotLoggedIn
	}
	user, err := v.client.UpdateProfile(ctx, token, draft)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	v.sess.SetUser(*user)
	return user, nil
}
