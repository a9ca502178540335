package view_test

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/padhusmiler/mstex/internal/api"
	"github.com/padhusmiler/mstex/internal/domain"
	"github.com/padhusmiler/mstex/internal/mockapi"
	"github.com/padhusmiler/mstex/internal/session"
)

// env spins up the mock backend and a logged-out session against it.
type env struct {
	store  *mockapi.Store
	server *httptest.Server
	client *api.Client
	sess   *session.Session
	log    *zap.Logger
}

func newEnv(t *testing.T) *env {
	t.Helper()
	log := zap.NewNop()
	store := mockapi.NewStore()
	mockapi.Seed(store)

	server := httptest.NewServer(mockapi.New(store, "test-secret", "", log))
	t.Cleanup(server.Close)

	client := api.New(server.URL, 5*time.Second, log)
	tokenStore := session.NewFileTokenStore(filepath.Join(t.TempDir(), "token"))
	return &env{
		store:  store,
		server: server,
		client: client,
		sess:   session.New(client, tokenStore, log),
		log:    log,
	}
}

// loginCustomer logs the seeded customer in.
func (e *env) loginCustomer(t *testing.T) {
	t.Helper()
	e.login(t, "customer@example.com", "password123")
}

// loginAdmin logs the seeded admin in.
func (e *env) loginAdmin(t *testing.T) {
	t.Helper()
	e.login(t, "admin@mstex.com", "admin123")
}

func (e *env) login(t *testing.T, email, password string) {
	t.Helper()
	resp, err := e.client.Login(context.Background(), email, password)
	require.NoError(t, err)
	require.NoError(t, e.sess.Login(resp.Token, resp.User))
}

// firstProduct returns a seeded product to work with.
func (e *env) firstProduct(t *testing.T) domain.Product {
	t.Helper()
	products := e.store.Products()
	require.NotEmpty(t, products)
	return products[0]
}
