package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/padhusmiler/mstex/internal/domain"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(server.URL, 5*time.Second, zap.NewNop())
}

func TestClient_TokenTravelsAsQueryParameter(t *testing.T) {
	var gotToken, gotPath string
	r := chi.NewRouter()
	r.Get("/api/cart", func(w http.ResponseWriter, req *http.Request) {
		gotToken = req.URL.Query().Get("token")
		gotPath = req.URL.Path
		_ = json.NewEncoder(w).Encode(domain.Cart{Items: []domain.CartItem{}})
	})

	client := newTestClient(t, r)
	_, err := client.Cart(context.Background(), "secret-token")
	require.NoError(t, err)
	assert.Equal(t, "secret-token", gotToken)
	assert.Equal(t, "/api/cart", gotPath)
}

func TestClient_RequestIDHeaderAttached(t *testing.T) {
	var gotRequestID string
	r := chi.NewRouter()
	r.Get("/api/products", func(w http.ResponseWriter, req *http.Request) {
		gotRequestID = req.Header.Get("X-Request-ID")
		_ = json.NewEncoder(w).Encode([]domain.Product{})
	})

	client := newTestClient(t, r)
	_, err := client.Products(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, gotRequestID)
}

func TestClient_StatusErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		detail string
		check  func(t *testing.T, err error)
	}{
		{
			"401 maps to ErrUnauthorized", http.StatusUnauthorized, "Invalid or expired token",
			func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrUnauthorized) },
		},
		{
			"403 maps to ErrForbidden", http.StatusForbidden, "Admin access required",
			func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrForbidden) },
		},
		{
			"404 maps to ErrNotFound", http.StatusNotFound, "Product not found",
			func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrNotFound) },
		},
		{
			"500 yields StatusError", http.StatusInternalServerError, "boom",
			func(t *testing.T, err error) {
				var se *StatusError
				require.ErrorAs(t, err, &se)
				assert.Equal(t, http.StatusInternalServerError, se.Status)
				assert.Equal(t, "boom", se.Message)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := chi.NewRouter()
			r.Get("/api/products/{id}", func(w http.ResponseWriter, req *http.Request) {
				w.WriteHeader(tt.status)
				_ = json.NewEncoder(w).Encode(map[string]string{"detail": tt.detail})
			})

			client := newTestClient(t, r)
			_, err := client.Product(context.Background(), "p1")
			require.Error(t, err)
			tt.check(t, err)
			assert.Contains(t, err.Error(), tt.detail)
		})
	}
}

func TestClient_UpdateOrderStatusQueryParams(t *testing.T) {
	var gotStatus, gotPayment string
	r := chi.NewRouter()
	r.Put("/api/admin/orders/{id}/status", func(w http.ResponseWriter, req *http.Request) {
		gotStatus = req.URL.Query().Get("status")
		gotPayment = req.URL.Query().Get("payment_status")
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
	})

	client := newTestClient(t, r)
	ctx := context.Background()

	require.NoError(t, client.UpdateOrderStatus(ctx, "tok", "o1", domain.OrderStatusShipped, ""))
	assert.Equal(t, "shipped", gotStatus)
	assert.Empty(t, gotPayment)

	require.NoError(t, client.UpdateOrderStatus(ctx, "tok", "o1", domain.OrderStatusShipped, domain.PaymentStatusCompleted))
	assert.Equal(t, "completed", gotPayment)
}

func TestClient_ContextCancellation(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/products", func(w http.ResponseWriter, req *http.Request) {
		<-req.Context().Done()
	})
	client := newTestClient(t, r)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := client.Products(ctx)
	assert.Error(t, err)
}
