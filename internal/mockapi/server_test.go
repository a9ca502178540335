package mockapi_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/padhusmiler/mstex/internal/domain"
	"github.com/padhusmiler/mstex/internal/mockapi"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	store := mockapi.NewStore()
	mockapi.Seed(store)
	srv := httptest.NewServer(mockapi.New(store, "test-secret", "", zap.NewNop()))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, rawURL string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}
	req, err := http.NewRequest(method, rawURL, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, raw
}

type tokenResp struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

func login(t *testing.T, srv *httptest.Server, email, password string) string {
	t.Helper()
	resp, raw := doJSON(t, http.MethodPost, srv.URL+"/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var out tokenResp
	require.NoError(t, json.Unmarshal(raw, &out))
	require.NotEmpty(t, out.Token)
	return out.Token
}

func TestRegisterThenLogin(t *testing.T) {
	srv := newServer(t)

	resp, raw := doJSON(t, http.MethodPost, srv.URL+"/api/auth/register", map[string]string{
		"email":    "new@example.com",
		"password": "hunter22",
		"name":     "New Customer",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var out tokenResp
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "new@example.com", out.User.Email)
	assert.Equal(t, domain.RoleUser, out.User.Role)

	// second registration with the same email is rejected
	resp, raw = doJSON(t, http.MethodPost, srv.URL+"/api/auth/register", map[string]string{
		"email":    "new@example.com",
		"password": "hunter22",
		"name":     "Dup",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, string(raw))

	login(t, srv, "new@example.com", "hunter22")
}

func TestLoginRejectsBadPassword(t *testing.T) {
	srv := newServer(t)
	resp, raw := doJSON(t, http.MethodPost, srv.URL+"/api/auth/login", map[string]string{
		"email":    "customer@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	var payload struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.Equal(t, "Invalid email or password", payload.Detail)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	srv := newServer(t)

	resp, _ := doJSON(t, http.MethodGet, srv.URL+"/api/cart", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/cart?token=garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminRoutesRejectCustomers(t *testing.T) {
	srv := newServer(t)
	token := login(t, srv, "customer@example.com", "password123")

	draft := map[string]any{
		"name": "Sneak", "description": "d", "price": 1.0, "category": "men",
		"image": "http://example.com/x.jpg", "sizes": []string{"M"},
		"colors": []string{"Black"}, "stock": 1,
	}
	resp, raw := doJSON(t, http.MethodPost, srv.URL+"/api/admin/products?token="+url.QueryEscape(token), draft)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, string(raw))

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/admin/orders?token="+url.QueryEscape(token), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestCreateProductValidatesVariants(t *testing.T) {
	srv := newServer(t)
	token := login(t, srv, "admin@mstex.com", "admin123")
	createURL := srv.URL + "/api/admin/products?token=" + url.QueryEscape(token)

	draft := func(sizes, colors []string) map[string]any {
		return map[string]any{
			"name": "Bare Tee", "description": "d", "price": 9.5, "category": "men",
			"image": "http://example.com/x.jpg", "stock": 3,
			"sizes": sizes, "colors": colors,
		}
	}

	resp, raw := doJSON(t, http.MethodPost, createURL, draft(nil, []string{"Black"}))
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, string(raw))

	resp, _ = doJSON(t, http.MethodPost, createURL, draft([]string{"M"}, nil))
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp, raw = doJSON(t, http.MethodPost, createURL, draft([]string{"M"}, []string{"Black"}))
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var created domain.Product
	require.NoError(t, json.Unmarshal(raw, &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Bare Tee", created.Name)
}

func TestOrdersAreScopedToUser(t *testing.T) {
	srv := newServer(t)
	customer := login(t, srv, "customer@example.com", "password123")

	resp, raw := doJSON(t, http.MethodGet, srv.URL+"/api/products", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var products []domain.Product
	require.NoError(t, json.Unmarshal(raw, &products))
	require.NotEmpty(t, products)
	p := products[0]

	item := domain.CartItem{
		ProductID: p.ID, Quantity: 1, Size: p.Sizes[0], Color: p.Colors[0], Price: p.Price,
	}
	resp, raw = doJSON(t, http.MethodPost, srv.URL+"/api/cart/add?token="+url.QueryEscape(customer), item)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	order := domain.OrderDraft{
		Items: []domain.OrderItem{{
			ProductID: p.ID, ProductName: p.Name, Quantity: 1,
			Size: p.Sizes[0], Color: p.Colors[0], Price: p.Price,
		}},
		TotalAmount:     p.Price,
		ShippingAddress: "1 Test Way",
	}
	resp, raw = doJSON(t, http.MethodPost, srv.URL+"/api/orders/create?token="+url.QueryEscape(customer), order)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var placed domain.Order
	require.NoError(t, json.Unmarshal(raw, &placed))
	assert.Equal(t, domain.OrderStatusPending, placed.Status)
	assert.Equal(t, domain.PaymentStatusPending, placed.PaymentStatus)

	// placing the order empties the cart
	resp, raw = doJSON(t, http.MethodGet, srv.URL+"/api/cart?token="+url.QueryEscape(customer), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cart domain.Cart
	require.NoError(t, json.Unmarshal(raw, &cart))
	assert.Empty(t, cart.Items)

	// the customer sees the order, a fresh account does not
	resp, raw = doJSON(t, http.MethodGet, srv.URL+"/api/orders?token="+url.QueryEscape(customer), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var mine []domain.Order
	require.NoError(t, json.Unmarshal(raw, &mine))
	require.Len(t, mine, 1)
	assert.Equal(t, placed.ID, mine[0].ID)

	doJSON(t, http.MethodPost, srv.URL+"/api/auth/register", map[string]string{
		"email": "other@example.com", "password": "pw123456", "name": "Other",
	})
	other := login(t, srv, "other@example.com", "pw123456")
	resp, raw = doJSON(t, http.MethodGet, srv.URL+"/api/orders?token="+url.QueryEscape(other), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var theirs []domain.Order
	require.NoError(t, json.Unmarshal(raw, &theirs))
	assert.Empty(t, theirs)
}

func TestUploadRoundTrip(t *testing.T) {
	srv := newServer(t)
	token := login(t, srv, "admin@mstex.com", "admin123")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "shirt.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("not-really-a-jpeg"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	uploadURL := fmt.Sprintf("%s/api/admin/upload-image?token=%s", srv.URL, url.QueryEscape(token))
	req, err := http.NewRequest(http.MethodPost, uploadURL, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	var out struct {
		URL string `json:"url"`
	}
	require.NoError(t, json.Unmarshal(raw, &out))
	require.True(t, strings.HasPrefix(out.URL, "/uploads/"), out.URL)
	require.True(t, strings.HasSuffix(out.URL, ".jpg"), out.URL)

	resp, raw = doJSON(t, http.MethodGet, srv.URL+out.URL, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "not-really-a-jpeg", string(raw))
}
