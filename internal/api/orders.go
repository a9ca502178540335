package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/padhusmiler/mstex/internal/domain"
)

func (c *Client) CreateOrder(ctx context.Context, token string, draft domain.OrderDraft) (*domain.Order, error) {
	var out domain.Order
	if err := c.do(ctx, http.MethodPost, "/orders/create", token, nil, draft, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Orders(ctx context.Context, token string) ([]domain.Order, error) {
	var out []domain.Order
	if err := c.do(ctx, http.MethodGet, "/orders", token, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AdminOrders(ctx context.Context, token string) ([]domain.Order, error) {
	var out []domain.Order
	if err := c.do(ctx, http.MethodGet, "/admin/orders", token, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateOrderStatus sets the fulfillment status and, when paymentStatus is
// non-empty, the payment status in the same request. Both travel as query
// parameters per the backend contract.
func (c *Client) UpdateOrderStatus(ctx context.Context, token, orderID string, status domain.OrderStatus, paymentStatus domain.PaymentStatus) error {
	q := url.Values{}
	q.Set("status", string(status))
	if paymentStatus != "" {
		q.Set("payment_status", string(paymentStatus))
	}
	return c.do(ctx, http.MethodPut, "/admin/orders/"+orderID+"/status", token, q, nil, nil)
}
