package api

import (
	"context"
	"net/http"

	"github.com/padhusmiler/mstex/internal/domain"
)

func (c *Client) Cart(ctx context.Context, token string) (*domain.Cart, error) {
	var out domain.Cart
	if err := c.do(ctx, http.MethodGet, "/cart", token, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AddToCart(ctx context.Context, token string, item domain.CartItem) error {
	return c.do(ctx, http.MethodPost, "/cart/add", token, nil, item, nil)
}

// UpdateCart replaces the server-held line array wholesale, which is how the
// backend models quantity changes.
func (c *Client) UpdateCart(ctx context.Context, token string, items []domain.CartItem) error {
	return c.do(ctx, http.MethodPut, "/cart/update", token, nil, items, nil)
}

func (c *Client) RemoveFromCart(ctx context.Context, token, productID string) error {
	return c.do(ctx, http.MethodDelete, "/cart/remove/"+productID, token, nil, nil, nil)
}

func (c *Client) ClearCart(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodDelete, "/cart/clear", token, nil, nil, nil)
}
