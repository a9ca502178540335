package api

import (
	"context"
	"net/http"

	"github.com/padhusmiler/mstex/internal/domain"
)

func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	if err := c.do(ctx, http.MethodGet, "/products", "", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Product(ctx context.Context, id string) (*domain.Product, error) {
	var out domain.Product
	if err := c.do(ctx, http.MethodGet, "/products/"+id, "", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
