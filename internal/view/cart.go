package view

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/padhusmiler/mstex/internal/api"
	"github.com/padhusmiler/mstex/internal/domain"
	"github.com/padhusmiler/mstex/internal/session"
)

var (
	ErrQuantityTooLow = errors.New("quantity must be at least 1")
	ErrNoSuchLine     = errors.New("no such cart line")
)

// Cart is the cart page: per-line quantity changes, removal and the
// client-side total. Every successful mutation re-fetches the server cart,
// so local state never runs ahead of a confirmed write.
type Cart struct {
	client *api.Client
	sess   *session.Session
	log    *zap.Logger

	cart domain.Cart
}

func NewCart(client *api.Client, sess *session.Session, log *zap.Logger) *Cart {
	return &Cart{client: client, sess: sess, log: log}
}

func (v *Cart) Load(ctx context.Context) error {
	token := v.sess.Token()
	if token == "" {
		return session.ErrNotLoggedIn
	}
	cart, err := v.client.Cart(ctx, token)
	if err != nil {
		v.log.Error("failed to load cart", zap.Error(err))
		v.cart = domain.Cart{}
		return err
	}
	v.cart = *cart
	return nil
}

func (v *Cart) Items() []domain.CartItem { return v.cart.Items }

func (v *Cart) IsEmpty() bool { return v.cart.IsEmpty() }

// UpdateQuantity sets line index to qty. Quantities below 1 are rejected
// locally without a server call. The whole line array is PUT to the server,
// then the cart and badge count are re-fetched.
func (v *Cart) UpdateQuantity(ctx context.Context, index, qty int) error {
	if qty < 1 {
		return ErrQuantityTooLow
	}
	if index < 0 || index >= len(v.cart.Items) {
		return ErrNoSuchLine
	}

	updated := make([]domain.CartItem, len(v.cart.Items))
	copy(updated, v.cart.Items)
	updated[index].Quantity = qty

	token := v.sess.Token()
	if err := v.client.UpdateCart(ctx, token, updated); err != nil {
		return fmt.Errorf("failed to update cart: %w", err)
	}

	if err := v.Load(ctx); err != nil {
		return err
	}
	v.sess.RefreshCartCount(ctx)
	return nil
}

// RemoveItem deletes the line for productID server-side, then fully
// re-fetches. Removing the last line leaves the empty-cart state.
func (v *Cart) RemoveItem(ctx context.Context, productID string) error {
	token := v.sess.Token()
	if err := v.client.RemoveFromCart(ctx, token, productID); err != nil {
		return fmt.Errorf("failed to remove item: %w", err)
	}
	if err := v.Load(ctx); err != nil {
		return err
	}
	v.sess.RefreshCartCount(ctx)
	return nil
}

// Clear empties the whole cart server-side.
func (v *Cart) Clear(ctx context.Context) error {
	token := v.sess.Token()
	if err := v.client.ClearCart(ctx, token); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	if err := v.Load(ctx); err != nil {
		return err
	}
	v.sess.RefreshCartCount(ctx)
	return nil
}

func (v *Cart) Total() float64 { return v.cart.Total() }

// TotalString renders the total to two decimal places, as displayed.
func (v *Cart) TotalString() string {
	return strconv.FormatFloat(v.cart.Total(), 'f', 2, 64)
}
