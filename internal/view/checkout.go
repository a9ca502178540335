package view

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/padhusmiler/mstex/internal/api"
	"github.com/padhusmiler/mstex/internal/domain"
	"github.com/padhusmiler/mstex/internal/session"
)

var (
	ErrEmptyCart    = errors.New("cart is empty, nothing to check out")
	ErrBlankAddress = errors.New("shipping address is required")
	ErrInProgress   = errors.New("an order is already being placed")
)

// Checkout re-fetches the cart, collects a shipping address and converts the
// cart lines into an order.
type Checkout struct {
	client *api.Client
	sess   *session.Session
	log    *zap.Logger

	// settleDelay simulates payment settlement after a successful order
	// before the caller navigates away.
	settleDelay time.Duration

	cart       domain.Cart
	processing bool
}

func NewCheckout(client *api.Client, sess *session.Session, settleDelay time.Duration, log *zap.Logger) *Checkout {
	return &Checkout{client: client, sess: sess, settleDelay: settleDelay, log: log}
}

// Load re-fetches the cart. An empty cart returns ErrEmptyCart so the caller
// can send the user back to the cart page. The default address is the
// profile address when one is on file.
func (v *Checkout) Load(ctx context.Context) error {
	token := v.sess.Token()
	if token == "" {
		return session.ErrNotLoggedIn
	}
	cart, err := v.client.Cart(ctx, token)
	if err != nil {
		v.log.Error("failed to load cart", zap.Error(err))
		return err
	}
	if cart.IsEmpty() {
		return ErrEmptyCart
	}
	v.cart = *cart
	return nil
}

// DefaultAddress is the profile address used to prefill the form.
func (v *Checkout) DefaultAddress() string {
	if u := v.sess.User(); u != nil {
		return u.Address
	}
	return ""
}

func (v *Checkout) Items() []domain.CartItem { return v.cart.Items }

func (v *Checkout) Total() float64 {
	// Round to cents; the backend stores what the client computed.
	return math.Round(v.cart.Total()*100) / 100
}

func (v *Checkout) Processing() bool { return v.processing }

// PlaceOrder submits the order built from the current cart lines. A blank
// address is rejected before any request. On success the configured
// settlement delay elapses before returning, after which the caller
// navigates to the orders page; on failure the view is ready to submit
// again.
func (v *Checkout) PlaceOrder(ctx context.Context, address string) (*domain.Order, error) {
	if strings.TrimSpace(address) == "" {
		return nil, ErrBlankAddress
	}
	if v.cart.IsEmpty() {
		return nil, ErrEmptyCart
	}
	if v.processing {
		return nil, ErrInProgress
	}
	v.processing = true

	items := make([]domain.OrderItem, 0, len(v.cart.Items))
	for _, line := range v.cart.Items {
		items = append(items, domain.OrderItem{
			ProductID:   line.ProductID,
			ProductName: placeholderName(line.ProductID),
			Quantity:    line.Quantity,
			Size:        line.Size,
			Color:       line.Color,
			Price:       line.Price,
		})
	}
	draft := domain.OrderDraft{
		Items:           items,
		ShippingAddress: address,
		TotalAmount:     v.Total(),
	}

	token := v.sess.Token()
	order, err := v.client.CreateOrder(ctx, token, draft)
	if err != nil {
		v.processing = false
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	v.sess.RefreshCartCount(ctx)

	// Simulated payment processing before navigation.
	if v.settleDelay > 0 {
		select {
		case <-time.After(v.settleDelay):
		case <-ctx.Done():
		}
	}
	v.processing = false
	return order, nil
}

// placeholderName derives the display name an order line carries; the client
// does not know the product name at checkout, only the id prefix.
func placeholderName(productID string) string {
	if len(productID) > 8 {
		productID = productID[:8]
	}
	return "Product " + productID
}
