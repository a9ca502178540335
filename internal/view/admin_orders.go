package view

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/padhusmiler/mstex/internal/api"
	"github.com/padhusmiler/mstex/internal/domain"
	"github.com/padhusmiler/mstex/internal/session"
)

var ErrOrderNotFound = errors.New("order not in loaded collection")

// AdminOrders is the back-office order list: the full collection, an
// optional client-side status filter and the two status mutations. Each
// mutation is a direct PUT followed by a full re-fetch; nothing is patched
// locally.
type AdminOrders struct {
	client *api.Client
	sess   *session.Session
	log    *zap.Logger

	orders []domain.Order
	filter string // "all" or one OrderStatus
}

func NewAdminOrders(client *api.Client, sess *session.Session, log *zap.Logger) *AdminOrders {
	return &AdminOrders{client: client, sess: sess, log: log, filter: FilterAll}
}

func (v *AdminOrders) Load(ctx context.Context) error {
	token := v.sess.Token()
	if token == "" {
		return session.ErrNotLoggedIn
	}
	orders, err := v.client.AdminOrders(ctx, token)
	if err != nil {
		v.log.Error("failed to load admin orders", zap.Error(err))
		v.orders = nil
		return err
	}
	v.orders = orders
	return nil
}

func (v *AdminOrders) Orders() []domain.Order { return v.orders }

func (v *AdminOrders) SetStatusFilter(status string) { v.filter = status }

// Filtered applies the status filter to the loaded collection.
func (v *AdminOrders) Filtered() []domain.Order {
	if v.filter == FilterAll {
		return v.orders
	}
	out := make([]domain.Order, 0, len(v.orders))
	for _, o := range v.orders {
		if string(o.Status) == v.filter {
			out = append(out, o)
		}
	}
	return out
}

// SetStatus moves an order to a new fulfillment status and re-fetches the
// collection.
func (v *AdminOrders) SetStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	token := v.sess.Token()
	if err := v.client.UpdateOrderStatus(ctx, token, orderID, status, ""); err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	return v.Load(ctx)
}

// SetPaymentStatus updates the payment status. The backend endpoint always
// takes a fulfillment status, so the order's current one is sent alongside.
func (v *AdminOrders) SetPaymentStatus(ctx context.Context, orderID string, payment domain.PaymentStatus) error {
	current, ok := v.find(orderID)
	if !ok {
		return ErrOrderNotFound
	}
	token := v.sess.Token()
	if err := v.client.UpdateOrderStatus(ctx, token, orderID, current.Status, payment); err != nil {
		return fmt.Errorf("failed to update payment status: %w", err)
	}
	return v.Load(ctx)
}

func (v *AdminOrders) find(orderID string) (domain.Order, bool) {
	for _, o := range v.orders {
		if o.ID == orderID {
			return o, true
		}
	}
	return domain.Order{}, false
}
