package view

import (
	"context"

	"go.uber.org/zap"

	"github.com/padhusmiler/mstex/internal/api"
	"github.com/padhusmiler/mstex/internal/domain"
	"github.com/padhusmiler/mstex/internal/session"
)

// Orders is the customer order-history page.
type Orders struct {
	client *api.Client
	sess   *session.Session
	log    *zap.Logger

	orders []domain.Order
}

func NewOrders(client *api.Client, sess *session.Session, log *zap.Logger) *Orders {
	return &Orders{client: client, sess: sess, log: log}
}

func (v *Orders) Load(ctx context.Context) error {
	token := v.sess.Token()
	if token == "" {
		return session.ErrNotLoggedIn
	}
	orders, err := v.client.Orders(ctx, token)
	if err != nil {
		v.log.Error("failed to load orders", zap.Error(err))
		v.orders = nil
		return err
	}
	v.orders = orders
	return nil
}

func (v *Orders) Orders() []domain.Order { return v.orders }
