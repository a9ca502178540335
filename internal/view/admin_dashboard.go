package view

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/padhusmiler/mstex/internal/api"
	"github.com/padhusmiler/mstex/internal/domain"
	"github.com/padhusmiler/mstex/internal/session"
)

// DashboardStats are the headline numbers the admin landing page shows,
// derived from the product and order collections.
type DashboardStats struct {
	TotalProducts int
	TotalOrders   int
	TotalRevenue  float64
	PendingOrders int
}

// AdminDashboard is the back-office landing page: both collections are
// fetched on load and the stats recomputed from them.
type AdminDashboard struct {
	client *api.Client
	sess   *session.Session
	log    *zap.Logger

	stats DashboardStats
}

func NewAdminDashboard(client *api.Client, sess *session.Session, log *zap.Logger) *AdminDashboard {
	return &AdminDashboard{client: client, sess: sess, log: log}
}

// Load fetches products and all orders in parallel and derives the stats.
// On failure the previous stats are kept.
func (v *AdminDashboard) Load(ctx context.Context) error {
	token := v.sess.Token()
	if token == "" {
		return session.ErrNotLoggedIn
	}

	var (
		products []domain.Product
		orders   []domain.Order
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = v.client.Products(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		orders, err = v.client.AdminOrders(ctx, token)
		return err
	})
	if err := g.Wait(); err != nil {
		v.log.Error("failed to load dashboard stats", zap.Error(err))
		return err
	}

	stats := DashboardStats{
		TotalProducts: len(products),
		TotalOrders:   len(orders),
	}
	for _, o := range orders {
		stats.TotalRevenue += o.TotalAmount
		if o.Status == domain.OrderStatusPending {
			stats.PendingOrders++
		}
	}
	v.stats = stats
	return nil
}

func (v *AdminDashboard) Stats() DashboardStats { return v.stats }
