package view_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padhusmiler/mstex/internal/domain"
	"github.com/padhusmiler/mstex/internal/view"
)

func TestCheckout_EmptyCartBlocksLoad(t *testing.T) {
	e := newEnv(t)
	e.loginCustomer(t)

	co := view.NewCheckout(e.client, e.sess, 0, e.log)
	assert.ErrorIs(t, co.Load(context.Background()), view.ErrEmptyCart)
}

func TestCheckout_BlankAddressRejected(t *testing.T) {
	e := newEnv(t)
	e.loginCustomer(t)
	ctx := context.Background()

	addLine(e, t, "prod-1", 1, 20)

	co := view.NewCheckout(e.client, e.sess, 0, e.log)
	require.NoError(t, co.Load(ctx))

	for _, addr := range []string{"", "   ", "\t\n"} {
		_, err := co.PlaceOrder(ctx, addr)
		assert.ErrorIs(t, err, view.ErrBlankAddress)
	}
	assert.False(t, co.Processing())
}

func TestCheckout_PlaceOrder(t *testing.T) {
	e := newEnv(t)
	e.loginCustomer(t)
	ctx := context.Background()

	addLine(e, t, "abcdefgh-1234", 2, 12.25)

	co := view.NewCheckout(e.client, e.sess, 0, e.log)
	require.NoError(t, co.Load(ctx))
	assert.Equal(t, 24.5, co.Total())

	order, err := co.PlaceOrder(ctx, "12 Knitwear Lane, Tiruppur")
	require.NoError(t, err)

	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, domain.PaymentStatusPending, order.PaymentStatus)
	assert.Equal(t, 24.5, order.TotalAmount)
	assert.Equal(t, "12 Knitwear Lane, Tiruppur", order.ShippingAddress)

	// item snapshots are denormalized with the id-prefix placeholder name
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Product abcdefgh", order.Items[0].ProductName)
	assert.Equal(t, "abcdefgh-1234", order.Items[0].ProductID)
	assert.Equal(t, 2, order.Items[0].Quantity)

	// checkout clears the server-held cart and the badge count
	cart := view.NewCart(e.client, e.sess, e.log)
	require.NoError(t, cart.Load(ctx))
	assert.True(t, cart.IsEmpty())
	assert.Equal(t, 0, e.sess.CartCount())
}

func TestCheckout_DefaultAddressComesFromProfile(t *testing.T) {
	e := newEnv(t)
	e.loginCustomer(t)
	// the seeded customer has an address on file
	co := view.NewCheckout(e.client, e.sess, 0, e.log)
	assert.NotEmpty(t, co.DefaultAddress())
}

func TestCheckout_ShortProductIDPlaceholder(t *testing.T) {
	e := newEnv(t)
	e.loginCustomer(t)
	ctx := context.Background()

	addLine(e, t, "p1", 1, 5)

	co := view.NewCheckout(e.client, e.sess, 0, e.log)
	require.NoError(t, co.Load(ctx))
	order, err := co.PlaceOrder(ctx, "somewhere")
	require.NoError(t, err)
	assert.Equal(t, "Product p1", order.Items[0].ProductName)
}
