package view_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padhusmiler/mstex/internal/session"
	"github.com/padhusmiler/mstex/internal/view"
)

func TestProductDetail_LoadDefaultsSelection(t *testing.T) {
	e := newEnv(t)
	p := e.firstProduct(t)

	detail := view.NewProductDetail(e.client, e.sess, e.log)
	require.NoError(t, detail.Load(context.Background(), p.ID))

	assert.Equal(t, p.Sizes[0], detail.SelectedSize())
	assert.Equal(t, p.Colors[0], detail.SelectedColor())
	assert.Equal(t, 1, detail.Quantity())
	assert.Equal(t, p.Images[0].URL, detail.SelectedImageURL())
}

func TestProductDetail_LoadUnknownProduct(t *testing.T) {
	e := newEnv(t)
	detail := view.NewProductDetail(e.client, e.sess, e.log)
	assert.Error(t, detail.Load(context.Background(), "nope"))
	assert.Nil(t, detail.Product())
}

func TestProductDetail_VariantSelection(t *testing.T) {
	e := newEnv(t)
	p := e.firstProduct(t)

	detail := view.NewProductDetail(e.client, e.sess, e.log)
	require.NoError(t, detail.Load(context.Background(), p.ID))

	require.NoError(t, detail.SelectSize(p.Sizes[len(p.Sizes)-1]))
	assert.ErrorIs(t, detail.SelectSize("XXXS"), view.ErrUnknownVariant)

	require.NoError(t, detail.SelectColor(p.Colors[0]))
	assert.ErrorIs(t, detail.SelectColor("Chartreuse"), view.ErrUnknownVariant)

	detail.SetQuantity(3)
	assert.Equal(t, 3, detail.Quantity())
	detail.SetQuantity(0) // ignored, stays at 3
	assert.Equal(t, 3, detail.Quantity())
}

func TestProductDetail_AddToCartRequiresLogin(t *testing.T) {
	e := newEnv(t)
	p := e.firstProduct(t)

	detail := view.NewProductDetail(e.client, e.sess, e.log)
	require.NoError(t, detail.Load(context.Background(), p.ID))
	assert.ErrorIs(t, detail.AddToCart(context.Background()), session.ErrNotLoggedIn)
}

func TestProductDetail_AddToCartRefreshesCount(t *testing.T) {
	e := newEnv(t)
	e.loginCustomer(t)
	ctx := context.Background()
	p := e.firstProduct(t)

	detail := view.NewProductDetail(e.client, e.sess, e.log)
	require.NoError(t, detail.Load(ctx, p.ID))
	detail.SetQuantity(2)
	require.NoError(t, detail.AddToCart(ctx))

	assert.Equal(t, 1, e.sess.CartCount())

	cart := view.NewCart(e.client, e.sess, e.log)
	require.NoError(t, cart.Load(ctx))
	require.Len(t, cart.Items(), 1)
	line := cart.Items()[0]
	assert.Equal(t, p.ID, line.ProductID)
	assert.Equal(t, 2, line.Quantity)
	assert.Equal(t, p.Price, line.Price) // unit price snapshot
}
