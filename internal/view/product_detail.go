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

var (
	ErrNoProduct      = errors.New("no product loaded")
	ErrUnknownVariant = errors.New("variant not offered by this product")
)

// ProductDetail is the single-product view: it tracks the chosen variant and
// quantity and posts the add-to-cart mutation.
type ProductDetail struct {
	client *api.Client
	sess   *session.Session
	log    *zap.Logger

	product       *domain.Product
	selectedSize  string
	selectedColor string
	selectedImage int
	quantity      int
}

func NewProductDetail(client *api.Client, sess *session.Session, log *zap.Logger) *ProductDetail {
	return &ProductDetail{client: client, sess: sess, log: log, quantity: 1}
}

// Load fetches one product and defaults the selection to its first size and
// color.
func (v *ProductDetail) Load(ctx context.Context, id string) error {
	product, err := v.client.Product(ctx, id)
	if err != nil {
		v.log.Error("failed to load product", zap.String("product_id", id), zap.Error(err))
		v.product = nil
		return err
	}
	v.product = product
	v.selectedImage = 0
	v.quantity = 1
	v.selectedSize = ""
	v.selectedColor = ""
	if len(product.Sizes) > 0 {
		v.selectedSize = product.Sizes[0]
	}
	if len(product.Colors) > 0 {
		v.selectedColor = product.Colors[0]
	}
	return nil
}

func (v *ProductDetail) Product() *domain.Product { return v.product }

func (v *ProductDetail) SelectedSize() string  { return v.selectedSize }
func (v *ProductDetail) SelectedColor() string { return v.selectedColor }
func (v *ProductDetail) Quantity() int         { return v.quantity }

func (v *ProductDetail) SelectSize(size string) error {
	if v.product == nil {
		return ErrNoProduct
	}
	if !contains(v.product.Sizes, size) {
		return fmt.Errorf("%w: size %q", ErrUnknownVariant, size)
	}
	v.selectedSize = size
	return nil
}

func (v *ProductDetail) SelectColor(color string) error {
	if v.product == nil {
		return ErrNoProduct
	}
	if !contains(v.product.Colors, color) {
		return fmt.Errorf("%w: color %q", ErrUnknownVariant, color)
	}
	v.selectedColor = color
	return nil
}

// SelectImage switches the gallery index; out-of-range values are ignored.
func (v *ProductDetail) SelectImage(idx int) {
	if v.product == nil || idx < 0 || idx >= len(v.product.Images) {
		return
	}
	v.selectedImage = idx
}

// SelectedImageURL returns the current gallery image, or empty when the
// product has none.
func (v *ProductDetail) SelectedImageURL() string {
	if v.product == nil || len(v.product.Images) == 0 {
		return ""
	}
	return v.product.Images[v.selectedImage].URL
}

// SetQuantity keeps the quantity at 1 or more.
func (v *ProductDetail) SetQuantity(q int) {
	if q < 1 {
		return
	}
	v.quantity = q
}

// AddToCart posts the selected line and refreshes the session cart count.
// An unauthenticated session is rejected before any request goes out.
func (v *ProductDetail) AddToCart(ctx context.Context) error {
	if v.product == nil {
		return ErrNoProduct
	}
	token := v.sess.Token()
	if token == "" {
		return session.ErrNotLoggedIn
	}

	item := domain.CartItem{
		ProductID: v.product.ID,
		Quantity:  v.quantity,
		Size:      v.selectedSize,
		Color:     v.selectedColor,
		Price:     v.product.Price,
	}
	if err := v.client.AddToCart(ctx, token, item); err != nil {
		return fmt.Errorf("failed to add to cart: %w", err)
	}
	v.sess.RefreshCartCount(ctx)
	return nil
}
