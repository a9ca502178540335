package view

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"go.uber.org/zap"

	"github.com/padhusmiler/mstex/internal/api"
	"github.com/padhusmiler/mstex/internal/domain"
	"github.com/padhusmiler/mstex/internal/session"
)

var (
	ErrNoSizes      = errors.New("select at least one size")
	ErrNoColors     = errors.New("select at least one color")
	ErrBadPrice     = errors.New("price must be a number")
	ErrNotAdmin     = errors.New("admin access required")
	ErrNotConfirmed = errors.New("delete not confirmed")
)

// SizeOptions and ColorOptions are the fixed choices the product form
// offers.
var (
	SizeOptions  = []string{"XS", "S", "M", "L", "XL", "XXL"}
	ColorOptions = []string{"Black", "White", "Red", "Blue", "Green", "Yellow", "Pink", "Gray", "Navy", "Orange"}
)

// CuratedImages is the fixed set of product photo URLs the form lets the
// admin pick from, as an alternative to uploading files.
var CuratedImages = []string{
	"https://images.unsplash.com/photo-1574180566232-aaad1b5b8450",
	"https://images.unsplash.com/photo-1516442719524-a603408c90cb",
	"https://images.unsplash.com/photo-1516082669438-2d2bb5082626",
	"https://images.unsplash.com/photo-1516177609387-9bad55a45194",
	"https://images.unsplash.com/photo-1509003124559-eb6678fe452b",
	"https://images.unsplash.com/photo-1589408871633-685343fb36b2",
	"https://images.unsplash.com/photo-1564430362299-113976f94001",
	"https://images.unsplash.com/photo-1533793735164-12065733b215",
	"https://images.pexels.com/photos/34253791/pexels-photo-34253791.jpeg",
	"https://images.pexels.com/photos/34277461/pexels-photo-34277461.jpeg",
	"https://images.pexels.com/photos/34277458/pexels-photo-34277458.jpeg",
	"https://images.pexels.com/photos/34286724/pexels-photo-34286724.jpeg",
}

// ProductForm is the create/edit draft. Price and stock stay strings until
// submission, as form fields do.
type ProductForm struct {
	Name        string
	Description string
	Category    string
	Price       string
	Sizes       []string
	Colors      []string
	Stock       string
	ImageURLs   []string
}

func newProductForm() ProductForm {
	return ProductForm{Category: domain.CategoryMen, Stock: "100"}
}

// AdminProducts is the back-office product CRUD page.
type AdminProducts struct {
	client *api.Client
	sess   *session.Session
	log    *zap.Logger

	products []domain.Product
	form     ProductForm
	editing  string // product id being edited, empty for create
}

func NewAdminProducts(client *api.Client, sess *session.Session, log *zap.Logger) *AdminProducts {
	return &AdminProducts{client: client, sess: sess, log: log, form: newProductForm()}
}

func (v *AdminProducts) Load(ctx context.Context) error {
	products, err := v.client.Products(ctx)
	if err != nil {
		v.log.Error("failed to load products", zap.Error(err))
		v.products = nil
		return err
	}
	v.products = products
	return nil
}

func (v *AdminProducts) Products() []domain.Product { return v.products }

func (v *AdminProducts) Form() *ProductForm { return &v.form }

func (v *AdminProducts) Editing() string { return v.editing }

// Edit fills the form from an existing product.
func (v *AdminProducts) Edit(p domain.Product) {
	urls := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		urls = append(urls, img.URL)
	}
	v.form = ProductForm{
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       strconv.FormatFloat(p.Price, 'f', -1, 64),
		Sizes:       append([]string(nil), p.Sizes...),
		Colors:      append([]string(nil), p.Colors...),
		Stock:       strconv.Itoa(p.Stock),
		ImageURLs:   urls,
	}
	v.editing = p.ID
}

// Reset returns the form to the create-product defaults.
func (v *AdminProducts) Reset() {
	v.form = newProductForm()
	v.editing = ""
}

func (v *AdminProducts) ToggleSize(size string)   { v.form.Sizes = toggle(v.form.Sizes, size) }
func (v *AdminProducts) ToggleColor(color string) { v.form.Colors = toggle(v.form.Colors, color) }

// ToggleImageURL adds or removes one curated URL from the draft.
func (v *AdminProducts) ToggleImageURL(url string) {
	v.form.ImageURLs = toggle(v.form.ImageURLs, url)
}

func toggle(list []string, v string) []string {
	for i, s := range list {
		if s == v {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return append(list, v)
}

// UploadImage sends one local file to the upload endpoint and appends the
// returned URL to the draft. Files go up one at a time.
func (v *AdminProducts) UploadImage(ctx context.Context, filename string, file io.Reader) (string, error) {
	if !v.sess.IsAdmin() {
		return "", ErrNotAdmin
	}
	url, err := v.client.UploadImage(ctx, v.sess.Token(), filename, file)
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	v.form.ImageURLs = append(v.form.ImageURLs, url)
	return url, nil
}

// Save validates the draft and creates or updates the product, then
// re-fetches the list and resets the form. At least one size and one color
// must be selected before anything is sent.
func (v *AdminProducts) Save(ctx context.Context) error {
	if len(v.form.Sizes) == 0 {
		return ErrNoSizes
	}
	if len(v.form.Colors) == 0 {
		return ErrNoColors
	}
	price, err := strconv.ParseFloat(v.form.Price, 64)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrBadPrice, v.form.Price)
	}
	stock, err := strconv.Atoi(v.form.Stock)
	if err != nil {
		stock = 100
	}

	images := make([]domain.ImageMetadata, 0, len(v.form.ImageURLs))
	for _, url := range v.form.ImageURLs {
		images = append(images, domain.NewImagePlaceholder(url))
	}

	draft := domain.ProductDraft{
		Name:        v.form.Name,
		Description: v.form.Description,
		Category:    v.form.Category,
		Price:       price,
		Sizes:       v.form.Sizes,
		Colors:      v.form.Colors,
		Stock:       stock,
		Images:      images,
	}

	token := v.sess.Token()
	if v.editing != "" {
		_, err = v.client.UpdateProduct(ctx, token, v.editing, draft)
	} else {
		_, err = v.client.CreateProduct(ctx, token, draft)
	}
	if err != nil {
		return fmt.Errorf("failed to save product: %w", err)
	}

	if err := v.Load(ctx); err != nil {
		return err
	}
	v.Reset()
	return nil
}

// Delete removes a product after the confirm callback approves, then
// re-fetches the list.
func (v *AdminProducts) Delete(ctx context.Context, productID string, confirm func() bool) error {
	if confirm != nil && !confirm() {
		return ErrNotConfirmed
	}
	token := v.sess.Token()
	if err := v.client.DeleteProduct(ctx, token, productID); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return v.Load(ctx)
}
