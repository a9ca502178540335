package mockapi

import "github.com/padhusmiler/mstex/internal/domain"

// Seed loads the development data set: one admin account, one customer and a
// small product catalog, in the spirit of the original seed scripts.
func Seed(store *Store) {
	_, _ = store.CreateUser(domain.Profile{
		Email: "admin@mstex.com",
		Name:  "MS TEX Admin",
	}, hashPassword("admin123"), domain.RoleAdmin)

	_, _ = store.CreateUser(domain.Profile{
		Email:   "customer@example.com",
		Name:    "Test Customer",
		Address: "12 Knitwear Lane, Tiruppur, Tamil Nadu",
	}, hashPassword("password123"), domain.RoleUser)

	seedProducts := []domain.ProductDraft{
		{
			Name:        "Classic Crew Neck Tee",
			Description: "Everyday combed-cotton t-shirt with a regular fit",
			Category:    domain.CategoryMen,
			Price:       18.50,
			Sizes:       []string{"S", "M", "L", "XL"},
			Colors:      []string{"Black", "White", "Navy"},
			Stock:       100,
			Images:      []domain.ImageMetadata{domain.NewImagePlaceholder("https://images.unsplash.com/photo-1574180566232-aaad1b5b8450")},
		},
		{
			Name:        "Premium V-Neck Tee",
			Description: "Soft-washed premium knit with a tailored cut",
			Category:    domain.CategoryMen,
			Price:       26.00,
			Sizes:       []string{"M", "L", "XL", "XXL"},
			Colors:      []string{"Gray", "Blue"},
			Stock:       80,
			Images:      []domain.ImageMetadata{domain.NewImagePlaceholder("https://images.unsplash.com/photo-1516442719524-a603408c90cb")},
		},
		{
			Name:        "Relaxed Fit Top",
			Description: "Lightweight women's top in breathable knit fabric",
			Category:    domain.CategoryWomen,
			Price:       32.00,
			Sizes:       []string{"XS", "S", "M"},
			Colors:      []string{"Pink", "White"},
			Stock:       60,
			Images:      []domain.ImageMetadata{domain.NewImagePlaceholder("https://images.unsplash.com/photo-1564430362299-113976f94001")},
		},
		{
			Name:        "Signature Longline Tee",
			Description: "Limited run longline cut from the signature collection",
			Category:    domain.CategoryWomen,
			Price:       54.00,
			Sizes:       []string{"S", "M", "L"},
			Colors:      []string{"Red", "Black"},
			Stock:       40,
			Images:      []domain.ImageMetadata{domain.NewImagePlaceholder("https://images.unsplash.com/photo-1533793735164-12065733b215")},
		},
	}
	for _, draft := range seedProducts {
		store.CreateProduct(draft)
	}
}
