package domain

import (
	"strings"
	"time"
)

// Category values as the backend reports them.
const (
	CategoryMen   = "men"
	CategoryWomen = "women"
)

// ImageMetadata describes one product image. The backend stores whatever the
// admin client sends; width/height/size are client-synthesized placeholders,
// not measured values (see NewImagePlaceholder).
type ImageMetadata struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Size     int    `json:"size"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// Placeholder dimensions submitted with every image record.
const (
	placeholderImageSize   = 150000
	placeholderImageWidth  = 800
	placeholderImageHeight = 1000
)

// NewImagePlaceholder builds the image record the admin form submits for a
// chosen URL: filename is the URL tail, the rest are fixed placeholders.
func NewImagePlaceholder(url string) ImageMetadata {
	filename := url
	if i := strings.LastIndexByte(url, '/'); i >= 0 {
		filename = url[i+1:]
	}
	return ImageMetadata{
		URL:      url,
		Filename: filename,
		Size:     placeholderImageSize,
		Width:    placeholderImageWidth,
		Height:   placeholderImageHeight,
	}
}

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       float64         `json:"price"`
	Sizes       []string        `json:"sizes"`
	Colors      []string        `json:"colors"`
	Stock       int             `json:"stock"`
	Images      []ImageMetadata `json:"images"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ProductDraft is the payload for admin create/update requests. The server
// assigns id and created_at.
type ProductDraft struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       float64         `json:"price"`
	Sizes       []string        `json:"sizes"`
	Colors      []string        `json:"colors"`
	Stock       int             `json:"stock"`
	Images      []ImageMetadata `json:"images"`
}
