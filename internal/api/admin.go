package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/google/uuid"

	"github.com/padhusmiler/mstex/internal/domain"
)

func (c *Client) CreateProduct(ctx context.Context, token string, draft domain.ProductDraft) (*domain.Product, error) {
	var out domain.Product
	if err := c.do(ctx, http.MethodPost, "/admin/products", token, nil, draft, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProduct(ctx context.Context, token, id string, draft domain.ProductDraft) (*domain.Product, error) {
	var out domain.Product
	if err := c.do(ctx, http.MethodPut, "/admin/products/"+id, token, nil, draft, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProduct(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/admin/products/"+id, token, nil, nil, nil)
}

// UploadImage sends one file as multipart form data to the admin upload
// endpoint and returns the URL the backend stored it under.
func (c *Client) UploadImage(ctx context.Context, token, filename string, file io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("failed to read upload file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("failed to finish multipart body: %w", err)
	}

	u := c.baseURL + "/admin/upload-image?token=" + token
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, &buf)
	if err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", c.statusError(http.MethodPost, "/admin/upload-image", resp)
	}

	var out struct {
		URL string `json:"url"`
	}
	if err := decodeJSON(resp.Body, &out); err != nil {
		return "", fmt.Errorf("failed to decode upload response: %w", err)
	}
	return out.URL, nil
}
