package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"github.com/pageza/mealmate/backend/internal/types"
)

// AddImage uploads one image into category as a multipart "file" field
func (c *Client) AddImage(ctx context.Context, category, filename, contentType string, r io.Reader) (*types.ImageUploadResponse, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.path("images", "addImage", category), &buf)
	if err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var resp types.ImageUploadResponse
	if err := c.send(req, &resp); err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}
	return &resp, nil
}

// DeleteImage removes the caller's image id from category and reports how many objects went away
func (c *Client) DeleteImage(ctx context.Context, category, id string) (int, error) {
	var resp types.DeleteImagesResponse
	if err := c.do(ctx, http.MethodPost, c.path("images", "deleteImage", category, id), nil, &resp); err != nil {
		return 0, fmt.Errorf("delete image %s/%s: %w", category, id, err)
	}
	return resp.Deleted, nil
}

func (c *Client) DeleteAllImagesFromCategory(ctx context.Context, category, ownerID string) (int, error) {
	var resp types.DeleteImagesResponse
	endpoint := c.path("images", "deleteAllImagesFromCategory", category, ownerID)
	if err := c.do(ctx, http.MethodPost, endpoint, nil, &resp); err != nil {
		return 0, fmt.Errorf("delete images in %s: %w", category, err)
	}
	return resp.Deleted, nil
}
