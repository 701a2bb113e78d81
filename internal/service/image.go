package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/pageza/mealmate/backend/internal/types"
	"go.uber.org/zap"
)

var categoryPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ObjectStore is the part of an object storage the image service needs
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	List(ctx context.Context, prefix string) ([]string, error)
	Delete(ctx context.Context, keys []string) error
	URL(key string) string
}

// ImageService stores user images under {category}/{ownerId}/{imageId}{ext}
type ImageService struct {
	store ObjectStore
	log   *zap.Logger
}

var _ IImageService = (*ImageService)(nil)

// NewImageService creates a new ImageService instance
func NewImageService(store ObjectStore, log *zap.Logger) *ImageService {
	return &ImageService{store: store, log: log}
}

// Upload stores an image and returns the name meals reference it by
func (s *ImageService) Upload(ctx context.Context, category, ownerID, filename, contentType string, body io.Reader, size int64) (*types.ImageUploadResponse, error) {
	if err := checkSegments(category, ownerID); err != nil {
		return nil, err
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("%w: %q is not an image", ErrValidation, contentType)
	}

	name := uuid.New().String() + strings.ToLower(path.Ext(filename))
	key := objectKey(category, ownerID, name)
	if err := s.store.Put(ctx, key, contentType, body, size); err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	s.log.Info("image uploaded", zap.String("key", key), zap.Int64("size", size))
	return &types.ImageUploadResponse{Name: name, URL: s.store.URL(key)}, nil
}

// Delete removes the image with the given id (with or without extension)
// owned by ownerID and reports how many objects were removed
func (s *ImageService) Delete(ctx context.Context, category, ownerID, id string) (int, error) {
	if err := checkSegments(category, ownerID, id); err != nil {
		return 0, err
	}
	prefix := objectKey(category, ownerID, id)
	return s.deletePrefix(ctx, prefix, func(key string) bool {
		rest := strings.TrimPrefix(key, prefix)
		return rest == "" || strings.HasPrefix(rest, ".")
	})
}

// DeleteAll removes every image of ownerID in category
func (s *ImageService) DeleteAll(ctx context.Context, callerID, category, ownerID string) (int, error) {
	if ownerID != callerID {
		return 0, ErrForbidden
	}
	if err := checkSegments(category, ownerID); err != nil {
		return 0, err
	}
	return s.deletePrefix(ctx, objectKey(category, ownerID, ""), nil)
}

// deletePrefix removes the objects under prefix accepted by match, nil matches all
func (s *ImageService) deletePrefix(ctx context.Context, prefix string, match func(string) bool) (int, error) {
	listed, err := s.store.List(ctx, prefix)
	if err != nil {
		return 0, fmt.Errorf("failed to list images: %w", err)
	}
	keys := listed
	if match != nil {
		keys = keys[:0:0]
		for _, key := range listed {
			if match(key) {
				keys = append(keys, key)
			}
		}
	}
	if len(keys) == 0 {
		return 0, nil
	}
	if err := s.store.Delete(ctx, keys); err != nil {
		return 0, fmt.Errorf("failed to delete images: %w", err)
	}
	s.log.Info("images deleted", zap.String("prefix", prefix), zap.Int("count", len(keys)))
	return len(keys), nil
}

func objectKey(category, ownerID, name string) string {
	return category + "/" + ownerID + "/" + name
}

func checkSegments(category string, rest ...string) error {
	if !categoryPattern.MatchString(category) {
		return fmt.Errorf("%w: invalid image category %q", ErrValidation, category)
	}
	for _, seg := range rest {
		if seg == "" || strings.ContainsAny(seg, "/\\") || seg == "." || seg == ".." {
			return fmt.Errorf("%w: invalid path segment %q", ErrValidation, seg)
		}
	}
	return nil
}
