package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/mealmate/backend/internal/types"
)

// MockImageService is a mock implementation of the ImageService interface
type MockImageService struct {
	mock.Mock
}

func (m *MockImageService) Upload(ctx context.Context, category, ownerID, filename, contentType string, body io.Reader, size int64) (*types.ImageUploadResponse, error) {
	args := m.Called(ctx, category, ownerID, filename, contentType, body, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ImageUploadResponse), args.Error(1)
}

func (m *MockImageService) Delete(ctx context.Context, category, ownerID, id string) (int, error) {
	args := m.Called(ctx, category, ownerID, id)
	return args.Int(0), args.Error(1)
}

func (m *MockImageService) DeleteAll(ctx context.Context, callerID, category, ownerID string) (int, error) {
	args := m.Called(ctx, callerID, category, ownerID)
	return args.Int(0), args.Error(1)
}
