package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pageza/mealmate/backend/internal/model"
	"github.com/pageza/mealmate/backend/internal/types"
)

func (c *Client) AllUsers(ctx context.Context) ([]model.UserSummary, error) {
	var users []model.UserSummary
	if err := c.do(ctx, http.MethodGet, c.path("users", "all"), nil, &users); err != nil {
		return nil, fmt.Errorf("fetch users: %w", err)
	}
	return users, nil
}

// UsersFromQuery searches users by nickname
func (c *Client) UsersFromQuery(ctx context.Context, q string) ([]model.UserSummary, error) {
	var users []model.UserSummary
	if err := c.do(ctx, http.MethodGet, c.path("users", "fromQuery", q), nil, &users); err != nil {
		return nil, fmt.Errorf("search users %q: %w", q, err)
	}
	return users, nil
}

func (c *Client) UserByID(ctx context.Context, id string) (*model.UserSummary, error) {
	var user model.UserSummary
	if err := c.do(ctx, http.MethodGet, c.path("users", "byId", id), nil, &user); err != nil {
		return nil, fmt.Errorf("fetch user %s: %w", id, err)
	}
	return &user, nil
}

// UpdateUserMetadata replaces the metadata blob of userID
func (c *Client) UpdateUserMetadata(ctx context.Context, userID string, metadata model.JSONMap) (*model.UserSummary, error) {
	var user model.UserSummary
	body := types.UpdateMetadataRequest{Metadata: metadata}
	if err := c.do(ctx, http.MethodPut, c.path("users", "updateMetadata", userID), body, &user); err != nil {
		return nil, fmt.Errorf("update metadata of %s: %w", userID, err)
	}
	return &user, nil
}
