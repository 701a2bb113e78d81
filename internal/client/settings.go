package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pageza/mealmate/backend/internal/model"
	"github.com/pageza/mealmate/backend/internal/types"
)

// SettingsOfUser fetches the settings record of userID. ErrNotFound means none exists yet.
func (c *Client) SettingsOfUser(ctx context.Context, userID string) (*model.UserSettings, error) {
	var settings model.UserSettings
	if err := c.do(ctx, http.MethodGet, c.path("settings", "ofUser", userID), nil, &settings); err != nil {
		return nil, fmt.Errorf("fetch settings of %s: %w", userID, err)
	}
	return &settings, nil
}

// AddSettings creates the default settings record. Creating it twice is harmless.
func (c *Client) AddSettings(ctx context.Context, userID string) (*model.UserSettings, error) {
	var settings model.UserSettings
	body := types.AddSettingsRequest{UserID: userID}
	if err := c.do(ctx, http.MethodPost, c.path("settings", "add"), body, &settings); err != nil {
		return nil, fmt.Errorf("add settings for %s: %w", userID, err)
	}
	return &settings, nil
}

// UpdateSingleUserSetting replaces one field of the settings record and returns the full record
func (c *Client) UpdateSingleUserSetting(ctx context.Context, userID, key string, value interface{}) (*model.UserSettings, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encode setting %s: %w", key, err)
	}

	var resp types.SettingSavedResponse
	endpoint := c.path("settings", "updateSingleUserSetting", userID)
	body := types.UpdateSettingRequest{Key: key, Value: raw}
	if err := c.do(ctx, http.MethodPut, endpoint, body, &resp); err != nil {
		return nil, fmt.Errorf("update setting %s: %w", key, err)
	}
	if resp.SettingSaved == nil {
		return nil, fmt.Errorf("update setting %s: empty response", key)
	}
	return resp.SettingSaved, nil
}
