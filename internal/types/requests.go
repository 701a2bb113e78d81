package types

import (
	"encoding/json"

	"github.com/pageza/mealmate/backend/internal/model"
)

// UpdateSettingRequest is the body of a single-setting update
type UpdateSettingRequest struct {
	Key   string          `json:"key" binding:"required"`
	Value json.RawMessage `json:"value"`
}

// SettingSavedResponse wraps the full record returned after an update
type SettingSavedResponse struct {
	SettingSaved *model.UserSettings `json:"settingSaved"`
}

// AddSettingsRequest creates the default settings record for a user
type AddSettingsRequest struct {
	UserID string `json:"userId" binding:"required"`
}

// UpdateMetadataRequest replaces a user's metadata blob
type UpdateMetadataRequest struct {
	Metadata model.JSONMap `json:"metadata"`
}

// ImageUploadResponse describes a stored image
type ImageUploadResponse struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// DeleteImagesResponse reports how many objects were removed
type DeleteImagesResponse struct {
	Deleted int `json:"deleted"`
}

// ErrorResponse is the body of every non-2xx answer
type ErrorResponse struct {
	Error string `json:"error"`
}
