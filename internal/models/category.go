package models

import "time"

// Category groups assets (e.g. Computer, Furniture). Deleting a category does
// not delete its assets; their category_id is nulled.
type Category struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// AssetCount is computed on list via LEFT JOIN.
	AssetCount int `json:"asset_count"`
}

// CategoryInput is the create/update payload.
type CategoryInput struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description"`
}
