package models

import "time"

// Location is a physical site holding assets. Deleting a location nulls the
// location_id of its assets.
type Location struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Address   *string   `json:"address"`
	City      *string   `json:"city"`
	Country   *string   `json:"country"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	AssetCount int `json:"asset_count"`
}

// LocationInput is the create/update payload.
type LocationInput struct {
	Name    string  `json:"name" validate:"required,max=100"`
	Address *string `json:"address"`
	City    *string `json:"city" validate:"omitempty,max=100"`
	Country *string `json:"country" validate:"omitempty,max=100"`
}
