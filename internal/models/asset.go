package models

import "time"

// Asset lifecycle statuses.
const (
	StatusAvailable   = "available"
	StatusInUse       = "in_use"
	StatusMaintenance = "maintenance"
	StatusRetired     = "retired"
)

// Asset is one tracked inventory record. Pointer fields map to nullable
// columns; category/location/assignment are weak references that survive
// deletion of their target (the FK nulls the link).
type Asset struct {
	ID             int        `json:"id"`
	AssetTag       string     `json:"asset_tag"`
	Name           string     `json:"name"`
	CategoryID     *int       `json:"category_id"`
	LocationID     *int       `json:"location_id"`
	SerialNumber   *string    `json:"serial_number"`
	Model          *string    `json:"model"`
	Manufacturer   *string    `json:"manufacturer"`
	PurchaseDate   *time.Time `json:"purchase_date"`
	PurchaseCost   *float64   `json:"purchase_cost"`
	WarrantyExpiry *time.Time `json:"warranty_expiry"`
	Status         string     `json:"status"`
	AssignedTo     *int       `json:"assigned_to"`
	Notes          *string    `json:"notes"`
	ImageURL       *string    `json:"image_url"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// Denormalized names from LEFT JOINs on list/get.
	CategoryName   *string `json:"category_name,omitempty"`
	LocationName   *string `json:"location_name,omitempty"`
	AssignedToName *string `json:"assigned_to_name,omitempty"`
}

// AssetDetail is a single asset enriched with the assignee's email and the
// full change history, newest first.
type AssetDetail struct {
	Asset
	AssignedToEmail *string        `json:"assigned_to_email"`
	History         []HistoryEntry `json:"history"`
}

// AssetInput is the payload accepted by create and update. Updates are a full
// replace: any field left out of the request is written as NULL.
type AssetInput struct {
	AssetTag       string   `json:"asset_tag" validate:"required,max=50"`
	Name           string   `json:"name" validate:"required,max=200"`
	CategoryID     *int     `json:"category_id"`
	LocationID     *int     `json:"location_id"`
	SerialNumber   *string  `json:"serial_number"`
	Model          *string  `json:"model"`
	Manufacturer   *string  `json:"manufacturer"`
	PurchaseDate   *string  `json:"purchase_date" validate:"omitempty,datetime=2006-01-02"`
	PurchaseCost   *float64 `json:"purchase_cost" validate:"omitempty,gte=0"`
	WarrantyExpiry *string  `json:"warranty_expiry" validate:"omitempty,datetime=2006-01-02"`
	Status         string   `json:"status" validate:"omitempty,oneof=available in_use maintenance retired"`
	AssignedTo     *int     `json:"assigned_to"`
	Notes          *string  `json:"notes"`
	ImageURL       *string  `json:"image_url"`
}

// AssetFilter narrows List. Zero values mean "no predicate for that field";
// all supplied filters combine with AND.
type AssetFilter struct {
	Status     string
	CategoryID string
	LocationID string
	Search     string
}

// StatusCount is one bucket of the stats summary.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// CategoryCount counts assets per category name, including empty categories.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// AssetStats is the aggregate summary.
type AssetStats struct {
	Total      int             `json:"total"`
	ByStatus   []StatusCount   `json:"byStatus"`
	ByCategory []CategoryCount `json:"byCategory"`
}
