package models

import "time"

// History actions written by the API. The column is free text so out-of-band
// tooling can record other actions.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
)

// HistoryEntry is one immutable audit record of a creation or update event on
// an asset. OldValue and NewValue are opaque JSON snapshots of the whole
// record; no structured diffing is done. Rows are removed only by the
// ON DELETE CASCADE when the owning asset is deleted.
type HistoryEntry struct {
	ID            int       `json:"id"`
	AssetID       int       `json:"asset_id"`
	Action        string    `json:"action"`
	OldValue      *string   `json:"old_value"`
	NewValue      *string   `json:"new_value"`
	ChangedBy     *int      `json:"changed_by"`
	ChangedByName *string   `json:"changed_by_name,omitempty"`
	ChangedAt     time.Time `json:"changed_at"`
	Notes         *string   `json:"notes"`
}
