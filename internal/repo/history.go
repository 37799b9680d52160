package repo

import (
	"context"
	"database/sql"

	"github.com/crucial707/asset-inventory/internal/models"
)

// execer is satisfied by *sql.DB and *sql.Tx so history rows can be written
// inside the caller's transaction.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// recordHistory appends one audit row. Callers pass their open transaction so
// the mutation and its history entry commit or roll back together.
func recordHistory(ctx context.Context, q execer, assetID int, action string, oldValue, newValue *string, changedBy int, notes string) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO asset_history (asset_id, action, old_value, new_value, changed_by, notes)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		assetID, action, oldValue, newValue, changedBy, notes,
	)
	return err
}

// HistoryRepo reads the append-only audit trail.
type HistoryRepo struct {
	DB *sql.DB
}

func NewHistoryRepo(db *sql.DB) *HistoryRepo {
	return &HistoryRepo{DB: db}
}

// ListByAsset returns the asset's history entries newest-first, each with the
// changing user's name joined in (null when the user was deleted).
func (r *HistoryRepo) ListByAsset(ctx context.Context, assetID int) ([]models.HistoryEntry, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT ah.id, ah.asset_id, ah.action, ah.old_value, ah.new_value,
		       ah.changed_by, u.full_name AS changed_by_name, ah.changed_at, ah.notes
		FROM asset_history ah
		LEFT JOIN users u ON ah.changed_by = u.id
		WHERE ah.asset_id = $1
		ORDER BY ah.changed_at DESC, ah.id DESC`,
		assetID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.HistoryEntry{}
	for rows.Next() {
		var e models.HistoryEntry
		if err := rows.Scan(&e.ID, &e.AssetID, &e.Action, &e.OldValue, &e.NewValue,
			&e.ChangedBy, &e.ChangedByName, &e.ChangedAt, &e.Notes); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
