package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/crucial707/asset-inventory/internal/models"
)

// AssetRepo is the record access layer for assets. Create and Update run the
// row mutation and the history append in one transaction so neither can land
// without the other.
type AssetRepo struct {
	DB      *sql.DB
	History *HistoryRepo
}

func NewAssetRepo(db *sql.DB) *AssetRepo {
	return &AssetRepo{DB: db, History: NewHistoryRepo(db)}
}

const assetColumns = `
	a.id, a.asset_tag, a.name, a.category_id, a.location_id, a.serial_number,
	a.model, a.manufacturer, a.purchase_date, a.purchase_cost, a.warranty_expiry,
	a.status, a.assigned_to, a.notes, a.image_url, a.created_at, a.updated_at`

const assetJoins = `
	FROM assets a
	LEFT JOIN categories c ON a.category_id = c.id
	LEFT JOIN locations l ON a.location_id = l.id
	LEFT JOIN users u ON a.assigned_to = u.id`

func scanAsset(row interface{ Scan(dest ...any) error }, a *models.Asset, extra ...any) error {
	dest := []any{
		&a.ID, &a.AssetTag, &a.Name, &a.CategoryID, &a.LocationID, &a.SerialNumber,
		&a.Model, &a.Manufacturer, &a.PurchaseDate, &a.PurchaseCost, &a.WarrantyExpiry,
		&a.Status, &a.AssignedTo, &a.Notes, &a.ImageURL, &a.CreatedAt, &a.UpdatedAt,
	}
	dest = append(dest, extra...)
	return row.Scan(dest...)
}

// List returns assets matching the filter, newest-created first. All supplied
// filters are ANDed; search matches name, tag, or serial number
// case-insensitively.
func (r *AssetRepo) List(ctx context.Context, f models.AssetFilter) ([]models.Asset, error) {
	query := `SELECT` + assetColumns + `,
	c.name AS category_name, l.name AS location_name, u.full_name AS assigned_to_name` +
		assetJoins + `
	WHERE 1=1`

	var args []any
	if f.Status != "" {
		args = append(args, f.Status)
		query += fmt.Sprintf(" AND a.status = $%d", len(args))
	}
	if f.CategoryID != "" {
		args = append(args, f.CategoryID)
		query += fmt.Sprintf(" AND a.category_id = $%d", len(args))
	}
	if f.LocationID != "" {
		args = append(args, f.LocationID)
		query += fmt.Sprintf(" AND a.location_id = $%d", len(args))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		query += fmt.Sprintf(" AND (a.name ILIKE $%d OR a.asset_tag ILIKE $%d OR a.serial_number ILIKE $%d)", n, n, n)
	}
	query += " ORDER BY a.created_at DESC"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assets := []models.Asset{}
	for rows.Next() {
		var a models.Asset
		if err := scanAsset(rows, &a, &a.CategoryName, &a.LocationName, &a.AssignedToName); err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

// Get returns one asset with denormalized names, the assignee's email, and its
// full history newest-first. Returns ErrNotFound when no row matches.
func (r *AssetRepo) Get(ctx context.Context, id int) (models.AssetDetail, error) {
	query := `SELECT` + assetColumns + `,
	c.name AS category_name, l.name AS location_name, u.full_name AS assigned_to_name, u.email AS assigned_to_email` +
		assetJoins + `
	WHERE a.id = $1`

	var d models.AssetDetail
	err := scanAsset(r.DB.QueryRowContext(ctx, query, id), &d.Asset,
		&d.CategoryName, &d.LocationName, &d.AssignedToName, &d.AssignedToEmail)
	if errors.Is(err, sql.ErrNoRows) {
		return d, ErrNotFound
	}
	if err != nil {
		return d, err
	}

	d.History, err = r.History.ListByAsset(ctx, id)
	return d, err
}

// Create inserts a new asset and its "created" history entry in one
// transaction. Status defaults to available when unset. A duplicate asset_tag
// surfaces as ErrConflict via the unique constraint; there is no preliminary
// lookup, so concurrent creates cannot race past the check.
func (r *AssetRepo) Create(ctx context.Context, in models.AssetInput, actorID int) (int, error) {
	if in.Status == "" {
		in.Status = models.StatusAvailable
	}
	newValue, err := json.Marshal(in)
	if err != nil {
		return 0, err
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var id int
	err = tx.QueryRowContext(ctx, `
		INSERT INTO assets (
			asset_tag, name, category_id, location_id, serial_number,
			model, manufacturer, purchase_date, purchase_cost,
			warranty_expiry, status, assigned_to, notes, image_url
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id`,
		in.AssetTag, in.Name, in.CategoryID, in.LocationID, in.SerialNumber,
		in.Model, in.Manufacturer, in.PurchaseDate, in.PurchaseCost,
		in.WarrantyExpiry, in.Status, in.AssignedTo, in.Notes, in.ImageURL,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrConflict
		}
		return 0, err
	}

	newVal := string(newValue)
	if err := recordHistory(ctx, tx, id, models.ActionCreated, nil, &newVal, actorID, "Asset created"); err != nil {
		return 0, err
	}

	return id, tx.Commit()
}

// Update replaces every mutable column of the asset (omitted input fields
// become NULL) and appends an "updated" history entry capturing the full
// prior row and the full submitted payload, in one transaction.
func (r *AssetRepo) Update(ctx context.Context, id int, in models.AssetInput, actorID int) error {
	if in.Status == "" {
		in.Status = models.StatusAvailable
	}
	newValue, err := json.Marshal(in)
	if err != nil {
		return err
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var prior models.Asset
	err = scanAsset(tx.QueryRowContext(ctx, `SELECT`+assetColumns+` FROM assets a WHERE a.id = $1`, id), &prior)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	oldValue, err := json.Marshal(prior)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE assets SET
			asset_tag = $1, name = $2, category_id = $3, location_id = $4,
			serial_number = $5, model = $6, manufacturer = $7, purchase_date = $8,
			purchase_cost = $9, warranty_expiry = $10, status = $11, assigned_to = $12,
			notes = $13, image_url = $14, updated_at = NOW()
		WHERE id = $15`,
		in.AssetTag, in.Name, in.CategoryID, in.LocationID,
		in.SerialNumber, in.Model, in.Manufacturer, in.PurchaseDate,
		in.PurchaseCost, in.WarrantyExpiry, in.Status, in.AssignedTo,
		in.Notes, in.ImageURL, id,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return err
	}

	oldVal, newVal := string(oldValue), string(newValue)
	if err := recordHistory(ctx, tx, id, models.ActionUpdated, &oldVal, &newVal, actorID, "Asset updated"); err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes the asset; its history rows cascade away in the schema.
// Returns ErrNotFound when no row was deleted.
func (r *AssetRepo) Delete(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM assets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Stats returns the total asset count plus counts grouped by status and by
// category name. Categories with zero assets are included via LEFT JOIN.
func (r *AssetRepo) Stats(ctx context.Context) (models.AssetStats, error) {
	var stats models.AssetStats

	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM assets`).Scan(&stats.Total); err != nil {
		return stats, err
	}

	rows, err := r.DB.QueryContext(ctx, `SELECT status, COUNT(*) FROM assets GROUP BY status`)
	if err != nil {
		return stats, err
	}
	defer rows.Close()
	stats.ByStatus = []models.StatusCount{}
	for rows.Next() {
		var s models.StatusCount
		if err := rows.Scan(&s.Status, &s.Count); err != nil {
			return stats, err
		}
		stats.ByStatus = append(stats.ByStatus, s)
	}
	if err := rows.Err(); err != nil {
		return stats, err
	}

	catRows, err := r.DB.QueryContext(ctx, `
		SELECT c.name, COUNT(a.id)
		FROM categories c
		LEFT JOIN assets a ON c.id = a.category_id
		GROUP BY c.id, c.name
		ORDER BY c.name`)
	if err != nil {
		return stats, err
	}
	defer catRows.Close()
	stats.ByCategory = []models.CategoryCount{}
	for catRows.Next() {
		var c models.CategoryCount
		if err := catRows.Scan(&c.Name, &c.Count); err != nil {
			return stats, err
		}
		stats.ByCategory = append(stats.ByCategory, c)
	}
	return stats, catRows.Err()
}

// isUniqueViolation reports whether err is a Postgres unique_violation (23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
