package repo

import (
	"context"
	"database/sql"

	"github.com/crucial707/asset-inventory/internal/models"
)

// LocationRepo mirrors CategoryRepo for physical sites.
type LocationRepo struct {
	DB *sql.DB
}

func NewLocationRepo(db *sql.DB) *LocationRepo {
	return &LocationRepo{DB: db}
}

// List returns all locations ordered by name, each with its asset count.
func (r *LocationRepo) List(ctx context.Context) ([]models.Location, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT l.id, l.name, l.address, l.city, l.country, l.created_at, l.updated_at, COUNT(a.id) AS asset_count
		FROM locations l
		LEFT JOIN assets a ON l.id = a.location_id
		GROUP BY l.id
		ORDER BY l.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	locations := []models.Location{}
	for rows.Next() {
		var l models.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.Address, &l.City, &l.Country, &l.CreatedAt, &l.UpdatedAt, &l.AssetCount); err != nil {
			return nil, err
		}
		locations = append(locations, l)
	}
	return locations, rows.Err()
}

// Create inserts a location and returns its id.
func (r *LocationRepo) Create(ctx context.Context, in models.LocationInput) (int, error) {
	var id int
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO locations (name, address, city, country) VALUES ($1, $2, $3, $4) RETURNING id`,
		in.Name, in.Address, in.City, in.Country,
	).Scan(&id)
	return id, err
}

// Update overwrites all location fields. Returns ErrNotFound when the id does
// not exist.
func (r *LocationRepo) Update(ctx context.Context, id int, in models.LocationInput) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE locations SET name = $1, address = $2, city = $3, country = $4, updated_at = NOW() WHERE id = $5`,
		in.Name, in.Address, in.City, in.Country, id,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Delete removes the location. Dependent assets keep their rows with a nulled
// location_id.
func (r *LocationRepo) Delete(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
