package repo

import (
	"context"
	"database/sql"

	"github.com/crucial707/asset-inventory/internal/models"
)

// CategoryRepo is minimal CRUD for categories. Deleting a category leaves its
// assets in place; the schema nulls their category_id.
type CategoryRepo struct {
	DB *sql.DB
}

func NewCategoryRepo(db *sql.DB) *CategoryRepo {
	return &CategoryRepo{DB: db}
}

// List returns all categories ordered by name, each with its asset count.
func (r *CategoryRepo) List(ctx context.Context) ([]models.Category, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT c.id, c.name, c.description, c.created_at, c.updated_at, COUNT(a.id) AS asset_count
		FROM categories c
		LEFT JOIN assets a ON c.id = a.category_id
		GROUP BY c.id
		ORDER BY c.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt, &c.AssetCount); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// Create inserts a category and returns its id.
func (r *CategoryRepo) Create(ctx context.Context, in models.CategoryInput) (int, error) {
	var id int
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO categories (name, description) VALUES ($1, $2) RETURNING id`,
		in.Name, in.Description,
	).Scan(&id)
	return id, err
}

// Update overwrites name and description. Returns ErrNotFound when the id
// does not exist.
func (r *CategoryRepo) Update(ctx context.Context, id int, in models.CategoryInput) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE categories SET name = $1, description = $2, updated_at = NOW() WHERE id = $3`,
		in.Name, in.Description, id,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Delete removes the category. Dependent assets keep their rows with a nulled
// category_id.
func (r *CategoryRepo) Delete(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// requireRow converts a zero-rows-affected result into ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
