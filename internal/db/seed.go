package db

import (
	"context"
	"database/sql"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// EnsureAdmin creates the bootstrap admin account if no user with that
// username exists. Idempotent across restarts; an existing user is left
// untouched, including its password.
func EnsureAdmin(ctx context.Context, conn *sql.DB, username, email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	_, err = conn.ExecContext(ctx, `
		INSERT INTO users (username, email, password, full_name, role)
		VALUES ($1, $2, $3, 'System Administrator', 'admin')
		ON CONFLICT (username) DO NOTHING`,
		username, email, string(hash),
	)
	if err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}
	return nil
}
