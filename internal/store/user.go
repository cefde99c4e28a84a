package store

import (
	"context"
	"database/sql"

	"github.com/pacifichome/smarthome-admin/internal/models"
)

// UserByUsername looks up one login row.
func (s *Store) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := s.DB.QueryRowContext(ctx,
		`SELECT id, username, password_hash, role FROM users WHERE username = ?`, username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role)
	if err == sql.ErrNoRows {
		return nil, NotFoundError{"Invalid username or password"}
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
