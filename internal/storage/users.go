package storage

import (
	"context"
	"fmt"

	"github.com/claude/repscope/internal/models"
)

// ListUsers returns all registered users, ordered by id. The weekly recap
// batch iterates this list.
func (db *DB) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, email, name FROM users ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// GetUser returns one user by id.
func (db *DB) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	var u models.User
	err := db.Pool.QueryRow(ctx,
		`SELECT id, email, name FROM users WHERE id = $1`, userID).
		Scan(&u.ID, &u.Email, &u.Name)
	if err != nil {
		return nil, fmt.Errorf("querying user %d: %w", userID, err)
	}
	return &u, nil
}
