package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/orderdesk/emailer/internal/database"
	"github.com/orderdesk/emailer/internal/model"
)

// UserRepository handles user directory reads
type UserRepository struct {
	db *database.Postgres
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *database.Postgres) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID retrieves a user by ID. Returns ErrNotFound when the user
// does not exist.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	query := `
		SELECT id, email, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var user model.User
	var email sql.NullString

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&email,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}

	if email.Valid {
		user.Email = &email.String
	}

	return &user, nil
}
