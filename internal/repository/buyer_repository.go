package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/orderdesk/emailer/internal/database"
	"github.com/orderdesk/emailer/internal/model"
)

// BuyerRepository handles buyer directory reads
type BuyerRepository struct {
	db *database.Postgres
}

// NewBuyerRepository creates a new BuyerRepository
func NewBuyerRepository(db *database.Postgres) *BuyerRepository {
	return &BuyerRepository{db: db}
}

// GetByID retrieves a buyer by ID. Returns ErrNotFound when the buyer
// does not exist.
func (r *BuyerRepository) GetByID(ctx context.Context, id string) (*model.Buyer, error) {
	query := `
		SELECT id, tenant_id, display_name, created_at, updated_at
		FROM buyers
		WHERE id = $1
	`

	var buyer model.Buyer
	var displayName sql.NullString

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&buyer.ID,
		&buyer.TenantID,
		&displayName,
		&buyer.CreatedAt,
		&buyer.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan buyer: %w", err)
	}

	if displayName.Valid {
		buyer.DisplayName = &displayName.String
	}

	return &buyer, nil
}
