package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/orderdesk/emailer/internal/database"
	"github.com/orderdesk/emailer/internal/model"
)

// OrderRepository handles order (document) reads
type OrderRepository struct {
	db *database.Postgres
}

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository(db *database.Postgres) *OrderRepository {
	return &OrderRepository{db: db}
}

// GetByID retrieves an order scoped to the tenant and requesting user.
// Returns ErrNotFound when no such document exists.
func (r *OrderRepository) GetByID(ctx context.Context, tenantID, userID, documentID string) (*model.Order, error) {
	query := `
		SELECT id, tenant_id, system_id, created_by, buyer_id, total_value,
		       cart_details, notification_email_ids, created_at, updated_at
		FROM orders
		WHERE id = $1 AND tenant_id = $2 AND created_by = $3
	`

	var order model.Order
	var totalValue sql.NullFloat64
	var cartDetails, notificationEmails []byte

	err := r.db.QueryRowContext(ctx, query, documentID, tenantID, userID).Scan(
		&order.ID,
		&order.TenantID,
		&order.SystemID,
		&order.CreatedBy,
		&order.BuyerID,
		&totalValue,
		&cartDetails,
		&notificationEmails,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}

	if totalValue.Valid {
		order.TotalValue = &totalValue.Float64
	}

	if len(cartDetails) > 0 {
		if err := json.Unmarshal(cartDetails, &order.CartDetails); err != nil {
			return nil, fmt.Errorf("failed to decode cart details: %w", err)
		}
	}

	// EmailList tolerates malformed JSONB values, so only a broken
	// document (invalid JSON entirely) errors here.
	if len(notificationEmails) > 0 {
		if err := json.Unmarshal(notificationEmails, &order.NotificationEmailIDs); err != nil {
			return nil, fmt.Errorf("failed to decode notification emails: %w", err)
		}
	}

	return &order, nil
}
