package model

import (
	"time"
)

// Buyer represents the counterparty placing an order.
type Buyer struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id"`
	DisplayName *string   `json:"display_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DisplayNameOrDefault returns the buyer's display name, or the given
// fallback when none is set.
func (b *Buyer) DisplayNameOrDefault(fallback string) string {
	if b.DisplayName == nil || *b.DisplayName == "" {
		return fallback
	}
	return *b.DisplayName
}
