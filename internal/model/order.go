package model

import (
	"encoding/json"
	"time"
)

// Order represents the purchase record a confirmation email is sent for.
// CartDetails and NotificationEmailIDs are stored as JSONB and originate
// from upstream systems, so both are decoded leniently.
type Order struct {
	ID                   string      `json:"id"`
	TenantID             string      `json:"tenant_id"`
	SystemID             string      `json:"system_id"`
	CreatedBy            string      `json:"created_by"`
	BuyerID              string      `json:"buyer_id"`
	TotalValue           *float64    `json:"total_value,omitempty"`
	CartDetails          CartDetails `json:"cart_details"`
	NotificationEmailIDs EmailList   `json:"notification_email_ids"`
	CreatedAt            time.Time   `json:"created_at"`
	UpdatedAt            time.Time   `json:"updated_at"`
}

// CartDetails holds the line items of an order, keyed by item id.
type CartDetails struct {
	Items map[string]json.RawMessage `json:"items"`
}

// ItemCount returns the number of distinct items in the cart.
func (c CartDetails) ItemCount() int {
	return len(c.Items)
}

// EmailList is a list of email addresses stored as JSON.
// Upstream systems have been observed writing non-array values (a bare
// string, an object) into this field; anything that is not a proper JSON
// array of strings decodes to an empty list instead of failing.
type EmailList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *EmailList) UnmarshalJSON(data []byte) error {
	var emails []string
	if err := json.Unmarshal(data, &emails); err != nil {
		*l = nil
		return nil
	}
	*l = emails
	return nil
}
