package model

// EmailerSettingsKey is the fixed settings key the emailer configuration
// is stored under per tenant.
const EmailerSettingsKey = "emailer_settings"

// EmailerSettings holds tenant-scoped emailer configuration.
// It is fetched for parity with the legacy flow; nothing downstream
// consumes it yet.
type EmailerSettings struct {
	TenantID string            `json:"tenant_id"`
	Key      string            `json:"key"`
	Values   map[string]string `json:"values"`
}
