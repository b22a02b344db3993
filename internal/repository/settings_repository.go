package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/orderdesk/emailer/internal/database"
	"github.com/orderdesk/emailer/internal/model"
)

const settingsCachePrefix = "tenant_settings:"

// SettingsRepository handles tenant settings reads with a Redis
// read-through cache in front of Postgres.
type SettingsRepository struct {
	db       *database.Postgres
	rdb      *database.Redis
	cacheTTL time.Duration
}

// NewSettingsRepository creates a new SettingsRepository
func NewSettingsRepository(db *database.Postgres, rdb *database.Redis, cacheTTL time.Duration) *SettingsRepository {
	if cacheTTL == 0 {
		cacheTTL = 5 * time.Minute
	}
	return &SettingsRepository{db: db, rdb: rdb, cacheTTL: cacheTTL}
}

// GetByKey retrieves the settings stored under the given key for a tenant.
// A tenant without stored settings yields an empty value, not an error.
func (r *SettingsRepository) GetByKey(ctx context.Context, tenantID, key string) (*model.EmailerSettings, error) {
	cacheKey := settingsCachePrefix + tenantID + ":" + key

	// Cache miss or an unavailable cache both fall through to Postgres.
	if r.rdb != nil {
		if cached, err := r.rdb.GetString(ctx, cacheKey); err == nil {
			var values map[string]string
			if err := json.Unmarshal([]byte(cached), &values); err == nil {
				return &model.EmailerSettings{TenantID: tenantID, Key: key, Values: values}, nil
			}
		}
	}

	settings, err := r.getFromDB(ctx, tenantID, key)
	if err != nil {
		return nil, err
	}

	if r.rdb != nil {
		if encoded, err := json.Marshal(settings.Values); err == nil {
			_ = r.rdb.SetWithTTL(ctx, cacheKey, string(encoded), r.cacheTTL)
		}
	}

	return settings, nil
}

func (r *SettingsRepository) getFromDB(ctx context.Context, tenantID, key string) (*model.EmailerSettings, error) {
	query := `
		SELECT value
		FROM tenant_settings
		WHERE tenant_id = $1 AND key = $2
	`

	settings := &model.EmailerSettings{
		TenantID: tenantID,
		Key:      key,
		Values:   map[string]string{},
	}

	var value []byte
	err := r.db.QueryRowContext(ctx, query, tenantID, key).Scan(&value)
	if err == sql.ErrNoRows {
		return settings, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan tenant settings: %w", err)
	}

	if len(value) > 0 {
		if err := json.Unmarshal(value, &settings.Values); err != nil {
			return nil, fmt.Errorf("failed to decode tenant settings: %w", err)
		}
	}

	return settings, nil
}
