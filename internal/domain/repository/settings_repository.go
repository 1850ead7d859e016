package repository

import (
	"context"

	"github.com/chalkboard-id/chalkboard-api/internal/domain/billing"
	"github.com/chalkboard-id/chalkboard-api/internal/domain/entity"
	"gorm.io/datatypes"
)

// SettingRepository defines the interface for the generic key/value settings
type SettingRepository interface {
	Get(ctx context.Context, key string) (*entity.SystemSetting, error)
	List(ctx context.Context) ([]entity.SystemSetting, error)
	// Upsert creates the key or replaces its value
	Upsert(ctx context.Context, key string, value datatypes.JSON, description *string) (*entity.SystemSetting, error)
}

// TaxSettingsRepository is the typed accessor for the tax_settings key
type TaxSettingsRepository interface {
	// Get returns the stored settings, or the defaults when none are stored
	Get(ctx context.Context) (*billing.TaxSettings, error)
	Save(ctx context.Context, settings *billing.TaxSettings) error
}
