package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/chalkboard-id/chalkboard-api/internal/domain/billing"
	"github.com/chalkboard-id/chalkboard-api/internal/domain/entity"
	domainRepo "github.com/chalkboard-id/chalkboard-api/internal/domain/repository"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type settingRepository struct {
	db *gorm.DB
}

// NewSettingRepository creates a new key/value settings repository
func NewSettingRepository(db *gorm.DB) domainRepo.SettingRepository {
	return &settingRepository{db: db}
}

// Get retrieves a setting by key. The key column is matched through a map
// condition so gorm quotes it.
func (r *settingRepository) Get(ctx context.Context, key string) (*entity.SystemSetting, error) {
	var setting entity.SystemSetting
	err := dbFrom(ctx, r.db).Where(map[string]any{"key": key}).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &setting, err
}

func (r *settingRepository) List(ctx context.Context) ([]entity.SystemSetting, error) {
	var settings []entity.SystemSetting
	err := dbFrom(ctx, r.db).Order("created_at ASC").Find(&settings).Error
	return settings, err
}

func (r *settingRepository) Upsert(ctx context.Context, key string, value datatypes.JSON, description *string) (*entity.SystemSetting, error) {
	setting, err := r.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	if setting == nil {
		setting = &entity.SystemSetting{Key: key, Value: value, Description: description}
		if err := dbFrom(ctx, r.db).Create(setting).Error; err != nil {
			return nil, err
		}
		return setting, nil
	}

	setting.Value = value
	if description != nil {
		setting.Description = description
	}
	if err := dbFrom(ctx, r.db).Save(setting).Error; err != nil {
		return nil, err
	}
	return setting, nil
}

type taxSettingsRepository struct {
	settings *settingRepository
}

// NewTaxSettingsRepository creates the typed repository for tax settings
func NewTaxSettingsRepository(db *gorm.DB) domainRepo.TaxSettingsRepository {
	return &taxSettingsRepository{settings: &settingRepository{db: db}}
}

func (r *taxSettingsRepository) Get(ctx context.Context) (*billing.TaxSettings, error) {
	settings := billing.DefaultTaxSettings()

	stored, err := r.settings.Get(ctx, billing.TaxSettingsKey)
	if err != nil {
		return nil, err
	}
	if stored == nil || len(stored.Value) == 0 {
		return &settings, nil
	}

	// Fields missing from the stored JSON keep their defaults
	if err := json.Unmarshal(stored.Value, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *taxSettingsRepository) Save(ctx context.Context, settings *billing.TaxSettings) error {
	value, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	description := "Tax applied to table charges and F&B orders"
	_, err = r.settings.Upsert(ctx, billing.TaxSettingsKey, datatypes.JSON(value), &description)
	return err
}
