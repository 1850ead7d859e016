package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/chalkboard-id/chalkboard-api/internal/domain/billing"
	"github.com/chalkboard-id/chalkboard-api/internal/domain/entity"
	"github.com/chalkboard-id/chalkboard-api/internal/domain/repository"
	"github.com/chalkboard-id/chalkboard-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// SettingsService handles tax configuration and the generic key/value settings
type SettingsService struct {
	settingRepo repository.SettingRepository
	taxRepo     repository.TaxSettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingRepo repository.SettingRepository, taxRepo repository.TaxSettingsRepository) *SettingsService {
	return &SettingsService{
		settingRepo: settingRepo,
		taxRepo:     taxRepo,
	}
}

// GetTaxSettings returns the tax configuration, defaults when never saved
func (s *SettingsService) GetTaxSettings(ctx context.Context) (*billing.TaxSettings, error) {
	return s.taxRepo.Get(ctx)
}

// UpdateTaxSettings validates and stores the tax configuration
func (s *SettingsService) UpdateTaxSettings(ctx context.Context, input *billing.TaxSettings) (*billing.TaxSettings, error) {
	var fieldErrors []apperror.FieldError
	if input.Percentage.IsNegative() || input.Percentage.GreaterThan(decimal.NewFromInt(100)) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "percentage", Message: "percentage must be between 0 and 100"})
	}
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "name is required"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	if err := s.taxRepo.Save(ctx, input); err != nil {
		return nil, err
	}
	return s.taxRepo.Get(ctx)
}

// GetSetting retrieves a setting by key
func (s *SettingsService) GetSetting(ctx context.Context, key string) (*entity.SystemSetting, error) {
	setting, err := s.settingRepo.Get(ctx, strings.TrimSpace(key))
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, apperror.NewNotFoundError("Setting")
	}
	return setting, nil
}

// SetSetting stores any JSON value under key. Tax settings have their own
// typed endpoint and are refused here.
func (s *SettingsService) SetSetting(ctx context.Context, key string, value json.RawMessage, description *string) (*entity.SystemSetting, error) {
	key = strings.TrimSpace(key)
	if key == "" || len(key) > 100 {
		return nil, apperror.NewBadRequestError("key must be between 1 and 100 characters")
	}
	if key == billing.TaxSettingsKey {
		return nil, apperror.NewBadRequestError("Tax settings must be updated through /settings/tax")
	}
	if len(value) == 0 || !json.Valid(value) {
		return nil, apperror.NewBadRequestError("value must be valid JSON")
	}

	return s.settingRepo.Upsert(ctx, key, datatypes.JSON(value), trimmedOrNil(description))
}

// ListSettings lists every stored setting
func (s *SettingsService) ListSettings(ctx context.Context) ([]entity.SystemSetting, error) {
	return s.settingRepo.List(ctx)
}
