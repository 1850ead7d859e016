package request

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// TaxSettingsRequest represents the tax configuration
type TaxSettingsRequest struct {
	Enabled       bool             `json:"enabled"`
	Percentage    *decimal.Decimal `json:"percentage" binding:"required"`
	Name          string           `json:"name" binding:"required,max=50"`
	ApplyToTables bool             `json:"apply_to_tables"`
	ApplyToFnb    bool             `json:"apply_to_fnb"`
}

// SettingRequest stores any JSON value under a key
type SettingRequest struct {
	Value       json.RawMessage `json:"value" binding:"required"`
	Description *string         `json:"description"`
}
