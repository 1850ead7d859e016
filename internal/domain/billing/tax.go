package billing

import "github.com/shopspring/decimal"

// TaxSettingsKey is the system setting the tax configuration lives under
const TaxSettingsKey = "tax_settings"

// TaxSettings configures tax on table and F&B charges
type TaxSettings struct {
	Enabled       bool            `json:"enabled"`
	Percentage    decimal.Decimal `json:"percentage"`
	Name          string          `json:"name"`
	ApplyToTables bool            `json:"apply_to_tables"`
	ApplyToFnb    bool            `json:"apply_to_fnb"`
}

// DefaultTaxSettings is used until an admin saves a configuration
func DefaultTaxSettings() TaxSettings {
	return TaxSettings{
		Enabled:       false,
		Percentage:    decimal.NewFromInt(11),
		Name:          "PPN",
		ApplyToTables: true,
		ApplyToFnb:    true,
	}
}

var hundred = decimal.NewFromInt(100)

// CalculateTax returns the tax owed on amount. Percentage range is checked
// when settings are saved, not here.
func CalculateTax(amount decimal.Decimal, settings TaxSettings, isTableCharge bool) decimal.Decimal {
	if !settings.Enabled {
		return decimal.Zero
	}
	applies := settings.ApplyToFnb
	if isTableCharge {
		applies = settings.ApplyToTables
	}
	if !applies {
		return decimal.Zero
	}
	return amount.Mul(settings.Percentage).Div(hundred).Round(2)
}
