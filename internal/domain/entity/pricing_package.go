package entity

import (
	"time"

	"github.com/chalkboard-id/chalkboard-api/internal/domain/billing"
	"github.com/chalkboard-id/chalkboard-api/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PricingPackage is a named billing plan tables and sessions are priced with
type PricingPackage struct {
	ID            uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	Name          string            `gorm:"size:100;not null" json:"name"`
	Description   *string           `gorm:"type:text" json:"description,omitempty"`
	Category      enum.DurationType `gorm:"size:20;not null;index" json:"category"`
	HourlyRate    *decimal.Decimal  `gorm:"type:numeric(14,2)" json:"hourly_rate,omitempty"`
	PerMinuteRate *decimal.Decimal  `gorm:"type:numeric(14,2)" json:"per_minute_rate,omitempty"`
	IsDefault     bool              `gorm:"not null;default:false" json:"is_default"`
	IsActive      bool              `gorm:"not null;default:true" json:"is_active"`
	SortOrder     int               `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new package
func (p *PricingPackage) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PricingPackage model
func (PricingPackage) TableName() string {
	return "pricing_packages"
}

// Rate returns the rate matching the package category
func (p *PricingPackage) Rate() decimal.Decimal {
	if p.Category == enum.DurationTypePerMinute {
		if p.PerMinuteRate != nil {
			return *p.PerMinuteRate
		}
		return decimal.Zero
	}
	if p.HourlyRate != nil {
		return *p.HourlyRate
	}
	return decimal.Zero
}

// RateCard returns both rates, deriving whichever the package leaves unset
func (p *PricingPackage) RateCard() billing.RateCard {
	return billing.NewRateCard(p.HourlyRate, p.PerMinuteRate)
}
