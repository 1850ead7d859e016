package entity

import (
	"time"

	"github.com/chalkboard-id/chalkboard-api/internal/domain/billing"
	"github.com/chalkboard-id/chalkboard-api/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Table represents a physical billiard table
type Table struct {
	ID               uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	Name             string           `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description      *string          `gorm:"type:text" json:"description,omitempty"`
	Status           enum.TableStatus `gorm:"size:20;not null;default:'available';index" json:"status"`
	HourlyRate       decimal.Decimal  `gorm:"type:numeric(14,2);not null;default:0" json:"hourly_rate"`
	PerMinuteRate    *decimal.Decimal `gorm:"type:numeric(14,2)" json:"per_minute_rate,omitempty"`
	PricingPackageID *uuid.UUID       `gorm:"type:uuid;index" json:"pricing_package_id,omitempty"`
	IsActive         bool             `gorm:"not null;default:true" json:"is_active"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`

	// Relationships
	PricingPackage *PricingPackage `gorm:"foreignKey:PricingPackageID" json:"pricing_package,omitempty"`
}

// BeforeCreate generates a UUID before creating a new table
func (t *Table) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Table model
func (Table) TableName() string {
	return "tables"
}

// RateCard returns the table's own rates, per-minute defaulting to hourly/60
func (t *Table) RateCard() billing.RateCard {
	return billing.NewRateCard(&t.HourlyRate, t.PerMinuteRate)
}

// IsAvailable reports whether a session can be started on the table
func (t *Table) IsAvailable() bool {
	return t.IsActive && t.Status == enum.TableStatusAvailable
}
