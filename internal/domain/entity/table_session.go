package entity

import (
	"time"

	"github.com/chalkboard-id/chalkboard-api/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TableSession is one customer's occupancy of a table
type TableSession struct {
	ID               uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	TableID          uuid.UUID          `gorm:"type:uuid;not null;index;uniqueIndex:idx_one_active_session_per_table,where:status = 'active'" json:"table_id"`
	CustomerName     string             `gorm:"size:255;not null" json:"customer_name"`
	CustomerPhone    *string            `gorm:"size:50" json:"customer_phone,omitempty"`
	StartTime        time.Time          `gorm:"not null" json:"start_time"`
	EndTime          *time.Time         `json:"end_time,omitempty"`
	PlannedDuration  int                `gorm:"not null;default:0" json:"planned_duration"`
	ActualDuration   *int               `json:"actual_duration,omitempty"`
	OriginalDuration *int               `json:"original_duration,omitempty"`
	DurationType     enum.DurationType  `gorm:"size:20;not null" json:"duration_type"`
	PricingPackageID *uuid.UUID         `gorm:"type:uuid;index" json:"pricing_package_id,omitempty"`
	TotalCost        *decimal.Decimal   `gorm:"type:numeric(14,2)" json:"total_cost,omitempty"`
	Status           enum.SessionStatus `gorm:"size:20;not null;index" json:"status"`
	PaymentID        *uuid.UUID         `gorm:"type:uuid;index" json:"payment_id,omitempty"`
	StaffID          *uuid.UUID         `gorm:"type:uuid;index" json:"staff_id,omitempty"`
	Rating           *int               `json:"rating,omitempty"`
	Notes            *string            `gorm:"type:text" json:"notes,omitempty"`
	FnbOrderCount    int                `gorm:"not null;default:0" json:"fnb_order_count"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`

	// Relationships
	Table          *Table          `gorm:"foreignKey:TableID" json:"table,omitempty"`
	PricingPackage *PricingPackage `gorm:"foreignKey:PricingPackageID" json:"pricing_package,omitempty"`
	Staff          *Staff          `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
}

// BeforeCreate generates a UUID before creating a new session
func (s *TableSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TableSession model
func (TableSession) TableName() string {
	return "table_sessions"
}

// IsActive reports whether the session is still running
func (s *TableSession) IsActive() bool {
	return s.Status.IsValid() && !s.Status.IsTerminal()
}
