package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SystemSetting is a generic key/value entry with a JSON value
type SystemSetting struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Key         string         `gorm:"size:100;uniqueIndex;not null" json:"key"`
	Value       datatypes.JSON `json:"value"`
	Description *string        `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new setting
func (s *SystemSetting) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SystemSetting model
func (SystemSetting) TableName() string {
	return "system_settings"
}
