package entity

import (
	"time"

	"github.com/chalkboard-id/chalkboard-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a login account. Cashier accounts are usually linked to a Staff row.
type User struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Email       string         `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password    string         `gorm:"size:255;not null" json:"-"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Role        enum.UserRole  `gorm:"size:20;not null;default:'cashier'" json:"role"`
	StaffID     *uuid.UUID     `gorm:"type:uuid;index" json:"staff_id,omitempty"`
	IsActive    bool           `gorm:"not null;default:true" json:"is_active"`
	LastLoginAt *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Staff *Staff `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
}

// BeforeCreate generates a UUID before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}
