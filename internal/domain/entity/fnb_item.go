package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FnbCategory groups menu items
type FnbCategory struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	Description *string        `gorm:"type:text" json:"description,omitempty"`
	SortOrder   int            `gorm:"not null;default:0" json:"sort_order"`
	IsActive    bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Items []FnbItem `gorm:"foreignKey:CategoryID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new category
func (c *FnbCategory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the FnbCategory model
func (FnbCategory) TableName() string {
	return "fnb_categories"
}

// FnbItem is a food or beverage menu item with tracked stock
type FnbItem struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	CategoryID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"category_id"`
	Name          string          `gorm:"size:255;not null" json:"name"`
	Description   *string         `gorm:"type:text" json:"description,omitempty"`
	Price         decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"price"`
	Cost          decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"cost"`
	StockQuantity int             `gorm:"not null;default:0" json:"stock_quantity"`
	MinStock      int             `gorm:"not null;default:0" json:"min_stock"`
	Unit          string          `gorm:"size:20;not null;default:'pcs'" json:"unit"`
	IsActive      bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Category *FnbCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// BeforeCreate generates a UUID before creating a new item
func (i *FnbItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the FnbItem model
func (FnbItem) TableName() string {
	return "fnb_items"
}

// IsLowStock reports whether stock has fallen to the minimum level
func (i *FnbItem) IsLowStock() bool {
	return i.StockQuantity <= i.MinStock
}
