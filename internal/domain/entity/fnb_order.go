package entity

import (
	"time"

	"github.com/chalkboard-id/chalkboard-api/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FnbOrder is a food & beverage order. Draft orders carry no table and have
// not touched stock yet.
type FnbOrder struct {
	ID            uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	OrderNumber   string              `gorm:"size:50;uniqueIndex;not null" json:"order_number"`
	TableID       *uuid.UUID          `gorm:"type:uuid;index" json:"table_id,omitempty"`
	SessionID     *uuid.UUID          `gorm:"type:uuid;index" json:"session_id,omitempty"`
	CustomerName  *string             `gorm:"size:255" json:"customer_name,omitempty"`
	CustomerPhone *string             `gorm:"size:50;index" json:"customer_phone,omitempty"`
	Subtotal      decimal.Decimal     `gorm:"type:numeric(14,2);not null;default:0" json:"subtotal"`
	Tax           decimal.Decimal     `gorm:"type:numeric(14,2);not null;default:0" json:"tax"`
	Total         decimal.Decimal     `gorm:"type:numeric(14,2);not null;default:0" json:"total"`
	Status        enum.FnbOrderStatus `gorm:"size:20;not null;index" json:"status"`
	PaymentID     *uuid.UUID          `gorm:"type:uuid;index" json:"payment_id,omitempty"`
	StaffID       *uuid.UUID          `gorm:"type:uuid;index" json:"staff_id,omitempty"`
	Notes         *string             `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`

	// Relationships
	Items []FnbOrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	Table *Table         `gorm:"foreignKey:TableID" json:"table,omitempty"`
}

// BeforeCreate generates a UUID before creating a new order
func (o *FnbOrder) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the FnbOrder model
func (FnbOrder) TableName() string {
	return "fnb_orders"
}

// StockDecrements returns the quantity to take out of stock per item
func (o *FnbOrder) StockDecrements() map[uuid.UUID]int {
	decrements := make(map[uuid.UUID]int, len(o.Items))
	for _, item := range o.Items {
		decrements[item.ItemID] += item.Quantity
	}
	return decrements
}

// FnbOrderItem is a line of an order. UnitPrice is the menu price when the
// line was written and does not follow later price changes.
type FnbOrderItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	ItemID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"item_id"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"unit_price"`
	Subtotal  decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"subtotal"`
	Notes     *string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	// Relationships
	Item *FnbItem `gorm:"foreignKey:ItemID" json:"item,omitempty"`
}

// BeforeCreate generates a UUID before creating a new order line
func (oi *FnbOrderItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == uuid.Nil {
		oi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the FnbOrderItem model
func (FnbOrderItem) TableName() string {
	return "fnb_order_items"
}
