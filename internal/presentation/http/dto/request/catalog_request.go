package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TableRequest represents a table create/update request
type TableRequest struct {
	Name             string           `json:"name" binding:"required,max=50"`
	Description      *string          `json:"description"`
	HourlyRate       *decimal.Decimal `json:"hourly_rate" binding:"required"`
	PerMinuteRate    *decimal.Decimal `json:"per_minute_rate"`
	PricingPackageID *uuid.UUID       `json:"pricing_package_id"`
}

// TableStatusRequest represents a manual table status change
type TableStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=available maintenance reserved"`
}

// TableActiveRequest activates or deactivates a table
type TableActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// TableFilterRequest represents table list filters
type TableFilterRequest struct {
	Status     string `form:"status" binding:"omitempty,oneof=available occupied maintenance reserved"`
	ActiveOnly bool   `form:"active_only"`
	Search     string `form:"search"`
}

// PricingPackageRequest represents a pricing package create/update request
type PricingPackageRequest struct {
	Name          string           `json:"name" binding:"required,max=100"`
	Description   *string          `json:"description"`
	Category      string           `json:"category" binding:"required,oneof=hourly per_minute"`
	HourlyRate    *decimal.Decimal `json:"hourly_rate"`
	PerMinuteRate *decimal.Decimal `json:"per_minute_rate"`
	IsDefault     bool             `json:"is_default"`
	IsActive      *bool            `json:"is_active"`
	SortOrder     int              `json:"sort_order"`
}

// StaffRequest represents a staff create/update request
type StaffRequest struct {
	Name     string  `json:"name" binding:"required,max=255"`
	Phone    *string `json:"phone" binding:"omitempty,max=50"`
	Position string  `json:"position" binding:"omitempty,max=50"`
	IsActive *bool   `json:"is_active"`
}

// CategoryRequest represents a menu category create/update request
type CategoryRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description *string `json:"description"`
	SortOrder   int     `json:"sort_order"`
	IsActive    *bool   `json:"is_active"`
}

// ItemRequest represents a menu item create/update request
type ItemRequest struct {
	CategoryID    uuid.UUID        `json:"category_id" binding:"required"`
	Name          string           `json:"name" binding:"required,max=255"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price" binding:"required"`
	Cost          *decimal.Decimal `json:"cost"`
	StockQuantity int              `json:"stock_quantity" binding:"min=0"`
	MinStock      int              `json:"min_stock" binding:"min=0"`
	Unit          string           `json:"unit" binding:"omitempty,max=20"`
	IsActive      *bool            `json:"is_active"`
}

// RestockRequest adds stock to a menu item
type RestockRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// ItemFilterRequest represents menu item list filters
type ItemFilterRequest struct {
	Search     string `form:"search"`
	CategoryID string `form:"category_id"`
	ActiveOnly bool   `form:"active_only"`
	LowStock   bool   `form:"low_stock"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}
