package request

import (
	"github.com/chalkboard-id/chalkboard-api/internal/domain/entity"
	"github.com/google/uuid"
)

// OrderItemRequest represents a line of an order
type OrderItemRequest struct {
	ItemID   uuid.UUID `json:"item_id" binding:"required"`
	Quantity int       `json:"quantity" binding:"required,min=1"`
	Notes    *string   `json:"notes"`
}

// CreateOrderRequest represents an order creation request. Without table_id
// the order is kept as a draft.
type CreateOrderRequest struct {
	Items         []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	CustomerName  *string            `json:"customer_name" binding:"omitempty,max=255"`
	CustomerPhone *string            `json:"customer_phone" binding:"omitempty,max=50"`
	TableID       *uuid.UUID         `json:"table_id"`
	StaffID       *uuid.UUID         `json:"staff_id"`
	Notes         *string            `json:"notes"`
}

// UpdateDraftRequest replaces the content of a draft order
type UpdateDraftRequest struct {
	Items         []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	CustomerName  *string            `json:"customer_name" binding:"omitempty,max=255"`
	CustomerPhone *string            `json:"customer_phone" binding:"omitempty,max=50"`
	Notes         *string            `json:"notes"`
}

// AssignTableRequest attaches a draft order to a table's active session
type AssignTableRequest struct {
	TableID uuid.UUID  `json:"table_id" binding:"required"`
	StaffID *uuid.UUID `json:"staff_id"`
}

// AssignTransactionRequest attaches a draft order to a pending payment
type AssignTransactionRequest struct {
	TransactionID uuid.UUID  `json:"transaction_id" binding:"required"`
	StaffID       *uuid.UUID `json:"staff_id"`
}

// CheckoutDraftsRequest merges draft orders into one payment
type CheckoutDraftsRequest struct {
	OrderIDs       []uuid.UUID            `json:"order_ids" binding:"required,min=1"`
	CustomerName   *string                `json:"customer_name" binding:"omitempty,max=255"`
	CustomerPhone  *string                `json:"customer_phone" binding:"omitempty,max=50"`
	StaffID        *uuid.UUID             `json:"staff_id"`
	PaymentMethods []entity.PaymentMethod `json:"payment_methods"`
	Notes          *string                `json:"notes"`
}

// OrderFilterRequest represents order list filters
type OrderFilterRequest struct {
	Search    string `form:"search"`
	Status    string `form:"status" binding:"omitempty,oneof=draft pending billed paid cancelled"`
	TableID   string `form:"table_id"`
	SessionID string `form:"session_id"`
	PaymentID string `form:"payment_id"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}

// DraftFilterRequest represents draft list filters
type DraftFilterRequest struct {
	Search        string `form:"search"`
	CustomerPhone string `form:"customer_phone"`
}
