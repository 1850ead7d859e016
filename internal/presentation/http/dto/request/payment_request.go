package request

import "github.com/chalkboard-id/chalkboard-api/internal/domain/entity"

// UpdatePaymentStatusRequest represents a payment status change
type UpdatePaymentStatusRequest struct {
	Status         string                 `json:"status" binding:"required,oneof=pending success failed cancelled"`
	PaymentMethods []entity.PaymentMethod `json:"payment_methods"`
	Notes          *string                `json:"notes"`
}

// PaymentFilterRequest represents payment list filters
type PaymentFilterRequest struct {
	Search    string `form:"search"`
	Status    string `form:"status" binding:"omitempty,oneof=pending success failed cancelled"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
