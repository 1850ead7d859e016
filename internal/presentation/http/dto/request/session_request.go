package request

import "github.com/google/uuid"

// StartSessionRequest represents a start session request. Mode is "open"
// (play until ended) or "planned" with planned_duration in minutes.
type StartSessionRequest struct {
	TableID          uuid.UUID  `json:"table_id" binding:"required"`
	CustomerName     string     `json:"customer_name" binding:"required,max=255"`
	CustomerPhone    *string    `json:"customer_phone" binding:"omitempty,max=50"`
	Mode             string     `json:"mode" binding:"required,oneof=open planned"`
	PlannedDuration  *int       `json:"planned_duration" binding:"omitempty,min=0"`
	PricingPackageID uuid.UUID  `json:"pricing_package_id" binding:"required"`
	StaffID          *uuid.UUID `json:"staff_id"`
	Notes            *string    `json:"notes"`
}

// MoveSessionRequest represents a move-table request
type MoveSessionRequest struct {
	NewTableID uuid.UUID `json:"new_table_id" binding:"required"`
}

// UpdateDurationRequest represents a manual duration override
type UpdateDurationRequest struct {
	DurationType   string `json:"duration_type" binding:"required,oneof=hourly per_minute"`
	ActualDuration *int   `json:"actual_duration" binding:"required,min=0"`
}

// RecalculateRequest represents a re-billing of a completed session
type RecalculateRequest struct {
	ActualDuration *int   `json:"actual_duration" binding:"required,min=0"`
	DurationType   string `json:"duration_type" binding:"required,oneof=hourly per_minute"`
}

// EndSessionRequest represents an end session request
type EndSessionRequest struct {
	StaffID *uuid.UUID `json:"staff_id"`
}

// CancelSessionRequest represents a cancel session request
type CancelSessionRequest struct {
	Reason *string `json:"reason" binding:"omitempty,max=500"`
}

// RateSessionRequest represents a customer rating
type RateSessionRequest struct {
	Rating int `json:"rating" binding:"required,min=1,max=5"`
}

// SessionFilterRequest represents session list filters
type SessionFilterRequest struct {
	Status    string `form:"status" binding:"omitempty,oneof=active completed cancelled"`
	TableID   string `form:"table_id"`
	Search    string `form:"search"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
