package entity

import (
	"time"

	"github.com/chalkboard-id/chalkboard-api/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PaymentMethod is one tender used to settle a payment
type PaymentMethod struct {
	Type   string          `json:"type"`
	Amount decimal.Decimal `json:"amount"`
}

// Payment is the billing record of one checkout. TotalAmount always equals
// TableAmount + FnbAmount; tax is already inside both components.
type Payment struct {
	ID                uuid.UUID                          `gorm:"type:uuid;primary_key" json:"id"`
	TransactionNumber string                             `gorm:"size:50;uniqueIndex;not null" json:"transaction_number"`
	CustomerName      *string                            `gorm:"size:255" json:"customer_name,omitempty"`
	CustomerPhone     *string                            `gorm:"size:50" json:"customer_phone,omitempty"`
	TableAmount       decimal.Decimal                    `gorm:"type:numeric(14,2);not null;default:0" json:"table_amount"`
	FnbAmount         decimal.Decimal                    `gorm:"type:numeric(14,2);not null;default:0" json:"fnb_amount"`
	DiscountAmount    decimal.Decimal                    `gorm:"type:numeric(14,2);not null;default:0" json:"discount_amount"`
	TaxAmount         decimal.Decimal                    `gorm:"type:numeric(14,2);not null;default:0" json:"tax_amount"`
	TotalAmount       decimal.Decimal                    `gorm:"type:numeric(14,2);not null;default:0" json:"total_amount"`
	PaymentMethods    datatypes.JSONSlice[PaymentMethod] `json:"payment_methods"`
	StaffID           *uuid.UUID                         `gorm:"type:uuid;index" json:"staff_id,omitempty"`
	Status            enum.PaymentStatus                 `gorm:"size:20;not null;index" json:"status"`
	PaidAt            *time.Time                         `json:"paid_at,omitempty"`
	Notes             *string                            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt         time.Time                          `json:"created_at"`
	UpdatedAt         time.Time                          `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.PaymentMethods == nil {
		p.PaymentMethods = datatypes.JSONSlice[PaymentMethod]{}
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}

// SetAmounts writes the components and keeps the total identity
func (p *Payment) SetAmounts(tableAmount, fnbAmount, taxAmount decimal.Decimal) {
	p.TableAmount = tableAmount
	p.FnbAmount = fnbAmount
	p.TaxAmount = taxAmount
	p.TotalAmount = tableAmount.Add(fnbAmount)
}
