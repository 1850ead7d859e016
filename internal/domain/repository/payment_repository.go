package repository

import (
	"context"
	"time"

	"github.com/chalkboard-id/chalkboard-api/internal/domain/entity"
	"github.com/chalkboard-id/chalkboard-api/internal/domain/enum"
	"github.com/chalkboard-id/chalkboard-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentRepository defines the interface for payment data operations
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	List(ctx context.Context, params *PaymentFilterParams) ([]entity.Payment, int64, error)
	// UpdateAmounts writes the money columns and status of a payment
	UpdateAmounts(ctx context.Context, payment *entity.Payment) error
	// UpdateStatus writes status, methods, paid_at and notes if the stored
	// status still equals from
	UpdateStatus(ctx context.Context, payment *entity.Payment, from enum.PaymentStatus) (bool, error)
	// AddFnbAmount adds an order to a pending payment in one UPDATE:
	// fnb_amount and total_amount grow by total, tax_amount by tax
	AddFnbAmount(ctx context.Context, id uuid.UUID, total, tax decimal.Decimal) (bool, error)
}

// PaymentFilterParams contains filtering parameters for payment queries
type PaymentFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.PaymentStatus
	StartDate  *time.Time
	EndDate    *time.Time
}
