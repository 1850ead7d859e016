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

// SessionRepository defines the interface for table session data operations.
// Methods returning a bool apply only while the session is still in the
// expected status and report whether a row changed.
type SessionRepository interface {
	Create(ctx context.Context, session *entity.TableSession) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.TableSession, error)
	GetActiveByTable(ctx context.Context, tableID uuid.UUID) (*entity.TableSession, error)
	GetByPaymentID(ctx context.Context, paymentID uuid.UUID) (*entity.TableSession, error)
	List(ctx context.Context, params *SessionFilterParams) ([]entity.TableSession, int64, error)
	ListActive(ctx context.Context) ([]entity.TableSession, error)

	MoveTable(ctx context.Context, id, fromTableID, toTableID uuid.UUID) (bool, error)
	// SetOriginalDurationIfUnset writes original_duration only when it is still null
	SetOriginalDurationIfUnset(ctx context.Context, id uuid.UUID, minutes int) error
	UpdateDuration(ctx context.Context, id uuid.UUID, durationType enum.DurationType, actualDuration int) (bool, error)
	Complete(ctx context.Context, params *CompleteSessionParams) (bool, error)
	Cancel(ctx context.Context, id uuid.UUID, endTime time.Time, notes *string) (bool, error)
	// UpdateBilling rewrites duration and total cost of a completed session
	UpdateBilling(ctx context.Context, id uuid.UUID, durationType enum.DurationType, actualDuration int, totalCost decimal.Decimal) (bool, error)
	SetRating(ctx context.Context, id uuid.UUID, rating int) (bool, error)
	IncrementFnbOrderCount(ctx context.Context, id uuid.UUID) (bool, error)
}

// CompleteSessionParams carries the columns written when a session ends
type CompleteSessionParams struct {
	ID             uuid.UUID
	EndTime        time.Time
	ActualDuration int
	TotalCost      decimal.Decimal
	PaymentID      uuid.UUID
	StaffID        *uuid.UUID
}

// SessionFilterParams contains filtering parameters for session queries
type SessionFilterParams struct {
	Pagination *pagination.PaginationParams
	Status     *enum.SessionStatus
	TableID    *uuid.UUID
	Search     string
	StartDate  *time.Time
	EndDate    *time.Time
}
