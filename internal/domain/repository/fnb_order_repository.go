package repository

import (
	"context"

	"github.com/chalkboard-id/chalkboard-api/internal/domain/entity"
	"github.com/chalkboard-id/chalkboard-api/internal/domain/enum"
	"github.com/chalkboard-id/chalkboard-api/pkg/pagination"
	"github.com/google/uuid"
)

// FnbOrderRepository defines the interface for F&B order data operations.
// Status changes are conditional on the current status and report whether
// the row was still in the expected state.
type FnbOrderRepository interface {
	// Create inserts the order together with its items
	Create(ctx context.Context, order *entity.FnbOrder) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.FnbOrder, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.FnbOrder, error)
	List(ctx context.Context, params *FnbOrderFilterParams) ([]entity.FnbOrder, int64, error)
	// ListDrafts searches draft orders by customer name or order number
	// (case-insensitive) and exact customer phone
	ListDrafts(ctx context.Context, search, customerPhone string) ([]entity.FnbOrder, error)
	ListPendingBySession(ctx context.Context, sessionID uuid.UUID) ([]entity.FnbOrder, error)
	ListByPayment(ctx context.Context, paymentID uuid.UUID) ([]entity.FnbOrder, error)

	// UpdateDraft writes customer, notes and totals of a draft order
	UpdateDraft(ctx context.Context, order *entity.FnbOrder) (bool, error)
	ReplaceItems(ctx context.Context, orderID uuid.UUID, items []entity.FnbOrderItem) error
	CancelDraft(ctx context.Context, id uuid.UUID) (bool, error)
	// AssignToTable moves a draft order to pending on the table's session
	AssignToTable(ctx context.Context, id, tableID, sessionID uuid.UUID, staffID *uuid.UUID) (bool, error)
	// AssignToPayment moves a draft order straight to billed on a payment
	AssignToPayment(ctx context.Context, id, paymentID uuid.UUID, staffID *uuid.UUID) (bool, error)
	// BillPending moves the given pending orders to billed on a payment
	BillPending(ctx context.Context, ids []uuid.UUID, paymentID uuid.UUID) (int64, error)
	// RepointPendingTable moves pending orders from one table to another
	RepointPendingTable(ctx context.Context, fromTableID, toTableID uuid.UUID) (int64, error)
	UpdateStatusByPayment(ctx context.Context, paymentID uuid.UUID, status enum.FnbOrderStatus) (int64, error)
}

// FnbOrderFilterParams contains filtering parameters for order queries
type FnbOrderFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.FnbOrderStatus
	TableID    *uuid.UUID
	SessionID  *uuid.UUID
	PaymentID  *uuid.UUID
}
