package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/chalkboard-id/chalkboard-api/internal/domain/billing"
	"github.com/chalkboard-id/chalkboard-api/internal/domain/entity"
	"github.com/chalkboard-id/chalkboard-api/internal/domain/enum"
	"github.com/chalkboard-id/chalkboard-api/internal/domain/repository"
	"github.com/chalkboard-id/chalkboard-api/pkg/apperror"
	"github.com/chalkboard-id/chalkboard-api/pkg/pagination"
	"github.com/chalkboard-id/chalkboard-api/pkg/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FnbOrderService handles F&B orders and their attachment to table
// sessions and pending payments
type FnbOrderService struct {
	transactor  repository.Transactor
	orderRepo   repository.FnbOrderRepository
	itemRepo    repository.FnbItemRepository
	sessionRepo repository.SessionRepository
	paymentRepo repository.PaymentRepository
	staffRepo   repository.StaffRepository
	taxRepo     repository.TaxSettingsRepository
}

// NewFnbOrderService creates a new F&B order service
func NewFnbOrderService(
	transactor repository.Transactor,
	orderRepo repository.FnbOrderRepository,
	itemRepo repository.FnbItemRepository,
	sessionRepo repository.SessionRepository,
	paymentRepo repository.PaymentRepository,
	staffRepo repository.StaffRepository,
	taxRepo repository.TaxSettingsRepository,
) *FnbOrderService {
	return &FnbOrderService{
		transactor:  transactor,
		orderRepo:   orderRepo,
		itemRepo:    itemRepo,
		sessionRepo: sessionRepo,
		paymentRepo: paymentRepo,
		staffRepo:   staffRepo,
		taxRepo:     taxRepo,
	}
}

// OrderLineInput represents an item in an order
type OrderLineInput struct {
	ItemID   uuid.UUID
	Quantity int
	Notes    *string
}

// CreateOrderInput represents the create order input. Without a table the
// order is saved as a draft.
type CreateOrderInput struct {
	Items         []OrderLineInput
	CustomerName  *string
	CustomerPhone *string
	TableID       *uuid.UUID
	StaffID       *uuid.UUID
	Notes         *string
}

// UpdateDraftInput represents the replacement content of a draft order
type UpdateDraftInput struct {
	Items         []OrderLineInput
	CustomerName  *string
	CustomerPhone *string
	Notes         *string
}

// CheckoutDraftsInput merges draft orders into one F&B-only payment
type CheckoutDraftsInput struct {
	OrderIDs       []uuid.UUID
	CustomerName   *string
	CustomerPhone  *string
	StaffID        *uuid.UUID
	PaymentMethods []entity.PaymentMethod
	Notes          *string
}

// CreateOrder prices the lines and stores the order. With a table the order
// is attached to the table's active session straight away.
func (s *FnbOrderService) CreateOrder(ctx context.Context, input *CreateOrderInput) (*entity.FnbOrder, error) {
	if err := ensureStaff(ctx, s.staffRepo, input.StaffID); err != nil {
		return nil, err
	}

	lines, subtotal, err := s.buildLines(ctx, input.Items)
	if err != nil {
		return nil, err
	}
	tax, err := s.taxRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	order := &entity.FnbOrder{
		OrderNumber:   utils.GenerateOrderNumber(timeNow()),
		CustomerName:  trimmedOrNil(input.CustomerName),
		CustomerPhone: trimmedOrNil(input.CustomerPhone),
		Status:        enum.FnbOrderStatusDraft,
		StaffID:       input.StaffID,
		Notes:         trimmedOrNil(input.Notes),
		Items:         lines,
	}
	applyTotals(order, subtotal, *tax)

	if input.TableID == nil {
		if err := s.orderRepo.Create(ctx, order); err != nil {
			return nil, err
		}
		return s.orderRepo.GetByID(ctx, order.ID)
	}

	session, err := s.activeSessionForTable(ctx, *input.TableID)
	if err != nil {
		return nil, err
	}

	err = s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.orderRepo.Create(txCtx, order); err != nil {
			return err
		}
		return s.attachToSession(txCtx, order, session, input.StaffID)
	})
	if err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(ctx, order.ID)
}

// UpdateDraft replaces the lines of a draft order and reprices it
func (s *FnbOrderService) UpdateDraft(ctx context.Context, orderID uuid.UUID, input *UpdateDraftInput) (*entity.FnbOrder, error) {
	order, err := s.draftOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	lines, subtotal, err := s.buildLines(ctx, input.Items)
	if err != nil {
		return nil, err
	}
	tax, err := s.taxRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	order.CustomerName = trimmedOrNil(input.CustomerName)
	order.CustomerPhone = trimmedOrNil(input.CustomerPhone)
	order.Notes = trimmedOrNil(input.Notes)
	applyTotals(order, subtotal, *tax)

	err = s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		updated, err := s.orderRepo.UpdateDraft(txCtx, order)
		if err != nil {
			return err
		}
		if !updated {
			return apperror.NewNotFoundError("Draft order")
		}
		return s.orderRepo.ReplaceItems(txCtx, order.ID, lines)
	})
	if err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(ctx, orderID)
}

// CancelDraft cancels a draft order. Drafts never touched stock so nothing
// is restored.
func (s *FnbOrderService) CancelDraft(ctx context.Context, orderID uuid.UUID) (*entity.FnbOrder, error) {
	cancelled, err := s.orderRepo.CancelDraft(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !cancelled {
		return nil, apperror.NewNotFoundError("Draft order")
	}
	return s.orderRepo.GetByID(ctx, orderID)
}

// AssignToTable attaches a draft order to the active session on a table:
// the order becomes pending, stock is taken and the session's order count
// grows
func (s *FnbOrderService) AssignToTable(ctx context.Context, orderID, tableID uuid.UUID, staffID *uuid.UUID) (*entity.FnbOrder, error) {
	if tableID == uuid.Nil {
		return nil, apperror.NewBadRequestError("table_id is required")
	}

	order, err := s.draftOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	session, err := s.activeSessionForTable(ctx, tableID)
	if err != nil {
		return nil, err
	}
	if err := ensureStaff(ctx, s.staffRepo, staffID); err != nil {
		return nil, err
	}

	err = s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		return s.attachToSession(txCtx, order, session, staffID)
	})
	if err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(ctx, orderID)
}

// AssignToPendingTransaction adds a draft order to a payment that is still
// pending: the order is billed on it and the payment amounts grow in one
// statement
func (s *FnbOrderService) AssignToPendingTransaction(ctx context.Context, orderID, paymentID uuid.UUID, staffID *uuid.UUID) (*entity.FnbOrder, error) {
	if paymentID == uuid.Nil {
		return nil, apperror.NewBadRequestError("transaction_id is required")
	}

	order, err := s.draftOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil || payment.Status != enum.PaymentStatusPending {
		return nil, apperror.NewNotFoundError("Pending transaction")
	}
	if err := ensureStaff(ctx, s.staffRepo, staffID); err != nil {
		return nil, err
	}

	err = s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.billOnPayment(txCtx, order, paymentID, staffID); err != nil {
			return err
		}
		added, err := s.paymentRepo.AddFnbAmount(txCtx, paymentID, order.Total, order.Tax)
		if err != nil {
			return err
		}
		if !added {
			return apperror.NewNotFoundError("Pending transaction")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(ctx, orderID)
}

// CheckoutDrafts merges draft orders into a single pending F&B-only payment
func (s *FnbOrderService) CheckoutDrafts(ctx context.Context, input *CheckoutDraftsInput) (*PaymentDetail, error) {
	ids := uniqueIDs(input.OrderIDs)
	if len(ids) == 0 {
		return nil, apperror.NewBadRequestError("order_ids is required")
	}
	if err := ensureStaff(ctx, s.staffRepo, input.StaffID); err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(orders) != len(ids) {
		return nil, apperror.NewNotFoundError("Draft order")
	}
	for _, o := range orders {
		if o.Status != enum.FnbOrderStatusDraft {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Draft order %s", o.OrderNumber))
		}
	}

	fnbTotal, fnbTax := sumOrders(orders)
	customerName := trimmedOrNil(input.CustomerName)
	if customerName == nil {
		customerName = orders[0].CustomerName
	}
	customerPhone := trimmedOrNil(input.CustomerPhone)
	if customerPhone == nil {
		customerPhone = orders[0].CustomerPhone
	}

	payment := &entity.Payment{
		TransactionNumber: utils.GenerateTransactionNumber(timeNow()),
		CustomerName:      customerName,
		CustomerPhone:     customerPhone,
		StaffID:           input.StaffID,
		Status:            enum.PaymentStatusPending,
		PaymentMethods:    input.PaymentMethods,
		Notes:             trimmedOrNil(input.Notes),
	}
	payment.SetAmounts(decimal.Zero, fnbTotal, fnbTax)

	err = s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.paymentRepo.Create(txCtx, payment); err != nil {
			return err
		}
		for i := range orders {
			if err := s.billOnPayment(txCtx, &orders[i], payment.ID, input.StaffID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	billed, err := s.orderRepo.ListByPayment(ctx, payment.ID)
	if err != nil {
		return nil, err
	}
	return &PaymentDetail{Payment: payment, Orders: billed}, nil
}

// ListDrafts lists draft orders, searching customer name and order number
// case-insensitively and matching the phone exactly
func (s *FnbOrderService) ListDrafts(ctx context.Context, search, customerPhone string) ([]entity.FnbOrder, error) {
	return s.orderRepo.ListDrafts(ctx, strings.TrimSpace(search), strings.TrimSpace(customerPhone))
}

// GetOrder retrieves an order by ID
func (s *FnbOrderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.FnbOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// ListOrders lists orders with pagination
func (s *FnbOrderService) ListOrders(ctx context.Context, params *repository.FnbOrderFilterParams) (*pagination.PaginatedResult[entity.FnbOrder], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	p := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, p), nil
}

// attachToSession moves a draft order to pending on the session and takes
// its stock. Must run inside a transaction.
func (s *FnbOrderService) attachToSession(ctx context.Context, order *entity.FnbOrder, session *entity.TableSession, staffID *uuid.UUID) error {
	// Touching the session row first serializes this with EndSession.
	counted, err := s.sessionRepo.IncrementFnbOrderCount(ctx, session.ID)
	if err != nil {
		return err
	}
	if !counted {
		return apperror.NewNotFoundError("Active session for table")
	}

	assigned, err := s.orderRepo.AssignToTable(ctx, order.ID, session.TableID, session.ID, staffID)
	if err != nil {
		return err
	}
	if !assigned {
		return apperror.NewNotFoundError("Draft order")
	}
	return s.takeStock(ctx, order, enum.FnbOrderStatusPending)
}

// billOnPayment moves a draft order to billed on a payment and takes its
// stock. Must run inside a transaction.
func (s *FnbOrderService) billOnPayment(ctx context.Context, order *entity.FnbOrder, paymentID uuid.UUID, staffID *uuid.UUID) error {
	assigned, err := s.orderRepo.AssignToPayment(ctx, order.ID, paymentID, staffID)
	if err != nil {
		return err
	}
	if !assigned {
		return apperror.NewNotFoundError("Draft order")
	}
	return s.takeStock(ctx, order, enum.FnbOrderStatusBilled)
}

// takeStock decrements stock the first time order enters a status that
// commits it
func (s *FnbOrderService) takeStock(ctx context.Context, order *entity.FnbOrder, next enum.FnbOrderStatus) error {
	if order.Status.CommitsStock() || !next.CommitsStock() {
		return nil
	}
	return s.decrementStock(ctx, order)
}

func (s *FnbOrderService) decrementStock(ctx context.Context, order *entity.FnbOrder) error {
	decrements := order.StockDecrements()
	for _, id := range sortedIDs(decrements) {
		if err := s.itemRepo.DecrementStock(ctx, id, decrements[id]); err != nil {
			return err
		}
	}
	return nil
}

// buildLines resolves menu items and snapshots their current prices
func (s *FnbOrderService) buildLines(ctx context.Context, inputs []OrderLineInput) ([]entity.FnbOrderItem, decimal.Decimal, error) {
	if len(inputs) == 0 {
		return nil, decimal.Zero, apperror.NewBadRequestError("Order must contain at least one item")
	}

	var fieldErrors []apperror.FieldError
	ids := make([]uuid.UUID, 0, len(inputs))
	for i, line := range inputs {
		if line.Quantity <= 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   fmt.Sprintf("items[%d].quantity", i),
				Message: "quantity must be greater than zero",
			})
		}
		ids = append(ids, line.ItemID)
	}
	if len(fieldErrors) > 0 {
		return nil, decimal.Zero, apperror.NewValidationError(fieldErrors)
	}

	// Batch fetch all items in one query
	items, err := s.itemRepo.GetByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, decimal.Zero, err
	}
	itemMap := make(map[uuid.UUID]*entity.FnbItem, len(items))
	for i := range items {
		itemMap[items[i].ID] = &items[i]
	}

	subtotal := decimal.Zero
	lines := make([]entity.FnbOrderItem, 0, len(inputs))
	for _, line := range inputs {
		item, ok := itemMap[line.ItemID]
		if !ok || !item.IsActive {
			return nil, decimal.Zero, apperror.NewNotFoundError(fmt.Sprintf("F&B item %s", line.ItemID))
		}

		lineTotal := item.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		subtotal = subtotal.Add(lineTotal)
		lines = append(lines, entity.FnbOrderItem{
			ItemID:    item.ID,
			Quantity:  line.Quantity,
			UnitPrice: item.Price,
			Subtotal:  lineTotal,
			Notes:     trimmedOrNil(line.Notes),
		})
	}
	return lines, subtotal, nil
}

func (s *FnbOrderService) draftOrder(ctx context.Context, id uuid.UUID) (*entity.FnbOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil || order.Status != enum.FnbOrderStatusDraft {
		return nil, apperror.NewNotFoundError("Draft order")
	}
	return order, nil
}

func (s *FnbOrderService) activeSessionForTable(ctx context.Context, tableID uuid.UUID) (*entity.TableSession, error) {
	session, err := s.sessionRepo.GetActiveByTable(ctx, tableID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NewNotFoundError("Active session for table")
	}
	return session, nil
}

// applyTotals writes subtotal, F&B tax and total onto the order
func applyTotals(order *entity.FnbOrder, subtotal decimal.Decimal, tax billing.TaxSettings) {
	order.Subtotal = subtotal
	order.Tax = billing.CalculateTax(subtotal, tax, false)
	order.Total = subtotal.Add(order.Tax)
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	unique := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == uuid.Nil {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}
