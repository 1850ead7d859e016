package service

import (
	"context"
	"time"

	"github.com/chalkboard-id/chalkboard-api/internal/domain/billing"
	"github.com/chalkboard-id/chalkboard-api/internal/domain/entity"
	"github.com/chalkboard-id/chalkboard-api/internal/domain/enum"
	"github.com/chalkboard-id/chalkboard-api/internal/domain/repository"
	"github.com/chalkboard-id/chalkboard-api/pkg/apperror"
	"github.com/chalkboard-id/chalkboard-api/pkg/logger"
	"github.com/chalkboard-id/chalkboard-api/pkg/pagination"
	"github.com/chalkboard-id/chalkboard-api/pkg/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// BillingService reconciles table time and F&B orders into payments
type BillingService struct {
	transactor  repository.Transactor
	sessionRepo repository.SessionRepository
	tableRepo   repository.TableRepository
	orderRepo   repository.FnbOrderRepository
	paymentRepo repository.PaymentRepository
	staffRepo   repository.StaffRepository
	taxRepo     repository.TaxSettingsRepository
	pricing     *PricingService
}

// NewBillingService creates a new billing service
func NewBillingService(
	transactor repository.Transactor,
	sessionRepo repository.SessionRepository,
	tableRepo repository.TableRepository,
	orderRepo repository.FnbOrderRepository,
	paymentRepo repository.PaymentRepository,
	staffRepo repository.StaffRepository,
	taxRepo repository.TaxSettingsRepository,
	pricing *PricingService,
) *BillingService {
	return &BillingService{
		transactor:  transactor,
		sessionRepo: sessionRepo,
		tableRepo:   tableRepo,
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		staffRepo:   staffRepo,
		taxRepo:     taxRepo,
		pricing:     pricing,
	}
}

// EndSessionResult is the completed session with its payment
type EndSessionResult struct {
	Session   *entity.TableSession `json:"session"`
	Payment   *entity.Payment      `json:"payment"`
	Breakdown billing.Breakdown    `json:"breakdown"`
}

// RecalculateResult is a re-billed session with its new breakdown
type RecalculateResult struct {
	Session   *entity.TableSession `json:"session"`
	Breakdown billing.Breakdown    `json:"breakdown"`
}

// PaymentDetail is a payment with the orders and session it settles
type PaymentDetail struct {
	*entity.Payment
	Orders  []entity.FnbOrder    `json:"orders"`
	Session *entity.TableSession `json:"session,omitempty"`
}

// EndSession closes an active session: the table charge and the session's
// pending orders are written to a pending payment, the orders become billed
// and the table is released.
func (s *BillingService) EndSession(ctx context.Context, sessionID uuid.UUID, staffID *uuid.UUID) (*EndSessionResult, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil || !session.IsActive() {
		return nil, apperror.NewNotFoundError("Active session")
	}
	if err := ensureStaff(ctx, s.staffRepo, staffID); err != nil {
		return nil, err
	}

	rateCard, err := s.pricing.SessionRateCard(ctx, session)
	if err != nil {
		return nil, err
	}
	tax, err := s.taxRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	now := timeNow()
	minutes := billing.ElapsedMinutes(session.StartTime, now)
	if session.ActualDuration != nil {
		minutes = *session.ActualDuration
	}

	attributedStaff := staffID
	if attributedStaff == nil {
		attributedStaff = session.StaffID
	}

	var (
		payment   *entity.Payment
		breakdown billing.Breakdown
	)
	err = s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		var err error
		if payment, err = s.preparePayment(txCtx, session, attributedStaff, now); err != nil {
			return err
		}
		isNew := payment.CreatedAt.IsZero()
		if isNew {
			payment.ID = uuid.New()
		}

		// Completing first takes the session row, so an order assigned to the
		// table concurrently is either listed below or refused.
		completed, err := s.sessionRepo.Complete(txCtx, &repository.CompleteSessionParams{
			ID:             sessionID,
			EndTime:        now,
			ActualDuration: minutes,
			TotalCost:      decimal.Zero,
			PaymentID:      payment.ID,
			StaffID:        staffID,
		})
		if err != nil {
			return err
		}
		if !completed {
			return apperror.NewNotFoundError("Active session")
		}

		pending, err := s.orderRepo.ListPendingBySession(txCtx, sessionID)
		if err != nil {
			return err
		}
		var attached []entity.FnbOrder
		if session.PaymentID != nil {
			if attached, err = s.orderRepo.ListByPayment(txCtx, *session.PaymentID); err != nil {
				return err
			}
		}

		fnbTotal, fnbTax := sumOrders(append(pending, attached...))
		breakdown = billing.Reconcile(minutes, session.DurationType, rateCard, *tax, fnbTotal, fnbTax)

		payment.SetAmounts(breakdown.TableAmount, breakdown.FnbAmount, breakdown.TaxAmount)
		if isNew {
			err = s.paymentRepo.Create(txCtx, payment)
		} else {
			err = s.paymentRepo.UpdateAmounts(txCtx, payment)
		}
		if err != nil {
			return err
		}

		if _, err := s.sessionRepo.UpdateBilling(txCtx, sessionID, session.DurationType, minutes, breakdown.TotalAmount); err != nil {
			return err
		}

		billed, err := s.orderRepo.BillPending(txCtx, orderIDs(pending), payment.ID)
		if err != nil {
			return err
		}
		if billed != int64(len(pending)) {
			return apperror.NewStateConflictError("Orders of session %s changed while it was ending", sessionID)
		}
		return s.tableRepo.Release(txCtx, session.TableID)
	})
	if err != nil {
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"session_id":         sessionID,
		"payment_id":         payment.ID,
		"transaction_number": payment.TransactionNumber,
		"minutes":            minutes,
		"total_amount":       payment.TotalAmount.String(),
	}).Info("Session ended")

	completedSession, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &EndSessionResult{Session: completedSession, Payment: payment, Breakdown: breakdown}, nil
}

// preparePayment returns the payment already linked to the session, reset
// to pending, or a new unsaved one
func (s *BillingService) preparePayment(ctx context.Context, session *entity.TableSession, staffID *uuid.UUID, now time.Time) (*entity.Payment, error) {
	if session.PaymentID != nil {
		payment, err := s.paymentRepo.GetByID(ctx, *session.PaymentID)
		if err != nil {
			return nil, err
		}
		if payment != nil {
			payment.Status = enum.PaymentStatusPending
			if staffID != nil {
				payment.StaffID = staffID
			}
			return payment, nil
		}
	}

	return &entity.Payment{
		TransactionNumber: utils.GenerateTransactionNumber(now),
		CustomerName:      &session.CustomerName,
		CustomerPhone:     session.CustomerPhone,
		StaffID:           staffID,
		Status:            enum.PaymentStatusPending,
	}, nil
}

// RecalculateBilling re-prices a completed session with a corrected
// duration and mode and rewrites its payment amounts
func (s *BillingService) RecalculateBilling(ctx context.Context, sessionID uuid.UUID, actualDuration int, durationType enum.DurationType) (*RecalculateResult, error) {
	if !durationType.IsValid() {
		return nil, apperror.NewBadRequestError("duration_type must be hourly or per_minute")
	}
	if actualDuration < 0 {
		return nil, apperror.NewBadRequestError("actual_duration must not be negative")
	}

	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil || session.Status != enum.SessionStatusCompleted {
		return nil, apperror.NewNotFoundError("Completed session")
	}

	rateCard, err := s.pricing.SessionRateCard(ctx, session)
	if err != nil {
		return nil, err
	}
	tax, err := s.taxRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	var breakdown billing.Breakdown
	err = s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		var orders []entity.FnbOrder
		if session.PaymentID != nil {
			attached, err := s.orderRepo.ListByPayment(txCtx, *session.PaymentID)
			if err != nil {
				return err
			}
			orders = attached
		}

		fnbTotal, fnbTax := sumOrders(orders)
		breakdown = billing.Reconcile(actualDuration, durationType, rateCard, *tax, fnbTotal, fnbTax)

		updated, err := s.sessionRepo.UpdateBilling(txCtx, sessionID, durationType, actualDuration, breakdown.TotalAmount)
		if err != nil {
			return err
		}
		if !updated {
			return apperror.NewNotFoundError("Completed session")
		}

		if session.PaymentID == nil {
			return nil
		}
		payment, err := s.paymentRepo.GetByID(txCtx, *session.PaymentID)
		if err != nil {
			return err
		}
		if payment == nil {
			return nil
		}
		payment.SetAmounts(breakdown.TableAmount, breakdown.FnbAmount, breakdown.TaxAmount)
		return s.paymentRepo.UpdateAmounts(txCtx, payment)
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &RecalculateResult{Session: updated, Breakdown: breakdown}, nil
}

// UpdatePaymentStatusInput represents a payment status change
type UpdatePaymentStatusInput struct {
	Status         enum.PaymentStatus
	PaymentMethods []entity.PaymentMethod
	Notes          *string
}

// UpdatePaymentStatus moves a payment through its state machine and carries
// the attached orders along: success marks them paid, anything else billed.
// Stock is never restored.
func (s *BillingService) UpdatePaymentStatus(ctx context.Context, paymentID uuid.UUID, input *UpdatePaymentStatusInput) (*PaymentDetail, error) {
	if !input.Status.IsValid() {
		return nil, apperror.NewBadRequestError("status must be one of pending, success, failed, cancelled")
	}

	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperror.NewNotFoundError("Payment")
	}

	if payment.Status == input.Status {
		return s.GetPayment(ctx, paymentID)
	}
	if !payment.Status.CanTransitionTo(input.Status) {
		return nil, apperror.NewStateConflictError("Payment cannot change from %s to %s", payment.Status, input.Status)
	}

	from := payment.Status
	payment.Status = input.Status
	if input.PaymentMethods != nil {
		payment.PaymentMethods = input.PaymentMethods
	}
	if notes := trimmedOrNil(input.Notes); notes != nil {
		payment.Notes = notes
	}
	if input.Status == enum.PaymentStatusSuccess {
		now := timeNow()
		payment.PaidAt = &now
	} else {
		payment.PaidAt = nil
	}

	err = s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		updated, err := s.paymentRepo.UpdateStatus(txCtx, payment, from)
		if err != nil {
			return err
		}
		if !updated {
			return apperror.NewStateConflictError("Payment status changed concurrently")
		}
		_, err = s.orderRepo.UpdateStatusByPayment(txCtx, paymentID, input.Status.OrderStatus())
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"payment_id": paymentID,
		"from":       from,
		"to":         input.Status,
	}).Info("Payment status updated")

	return s.GetPayment(ctx, paymentID)
}

// GetPayment retrieves a payment with its orders and session
func (s *BillingService) GetPayment(ctx context.Context, id uuid.UUID) (*PaymentDetail, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperror.NewNotFoundError("Payment")
	}

	orders, err := s.orderRepo.ListByPayment(ctx, id)
	if err != nil {
		return nil, err
	}
	session, err := s.sessionRepo.GetByPaymentID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &PaymentDetail{Payment: payment, Orders: orders, Session: session}, nil
}

// ListPayments lists payments with pagination
func (s *BillingService) ListPayments(ctx context.Context, params *repository.PaymentFilterParams) (*pagination.PaginatedResult[entity.Payment], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	payments, total, err := s.paymentRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	p := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(payments, p), nil
}
