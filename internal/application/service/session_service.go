package service

import (
	"context"
	"strings"

	"github.com/chalkboard-id/chalkboard-api/internal/domain/billing"
	"github.com/chalkboard-id/chalkboard-api/internal/domain/entity"
	"github.com/chalkboard-id/chalkboard-api/internal/domain/enum"
	"github.com/chalkboard-id/chalkboard-api/internal/domain/repository"
	"github.com/chalkboard-id/chalkboard-api/pkg/apperror"
	"github.com/chalkboard-id/chalkboard-api/pkg/pagination"
	"github.com/google/uuid"
)

// SessionService manages the table session lifecycle: start, move, duration
// adjustments and cancellation. Ending a session is billing and lives in
// BillingService.
type SessionService struct {
	transactor  repository.Transactor
	sessionRepo repository.SessionRepository
	tableRepo   repository.TableRepository
	orderRepo   repository.FnbOrderRepository
	staffRepo   repository.StaffRepository
	pricing     *PricingService
}

// NewSessionService creates a new session service
func NewSessionService(
	transactor repository.Transactor,
	sessionRepo repository.SessionRepository,
	tableRepo repository.TableRepository,
	orderRepo repository.FnbOrderRepository,
	staffRepo repository.StaffRepository,
	pricing *PricingService,
) *SessionService {
	return &SessionService{
		transactor:  transactor,
		sessionRepo: sessionRepo,
		tableRepo:   tableRepo,
		orderRepo:   orderRepo,
		staffRepo:   staffRepo,
		pricing:     pricing,
	}
}

// StartSessionInput represents the start session input
type StartSessionInput struct {
	TableID          uuid.UUID
	CustomerName     string
	CustomerPhone    *string
	Mode             enum.SessionMode
	PlannedDuration  *int
	PricingPackageID uuid.UUID
	StaffID          *uuid.UUID
	Notes            *string
}

// StartSession occupies an available table and opens an active session on it
func (s *SessionService) StartSession(ctx context.Context, input *StartSessionInput) (*entity.TableSession, error) {
	var fieldErrors []apperror.FieldError
	if input.TableID == uuid.Nil {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "table_id", Message: "table_id is required"})
	}
	if strings.TrimSpace(input.CustomerName) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "customer_name", Message: "customer_name is required"})
	}
	if input.PricingPackageID == uuid.Nil {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "pricing_package_id", Message: "pricing_package_id is required"})
	}
	if !input.Mode.IsValid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "mode", Message: "mode must be open or planned"})
	}
	if input.Mode == enum.SessionModePlanned && (input.PlannedDuration == nil || *input.PlannedDuration < 0) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "planned_duration", Message: "planned_duration is required for planned sessions"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	mode, err := s.pricing.ResolveBillingMode(ctx, input.PricingPackageID)
	if err != nil {
		return nil, err
	}

	table, err := s.tableRepo.GetByID(ctx, input.TableID)
	if err != nil {
		return nil, err
	}
	if table == nil || !table.IsActive {
		return nil, apperror.NewNotFoundError("Table")
	}
	if !table.IsAvailable() {
		return nil, apperror.NewStateConflictError("Table %s is not available", table.Name)
	}

	if err := ensureStaff(ctx, s.staffRepo, input.StaffID); err != nil {
		return nil, err
	}

	planned := 0
	if input.Mode == enum.SessionModePlanned {
		planned = *input.PlannedDuration
	}

	session := &entity.TableSession{
		TableID:          table.ID,
		CustomerName:     strings.TrimSpace(input.CustomerName),
		CustomerPhone:    trimmedOrNil(input.CustomerPhone),
		StartTime:        timeNow(),
		PlannedDuration:  planned,
		DurationType:     mode.Mode,
		PricingPackageID: &mode.Package.ID,
		Status:           enum.SessionStatusActive,
		StaffID:          input.StaffID,
		Notes:            trimmedOrNil(input.Notes),
	}

	err = s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		occupied, err := s.tableRepo.MarkOccupied(txCtx, table.ID)
		if err != nil {
			return err
		}
		if !occupied {
			return apperror.NewStateConflictError("Table %s is not available", table.Name)
		}
		return s.sessionRepo.Create(txCtx, session)
	})
	if err != nil {
		return nil, err
	}

	return s.sessionRepo.GetByID(ctx, session.ID)
}

// MoveTable moves an active session to another available table, taking the
// table's pending F&B orders along
func (s *SessionService) MoveTable(ctx context.Context, sessionID, newTableID uuid.UUID) (*entity.TableSession, error) {
	if newTableID == uuid.Nil {
		return nil, apperror.NewBadRequestError("new_table_id is required")
	}

	session, err := s.activeSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.TableID == newTableID {
		return nil, apperror.NewBadRequestError("Session is already on this table")
	}

	target, err := s.tableRepo.GetByID(ctx, newTableID)
	if err != nil {
		return nil, err
	}
	if target == nil || !target.IsActive {
		return nil, apperror.NewNotFoundError("Table")
	}
	if !target.IsAvailable() {
		return nil, apperror.NewStateConflictError("Table %s is not available", target.Name)
	}

	oldTableID := session.TableID
	err = s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		occupied, err := s.tableRepo.MarkOccupied(txCtx, newTableID)
		if err != nil {
			return err
		}
		if !occupied {
			return apperror.NewStateConflictError("Table %s is not available", target.Name)
		}

		moved, err := s.sessionRepo.MoveTable(txCtx, sessionID, oldTableID, newTableID)
		if err != nil {
			return err
		}
		if !moved {
			return apperror.NewNotFoundError("Active session")
		}

		if err := s.tableRepo.Release(txCtx, oldTableID); err != nil {
			return err
		}
		_, err = s.orderRepo.RepointPendingTable(txCtx, oldTableID, newTableID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return s.sessionRepo.GetByID(ctx, sessionID)
}

// UpdateDuration overrides the billed duration of an active session. The
// elapsed time at the first override is kept as original_duration.
func (s *SessionService) UpdateDuration(ctx context.Context, sessionID uuid.UUID, durationType enum.DurationType, actualDuration int) (*entity.TableSession, error) {
	if !durationType.IsValid() {
		return nil, apperror.NewBadRequestError("duration_type must be hourly or per_minute")
	}
	if actualDuration < 0 {
		return nil, apperror.NewBadRequestError("actual_duration must not be negative")
	}

	session, err := s.activeSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	elapsed := billing.ElapsedMinutes(session.StartTime, timeNow())
	err = s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.sessionRepo.SetOriginalDurationIfUnset(txCtx, sessionID, elapsed); err != nil {
			return err
		}
		updated, err := s.sessionRepo.UpdateDuration(txCtx, sessionID, durationType, actualDuration)
		if err != nil {
			return err
		}
		if !updated {
			return apperror.NewNotFoundError("Active session")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.sessionRepo.GetByID(ctx, sessionID)
}

// CancelSession ends an active session without billing and frees the table.
// Pending orders stay attached to the cancelled session.
func (s *SessionService) CancelSession(ctx context.Context, sessionID uuid.UUID, reason *string) (*entity.TableSession, error) {
	session, err := s.activeSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	err = s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		cancelled, err := s.sessionRepo.Cancel(txCtx, sessionID, timeNow(), trimmedOrNil(reason))
		if err != nil {
			return err
		}
		if !cancelled {
			return apperror.NewNotFoundError("Active session")
		}
		return s.tableRepo.Release(txCtx, session.TableID)
	})
	if err != nil {
		return nil, err
	}

	return s.sessionRepo.GetByID(ctx, sessionID)
}

// RateSession records the customer's 1-5 rating of a completed session
func (s *SessionService) RateSession(ctx context.Context, sessionID uuid.UUID, rating int) (*entity.TableSession, error) {
	if rating < 1 || rating > 5 {
		return nil, apperror.NewBadRequestError("rating must be between 1 and 5")
	}

	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	rated, err := s.sessionRepo.SetRating(ctx, sessionID, rating)
	if err != nil {
		return nil, err
	}
	if !rated {
		return nil, apperror.NewStateConflictError("Only completed sessions can be rated, session is %s", session.Status)
	}

	return s.sessionRepo.GetByID(ctx, sessionID)
}

// GetSession retrieves a session by ID
func (s *SessionService) GetSession(ctx context.Context, id uuid.UUID) (*entity.TableSession, error) {
	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NewNotFoundError("Session")
	}
	return session, nil
}

// ListActiveSessions lists running sessions, oldest first
func (s *SessionService) ListActiveSessions(ctx context.Context) ([]entity.TableSession, error) {
	return s.sessionRepo.ListActive(ctx)
}

// ListSessions lists sessions with pagination
func (s *SessionService) ListSessions(ctx context.Context, params *repository.SessionFilterParams) (*pagination.PaginatedResult[entity.TableSession], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	sessions, total, err := s.sessionRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	p := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(sessions, p), nil
}

// activeSession loads a session and requires it to be active
func (s *SessionService) activeSession(ctx context.Context, id uuid.UUID) (*entity.TableSession, error) {
	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil || !session.IsActive() {
		return nil, apperror.NewNotFoundError("Active session")
	}
	return session, nil
}
