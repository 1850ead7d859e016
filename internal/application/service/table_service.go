package service

import (
	"context"
	"strings"

	"github.com/chalkboard-id/chalkboard-api/internal/domain/entity"
	"github.com/chalkboard-id/chalkboard-api/internal/domain/enum"
	"github.com/chalkboard-id/chalkboard-api/internal/domain/repository"
	"github.com/chalkboard-id/chalkboard-api/pkg/apperror"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TableService handles billiard table administration
type TableService struct {
	tableRepo   repository.TableRepository
	packageRepo repository.PricingPackageRepository
	sessionRepo repository.SessionRepository
}

// NewTableService creates a new table service
func NewTableService(
	tableRepo repository.TableRepository,
	packageRepo repository.PricingPackageRepository,
	sessionRepo repository.SessionRepository,
) *TableService {
	return &TableService{
		tableRepo:   tableRepo,
		packageRepo: packageRepo,
		sessionRepo: sessionRepo,
	}
}

// TableInput represents the create/update table input
type TableInput struct {
	Name             string
	Description      *string
	HourlyRate       decimal.Decimal
	PerMinuteRate    *decimal.Decimal
	PricingPackageID *uuid.UUID
}

// TableDetail is a table with the session currently running on it
type TableDetail struct {
	*entity.Table
	ActiveSession *entity.TableSession `json:"active_session,omitempty"`
}

func (s *TableService) validate(ctx context.Context, id uuid.UUID, input *TableInput) error {
	var fieldErrors []apperror.FieldError
	if strings.TrimSpace(input.Name) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "name is required"})
	}
	if input.HourlyRate.IsNegative() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "hourly_rate", Message: "hourly_rate must not be negative"})
	}
	if input.PerMinuteRate != nil && input.PerMinuteRate.IsNegative() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "per_minute_rate", Message: "per_minute_rate must not be negative"})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}

	existing, err := s.tableRepo.GetByName(ctx, strings.TrimSpace(input.Name))
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != id {
		return apperror.NewConflictError("Table name already exists")
	}

	if input.PricingPackageID != nil {
		pkg, err := s.packageRepo.GetByID(ctx, *input.PricingPackageID)
		if err != nil {
			return err
		}
		if pkg == nil {
			return apperror.NewNotFoundError("Pricing package")
		}
	}
	return nil
}

// CreateTable creates a new available table
func (s *TableService) CreateTable(ctx context.Context, input *TableInput) (*entity.Table, error) {
	if err := s.validate(ctx, uuid.Nil, input); err != nil {
		return nil, err
	}

	table := &entity.Table{
		Name:             strings.TrimSpace(input.Name),
		Description:      trimmedOrNil(input.Description),
		Status:           enum.TableStatusAvailable,
		HourlyRate:       input.HourlyRate,
		PerMinuteRate:    input.PerMinuteRate,
		PricingPackageID: input.PricingPackageID,
		IsActive:         true,
	}
	if err := s.tableRepo.Create(ctx, table); err != nil {
		return nil, err
	}
	return table, nil
}

// UpdateTable updates a table's name, rates and package
func (s *TableService) UpdateTable(ctx context.Context, id uuid.UUID, input *TableInput) (*entity.Table, error) {
	table, err := s.tableRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, apperror.NewNotFoundError("Table")
	}
	if err := s.validate(ctx, id, input); err != nil {
		return nil, err
	}

	table.Name = strings.TrimSpace(input.Name)
	table.Description = trimmedOrNil(input.Description)
	table.HourlyRate = input.HourlyRate
	table.PerMinuteRate = input.PerMinuteRate
	table.PricingPackageID = input.PricingPackageID
	if err := s.tableRepo.UpdateDetails(ctx, table); err != nil {
		return nil, err
	}
	return s.tableRepo.GetByID(ctx, id)
}

// GetTable returns a table with its active session, if any
func (s *TableService) GetTable(ctx context.Context, id uuid.UUID) (*TableDetail, error) {
	table, err := s.tableRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, apperror.NewNotFoundError("Table")
	}

	session, err := s.sessionRepo.GetActiveByTable(ctx, id)
	if err != nil {
		return nil, err
	}
	return &TableDetail{Table: table, ActiveSession: session}, nil
}

// ListTables lists tables by name
func (s *TableService) ListTables(ctx context.Context, params *repository.TableFilterParams) ([]entity.Table, error) {
	return s.tableRepo.List(ctx, params)
}

// UpdateStatus switches a table between the manually managed statuses.
// Occupied is entered and left only by session operations.
func (s *TableService) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.TableStatus) (*entity.Table, error) {
	if !status.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid table status")
	}
	if !status.IsManual() {
		return nil, apperror.NewBadRequestError("Table status occupied is managed by sessions")
	}

	table, err := s.tableRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, apperror.NewNotFoundError("Table")
	}
	if table.Status == status {
		return table, nil
	}
	if !table.Status.CanTransitionTo(status) || table.Status == enum.TableStatusOccupied {
		return nil, apperror.NewStateConflictError("Table %s cannot change from %s to %s", table.Name, table.Status, status)
	}

	ok, err := s.tableRepo.UpdateStatus(ctx, id, table.Status, status)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.NewStateConflictError("Table %s changed status concurrently", table.Name)
	}
	return s.tableRepo.GetByID(ctx, id)
}

// SetActive activates or deactivates a table. An occupied table cannot be
// deactivated.
func (s *TableService) SetActive(ctx context.Context, id uuid.UUID, active bool) (*entity.Table, error) {
	table, err := s.tableRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, apperror.NewNotFoundError("Table")
	}

	ok, err := s.tableRepo.SetActive(ctx, id, active)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.NewStateConflictError("Table %s is occupied", table.Name)
	}
	return s.tableRepo.GetByID(ctx, id)
}
