package service

import (
	"context"
	"strings"

	"github.com/chalkboard-id/chalkboard-api/internal/domain/entity"
	"github.com/chalkboard-id/chalkboard-api/internal/domain/repository"
	"github.com/chalkboard-id/chalkboard-api/pkg/apperror"
	"github.com/google/uuid"
)

// StaffService handles staff administration
type StaffService struct {
	staffRepo repository.StaffRepository
}

// NewStaffService creates a new staff service
func NewStaffService(staffRepo repository.StaffRepository) *StaffService {
	return &StaffService{staffRepo: staffRepo}
}

// StaffInput represents the create/update staff input
type StaffInput struct {
	Name     string
	Phone    *string
	Position string
	IsActive *bool
}

func (in *StaffInput) apply(staff *entity.Staff) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return apperror.NewValidationError([]apperror.FieldError{{Field: "name", Message: "name is required"}})
	}
	staff.Name = name
	staff.Phone = trimmedOrNil(in.Phone)
	staff.Position = strings.TrimSpace(in.Position)
	if staff.Position == "" {
		staff.Position = "cashier"
	}
	if in.IsActive != nil {
		staff.IsActive = *in.IsActive
	}
	return nil
}

// CreateStaff creates an active staff member
func (s *StaffService) CreateStaff(ctx context.Context, input *StaffInput) (*entity.Staff, error) {
	staff := &entity.Staff{}
	if err := input.apply(staff); err != nil {
		return nil, err
	}
	staff.IsActive = true

	if err := s.staffRepo.Create(ctx, staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// UpdateStaff updates a staff member
func (s *StaffService) UpdateStaff(ctx context.Context, id uuid.UUID, input *StaffInput) (*entity.Staff, error) {
	staff, err := s.GetStaff(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := input.apply(staff); err != nil {
		return nil, err
	}
	if err := s.staffRepo.Update(ctx, staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// GetStaff retrieves a staff member by ID
func (s *StaffService) GetStaff(ctx context.Context, id uuid.UUID) (*entity.Staff, error) {
	staff, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, apperror.NewNotFoundError("Staff")
	}
	return staff, nil
}

// DeleteStaff soft-deletes a staff member; past attributions stay intact
func (s *StaffService) DeleteStaff(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetStaff(ctx, id); err != nil {
		return err
	}
	return s.staffRepo.Delete(ctx, id)
}

// ListStaff lists staff by name
func (s *StaffService) ListStaff(ctx context.Context, activeOnly bool, search string) ([]entity.Staff, error) {
	return s.staffRepo.List(ctx, activeOnly, search)
}

// ensureStaff checks an optional staff reference
func ensureStaff(ctx context.Context, repo repository.StaffRepository, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	staff, err := repo.GetByID(ctx, *id)
	if err != nil {
		return err
	}
	if staff == nil {
		return apperror.NewNotFoundError("Staff")
	}
	return nil
}
