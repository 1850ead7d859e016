package service

import (
	"context"
	"strings"

	"github.com/chalkboard-id/chalkboard-api/internal/domain/billing"
	"github.com/chalkboard-id/chalkboard-api/internal/domain/entity"
	"github.com/chalkboard-id/chalkboard-api/internal/domain/enum"
	"github.com/chalkboard-id/chalkboard-api/internal/domain/repository"
	"github.com/chalkboard-id/chalkboard-api/pkg/apperror"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PricingService resolves billing modes and manages pricing packages
type PricingService struct {
	transactor  repository.Transactor
	packageRepo repository.PricingPackageRepository
	tableRepo   repository.TableRepository
}

// NewPricingService creates a new pricing service
func NewPricingService(
	transactor repository.Transactor,
	packageRepo repository.PricingPackageRepository,
	tableRepo repository.TableRepository,
) *PricingService {
	return &PricingService{
		transactor:  transactor,
		packageRepo: packageRepo,
		tableRepo:   tableRepo,
	}
}

// BillingMode is how a session started on a package is charged
type BillingMode struct {
	Mode    enum.DurationType      `json:"mode"`
	Rate    decimal.Decimal        `json:"rate"`
	Package *entity.PricingPackage `json:"-"`
}

// ResolveBillingMode returns the mode and rate of an active package
func (s *PricingService) ResolveBillingMode(ctx context.Context, packageID uuid.UUID) (*BillingMode, error) {
	pkg, err := s.packageRepo.GetByID(ctx, packageID)
	if err != nil {
		return nil, err
	}
	if pkg == nil || !pkg.IsActive {
		return nil, apperror.NewNotFoundError("Pricing package")
	}

	return &BillingMode{
		Mode:    pkg.Category,
		Rate:    pkg.Rate(),
		Package: pkg,
	}, nil
}

// SessionRateCard returns the rates a session is billed with. Hourly comes
// from its pricing package. Per-minute comes from the package, then the
// table's own per-minute rate, then hourly/60. Sessions without a package
// use the table's rates.
func (s *PricingService) SessionRateCard(ctx context.Context, session *entity.TableSession) (billing.RateCard, error) {
	pkg := session.PricingPackage
	if pkg == nil && session.PricingPackageID != nil {
		var err error
		if pkg, err = s.packageRepo.GetByID(ctx, *session.PricingPackageID); err != nil {
			return billing.RateCard{}, err
		}
	}

	table, err := s.sessionTable(ctx, session)
	if err != nil {
		return billing.RateCard{}, err
	}

	if pkg != nil {
		if pkg.PerMinuteRate == nil || !pkg.PerMinuteRate.IsPositive() {
			if table != nil && table.PerMinuteRate != nil && table.PerMinuteRate.IsPositive() {
				return billing.NewRateCard(pkg.HourlyRate, table.PerMinuteRate), nil
			}
		}
		return pkg.RateCard(), nil
	}

	if table == nil {
		return billing.RateCard{}, apperror.NewNotFoundError("Table")
	}
	return table.RateCard(), nil
}

func (s *PricingService) sessionTable(ctx context.Context, session *entity.TableSession) (*entity.Table, error) {
	if session.Table != nil {
		return session.Table, nil
	}
	return s.tableRepo.GetByID(ctx, session.TableID)
}

// PricingPackageInput represents the create/update package input
type PricingPackageInput struct {
	Name          string
	Description   *string
	Category      enum.DurationType
	HourlyRate    *decimal.Decimal
	PerMinuteRate *decimal.Decimal
	IsDefault     bool
	IsActive      *bool
	SortOrder     int
}

func (in *PricingPackageInput) validate() error {
	var fieldErrors []apperror.FieldError
	if strings.TrimSpace(in.Name) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "name is required"})
	}
	if !in.Category.IsValid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "category", Message: "category must be hourly or per_minute"})
	}
	if in.Category == enum.DurationTypeHourly && in.HourlyRate == nil {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "hourly_rate", Message: "hourly_rate is required for hourly packages"})
	}
	if in.Category == enum.DurationTypePerMinute && in.PerMinuteRate == nil {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "per_minute_rate", Message: "per_minute_rate is required for per-minute packages"})
	}
	if in.HourlyRate != nil && in.HourlyRate.IsNegative() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "hourly_rate", Message: "hourly_rate must not be negative"})
	}
	if in.PerMinuteRate != nil && in.PerMinuteRate.IsNegative() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "per_minute_rate", Message: "per_minute_rate must not be negative"})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

func (in *PricingPackageInput) apply(pkg *entity.PricingPackage) {
	pkg.Name = strings.TrimSpace(in.Name)
	pkg.Description = trimmedOrNil(in.Description)
	pkg.Category = in.Category
	pkg.HourlyRate = in.HourlyRate
	pkg.PerMinuteRate = in.PerMinuteRate
	pkg.IsDefault = in.IsDefault
	pkg.SortOrder = in.SortOrder
	if in.IsActive != nil {
		pkg.IsActive = *in.IsActive
	}
}

// CreatePackage creates a pricing package. Marking it default clears the
// previous default of the same category in the same transaction.
func (s *PricingService) CreatePackage(ctx context.Context, input *PricingPackageInput) (*entity.PricingPackage, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	pkg := &entity.PricingPackage{IsActive: true}
	input.apply(pkg)

	err := s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.packageRepo.Create(txCtx, pkg); err != nil {
			return err
		}
		if pkg.IsDefault {
			return s.packageRepo.ClearDefault(txCtx, pkg.Category, pkg.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pkg, nil
}

// UpdatePackage updates a pricing package
func (s *PricingService) UpdatePackage(ctx context.Context, id uuid.UUID, input *PricingPackageInput) (*entity.PricingPackage, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	pkg, err := s.packageRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, apperror.NewNotFoundError("Pricing package")
	}
	input.apply(pkg)

	err = s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.packageRepo.Update(txCtx, pkg); err != nil {
			return err
		}
		if pkg.IsDefault {
			return s.packageRepo.ClearDefault(txCtx, pkg.Category, pkg.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pkg, nil
}

// DeletePackage removes a package no table or session refers to
func (s *PricingService) DeletePackage(ctx context.Context, id uuid.UUID) error {
	pkg, err := s.packageRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if pkg == nil {
		return apperror.NewNotFoundError("Pricing package")
	}

	tables, err := s.tableRepo.CountByPricingPackage(ctx, id)
	if err != nil {
		return err
	}
	if tables > 0 {
		return apperror.NewConflictError("Pricing package is assigned to one or more tables")
	}

	sessions, err := s.packageRepo.CountSessions(ctx, id)
	if err != nil {
		return err
	}
	if sessions > 0 {
		return apperror.NewConflictError("Pricing package has billed sessions; deactivate it instead")
	}

	return s.packageRepo.Delete(ctx, id)
}

// GetPackage retrieves a pricing package by ID
func (s *PricingService) GetPackage(ctx context.Context, id uuid.UUID) (*entity.PricingPackage, error) {
	pkg, err := s.packageRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, apperror.NewNotFoundError("Pricing package")
	}
	return pkg, nil
}

// ListPackages lists packages by sort order then name
func (s *PricingService) ListPackages(ctx context.Context, activeOnly bool) ([]entity.PricingPackage, error) {
	return s.packageRepo.List(ctx, activeOnly)
}
