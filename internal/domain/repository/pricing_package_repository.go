package repository

import (
	"context"

	"github.com/chalkboard-id/chalkboard-api/internal/domain/entity"
	"github.com/chalkboard-id/chalkboard-api/internal/domain/enum"
	"github.com/google/uuid"
)

// PricingPackageRepository defines the interface for pricing package data operations
type PricingPackageRepository interface {
	Create(ctx context.Context, pkg *entity.PricingPackage) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.PricingPackage, error)
	Update(ctx context.Context, pkg *entity.PricingPackage) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns packages ordered by sort order then name
	List(ctx context.Context, activeOnly bool) ([]entity.PricingPackage, error)
	// ClearDefault unsets is_default on every package of the category except keepID
	ClearDefault(ctx context.Context, category enum.DurationType, keepID uuid.UUID) error
	// CountSessions counts sessions ever billed with the package
	CountSessions(ctx context.Context, id uuid.UUID) (int64, error)
}
