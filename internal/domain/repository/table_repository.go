package repository

import (
	"context"

	"github.com/chalkboard-id/chalkboard-api/internal/domain/entity"
	"github.com/chalkboard-id/chalkboard-api/internal/domain/enum"
	"github.com/google/uuid"
)

// TableRepository defines the interface for billiard table data operations
type TableRepository interface {
	Create(ctx context.Context, table *entity.Table) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Table, error)
	GetByName(ctx context.Context, name string) (*entity.Table, error)
	// UpdateDetails writes name, description, rates and package. Status and
	// is_active are only changed through the conditional methods below.
	UpdateDetails(ctx context.Context, table *entity.Table) error
	List(ctx context.Context, params *TableFilterParams) ([]entity.Table, error)
	// MarkOccupied flips an active, available table to occupied.
	// Returns false when the table was not available.
	MarkOccupied(ctx context.Context, id uuid.UUID) (bool, error)
	// Release returns an occupied table to available
	Release(ctx context.Context, id uuid.UUID) error
	// UpdateStatus changes the status only if it still equals from
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to enum.TableStatus) (bool, error)
	// SetActive toggles is_active. Deactivation is refused (false) while occupied.
	SetActive(ctx context.Context, id uuid.UUID, active bool) (bool, error)
	CountByPricingPackage(ctx context.Context, packageID uuid.UUID) (int64, error)
}

// TableFilterParams contains filtering parameters for table queries
type TableFilterParams struct {
	Status     *enum.TableStatus
	ActiveOnly bool
	Search     string
}
