package repository

import (
	"context"

	"github.com/chalkboard-id/chalkboard-api/internal/domain/entity"
	"github.com/chalkboard-id/chalkboard-api/pkg/pagination"
	"github.com/google/uuid"
)

// FnbCategoryRepository defines the interface for menu category data operations
type FnbCategoryRepository interface {
	Create(ctx context.Context, category *entity.FnbCategory) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.FnbCategory, error)
	Update(ctx context.Context, category *entity.FnbCategory) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, activeOnly bool) ([]entity.FnbCategory, error)
	CountItems(ctx context.Context, id uuid.UUID) (int64, error)
}

// FnbItemRepository defines the interface for menu item data operations
type FnbItemRepository interface {
	Create(ctx context.Context, item *entity.FnbItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.FnbItem, error)
	// GetByIDs retrieves multiple items in a single query
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.FnbItem, error)
	Update(ctx context.Context, item *entity.FnbItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *FnbItemFilterParams) ([]entity.FnbItem, int64, error)
	// ListLowStock returns active items whose stock is at or below min_stock
	ListLowStock(ctx context.Context) ([]entity.FnbItem, error)
	// DecrementStock takes quantity out of stock, flooring at zero
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error
	// AddStock atomically adds quantity (restocking)
	AddStock(ctx context.Context, id uuid.UUID, quantity int) error
}

// FnbItemFilterParams contains filtering parameters for menu item queries
type FnbItemFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	CategoryID *uuid.UUID
	ActiveOnly bool
	LowStock   bool
}
