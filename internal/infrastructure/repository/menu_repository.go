package repository

import (
	"context"
	"errors"

	"github.com/chalkboard-id/chalkboard-api/internal/domain/entity"
	domainRepo "github.com/chalkboard-id/chalkboard-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fnbCategoryRepository struct {
	db *gorm.DB
}

// NewFnbCategoryRepository creates a new menu category repository
func NewFnbCategoryRepository(db *gorm.DB) domainRepo.FnbCategoryRepository {
	return &fnbCategoryRepository{db: db}
}

func (r *fnbCategoryRepository) Create(ctx context.Context, category *entity.FnbCategory) error {
	return createKeepingInactive(dbFrom(ctx, r.db), category, &category.IsActive)
}

func (r *fnbCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.FnbCategory, error) {
	var category entity.FnbCategory
	err := dbFrom(ctx, r.db).First(&category, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &category, err
}

func (r *fnbCategoryRepository) Update(ctx context.Context, category *entity.FnbCategory) error {
	return dbFrom(ctx, r.db).Omit("Items").Save(category).Error
}

func (r *fnbCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFrom(ctx, r.db).Delete(&entity.FnbCategory{}, "id = ?", id).Error
}

func (r *fnbCategoryRepository) List(ctx context.Context, activeOnly bool) ([]entity.FnbCategory, error) {
	var categories []entity.FnbCategory
	query := dbFrom(ctx, r.db).Model(&entity.FnbCategory{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order("sort_order ASC").Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *fnbCategoryRepository) CountItems(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&entity.FnbItem{}).
		Where("category_id = ?", id).
		Count(&count).Error
	return count, err
}

type fnbItemRepository struct {
	db *gorm.DB
}

// NewFnbItemRepository creates a new menu item repository
func NewFnbItemRepository(db *gorm.DB) domainRepo.FnbItemRepository {
	return &fnbItemRepository{db: db}
}

func (r *fnbItemRepository) Create(ctx context.Context, item *entity.FnbItem) error {
	return createKeepingInactive(dbFrom(ctx, r.db), item, &item.IsActive, "Category")
}

func (r *fnbItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.FnbItem, error) {
	var item entity.FnbItem
	err := dbFrom(ctx, r.db).
		Preload("Category").
		First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

// GetByIDs retrieves multiple items by their IDs in a single query
func (r *fnbItemRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.FnbItem, error) {
	if len(ids) == 0 {
		return []entity.FnbItem{}, nil
	}
	var items []entity.FnbItem
	err := dbFrom(ctx, r.db).
		Where("id IN ?", ids).
		Find(&items).Error
	return items, err
}

func (r *fnbItemRepository) Update(ctx context.Context, item *entity.FnbItem) error {
	return dbFrom(ctx, r.db).Omit("Category").Save(item).Error
}

func (r *fnbItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFrom(ctx, r.db).Delete(&entity.FnbItem{}, "id = ?", id).Error
}

func (r *fnbItemRepository) List(ctx context.Context, params *domainRepo.FnbItemFilterParams) ([]entity.FnbItem, int64, error) {
	var items []entity.FnbItem
	var total int64

	query := dbFrom(ctx, r.db).Model(&entity.FnbItem{})
	if params.CategoryID != nil {
		query = query.Where("category_id = ?", *params.CategoryID)
	}
	if params.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if params.LowStock {
		query = query.Where("stock_quantity <= min_stock")
	}
	query = query.Scopes(SearchScope(params.Search, "name"))

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params.Pagination)).
		Preload("Category").
		Order("name ASC").
		Find(&items).Error

	return items, total, err
}

func (r *fnbItemRepository) ListLowStock(ctx context.Context) ([]entity.FnbItem, error) {
	var items []entity.FnbItem
	err := dbFrom(ctx, r.db).
		Where("is_active = ? AND stock_quantity <= min_stock", true).
		Preload("Category").
		Order("stock_quantity ASC").
		Find(&items).Error
	return items, err
}

// DecrementStock runs a single floor-at-zero update:
// UPDATE fnb_items SET stock_quantity = CASE WHEN stock_quantity > q THEN stock_quantity - q ELSE 0 END
func (r *fnbItemRepository) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return nil
	}
	return dbFrom(ctx, r.db).Model(&entity.FnbItem{}).
		Where("id = ?", id).
		Update("stock_quantity", gorm.Expr(
			"CASE WHEN stock_quantity > ? THEN stock_quantity - ? ELSE 0 END", quantity, quantity,
		)).Error
}

func (r *fnbItemRepository) AddStock(ctx context.Context, id uuid.UUID, quantity int) error {
	return dbFrom(ctx, r.db).Model(&entity.FnbItem{}).
		Where("id = ?", id).
		Update("stock_quantity", gorm.Expr("stock_quantity + ?", quantity)).Error
}
