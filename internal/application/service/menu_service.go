package service

import (
	"context"
	"strings"

	"github.com/chalkboard-id/chalkboard-api/internal/domain/entity"
	"github.com/chalkboard-id/chalkboard-api/internal/domain/repository"
	"github.com/chalkboard-id/chalkboard-api/pkg/apperror"
	"github.com/chalkboard-id/chalkboard-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MenuService handles the F&B catalogue: categories, items and stock levels
type MenuService struct {
	categoryRepo repository.FnbCategoryRepository
	itemRepo     repository.FnbItemRepository
}

// NewMenuService creates a new menu service
func NewMenuService(categoryRepo repository.FnbCategoryRepository, itemRepo repository.FnbItemRepository) *MenuService {
	return &MenuService{
		categoryRepo: categoryRepo,
		itemRepo:     itemRepo,
	}
}

// CategoryInput represents the create/update category input
type CategoryInput struct {
	Name        string
	Description *string
	SortOrder   int
	IsActive    *bool
}

// CreateCategory creates a new menu category
func (s *MenuService) CreateCategory(ctx context.Context, input *CategoryInput) (*entity.FnbCategory, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "name", Message: "name is required"}})
	}

	category := &entity.FnbCategory{
		Name:        name,
		Description: trimmedOrNil(input.Description),
		SortOrder:   input.SortOrder,
		IsActive:    true,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory updates a menu category
func (s *MenuService) UpdateCategory(ctx context.Context, id uuid.UUID, input *CategoryInput) (*entity.FnbCategory, error) {
	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "name", Message: "name is required"}})
	}
	category.Name = name
	category.Description = trimmedOrNil(input.Description)
	category.SortOrder = input.SortOrder
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// GetCategory retrieves a category by ID
func (s *MenuService) GetCategory(ctx context.Context, id uuid.UUID) (*entity.FnbCategory, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("F&B category")
	}
	return category, nil
}

// DeleteCategory deletes an empty category
func (s *MenuService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetCategory(ctx, id); err != nil {
		return err
	}

	count, err := s.categoryRepo.CountItems(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperror.NewConflictError("Category still has items")
	}
	return s.categoryRepo.Delete(ctx, id)
}

// ListCategories lists categories by sort order then name
func (s *MenuService) ListCategories(ctx context.Context, activeOnly bool) ([]entity.FnbCategory, error) {
	return s.categoryRepo.List(ctx, activeOnly)
}

// ItemInput represents the create/update menu item input
type ItemInput struct {
	CategoryID    uuid.UUID
	Name          string
	Description   *string
	Price         decimal.Decimal
	Cost          decimal.Decimal
	StockQuantity int
	MinStock      int
	Unit          string
	IsActive      *bool
}

func (s *MenuService) applyItem(ctx context.Context, item *entity.FnbItem, input *ItemInput) error {
	var fieldErrors []apperror.FieldError
	if strings.TrimSpace(input.Name) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "name is required"})
	}
	if input.Price.IsNegative() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "price", Message: "price must not be negative"})
	}
	if input.Cost.IsNegative() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "cost", Message: "cost must not be negative"})
	}
	if input.StockQuantity < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "stock_quantity", Message: "stock_quantity must not be negative"})
	}
	if input.MinStock < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "min_stock", Message: "min_stock must not be negative"})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}

	if _, err := s.GetCategory(ctx, input.CategoryID); err != nil {
		return err
	}

	item.CategoryID = input.CategoryID
	item.Name = strings.TrimSpace(input.Name)
	item.Description = trimmedOrNil(input.Description)
	item.Price = input.Price
	item.Cost = input.Cost
	item.StockQuantity = input.StockQuantity
	item.MinStock = input.MinStock
	item.Unit = strings.TrimSpace(input.Unit)
	if item.Unit == "" {
		item.Unit = "pcs"
	}
	if input.IsActive != nil {
		item.IsActive = *input.IsActive
	}
	return nil
}

// CreateItem creates a new active menu item
func (s *MenuService) CreateItem(ctx context.Context, input *ItemInput) (*entity.FnbItem, error) {
	item := &entity.FnbItem{}
	if err := s.applyItem(ctx, item, input); err != nil {
		return nil, err
	}
	item.IsActive = true

	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return s.itemRepo.GetByID(ctx, item.ID)
}

// UpdateItem updates a menu item. Prices already on orders do not change.
func (s *MenuService) UpdateItem(ctx context.Context, id uuid.UUID, input *ItemInput) (*entity.FnbItem, error) {
	item, err := s.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.applyItem(ctx, item, input); err != nil {
		return nil, err
	}
	item.Category = nil

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return s.itemRepo.GetByID(ctx, id)
}

// GetItem retrieves a menu item by ID
func (s *MenuService) GetItem(ctx context.Context, id uuid.UUID) (*entity.FnbItem, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("F&B item")
	}
	return item, nil
}

// DeleteItem soft-deletes a menu item; order lines keep their snapshot
func (s *MenuService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetItem(ctx, id); err != nil {
		return err
	}
	return s.itemRepo.Delete(ctx, id)
}

// ListItems lists menu items with pagination
func (s *MenuService) ListItems(ctx context.Context, params *repository.FnbItemFilterParams) (*pagination.PaginatedResult[entity.FnbItem], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	items, total, err := s.itemRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	p := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(items, p), nil
}

// ListLowStock lists active items at or below their minimum stock
func (s *MenuService) ListLowStock(ctx context.Context) ([]entity.FnbItem, error) {
	return s.itemRepo.ListLowStock(ctx)
}

// Restock adds quantity to an item's stock
func (s *MenuService) Restock(ctx context.Context, id uuid.UUID, quantity int) (*entity.FnbItem, error) {
	if quantity <= 0 {
		return nil, apperror.NewBadRequestError("quantity must be greater than zero")
	}
	if _, err := s.GetItem(ctx, id); err != nil {
		return nil, err
	}
	if err := s.itemRepo.AddStock(ctx, id, quantity); err != nil {
		return nil, err
	}
	return s.itemRepo.GetByID(ctx, id)
}
