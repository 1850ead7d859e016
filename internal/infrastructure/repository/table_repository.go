package repository

import (
	"context"
	"errors"

	"github.com/chalkboard-id/chalkboard-api/internal/domain/entity"
	"github.com/chalkboard-id/chalkboard-api/internal/domain/enum"
	domainRepo "github.com/chalkboard-id/chalkboard-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type tableRepository struct {
	db *gorm.DB
}

// NewTableRepository creates a new table repository
func NewTableRepository(db *gorm.DB) domainRepo.TableRepository {
	return &tableRepository{db: db}
}

func (r *tableRepository) Create(ctx context.Context, table *entity.Table) error {
	return createKeepingInactive(dbFrom(ctx, r.db), table, &table.IsActive)
}

func (r *tableRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Table, error) {
	var table entity.Table
	err := dbFrom(ctx, r.db).
		Preload("PricingPackage").
		First(&table, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &table, err
}

func (r *tableRepository) GetByName(ctx context.Context, name string) (*entity.Table, error) {
	var table entity.Table
	err := dbFrom(ctx, r.db).First(&table, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &table, err
}

func (r *tableRepository) UpdateDetails(ctx context.Context, table *entity.Table) error {
	return dbFrom(ctx, r.db).Model(table).
		Select("name", "description", "hourly_rate", "per_minute_rate", "pricing_package_id", "updated_at").
		Updates(table).Error
}

func (r *tableRepository) List(ctx context.Context, params *domainRepo.TableFilterParams) ([]entity.Table, error) {
	var tables []entity.Table

	query := dbFrom(ctx, r.db).Model(&entity.Table{})
	if params != nil {
		if params.Status != nil {
			query = query.Where("status = ?", *params.Status)
		}
		if params.ActiveOnly {
			query = query.Where("is_active = ?", true)
		}
		query = query.Scopes(SearchScope(params.Search, "name"))
	}

	err := query.Preload("PricingPackage").Order("name ASC").Find(&tables).Error
	return tables, err
}

// MarkOccupied runs:
// UPDATE tables SET status = 'occupied' WHERE id = ? AND status = 'available' AND is_active
func (r *tableRepository) MarkOccupied(ctx context.Context, id uuid.UUID) (bool, error) {
	result := dbFrom(ctx, r.db).Model(&entity.Table{}).
		Where("id = ? AND status = ? AND is_active = ?", id, enum.TableStatusAvailable, true).
		Update("status", enum.TableStatusOccupied)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *tableRepository) Release(ctx context.Context, id uuid.UUID) error {
	return dbFrom(ctx, r.db).Model(&entity.Table{}).
		Where("id = ? AND status = ?", id, enum.TableStatusOccupied).
		Update("status", enum.TableStatusAvailable).Error
}

func (r *tableRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to enum.TableStatus) (bool, error) {
	result := dbFrom(ctx, r.db).Model(&entity.Table{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *tableRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) (bool, error) {
	query := dbFrom(ctx, r.db).Model(&entity.Table{}).Where("id = ?", id)
	if !active {
		query = query.Where("status <> ?", enum.TableStatusOccupied)
	}
	result := query.Update("is_active", active)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *tableRepository) CountByPricingPackage(ctx context.Context, packageID uuid.UUID) (int64, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&entity.Table{}).
		Where("pricing_package_id = ?", packageID).
		Count(&count).Error
	return count, err
}
