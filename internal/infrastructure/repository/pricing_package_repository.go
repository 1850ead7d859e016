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

type pricingPackageRepository struct {
	db *gorm.DB
}

// NewPricingPackageRepository creates a new pricing package repository
func NewPricingPackageRepository(db *gorm.DB) domainRepo.PricingPackageRepository {
	return &pricingPackageRepository{db: db}
}

func (r *pricingPackageRepository) Create(ctx context.Context, pkg *entity.PricingPackage) error {
	return createKeepingInactive(dbFrom(ctx, r.db), pkg, &pkg.IsActive)
}

func (r *pricingPackageRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.PricingPackage, error) {
	var pkg entity.PricingPackage
	err := dbFrom(ctx, r.db).First(&pkg, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &pkg, err
}

func (r *pricingPackageRepository) Update(ctx context.Context, pkg *entity.PricingPackage) error {
	return dbFrom(ctx, r.db).Save(pkg).Error
}

func (r *pricingPackageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFrom(ctx, r.db).Delete(&entity.PricingPackage{}, "id = ?", id).Error
}

func (r *pricingPackageRepository) List(ctx context.Context, activeOnly bool) ([]entity.PricingPackage, error) {
	var packages []entity.PricingPackage
	query := dbFrom(ctx, r.db).Model(&entity.PricingPackage{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order("sort_order ASC").Order("name ASC").Find(&packages).Error
	return packages, err
}

func (r *pricingPackageRepository) ClearDefault(ctx context.Context, category enum.DurationType, keepID uuid.UUID) error {
	return dbFrom(ctx, r.db).Model(&entity.PricingPackage{}).
		Where("category = ? AND is_default = ? AND id <> ?", category, true, keepID).
		Update("is_default", false).Error
}

func (r *pricingPackageRepository) CountSessions(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&entity.TableSession{}).
		Where("pricing_package_id = ?", id).
		Count(&count).Error
	return count, err
}
