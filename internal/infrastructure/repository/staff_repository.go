package repository

import (
	"context"
	"errors"

	"github.com/chalkboard-id/chalkboard-api/internal/domain/entity"
	domainRepo "github.com/chalkboard-id/chalkboard-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type staffRepository struct {
	db *gorm.DB
}

// NewStaffRepository creates a new staff repository
func NewStaffRepository(db *gorm.DB) domainRepo.StaffRepository {
	return &staffRepository{db: db}
}

func (r *staffRepository) Create(ctx context.Context, staff *entity.Staff) error {
	return createKeepingInactive(dbFrom(ctx, r.db), staff, &staff.IsActive)
}

func (r *staffRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Staff, error) {
	var staff entity.Staff
	err := dbFrom(ctx, r.db).First(&staff, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &staff, err
}

func (r *staffRepository) Update(ctx context.Context, staff *entity.Staff) error {
	return dbFrom(ctx, r.db).Save(staff).Error
}

func (r *staffRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFrom(ctx, r.db).Delete(&entity.Staff{}, "id = ?", id).Error
}

func (r *staffRepository) List(ctx context.Context, activeOnly bool, search string) ([]entity.Staff, error) {
	var staff []entity.Staff
	query := dbFrom(ctx, r.db).Model(&entity.Staff{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Scopes(SearchScope(search, "name", "position")).
		Order("name ASC").
		Find(&staff).Error
	return staff, err
}
