package repository

import (
	"context"

	"github.com/chalkboard-id/chalkboard-api/internal/domain/entity"
	"github.com/google/uuid"
)

// StaffRepository defines the interface for staff data operations
type StaffRepository interface {
	Create(ctx context.Context, staff *entity.Staff) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Staff, error)
	Update(ctx context.Context, staff *entity.Staff) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, activeOnly bool, search string) ([]entity.Staff, error)
}
