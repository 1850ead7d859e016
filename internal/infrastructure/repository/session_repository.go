package repository

import (
	"context"
	"errors"
	"time"

	"github.com/chalkboard-id/chalkboard-api/internal/domain/entity"
	"github.com/chalkboard-id/chalkboard-api/internal/domain/enum"
	domainRepo "github.com/chalkboard-id/chalkboard-api/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new table session repository
func NewSessionRepository(db *gorm.DB) domainRepo.SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *entity.TableSession) error {
	return dbFrom(ctx, r.db).Omit("Table", "PricingPackage", "Staff").Create(session).Error
}

func (r *sessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.TableSession, error) {
	var session entity.TableSession
	err := r.withRelations(dbFrom(ctx, r.db)).First(&session, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &session, err
}

func (r *sessionRepository) GetActiveByTable(ctx context.Context, tableID uuid.UUID) (*entity.TableSession, error) {
	var session entity.TableSession
	err := r.withRelations(dbFrom(ctx, r.db)).
		Where("table_id = ? AND status = ?", tableID, enum.SessionStatusActive).
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &session, err
}

func (r *sessionRepository) GetByPaymentID(ctx context.Context, paymentID uuid.UUID) (*entity.TableSession, error) {
	var session entity.TableSession
	err := r.withRelations(dbFrom(ctx, r.db)).
		Where("payment_id = ?", paymentID).
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &session, err
}

func (r *sessionRepository) List(ctx context.Context, params *domainRepo.SessionFilterParams) ([]entity.TableSession, int64, error) {
	var sessions []entity.TableSession
	var total int64

	query := dbFrom(ctx, r.db).Model(&entity.TableSession{})
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.TableID != nil {
		query = query.Where("table_id = ?", *params.TableID)
	}
	if params.StartDate != nil {
		query = query.Where("start_time >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("start_time < ?", *params.EndDate)
	}
	query = query.Scopes(SearchScope(params.Search, "customer_name", "customer_phone"))

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.withRelations(query).
		Scopes(Paginate(params.Pagination)).
		Order("start_time DESC").
		Find(&sessions).Error

	return sessions, total, err
}

func (r *sessionRepository) ListActive(ctx context.Context) ([]entity.TableSession, error) {
	var sessions []entity.TableSession
	err := r.withRelations(dbFrom(ctx, r.db)).
		Where("status = ?", enum.SessionStatusActive).
		Order("start_time ASC").
		Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepository) MoveTable(ctx context.Context, id, fromTableID, toTableID uuid.UUID) (bool, error) {
	return r.affected(dbFrom(ctx, r.db).Model(&entity.TableSession{}).
		Where("id = ? AND table_id = ? AND status = ?", id, fromTableID, enum.SessionStatusActive).
		Update("table_id", toTableID))
}

func (r *sessionRepository) SetOriginalDurationIfUnset(ctx context.Context, id uuid.UUID, minutes int) error {
	return dbFrom(ctx, r.db).Model(&entity.TableSession{}).
		Where("id = ? AND original_duration IS NULL", id).
		Update("original_duration", minutes).Error
}

func (r *sessionRepository) UpdateDuration(ctx context.Context, id uuid.UUID, durationType enum.DurationType, actualDuration int) (bool, error) {
	return r.affected(dbFrom(ctx, r.db).Model(&entity.TableSession{}).
		Where("id = ? AND status = ?", id, enum.SessionStatusActive).
		Updates(map[string]any{
			"duration_type":   durationType,
			"actual_duration": actualDuration,
		}))
}

func (r *sessionRepository) Complete(ctx context.Context, params *domainRepo.CompleteSessionParams) (bool, error) {
	updates := map[string]any{
		"status":          enum.SessionStatusCompleted,
		"end_time":        params.EndTime,
		"actual_duration": params.ActualDuration,
		"total_cost":      params.TotalCost,
		"payment_id":      params.PaymentID,
	}
	if params.StaffID != nil {
		updates["staff_id"] = *params.StaffID
	}
	return r.affected(dbFrom(ctx, r.db).Model(&entity.TableSession{}).
		Where("id = ? AND status IN ?", params.ID, transitionFrom(enum.SessionStatusCompleted)).
		Updates(updates))
}

func (r *sessionRepository) Cancel(ctx context.Context, id uuid.UUID, endTime time.Time, notes *string) (bool, error) {
	updates := map[string]any{
		"status":   enum.SessionStatusCancelled,
		"end_time": endTime,
	}
	if notes != nil {
		updates["notes"] = *notes
	}
	return r.affected(dbFrom(ctx, r.db).Model(&entity.TableSession{}).
		Where("id = ? AND status IN ?", id, transitionFrom(enum.SessionStatusCancelled)).
		Updates(updates))
}

func (r *sessionRepository) UpdateBilling(ctx context.Context, id uuid.UUID, durationType enum.DurationType, actualDuration int, totalCost decimal.Decimal) (bool, error) {
	return r.affected(dbFrom(ctx, r.db).Model(&entity.TableSession{}).
		Where("id = ? AND status = ?", id, enum.SessionStatusCompleted).
		Updates(map[string]any{
			"duration_type":   durationType,
			"actual_duration": actualDuration,
			"total_cost":      totalCost,
		}))
}

func (r *sessionRepository) SetRating(ctx context.Context, id uuid.UUID, rating int) (bool, error) {
	return r.affected(dbFrom(ctx, r.db).Model(&entity.TableSession{}).
		Where("id = ? AND status = ?", id, enum.SessionStatusCompleted).
		Update("rating", rating))
}

func (r *sessionRepository) IncrementFnbOrderCount(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.affected(dbFrom(ctx, r.db).Model(&entity.TableSession{}).
		Where("id = ? AND status = ?", id, enum.SessionStatusActive).
		Update("fnb_order_count", gorm.Expr("fnb_order_count + ?", 1)))
}

func (r *sessionRepository) withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Table").Preload("PricingPackage").Preload("Staff")
}

func (r *sessionRepository) affected(result *gorm.DB) (bool, error) {
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
