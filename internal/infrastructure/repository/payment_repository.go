package repository

import (
	"context"
	"errors"

	"github.com/chalkboard-id/chalkboard-api/internal/domain/entity"
	"github.com/chalkboard-id/chalkboard-api/internal/domain/enum"
	domainRepo "github.com/chalkboard-id/chalkboard-api/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) domainRepo.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	return dbFrom(ctx, r.db).Create(payment).Error
}

func (r *paymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	var payment entity.Payment
	err := dbFrom(ctx, r.db).First(&payment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &payment, err
}

func (r *paymentRepository) List(ctx context.Context, params *domainRepo.PaymentFilterParams) ([]entity.Payment, int64, error) {
	var payments []entity.Payment
	var total int64

	query := dbFrom(ctx, r.db).Model(&entity.Payment{})
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.StartDate != nil {
		query = query.Where("created_at >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("created_at < ?", *params.EndDate)
	}
	query = query.Scopes(SearchScope(params.Search, "transaction_number", "customer_name"))

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params.Pagination)).
		Order("created_at DESC").
		Find(&payments).Error

	return payments, total, err
}

func (r *paymentRepository) UpdateAmounts(ctx context.Context, payment *entity.Payment) error {
	return dbFrom(ctx, r.db).Model(payment).
		Select("table_amount", "fnb_amount", "tax_amount", "total_amount", "status", "staff_id", "updated_at").
		Updates(payment).Error
}

func (r *paymentRepository) UpdateStatus(ctx context.Context, payment *entity.Payment, from enum.PaymentStatus) (bool, error) {
	result := dbFrom(ctx, r.db).Model(&entity.Payment{}).
		Where("id = ? AND status = ?", payment.ID, from).
		Updates(map[string]any{
			"status":          payment.Status,
			"payment_methods": payment.PaymentMethods,
			"paid_at":         payment.PaidAt,
			"notes":           payment.Notes,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// AddFnbAmount keeps total_amount = table_amount + fnb_amount by moving both
// columns in the same statement
func (r *paymentRepository) AddFnbAmount(ctx context.Context, id uuid.UUID, total, tax decimal.Decimal) (bool, error) {
	result := dbFrom(ctx, r.db).Model(&entity.Payment{}).
		Where("id = ? AND status = ?", id, enum.PaymentStatusPending).
		Updates(map[string]any{
			"fnb_amount":   gorm.Expr("fnb_amount + ?", total),
			"tax_amount":   gorm.Expr("tax_amount + ?", tax),
			"total_amount": gorm.Expr("total_amount + ?", total),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
