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

type fnbOrderRepository struct {
	db *gorm.DB
}

// NewFnbOrderRepository creates a new F&B order repository
func NewFnbOrderRepository(db *gorm.DB) domainRepo.FnbOrderRepository {
	return &fnbOrderRepository{db: db}
}

func (r *fnbOrderRepository) Create(ctx context.Context, order *entity.FnbOrder) error {
	return dbFrom(ctx, r.db).Omit("Table").Create(order).Error
}

func (r *fnbOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.FnbOrder, error) {
	var order entity.FnbOrder
	err := r.withItems(dbFrom(ctx, r.db)).
		Preload("Table").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *fnbOrderRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.FnbOrder, error) {
	if len(ids) == 0 {
		return []entity.FnbOrder{}, nil
	}
	var orders []entity.FnbOrder
	err := r.withItems(dbFrom(ctx, r.db)).
		Where("id IN ?", ids).
		Find(&orders).Error
	return orders, err
}

func (r *fnbOrderRepository) List(ctx context.Context, params *domainRepo.FnbOrderFilterParams) ([]entity.FnbOrder, int64, error) {
	var orders []entity.FnbOrder
	var total int64

	query := dbFrom(ctx, r.db).Model(&entity.FnbOrder{})
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.TableID != nil {
		query = query.Where("table_id = ?", *params.TableID)
	}
	if params.SessionID != nil {
		query = query.Where("session_id = ?", *params.SessionID)
	}
	if params.PaymentID != nil {
		query = query.Where("payment_id = ?", *params.PaymentID)
	}
	query = query.Scopes(SearchScope(params.Search, "order_number", "customer_name"))

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.withItems(query).
		Scopes(Paginate(params.Pagination)).
		Order("created_at DESC").
		Find(&orders).Error

	return orders, total, err
}

func (r *fnbOrderRepository) ListDrafts(ctx context.Context, search, customerPhone string) ([]entity.FnbOrder, error) {
	var orders []entity.FnbOrder
	query := dbFrom(ctx, r.db).
		Where("status = ?", enum.FnbOrderStatusDraft).
		Scopes(SearchScope(search, "customer_name", "order_number"))
	if customerPhone != "" {
		query = query.Where("customer_phone = ?", customerPhone)
	}
	err := r.withItems(query).Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *fnbOrderRepository) ListPendingBySession(ctx context.Context, sessionID uuid.UUID) ([]entity.FnbOrder, error) {
	var orders []entity.FnbOrder
	err := dbFrom(ctx, r.db).
		Where("session_id = ? AND status = ?", sessionID, enum.FnbOrderStatusPending).
		Order("created_at ASC").
		Find(&orders).Error
	return orders, err
}

func (r *fnbOrderRepository) ListByPayment(ctx context.Context, paymentID uuid.UUID) ([]entity.FnbOrder, error) {
	var orders []entity.FnbOrder
	err := r.withItems(dbFrom(ctx, r.db)).
		Where("payment_id = ?", paymentID).
		Order("created_at ASC").
		Find(&orders).Error
	return orders, err
}

func (r *fnbOrderRepository) UpdateDraft(ctx context.Context, order *entity.FnbOrder) (bool, error) {
	return r.affected(dbFrom(ctx, r.db).Model(&entity.FnbOrder{}).
		Where("id = ? AND status = ?", order.ID, enum.FnbOrderStatusDraft).
		Updates(map[string]any{
			"customer_name":  order.CustomerName,
			"customer_phone": order.CustomerPhone,
			"notes":          order.Notes,
			"subtotal":       order.Subtotal,
			"tax":            order.Tax,
			"total":          order.Total,
		}))
}

func (r *fnbOrderRepository) ReplaceItems(ctx context.Context, orderID uuid.UUID, items []entity.FnbOrderItem) error {
	db := dbFrom(ctx, r.db)
	if err := db.Where("order_id = ?", orderID).Delete(&entity.FnbOrderItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].OrderID = orderID
	}
	return db.Omit("Item").Create(&items).Error
}

func (r *fnbOrderRepository) CancelDraft(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.affected(dbFrom(ctx, r.db).Model(&entity.FnbOrder{}).
		Where("id = ? AND status IN ?", id, transitionFrom(enum.FnbOrderStatusCancelled)).
		Update("status", enum.FnbOrderStatusCancelled))
}

// AssignToTable runs:
// UPDATE fnb_orders SET status = 'pending', table_id = ?, session_id = ? WHERE id = ? AND status IN ('draft')
func (r *fnbOrderRepository) AssignToTable(ctx context.Context, id, tableID, sessionID uuid.UUID, staffID *uuid.UUID) (bool, error) {
	updates := map[string]any{
		"status":     enum.FnbOrderStatusPending,
		"table_id":   tableID,
		"session_id": sessionID,
	}
	if staffID != nil {
		updates["staff_id"] = *staffID
	}
	return r.affected(dbFrom(ctx, r.db).Model(&entity.FnbOrder{}).
		Where("id = ? AND status IN ?", id, transitionFrom(enum.FnbOrderStatusPending)).
		Updates(updates))
}

func (r *fnbOrderRepository) AssignToPayment(ctx context.Context, id, paymentID uuid.UUID, staffID *uuid.UUID) (bool, error) {
	updates := map[string]any{
		"status":     enum.FnbOrderStatusBilled,
		"payment_id": paymentID,
	}
	if staffID != nil {
		updates["staff_id"] = *staffID
	}
	return r.affected(dbFrom(ctx, r.db).Model(&entity.FnbOrder{}).
		Where("id = ? AND status IN ?", id, transitionFrom(enum.FnbOrderStatusBilled, enum.FnbOrderStatusDraft)).
		Updates(updates))
}

func (r *fnbOrderRepository) BillPending(ctx context.Context, ids []uuid.UUID, paymentID uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := dbFrom(ctx, r.db).Model(&entity.FnbOrder{}).
		Where("id IN ? AND status IN ?", ids, transitionFrom(enum.FnbOrderStatusBilled, enum.FnbOrderStatusPending)).
		Updates(map[string]any{
			"status":     enum.FnbOrderStatusBilled,
			"payment_id": paymentID,
		})
	return result.RowsAffected, result.Error
}

func (r *fnbOrderRepository) RepointPendingTable(ctx context.Context, fromTableID, toTableID uuid.UUID) (int64, error) {
	result := dbFrom(ctx, r.db).Model(&entity.FnbOrder{}).
		Where("table_id = ? AND status = ?", fromTableID, enum.FnbOrderStatusPending).
		Update("table_id", toTableID)
	return result.RowsAffected, result.Error
}

func (r *fnbOrderRepository) UpdateStatusByPayment(ctx context.Context, paymentID uuid.UUID, status enum.FnbOrderStatus) (int64, error) {
	result := dbFrom(ctx, r.db).Model(&entity.FnbOrder{}).
		Where("payment_id = ? AND status IN ?", paymentID,
			transitionFrom(status, enum.FnbOrderStatusBilled, enum.FnbOrderStatusPaid)).
		Update("status", status)
	return result.RowsAffected, result.Error
}

func (r *fnbOrderRepository) withItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items.Item")
}

func (r *fnbOrderRepository) affected(result *gorm.DB) (bool, error) {
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
