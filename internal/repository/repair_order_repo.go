package repository

import (
	"context"
	"time"

	"garagedesk/internal/dto"
	"garagedesk/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RepairOrderRepository defines the data access contract for repair orders
// and their line items.
type RepairOrderRepository interface {
	Create(ctx context.Context, o *model.RepairOrder) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.RepairOrder, error)
	List(ctx context.Context, filter dto.RepairOrderFilter) ([]model.RepairOrder, int64, error)
	ListByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]model.RepairOrder, error)
	ListOpen(ctx context.Context) ([]model.RepairOrder, error)
	Update(ctx context.Context, o *model.RepairOrder) error

	// CountInRange counts orders whose reception date falls in [from, toExcl).
	CountInRange(ctx context.Context, from, toExcl time.Time) (int, error)

	// Used inside transactions — callers must pass the tx instance
	UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status string, completion *time.Time) error
	UpdateTotalTx(tx *gorm.DB, id uuid.UUID, total decimal.Decimal) error
	CreateItemTx(tx *gorm.DB, item *model.RepairOrderItem) error
	DeleteItemTx(tx *gorm.DB, itemID uuid.UUID) error

	FindItemByID(ctx context.Context, itemID uuid.UUID) (*model.RepairOrderItem, error)

	// Part usage, aggregated over order line items joined to their order's
	// reception date. Bounds follow the [from, toExcl) convention.
	PartUsageInRange(ctx context.Context, partID uuid.UUID, from, toExcl time.Time) (int, error)
	PartUsageBefore(ctx context.Context, partID uuid.UUID, before time.Time) (int, error)

	DB() *gorm.DB
}

type repairOrderRepo struct{ db *gorm.DB }

func NewRepairOrderRepository(db *gorm.DB) RepairOrderRepository { return &repairOrderRepo{db: db} }

func (r *repairOrderRepo) Create(ctx context.Context, o *model.RepairOrder) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *repairOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.RepairOrder, error) {
	var o model.RepairOrder
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.SparePart").
		Preload("Items.LaborType").
		Preload("Vehicle").
		Preload("Vehicle.Customer").
		First(&o, id).Error
	return &o, err
}

func (r *repairOrderRepo) List(ctx context.Context, filter dto.RepairOrderFilter) ([]model.RepairOrder, int64, error) {
	var orders []model.RepairOrder
	var total int64

	q := r.db.WithContext(ctx).Model(&model.RepairOrder{})
	if filter.VehicleID != "" {
		q = q.Where("vehicle_id = ?", filter.VehicleID)
	}
	switch filter.Status {
	case "", "all":
		// no filter
	default:
		q = q.Where("status = ?", filter.Status)
	}
	if filter.From != "" {
		q = q.Where("reception_date >= ?", filter.From)
	}
	if filter.To != "" {
		if to, err := time.Parse("2006-01-02", filter.To); err == nil {
			q = q.Where("reception_date < ?", to.AddDate(0, 0, 1))
		}
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Items").Preload("Items.SparePart").Preload("Items.LaborType").Preload("Vehicle").
		Order("reception_date DESC").Limit(filter.Limit).Offset(offset).Find(&orders).Error
	return orders, total, err
}

func (r *repairOrderRepo) ListByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]model.RepairOrder, error) {
	var orders []model.RepairOrder
	err := r.db.WithContext(ctx).Preload("Items").
		Where("vehicle_id = ?", vehicleID).
		Order("reception_date DESC").Find(&orders).Error
	return orders, err
}

// ListOpen returns the orders shown on the kanban board: everything pending or
// in progress, plus recently closed orders (completed/cancelled within 7 days).
func (r *repairOrderRepo) ListOpen(ctx context.Context) ([]model.RepairOrder, error) {
	var orders []model.RepairOrder
	cutoff := time.Now().AddDate(0, 0, -7)
	err := r.db.WithContext(ctx).Preload("Items").Preload("Vehicle").
		Where("status IN ? OR updated_at >= ?", []string{model.StatusPending, model.StatusInProgress}, cutoff).
		Order("reception_date ASC").Find(&orders).Error
	return orders, err
}

func (r *repairOrderRepo) Update(ctx context.Context, o *model.RepairOrder) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *repairOrderRepo) CountInRange(ctx context.Context, from, toExcl time.Time) (int, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.RepairOrder{}).
		Where("reception_date >= ? AND reception_date < ?", from, toExcl).Count(&n).Error
	return int(n), err
}

func (r *repairOrderRepo) UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status string, completion *time.Time) error {
	updates := map[string]interface{}{"status": status}
	if completion != nil {
		updates["completion_date"] = *completion
	}
	return tx.Model(&model.RepairOrder{}).Where("id = ?", id).Updates(updates).Error
}

func (r *repairOrderRepo) UpdateTotalTx(tx *gorm.DB, id uuid.UUID, total decimal.Decimal) error {
	return tx.Model(&model.RepairOrder{}).Where("id = ?", id).Update("total_amount", total).Error
}

func (r *repairOrderRepo) CreateItemTx(tx *gorm.DB, item *model.RepairOrderItem) error {
	return tx.Create(item).Error
}

func (r *repairOrderRepo) DeleteItemTx(tx *gorm.DB, itemID uuid.UUID) error {
	return tx.Delete(&model.RepairOrderItem{}, itemID).Error
}

func (r *repairOrderRepo) FindItemByID(ctx context.Context, itemID uuid.UUID) (*model.RepairOrderItem, error) {
	var item model.RepairOrderItem
	err := r.db.WithContext(ctx).First(&item, itemID).Error
	return &item, err
}

func (r *repairOrderRepo) PartUsageInRange(ctx context.Context, partID uuid.UUID, from, toExcl time.Time) (int, error) {
	var used int
	err := r.db.WithContext(ctx).Model(&model.RepairOrderItem{}).
		Select("COALESCE(SUM(repair_order_items.quantity), 0)").
		Joins("JOIN repair_orders ON repair_orders.id = repair_order_items.repair_order_id").
		Where("repair_order_items.spare_part_id = ?", partID).
		Where("repair_orders.status <> ?", model.StatusCancelled).
		Where("repair_orders.reception_date >= ? AND repair_orders.reception_date < ?", from, toExcl).
		Scan(&used).Error
	return used, err
}

func (r *repairOrderRepo) PartUsageBefore(ctx context.Context, partID uuid.UUID, before time.Time) (int, error) {
	var used int
	err := r.db.WithContext(ctx).Model(&model.RepairOrderItem{}).
		Select("COALESCE(SUM(repair_order_items.quantity), 0)").
		Joins("JOIN repair_orders ON repair_orders.id = repair_order_items.repair_order_id").
		Where("repair_order_items.spare_part_id = ?", partID).
		Where("repair_orders.status <> ?", model.StatusCancelled).
		Where("repair_orders.reception_date < ?", before).
		Scan(&used).Error
	return used, err
}

func (r *repairOrderRepo) DB() *gorm.DB { return r.db }
