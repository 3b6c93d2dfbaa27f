package repository

import (
	"context"
	"time"

	"garagedesk/internal/dto"
	"garagedesk/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentRepository defines the data access contract for payments.
type PaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Payment, error)
	List(ctx context.Context, filter dto.PaymentFilter) ([]model.Payment, int64, error)
	ListByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]model.Payment, error)

	// ListInRange returns payments (with vehicle preloaded) whose payment date
	// falls in [from, toExcl) — the sales report input.
	ListInRange(ctx context.Context, from, toExcl time.Time) ([]model.Payment, error)

	// Used inside transactions — callers must pass the tx instance
	CreateTx(tx *gorm.DB, p *model.Payment) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error

	DB() *gorm.DB
}

type paymentRepo struct{ db *gorm.DB }

func NewPaymentRepository(db *gorm.DB) PaymentRepository { return &paymentRepo{db: db} }

func (r *paymentRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	var p model.Payment
	err := r.db.WithContext(ctx).Preload("Vehicle").First(&p, id).Error
	return &p, err
}

func (r *paymentRepo) List(ctx context.Context, filter dto.PaymentFilter) ([]model.Payment, int64, error) {
	var payments []model.Payment
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Payment{})
	if filter.VehicleID != "" {
		q = q.Where("vehicle_id = ?", filter.VehicleID)
	}
	if filter.Method != "" {
		q = q.Where("method = ?", filter.Method)
	}
	if filter.From != "" {
		q = q.Where("payment_date >= ?", filter.From)
	}
	if filter.To != "" {
		if to, err := time.Parse("2006-01-02", filter.To); err == nil {
			q = q.Where("payment_date < ?", to.AddDate(0, 0, 1))
		}
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Vehicle").Order("payment_date DESC").Limit(filter.Limit).Offset(offset).Find(&payments).Error
	return payments, total, err
}

func (r *paymentRepo) ListByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]model.Payment, error) {
	var payments []model.Payment
	err := r.db.WithContext(ctx).Where("vehicle_id = ?", vehicleID).
		Order("payment_date DESC").Find(&payments).Error
	return payments, err
}

func (r *paymentRepo) ListInRange(ctx context.Context, from, toExcl time.Time) ([]model.Payment, error) {
	var payments []model.Payment
	err := r.db.WithContext(ctx).Preload("Vehicle").
		Where("payment_date >= ? AND payment_date < ?", from, toExcl).
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepo) CreateTx(tx *gorm.DB, p *model.Payment) error {
	return tx.Create(p).Error
}

func (r *paymentRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.Payment{}, id).Error
}

func (r *paymentRepo) DB() *gorm.DB { return r.db }
