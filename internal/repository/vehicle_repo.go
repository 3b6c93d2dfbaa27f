package repository

import (
	"context"

	"garagedesk/internal/dto"
	"garagedesk/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// VehicleRepository defines the data access contract for vehicles.
type VehicleRepository interface {
	Create(ctx context.Context, v *model.Vehicle) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Vehicle, error)
	FindByPlate(ctx context.Context, plate string) (*model.Vehicle, error)
	List(ctx context.Context, filter dto.VehicleFilter) ([]model.Vehicle, int64, error)
	Update(ctx context.Context, v *model.Vehicle) error
	Delete(ctx context.Context, id uuid.UUID) error

	// IncrementTotalPaidTx adjusts the running paid total inside the payment
	// transaction — callers must pass the tx instance.
	IncrementTotalPaidTx(tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type vehicleRepo struct{ db *gorm.DB }

func NewVehicleRepository(db *gorm.DB) VehicleRepository { return &vehicleRepo{db: db} }

func (r *vehicleRepo) Create(ctx context.Context, v *model.Vehicle) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *vehicleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Vehicle, error) {
	var v model.Vehicle
	err := r.db.WithContext(ctx).Preload("Customer").First(&v, id).Error
	return &v, err
}

func (r *vehicleRepo) FindByPlate(ctx context.Context, plate string) (*model.Vehicle, error) {
	var v model.Vehicle
	err := r.db.WithContext(ctx).Preload("Customer").Where("license_plate = ?", plate).First(&v).Error
	return &v, err
}

func (r *vehicleRepo) List(ctx context.Context, filter dto.VehicleFilter) ([]model.Vehicle, int64, error) {
	var vehicles []model.Vehicle
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Vehicle{})
	if filter.CustomerID != "" {
		q = q.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.Plate != "" {
		q = q.Where("license_plate ILIKE ?", "%"+filter.Plate+"%")
	}
	if filter.Brand != "" {
		q = q.Where("brand = ?", filter.Brand)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Customer").Order("license_plate ASC").Limit(filter.Limit).Offset(offset).Find(&vehicles).Error
	return vehicles, total, err
}

func (r *vehicleRepo) Update(ctx context.Context, v *model.Vehicle) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *vehicleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Vehicle{}, id).Error
}

func (r *vehicleRepo) IncrementTotalPaidTx(tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) error {
	return tx.Model(&model.Vehicle{}).Where("id = ?", id).
		Update("total_paid", gorm.Expr("total_paid + ?", delta)).Error
}

func (r *vehicleRepo) DB() *gorm.DB { return r.db }
