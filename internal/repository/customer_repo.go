package repository

import (
	"context"

	"garagedesk/internal/dto"
	"garagedesk/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CustomerRepository defines the data access contract for customers.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type CustomerRepository interface {
	Create(ctx context.Context, c *model.Customer) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error)
	List(ctx context.Context, filter dto.CustomerFilter) ([]model.Customer, int64, error)
	Update(ctx context.Context, c *model.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountVehicles(ctx context.Context, id uuid.UUID) (int64, error)
}

type customerRepo struct{ db *gorm.DB }

func NewCustomerRepository(db *gorm.DB) CustomerRepository { return &customerRepo{db: db} }

func (r *customerRepo) Create(ctx context.Context, c *model.Customer) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *customerRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	var c model.Customer
	err := r.db.WithContext(ctx).Preload("Vehicles").First(&c, id).Error
	return &c, err
}

func (r *customerRepo) List(ctx context.Context, filter dto.CustomerFilter) ([]model.Customer, int64, error) {
	var customers []model.Customer
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Customer{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where("name ILIKE ? OR phone ILIKE ?", pattern, pattern)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("name ASC").Limit(filter.Limit).Offset(offset).Find(&customers).Error
	return customers, total, err
}

func (r *customerRepo) Update(ctx context.Context, c *model.Customer) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *customerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Customer{}, id).Error
}

func (r *customerRepo) CountVehicles(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Vehicle{}).Where("customer_id = ?", id).Count(&n).Error
	return n, err
}
