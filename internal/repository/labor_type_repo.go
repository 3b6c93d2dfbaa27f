package repository

import (
	"context"

	"garagedesk/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LaborTypeRepository interface {
	Create(ctx context.Context, lt *model.LaborType) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.LaborType, error)
	List(ctx context.Context, includeInactive bool) ([]model.LaborType, error)
	Update(ctx context.Context, lt *model.LaborType) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type laborTypeRepo struct{ db *gorm.DB }

func NewLaborTypeRepository(db *gorm.DB) LaborTypeRepository { return &laborTypeRepo{db: db} }

func (r *laborTypeRepo) Create(ctx context.Context, lt *model.LaborType) error {
	return r.db.WithContext(ctx).Create(lt).Error
}

func (r *laborTypeRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.LaborType, error) {
	var lt model.LaborType
	err := r.db.WithContext(ctx).First(&lt, id).Error
	return &lt, err
}

func (r *laborTypeRepo) List(ctx context.Context, includeInactive bool) ([]model.LaborType, error) {
	var types []model.LaborType
	q := r.db.WithContext(ctx)
	if !includeInactive {
		q = q.Where("active = true")
	}
	err := q.Order("name ASC").Find(&types).Error
	return types, err
}

func (r *laborTypeRepo) Update(ctx context.Context, lt *model.LaborType) error {
	return r.db.WithContext(ctx).Save(lt).Error
}

func (r *laborTypeRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.LaborType{}).Where("id = ?", id).Update("active", false).Error
}
