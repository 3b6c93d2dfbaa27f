package repository

import (
	"context"

	"garagedesk/internal/dto"
	"garagedesk/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SparePartRepository defines the data access contract for spare parts.
type SparePartRepository interface {
	Create(ctx context.Context, p *model.SparePart) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.SparePart, error)
	List(ctx context.Context, filter dto.SparePartFilter) ([]model.SparePart, int64, error)
	ListActive(ctx context.Context) ([]model.SparePart, error)
	ListLowStock(ctx context.Context) ([]model.SparePart, error)
	Update(ctx context.Context, p *model.SparePart) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error

	// Used inside transactions — callers must pass the tx instance
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.SparePart, error)
	AdjustStockTx(tx *gorm.DB, id uuid.UUID, delta int) error

	DB() *gorm.DB
}

type sparePartRepo struct{ db *gorm.DB }

func NewSparePartRepository(db *gorm.DB) SparePartRepository { return &sparePartRepo{db: db} }

func (r *sparePartRepo) Create(ctx context.Context, p *model.SparePart) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *sparePartRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.SparePart, error) {
	var p model.SparePart
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *sparePartRepo) List(ctx context.Context, filter dto.SparePartFilter) ([]model.SparePart, int64, error) {
	var parts []model.SparePart
	var total int64

	q := r.db.WithContext(ctx).Model(&model.SparePart{})

	// Active filter: "false" = inactive, "all" = everything, default active
	switch filter.Active {
	case "false":
		q = q.Where("active = false")
	case "all":
		// no filter
	default:
		q = q.Where("active = true")
	}
	if filter.Name != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Name+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("name ASC").Limit(filter.Limit).Offset(offset).Find(&parts).Error
	return parts, total, err
}

func (r *sparePartRepo) ListActive(ctx context.Context) ([]model.SparePart, error) {
	var parts []model.SparePart
	err := r.db.WithContext(ctx).Where("active = true").Order("name ASC").Find(&parts).Error
	return parts, err
}

func (r *sparePartRepo) ListLowStock(ctx context.Context) ([]model.SparePart, error) {
	var parts []model.SparePart
	err := r.db.WithContext(ctx).
		Where("active = true AND stock_quantity <= min_quantity").
		Order("stock_quantity ASC").Find(&parts).Error
	return parts, err
}

func (r *sparePartRepo) Update(ctx context.Context, p *model.SparePart) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *sparePartRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.SparePart{}).Where("id = ?", id).Update("active", false).Error
}

func (r *sparePartRepo) Reactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.SparePart{}).Where("id = ?", id).Update("active", true).Error
}

func (r *sparePartRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.SparePart, error) {
	var p model.SparePart
	err := tx.First(&p, id).Error
	return &p, err
}

func (r *sparePartRepo) AdjustStockTx(tx *gorm.DB, id uuid.UUID, delta int) error {
	return tx.Model(&model.SparePart{}).Where("id = ?", id).
		Update("stock_quantity", gorm.Expr("stock_quantity + ?", delta)).Error
}

func (r *sparePartRepo) DB() *gorm.DB { return r.db }
