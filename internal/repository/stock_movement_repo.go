package repository

import (
	"context"

	"garagedesk/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StockMovementRepository interface {
	// CreateTx records a movement inside the transaction that moved the stock.
	CreateTx(tx *gorm.DB, m *model.StockMovement) error
	ListByPart(ctx context.Context, partID uuid.UUID, limit int) ([]model.StockMovement, error)
	ListRecent(ctx context.Context, limit int) ([]model.StockMovement, error)
}

type stockMovementRepo struct{ db *gorm.DB }

func NewStockMovementRepository(db *gorm.DB) StockMovementRepository {
	return &stockMovementRepo{db: db}
}

func (r *stockMovementRepo) CreateTx(tx *gorm.DB, m *model.StockMovement) error {
	return tx.Create(m).Error
}

func (r *stockMovementRepo) ListByPart(ctx context.Context, partID uuid.UUID, limit int) ([]model.StockMovement, error) {
	var movements []model.StockMovement
	err := r.db.WithContext(ctx).Preload("SparePart").
		Where("spare_part_id = ?", partID).
		Order("created_at DESC").Limit(limit).Find(&movements).Error
	return movements, err
}

func (r *stockMovementRepo) ListRecent(ctx context.Context, limit int) ([]model.StockMovement, error) {
	var movements []model.StockMovement
	err := r.db.WithContext(ctx).Preload("SparePart").
		Order("created_at DESC").Limit(limit).Find(&movements).Error
	return movements, err
}
