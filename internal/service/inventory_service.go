package service

import (
	"context"
	"errors"
	"fmt"

	"garagedesk/internal/dto"
	"garagedesk/internal/model"
	"garagedesk/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InventoryService interface {
	// Spare parts
	CreatePart(ctx context.Context, req dto.CreateSparePartRequest) (*dto.SparePartResponse, error)
	GetPart(ctx context.Context, id uuid.UUID) (*dto.SparePartResponse, error)
	ListParts(ctx context.Context, filter dto.SparePartFilter) (*dto.SparePartListResponse, error)
	UpdatePart(ctx context.Context, id uuid.UUID, req dto.UpdateSparePartRequest) (*dto.SparePartResponse, error)
	DeactivatePart(ctx context.Context, id uuid.UUID) error
	ReactivatePart(ctx context.Context, id uuid.UUID) error
	AdjustStock(ctx context.Context, id uuid.UUID, req dto.AdjustStockRequest) (*dto.SparePartResponse, error)
	LowStock(ctx context.Context) ([]dto.SparePartResponse, error)
	Movements(ctx context.Context, partID *uuid.UUID, limit int) ([]dto.StockMovementResponse, error)

	// Labor types
	CreateLabor(ctx context.Context, req dto.CreateLaborTypeRequest) (*dto.LaborTypeResponse, error)
	ListLabor(ctx context.Context, includeInactive bool) ([]dto.LaborTypeResponse, error)
	UpdateLabor(ctx context.Context, id uuid.UUID, req dto.UpdateLaborTypeRequest) (*dto.LaborTypeResponse, error)
	DeactivateLabor(ctx context.Context, id uuid.UUID) error
}

type inventoryService struct {
	partRepo  repository.SparePartRepository
	laborRepo repository.LaborTypeRepository
	stockRepo repository.StockMovementRepository
}

func NewInventoryService(
	partRepo repository.SparePartRepository,
	laborRepo repository.LaborTypeRepository,
	stockRepo repository.StockMovementRepository,
) InventoryService {
	return &inventoryService{partRepo: partRepo, laborRepo: laborRepo, stockRepo: stockRepo}
}

func (s *inventoryService) CreatePart(ctx context.Context, req dto.CreateSparePartRequest) (*dto.SparePartResponse, error) {
	if req.Price.IsNegative() {
		return nil, errors.New("price cannot be negative")
	}
	part := &model.SparePart{
		Name:          req.Name,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		MinQuantity:   req.MinQuantity,
		Active:        true,
	}
	if part.MinQuantity == 0 {
		part.MinQuantity = 5
	}
	if err := s.partRepo.Create(ctx, part); err != nil {
		return nil, err
	}
	resp := partToResponse(part)
	return &resp, nil
}

func (s *inventoryService) GetPart(ctx context.Context, id uuid.UUID) (*dto.SparePartResponse, error) {
	part, err := s.partRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("spare part not found")
	}
	resp := partToResponse(part)
	return &resp, nil
}

func (s *inventoryService) ListParts(ctx context.Context, filter dto.SparePartFilter) (*dto.SparePartListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	parts, total, err := s.partRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SparePartResponse, 0, len(parts))
	for i := range parts {
		items = append(items, partToResponse(&parts[i]))
	}
	return &dto.SparePartListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *inventoryService) UpdatePart(ctx context.Context, id uuid.UUID, req dto.UpdateSparePartRequest) (*dto.SparePartResponse, error) {
	part, err := s.partRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("spare part not found")
	}
	if req.Name != "" {
		part.Name = req.Name
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, errors.New("price cannot be negative")
		}
		part.Price = *req.Price
	}
	if req.MinQuantity != nil {
		part.MinQuantity = *req.MinQuantity
	}
	if err := s.partRepo.Update(ctx, part); err != nil {
		return nil, err
	}
	resp := partToResponse(part)
	return &resp, nil
}

func (s *inventoryService) DeactivatePart(ctx context.Context, id uuid.UUID) error {
	if _, err := s.partRepo.FindByID(ctx, id); err != nil {
		return errors.New("spare part not found")
	}
	return s.partRepo.Deactivate(ctx, id)
}

func (s *inventoryService) ReactivatePart(ctx context.Context, id uuid.UUID) error {
	if _, err := s.partRepo.FindByID(ctx, id); err != nil {
		return errors.New("spare part not found")
	}
	return s.partRepo.Reactivate(ctx, id)
}

// AdjustStock applies a signed manual correction and records the movement in
// the same transaction. Negative results are rejected before touching the row.
func (s *inventoryService) AdjustStock(ctx context.Context, id uuid.UUID, req dto.AdjustStockRequest) (*dto.SparePartResponse, error) {
	part, err := s.partRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("spare part not found")
	}
	if req.Delta == 0 {
		return nil, errors.New("delta cannot be zero")
	}
	newStock := part.StockQuantity + req.Delta
	if newStock < 0 {
		return nil, fmt.Errorf("adjustment would leave stock negative (%d %+d)", part.StockQuantity, req.Delta)
	}

	movType := model.MovementAdjustment
	if req.Delta > 0 {
		movType = model.MovementRestock
	}

	txErr := runTx(ctx, s.partRepo.DB(), func(tx *gorm.DB) error {
		if err := s.partRepo.AdjustStockTx(tx, id, req.Delta); err != nil {
			return err
		}
		return s.stockRepo.CreateTx(tx, &model.StockMovement{
			SparePartID: id,
			Type:        movType,
			Quantity:    req.Delta,
			StockBefore: part.StockQuantity,
			StockAfter:  newStock,
			Reason:      req.Reason,
		})
	})
	if txErr != nil {
		return nil, txErr
	}

	part.StockQuantity = newStock
	resp := partToResponse(part)
	return &resp, nil
}

func (s *inventoryService) LowStock(ctx context.Context) ([]dto.SparePartResponse, error) {
	parts, err := s.partRepo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SparePartResponse, 0, len(parts))
	for i := range parts {
		items = append(items, partToResponse(&parts[i]))
	}
	return items, nil
}

func (s *inventoryService) Movements(ctx context.Context, partID *uuid.UUID, limit int) ([]dto.StockMovementResponse, error) {
	if limit < 1 || limit > 500 {
		limit = 100
	}
	var (
		movements []model.StockMovement
		err       error
	)
	if partID != nil {
		movements, err = s.stockRepo.ListByPart(ctx, *partID, limit)
	} else {
		movements, err = s.stockRepo.ListRecent(ctx, limit)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockMovementResponse, 0, len(movements))
	for i := range movements {
		items = append(items, movementToResponse(&movements[i]))
	}
	return items, nil
}

// ─── Labor types ─────────────────────────────────────────────────────────────

func (s *inventoryService) CreateLabor(ctx context.Context, req dto.CreateLaborTypeRequest) (*dto.LaborTypeResponse, error) {
	if req.Cost.IsNegative() {
		return nil, errors.New("cost cannot be negative")
	}
	labor := &model.LaborType{Name: req.Name, Cost: req.Cost, Active: true}
	if err := s.laborRepo.Create(ctx, labor); err != nil {
		return nil, err
	}
	resp := laborToResponse(labor)
	return &resp, nil
}

func (s *inventoryService) ListLabor(ctx context.Context, includeInactive bool) ([]dto.LaborTypeResponse, error) {
	labors, err := s.laborRepo.List(ctx, includeInactive)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LaborTypeResponse, 0, len(labors))
	for i := range labors {
		items = append(items, laborToResponse(&labors[i]))
	}
	return items, nil
}

func (s *inventoryService) UpdateLabor(ctx context.Context, id uuid.UUID, req dto.UpdateLaborTypeRequest) (*dto.LaborTypeResponse, error) {
	labor, err := s.laborRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("labor type not found")
	}
	if req.Name != "" {
		labor.Name = req.Name
	}
	if req.Cost != nil {
		if req.Cost.IsNegative() {
			return nil, errors.New("cost cannot be negative")
		}
		labor.Cost = *req.Cost
	}
	if err := s.laborRepo.Update(ctx, labor); err != nil {
		return nil, err
	}
	resp := laborToResponse(labor)
	return &resp, nil
}

func (s *inventoryService) DeactivateLabor(ctx context.Context, id uuid.UUID) error {
	if _, err := s.laborRepo.FindByID(ctx, id); err != nil {
		return errors.New("labor type not found")
	}
	return s.laborRepo.Deactivate(ctx, id)
}

func partToResponse(p *model.SparePart) dto.SparePartResponse {
	return dto.SparePartResponse{
		ID:            p.ID.String(),
		Name:          p.Name,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		MinQuantity:   p.MinQuantity,
		Active:        p.Active,
		LowStock:      p.StockQuantity <= p.MinQuantity,
	}
}

func laborToResponse(lt *model.LaborType) dto.LaborTypeResponse {
	return dto.LaborTypeResponse{
		ID:     lt.ID.String(),
		Name:   lt.Name,
		Cost:   lt.Cost,
		Active: lt.Active,
	}
}

func movementToResponse(m *model.StockMovement) dto.StockMovementResponse {
	resp := dto.StockMovementResponse{
		ID:          m.ID.String(),
		SparePartID: m.SparePartID.String(),
		Type:        m.Type,
		Quantity:    m.Quantity,
		StockBefore: m.StockBefore,
		StockAfter:  m.StockAfter,
		Reason:      m.Reason,
		CreatedAt:   m.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if m.ReferenceID != nil {
		id := m.ReferenceID.String()
		resp.ReferenceID = &id
	}
	if m.SparePart != nil {
		resp.PartName = m.SparePart.Name
	}
	return resp
}
