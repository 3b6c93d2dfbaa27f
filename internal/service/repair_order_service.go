package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"garagedesk/internal/dto"
	"garagedesk/internal/model"
	"garagedesk/internal/repository"
	"garagedesk/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type RepairOrderService interface {
	Create(ctx context.Context, createdBy *uuid.UUID, req dto.CreateRepairOrderRequest) (*dto.RepairOrderResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.RepairOrderResponse, error)
	List(ctx context.Context, filter dto.RepairOrderFilter) (*dto.RepairOrderListResponse, error)
	Board(ctx context.Context) (*dto.KanbanBoardResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateRepairOrderRequest) (*dto.RepairOrderResponse, error)
	ChangeStatus(ctx context.Context, id uuid.UUID, newStatus string) (*dto.RepairOrderResponse, error)
	AddItem(ctx context.Context, orderID uuid.UUID, req dto.AddOrderItemRequest) (*dto.RepairOrderResponse, error)
	RemoveItem(ctx context.Context, orderID, itemID uuid.UUID) (*dto.RepairOrderResponse, error)
}

type repairOrderService struct {
	repo       repository.RepairOrderRepository
	partRepo   repository.SparePartRepository
	laborRepo  repository.LaborTypeRepository
	stockRepo  repository.StockMovementRepository
	dispatcher *worker.Dispatcher
}

func NewRepairOrderService(
	repo repository.RepairOrderRepository,
	partRepo repository.SparePartRepository,
	laborRepo repository.LaborTypeRepository,
	stockRepo repository.StockMovementRepository,
	dispatcher *worker.Dispatcher,
) RepairOrderService {
	return &repairOrderService{
		repo:       repo,
		partRepo:   partRepo,
		laborRepo:  laborRepo,
		stockRepo:  stockRepo,
		dispatcher: dispatcher,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── Status workflow ───────────────────────────────────────────────────────────
// Forward moves only: a pending card may go to in-progress or straight to
// completed; cancellation is allowed from any non-terminal state. Completed
// and cancelled are terminal. The board updates optimistically client-side;
// a rejected transition here is the rollback signal.

var statusTransitions = map[string][]string{
	model.StatusPending:    {model.StatusInProgress, model.StatusCompleted, model.StatusCancelled},
	model.StatusInProgress: {model.StatusCompleted, model.StatusCancelled},
	model.StatusCompleted:  {},
	model.StatusCancelled:  {},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to string) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func (s *repairOrderService) Create(ctx context.Context, createdBy *uuid.UUID, req dto.CreateRepairOrderRequest) (*dto.RepairOrderResponse, error) {
	vehicleID, err := uuid.Parse(req.VehicleID)
	if err != nil {
		return nil, errors.New("invalid vehicle_id")
	}

	reception := time.Now()
	if req.ReceptionDate != "" {
		reception, err = time.Parse("2006-01-02", req.ReceptionDate)
		if err != nil {
			return nil, errors.New("invalid reception_date")
		}
	}

	order := &model.RepairOrder{
		VehicleID:     vehicleID,
		Status:        model.StatusPending,
		ReceptionDate: reception,
		TotalAmount:   decimal.Zero,
		Notes:         req.Notes,
		CreatedBy:     createdBy,
	}
	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}
	resp := orderToResponse(order)
	return &resp, nil
}

func (s *repairOrderService) Get(ctx context.Context, id uuid.UUID) (*dto.RepairOrderResponse, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("repair order not found")
	}
	resp := orderToResponse(order)
	return &resp, nil
}

func (s *repairOrderService) List(ctx context.Context, filter dto.RepairOrderFilter) (*dto.RepairOrderListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	orders, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RepairOrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, orderToResponse(&orders[i]))
	}
	return &dto.RepairOrderListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// Board groups open orders into kanban columns.
func (s *repairOrderService) Board(ctx context.Context) (*dto.KanbanBoardResponse, error) {
	orders, err := s.repo.ListOpen(ctx)
	if err != nil {
		return nil, err
	}
	board := &dto.KanbanBoardResponse{
		Pending:    []dto.RepairOrderResponse{},
		InProgress: []dto.RepairOrderResponse{},
		Completed:  []dto.RepairOrderResponse{},
		Cancelled:  []dto.RepairOrderResponse{},
	}
	for i := range orders {
		resp := orderToResponse(&orders[i])
		switch orders[i].Status {
		case model.StatusPending:
			board.Pending = append(board.Pending, resp)
		case model.StatusInProgress:
			board.InProgress = append(board.InProgress, resp)
		case model.StatusCompleted:
			board.Completed = append(board.Completed, resp)
		case model.StatusCancelled:
			board.Cancelled = append(board.Cancelled, resp)
		}
	}
	return board, nil
}

func (s *repairOrderService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateRepairOrderRequest) (*dto.RepairOrderResponse, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("repair order not found")
	}
	if req.Notes != nil {
		order.Notes = req.Notes
	}
	if err := s.repo.Update(ctx, order); err != nil {
		return nil, err
	}
	resp := orderToResponse(order)
	return &resp, nil
}

// ChangeStatus applies one kanban move. Exactly one status update is issued
// per call; an invalid move returns an error without touching the row.
// Completing an order stamps the completion date and enqueues invoice
// generation; cancelling restores all consumed stock in the same transaction.
func (s *repairOrderService) ChangeStatus(ctx context.Context, id uuid.UUID, newStatus string) (*dto.RepairOrderResponse, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("repair order not found")
	}
	if order.Status == newStatus {
		resp := orderToResponse(order)
		return &resp, nil
	}
	if !CanTransition(order.Status, newStatus) {
		return nil, fmt.Errorf("cannot move order from %q to %q", order.Status, newStatus)
	}

	var completion *time.Time
	if newStatus == model.StatusCompleted {
		now := time.Now()
		completion = &now
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if newStatus == model.StatusCancelled {
			if err := s.restoreStockTx(tx, order); err != nil {
				return err
			}
		}
		return s.repo.UpdateStatusTx(tx, id, newStatus, completion)
	})
	if txErr != nil {
		return nil, txErr
	}

	order.Status = newStatus
	order.CompletionDate = completion

	// Async invoice job — best-effort, fire & forget
	if newStatus == model.StatusCompleted && s.dispatcher != nil {
		_ = s.dispatcher.EnqueueInvoice(ctx, worker.InvoiceJobPayload{
			RepairOrderID: order.ID.String(),
		})
	}

	resp := orderToResponse(order)
	return &resp, nil
}

// restoreStockTx returns every consumed part to inventory with a restore
// movement per line, mirroring the original consumption.
func (s *repairOrderService) restoreStockTx(tx *gorm.DB, order *model.RepairOrder) error {
	for _, item := range order.Items {
		if item.SparePartID == nil {
			continue
		}
		stockBefore := 0
		if part, err := s.partRepo.FindByIDTx(tx, *item.SparePartID); err == nil && part != nil {
			stockBefore = part.StockQuantity
		}
		if err := s.partRepo.AdjustStockTx(tx, *item.SparePartID, item.Quantity); err != nil {
			return err
		}
		ref := order.ID
		mov := &model.StockMovement{
			SparePartID: *item.SparePartID,
			Type:        model.MovementRestore,
			Quantity:    item.Quantity,
			StockBefore: stockBefore,
			StockAfter:  stockBefore + item.Quantity,
			Reason:      fmt.Sprintf("Order %s cancelled", order.ID),
			ReferenceID: &ref,
		}
		if err := s.stockRepo.CreateTx(tx, mov); err != nil {
			return err
		}
	}
	return nil
}

// AddItem appends one billable line in a single transaction: item row, stock
// decrement with movement record (for parts), and order total recompute.
func (s *repairOrderService) AddItem(ctx context.Context, orderID uuid.UUID, req dto.AddOrderItemRequest) (*dto.RepairOrderResponse, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, errors.New("repair order not found")
	}
	if order.Status == model.StatusCompleted || order.Status == model.StatusCancelled {
		return nil, errors.New("cannot modify a closed order")
	}

	if (req.SparePartID == nil) == (req.LaborTypeID == nil) {
		return nil, errors.New("exactly one of spare_part_id or labor_type_id is required")
	}

	qty := req.Quantity
	if qty < 1 {
		qty = 1
	}

	item := model.RepairOrderItem{
		RepairOrderID: orderID,
		Quantity:      qty,
		UnitPrice:     decimal.Zero,
		LaborCost:     decimal.Zero,
	}

	var partID uuid.UUID
	if req.SparePartID != nil {
		partID, err = uuid.Parse(*req.SparePartID)
		if err != nil {
			return nil, errors.New("invalid spare_part_id")
		}
		part, err := s.partRepo.FindByID(ctx, partID)
		if err != nil {
			return nil, errors.New("spare part not found")
		}
		if !part.Active {
			return nil, fmt.Errorf("spare part %s is inactive", part.Name)
		}
		if part.StockQuantity < qty {
			return nil, fmt.Errorf("insufficient stock for %s: %d in stock, %d requested", part.Name, part.StockQuantity, qty)
		}
		item.SparePartID = &partID
		item.UnitPrice = part.Price
	} else {
		laborID, err := uuid.Parse(*req.LaborTypeID)
		if err != nil {
			return nil, errors.New("invalid labor_type_id")
		}
		labor, err := s.laborRepo.FindByID(ctx, laborID)
		if err != nil {
			return nil, errors.New("labor type not found")
		}
		item.LaborTypeID = &laborID
		item.LaborCost = labor.Cost
		item.Quantity = 1
	}

	item.TotalAmount = item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))).Add(item.LaborCost)
	newTotal := order.TotalAmount.Add(item.TotalAmount)

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateItemTx(tx, &item); err != nil {
			return err
		}
		if item.SparePartID != nil {
			stockBefore := 0
			if part, err := s.partRepo.FindByIDTx(tx, partID); err == nil && part != nil {
				stockBefore = part.StockQuantity
			}
			if err := s.partRepo.AdjustStockTx(tx, partID, -item.Quantity); err != nil {
				return err
			}
			ref := orderID
			mov := &model.StockMovement{
				SparePartID: partID,
				Type:        model.MovementConsumption,
				Quantity:    -item.Quantity,
				StockBefore: stockBefore,
				StockAfter:  stockBefore - item.Quantity,
				Reason:      fmt.Sprintf("Order %s", orderID),
				ReferenceID: &ref,
			}
			if err := s.stockRepo.CreateTx(tx, mov); err != nil {
				return err
			}
		}
		return s.repo.UpdateTotalTx(tx, orderID, newTotal)
	})
	if txErr != nil {
		return nil, txErr
	}

	order.Items = append(order.Items, item)
	order.TotalAmount = newTotal
	resp := orderToResponse(order)
	return &resp, nil
}

// RemoveItem deletes a line, restores part stock, and recomputes the total —
// all in one transaction.
func (s *repairOrderService) RemoveItem(ctx context.Context, orderID, itemID uuid.UUID) (*dto.RepairOrderResponse, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, errors.New("repair order not found")
	}
	if order.Status == model.StatusCompleted || order.Status == model.StatusCancelled {
		return nil, errors.New("cannot modify a closed order")
	}

	var target *model.RepairOrderItem
	for i := range order.Items {
		if order.Items[i].ID == itemID {
			target = &order.Items[i]
			break
		}
	}
	if target == nil {
		return nil, errors.New("order item not found")
	}

	newTotal := order.TotalAmount.Sub(target.TotalAmount)

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.DeleteItemTx(tx, itemID); err != nil {
			return err
		}
		if target.SparePartID != nil {
			stockBefore := 0
			if part, err := s.partRepo.FindByIDTx(tx, *target.SparePartID); err == nil && part != nil {
				stockBefore = part.StockQuantity
			}
			if err := s.partRepo.AdjustStockTx(tx, *target.SparePartID, target.Quantity); err != nil {
				return err
			}
			ref := orderID
			mov := &model.StockMovement{
				SparePartID: *target.SparePartID,
				Type:        model.MovementRestore,
				Quantity:    target.Quantity,
				StockBefore: stockBefore,
				StockAfter:  stockBefore + target.Quantity,
				Reason:      fmt.Sprintf("Line removed from order %s", orderID),
				ReferenceID: &ref,
			}
			if err := s.stockRepo.CreateTx(tx, mov); err != nil {
				return err
			}
		}
		return s.repo.UpdateTotalTx(tx, orderID, newTotal)
	})
	if txErr != nil {
		return nil, txErr
	}

	remaining := order.Items[:0]
	for i := range order.Items {
		if order.Items[i].ID != itemID {
			remaining = append(remaining, order.Items[i])
		}
	}
	order.Items = remaining
	order.TotalAmount = newTotal
	resp := orderToResponse(order)
	return &resp, nil
}

func orderToResponse(o *model.RepairOrder) dto.RepairOrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		r := dto.OrderItemResponse{
			ID:          item.ID.String(),
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LaborCost:   item.LaborCost,
			TotalAmount: item.TotalAmount,
		}
		if item.SparePartID != nil {
			id := item.SparePartID.String()
			r.SparePartID = &id
			if item.SparePart != nil {
				r.Description = item.SparePart.Name
			}
		}
		if item.LaborTypeID != nil {
			id := item.LaborTypeID.String()
			r.LaborTypeID = &id
			if item.LaborType != nil {
				r.Description = item.LaborType.Name
			}
		}
		items = append(items, r)
	}

	resp := dto.RepairOrderResponse{
		ID:            o.ID.String(),
		VehicleID:     o.VehicleID.String(),
		Status:        o.Status,
		ReceptionDate: o.ReceptionDate.Format("2006-01-02"),
		TotalAmount:   o.TotalAmount,
		Notes:         o.Notes,
		Items:         items,
		CreatedAt:     o.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if o.CompletionDate != nil {
		d := o.CompletionDate.Format("2006-01-02")
		resp.CompletionDate = &d
	}
	if o.Vehicle != nil {
		resp.LicensePlate = o.Vehicle.LicensePlate
	}
	return resp
}
