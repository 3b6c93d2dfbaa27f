package service

import (
	"context"
	"testing"

	"garagedesk/internal/dto"
	"garagedesk/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderFixture(t *testing.T) (RepairOrderService, *stubOrderRepo, *stubPartRepo, *stubLaborRepo, *stubStockRepo) {
	t.Helper()
	orderRepo := newStubOrderRepo()
	partRepo := newStubPartRepo()
	laborRepo := newStubLaborRepo()
	stockRepo := newStubStockRepo()
	svc := NewRepairOrderService(orderRepo, partRepo, laborRepo, stockRepo, nil)
	return svc, orderRepo, partRepo, laborRepo, stockRepo
}

func seedOrder(repo *stubOrderRepo, status string) *model.RepairOrder {
	o := &model.RepairOrder{
		ID:          uuid.New(),
		VehicleID:   uuid.New(),
		Status:      status,
		TotalAmount: decimal.Zero,
	}
	repo.orders[o.ID] = o
	return o
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{model.StatusPending, model.StatusInProgress, true},
		{model.StatusPending, model.StatusCompleted, true},
		{model.StatusPending, model.StatusCancelled, true},
		{model.StatusInProgress, model.StatusCompleted, true},
		{model.StatusInProgress, model.StatusCancelled, true},
		{model.StatusInProgress, model.StatusPending, false},
		{model.StatusCompleted, model.StatusPending, false},
		{model.StatusCompleted, model.StatusInProgress, false},
		{model.StatusCancelled, model.StatusPending, false},
		{model.StatusCancelled, model.StatusCompleted, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestChangeStatusRejectsBackwardMove(t *testing.T) {
	svc, orderRepo, _, _, _ := newOrderFixture(t)
	o := seedOrder(orderRepo, model.StatusInProgress)

	_, err := svc.ChangeStatus(context.Background(), o.ID, model.StatusPending)
	require.Error(t, err)
	assert.Equal(t, model.StatusInProgress, orderRepo.orders[o.ID].Status)
}

func TestChangeStatusCompletedIsTerminal(t *testing.T) {
	svc, orderRepo, _, _, _ := newOrderFixture(t)
	o := seedOrder(orderRepo, model.StatusCompleted)

	_, err := svc.ChangeStatus(context.Background(), o.ID, model.StatusInProgress)
	require.Error(t, err)
}

func TestChangeStatusCompletionStampsDate(t *testing.T) {
	svc, orderRepo, _, _, _ := newOrderFixture(t)
	o := seedOrder(orderRepo, model.StatusPending)

	resp, err := svc.ChangeStatus(context.Background(), o.ID, model.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, resp.Status)
	require.NotNil(t, orderRepo.orders[o.ID].CompletionDate)
}

func TestChangeStatusSameStatusIsNoop(t *testing.T) {
	svc, orderRepo, _, _, _ := newOrderFixture(t)
	o := seedOrder(orderRepo, model.StatusPending)

	resp, err := svc.ChangeStatus(context.Background(), o.ID, model.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, resp.Status)
}

func TestAddItemPartConsumesStock(t *testing.T) {
	svc, orderRepo, partRepo, _, stockRepo := newOrderFixture(t)
	o := seedOrder(orderRepo, model.StatusPending)

	part := &model.SparePart{
		ID: uuid.New(), Name: "Brake pad", Active: true,
		Price: decimal.RequireFromString("25.50"), StockQuantity: 10, MinQuantity: 2,
	}
	partRepo.parts[part.ID] = part

	partID := part.ID.String()
	resp, err := svc.AddItem(context.Background(), o.ID, dto.AddOrderItemRequest{
		SparePartID: &partID,
		Quantity:    2,
	})
	require.NoError(t, err)

	assert.True(t, resp.TotalAmount.Equal(decimal.RequireFromString("51.00")), "got %s", resp.TotalAmount)
	assert.Equal(t, 8, part.StockQuantity)

	require.Len(t, stockRepo.movements, 1)
	mov := stockRepo.movements[0]
	assert.Equal(t, model.MovementConsumption, mov.Type)
	assert.Equal(t, -2, mov.Quantity)
	assert.Equal(t, 10, mov.StockBefore)
	assert.Equal(t, 8, mov.StockAfter)
	require.NotNil(t, mov.ReferenceID)
	assert.Equal(t, o.ID, *mov.ReferenceID)
}

func TestAddItemInsufficientStock(t *testing.T) {
	svc, orderRepo, partRepo, _, stockRepo := newOrderFixture(t)
	o := seedOrder(orderRepo, model.StatusPending)

	part := &model.SparePart{
		ID: uuid.New(), Name: "Oil filter", Active: true,
		Price: decimal.RequireFromString("9.90"), StockQuantity: 1,
	}
	partRepo.parts[part.ID] = part

	partID := part.ID.String()
	_, err := svc.AddItem(context.Background(), o.ID, dto.AddOrderItemRequest{
		SparePartID: &partID,
		Quantity:    3,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient stock")
	assert.Equal(t, 1, part.StockQuantity)
	assert.Empty(t, stockRepo.movements)
}

func TestAddItemLaborLine(t *testing.T) {
	svc, orderRepo, _, laborRepo, stockRepo := newOrderFixture(t)
	o := seedOrder(orderRepo, model.StatusInProgress)

	labor := &model.LaborType{
		ID: uuid.New(), Name: "Wheel alignment", Active: true,
		Cost: decimal.RequireFromString("80.00"),
	}
	laborRepo.labors[labor.ID] = labor

	laborID := labor.ID.String()
	resp, err := svc.AddItem(context.Background(), o.ID, dto.AddOrderItemRequest{
		LaborTypeID: &laborID,
	})
	require.NoError(t, err)
	assert.True(t, resp.TotalAmount.Equal(decimal.RequireFromString("80.00")))
	assert.Empty(t, stockRepo.movements, "labor lines do not move stock")
}

func TestAddItemRequiresExactlyOneTarget(t *testing.T) {
	svc, orderRepo, partRepo, laborRepo, _ := newOrderFixture(t)
	o := seedOrder(orderRepo, model.StatusPending)

	part := &model.SparePart{ID: uuid.New(), Active: true, Price: decimal.NewFromInt(10), StockQuantity: 5}
	partRepo.parts[part.ID] = part
	labor := &model.LaborType{ID: uuid.New(), Active: true, Cost: decimal.NewFromInt(20)}
	laborRepo.labors[labor.ID] = labor

	partID := part.ID.String()
	laborID := labor.ID.String()

	_, err := svc.AddItem(context.Background(), o.ID, dto.AddOrderItemRequest{})
	require.Error(t, err)

	_, err = svc.AddItem(context.Background(), o.ID, dto.AddOrderItemRequest{
		SparePartID: &partID, LaborTypeID: &laborID,
	})
	require.Error(t, err)
}

func TestAddItemRejectedOnClosedOrder(t *testing.T) {
	svc, orderRepo, partRepo, _, _ := newOrderFixture(t)
	o := seedOrder(orderRepo, model.StatusCompleted)

	part := &model.SparePart{ID: uuid.New(), Active: true, Price: decimal.NewFromInt(10), StockQuantity: 5}
	partRepo.parts[part.ID] = part
	partID := part.ID.String()

	_, err := svc.AddItem(context.Background(), o.ID, dto.AddOrderItemRequest{SparePartID: &partID, Quantity: 1})
	require.Error(t, err)
}

func TestRemoveItemRestoresStockAndTotal(t *testing.T) {
	svc, orderRepo, partRepo, _, stockRepo := newOrderFixture(t)
	o := seedOrder(orderRepo, model.StatusPending)

	part := &model.SparePart{
		ID: uuid.New(), Name: "Spark plug", Active: true,
		Price: decimal.RequireFromString("4.00"), StockQuantity: 20,
	}
	partRepo.parts[part.ID] = part

	partID := part.ID.String()
	resp, err := svc.AddItem(context.Background(), o.ID, dto.AddOrderItemRequest{SparePartID: &partID, Quantity: 4})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 16, part.StockQuantity)

	itemID := uuid.MustParse(resp.Items[0].ID)
	resp, err = svc.RemoveItem(context.Background(), o.ID, itemID)
	require.NoError(t, err)

	assert.True(t, resp.TotalAmount.IsZero())
	assert.Equal(t, 20, part.StockQuantity)

	require.Len(t, stockRepo.movements, 2)
	assert.Equal(t, model.MovementRestore, stockRepo.movements[1].Type)
	assert.Equal(t, 4, stockRepo.movements[1].Quantity)
}

func TestCancelRestoresConsumedStock(t *testing.T) {
	svc, orderRepo, partRepo, _, stockRepo := newOrderFixture(t)
	o := seedOrder(orderRepo, model.StatusInProgress)

	part := &model.SparePart{
		ID: uuid.New(), Name: "Timing belt", Active: true,
		Price: decimal.RequireFromString("35.00"), StockQuantity: 6,
	}
	partRepo.parts[part.ID] = part

	partID := part.ID.String()
	_, err := svc.AddItem(context.Background(), o.ID, dto.AddOrderItemRequest{SparePartID: &partID, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, 4, part.StockQuantity)

	_, err = svc.ChangeStatus(context.Background(), o.ID, model.StatusCancelled)
	require.NoError(t, err)

	assert.Equal(t, 6, part.StockQuantity)
	require.Len(t, stockRepo.movements, 2)
	assert.Equal(t, model.MovementRestore, stockRepo.movements[1].Type)
}

func TestCreateOrderStartsPendingWithZeroTotal(t *testing.T) {
	svc, _, _, _, _ := newOrderFixture(t)

	resp, err := svc.Create(context.Background(), nil, dto.CreateRepairOrderRequest{
		VehicleID:     uuid.NewString(),
		ReceptionDate: "2026-08-15",
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, resp.Status)
	assert.True(t, resp.TotalAmount.IsZero())
	assert.Equal(t, "2026-08-15", resp.ReceptionDate)
	assert.Empty(t, resp.Items)
}
