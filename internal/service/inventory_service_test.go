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

func newInventoryFixture(t *testing.T) (InventoryService, *stubPartRepo, *stubLaborRepo, *stubStockRepo) {
	t.Helper()
	partRepo := newStubPartRepo()
	laborRepo := newStubLaborRepo()
	stockRepo := newStubStockRepo()
	svc := NewInventoryService(partRepo, laborRepo, stockRepo)
	return svc, partRepo, laborRepo, stockRepo
}

func TestAdjustStockRecordsMovement(t *testing.T) {
	svc, partRepo, _, stockRepo := newInventoryFixture(t)

	part := &model.SparePart{ID: uuid.New(), Name: "Air filter", Active: true, StockQuantity: 3, MinQuantity: 5, Price: decimal.NewFromInt(12)}
	partRepo.parts[part.ID] = part

	resp, err := svc.AdjustStock(context.Background(), part.ID, dto.AdjustStockRequest{
		Delta:  7,
		Reason: "Supplier delivery",
	})
	require.NoError(t, err)
	assert.Equal(t, 10, resp.StockQuantity)
	assert.False(t, resp.LowStock)

	require.Len(t, stockRepo.movements, 1)
	mov := stockRepo.movements[0]
	assert.Equal(t, model.MovementRestock, mov.Type)
	assert.Equal(t, 7, mov.Quantity)
	assert.Equal(t, 3, mov.StockBefore)
	assert.Equal(t, 10, mov.StockAfter)
	assert.Equal(t, "Supplier delivery", mov.Reason)
}

func TestAdjustStockNegativeDeltaIsAdjustment(t *testing.T) {
	svc, partRepo, _, stockRepo := newInventoryFixture(t)

	part := &model.SparePart{ID: uuid.New(), Name: "Wiper blade", Active: true, StockQuantity: 10, Price: decimal.NewFromInt(8)}
	partRepo.parts[part.ID] = part

	resp, err := svc.AdjustStock(context.Background(), part.ID, dto.AdjustStockRequest{
		Delta:  -4,
		Reason: "Damaged units written off",
	})
	require.NoError(t, err)
	assert.Equal(t, 6, resp.StockQuantity)
	require.Len(t, stockRepo.movements, 1)
	assert.Equal(t, model.MovementAdjustment, stockRepo.movements[0].Type)
}

func TestAdjustStockRejectsNegativeResult(t *testing.T) {
	svc, partRepo, _, stockRepo := newInventoryFixture(t)

	part := &model.SparePart{ID: uuid.New(), Name: "Coolant", Active: true, StockQuantity: 2, Price: decimal.NewFromInt(15)}
	partRepo.parts[part.ID] = part

	_, err := svc.AdjustStock(context.Background(), part.ID, dto.AdjustStockRequest{
		Delta:  -5,
		Reason: "Bad count",
	})
	require.Error(t, err)
	assert.Equal(t, 2, part.StockQuantity)
	assert.Empty(t, stockRepo.movements)
}

func TestAdjustStockRejectsZeroDelta(t *testing.T) {
	svc, partRepo, _, _ := newInventoryFixture(t)

	part := &model.SparePart{ID: uuid.New(), Active: true, StockQuantity: 2, Price: decimal.NewFromInt(1)}
	partRepo.parts[part.ID] = part

	_, err := svc.AdjustStock(context.Background(), part.ID, dto.AdjustStockRequest{Delta: 0, Reason: "noop"})
	require.Error(t, err)
}

func TestLowStockFlag(t *testing.T) {
	svc, partRepo, _, _ := newInventoryFixture(t)

	low := &model.SparePart{ID: uuid.New(), Name: "Brake fluid", Active: true, StockQuantity: 2, MinQuantity: 5, Price: decimal.NewFromInt(9)}
	ok := &model.SparePart{ID: uuid.New(), Name: "Gear oil", Active: true, StockQuantity: 50, MinQuantity: 5, Price: decimal.NewFromInt(20)}
	partRepo.parts[low.ID] = low
	partRepo.parts[ok.ID] = ok

	out, err := svc.LowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Brake fluid", out[0].Name)
	assert.True(t, out[0].LowStock)
}

func TestCreatePartDefaultsMinQuantity(t *testing.T) {
	svc, _, _, _ := newInventoryFixture(t)

	resp, err := svc.CreatePart(context.Background(), dto.CreateSparePartRequest{
		Name:          "Fan belt",
		Price:         decimal.RequireFromString("18.50"),
		StockQuantity: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, resp.MinQuantity)
	assert.True(t, resp.Active)
	assert.True(t, resp.LowStock, "4 in stock with min 5")
}

func TestCreatePartRejectsNegativePrice(t *testing.T) {
	svc, _, _, _ := newInventoryFixture(t)

	_, err := svc.CreatePart(context.Background(), dto.CreateSparePartRequest{
		Name:  "Ghost part",
		Price: decimal.RequireFromString("-1.00"),
	})
	require.Error(t, err)
}

func TestLaborLifecycle(t *testing.T) {
	svc, _, laborRepo, _ := newInventoryFixture(t)

	created, err := svc.CreateLabor(context.Background(), dto.CreateLaborTypeRequest{
		Name: "Engine diagnostics",
		Cost: decimal.RequireFromString("45.00"),
	})
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	newCost := decimal.RequireFromString("55.00")
	updated, err := svc.UpdateLabor(context.Background(), id, dto.UpdateLaborTypeRequest{Cost: &newCost})
	require.NoError(t, err)
	assert.True(t, updated.Cost.Equal(newCost))

	require.NoError(t, svc.DeactivateLabor(context.Background(), id))
	assert.False(t, laborRepo.labors[id].Active)

	active, err := svc.ListLabor(context.Background(), false)
	require.NoError(t, err)
	assert.Empty(t, active)
}
