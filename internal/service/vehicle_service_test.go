package service

import (
	"context"
	"testing"

	"garagedesk/internal/model"
	"garagedesk/internal/money"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeDebtOutstanding(t *testing.T) {
	orders := []model.RepairOrder{
		{Status: model.StatusCompleted, TotalAmount: decimal.RequireFromString("545.00")},
	}
	payments := []model.Payment{
		{Amount: decimal.RequireFromString("350.00")},
	}

	debt := ComputeDebt(orders, payments)

	assert.True(t, debt.TotalExpense.Equal(decimal.RequireFromString("545.00")))
	assert.True(t, debt.TotalPaid.Equal(decimal.RequireFromString("350.00")))
	assert.True(t, debt.RemainingDebt.Equal(decimal.RequireFromString("195.00")))
	assert.Equal(t, money.StatusOutstanding, debt.Status)
}

func TestComputeDebtExcludesCancelledOrders(t *testing.T) {
	orders := []model.RepairOrder{
		{Status: model.StatusCompleted, TotalAmount: decimal.RequireFromString("200.00")},
		{Status: model.StatusCancelled, TotalAmount: decimal.RequireFromString("999.00")},
		{Status: model.StatusPending, TotalAmount: decimal.RequireFromString("50.00")},
	}

	debt := ComputeDebt(orders, nil)
	assert.True(t, debt.TotalExpense.Equal(decimal.RequireFromString("250.00")))
}

func TestComputeDebtOverpaid(t *testing.T) {
	orders := []model.RepairOrder{
		{Status: model.StatusCompleted, TotalAmount: decimal.RequireFromString("100.00")},
	}
	payments := []model.Payment{
		{Amount: decimal.RequireFromString("150.00")},
	}

	debt := ComputeDebt(orders, payments)
	assert.True(t, debt.RemainingDebt.Equal(decimal.RequireFromString("-50.00")))
	assert.Equal(t, money.StatusOverpaid, debt.Status)
}

func TestComputeDebtPaidInFull(t *testing.T) {
	debt := ComputeDebt(nil, nil)
	assert.True(t, debt.RemainingDebt.IsZero())
	assert.Equal(t, money.StatusPaidInFull, debt.Status)
}

func TestVehicleDeleteBlockedWhileDebtRemains(t *testing.T) {
	vehicleRepo := newStubVehicleRepo()
	orderRepo := newStubOrderRepo()
	paymentRepo := newStubPaymentRepo()
	svc := NewVehicleService(vehicleRepo, orderRepo, paymentRepo)

	v := seedVehicle(vehicleRepo, "30F-55555")
	o := seedOrder(orderRepo, model.StatusCompleted)
	o.VehicleID = v.ID
	o.TotalAmount = decimal.RequireFromString("80.00")

	err := svc.Delete(context.Background(), v.ID)
	require.Error(t, err)
	_, stillThere := vehicleRepo.vehicles[v.ID]
	assert.True(t, stillThere)

	// settle the balance, then deletion goes through
	p := &model.Payment{ID: uuid.New(), VehicleID: v.ID, Amount: decimal.RequireFromString("80.00"), Method: model.MethodCash}
	paymentRepo.payments[p.ID] = p

	err = svc.Delete(context.Background(), v.ID)
	require.NoError(t, err)
	_, stillThere = vehicleRepo.vehicles[v.ID]
	assert.False(t, stillThere)
}
