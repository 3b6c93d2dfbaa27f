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

func newPaymentFixture(t *testing.T) (PaymentService, *stubPaymentRepo, *stubVehicleRepo, *stubOrderRepo) {
	t.Helper()
	paymentRepo := newStubPaymentRepo()
	vehicleRepo := newStubVehicleRepo()
	orderRepo := newStubOrderRepo()
	svc := NewPaymentService(paymentRepo, vehicleRepo, orderRepo, nil, nil)
	return svc, paymentRepo, vehicleRepo, orderRepo
}

func seedVehicle(repo *stubVehicleRepo, plate string) *model.Vehicle {
	v := &model.Vehicle{
		ID:           uuid.New(),
		LicensePlate: plate,
		Brand:        "Toyota",
		CustomerID:   uuid.New(),
		TotalPaid:    decimal.Zero,
	}
	repo.vehicles[v.ID] = v
	return v
}

func TestRecordPaymentUpdatesVehicleTotal(t *testing.T) {
	svc, paymentRepo, vehicleRepo, _ := newPaymentFixture(t)
	v := seedVehicle(vehicleRepo, "51A-12345")

	resp, err := svc.Record(context.Background(), nil, dto.RecordPaymentRequest{
		VehicleID:   v.ID.String(),
		Amount:      decimal.RequireFromString("350.00"),
		Method:      model.MethodCash,
		PaymentDate: "2026-08-20",
	})
	require.NoError(t, err)

	assert.True(t, resp.Amount.Equal(decimal.RequireFromString("350.00")))
	assert.Equal(t, "2026-08-20", resp.PaymentDate)
	assert.Equal(t, "51A-12345", resp.LicensePlate)

	// running total moved in the same operation
	assert.True(t, v.TotalPaid.Equal(decimal.RequireFromString("350.00")))
	assert.Len(t, paymentRepo.payments, 1)
}

func TestRecordPaymentRejectsNonPositiveAmount(t *testing.T) {
	svc, paymentRepo, vehicleRepo, _ := newPaymentFixture(t)
	v := seedVehicle(vehicleRepo, "51A-00001")

	for _, amount := range []string{"0", "-10.00"} {
		_, err := svc.Record(context.Background(), nil, dto.RecordPaymentRequest{
			VehicleID: v.ID.String(),
			Amount:    decimal.RequireFromString(amount),
			Method:    model.MethodCash,
		})
		require.Error(t, err, "amount %s", amount)
	}
	assert.Empty(t, paymentRepo.payments)
	assert.True(t, v.TotalPaid.IsZero())
}

func TestRecordPaymentRejectsUnknownMethod(t *testing.T) {
	svc, _, vehicleRepo, _ := newPaymentFixture(t)
	v := seedVehicle(vehicleRepo, "51A-00002")

	_, err := svc.Record(context.Background(), nil, dto.RecordPaymentRequest{
		VehicleID: v.ID.String(),
		Amount:    decimal.NewFromInt(50),
		Method:    "cheque",
	})
	require.Error(t, err)
}

func TestDeletePaymentReversesVehicleTotal(t *testing.T) {
	svc, paymentRepo, vehicleRepo, _ := newPaymentFixture(t)
	v := seedVehicle(vehicleRepo, "51A-00003")

	resp, err := svc.Record(context.Background(), nil, dto.RecordPaymentRequest{
		VehicleID: v.ID.String(),
		Amount:    decimal.RequireFromString("120.00"),
		Method:    model.MethodCard,
	})
	require.NoError(t, err)
	require.True(t, v.TotalPaid.Equal(decimal.RequireFromString("120.00")))

	err = svc.Delete(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)

	assert.True(t, v.TotalPaid.IsZero())
	assert.Empty(t, paymentRepo.payments)
}

func TestListPaymentsComputesStats(t *testing.T) {
	svc, _, vehicleRepo, _ := newPaymentFixture(t)
	v := seedVehicle(vehicleRepo, "51A-00004")

	for _, amount := range []string{"100.00", "250.00", "50.00"} {
		_, err := svc.Record(context.Background(), nil, dto.RecordPaymentRequest{
			VehicleID: v.ID.String(),
			Amount:    decimal.RequireFromString(amount),
			Method:    model.MethodCash,
		})
		require.NoError(t, err)
	}

	resp, err := svc.List(context.Background(), dto.PaymentFilter{Page: 1, Limit: 50})
	require.NoError(t, err)

	assert.Equal(t, 3, resp.Stats.Count)
	assert.True(t, resp.Stats.TotalPayments.Equal(decimal.RequireFromString("400.00")))
	assert.True(t, resp.Stats.AveragePayment.Equal(decimal.RequireFromString("133.33")),
		"got %s", resp.Stats.AveragePayment)
}

func TestListPaymentsEmptyStats(t *testing.T) {
	svc, _, _, _ := newPaymentFixture(t)

	resp, err := svc.List(context.Background(), dto.PaymentFilter{})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Stats.Count)
	assert.True(t, resp.Stats.TotalPayments.IsZero())
	assert.True(t, resp.Stats.AveragePayment.IsZero())
}

func TestPublicByPlateReportsBalance(t *testing.T) {
	svc, paymentRepo, vehicleRepo, orderRepo := newPaymentFixture(t)
	v := seedVehicle(vehicleRepo, "59X-99999")
	v.Customer = &model.Customer{ID: v.CustomerID, Name: "Lan Pham"}

	o := seedOrder(orderRepo, model.StatusCompleted)
	o.VehicleID = v.ID
	o.TotalAmount = decimal.RequireFromString("545.00")

	p := &model.Payment{ID: uuid.New(), VehicleID: v.ID, Amount: decimal.RequireFromString("350.00"), Method: model.MethodCash}
	paymentRepo.payments[p.ID] = p

	resp, err := svc.PublicByPlate(context.Background(), "59X-99999")
	require.NoError(t, err)

	assert.Equal(t, "Lan Pham", resp.CustomerName)
	assert.True(t, resp.TotalExpense.Equal(decimal.RequireFromString("545.00")))
	assert.True(t, resp.TotalPaid.Equal(decimal.RequireFromString("350.00")))
	assert.True(t, resp.RemainingDebt.Equal(decimal.RequireFromString("195.00")))
	assert.Equal(t, "Outstanding", resp.DebtStatus)
	assert.Empty(t, resp.QRImage, "no QR builder configured in this fixture")
}

func TestPublicByPlateUnknownVehicle(t *testing.T) {
	svc, _, _, _ := newPaymentFixture(t)
	_, err := svc.PublicByPlate(context.Background(), "00-NOPE")
	require.Error(t, err)
}
