package service

import (
	"context"
	"testing"
	"time"

	"garagedesk/internal/dto"
	"garagedesk/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReportFixture(t *testing.T) (ReportService, *stubPaymentRepo, *stubOrderRepo, *stubPartRepo) {
	t.Helper()
	paymentRepo := newStubPaymentRepo()
	orderRepo := newStubOrderRepo()
	partRepo := newStubPartRepo()
	svc := NewReportService(paymentRepo, orderRepo, partRepo)
	return svc, paymentRepo, orderRepo, partRepo
}

func seedPayment(repo *stubPaymentRepo, amount, method, date, brand string) {
	id := uuid.New()
	repo.payments[id] = &model.Payment{
		ID:          id,
		VehicleID:   uuid.New(),
		Amount:      decimal.RequireFromString(amount),
		Method:      method,
		PaymentDate: mustDate(date),
		Vehicle:     &model.Vehicle{Brand: brand},
	}
}

func mustDate(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestSalesReportAggregates(t *testing.T) {
	svc, paymentRepo, orderRepo, _ := newReportFixture(t)

	seedPayment(paymentRepo, "300.00", model.MethodCash, "2026-03-05", "Toyota")
	seedPayment(paymentRepo, "100.00", model.MethodTransfer, "2026-03-10", "Toyota")
	seedPayment(paymentRepo, "100.00", model.MethodCash, "2026-03-20", "Honda")
	// Outside the period, must not count.
	seedPayment(paymentRepo, "999.00", model.MethodCash, "2026-04-01", "Ford")

	for i := 0; i < 4; i++ {
		id := uuid.New()
		orderRepo.orders[id] = &model.RepairOrder{
			ID:            id,
			Status:        model.StatusCompleted,
			ReceptionDate: mustDate("2026-03-08"),
		}
	}

	report, err := svc.Sales(context.Background(), dto.ReportRange{From: "2026-03-01", To: "2026-03-31"})
	require.NoError(t, err)

	assert.Equal(t, "500", report.TotalRevenue.String())
	assert.Equal(t, 4, report.TotalOrders)
	assert.Equal(t, "125", report.AverageOrderValue.String())

	require.Len(t, report.TopBrands, 2)
	assert.Equal(t, "Toyota", report.TopBrands[0].Brand)
	assert.Equal(t, "400", report.TopBrands[0].Revenue.String())
	assert.Equal(t, "80", report.TopBrands[0].Percentage.String())
	assert.Equal(t, "Honda", report.TopBrands[1].Brand)
	assert.Equal(t, "20", report.TopBrands[1].Percentage.String())

	require.Len(t, report.Methods, 2)
	assert.Equal(t, model.MethodCash, report.Methods[0].Method)
	assert.Equal(t, "400", report.Methods[0].Total.String())
	assert.Equal(t, 2, report.Methods[0].Count)
	assert.Equal(t, model.MethodTransfer, report.Methods[1].Method)
}

func TestSalesReportIncludesRangeBoundaries(t *testing.T) {
	svc, paymentRepo, _, _ := newReportFixture(t)

	seedPayment(paymentRepo, "10.00", model.MethodCash, "2026-03-01", "Kia")
	seedPayment(paymentRepo, "20.00", model.MethodCash, "2026-03-31", "Kia")

	report, err := svc.Sales(context.Background(), dto.ReportRange{From: "2026-03-01", To: "2026-03-31"})
	require.NoError(t, err)
	assert.Equal(t, "30", report.TotalRevenue.String())
}

func TestSalesReportBrandFallsBackToUnknown(t *testing.T) {
	svc, paymentRepo, _, _ := newReportFixture(t)

	id := uuid.New()
	paymentRepo.payments[id] = &model.Payment{
		ID:          id,
		VehicleID:   uuid.New(),
		Amount:      decimal.NewFromInt(50),
		Method:      model.MethodCash,
		PaymentDate: mustDate("2026-03-10"),
	}

	report, err := svc.Sales(context.Background(), dto.ReportRange{From: "2026-03-01", To: "2026-03-31"})
	require.NoError(t, err)
	require.Len(t, report.TopBrands, 1)
	assert.Equal(t, "Unknown", report.TopBrands[0].Brand)
}

func TestSalesReportRejectsInvertedRange(t *testing.T) {
	svc, _, _, _ := newReportFixture(t)

	_, err := svc.Sales(context.Background(), dto.ReportRange{From: "2026-03-31", To: "2026-03-01"})
	require.Error(t, err)
}

func TestInventoryReportStockFigures(t *testing.T) {
	svc, _, orderRepo, partRepo := newReportFixture(t)

	part := &model.SparePart{ID: uuid.New(), Name: "Oil filter", Active: true, StockQuantity: 6, Price: decimal.NewFromInt(10)}
	partRepo.parts[part.ID] = part

	inRange := &model.RepairOrder{ID: uuid.New(), Status: model.StatusCompleted, ReceptionDate: mustDate("2026-03-10")}
	earlier := &model.RepairOrder{ID: uuid.New(), Status: model.StatusCompleted, ReceptionDate: mustDate("2026-01-15")}
	cancelled := &model.RepairOrder{ID: uuid.New(), Status: model.StatusCancelled, ReceptionDate: mustDate("2026-03-12")}
	orderRepo.orders[inRange.ID] = inRange
	orderRepo.orders[earlier.ID] = earlier
	orderRepo.orders[cancelled.ID] = cancelled

	addItem := func(orderID uuid.UUID, qty int) {
		itemID := uuid.New()
		orderRepo.items[itemID] = &model.RepairOrderItem{
			ID:            itemID,
			RepairOrderID: orderID,
			SparePartID:   &part.ID,
			Quantity:      qty,
		}
	}
	addItem(inRange.ID, 4)
	addItem(earlier.ID, 3)
	addItem(cancelled.ID, 9)

	report, err := svc.Inventory(context.Background(), dto.ReportRange{From: "2026-03-01", To: "2026-03-31"})
	require.NoError(t, err)
	require.Len(t, report.Rows, 1)

	row := report.Rows[0]
	assert.Equal(t, 4, row.UsedDuringPeriod)
	assert.Equal(t, 3, row.TotalUsedBefore, "cancelled orders excluded")
	assert.Equal(t, 10, row.BeginStock)
	assert.Equal(t, 6, row.EndStock)
	assert.Equal(t, row.BeginStock-row.UsedDuringPeriod, row.EndStock)
	assert.Equal(t, "40", row.Utilization.String())
}

func TestInventoryReportZeroUsage(t *testing.T) {
	svc, _, _, partRepo := newReportFixture(t)

	part := &model.SparePart{ID: uuid.New(), Name: "Spark plug", Active: true, StockQuantity: 12, Price: decimal.NewFromInt(4)}
	partRepo.parts[part.ID] = part

	report, err := svc.Inventory(context.Background(), dto.ReportRange{From: "2026-03-01", To: "2026-03-31"})
	require.NoError(t, err)
	require.Len(t, report.Rows, 1)
	assert.Equal(t, 12, report.Rows[0].BeginStock)
	assert.Equal(t, 12, report.Rows[0].EndStock)
	assert.True(t, report.Rows[0].Utilization.IsZero())
}
