package service

// stubs_test.go
// In-memory repository stubs shared by the service unit tests. Every stub
// returns a nil *gorm.DB from DB(), which makes runTx call the transaction
// body directly — no database required.

import (
	"context"
	"errors"
	"time"

	"garagedesk/internal/dto"
	"garagedesk/internal/model"
	"garagedesk/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── RepairOrderRepository stub ───────────────────────────────────────────────

type stubOrderRepo struct {
	orders map[uuid.UUID]*model.RepairOrder
	items  map[uuid.UUID]*model.RepairOrderItem
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{
		orders: make(map[uuid.UUID]*model.RepairOrder),
		items:  make(map[uuid.UUID]*model.RepairOrderItem),
	}
}

func (r *stubOrderRepo) Create(_ context.Context, o *model.RepairOrder) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	o.CreatedAt = time.Now()
	r.orders[o.ID] = o
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*model.RepairOrder, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return o, nil
}

func (r *stubOrderRepo) List(_ context.Context, _ dto.RepairOrderFilter) ([]model.RepairOrder, int64, error) {
	var out []model.RepairOrder
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (r *stubOrderRepo) ListByVehicle(_ context.Context, vehicleID uuid.UUID) ([]model.RepairOrder, error) {
	var out []model.RepairOrder
	for _, o := range r.orders {
		if o.VehicleID == vehicleID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *stubOrderRepo) ListOpen(_ context.Context) ([]model.RepairOrder, error) {
	var out []model.RepairOrder
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (r *stubOrderRepo) Update(_ context.Context, o *model.RepairOrder) error {
	r.orders[o.ID] = o
	return nil
}

func (r *stubOrderRepo) CountInRange(_ context.Context, from, toExcl time.Time) (int, error) {
	n := 0
	for _, o := range r.orders {
		if !o.ReceptionDate.Before(from) && o.ReceptionDate.Before(toExcl) {
			n++
		}
	}
	return n, nil
}

func (r *stubOrderRepo) UpdateStatusTx(_ *gorm.DB, id uuid.UUID, status string, completion *time.Time) error {
	o, ok := r.orders[id]
	if !ok {
		return errors.New("record not found")
	}
	o.Status = status
	if completion != nil {
		o.CompletionDate = completion
	}
	return nil
}

func (r *stubOrderRepo) UpdateTotalTx(_ *gorm.DB, id uuid.UUID, total decimal.Decimal) error {
	o, ok := r.orders[id]
	if !ok {
		return errors.New("record not found")
	}
	o.TotalAmount = total
	return nil
}

func (r *stubOrderRepo) CreateItemTx(_ *gorm.DB, item *model.RepairOrderItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	r.items[item.ID] = item
	return nil
}

func (r *stubOrderRepo) DeleteItemTx(_ *gorm.DB, itemID uuid.UUID) error {
	delete(r.items, itemID)
	return nil
}

func (r *stubOrderRepo) FindItemByID(_ context.Context, itemID uuid.UUID) (*model.RepairOrderItem, error) {
	item, ok := r.items[itemID]
	if !ok {
		return nil, errors.New("record not found")
	}
	return item, nil
}

func (r *stubOrderRepo) PartUsageInRange(_ context.Context, partID uuid.UUID, from, toExcl time.Time) (int, error) {
	used := 0
	for _, item := range r.items {
		if item.SparePartID == nil || *item.SparePartID != partID {
			continue
		}
		o, ok := r.orders[item.RepairOrderID]
		if !ok || o.Status == model.StatusCancelled {
			continue
		}
		if !o.ReceptionDate.Before(from) && o.ReceptionDate.Before(toExcl) {
			used += item.Quantity
		}
	}
	return used, nil
}

func (r *stubOrderRepo) PartUsageBefore(_ context.Context, partID uuid.UUID, before time.Time) (int, error) {
	used := 0
	for _, item := range r.items {
		if item.SparePartID == nil || *item.SparePartID != partID {
			continue
		}
		o, ok := r.orders[item.RepairOrderID]
		if !ok || o.Status == model.StatusCancelled {
			continue
		}
		if o.ReceptionDate.Before(before) {
			used += item.Quantity
		}
	}
	return used, nil
}

func (r *stubOrderRepo) DB() *gorm.DB { return nil }

var _ repository.RepairOrderRepository = (*stubOrderRepo)(nil)

// ── SparePartRepository stub ─────────────────────────────────────────────────

type stubPartRepo struct {
	parts map[uuid.UUID]*model.SparePart
}

func newStubPartRepo() *stubPartRepo {
	return &stubPartRepo{parts: make(map[uuid.UUID]*model.SparePart)}
}

func (r *stubPartRepo) Create(_ context.Context, p *model.SparePart) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.parts[p.ID] = p
	return nil
}

func (r *stubPartRepo) FindByID(_ context.Context, id uuid.UUID) (*model.SparePart, error) {
	p, ok := r.parts[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return p, nil
}

func (r *stubPartRepo) List(_ context.Context, _ dto.SparePartFilter) ([]model.SparePart, int64, error) {
	var out []model.SparePart
	for _, p := range r.parts {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubPartRepo) ListActive(_ context.Context) ([]model.SparePart, error) {
	var out []model.SparePart
	for _, p := range r.parts {
		if p.Active {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubPartRepo) ListLowStock(_ context.Context) ([]model.SparePart, error) {
	var out []model.SparePart
	for _, p := range r.parts {
		if p.Active && p.StockQuantity <= p.MinQuantity {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubPartRepo) Update(_ context.Context, p *model.SparePart) error {
	r.parts[p.ID] = p
	return nil
}

func (r *stubPartRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	if p, ok := r.parts[id]; ok {
		p.Active = false
	}
	return nil
}

func (r *stubPartRepo) Reactivate(_ context.Context, id uuid.UUID) error {
	if p, ok := r.parts[id]; ok {
		p.Active = true
	}
	return nil
}

func (r *stubPartRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.SparePart, error) {
	p, ok := r.parts[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return p, nil
}

func (r *stubPartRepo) AdjustStockTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	p, ok := r.parts[id]
	if !ok {
		return errors.New("record not found")
	}
	p.StockQuantity += delta
	return nil
}

func (r *stubPartRepo) DB() *gorm.DB { return nil }

var _ repository.SparePartRepository = (*stubPartRepo)(nil)

// ── LaborTypeRepository stub ─────────────────────────────────────────────────

type stubLaborRepo struct {
	labors map[uuid.UUID]*model.LaborType
}

func newStubLaborRepo() *stubLaborRepo {
	return &stubLaborRepo{labors: make(map[uuid.UUID]*model.LaborType)}
}

func (r *stubLaborRepo) Create(_ context.Context, lt *model.LaborType) error {
	if lt.ID == uuid.Nil {
		lt.ID = uuid.New()
	}
	r.labors[lt.ID] = lt
	return nil
}

func (r *stubLaborRepo) FindByID(_ context.Context, id uuid.UUID) (*model.LaborType, error) {
	lt, ok := r.labors[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return lt, nil
}

func (r *stubLaborRepo) List(_ context.Context, includeInactive bool) ([]model.LaborType, error) {
	var out []model.LaborType
	for _, lt := range r.labors {
		if includeInactive || lt.Active {
			out = append(out, *lt)
		}
	}
	return out, nil
}

func (r *stubLaborRepo) Update(_ context.Context, lt *model.LaborType) error {
	r.labors[lt.ID] = lt
	return nil
}

func (r *stubLaborRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	if lt, ok := r.labors[id]; ok {
		lt.Active = false
	}
	return nil
}

var _ repository.LaborTypeRepository = (*stubLaborRepo)(nil)

// ── StockMovementRepository stub ─────────────────────────────────────────────

type stubStockRepo struct {
	movements []model.StockMovement
}

func newStubStockRepo() *stubStockRepo { return &stubStockRepo{} }

func (r *stubStockRepo) CreateTx(_ *gorm.DB, m *model.StockMovement) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()
	r.movements = append(r.movements, *m)
	return nil
}

func (r *stubStockRepo) ListByPart(_ context.Context, partID uuid.UUID, limit int) ([]model.StockMovement, error) {
	var out []model.StockMovement
	for _, m := range r.movements {
		if m.SparePartID == partID {
			out = append(out, m)
		}
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *stubStockRepo) ListRecent(_ context.Context, limit int) ([]model.StockMovement, error) {
	out := r.movements
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

var _ repository.StockMovementRepository = (*stubStockRepo)(nil)

// ── PaymentRepository stub ───────────────────────────────────────────────────

type stubPaymentRepo struct {
	payments map[uuid.UUID]*model.Payment
}

func newStubPaymentRepo() *stubPaymentRepo {
	return &stubPaymentRepo{payments: make(map[uuid.UUID]*model.Payment)}
}

func (r *stubPaymentRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Payment, error) {
	p, ok := r.payments[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return p, nil
}

func (r *stubPaymentRepo) List(_ context.Context, _ dto.PaymentFilter) ([]model.Payment, int64, error) {
	var out []model.Payment
	for _, p := range r.payments {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubPaymentRepo) ListByVehicle(_ context.Context, vehicleID uuid.UUID) ([]model.Payment, error) {
	var out []model.Payment
	for _, p := range r.payments {
		if p.VehicleID == vehicleID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubPaymentRepo) ListInRange(_ context.Context, from, toExcl time.Time) ([]model.Payment, error) {
	var out []model.Payment
	for _, p := range r.payments {
		if !p.PaymentDate.Before(from) && p.PaymentDate.Before(toExcl) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubPaymentRepo) CreateTx(_ *gorm.DB, p *model.Payment) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now()
	r.payments[p.ID] = p
	return nil
}

func (r *stubPaymentRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	delete(r.payments, id)
	return nil
}

func (r *stubPaymentRepo) DB() *gorm.DB { return nil }

var _ repository.PaymentRepository = (*stubPaymentRepo)(nil)

// ── VehicleRepository stub ───────────────────────────────────────────────────

type stubVehicleRepo struct {
	vehicles map[uuid.UUID]*model.Vehicle
}

func newStubVehicleRepo() *stubVehicleRepo {
	return &stubVehicleRepo{vehicles: make(map[uuid.UUID]*model.Vehicle)}
}

func (r *stubVehicleRepo) Create(_ context.Context, v *model.Vehicle) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	r.vehicles[v.ID] = v
	return nil
}

func (r *stubVehicleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Vehicle, error) {
	v, ok := r.vehicles[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return v, nil
}

func (r *stubVehicleRepo) FindByPlate(_ context.Context, plate string) (*model.Vehicle, error) {
	for _, v := range r.vehicles {
		if v.LicensePlate == plate {
			return v, nil
		}
	}
	return nil, errors.New("record not found")
}

func (r *stubVehicleRepo) List(_ context.Context, _ dto.VehicleFilter) ([]model.Vehicle, int64, error) {
	var out []model.Vehicle
	for _, v := range r.vehicles {
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

func (r *stubVehicleRepo) Update(_ context.Context, v *model.Vehicle) error {
	r.vehicles[v.ID] = v
	return nil
}

func (r *stubVehicleRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.vehicles, id)
	return nil
}

func (r *stubVehicleRepo) IncrementTotalPaidTx(_ *gorm.DB, id uuid.UUID, delta decimal.Decimal) error {
	v, ok := r.vehicles[id]
	if !ok {
		return errors.New("record not found")
	}
	v.TotalPaid = v.TotalPaid.Add(delta)
	return nil
}

func (r *stubVehicleRepo) DB() *gorm.DB { return nil }

var _ repository.VehicleRepository = (*stubVehicleRepo)(nil)
