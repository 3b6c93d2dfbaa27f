package service

import (
	"context"
	"errors"

	"garagedesk/internal/dto"
	"garagedesk/internal/model"
	"garagedesk/internal/money"
	"garagedesk/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type VehicleService interface {
	Create(ctx context.Context, req dto.CreateVehicleRequest) (*dto.VehicleResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.VehicleDetailResponse, error)
	List(ctx context.Context, filter dto.VehicleFilter) (*dto.VehicleListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateVehicleRequest) (*dto.VehicleResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Debt(ctx context.Context, vehicleID uuid.UUID) (*dto.DebtSummary, error)
}

type vehicleService struct {
	repo        repository.VehicleRepository
	orderRepo   repository.RepairOrderRepository
	paymentRepo repository.PaymentRepository
}

func NewVehicleService(
	repo repository.VehicleRepository,
	orderRepo repository.RepairOrderRepository,
	paymentRepo repository.PaymentRepository,
) VehicleService {
	return &vehicleService{repo: repo, orderRepo: orderRepo, paymentRepo: paymentRepo}
}

func (s *vehicleService) Create(ctx context.Context, req dto.CreateVehicleRequest) (*dto.VehicleResponse, error) {
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, errors.New("invalid customer_id")
	}
	v := &model.Vehicle{
		LicensePlate: req.LicensePlate,
		Brand:        req.Brand,
		Model:        req.Model,
		Year:         req.Year,
		CustomerID:   customerID,
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, errors.New("could not register vehicle (plate already in use?)")
	}
	resp := vehicleToResponse(v)
	return &resp, nil
}

func (s *vehicleService) Get(ctx context.Context, id uuid.UUID) (*dto.VehicleDetailResponse, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("vehicle not found")
	}

	orders, err := s.orderRepo.ListByVehicle(ctx, id)
	if err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.ListByVehicle(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := &dto.VehicleDetailResponse{
		VehicleResponse: vehicleToResponse(v),
		Debt:            ComputeDebt(orders, payments),
	}
	for i := range orders {
		resp.Orders = append(resp.Orders, orderToResponse(&orders[i]))
	}
	return resp, nil
}

func (s *vehicleService) List(ctx context.Context, filter dto.VehicleFilter) (*dto.VehicleListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	vehicles, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VehicleResponse, 0, len(vehicles))
	for i := range vehicles {
		items = append(items, vehicleToResponse(&vehicles[i]))
	}
	return &dto.VehicleListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *vehicleService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateVehicleRequest) (*dto.VehicleResponse, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("vehicle not found")
	}
	if req.LicensePlate != "" {
		v.LicensePlate = req.LicensePlate
	}
	if req.Brand != "" {
		v.Brand = req.Brand
	}
	if req.Model != nil {
		v.Model = req.Model
	}
	if req.Year != nil {
		v.Year = req.Year
	}
	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	resp := vehicleToResponse(v)
	return &resp, nil
}

// Delete is blocked while the vehicle has an outstanding balance.
func (s *vehicleService) Delete(ctx context.Context, id uuid.UUID) error {
	debt, err := s.Debt(ctx, id)
	if err != nil {
		return err
	}
	if debt.RemainingDebt.IsPositive() {
		return errors.New("vehicle has outstanding debt of " + money.FormatCurrency(debt.RemainingDebt))
	}
	return s.repo.Delete(ctx, id)
}

func (s *vehicleService) Debt(ctx context.Context, vehicleID uuid.UUID) (*dto.DebtSummary, error) {
	orders, err := s.orderRepo.ListByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.ListByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	debt := ComputeDebt(orders, payments)
	return &debt, nil
}

// ComputeDebt derives the vehicle balance:
//
//	totalExpense  = Σ order.TotalAmount (cancelled orders excluded)
//	totalPaid     = Σ payment.Amount
//	remainingDebt = totalExpense − totalPaid
func ComputeDebt(orders []model.RepairOrder, payments []model.Payment) dto.DebtSummary {
	totalExpense := decimal.Zero
	for _, o := range orders {
		if o.Status == model.StatusCancelled {
			continue
		}
		totalExpense = totalExpense.Add(o.TotalAmount)
	}
	totalPaid := decimal.Zero
	for _, p := range payments {
		totalPaid = totalPaid.Add(p.Amount)
	}
	remaining := totalExpense.Sub(totalPaid)
	return dto.DebtSummary{
		TotalExpense:  totalExpense,
		TotalPaid:     totalPaid,
		RemainingDebt: remaining,
		Status:        money.DebtStatus(remaining),
	}
}

func vehicleToResponse(v *model.Vehicle) dto.VehicleResponse {
	resp := dto.VehicleResponse{
		ID:           v.ID.String(),
		LicensePlate: v.LicensePlate,
		Brand:        v.Brand,
		Model:        v.Model,
		Year:         v.Year,
		CustomerID:   v.CustomerID.String(),
		TotalPaid:    v.TotalPaid,
		CreatedAt:    v.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if v.Customer != nil {
		resp.CustomerName = v.Customer.Name
	}
	return resp
}
