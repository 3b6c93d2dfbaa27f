package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"garagedesk/internal/dto"
	"garagedesk/internal/infra"
	"garagedesk/internal/model"
	"garagedesk/internal/money"
	"garagedesk/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const publicPayCacheTTL = 60 * time.Second

type PaymentService interface {
	Record(ctx context.Context, createdBy *uuid.UUID, req dto.RecordPaymentRequest) (*dto.PaymentResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter dto.PaymentFilter) (*dto.PaymentListResponse, error)
	PublicByPlate(ctx context.Context, plate string) (*dto.PublicPaymentResponse, error)
}

type paymentService struct {
	repo        repository.PaymentRepository
	vehicleRepo repository.VehicleRepository
	orderRepo   repository.RepairOrderRepository
	rdb         *redis.Client
	qr          *infra.VietQR
}

func NewPaymentService(
	repo repository.PaymentRepository,
	vehicleRepo repository.VehicleRepository,
	orderRepo repository.RepairOrderRepository,
	rdb *redis.Client,
	qr *infra.VietQR,
) PaymentService {
	return &paymentService{
		repo:        repo,
		vehicleRepo: vehicleRepo,
		orderRepo:   orderRepo,
		rdb:         rdb,
		qr:          qr,
	}
}

// Record inserts the payment and bumps the vehicle's running paid total in a
// single transaction, so the two can never drift apart.
func (s *paymentService) Record(ctx context.Context, createdBy *uuid.UUID, req dto.RecordPaymentRequest) (*dto.PaymentResponse, error) {
	vehicleID, err := uuid.Parse(req.VehicleID)
	if err != nil {
		return nil, errors.New("invalid vehicle_id")
	}
	if !req.Amount.IsPositive() {
		return nil, errors.New("amount must be greater than zero")
	}
	if !model.ValidMethod(req.Method) {
		return nil, fmt.Errorf("unknown payment method %q", req.Method)
	}

	vehicle, err := s.vehicleRepo.FindByID(ctx, vehicleID)
	if err != nil {
		return nil, errors.New("vehicle not found")
	}

	paymentDate := time.Now()
	if req.PaymentDate != "" {
		paymentDate, err = time.Parse("2006-01-02", req.PaymentDate)
		if err != nil {
			return nil, errors.New("invalid payment_date")
		}
	}

	payment := &model.Payment{
		VehicleID:   vehicleID,
		Amount:      req.Amount,
		Method:      req.Method,
		PaymentDate: paymentDate,
		CreatedBy:   createdBy,
		Note:        req.Note,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, payment); err != nil {
			return err
		}
		return s.vehicleRepo.IncrementTotalPaidTx(tx, vehicleID, req.Amount)
	})
	if txErr != nil {
		return nil, txErr
	}

	s.invalidatePublicCache(ctx, vehicle.LicensePlate)

	payment.Vehicle = vehicle
	resp := paymentToResponse(payment)
	return &resp, nil
}

// Delete removes a payment and reverses its contribution to the vehicle's
// paid total, in one transaction.
func (s *paymentService) Delete(ctx context.Context, id uuid.UUID) error {
	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("payment not found")
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.DeleteTx(tx, id); err != nil {
			return err
		}
		return s.vehicleRepo.IncrementTotalPaidTx(tx, payment.VehicleID, payment.Amount.Neg())
	})
	if txErr != nil {
		return txErr
	}

	if payment.Vehicle != nil {
		s.invalidatePublicCache(ctx, payment.Vehicle.LicensePlate)
	}
	return nil
}

func (s *paymentService) List(ctx context.Context, filter dto.PaymentFilter) (*dto.PaymentListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	payments, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]dto.PaymentResponse, 0, len(payments))
	amounts := make([]decimal.Decimal, 0, len(payments))
	for i := range payments {
		items = append(items, paymentToResponse(&payments[i]))
		amounts = append(amounts, payments[i].Amount)
	}

	sum := money.Sum(amounts)
	return &dto.PaymentListResponse{
		Data: items,
		Stats: dto.PaymentStats{
			TotalPayments:  sum,
			AveragePayment: money.Average(sum, len(amounts)),
			Count:          len(amounts),
		},
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// PublicByPlate serves the unauthenticated payment page: the vehicle's balance
// plus a VietQR code for the outstanding amount. Responses are cached briefly
// in Redis keyed by plate; any payment against the vehicle invalidates the key.
func (s *paymentService) PublicByPlate(ctx context.Context, plate string) (*dto.PublicPaymentResponse, error) {
	cacheKey := publicPayKey(plate)
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var cached dto.PublicPaymentResponse
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return &cached, nil
			}
		}
	}

	vehicle, err := s.vehicleRepo.FindByPlate(ctx, plate)
	if err != nil {
		return nil, errors.New("vehicle not found")
	}

	orders, err := s.orderRepo.ListByVehicle(ctx, vehicle.ID)
	if err != nil {
		return nil, err
	}
	payments, err := s.repo.ListByVehicle(ctx, vehicle.ID)
	if err != nil {
		return nil, err
	}
	debt := ComputeDebt(orders, payments)

	resp := &dto.PublicPaymentResponse{
		LicensePlate:  vehicle.LicensePlate,
		TotalExpense:  debt.TotalExpense,
		TotalPaid:     debt.TotalPaid,
		RemainingDebt: debt.RemainingDebt,
		DebtStatus:    debt.Status,
	}
	if vehicle.Customer != nil {
		resp.CustomerName = vehicle.Customer.Name
	}

	if debt.RemainingDebt.IsPositive() && s.qr != nil {
		png, err := s.qr.PNG(debt.RemainingDebt, fmt.Sprintf("Repair %s", vehicle.LicensePlate), 256)
		if err != nil {
			log.Warn().Err(err).Str("plate", plate).Msg("vietqr encode failed")
		} else {
			resp.QRImage = base64.StdEncoding.EncodeToString(png)
		}
	}

	if s.rdb != nil {
		if raw, err := json.Marshal(resp); err == nil {
			s.rdb.Set(ctx, cacheKey, raw, publicPayCacheTTL)
		}
	}
	return resp, nil
}

func (s *paymentService) invalidatePublicCache(ctx context.Context, plate string) {
	if s.rdb == nil || plate == "" {
		return
	}
	if err := s.rdb.Del(ctx, publicPayKey(plate)).Err(); err != nil {
		log.Warn().Err(err).Str("plate", plate).Msg("cache invalidation failed")
	}
}

func publicPayKey(plate string) string { return "pay:" + plate }

func paymentToResponse(p *model.Payment) dto.PaymentResponse {
	resp := dto.PaymentResponse{
		ID:          p.ID.String(),
		VehicleID:   p.VehicleID.String(),
		Amount:      p.Amount,
		Method:      p.Method,
		PaymentDate: p.PaymentDate.Format("2006-01-02"),
		Note:        p.Note,
	}
	if p.CreatedBy != nil {
		id := p.CreatedBy.String()
		resp.CreatedBy = &id
	}
	if p.Vehicle != nil {
		resp.LicensePlate = p.Vehicle.LicensePlate
	}
	return resp
}
