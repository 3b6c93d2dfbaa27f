package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"garagedesk/internal/dto"
	"garagedesk/internal/model"
	"garagedesk/internal/money"
	"garagedesk/internal/repository"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const topBrandLimit = 10

type ReportService interface {
	Sales(ctx context.Context, r dto.ReportRange) (*dto.SalesReportResponse, error)
	Inventory(ctx context.Context, r dto.ReportRange) (*dto.InventoryReportResponse, error)
}

type reportService struct {
	paymentRepo repository.PaymentRepository
	orderRepo   repository.RepairOrderRepository
	partRepo    repository.SparePartRepository
}

func NewReportService(
	paymentRepo repository.PaymentRepository,
	orderRepo repository.RepairOrderRepository,
	partRepo repository.SparePartRepository,
) ReportService {
	return &reportService{paymentRepo: paymentRepo, orderRepo: orderRepo, partRepo: partRepo}
}

// parseRange turns an inclusive [from, to] date pair into the half-open
// [from, to+1d) window the repositories query with.
func parseRange(r dto.ReportRange) (time.Time, time.Time, error) {
	from, err := time.Parse("2006-01-02", r.From)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid from date")
	}
	to, err := time.Parse("2006-01-02", r.To)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid to date")
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, errors.New("to must not precede from")
	}
	return from, to.AddDate(0, 0, 1), nil
}

// Sales aggregates revenue from payments received in the period: totals,
// a ranking of vehicle brands by revenue, and a per-method breakdown.
func (s *reportService) Sales(ctx context.Context, r dto.ReportRange) (*dto.SalesReportResponse, error) {
	from, toExcl, err := parseRange(r)
	if err != nil {
		return nil, err
	}

	payments, err := s.paymentRepo.ListInRange(ctx, from, toExcl)
	if err != nil {
		return nil, err
	}
	totalOrders, err := s.orderRepo.CountInRange(ctx, from, toExcl)
	if err != nil {
		return nil, err
	}

	totalRevenue := money.Sum(lo.Map(payments, func(p model.Payment, _ int) decimal.Decimal {
		return p.Amount
	}))

	byBrand := lo.GroupBy(payments, func(p model.Payment) string {
		if p.Vehicle != nil && p.Vehicle.Brand != "" {
			return p.Vehicle.Brand
		}
		return "Unknown"
	})

	brands := make([]dto.BrandRevenue, 0, len(byBrand))
	for brand, group := range byBrand {
		revenue := money.Sum(lo.Map(group, func(p model.Payment, _ int) decimal.Decimal {
			return p.Amount
		}))
		pct := decimal.Zero
		if totalRevenue.IsPositive() {
			pct = revenue.Div(totalRevenue).Mul(decimal.NewFromInt(100)).Round(2)
		}
		brands = append(brands, dto.BrandRevenue{Brand: brand, Revenue: revenue, Percentage: pct})
	}
	sort.Slice(brands, func(i, j int) bool {
		if !brands[i].Revenue.Equal(brands[j].Revenue) {
			return brands[i].Revenue.GreaterThan(brands[j].Revenue)
		}
		return brands[i].Brand < brands[j].Brand
	})
	if len(brands) > topBrandLimit {
		brands = brands[:topBrandLimit]
	}

	byMethod := lo.GroupBy(payments, func(p model.Payment) string { return p.Method })
	methods := make([]dto.MethodBreakdown, 0, len(byMethod))
	for method, group := range byMethod {
		methods = append(methods, dto.MethodBreakdown{
			Method: method,
			Total: money.Sum(lo.Map(group, func(p model.Payment, _ int) decimal.Decimal {
				return p.Amount
			})),
			Count: len(group),
		})
	}
	sort.Slice(methods, func(i, j int) bool { return methods[i].Method < methods[j].Method })

	return &dto.SalesReportResponse{
		From:              r.From,
		To:                r.To,
		TotalRevenue:      totalRevenue,
		TotalOrders:       totalOrders,
		AverageOrderValue: money.Average(totalRevenue, totalOrders),
		TopBrands:         brands,
		Methods:           methods,
	}, nil
}

// Inventory reports per-part stock figures for the period. Begin stock is
// reconstructed from current stock plus what the period consumed; end stock is
// begin minus period consumption, which equals the current level for parts
// untouched since the period closed.
func (s *reportService) Inventory(ctx context.Context, r dto.ReportRange) (*dto.InventoryReportResponse, error) {
	from, toExcl, err := parseRange(r)
	if err != nil {
		return nil, err
	}

	parts, err := s.partRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.InventoryReportRow, 0, len(parts))
	for i := range parts {
		part := &parts[i]
		used, err := s.orderRepo.PartUsageInRange(ctx, part.ID, from, toExcl)
		if err != nil {
			return nil, err
		}
		before, err := s.orderRepo.PartUsageBefore(ctx, part.ID, from)
		if err != nil {
			return nil, err
		}

		begin := part.StockQuantity + used
		end := begin - used

		util := decimal.Zero
		if begin > 0 {
			util = decimal.NewFromInt(int64(used)).
				Div(decimal.NewFromInt(int64(begin))).
				Mul(decimal.NewFromInt(100)).Round(2)
		}

		rows = append(rows, dto.InventoryReportRow{
			SparePartID:      part.ID.String(),
			Name:             part.Name,
			BeginStock:       begin,
			UsedDuringPeriod: used,
			TotalUsedBefore:  before,
			EndStock:         end,
			Utilization:      util,
		})
	}

	return &dto.InventoryReportResponse{From: r.From, To: r.To, Rows: rows}, nil
}
