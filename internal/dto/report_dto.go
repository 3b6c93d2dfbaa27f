package dto

import "github.com/shopspring/decimal"

// ReportRange is bound from the query string of every report endpoint.
// Both bounds are inclusive.
type ReportRange struct {
	From string `form:"from" validate:"required,datetime=2006-01-02"`
	To   string `form:"to"   validate:"required,datetime=2006-01-02"`
}

// ─── Inventory report ────────────────────────────────────────────────────────

// InventoryReportRow carries the begin/used/end stock figures for one part
// over the requested period.
type InventoryReportRow struct {
	SparePartID      string          `json:"spare_part_id"`
	Name             string          `json:"name"`
	BeginStock       int             `json:"begin_stock"`
	UsedDuringPeriod int             `json:"used_during_period"`
	TotalUsedBefore  int             `json:"total_used_before"`
	EndStock         int             `json:"end_stock"`
	// Utilization = used / begin × 100, zero when begin is zero.
	Utilization decimal.Decimal `json:"utilization"`
}

type InventoryReportResponse struct {
	From string               `json:"from"`
	To   string               `json:"to"`
	Rows []InventoryReportRow `json:"rows"`
}

// ─── Sales report ────────────────────────────────────────────────────────────

// BrandRevenue is one row of the "top services" ranking: revenue summed from
// payments, grouped by vehicle brand.
type BrandRevenue struct {
	Brand      string          `json:"brand"`
	Revenue    decimal.Decimal `json:"revenue"`
	Percentage decimal.Decimal `json:"percentage"`
}

type MethodBreakdown struct {
	Method string          `json:"method"`
	Total  decimal.Decimal `json:"total"`
	Count  int             `json:"count"`
}

type SalesReportResponse struct {
	From              string            `json:"from"`
	To                string            `json:"to"`
	TotalRevenue      decimal.Decimal   `json:"total_revenue"`
	TotalOrders       int               `json:"total_orders"`
	AverageOrderValue decimal.Decimal   `json:"average_order_value"`
	TopBrands         []BrandRevenue    `json:"top_brands"`
	Methods           []MethodBreakdown `json:"methods"`
}
