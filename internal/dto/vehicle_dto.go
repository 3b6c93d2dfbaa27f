package dto

import "github.com/shopspring/decimal"

type CreateVehicleRequest struct {
	LicensePlate string  `json:"license_plate" validate:"required,min=4,max=20"`
	Brand        string  `json:"brand"         validate:"required,min=2,max=50"`
	Model        *string `json:"model"         validate:"omitempty,max=50"`
	Year         *int    `json:"year"          validate:"omitempty,min=1950,max=2100"`
	CustomerID   string  `json:"customer_id"   validate:"required,uuid"`
}

type UpdateVehicleRequest struct {
	LicensePlate string  `json:"license_plate" validate:"omitempty,min=4,max=20"`
	Brand        string  `json:"brand"         validate:"omitempty,min=2,max=50"`
	Model        *string `json:"model"         validate:"omitempty,max=50"`
	Year         *int    `json:"year"          validate:"omitempty,min=1950,max=2100"`
}

type VehicleFilter struct {
	CustomerID string `form:"customer_id" validate:"omitempty,uuid"`
	Plate      string `form:"plate"`
	Brand      string `form:"brand"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type VehicleResponse struct {
	ID           string          `json:"id"`
	LicensePlate string          `json:"license_plate"`
	Brand        string          `json:"brand"`
	Model        *string         `json:"model"`
	Year         *int            `json:"year"`
	CustomerID   string          `json:"customer_id"`
	CustomerName string          `json:"customer_name,omitempty"`
	TotalPaid    decimal.Decimal `json:"total_paid"`
	CreatedAt    string          `json:"created_at"`
}

type VehicleListResponse struct {
	Data  []VehicleResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// DebtSummary is the derived balance block embedded in vehicle detail
// responses: remaining_debt = total_expense − total_paid.
type DebtSummary struct {
	TotalExpense  decimal.Decimal `json:"total_expense"`
	TotalPaid     decimal.Decimal `json:"total_paid"`
	RemainingDebt decimal.Decimal `json:"remaining_debt"`
	Status        string          `json:"status"` // Outstanding | Overpaid | Paid in Full
}

type VehicleDetailResponse struct {
	VehicleResponse
	Debt   DebtSummary           `json:"debt"`
	Orders []RepairOrderResponse `json:"orders"`
}
