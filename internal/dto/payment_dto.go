package dto

import "github.com/shopspring/decimal"

type RecordPaymentRequest struct {
	VehicleID   string          `json:"vehicle_id"   validate:"required,uuid"`
	Amount      decimal.Decimal `json:"amount"       validate:"required"`
	Method      string          `json:"method"       validate:"required,oneof=cash card transfer bank-transfer"`
	PaymentDate string          `json:"payment_date" validate:"omitempty,datetime=2006-01-02"` // default: today
	Note        *string         `json:"note"         validate:"omitempty,max=255"`
}

type PaymentFilter struct {
	VehicleID string `form:"vehicle_id" validate:"omitempty,uuid"`
	Method    string `form:"method"     validate:"omitempty,oneof=cash card transfer bank-transfer"`
	From      string `form:"from"       validate:"omitempty,datetime=2006-01-02"`
	To        string `form:"to"         validate:"omitempty,datetime=2006-01-02"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type PaymentResponse struct {
	ID           string          `json:"id"`
	VehicleID    string          `json:"vehicle_id"`
	LicensePlate string          `json:"license_plate,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	Method       string          `json:"method"`
	PaymentDate  string          `json:"payment_date"`
	CreatedBy    *string         `json:"created_by"`
	Note         *string         `json:"note"`
}

// PaymentStats accompanies every payment list: total = Σ amount,
// average = total / count (zero when the list is empty).
type PaymentStats struct {
	TotalPayments  decimal.Decimal `json:"total_payments"`
	AveragePayment decimal.Decimal `json:"average_payment"`
	Count          int             `json:"count"`
}

type PaymentListResponse struct {
	Data  []PaymentResponse `json:"data"`
	Stats PaymentStats      `json:"stats"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// PublicPaymentResponse is returned by the unauthenticated QR endpoint:
// the vehicle's balance plus a VietQR PNG for the outstanding amount.
type PublicPaymentResponse struct {
	LicensePlate  string          `json:"license_plate"`
	CustomerName  string          `json:"customer_name"`
	TotalExpense  decimal.Decimal `json:"total_expense"`
	TotalPaid     decimal.Decimal `json:"total_paid"`
	RemainingDebt decimal.Decimal `json:"remaining_debt"`
	DebtStatus    string          `json:"debt_status"`
	// QRImage is a base64-encoded PNG; empty when nothing is owed.
	QRImage string `json:"qr_image,omitempty"`
}
