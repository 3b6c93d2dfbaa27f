package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateRepairOrderRequest struct {
	VehicleID     string  `json:"vehicle_id"     validate:"required,uuid"`
	ReceptionDate string  `json:"reception_date" validate:"omitempty,datetime=2006-01-02"` // default: today
	Notes         *string `json:"notes"          validate:"omitempty,max=1000"`
}

type UpdateRepairOrderRequest struct {
	Notes *string `json:"notes" validate:"omitempty,max=1000"`
}

// ChangeStatusRequest drives the kanban board: dropping a card on a column
// issues exactly one of these per drag.
type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in-progress completed cancelled"`
}

// AddOrderItemRequest adds one billable line. Exactly one of spare_part_id /
// labor_type_id must be set; the service rejects rows with both or neither.
type AddOrderItemRequest struct {
	SparePartID *string `json:"spare_part_id" validate:"omitempty,uuid"`
	LaborTypeID *string `json:"labor_type_id" validate:"omitempty,uuid"`
	Quantity    int     `json:"quantity"      validate:"omitempty,min=1"`
}

type RepairOrderFilter struct {
	VehicleID string `form:"vehicle_id" validate:"omitempty,uuid"`
	Status    string `form:"status"     validate:"omitempty,oneof=pending in-progress completed cancelled all"`
	From      string `form:"from"       validate:"omitempty,datetime=2006-01-02"`
	To        string `form:"to"         validate:"omitempty,datetime=2006-01-02"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type OrderItemResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"` // part or labor name
	SparePartID *string         `json:"spare_part_id,omitempty"`
	LaborTypeID *string         `json:"labor_type_id,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LaborCost   decimal.Decimal `json:"labor_cost"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

type RepairOrderResponse struct {
	ID             string              `json:"id"`
	VehicleID      string              `json:"vehicle_id"`
	LicensePlate   string              `json:"license_plate,omitempty"`
	Status         string              `json:"status"`
	ReceptionDate  string              `json:"reception_date"`
	CompletionDate *string             `json:"completion_date"`
	TotalAmount    decimal.Decimal     `json:"total_amount"`
	Notes          *string             `json:"notes"`
	Items          []OrderItemResponse `json:"items"`
	CreatedAt      string              `json:"created_at"`
}

type RepairOrderListResponse struct {
	Data  []RepairOrderResponse `json:"data"`
	Total int64                 `json:"total"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
}

// KanbanBoardResponse groups open orders by status column.
type KanbanBoardResponse struct {
	Pending    []RepairOrderResponse `json:"pending"`
	InProgress []RepairOrderResponse `json:"in_progress"`
	Completed  []RepairOrderResponse `json:"completed"`
	Cancelled  []RepairOrderResponse `json:"cancelled"`
}
