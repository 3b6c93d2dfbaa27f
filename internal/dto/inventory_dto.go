package dto

import "github.com/shopspring/decimal"

// ─── Spare parts ─────────────────────────────────────────────────────────────

type CreateSparePartRequest struct {
	Name          string          `json:"name"           validate:"required,min=2,max=100"`
	Price         decimal.Decimal `json:"price"          validate:"required"`
	StockQuantity int             `json:"stock_quantity" validate:"min=0"`
	MinQuantity   int             `json:"min_quantity"   validate:"omitempty,min=0"`
}

type UpdateSparePartRequest struct {
	Name        string           `json:"name"         validate:"omitempty,min=2,max=100"`
	Price       *decimal.Decimal `json:"price"`
	MinQuantity *int             `json:"min_quantity" validate:"omitempty,min=0"`
}

// AdjustStockRequest applies a signed delta to a part's stock and records a
// StockMovement row with the given reason.
type AdjustStockRequest struct {
	Delta  int    `json:"delta"  validate:"required"`
	Reason string `json:"reason" validate:"required,min=3,max=255"`
}

type SparePartFilter struct {
	Name   string `form:"name"`
	Active string `form:"active"` // "false" = inactive, "all" = everything, default active
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type SparePartResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	MinQuantity   int             `json:"min_quantity"`
	Active        bool            `json:"active"`
	LowStock      bool            `json:"low_stock"`
}

type SparePartListResponse struct {
	Data  []SparePartResponse `json:"data"`
	Total int64               `json:"total"`
	Page  int                 `json:"page"`
	Limit int                 `json:"limit"`
}

// ─── Labor types ─────────────────────────────────────────────────────────────

type CreateLaborTypeRequest struct {
	Name string          `json:"name" validate:"required,min=2,max=100"`
	Cost decimal.Decimal `json:"cost" validate:"required"`
}

type UpdateLaborTypeRequest struct {
	Name string           `json:"name" validate:"omitempty,min=2,max=100"`
	Cost *decimal.Decimal `json:"cost"`
}

type LaborTypeResponse struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Cost   decimal.Decimal `json:"cost"`
	Active bool            `json:"active"`
}

// ─── Stock movements ─────────────────────────────────────────────────────────

type StockMovementResponse struct {
	ID          string  `json:"id"`
	SparePartID string  `json:"spare_part_id"`
	PartName    string  `json:"part_name,omitempty"`
	Type        string  `json:"type"`
	Quantity    int     `json:"quantity"`
	StockBefore int     `json:"stock_before"`
	StockAfter  int     `json:"stock_after"`
	Reason      string  `json:"reason"`
	ReferenceID *string `json:"reference_id"`
	CreatedAt   string  `json:"created_at"`
}
