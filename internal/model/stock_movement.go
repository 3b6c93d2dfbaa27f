package model

import (
	"time"

	"github.com/google/uuid"
)

// Stock movement types.
const (
	MovementConsumption = "consumption" // part used on a repair order
	MovementRestore     = "restore"     // order cancelled, stock returned
	MovementRestock     = "restock"
	MovementAdjustment  = "adjustment" // manual correction
)

// StockMovement records every change to a spare part's stock quantity.
// Created automatically when an order line consumes a part, when an order is
// cancelled, or on manual adjustment.
type StockMovement struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SparePartID uuid.UUID `gorm:"type:uuid;not null;index"`
	Type        string    `gorm:"not null"`
	Quantity    int       `gorm:"not null"` // positive = in, negative = out
	StockBefore int       `gorm:"not null"`
	StockAfter  int       `gorm:"not null"`
	Reason      string
	ReferenceID *uuid.UUID `gorm:"type:uuid"` // repair_order id if applicable
	CreatedAt   time.Time

	SparePart *SparePart `gorm:"foreignKey:SparePartID"`
}
