package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Repair order statuses. Pending orders may move to in-progress or straight to
// completed; completed and cancelled are terminal.
const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// RepairOrder is one vehicle visit. TotalAmount always equals the sum of its
// items' TotalAmount; it is recomputed inside the same transaction that
// mutates the items.
type RepairOrder struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VehicleID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Status         string    `gorm:"type:varchar(20);not null;default:'pending';index"`
	ReceptionDate  time.Time `gorm:"not null;index"`
	CompletionDate *time.Time
	TotalAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Notes          *string
	CreatedBy      *uuid.UUID `gorm:"type:uuid"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Vehicle *Vehicle          `gorm:"foreignKey:VehicleID"`
	Items   []RepairOrderItem `gorm:"foreignKey:RepairOrderID"`
}

// RepairOrderItem is a billable line: either a spare part (quantity ×
// unit price) or a labor entry, never both on the same row.
type RepairOrderItem struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RepairOrderID uuid.UUID       `gorm:"type:uuid;not null;index"`
	SparePartID   *uuid.UUID      `gorm:"type:uuid;index"`
	LaborTypeID   *uuid.UUID      `gorm:"type:uuid;index"`
	Quantity      int             `gorm:"not null;default:1"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	LaborCost     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	// TotalAmount = Quantity×UnitPrice + LaborCost
	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt   time.Time

	SparePart *SparePart `gorm:"foreignKey:SparePartID"`
	LaborType *LaborType `gorm:"foreignKey:LaborTypeID"`
}
