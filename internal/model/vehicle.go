package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Vehicle is the unit the shop bills against: repair orders and payments both
// hang off the vehicle, not the customer. TotalPaid is a running sum kept in
// sync with the payments table inside the payment transaction.
type Vehicle struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LicensePlate string    `gorm:"uniqueIndex;not null"`
	Brand        string    `gorm:"index;not null"`
	Model        *string
	Year         *int
	CustomerID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	TotalPaid    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Customer     *Customer     `gorm:"foreignKey:CustomerID"`
	RepairOrders []RepairOrder `gorm:"foreignKey:VehicleID"`
	Payments     []Payment     `gorm:"foreignKey:VehicleID"`
}
