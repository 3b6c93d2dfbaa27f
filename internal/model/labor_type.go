package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LaborType is a catalog entry for billable work (oil change, alignment, …).
type LaborType struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string          `gorm:"index;not null"`
	Cost      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Active    bool            `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
