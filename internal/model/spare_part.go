package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SparePart is a stocked inventory item consumed by repair order lines.
type SparePart struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string          `gorm:"index;not null"`
	Price         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	StockQuantity int             `gorm:"not null;default:0"`
	MinQuantity   int             `gorm:"not null;default:5"`
	Active        bool            `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
