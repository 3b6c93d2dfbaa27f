package model

import (
	"time"

	"github.com/google/uuid"
)

// Invoice statuses.
const (
	InvoicePending = "pending"
	InvoiceIssued  = "issued"
	InvoiceFailed  = "failed"
)

// Invoice tracks the async PDF pipeline for a completed repair order.
// Number comes from a dedicated Postgres sequence. Retry fields drive the
// retry cron: pending invoices with NextRetryAt in the past are re-enqueued.
type Invoice struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RepairOrderID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Number        int       `gorm:"not null"`
	Status        string    `gorm:"type:varchar(20);not null;default:'pending'"`
	PDFPath       *string
	RetryCount    int `gorm:"not null;default:0"`
	NextRetryAt   *time.Time
	LastError     *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	RepairOrder *RepairOrder `gorm:"foreignKey:RepairOrderID"`
}
