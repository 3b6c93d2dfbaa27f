package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Accepted payment methods. "transfer" and "bank-transfer" coexist in
// historical data and are kept distinct.
const (
	MethodCash         = "cash"
	MethodCard         = "card"
	MethodTransfer     = "transfer"
	MethodBankTransfer = "bank-transfer"
)

// Payment is money received against a vehicle's balance. CreatedBy is nil for
// self-service payments made through the public QR endpoint.
type Payment struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VehicleID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Method      string          `gorm:"type:varchar(20);not null"`
	PaymentDate time.Time       `gorm:"not null;index"`
	CreatedBy   *uuid.UUID      `gorm:"type:uuid"`
	Note        *string
	CreatedAt   time.Time

	Vehicle *Vehicle `gorm:"foreignKey:VehicleID"`
}

// ValidMethod reports whether m is one of the accepted payment methods.
func ValidMethod(m string) bool {
	switch m {
	case MethodCash, MethodCard, MethodTransfer, MethodBankTransfer:
		return true
	}
	return false
}
