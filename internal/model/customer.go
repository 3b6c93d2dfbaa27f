package model

import (
	"time"

	"github.com/google/uuid"
)

// Customer is the owner of one or more vehicles serviced by the shop.
type Customer struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"index;not null"`
	Phone     string    `gorm:"index;not null"`
	Email     *string
	Address   *string
	CreatedAt time.Time
	UpdatedAt time.Time

	Vehicles []Vehicle `gorm:"foreignKey:CustomerID"`
}
