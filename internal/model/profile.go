package model

import (
	"time"

	"github.com/google/uuid"
)

// Staff roles.
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// Profile stores staff accounts with role-based access.
type Profile struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string    `gorm:"uniqueIndex;not null"`
	FullName     string    `gorm:"not null"`
	PasswordHash string    `gorm:"not null"`
	Role         string    `gorm:"type:varchar(20);not null"`
	Active       bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
