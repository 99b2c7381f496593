package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	AdminRole       Role = "admin"
	SuperviseurRole Role = "superviseur"
	DispatcheurRole Role = "dispatcheur"
)

// User represents back-office staff accounts (admins, superviseurs,
// dispatcheurs). Citizens, technicians and intervention services have
// their own account models.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	FirstName string    `gorm:"not null" json:"first_name"`
	LastName  string    `gorm:"not null" json:"last_name"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Phone     string    `gorm:"unique" json:"phone"`
	Password  string    `json:"-"` // Never include in JSON responses

	Role Role `gorm:"type:varchar(30);not null" json:"role"`

	// Status
	Active      bool       `gorm:"default:true" json:"active"`
	LastLoginAt *time.Time `json:"last_login_at"`

	// Audit fields
	CreatedBy string         `gorm:"not null" json:"created_by"`
	UpdatedBy *string        `json:"updated_by"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
