package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CompteEtat string

const (
	CompteActif   CompteEtat = "ACTIF"
	CompteInactif CompteEtat = "INACTIF"
)

// Citoyen is a citizen account. A citizen owns service-point references and
// submits réclamations against them. The account flips to INACTIF when a
// reportage against the citizen is accepted.
type Citoyen struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;" json:"id"`
	FirstName string     `gorm:"not null" json:"first_name"`
	LastName  string     `gorm:"not null" json:"last_name"`
	CIN       string     `gorm:"type:varchar(8);unique;not null" json:"cin"`
	Phone     string     `gorm:"type:varchar(8);not null" json:"phone"`
	Email     string     `gorm:"unique;not null" json:"email"`
	Address   string     `gorm:"type:text" json:"address"`
	Password  string     `json:"-"` // Never include in JSON responses
	Etat      CompteEtat `gorm:"type:varchar(10);default:'ACTIF'" json:"etat"`

	References []Reference `gorm:"foreignKey:CitoyenID" json:"references,omitempty"`

	// Audit fields
	CreatedBy string         `json:"created_by"`
	UpdatedBy *string        `json:"updated_by"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *Citoyen) GetFullName() string {
	return c.FirstName + " " + c.LastName
}
