package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServiceIntervention is a dispatch-office account. It triages réclamations,
// assigns equipes and files reportages against abusive citizens.
type ServiceIntervention struct {
	ID       uuid.UUID  `gorm:"type:uuid;primary_key;" json:"id"`
	Nom      string     `gorm:"not null" json:"nom"`
	CIN      string     `gorm:"type:varchar(8);unique;not null" json:"cin"`
	Phone    string     `gorm:"type:varchar(8);not null" json:"phone"`
	Email    string     `gorm:"unique;not null" json:"email"`
	Address  string     `gorm:"type:text" json:"address"`
	Password string     `json:"-"`
	Etat     CompteEtat `gorm:"type:varchar(10);default:'ACTIF'" json:"etat"`

	CreatedBy string         `json:"created_by"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
