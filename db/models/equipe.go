package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Equipe is a technician team that handles réclamations.
type Equipe struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	Nom    string    `gorm:"type:varchar(50);unique;not null" json:"nom"`
	Zone   string    `gorm:"type:varchar(30)" json:"zone"`
	Active bool      `gorm:"default:true" json:"active"`

	Techniciens []Technicien `gorm:"foreignKey:EquipeID" json:"techniciens,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type Technicien struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;" json:"id"`
	FirstName string     `gorm:"not null" json:"first_name"`
	LastName  string     `gorm:"not null" json:"last_name"`
	CIN       string     `gorm:"type:varchar(8);unique;not null" json:"cin"`
	Phone     string     `gorm:"type:varchar(8);not null" json:"phone"`
	Email     string     `gorm:"unique;not null" json:"email"`
	Password  string     `json:"-"`
	Etat      CompteEtat `gorm:"type:varchar(10);default:'ACTIF'" json:"etat"`

	EquipeID *uuid.UUID `gorm:"type:uuid;index" json:"equipe_id"`
	Equipe   *Equipe    `gorm:"foreignKey:EquipeID" json:"equipe,omitempty"`

	CreatedBy string         `json:"created_by"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
