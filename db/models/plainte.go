package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PlainteEtat string

const (
	PlainteNonVerifie PlainteEtat = "NON_VERIFIE"
	PlainteVerifie    PlainteEtat = "VERIFIE"
)

// Plainte is a formal complaint a citizen files against the handling of one
// of their réclamations.
type Plainte struct {
	ID            uuid.UUID   `gorm:"type:uuid;primary_key;" json:"id"`
	ReclamationID uuid.UUID   `gorm:"type:uuid;not null;index" json:"reclamation_id"`
	CitoyenID     uuid.UUID   `gorm:"type:uuid;not null;index" json:"citoyen_id"`
	Description   string      `gorm:"type:text;not null" json:"description"`
	Etat          PlainteEtat `gorm:"type:varchar(15);default:'NON_VERIFIE'" json:"etat"`
	Archived      bool        `gorm:"default:false;index" json:"archived"`
	PieceJointe   string      `json:"piece_jointe,omitempty"`

	Reclamation Reclamation `gorm:"foreignKey:ReclamationID" json:"reclamation,omitempty"`
	Citoyen     Citoyen     `gorm:"foreignKey:CitoyenID" json:"citoyen,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
