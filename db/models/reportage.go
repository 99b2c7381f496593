package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReportageType string

const (
	ReportageSpam          ReportageType = "SPAM"
	ReportageDouteIdentite ReportageType = "DOUTESURIDENTITE"
)

type ReportageEtat string

const (
	ReportageEncours  ReportageEtat = "ENCOURS"
	ReportageAccepter ReportageEtat = "ACCEPTER"
	ReportageRefuser  ReportageEtat = "REFUSER"
)

// Reportage is a report an intervention service files against a citizen.
// Accepting one blocks the referenced citizen account in the same
// transaction.
type Reportage struct {
	ID        uuid.UUID     `gorm:"type:uuid;primary_key;" json:"id"`
	CitoyenID uuid.UUID     `gorm:"type:uuid;not null;index" json:"citoyen_id"`
	ServiceID uuid.UUID     `gorm:"type:uuid;not null;index" json:"service_id"`
	Type      ReportageType `gorm:"type:varchar(20);not null" json:"type"`
	Etat      ReportageEtat `gorm:"type:varchar(10);default:'ENCOURS'" json:"etat"`
	Motif     string        `gorm:"type:text" json:"motif"`
	Date      time.Time     `gorm:"autoCreateTime" json:"date"`

	Citoyen Citoyen             `gorm:"foreignKey:CitoyenID" json:"citoyen,omitempty"`
	Service ServiceIntervention `gorm:"foreignKey:ServiceID" json:"service,omitempty"`

	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
