package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Importance string

const (
	ImportanceCritique   Importance = "CRITIQUE"
	ImportanceImportante Importance = "IMPORTANTE"
	ImportanceMoyenne    Importance = "MOYENNE"
	ImportanceFaible     Importance = "FAIBLE"
)

type ReclamationEtat string

const (
	EtatPasEncours ReclamationEtat = "PAS_ENCOURS"
	EtatEncours    ReclamationEtat = "ENCOURS"
	EtatTerminer   ReclamationEtat = "TERMINER"
	EtatAnnulee    ReclamationEtat = "ANNULEE"
)

// Reclamation is a citizen-submitted electrical-fault record tied to a
// service-point reference. Etat transitions are recorded in Historique.
type Reclamation struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key;" json:"id"`
	Code       string          `gorm:"type:varchar(12);unique;not null" json:"code"`
	Reference  string          `gorm:"type:varchar(8);not null;index" json:"reference"`
	Importance Importance      `gorm:"type:varchar(15);not null" json:"importance"`
	TypePanne  string          `gorm:"type:varchar(50);not null" json:"type_panne"`
	GenrePanne string          `gorm:"type:varchar(50)" json:"genre_panne"`
	NumClient  string          `gorm:"type:varchar(20)" json:"num_client"`
	Etat       ReclamationEtat `gorm:"type:varchar(15);default:'PAS_ENCOURS'" json:"etat"`

	CitoyenID *uuid.UUID `gorm:"type:uuid;index" json:"citoyen_id"`
	EquipeID  *uuid.UUID `gorm:"type:uuid;index" json:"equipe_id"`

	// Cost of the field intervention, filled when the réclamation is closed.
	CoutIntervention decimal.Decimal `gorm:"type:decimal(12,3);default:0" json:"cout_intervention"`

	// Append-only log of etat transitions: [{"etat": "...", "at": "...", "by": "..."}]
	Historique datatypes.JSON `gorm:"type:jsonb" json:"historique,omitempty"`

	Archived bool `gorm:"default:false;index" json:"archived"`

	Citoyen *Citoyen `gorm:"foreignKey:CitoyenID" json:"citoyen,omitempty"`
	Equipe  *Equipe  `gorm:"foreignKey:EquipeID" json:"equipe,omitempty"`

	// Audit fields
	CreatedBy string         `json:"created_by"`
	UpdatedBy *string        `json:"updated_by"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
