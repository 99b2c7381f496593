package models

import (
	"time"

	"github.com/google/uuid"
)

// Reference is an 8-digit service-point identifier owned by a citizen. The
// leading five digits place it inside one of the serviced geographic zones.
type Reference struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	Code      string    `gorm:"type:varchar(8);not null;uniqueIndex:idx_citoyen_code" json:"code"`
	Zone      string    `gorm:"type:varchar(30);not null" json:"zone"`
	CitoyenID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_citoyen_code" json:"citoyen_id"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
