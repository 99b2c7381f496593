package models

import (
	"time"

	"github.com/google/uuid"
)

type EmailStatus string

const (
	EmailPending EmailStatus = "PENDING"
	EmailSent    EmailStatus = "SENT"
	EmailFailed  EmailStatus = "FAILED"
)

// EmailLog records every notification email the system queues, so failed
// sends can be audited and retried.
type EmailLog struct {
	ID        uuid.UUID   `gorm:"type:uuid;primary_key;" json:"id"`
	Recipient string      `gorm:"not null" json:"recipient"`
	Subject   string      `gorm:"not null" json:"subject"`
	Body      string      `gorm:"type:text" json:"body"`
	Status    EmailStatus `gorm:"type:varchar(10);default:'PENDING'" json:"status"`
	LastError *string     `gorm:"type:text" json:"last_error"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
