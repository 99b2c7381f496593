package models

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessageType string

const (
	MessageTypeText   ChatMessageType = "TEXT"
	MessageTypeSystem ChatMessageType = "SYSTEM" // User joined, etc.
	MessageTypeAction ChatMessageType = "ACTION" // Plainte verified, etc.
)

type MessageStatus string

const (
	MessageStatusSent      MessageStatus = "SENT"
	MessageStatusDelivered MessageStatus = "DELIVERED"
	MessageStatusRead      MessageStatus = "READ"
)

// ChatThread is the discussion attached to a plainte, between the citizen
// who filed it and the intervention service handling it.
type ChatThread struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	PlainteID uuid.UUID `gorm:"type:uuid;not null;index" json:"plainte_id"`
	Title     string    `gorm:"type:varchar(200);not null" json:"title"`
	IsActive  bool      `gorm:"default:true;index" json:"is_active"`

	LastActivityAt time.Time `gorm:"autoUpdateTime;index" json:"last_activity_at"`

	Plainte  Plainte       `gorm:"foreignKey:PlainteID" json:"plainte,omitempty"`
	Messages []ChatMessage `gorm:"foreignKey:ThreadID" json:"messages,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type ChatMessage struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key;" json:"id"`
	ThreadID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"thread_id"`
	SenderEmail string          `gorm:"not null;index" json:"sender_email"`
	Type        ChatMessageType `gorm:"type:varchar(10);default:'TEXT'" json:"type"`
	Content     string          `gorm:"type:text;not null" json:"content"`
	Status      MessageStatus   `gorm:"type:varchar(10);default:'SENT'" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
