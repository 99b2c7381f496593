package services

import (
	"fmt"

	"steg-backend/db/models"
	"steg-backend/plaintes/repositories"

	"github.com/google/uuid"
)

// ChatService persists plainte discussion messages. It satisfies the
// websocket handler's chat dependency.
type ChatService struct {
	PlainteRepo repositories.PlainteRepository
}

func NewChatService(plainteRepo repositories.PlainteRepository) *ChatService {
	return &ChatService{PlainteRepo: plainteRepo}
}

// SaveMessage validates the thread and stores the message.
func (cs *ChatService) SaveMessage(threadID string, senderEmail, content string) (uuid.UUID, error) {
	tid, err := uuid.Parse(threadID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid thread id: %w", err)
	}

	thread, err := cs.PlainteRepo.GetThreadByID(tid)
	if err != nil {
		return uuid.Nil, fmt.Errorf("thread not found: %w", err)
	}
	if !thread.IsActive {
		return uuid.Nil, fmt.Errorf("thread %s is closed", threadID)
	}

	message := &models.ChatMessage{
		ID:          uuid.New(),
		ThreadID:    tid,
		SenderEmail: senderEmail,
		Type:        models.MessageTypeText,
		Content:     content,
		Status:      models.MessageStatusSent,
	}

	saved, err := cs.PlainteRepo.SaveChatMessage(message)
	if err != nil {
		return uuid.Nil, err
	}

	return saved.ID, nil
}
