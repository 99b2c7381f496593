package repositories

import (
	"fmt"

	"steg-backend/config"
	"steg-backend/db/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type PlainteRepository interface {
	CreatePlainte(tx *gorm.DB, plainte *models.Plainte) (*models.Plainte, error)
	GetPlainteByID(id uuid.UUID) (*models.Plainte, error)
	GetFilteredPlaintes(limit, offset int, filters map[string]string) ([]models.Plainte, int64, error)
	VerifyPlainte(id uuid.UUID) (*models.Plainte, error)
	SetArchived(id uuid.UUID, archived bool) (*models.Plainte, error)

	CreateThread(tx *gorm.DB, thread *models.ChatThread) (*models.ChatThread, error)
	GetThreadByID(id uuid.UUID) (*models.ChatThread, error)
	SaveChatMessage(message *models.ChatMessage) (*models.ChatMessage, error)
	GetThreadMessages(threadID uuid.UUID, limit int) ([]models.ChatMessage, error)
}

type plainteRepository struct {
	DB *gorm.DB
}

// NewPlainteRepository initializes a new plainte repository
func NewPlainteRepository(db *gorm.DB) PlainteRepository {
	return &plainteRepository{DB: db}
}

func (pr *plainteRepository) CreatePlainte(tx *gorm.DB, plainte *models.Plainte) (*models.Plainte, error) {
	if plainte.Etat == "" {
		plainte.Etat = models.PlainteNonVerifie
	}

	if err := tx.Create(plainte).Error; err != nil {
		config.Logger.Error("Failed to create plainte",
			zap.Error(err),
			zap.String("reclamationID", plainte.ReclamationID.String()))
		return nil, fmt.Errorf("failed to create plainte: %w", err)
	}

	if err := tx.Preload("Reclamation").Preload("Citoyen").First(plainte, plainte.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload plainte: %w", err)
	}

	config.Logger.Info("Created plainte",
		zap.String("plainteID", plainte.ID.String()),
		zap.String("citoyenID", plainte.CitoyenID.String()))

	return plainte, nil
}

func (pr *plainteRepository) GetPlainteByID(id uuid.UUID) (*models.Plainte, error) {
	var plainte models.Plainte
	if err := pr.DB.Preload("Reclamation").Preload("Citoyen").
		First(&plainte, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &plainte, nil
}

func (pr *plainteRepository) GetFilteredPlaintes(limit, offset int, filters map[string]string) ([]models.Plainte, int64, error) {
	var plaintes []models.Plainte
	var total int64

	query := pr.DB.Model(&models.Plainte{})

	if etat, ok := filters["etat"]; ok && etat != "" {
		query = query.Where("etat = ?", etat)
	}
	if citoyenID, ok := filters["citoyen_id"]; ok && citoyenID != "" {
		query = query.Where("citoyen_id = ?", citoyenID)
	}
	if archived, ok := filters["archived"]; ok && archived != "" {
		query = query.Where("archived = ?", archived == "true")
	} else {
		query = query.Where("archived = ?", false)
	}
	if q, ok := filters["query"]; ok && q != "" {
		query = query.Where("description ILIKE ?", "%"+q+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("Reclamation").Preload("Citoyen").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&plaintes).Error; err != nil {
		return nil, 0, err
	}

	return plaintes, total, nil
}

func (pr *plainteRepository) VerifyPlainte(id uuid.UUID) (*models.Plainte, error) {
	plainte, err := pr.GetPlainteByID(id)
	if err != nil {
		return nil, err
	}

	plainte.Etat = models.PlainteVerifie
	if err := pr.DB.Save(plainte).Error; err != nil {
		return nil, fmt.Errorf("failed to verify plainte: %w", err)
	}

	config.Logger.Info("Plainte verified", zap.String("plainteID", id.String()))
	return plainte, nil
}

func (pr *plainteRepository) SetArchived(id uuid.UUID, archived bool) (*models.Plainte, error) {
	plainte, err := pr.GetPlainteByID(id)
	if err != nil {
		return nil, err
	}

	plainte.Archived = archived
	if err := pr.DB.Save(plainte).Error; err != nil {
		return nil, fmt.Errorf("failed to archive plainte: %w", err)
	}
	return plainte, nil
}

func (pr *plainteRepository) CreateThread(tx *gorm.DB, thread *models.ChatThread) (*models.ChatThread, error) {
	if err := tx.Create(thread).Error; err != nil {
		return nil, fmt.Errorf("failed to create chat thread: %w", err)
	}
	return thread, nil
}

func (pr *plainteRepository) GetThreadByID(id uuid.UUID) (*models.ChatThread, error) {
	var thread models.ChatThread
	if err := pr.DB.First(&thread, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &thread, nil
}

func (pr *plainteRepository) SaveChatMessage(message *models.ChatMessage) (*models.ChatMessage, error) {
	if err := pr.DB.Create(message).Error; err != nil {
		config.Logger.Error("Failed to save chat message",
			zap.Error(err),
			zap.String("threadID", message.ThreadID.String()))
		return nil, fmt.Errorf("failed to save chat message: %w", err)
	}

	// Touch the thread so inbox ordering follows activity.
	pr.DB.Model(&models.ChatThread{}).
		Where("id = ?", message.ThreadID).
		Update("last_activity_at", message.CreatedAt)

	return message, nil
}

func (pr *plainteRepository) GetThreadMessages(threadID uuid.UUID, limit int) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	if err := pr.DB.Where("thread_id = ?", threadID).
		Order("created_at ASC").
		Limit(limit).
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}
