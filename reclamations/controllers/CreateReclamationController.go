package controllers

import (
	"context"
	"time"

	indexing_repository "steg-backend/bleve/repositories"
	"steg-backend/config"
	"steg-backend/db/models"
	"steg-backend/reclamations/repositories"
	"steg-backend/reclamations/services"
	"steg-backend/utils"
	"steg-backend/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ReclamationController struct {
	ReclamationRepo repositories.ReclamationRepository
	DB              *gorm.DB
	Ctx             context.Context
	BleveRepo       indexing_repository.BleveRepositoryInterface
	Hub             *websocket.Hub
}

type CreateReclamationRequest struct {
	Reference  string `json:"reference"`
	Importance string `json:"importance"`
	TypePanne  string `json:"type_panne"`
	GenrePanne string `json:"genre_panne"`
	NumClient  string `json:"num_client"`
	CitoyenID  string `json:"citoyen_id"`
	CreatedBy  string `json:"created_by"`
}

func (rc *ReclamationController) CreateReclamationController(c *fiber.Ctx) error {
	var request CreateReclamationRequest

	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request payload",
			"error":   err.Error(),
		})
	}

	reclamation := models.Reclamation{
		ID:         uuid.New(),
		Code:       utils.GenerateReclamationCode(),
		Reference:  request.Reference,
		Importance: models.Importance(request.Importance),
		TypePanne:  request.TypePanne,
		GenrePanne: request.GenrePanne,
		NumClient:  request.NumClient,
		CitoyenID:  utils.StringToUUIDPtr(request.CitoyenID),
		CreatedBy:  request.CreatedBy,
		Etat:       models.EtatPasEncours,
	}

	if validationError := services.ValidateReclamation(&reclamation); validationError != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   validationError,
		})
	}

	// A blocked citizen cannot submit réclamations.
	if reclamation.CitoyenID != nil {
		var citoyen models.Citoyen
		if err := rc.DB.First(&citoyen, "id = ?", reclamation.CitoyenID).Error; err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation failed",
				"error":   "Citoyen introuvable",
			})
		}
		if citoyen.Etat == models.CompteInactif {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Compte suspendu",
				"error":   "Ce compte citoyen est bloqué et ne peut pas soumettre de réclamations",
			})
		}
	}

	tx := rc.DB.Begin()
	if tx.Error != nil {
		config.Logger.Error("Failed to begin database transaction", zap.Error(tx.Error))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal server error: Could not start database transaction",
			"error":   tx.Error.Error(),
		})
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			config.Logger.Error("Panic detected, rolling back transaction", zap.Any("panic_reason", r))
			panic(r)
		}
	}()

	createdReclamation, err := rc.ReclamationRepo.CreateReclamation(tx, &reclamation)
	if err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Something went wrong while creating the réclamation",
			"error":   err.Error(),
		})
	}

	if rc.BleveRepo != nil {
		if err := rc.BleveRepo.IndexSingleReclamation(*createdReclamation); err != nil {
			tx.Rollback()
			config.Logger.Error("Failed to index réclamation, rolling back",
				zap.Error(err),
				zap.String("reclamationID", createdReclamation.ID.String()))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Réclamation could not be created because indexing failed",
				"error":   err.Error(),
			})
		}
	}

	if err := tx.Commit().Error; err != nil {
		config.Logger.Error("Failed to commit database transaction", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal server error: Could not commit database transaction",
			"error":   err.Error(),
		})
	}

	// Every connected dashboard appends the new réclamation live.
	if rc.Hub != nil {
		rc.Hub.Broadcast(websocket.WebSocketMessage{
			Type:      websocket.MessageTypeReclamation,
			Payload:   createdReclamation,
			Timestamp: time.Now(),
			Topic:     websocket.TopicReclamations,
		})
	}

	utils.InvalidateCacheAsync("reclamation_exports")

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Réclamation successfully created",
		"data":    createdReclamation,
	})
}
