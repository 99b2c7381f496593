package controllers

import (
	"context"
	"strings"

	"steg-backend/config"
	"steg-backend/db/models"
	"steg-backend/internal/services"
	"steg-backend/plaintes/repositories"
	"steg-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type PlainteController struct {
	PlainteRepo repositories.PlainteRepository
	DB          *gorm.DB
	Ctx         context.Context
	GeminiSvc   *services.GeminiService
	Files       utils.FileStorage
}

type CreatePlainteRequest struct {
	ReclamationID string `json:"reclamation_id" form:"reclamation_id"`
	CitoyenID     string `json:"citoyen_id" form:"citoyen_id"`
	Description   string `json:"description" form:"description"`
}

// CreatePlainteController files a complaint against the handling of a
// réclamation and opens its discussion thread in the same transaction.
func (pc *PlainteController) CreatePlainteController(c *fiber.Ctx) error {
	var request CreatePlainteRequest

	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request payload",
			"error":   err.Error(),
		})
	}

	reclamationID, err := uuid.Parse(request.ReclamationID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid réclamation ID",
		})
	}
	citoyenID, err := uuid.Parse(request.CitoyenID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid citoyen ID",
		})
	}
	if strings.TrimSpace(request.Description) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "La description est obligatoire",
		})
	}

	var reclamation models.Reclamation
	if err := pc.DB.First(&reclamation, "id = ?", reclamationID).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Réclamation introuvable",
		})
	}

	var citoyen models.Citoyen
	if err := pc.DB.First(&citoyen, "id = ?", citoyenID).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Citoyen introuvable",
		})
	}
	if citoyen.Etat == models.CompteInactif {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Ce compte citoyen est bloqué et ne peut pas déposer de plaintes",
		})
	}

	plainte := models.Plainte{
		ID:            uuid.New(),
		ReclamationID: reclamationID,
		CitoyenID:     citoyenID,
		Description:   request.Description,
		Etat:          models.PlainteNonVerifie,
	}

	// Optional supporting document, multipart field "piece_jointe".
	if fileHeader, err := c.FormFile("piece_jointe"); err == nil && pc.Files != nil {
		src, err := fileHeader.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Pièce jointe illisible",
			})
		}
		defer src.Close()

		storedPath, err := pc.Files.UploadFile(src, plainte.ID.String()+"_"+fileHeader.Filename)
		if err != nil {
			config.Logger.Error("Failed to store plainte attachment", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Something went wrong while storing the attachment",
			})
		}
		plainte.PieceJointe = storedPath
	}

	tx := pc.DB.Begin()
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

	createdPlainte, err := pc.PlainteRepo.CreatePlainte(tx, &plainte)
	if err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Something went wrong while creating the plainte",
			"error":   err.Error(),
		})
	}

	thread := models.ChatThread{
		ID:        uuid.New(),
		PlainteID: createdPlainte.ID,
		Title:     "Plainte - " + reclamation.Code,
		IsActive:  true,
	}
	if _, err := pc.PlainteRepo.CreateThread(tx, &thread); err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Something went wrong while opening the discussion thread",
			"error":   err.Error(),
		})
	}

	if err := tx.Commit().Error; err != nil {
		config.Logger.Error("Failed to commit database transaction", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal server error: Could not commit database transaction",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Plainte successfully created",
		"data": fiber.Map{
			"plainte":   createdPlainte,
			"thread_id": thread.ID,
		},
	})
}
