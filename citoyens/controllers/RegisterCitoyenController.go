package controllers

import (
	"context"

	indexing_repository "steg-backend/bleve/repositories"
	"steg-backend/citoyens/repositories"
	"steg-backend/citoyens/services"
	"steg-backend/config"
	"steg-backend/db/models"
	"steg-backend/internal/tasks"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type CitoyenController struct {
	CitoyenRepo repositories.CitoyenRepository
	DB          *gorm.DB
	Ctx         context.Context
	BleveRepo   indexing_repository.BleveRepositoryInterface
}

type RegisterCitoyenRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	CIN       string `json:"cin"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	Password  string `json:"password"`
	Reference string `json:"reference"`
	CreatedBy string `json:"created_by"`
}

func (cc *CitoyenController) RegisterCitoyenController(c *fiber.Ctx) error {
	var request RegisterCitoyenRequest

	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request payload",
			"error":   err.Error(),
		})
	}

	citoyen := models.Citoyen{
		ID:        uuid.New(),
		FirstName: request.FirstName,
		LastName:  request.LastName,
		CIN:       request.CIN,
		Phone:     request.Phone,
		Email:     request.Email,
		Address:   request.Address,
		Etat:      models.CompteActif,
		CreatedBy: request.CreatedBy,
	}

	if validationError := services.ValidateCitoyen(&citoyen); validationError != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   validationError,
		})
	}

	if len(request.Password) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   "Le mot de passe doit contenir au moins 8 caractères",
		})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		config.Logger.Error("Failed to hash password", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal server error",
		})
	}
	citoyen.Password = string(hashed)

	// The initial service-point reference is optional at registration.
	if request.Reference != "" {
		if reason := services.ValidateReference(request.Reference, nil); reason != "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation failed",
				"error":   reason,
			})
		}
		citoyen.References = append(citoyen.References, models.Reference{
			ID:        uuid.New(),
			Code:      request.Reference,
			Zone:      services.ClassifyReferenceZone(request.Reference),
			CitoyenID: citoyen.ID,
		})
	}

	tx := cc.DB.Begin()
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

	createdCitoyen, err := cc.CitoyenRepo.CreateCitoyen(tx, &citoyen)
	if err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Something went wrong while creating the citoyen",
			"error":   err.Error(),
		})
	}

	if cc.BleveRepo != nil {
		if err := cc.BleveRepo.IndexSingleCitoyen(*createdCitoyen); err != nil {
			tx.Rollback()
			config.Logger.Error("Failed to index citoyen, rolling back",
				zap.Error(err),
				zap.String("citoyenID", createdCitoyen.ID.String()))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Citoyen could not be created because indexing failed",
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

	tasks.EnqueueEmail(
		createdCitoyen.Email,
		"Bienvenue "+createdCitoyen.GetFullName()+", votre compte STEG a été créé avec succès.",
		"Bienvenue sur la plateforme STEG",
		"",
	)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Citoyen successfully registered",
		"data":    createdCitoyen,
	})
}
