package controllers

import (
	"context"

	"steg-backend/config"
	"steg-backend/db/models"
	"steg-backend/equipes/repositories"
	"steg-backend/equipes/services"
	"steg-backend/utils"
	"steg-backend/utils/pagination"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type EquipeController struct {
	EquipeRepo repositories.EquipeRepository
	DB         *gorm.DB
	Ctx        context.Context
}

type CreateEquipeRequest struct {
	Nom  string `json:"nom"`
	Zone string `json:"zone"`
}

func (ec *EquipeController) CreateEquipeController(c *fiber.Ctx) error {
	var request CreateEquipeRequest

	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request payload",
			"error":   err.Error(),
		})
	}

	if request.Nom == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Le nom de l'équipe est obligatoire",
		})
	}

	equipe := models.Equipe{
		ID:     uuid.New(),
		Nom:    request.Nom,
		Zone:   request.Zone,
		Active: true,
	}

	created, err := ec.EquipeRepo.CreateEquipe(&equipe)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Something went wrong while creating the equipe",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Equipe successfully created",
		"data":    created,
	})
}

// GetFilteredEquipesController serves the paginated equipe list.
func (ec *EquipeController) GetFilteredEquipesController(c *fiber.Ctx) error {
	params := pagination.ParsePaginationParams(c)
	if err := pagination.ValidatePaginationParams(params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	offset := (params.Page - 1) * params.PageSize

	equipes, total, err := ec.EquipeRepo.GetFilteredEquipes(params.PageSize, offset, params.Filters)
	if err != nil {
		config.Logger.Error("Failed to fetch filtered equipes", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch equipes",
		})
	}

	return c.Status(fiber.StatusOK).JSON(pagination.NewPaginatedResponse(c, equipes, total, params))
}

type SaveTechnicienRequest struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	CIN       string `json:"cin"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	EquipeID  string `json:"equipe_id"`
	CreatedBy string `json:"created_by"`
}

// SaveTechnicienController creates or updates a technician. The phone
// validator here accepts the technician prefix set.
func (ec *EquipeController) SaveTechnicienController(c *fiber.Ctx) error {
	var request SaveTechnicienRequest

	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request payload",
			"error":   err.Error(),
		})
	}

	technicien := models.Technicien{
		FirstName: request.FirstName,
		LastName:  request.LastName,
		CIN:       request.CIN,
		Phone:     request.Phone,
		Email:     request.Email,
		Etat:      models.CompteActif,
		EquipeID:  utils.StringToUUIDPtr(request.EquipeID),
		CreatedBy: request.CreatedBy,
	}

	if request.ID != "" {
		id, err := uuid.Parse(request.ID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid technicien ID",
			})
		}
		technicien.ID = id
	} else {
		technicien.ID = uuid.New()
	}

	if validationError := services.ValidateTechnicien(&technicien); validationError != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   validationError,
		})
	}

	if request.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
		if err != nil {
			config.Logger.Error("Failed to hash password", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Internal server error",
			})
		}
		technicien.Password = string(hashed)
	}

	saved, err := ec.EquipeRepo.SaveTechnicien(&technicien)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Something went wrong while saving the technicien",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Technicien successfully saved",
		"data":    saved,
	})
}

// GetFilteredTechniciensController serves the paginated technician list.
func (ec *EquipeController) GetFilteredTechniciensController(c *fiber.Ctx) error {
	params := pagination.ParsePaginationParams(c)
	if err := pagination.ValidatePaginationParams(params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	offset := (params.Page - 1) * params.PageSize

	techniciens, total, err := ec.EquipeRepo.GetFilteredTechniciens(params.PageSize, offset, params.Filters)
	if err != nil {
		config.Logger.Error("Failed to fetch filtered techniciens", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch techniciens",
		})
	}

	return c.Status(fiber.StatusOK).JSON(pagination.NewPaginatedResponse(c, techniciens, total, params))
}

type SaveServiceInterventionRequest struct {
	ID        string `json:"id"`
	Nom       string `json:"nom"`
	CIN       string `json:"cin"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	Password  string `json:"password"`
	CreatedBy string `json:"created_by"`
}

// SaveServiceInterventionController creates or updates a dispatch-office
// account.
func (ec *EquipeController) SaveServiceInterventionController(c *fiber.Ctx) error {
	var request SaveServiceInterventionRequest

	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request payload",
			"error":   err.Error(),
		})
	}

	service := models.ServiceIntervention{
		Nom:       request.Nom,
		CIN:       request.CIN,
		Phone:     request.Phone,
		Email:     request.Email,
		Address:   request.Address,
		Etat:      models.CompteActif,
		CreatedBy: request.CreatedBy,
	}

	if request.ID != "" {
		id, err := uuid.Parse(request.ID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid service ID",
			})
		}
		service.ID = id
	} else {
		service.ID = uuid.New()
	}

	if validationError := services.ValidateServiceIntervention(&service); validationError != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   validationError,
		})
	}

	if request.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
		if err != nil {
			config.Logger.Error("Failed to hash password", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Internal server error",
			})
		}
		service.Password = string(hashed)
	}

	saved, err := ec.EquipeRepo.SaveServiceIntervention(&service)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Something went wrong while saving the service intervention",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Service intervention successfully saved",
		"data":    saved,
	})
}
