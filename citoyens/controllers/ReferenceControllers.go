package controllers

import (
	"errors"

	"steg-backend/citoyens/services"
	"steg-backend/config"
	"steg-backend/db/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AddReferenceRequest struct {
	Code string `json:"code"`
}

// AddReferenceController attaches a new service-point reference to a
// citizen, classifying it into its geographic zone.
func (cc *CitoyenController) AddReferenceController(c *fiber.Ctx) error {
	citoyenID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid citoyen ID",
		})
	}

	var request AddReferenceRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request payload",
			"error":   err.Error(),
		})
	}

	if _, err := cc.CitoyenRepo.GetCitoyenByID(citoyenID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Citoyen not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load citoyen",
		})
	}

	existing, err := cc.CitoyenRepo.GetReferencesByCitoyen(citoyenID)
	if err != nil {
		config.Logger.Error("Failed to load citoyen references", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load references",
		})
	}

	if reason := services.ValidateReference(request.Code, existing); reason != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   reason,
		})
	}

	reference := &models.Reference{
		ID:        uuid.New(),
		Code:      request.Code,
		Zone:      services.ClassifyReferenceZone(request.Code),
		CitoyenID: citoyenID,
	}

	created, err := cc.CitoyenRepo.CreateReference(reference)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Something went wrong while creating the reference",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Reference successfully added",
		"data":    created,
	})
}

// GetReferencesController lists a citizen's references with their zones.
func (cc *CitoyenController) GetReferencesController(c *fiber.Ctx) error {
	citoyenID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid citoyen ID",
		})
	}

	references, err := cc.CitoyenRepo.GetReferencesByCitoyen(citoyenID)
	if err != nil {
		config.Logger.Error("Failed to fetch references", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch references",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": references,
	})
}

// DeleteReferenceController removes a reference unless réclamations were
// filed against it, in which case the reference is immutable and the
// request conflicts.
func (cc *CitoyenController) DeleteReferenceController(c *fiber.Ctx) error {
	citoyenID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid citoyen ID",
		})
	}

	referenceID, err := uuid.Parse(c.Params("referenceId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid reference ID",
		})
	}

	references, err := cc.CitoyenRepo.GetReferencesByCitoyen(citoyenID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load references",
		})
	}

	var target *models.Reference
	for i := range references {
		if references[i].ID == referenceID {
			target = &references[i]
			break
		}
	}
	if target == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Reference not found for this citoyen",
		})
	}

	count, err := cc.CitoyenRepo.CountReclamationsForReference(target.Code)
	if err != nil {
		config.Logger.Error("Failed to count réclamations for reference",
			zap.Error(err),
			zap.String("code", target.Code))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to check reference usage",
		})
	}
	if count > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Cette référence est liée à des réclamations existantes et ne peut pas être supprimée",
		})
	}

	if err := cc.CitoyenRepo.DeleteReference(referenceID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete reference",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Reference deleted",
	})
}
