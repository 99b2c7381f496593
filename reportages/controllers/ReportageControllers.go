package controllers

import (
	"context"
	"errors"
	"strings"

	indexing_repository "steg-backend/bleve/repositories"
	"steg-backend/config"
	"steg-backend/db/models"
	"steg-backend/internal/tasks"
	"steg-backend/reportages/repositories"
	"steg-backend/utils/pagination"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ReportageController struct {
	ReportageRepo repositories.ReportageRepository
	DB            *gorm.DB
	Ctx           context.Context
	BleveRepo     indexing_repository.BleveRepositoryInterface
}

type CreateReportageRequest struct {
	CitoyenID string `json:"citoyen_id"`
	ServiceID string `json:"service_id"`
	Type      string `json:"type"`
	Motif     string `json:"motif"`
}

func (rc *ReportageController) CreateReportageController(c *fiber.Ctx) error {
	var request CreateReportageRequest

	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request payload",
			"error":   err.Error(),
		})
	}

	citoyenID, err := uuid.Parse(request.CitoyenID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid citoyen ID",
		})
	}
	serviceID, err := uuid.Parse(request.ServiceID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid service ID",
		})
	}

	reportageType := models.ReportageType(strings.ToUpper(request.Type))
	if reportageType != models.ReportageSpam && reportageType != models.ReportageDouteIdentite {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Type invalide: valeurs acceptées SPAM, DOUTESURIDENTITE",
		})
	}

	reportage := models.Reportage{
		ID:        uuid.New(),
		CitoyenID: citoyenID,
		ServiceID: serviceID,
		Type:      reportageType,
		Etat:      models.ReportageEncours,
		Motif:     request.Motif,
	}

	created, err := rc.ReportageRepo.CreateReportage(&reportage)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Something went wrong while creating the reportage",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Reportage successfully created",
		"data":    created,
	})
}

// GetFilteredReportagesController serves the paginated reportage list.
func (rc *ReportageController) GetFilteredReportagesController(c *fiber.Ctx) error {
	params := pagination.ParsePaginationParams(c)
	if err := pagination.ValidatePaginationParams(params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	offset := (params.Page - 1) * params.PageSize

	reportages, total, err := rc.ReportageRepo.GetFilteredReportages(params.PageSize, offset, params.Filters)
	if err != nil {
		config.Logger.Error("Failed to fetch filtered reportages", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch reportages",
		})
	}

	return c.Status(fiber.StatusOK).JSON(pagination.NewPaginatedResponse(c, reportages, total, params))
}

type DecideReportageRequest struct {
	Decision  string `json:"decision"` // ACCEPTER or REFUSER
	DecidedBy string `json:"decided_by"`
}

// DecideReportageController settles a pending reportage. Accepting blocks
// the reported citizen atomically and notifies them by email.
func (rc *ReportageController) DecideReportageController(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid reportage ID",
		})
	}

	var request DecideReportageRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request payload",
			"error":   err.Error(),
		})
	}

	var decided *models.Reportage
	switch strings.ToUpper(request.Decision) {
	case string(models.ReportageAccepter):
		decided, err = rc.ReportageRepo.AcceptReportage(id, request.DecidedBy)
	case string(models.ReportageRefuser):
		decided, err = rc.ReportageRepo.RefuseReportage(id, request.DecidedBy)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Décision invalide: valeurs acceptées ACCEPTER, REFUSER",
		})
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Reportage not found",
			})
		}
		config.Logger.Error("Failed to decide reportage",
			zap.Error(err),
			zap.String("reportageID", id.String()))
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if decided.Etat == models.ReportageAccepter {
		// Index reflects the blocked state, mail tells the citizen why.
		if rc.BleveRepo != nil {
			citoyen := decided.Citoyen
			citoyen.Etat = models.CompteInactif
			if idxErr := rc.BleveRepo.UpdateCitoyen(citoyen); idxErr != nil {
				config.Logger.Warn("Failed to refresh citoyen index after blocking",
					zap.Error(idxErr),
					zap.String("citoyenID", decided.CitoyenID.String()))
			}
		}

		tasks.EnqueueEmail(
			decided.Citoyen.Email,
			"Suite à un signalement vérifié par nos services, votre compte STEG a été suspendu. Contactez votre agence pour contester cette décision.",
			"Compte suspendu suite à un signalement",
			"",
		)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Reportage decided",
		"data":    decided,
	})
}
