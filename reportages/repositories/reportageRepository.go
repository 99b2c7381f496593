package repositories

import (
	"fmt"

	"steg-backend/config"
	"steg-backend/db/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ReportageRepository interface {
	CreateReportage(reportage *models.Reportage) (*models.Reportage, error)
	GetReportageByID(id uuid.UUID) (*models.Reportage, error)
	GetFilteredReportages(limit, offset int, filters map[string]string) ([]models.Reportage, int64, error)
	AcceptReportage(id uuid.UUID, decidedBy string) (*models.Reportage, error)
	RefuseReportage(id uuid.UUID, decidedBy string) (*models.Reportage, error)
}

type reportageRepository struct {
	DB *gorm.DB
}

// NewReportageRepository initializes a new reportage repository
func NewReportageRepository(db *gorm.DB) ReportageRepository {
	return &reportageRepository{DB: db}
}

func (rr *reportageRepository) CreateReportage(reportage *models.Reportage) (*models.Reportage, error) {
	if reportage.Etat == "" {
		reportage.Etat = models.ReportageEncours
	}

	if err := rr.DB.Create(reportage).Error; err != nil {
		config.Logger.Error("Failed to create reportage",
			zap.Error(err),
			zap.String("citoyenID", reportage.CitoyenID.String()))
		return nil, fmt.Errorf("failed to create reportage: %w", err)
	}

	if err := rr.DB.Preload("Citoyen").Preload("Service").
		First(reportage, reportage.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload reportage: %w", err)
	}

	config.Logger.Info("Created reportage",
		zap.String("reportageID", reportage.ID.String()),
		zap.String("type", string(reportage.Type)))

	return reportage, nil
}

func (rr *reportageRepository) GetReportageByID(id uuid.UUID) (*models.Reportage, error) {
	var reportage models.Reportage
	if err := rr.DB.Preload("Citoyen").Preload("Service").
		First(&reportage, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &reportage, nil
}

func (rr *reportageRepository) GetFilteredReportages(limit, offset int, filters map[string]string) ([]models.Reportage, int64, error) {
	var reportages []models.Reportage
	var total int64

	query := rr.DB.Model(&models.Reportage{})

	if etat, ok := filters["etat"]; ok && etat != "" {
		query = query.Where("etat = ?", etat)
	}
	if reportageType, ok := filters["type"]; ok && reportageType != "" {
		query = query.Where("type = ?", reportageType)
	}
	if citoyenID, ok := filters["citoyen_id"]; ok && citoyenID != "" {
		query = query.Where("citoyen_id = ?", citoyenID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("Citoyen").Preload("Service").
		Order("date DESC").
		Limit(limit).Offset(offset).
		Find(&reportages).Error; err != nil {
		return nil, 0, err
	}

	return reportages, total, nil
}

// AcceptReportage marks the reportage accepted and blocks the reported
// citizen. Both writes share one transaction so a crash can never leave an
// accepted reportage with an active citizen.
func (rr *reportageRepository) AcceptReportage(id uuid.UUID, decidedBy string) (*models.Reportage, error) {
	reportage, err := rr.GetReportageByID(id)
	if err != nil {
		return nil, err
	}
	if reportage.Etat != models.ReportageEncours {
		return nil, fmt.Errorf("reportage %s already decided (%s)", id, reportage.Etat)
	}

	err = rr.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Reportage{}).
			Where("id = ?", id).
			Update("etat", models.ReportageAccepter).Error; err != nil {
			return fmt.Errorf("failed to accept reportage: %w", err)
		}

		result := tx.Model(&models.Citoyen{}).
			Where("id = ?", reportage.CitoyenID).
			Updates(map[string]interface{}{
				"etat":       models.CompteInactif,
				"updated_by": decidedBy,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to block citoyen: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return nil
	})
	if err != nil {
		config.Logger.Error("Failed to accept reportage",
			zap.Error(err),
			zap.String("reportageID", id.String()))
		return nil, err
	}

	config.Logger.Info("Reportage accepted, citoyen blocked",
		zap.String("reportageID", id.String()),
		zap.String("citoyenID", reportage.CitoyenID.String()),
		zap.String("decidedBy", decidedBy))

	return rr.GetReportageByID(id)
}

// RefuseReportage only flips the etat; the citizen account is untouched.
func (rr *reportageRepository) RefuseReportage(id uuid.UUID, decidedBy string) (*models.Reportage, error) {
	reportage, err := rr.GetReportageByID(id)
	if err != nil {
		return nil, err
	}
	if reportage.Etat != models.ReportageEncours {
		return nil, fmt.Errorf("reportage %s already decided (%s)", id, reportage.Etat)
	}

	if err := rr.DB.Model(&models.Reportage{}).
		Where("id = ?", id).
		Update("etat", models.ReportageRefuser).Error; err != nil {
		return nil, fmt.Errorf("failed to refuse reportage: %w", err)
	}

	config.Logger.Info("Reportage refused",
		zap.String("reportageID", id.String()),
		zap.String("decidedBy", decidedBy))

	return rr.GetReportageByID(id)
}
