package repositories

import (
	"fmt"

	"steg-backend/config"
	"steg-backend/db/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type EquipeRepository interface {
	CreateEquipe(equipe *models.Equipe) (*models.Equipe, error)
	GetEquipeByID(id uuid.UUID) (*models.Equipe, error)
	GetFilteredEquipes(limit, offset int, filters map[string]string) ([]models.Equipe, int64, error)

	SaveTechnicien(technicien *models.Technicien) (*models.Technicien, error)
	GetFilteredTechniciens(limit, offset int, filters map[string]string) ([]models.Technicien, int64, error)

	SaveServiceIntervention(service *models.ServiceIntervention) (*models.ServiceIntervention, error)
}

type equipeRepository struct {
	DB *gorm.DB
}

// NewEquipeRepository initializes a new equipe repository
func NewEquipeRepository(db *gorm.DB) EquipeRepository {
	return &equipeRepository{DB: db}
}

func (er *equipeRepository) CreateEquipe(equipe *models.Equipe) (*models.Equipe, error) {
	if err := er.DB.Create(equipe).Error; err != nil {
		config.Logger.Error("Failed to create equipe",
			zap.Error(err),
			zap.String("nom", equipe.Nom))
		return nil, fmt.Errorf("failed to create equipe: %w", err)
	}
	return equipe, nil
}

func (er *equipeRepository) GetEquipeByID(id uuid.UUID) (*models.Equipe, error) {
	var equipe models.Equipe
	if err := er.DB.Preload("Techniciens").First(&equipe, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &equipe, nil
}

func (er *equipeRepository) GetFilteredEquipes(limit, offset int, filters map[string]string) ([]models.Equipe, int64, error) {
	var equipes []models.Equipe
	var total int64

	query := er.DB.Model(&models.Equipe{})

	if zone, ok := filters["zone"]; ok && zone != "" {
		query = query.Where("zone = ?", zone)
	}
	if active, ok := filters["active"]; ok && active != "" {
		query = query.Where("active = ?", active == "true")
	}
	if q, ok := filters["query"]; ok && q != "" {
		query = query.Where("nom ILIKE ?", "%"+q+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("Techniciens").
		Order("nom ASC").
		Limit(limit).Offset(offset).
		Find(&equipes).Error; err != nil {
		return nil, 0, err
	}

	return equipes, total, nil
}

// SaveTechnicien creates or updates a technician record.
func (er *equipeRepository) SaveTechnicien(technicien *models.Technicien) (*models.Technicien, error) {
	if err := er.DB.Save(technicien).Error; err != nil {
		config.Logger.Error("Failed to save technicien",
			zap.Error(err),
			zap.String("cin", technicien.CIN))
		return nil, fmt.Errorf("failed to save technicien: %w", err)
	}

	if err := er.DB.Preload("Equipe").First(technicien, technicien.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload technicien: %w", err)
	}

	config.Logger.Info("Saved technicien",
		zap.String("technicienID", technicien.ID.String()),
		zap.String("cin", technicien.CIN))

	return technicien, nil
}

func (er *equipeRepository) GetFilteredTechniciens(limit, offset int, filters map[string]string) ([]models.Technicien, int64, error) {
	var techniciens []models.Technicien
	var total int64

	query := er.DB.Model(&models.Technicien{})

	if equipeID, ok := filters["equipe_id"]; ok && equipeID != "" {
		query = query.Where("equipe_id = ?", equipeID)
	}
	if etat, ok := filters["etat"]; ok && etat != "" {
		query = query.Where("etat = ?", etat)
	}
	if q, ok := filters["query"]; ok && q != "" {
		like := "%" + q + "%"
		query = query.Where(
			"first_name ILIKE ? OR last_name ILIKE ? OR cin ILIKE ? OR email ILIKE ?",
			like, like, like, like,
		)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("Equipe").
		Order("last_name ASC, first_name ASC").
		Limit(limit).Offset(offset).
		Find(&techniciens).Error; err != nil {
		return nil, 0, err
	}

	return techniciens, total, nil
}

func (er *equipeRepository) SaveServiceIntervention(service *models.ServiceIntervention) (*models.ServiceIntervention, error) {
	if err := er.DB.Save(service).Error; err != nil {
		config.Logger.Error("Failed to save service intervention",
			zap.Error(err),
			zap.String("nom", service.Nom))
		return nil, fmt.Errorf("failed to save service intervention: %w", err)
	}

	config.Logger.Info("Saved service intervention",
		zap.String("serviceID", service.ID.String()),
		zap.String("nom", service.Nom))

	return service, nil
}
