package repositories

import (
	"encoding/json"
	"fmt"
	"time"

	"steg-backend/config"
	"steg-backend/db/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ReclamationRepository interface {
	CreateReclamation(tx *gorm.DB, reclamation *models.Reclamation) (*models.Reclamation, error)
	GetReclamationByID(id uuid.UUID) (*models.Reclamation, error)
	GetFilteredReclamations(limit, offset int, filters map[string]string) ([]models.Reclamation, int64, error)
	GetReclamationsForExport(filters map[string]string) ([]models.Reclamation, error)
	GetRecentReclamations(limit int) ([]models.Reclamation, error)
	GetAllReclamations() ([]models.Reclamation, error)
	UpdateReclamationEtat(id uuid.UUID, etat models.ReclamationEtat, updatedBy string, cout *decimal.Decimal) (*models.Reclamation, error)
	AssignEquipe(id uuid.UUID, equipeID uuid.UUID, updatedBy string) (*models.Reclamation, error)
	SetArchived(id uuid.UUID, archived bool, updatedBy string) (*models.Reclamation, error)
}

type reclamationRepository struct {
	DB *gorm.DB
}

// NewReclamationRepository initializes a new réclamation repository
func NewReclamationRepository(db *gorm.DB) ReclamationRepository {
	return &reclamationRepository{DB: db}
}

// historiqueEntry is one line of the append-only etat log.
type historiqueEntry struct {
	Etat string    `json:"etat"`
	At   time.Time `json:"at"`
	By   string    `json:"by"`
}

func appendHistorique(current datatypes.JSON, etat models.ReclamationEtat, by string) datatypes.JSON {
	var entries []historiqueEntry
	if len(current) > 0 {
		// A corrupt log should never block an etat change; start fresh.
		_ = json.Unmarshal(current, &entries)
	}
	entries = append(entries, historiqueEntry{
		Etat: string(etat),
		At:   time.Now(),
		By:   by,
	})
	out, _ := json.Marshal(entries)
	return datatypes.JSON(out)
}

func (rr *reclamationRepository) CreateReclamation(tx *gorm.DB, reclamation *models.Reclamation) (*models.Reclamation, error) {
	if reclamation.Etat == "" {
		reclamation.Etat = models.EtatPasEncours
	}
	reclamation.Historique = appendHistorique(nil, reclamation.Etat, reclamation.CreatedBy)

	if err := tx.Create(reclamation).Error; err != nil {
		config.Logger.Error("Failed to create réclamation",
			zap.Error(err),
			zap.String("code", reclamation.Code))
		return nil, fmt.Errorf("failed to create réclamation: %w", err)
	}

	if err := tx.Preload("Citoyen").Preload("Equipe").First(reclamation, reclamation.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload réclamation: %w", err)
	}

	config.Logger.Info("Created réclamation",
		zap.String("reclamationID", reclamation.ID.String()),
		zap.String("code", reclamation.Code),
		zap.String("importance", string(reclamation.Importance)))

	return reclamation, nil
}

func (rr *reclamationRepository) GetReclamationByID(id uuid.UUID) (*models.Reclamation, error) {
	var reclamation models.Reclamation
	if err := rr.DB.Preload("Citoyen").Preload("Equipe").
		First(&reclamation, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &reclamation, nil
}

func (rr *reclamationRepository) applyFilters(query *gorm.DB, filters map[string]string) *gorm.DB {
	if etat, ok := filters["etat"]; ok && etat != "" {
		query = query.Where("etat = ?", etat)
	}
	if importance, ok := filters["importance"]; ok && importance != "" {
		query = query.Where("importance = ?", importance)
	}
	if equipeID, ok := filters["equipe_id"]; ok && equipeID != "" {
		query = query.Where("equipe_id = ?", equipeID)
	}
	if archived, ok := filters["archived"]; ok && archived != "" {
		query = query.Where("archived = ?", archived == "true")
	} else {
		query = query.Where("archived = ?", false)
	}
	if from, ok := filters["date_from"]; ok && from != "" {
		query = query.Where("created_at >= ?", from)
	}
	if to, ok := filters["date_to"]; ok && to != "" {
		query = query.Where("created_at <= ?", to)
	}
	if q, ok := filters["query"]; ok && q != "" {
		like := "%" + q + "%"
		query = query.Where(
			"code ILIKE ? OR importance ILIKE ? OR type_panne ILIKE ? OR genre_panne ILIKE ? OR num_client ILIKE ? OR etat ILIKE ? OR to_char(created_at, 'DD/MM/YYYY') ILIKE ?",
			like, like, like, like, like, like, like,
		)
	}
	return query
}

func (rr *reclamationRepository) GetFilteredReclamations(limit, offset int, filters map[string]string) ([]models.Reclamation, int64, error) {
	var reclamations []models.Reclamation
	var total int64

	query := rr.applyFilters(rr.DB.Model(&models.Reclamation{}), filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("Citoyen").Preload("Equipe").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&reclamations).Error; err != nil {
		return nil, 0, err
	}

	return reclamations, total, nil
}

// GetReclamationsForExport returns the full filtered set, unpaginated.
func (rr *reclamationRepository) GetReclamationsForExport(filters map[string]string) ([]models.Reclamation, error) {
	var reclamations []models.Reclamation

	query := rr.applyFilters(rr.DB.Model(&models.Reclamation{}), filters)
	if err := query.Preload("Equipe").
		Order("created_at DESC").
		Find(&reclamations).Error; err != nil {
		return nil, err
	}

	return reclamations, nil
}

func (rr *reclamationRepository) GetRecentReclamations(limit int) ([]models.Reclamation, error) {
	var reclamations []models.Reclamation
	if err := rr.DB.Preload("Equipe").
		Where("archived = ?", false).
		Order("created_at DESC").
		Limit(limit).
		Find(&reclamations).Error; err != nil {
		return nil, err
	}
	return reclamations, nil
}

func (rr *reclamationRepository) UpdateReclamationEtat(id uuid.UUID, etat models.ReclamationEtat, updatedBy string, cout *decimal.Decimal) (*models.Reclamation, error) {
	reclamation, err := rr.GetReclamationByID(id)
	if err != nil {
		return nil, err
	}

	reclamation.Etat = etat
	reclamation.UpdatedBy = &updatedBy
	reclamation.Historique = appendHistorique(reclamation.Historique, etat, updatedBy)
	if cout != nil {
		reclamation.CoutIntervention = *cout
	}

	if err := rr.DB.Save(reclamation).Error; err != nil {
		config.Logger.Error("Failed to update réclamation etat",
			zap.Error(err),
			zap.String("reclamationID", id.String()))
		return nil, fmt.Errorf("failed to update réclamation etat: %w", err)
	}

	config.Logger.Info("Réclamation etat updated",
		zap.String("reclamationID", id.String()),
		zap.String("etat", string(etat)),
		zap.String("updatedBy", updatedBy))

	return reclamation, nil
}

func (rr *reclamationRepository) AssignEquipe(id uuid.UUID, equipeID uuid.UUID, updatedBy string) (*models.Reclamation, error) {
	reclamation, err := rr.GetReclamationByID(id)
	if err != nil {
		return nil, err
	}

	reclamation.EquipeID = &equipeID
	reclamation.UpdatedBy = &updatedBy
	// Assignment moves a fresh réclamation into the worked state.
	if reclamation.Etat == models.EtatPasEncours {
		reclamation.Etat = models.EtatEncours
		reclamation.Historique = appendHistorique(reclamation.Historique, models.EtatEncours, updatedBy)
	}

	if err := rr.DB.Save(reclamation).Error; err != nil {
		return nil, fmt.Errorf("failed to assign equipe: %w", err)
	}

	return rr.GetReclamationByID(id)
}

func (rr *reclamationRepository) SetArchived(id uuid.UUID, archived bool, updatedBy string) (*models.Reclamation, error) {
	reclamation, err := rr.GetReclamationByID(id)
	if err != nil {
		return nil, err
	}

	reclamation.Archived = archived
	reclamation.UpdatedBy = &updatedBy

	if err := rr.DB.Save(reclamation).Error; err != nil {
		return nil, fmt.Errorf("failed to archive réclamation: %w", err)
	}

	return reclamation, nil
}

// GetAllReclamations loads every complaint, used by the search reindex at boot.
func (rr *reclamationRepository) GetAllReclamations() ([]models.Reclamation, error) {
	var reclamations []models.Reclamation
	if err := rr.DB.Preload("Citoyen").Preload("Equipe").Find(&reclamations).Error; err != nil {
		return nil, err
	}
	return reclamations, nil
}
