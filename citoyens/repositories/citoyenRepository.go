package repositories

import (
	"fmt"

	"steg-backend/config"
	"steg-backend/db/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CitoyenRepository interface {
	CreateCitoyen(tx *gorm.DB, citoyen *models.Citoyen) (*models.Citoyen, error)
	GetCitoyenByID(id uuid.UUID) (*models.Citoyen, error)
	GetCitoyenByEmail(email string) (*models.Citoyen, error)
	GetCitoyenByCIN(cin string) (*models.Citoyen, error)
	GetFilteredCitoyens(limit, offset int, filters map[string]string) ([]models.Citoyen, int64, error)
	GetAllCitoyens() ([]models.Citoyen, error)
	UpdateCitoyen(citoyen *models.Citoyen) (*models.Citoyen, error)
	SetCitoyenEtat(tx *gorm.DB, id uuid.UUID, etat models.CompteEtat, updatedBy string) error

	CreateReference(reference *models.Reference) (*models.Reference, error)
	GetReferencesByCitoyen(citoyenID uuid.UUID) ([]models.Reference, error)
	DeleteReference(id uuid.UUID) error
	CountReclamationsForReference(code string) (int64, error)
}

type citoyenRepository struct {
	DB *gorm.DB
}

// NewCitoyenRepository initializes a new citoyen repository
func NewCitoyenRepository(db *gorm.DB) CitoyenRepository {
	return &citoyenRepository{DB: db}
}

func (cr *citoyenRepository) CreateCitoyen(tx *gorm.DB, citoyen *models.Citoyen) (*models.Citoyen, error) {
	if citoyen.Etat == "" {
		citoyen.Etat = models.CompteActif
	}

	if err := tx.Create(citoyen).Error; err != nil {
		config.Logger.Error("Failed to create citoyen",
			zap.Error(err),
			zap.String("cin", citoyen.CIN))
		return nil, fmt.Errorf("failed to create citoyen: %w", err)
	}

	if err := tx.Preload("References").First(citoyen, citoyen.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload citoyen: %w", err)
	}

	config.Logger.Info("Created citoyen",
		zap.String("citoyenID", citoyen.ID.String()),
		zap.String("fullName", citoyen.GetFullName()))

	return citoyen, nil
}

func (cr *citoyenRepository) GetCitoyenByID(id uuid.UUID) (*models.Citoyen, error) {
	var citoyen models.Citoyen
	if err := cr.DB.Preload("References").First(&citoyen, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &citoyen, nil
}

func (cr *citoyenRepository) GetCitoyenByEmail(email string) (*models.Citoyen, error) {
	var citoyen models.Citoyen
	if err := cr.DB.First(&citoyen, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &citoyen, nil
}

func (cr *citoyenRepository) GetCitoyenByCIN(cin string) (*models.Citoyen, error) {
	var citoyen models.Citoyen
	if err := cr.DB.First(&citoyen, "cin = ?", cin).Error; err != nil {
		return nil, err
	}
	return &citoyen, nil
}

func (cr *citoyenRepository) GetFilteredCitoyens(limit, offset int, filters map[string]string) ([]models.Citoyen, int64, error) {
	var citoyens []models.Citoyen
	var total int64

	query := cr.DB.Model(&models.Citoyen{})

	if etat, ok := filters["etat"]; ok && etat != "" {
		query = query.Where("etat = ?", etat)
	}
	if q, ok := filters["query"]; ok && q != "" {
		like := "%" + q + "%"
		query = query.Where(
			"first_name ILIKE ? OR last_name ILIKE ? OR cin ILIKE ? OR email ILIKE ? OR phone ILIKE ?",
			like, like, like, like, like,
		)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("References").
		Order("updated_at DESC, created_at DESC").
		Limit(limit).Offset(offset).
		Find(&citoyens).Error; err != nil {
		return nil, 0, err
	}

	return citoyens, total, nil
}

func (cr *citoyenRepository) UpdateCitoyen(citoyen *models.Citoyen) (*models.Citoyen, error) {
	if err := cr.DB.Save(citoyen).Error; err != nil {
		config.Logger.Error("Failed to update citoyen",
			zap.Error(err),
			zap.String("citoyenID", citoyen.ID.String()))
		return nil, fmt.Errorf("failed to update citoyen: %w", err)
	}
	return citoyen, nil
}

// SetCitoyenEtat flips the account state. Runs inside the caller's
// transaction when the change must be atomic with another write.
func (cr *citoyenRepository) SetCitoyenEtat(tx *gorm.DB, id uuid.UUID, etat models.CompteEtat, updatedBy string) error {
	db := tx
	if db == nil {
		db = cr.DB
	}

	result := db.Model(&models.Citoyen{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"etat": etat, "updated_by": updatedBy})
	if result.Error != nil {
		return fmt.Errorf("failed to update citoyen etat: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	config.Logger.Info("Citoyen etat updated",
		zap.String("citoyenID", id.String()),
		zap.String("etat", string(etat)),
		zap.String("updatedBy", updatedBy))

	return nil
}

func (cr *citoyenRepository) CreateReference(reference *models.Reference) (*models.Reference, error) {
	if err := cr.DB.Create(reference).Error; err != nil {
		config.Logger.Error("Failed to create reference",
			zap.Error(err),
			zap.String("code", reference.Code))
		return nil, fmt.Errorf("failed to create reference: %w", err)
	}
	return reference, nil
}

func (cr *citoyenRepository) GetReferencesByCitoyen(citoyenID uuid.UUID) ([]models.Reference, error) {
	var references []models.Reference
	if err := cr.DB.Where("citoyen_id = ?", citoyenID).
		Order("created_at ASC").
		Find(&references).Error; err != nil {
		return nil, err
	}
	return references, nil
}

func (cr *citoyenRepository) DeleteReference(id uuid.UUID) error {
	result := cr.DB.Delete(&models.Reference{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete reference: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountReclamationsForReference tells whether a reference is already tied to
// réclamations, in which case it must not be modified or removed.
func (cr *citoyenRepository) CountReclamationsForReference(code string) (int64, error) {
	var count int64
	if err := cr.DB.Model(&models.Reclamation{}).
		Where("reference = ?", code).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GetAllCitoyens loads every citizen, used by the search reindex at boot.
func (cr *citoyenRepository) GetAllCitoyens() ([]models.Citoyen, error) {
	var citoyens []models.Citoyen
	if err := cr.DB.Find(&citoyens).Error; err != nil {
		return nil, err
	}
	return citoyens, nil
}
