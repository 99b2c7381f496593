package repositories

import (
	"fmt"
	"time"

	"steg-backend/config"
	"steg-backend/db/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type UserRepository interface {
	CreateUser(user *models.User) (*models.User, error)
	GetUserByID(id uuid.UUID) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetFilteredUsers(limit, offset int, filters map[string]string) ([]models.User, int64, error)
	UpdateUser(user *models.User) (*models.User, error)
	DeleteUser(id uuid.UUID) error
	TouchLastLogin(id uuid.UUID) error
}

type userRepository struct {
	DB *gorm.DB
}

// NewUserRepository initializes a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{DB: db}
}

func (ur *userRepository) CreateUser(user *models.User) (*models.User, error) {
	if err := ur.DB.Create(user).Error; err != nil {
		config.Logger.Error("Failed to create user",
			zap.Error(err),
			zap.String("email", user.Email))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	config.Logger.Info("Created user",
		zap.String("userID", user.ID.String()),
		zap.String("role", string(user.Role)))

	return user, nil
}

func (ur *userRepository) GetUserByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := ur.DB.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (ur *userRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := ur.DB.First(&user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (ur *userRepository) GetFilteredUsers(limit, offset int, filters map[string]string) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	query := ur.DB.Model(&models.User{})

	if role, ok := filters["role"]; ok && role != "" {
		query = query.Where("role = ?", role)
	}
	if active, ok := filters["active"]; ok && active != "" {
		query = query.Where("active = ?", active == "true")
	}
	if q, ok := filters["query"]; ok && q != "" {
		like := "%" + q + "%"
		query = query.Where(
			"first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?",
			like, like, like,
		)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("updated_at DESC, created_at DESC").
		Limit(limit).Offset(offset).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (ur *userRepository) UpdateUser(user *models.User) (*models.User, error) {
	if err := ur.DB.Save(user).Error; err != nil {
		config.Logger.Error("Failed to update user",
			zap.Error(err),
			zap.String("userID", user.ID.String()))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (ur *userRepository) DeleteUser(id uuid.UUID) error {
	result := ur.DB.Delete(&models.User{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (ur *userRepository) TouchLastLogin(id uuid.UUID) error {
	now := time.Now()
	return ur.DB.Model(&models.User{}).
		Where("id = ?", id).
		Update("last_login_at", &now).Error
}
