package services

import (
	"strings"

	citoyen_services "steg-backend/citoyens/services"
	"steg-backend/db/models"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns the bcrypt hash of the password
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPasswordHash compares a plaintext password with a bcrypt hash
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func isValidRole(role models.Role) bool {
	switch role {
	case models.AdminRole, models.SuperviseurRole, models.DispatcheurRole:
		return true
	}
	return false
}

// ValidateUser returns an empty string when the staff account is valid,
// otherwise the first failure reason.
func ValidateUser(user *models.User) string {
	if strings.TrimSpace(user.FirstName) == "" {
		return "Le prénom est obligatoire"
	}
	if strings.TrimSpace(user.LastName) == "" {
		return "Le nom est obligatoire"
	}
	if !citoyen_services.ValidateEmailFormat(user.Email) {
		return "Adresse email invalide"
	}
	if user.Phone != "" {
		if result := citoyen_services.ValidatePhone(user.Phone); result != citoyen_services.Valid {
			return "Numéro de téléphone invalide: " + result.String()
		}
	}
	if !isValidRole(user.Role) {
		return "Rôle invalide"
	}
	return ""
}
