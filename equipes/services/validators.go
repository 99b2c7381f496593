package services

import (
	"regexp"
	"strings"

	citoyen_services "steg-backend/citoyens/services"
	"steg-backend/db/models"
)

var digitsOnly = regexp.MustCompile(`^\d+$`)

// ValidatePhone checks technician and service phone numbers: 8 digits
// starting with 2, 4, 5 or 9. The citizen form accepts a different leading
// set; the two are kept separate on purpose because the upstream
// provisioning rules differ per population.
func ValidatePhone(phone string) citoyen_services.ValidationResult {
	if len(phone) != 8 || !digitsOnly.MatchString(phone) {
		return citoyen_services.WrongLength
	}
	switch phone[0] {
	case '2', '4', '5', '9':
		return citoyen_services.Valid
	}
	return citoyen_services.WrongPrefix
}

// ValidateTechnicien checks a technician payload, returning the first
// failure as a human-readable reason.
func ValidateTechnicien(technicien *models.Technicien) string {
	if strings.TrimSpace(technicien.FirstName) == "" || strings.TrimSpace(technicien.LastName) == "" {
		return "Le nom et le prénom sont obligatoires"
	}

	switch citoyen_services.ValidateCIN(technicien.CIN) {
	case citoyen_services.WrongLength:
		return "Le CIN doit contenir exactement 8 chiffres"
	case citoyen_services.WrongPrefix:
		return "Le CIN doit commencer par 0 ou 1"
	}

	switch ValidatePhone(technicien.Phone) {
	case citoyen_services.WrongLength:
		return "Le numéro de téléphone doit contenir exactement 8 chiffres"
	case citoyen_services.WrongPrefix:
		return "Le numéro de téléphone doit commencer par 2, 4, 5 ou 9"
	}

	if !citoyen_services.ValidateEmailFormat(technicien.Email) {
		return "Le format de l'adresse e-mail est invalide"
	}

	return ""
}

// ValidateServiceIntervention checks a dispatch-office payload.
func ValidateServiceIntervention(service *models.ServiceIntervention) string {
	if strings.TrimSpace(service.Nom) == "" {
		return "Le nom du service est obligatoire"
	}

	switch citoyen_services.ValidateCIN(service.CIN) {
	case citoyen_services.WrongLength:
		return "Le CIN doit contenir exactement 8 chiffres"
	case citoyen_services.WrongPrefix:
		return "Le CIN doit commencer par 0 ou 1"
	}

	switch ValidatePhone(service.Phone) {
	case citoyen_services.WrongLength:
		return "Le numéro de téléphone doit contenir exactement 8 chiffres"
	case citoyen_services.WrongPrefix:
		return "Le numéro de téléphone doit commencer par 2, 4, 5 ou 9"
	}

	if !citoyen_services.ValidateEmailFormat(service.Email) {
		return "Le format de l'adresse e-mail est invalide"
	}

	return ""
}
