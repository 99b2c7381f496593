package services

import (
	"regexp"
	"strconv"
	"strings"

	"steg-backend/db/models"
)

// ValidationResult distinguishes a bad length from a bad leading digit so
// controllers can return field-specific error messages.
type ValidationResult int

const (
	Valid ValidationResult = iota
	WrongLength
	WrongPrefix
)

func (v ValidationResult) String() string {
	switch v {
	case Valid:
		return "valid"
	case WrongLength:
		return "wrong_length"
	case WrongPrefix:
		return "wrong_prefix"
	default:
		return "unknown"
	}
}

var digitsOnly = regexp.MustCompile(`^\d+$`)

// Tunisian CINs are 8 digits starting with 0 or 1.
func ValidateCIN(cin string) ValidationResult {
	if len(cin) != 8 || !digitsOnly.MatchString(cin) {
		return WrongLength
	}
	if cin[0] != '0' && cin[0] != '1' {
		return WrongPrefix
	}
	return Valid
}

// Citizen phone numbers are 8 digits starting with 2, 3, 5, 7 or 9. The
// technician form accepts a different leading set; see equipes/services.
func ValidatePhone(phone string) ValidationResult {
	if len(phone) != 8 || !digitsOnly.MatchString(phone) {
		return WrongLength
	}
	switch phone[0] {
	case '2', '3', '5', '7', '9':
		return Valid
	}
	return WrongPrefix
}

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateEmailFormat checks the shape only; deliverability is not verified.
func ValidateEmailFormat(email string) bool {
	return emailRegex.MatchString(email)
}

// zoneRange holds an open interval on the leading five digits of a reference.
type zoneRange struct {
	name     string
	low, high int
}

// Ranges are open on both ends: a reference belongs to a zone when its
// leading-5 value is strictly between low and high.
var zoneRanges = []zoneRange{
	{"GREMDA", 72806, 72899},
	{"LAFRANE", 72900, 72999},
	{"EL_AIN", 73000, 73100},
	{"MANZEL_CHAKER", 73101, 73199},
	{"MATAR", 73200, 73299},
	{"SOKRA_MHARZA", 73300, 73399},
	{"GABES", 73400, 73500},
}

// ClassifyReferenceZone maps an 8-digit service-point reference to the zone
// serving it. Returns "" when the code is not 8 digits or the leading five
// digits fall outside every serviced range.
func ClassifyReferenceZone(code string) string {
	if len(code) != 8 || !digitsOnly.MatchString(code) {
		return ""
	}

	leading, err := strconv.Atoi(code[:5])
	if err != nil {
		return ""
	}

	for _, zr := range zoneRanges {
		if leading > zr.low && leading < zr.high {
			return zr.name
		}
	}
	return ""
}

// ValidateReference checks a new reference code against the citizen's
// existing set. Returns an empty string when valid, otherwise a
// human-readable reason.
func ValidateReference(code string, existing []models.Reference) string {
	if len(code) != 8 || !digitsOnly.MatchString(code) {
		return "La référence doit contenir exactement 8 chiffres"
	}

	zone := ClassifyReferenceZone(code)
	if zone == "" {
		return "La référence ne correspond à aucune zone desservie"
	}

	for _, ref := range existing {
		if ref.Code == code {
			return "Cette référence est déjà enregistrée pour ce citoyen"
		}
	}

	return ""
}

// ValidateCitoyen runs the field validators over a registration payload and
// returns the first failure, teacher-style.
func ValidateCitoyen(citoyen *models.Citoyen) string {
	if strings.TrimSpace(citoyen.FirstName) == "" || strings.TrimSpace(citoyen.LastName) == "" {
		return "Le nom et le prénom sont obligatoires"
	}

	switch ValidateCIN(citoyen.CIN) {
	case WrongLength:
		return "Le CIN doit contenir exactement 8 chiffres"
	case WrongPrefix:
		return "Le CIN doit commencer par 0 ou 1"
	}

	switch ValidatePhone(citoyen.Phone) {
	case WrongLength:
		return "Le numéro de téléphone doit contenir exactement 8 chiffres"
	case WrongPrefix:
		return "Le numéro de téléphone doit commencer par 2, 3, 5, 7 ou 9"
	}

	if !ValidateEmailFormat(citoyen.Email) {
		return "Le format de l'adresse e-mail est invalide"
	}

	return ""
}

// ZoneNames lists the known intervention zones in classification order.
func ZoneNames() []string {
	names := make([]string, 0, len(zoneRanges))
	for _, zr := range zoneRanges {
		names = append(names, zr.name)
	}
	return names
}
