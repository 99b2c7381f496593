package services

import (
	"testing"

	citoyen_services "steg-backend/citoyens/services"
	"steg-backend/db/models"

	"github.com/stretchr/testify/assert"
)

func TestValidatePhoneTechnicienVariant(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		want  citoyen_services.ValidationResult
	}{
		{"prefix 2", "20123456", citoyen_services.Valid},
		{"prefix 4", "40123456", citoyen_services.Valid},
		{"prefix 5", "50123456", citoyen_services.Valid},
		{"prefix 9", "98123456", citoyen_services.Valid},
		// 3 and 7 are citizen prefixes, not technician ones.
		{"prefix 3 rejected here", "30123456", citoyen_services.WrongPrefix},
		{"prefix 7 rejected here", "71234567", citoyen_services.WrongPrefix},
		{"prefix 0", "01234567", citoyen_services.WrongPrefix},
		{"seven digits", "2012345", citoyen_services.WrongLength},
		{"nine digits", "201234567", citoyen_services.WrongLength},
		{"letters", "4012345x", citoyen_services.WrongLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidatePhone(tt.phone))
		})
	}
}

func TestPhoneVariantsDiverge(t *testing.T) {
	// The two call sites accept different leading digits. 3 and 7 are
	// citizen-only, 4 is technician-only.
	assert.Equal(t, citoyen_services.Valid, citoyen_services.ValidatePhone("30123456"))
	assert.Equal(t, citoyen_services.WrongPrefix, ValidatePhone("30123456"))

	assert.Equal(t, citoyen_services.Valid, citoyen_services.ValidatePhone("71234567"))
	assert.Equal(t, citoyen_services.WrongPrefix, ValidatePhone("71234567"))

	assert.Equal(t, citoyen_services.WrongPrefix, citoyen_services.ValidatePhone("40123456"))
	assert.Equal(t, citoyen_services.Valid, ValidatePhone("40123456"))
}

func TestValidateTechnicien(t *testing.T) {
	valid := &models.Technicien{
		FirstName: "Sami",
		LastName:  "Trabelsi",
		CIN:       "11234567",
		Phone:     "40123456",
		Email:     "sami@steg.tn",
	}
	assert.Equal(t, "", ValidateTechnicien(valid))

	badPhone := *valid
	badPhone.Phone = "30123456"
	assert.NotEqual(t, "", ValidateTechnicien(&badPhone))

	badCIN := *valid
	badCIN.CIN = "3123456"
	assert.NotEqual(t, "", ValidateTechnicien(&badCIN))
}

func TestValidateServiceIntervention(t *testing.T) {
	valid := &models.ServiceIntervention{
		Nom:   "Dispatching Sfax Nord",
		CIN:   "01234567",
		Phone: "98123456",
		Email: "dispatch.sfax@steg.tn",
	}
	assert.Equal(t, "", ValidateServiceIntervention(valid))

	noName := *valid
	noName.Nom = "  "
	assert.NotEqual(t, "", ValidateServiceIntervention(&noName))

	badEmail := *valid
	badEmail.Email = "dispatch"
	assert.NotEqual(t, "", ValidateServiceIntervention(&badEmail))
}
