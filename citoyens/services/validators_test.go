package services

import (
	"testing"

	"steg-backend/db/models"

	"github.com/stretchr/testify/assert"
)

func TestValidateCIN(t *testing.T) {
	tests := []struct {
		name string
		cin  string
		want ValidationResult
	}{
		{"valid starting 0", "01234567", Valid},
		{"valid starting 1", "12345678", Valid},
		{"too short", "1234567", WrongLength},
		{"too long", "123456789", WrongLength},
		{"empty", "", WrongLength},
		{"non numeric", "1234567a", WrongLength},
		{"bad prefix 2", "21234567", WrongPrefix},
		{"bad prefix 9", "91234567", WrongPrefix},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateCIN(tt.cin))
		})
	}
}

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		want  ValidationResult
	}{
		{"mobile 2", "20123456", Valid},
		{"fixed 3", "30123456", Valid},
		{"mobile 5", "50123456", Valid},
		{"fixed 7", "71234567", Valid},
		{"mobile 9", "98123456", Valid},
		{"prefix 4 rejected here", "40123456", WrongPrefix},
		{"prefix 0", "01234567", WrongPrefix},
		{"seven digits", "2012345", WrongLength},
		{"nine digits", "201234567", WrongLength},
		{"letters", "2012345x", WrongLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidatePhone(tt.phone))
		})
	}
}

func TestValidateEmailFormat(t *testing.T) {
	assert.True(t, ValidateEmailFormat("citoyen@steg.tn"))
	assert.True(t, ValidateEmailFormat("a.b@mail.example.com"))
	assert.False(t, ValidateEmailFormat("no-at-sign"))
	assert.False(t, ValidateEmailFormat("missing@dot"))
	assert.False(t, ValidateEmailFormat("two@@steg.tn"))
	assert.False(t, ValidateEmailFormat(""))
}

func TestClassifyReferenceZone(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"72807000", "GREMDA"},
		{"72850123", "GREMDA"},
		{"72901000", "LAFRANE"},
		{"73050000", "EL_AIN"},
		{"73150000", "MANZEL_CHAKER"},
		{"73250000", "MATAR"},
		{"73350000", "SOKRA_MHARZA"},
		{"73450000", "GABES"},
		// Bounds are exclusive.
		{"72806000", ""},
		{"72899000", ""},
		{"73500000", ""},
		// Outside every range.
		{"00000000", ""},
		{"99999999", ""},
		// Shape failures.
		{"7280700", ""},
		{"728070001", ""},
		{"7280700a", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyReferenceZone(tt.code))
		})
	}
}

func TestValidateReference(t *testing.T) {
	existing := []models.Reference{
		{Code: "72807000", Zone: "GREMDA"},
	}

	assert.Equal(t, "", ValidateReference("72901000", existing))
	assert.NotEqual(t, "", ValidateReference("72807000", existing), "duplicate code must be rejected")
	assert.NotEqual(t, "", ValidateReference("00000000", existing), "zoneless code must be rejected")
	assert.NotEqual(t, "", ValidateReference("1234", existing), "short code must be rejected")
}

func TestValidateCitoyen(t *testing.T) {
	valid := &models.Citoyen{
		FirstName: "Ahmed",
		LastName:  "Ben Salah",
		CIN:       "01234567",
		Phone:     "20123456",
		Email:     "ahmed@steg.tn",
	}
	assert.Equal(t, "", ValidateCitoyen(valid))

	badCIN := *valid
	badCIN.CIN = "91234567"
	assert.NotEqual(t, "", ValidateCitoyen(&badCIN))

	badPhone := *valid
	badPhone.Phone = "40123456"
	assert.NotEqual(t, "", ValidateCitoyen(&badPhone))

	badEmail := *valid
	badEmail.Email = "not-an-email"
	assert.NotEqual(t, "", ValidateCitoyen(&badEmail))

	noName := *valid
	noName.FirstName = " "
	assert.NotEqual(t, "", ValidateCitoyen(&noName))
}
