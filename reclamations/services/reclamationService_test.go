package services

import (
	"strings"
	"testing"
	"time"

	"steg-backend/db/models"
	"steg-backend/utils"

	"github.com/stretchr/testify/assert"
)

func validReclamation() *models.Reclamation {
	return &models.Reclamation{
		Reference:  "72850123",
		Importance: models.ImportanceCritique,
		TypePanne:  "Coupure totale",
		NumClient:  "123456",
	}
}

func TestValidateReclamation(t *testing.T) {
	assert.Equal(t, "", ValidateReclamation(validReclamation()))

	noType := validReclamation()
	noType.TypePanne = "  "
	assert.NotEqual(t, "", ValidateReclamation(noType))

	badImportance := validReclamation()
	badImportance.Importance = "URGENT"
	assert.NotEqual(t, "", ValidateReclamation(badImportance))

	badReference := validReclamation()
	badReference.Reference = "00000000"
	assert.NotEqual(t, "", ValidateReclamation(badReference))

	shortReference := validReclamation()
	shortReference.Reference = "7285"
	assert.NotEqual(t, "", ValidateReclamation(shortReference))
}

func TestIsValidEtat(t *testing.T) {
	for _, etat := range []string{"PAS_ENCOURS", "ENCOURS", "TERMINER", "ANNULEE"} {
		assert.True(t, IsValidEtat(etat), etat)
	}
	assert.False(t, IsValidEtat("FERMEE"))
	assert.False(t, IsValidEtat(""))
	assert.False(t, IsValidEtat("encours"))
}

func TestToExportRowsAndCSV(t *testing.T) {
	created := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)
	equipe := &models.Equipe{Nom: "Equipe, Nord"}

	reclamations := []models.Reclamation{
		{
			Code:       "REC-00000001",
			Importance: models.ImportanceCritique,
			TypePanne:  "Coupure totale",
			GenrePanne: "Réseau",
			NumClient:  "111222",
			Etat:       models.EtatEncours,
			Equipe:     equipe,
			CreatedAt:  created,
		},
		{
			Code:       "REC-00000002",
			Importance: models.ImportanceFaible,
			TypePanne:  "Compteur",
			Etat:       models.EtatPasEncours,
			CreatedAt:  created,
		},
	}

	rows := ToExportRows(reclamations)
	assert.Len(t, rows, 2)
	assert.Equal(t, "Equipe, Nord", rows[0].Equipe)
	assert.Equal(t, "", rows[1].Equipe, "unassigned réclamation exports an empty equipe column")
	assert.Equal(t, "15/03/2026", rows[0].Date)

	csv := utils.GenerateCSV(rows, utils.ReclamationCSVHeader)
	lines := strings.Split(strings.TrimRight(csv, "\n"), "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, "Code,Importance,TypePanne,GenrePanne,NumClient,Etat,Equipe,Date", lines[0])
	assert.Contains(t, lines[1], `"Equipe, Nord"`, "comma-bearing fields are quoted")
	assert.True(t, strings.HasPrefix(lines[2], "REC-00000002,FAIBLE,Compteur"))
}
