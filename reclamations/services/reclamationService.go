package services

import (
	"strings"

	citoyen_services "steg-backend/citoyens/services"
	"steg-backend/db/models"
)

var validImportances = []models.Importance{
	models.ImportanceCritique,
	models.ImportanceImportante,
	models.ImportanceMoyenne,
	models.ImportanceFaible,
}

var validEtats = []models.ReclamationEtat{
	models.EtatPasEncours,
	models.EtatEncours,
	models.EtatTerminer,
	models.EtatAnnulee,
}

// ValidateReclamation checks a new réclamation payload, returning the first
// failure as a human-readable reason.
func ValidateReclamation(rec *models.Reclamation) string {
	if strings.TrimSpace(rec.TypePanne) == "" {
		return "Le type de panne est obligatoire"
	}

	valid := false
	for _, imp := range validImportances {
		if rec.Importance == imp {
			valid = true
			break
		}
	}
	if !valid {
		return "Importance invalide: valeurs acceptées CRITIQUE, IMPORTANTE, MOYENNE, FAIBLE"
	}

	if citoyen_services.ClassifyReferenceZone(rec.Reference) == "" {
		return "La référence ne correspond à aucune zone desservie"
	}

	return ""
}

// IsValidEtat reports whether the string names a réclamation state.
func IsValidEtat(etat string) bool {
	for _, e := range validEtats {
		if etat == string(e) {
			return true
		}
	}
	return false
}

// ExportRow flattens a réclamation for the CSV and Excel exports. Field
// names line up with utils.ReclamationCSVHeader.
type ExportRow struct {
	Code       string
	Importance string
	TypePanne  string
	GenrePanne string
	NumClient  string
	Etat       string
	Equipe     string
	Date       string
}

func (r ExportRow) CSVRow() []string {
	return []string{r.Code, r.Importance, r.TypePanne, r.GenrePanne, r.NumClient, r.Etat, r.Equipe, r.Date}
}

// ToExportRows flattens réclamations in list order.
func ToExportRows(reclamations []models.Reclamation) []ExportRow {
	rows := make([]ExportRow, 0, len(reclamations))
	for _, rec := range reclamations {
		equipe := ""
		if rec.Equipe != nil {
			equipe = rec.Equipe.Nom
		}
		rows = append(rows, ExportRow{
			Code:       rec.Code,
			Importance: string(rec.Importance),
			TypePanne:  rec.TypePanne,
			GenrePanne: rec.GenrePanne,
			NumClient:  rec.NumClient,
			Etat:       string(rec.Etat),
			Equipe:     equipe,
			Date:       rec.CreatedAt.Format("02/01/2006"),
		})
	}
	return rows
}
