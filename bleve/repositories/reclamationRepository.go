package repositories

import (
	"strings"

	"steg-backend/config"
	"steg-backend/db/models"

	"github.com/blevesearch/bleve/v2"
	"go.uber.org/zap"
)

const reclamationIndex = "reclamations"

type bleveReclamationDoc struct {
	ID         string `json:"id"`
	Code       string `json:"code"`
	Reference  string `json:"reference"`
	Importance string `json:"importance"`
	TypePanne  string `json:"type_panne"`
	GenrePanne string `json:"genre_panne"`
	NumClient  string `json:"num_client"`
	Etat       string `json:"etat"`
}

func toReclamationDoc(r models.Reclamation) bleveReclamationDoc {
	return bleveReclamationDoc{
		ID:         r.ID.String(),
		Code:       r.Code,
		Reference:  r.Reference,
		Importance: string(r.Importance),
		TypePanne:  r.TypePanne,
		GenrePanne: r.GenrePanne,
		NumClient:  r.NumClient,
		Etat:       string(r.Etat),
	}
}

func (r *BleveRepository) IndexSingleReclamation(reclamation models.Reclamation) error {
	err := r.indexer.IndexDocument(reclamationIndex, reclamation.ID.String(), toReclamationDoc(reclamation))
	if err != nil {
		config.Logger.Error("Failed to index réclamation",
			zap.Error(err),
			zap.String("reclamation_id", reclamation.ID.String()))
		return err
	}
	return nil
}

func (r *BleveRepository) IndexExistingReclamations(reclamations []models.Reclamation) error {
	docs := make(map[string]interface{})
	for _, rec := range reclamations {
		docs[rec.ID.String()] = toReclamationDoc(rec)
	}

	if len(docs) == 0 {
		config.Logger.Info("No réclamations to index")
		return nil
	}

	if err := r.indexer.BulkIndexDocuments(reclamationIndex, docs); err != nil {
		config.Logger.Error("Failed to bulk index réclamations", zap.Error(err))
		return err
	}
	return nil
}

// SearchReclamations layers exact, phrase, fuzzy, prefix and wildcard
// strategies so code lookups rank above loose text matches.
func (r *BleveRepository) SearchReclamations(queryString, etat string) (*bleve.SearchResult, error) {
	queryString = strings.TrimSpace(strings.ToLower(queryString))

	booleanQuery := bleve.NewBooleanQuery()

	exactMatch := bleve.NewBooleanQuery()
	for _, field := range []string{"code", "reference", "num_client"} {
		termQuery := bleve.NewTermQuery(queryString)
		termQuery.SetField(field)
		termQuery.SetBoost(6.0)
		exactMatch.AddShould(termQuery)
	}

	phraseMatch := bleve.NewBooleanQuery()
	for _, field := range []string{"type_panne", "genre_panne"} {
		phraseQuery := bleve.NewMatchPhraseQuery(queryString)
		phraseQuery.SetField(field)
		phraseQuery.SetBoost(5.0)
		phraseMatch.AddShould(phraseQuery)
	}

	fuzzyMatch := bleve.NewBooleanQuery()
	for _, field := range []string{"type_panne", "genre_panne", "code"} {
		fuzzyQuery := bleve.NewFuzzyQuery(queryString)
		fuzzyQuery.SetField(field)
		fuzzyQuery.SetFuzziness(2)
		fuzzyQuery.SetBoost(3.0)
		fuzzyMatch.AddShould(fuzzyQuery)
	}

	prefixMatch := bleve.NewBooleanQuery()
	for _, field := range []string{"code", "reference", "num_client", "type_panne"} {
		prefixQuery := bleve.NewPrefixQuery(queryString)
		prefixQuery.SetField(field)
		prefixQuery.SetBoost(2.0)
		prefixMatch.AddShould(prefixQuery)
	}

	wildcardMatch := bleve.NewBooleanQuery()
	wildcardQuery := bleve.NewWildcardQuery("*" + queryString + "*")
	wildcardQuery.SetBoost(1.0)
	wildcardMatch.AddShould(wildcardQuery)

	booleanQuery.AddShould(exactMatch)
	booleanQuery.AddShould(phraseMatch)
	booleanQuery.AddShould(fuzzyMatch)
	booleanQuery.AddShould(prefixMatch)
	booleanQuery.AddShould(wildcardMatch)

	finalQuery := bleve.NewBooleanQuery()
	finalQuery.AddMust(booleanQuery)

	if etat != "" {
		etatQuery := bleve.NewTermQuery(strings.ToLower(etat))
		etatQuery.SetField("etat")
		finalQuery.AddMust(etatQuery)
	}

	return r.indexer.SearchIndex(reclamationIndex, finalQuery, 20)
}

func (r *BleveRepository) UpdateReclamation(reclamation models.Reclamation) error {
	id := reclamation.ID.String()
	if err := r.indexer.UpdateDocument(reclamationIndex, id, toReclamationDoc(reclamation)); err != nil {
		config.Logger.Error("Failed to update réclamation in index",
			zap.Error(err),
			zap.String("reclamation_id", id))
		return err
	}
	return nil
}

func (r *BleveRepository) DeleteReclamation(reclamationID string) error {
	if err := r.indexer.DeleteDocument(reclamationIndex, reclamationID); err != nil {
		config.Logger.Error("Failed to delete réclamation from index",
			zap.Error(err),
			zap.String("reclamation_id", reclamationID))
		return err
	}
	return nil
}

func (r *BleveRepository) GetReclamationDocument(id string) (interface{}, error) {
	return r.indexer.GetDocument(reclamationIndex, id)
}
