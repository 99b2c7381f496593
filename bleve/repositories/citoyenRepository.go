package repositories

import (
	"strings"

	"steg-backend/config"
	"steg-backend/db/models"

	"github.com/blevesearch/bleve/v2"
	"go.uber.org/zap"
)

const citoyenIndex = "citoyens"

type bleveCitoyenDoc struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
	CIN       string `json:"cin"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Etat      string `json:"etat"`
}

func toCitoyenDoc(c models.Citoyen) bleveCitoyenDoc {
	return bleveCitoyenDoc{
		ID:        c.ID.String(),
		FirstName: c.FirstName,
		LastName:  c.LastName,
		FullName:  c.GetFullName(),
		CIN:       c.CIN,
		Phone:     c.Phone,
		Email:     c.Email,
		Etat:      string(c.Etat),
	}
}

func (r *BleveRepository) IndexSingleCitoyen(citoyen models.Citoyen) error {
	err := r.indexer.IndexDocument(citoyenIndex, citoyen.ID.String(), toCitoyenDoc(citoyen))
	if err != nil {
		config.Logger.Error("Failed to index citoyen",
			zap.Error(err),
			zap.String("citoyen_id", citoyen.ID.String()))
		return err
	}
	return nil
}

func (r *BleveRepository) IndexExistingCitoyens(citoyens []models.Citoyen) error {
	docs := make(map[string]interface{})
	for _, c := range citoyens {
		docs[c.ID.String()] = toCitoyenDoc(c)
	}

	if len(docs) == 0 {
		config.Logger.Info("No citoyens to index")
		return nil
	}

	if err := r.indexer.BulkIndexDocuments(citoyenIndex, docs); err != nil {
		config.Logger.Error("Failed to bulk index citoyens", zap.Error(err))
		return err
	}
	return nil
}

func (r *BleveRepository) SearchCitoyens(queryString, etat string) (*bleve.SearchResult, error) {
	queryString = strings.TrimSpace(strings.ToLower(queryString))

	booleanQuery := bleve.NewBooleanQuery()

	exactMatch := bleve.NewBooleanQuery()
	for _, field := range []string{"cin", "email", "phone", "full_name"} {
		termQuery := bleve.NewTermQuery(queryString)
		termQuery.SetField(field)
		termQuery.SetBoost(6.0)
		exactMatch.AddShould(termQuery)
	}

	phraseMatch := bleve.NewBooleanQuery()
	for _, field := range []string{"full_name", "first_name", "last_name"} {
		phraseQuery := bleve.NewMatchPhraseQuery(queryString)
		phraseQuery.SetField(field)
		phraseQuery.SetBoost(5.0)
		phraseMatch.AddShould(phraseQuery)
	}

	fuzzyMatch := bleve.NewBooleanQuery()
	for _, field := range []string{"full_name", "first_name", "last_name", "email"} {
		fuzzyQuery := bleve.NewFuzzyQuery(queryString)
		fuzzyQuery.SetField(field)
		fuzzyQuery.SetFuzziness(2)
		fuzzyQuery.SetBoost(3.0)
		fuzzyMatch.AddShould(fuzzyQuery)
	}

	prefixMatch := bleve.NewBooleanQuery()
	for _, field := range []string{"full_name", "first_name", "last_name", "cin", "phone"} {
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

	return r.indexer.SearchIndex(citoyenIndex, finalQuery, 20)
}

func (r *BleveRepository) UpdateCitoyen(citoyen models.Citoyen) error {
	id := citoyen.ID.String()
	if err := r.indexer.UpdateDocument(citoyenIndex, id, toCitoyenDoc(citoyen)); err != nil {
		config.Logger.Error("Failed to update citoyen in index",
			zap.Error(err),
			zap.String("citoyen_id", id))
		return err
	}
	return nil
}

func (r *BleveRepository) DeleteCitoyen(citoyenID string) error {
	if err := r.indexer.DeleteDocument(citoyenIndex, citoyenID); err != nil {
		config.Logger.Error("Failed to delete citoyen from index",
			zap.Error(err),
			zap.String("citoyen_id", citoyenID))
		return err
	}
	return nil
}

func (r *BleveRepository) GetCitoyenDocument(id string) (interface{}, error) {
	return r.indexer.GetDocument(citoyenIndex, id)
}
