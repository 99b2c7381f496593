package repositories

import (
	"context"

	bleveindex "steg-backend/bleve/services"
	"steg-backend/db/models"

	"github.com/blevesearch/bleve/v2"
)

type BleveRepository struct {
	indexer *bleveindex.IndexingService
}

type BleveRepositoryInterface interface {
	// General
	DeleteAllIndices(ctx context.Context) error

	// ==== Réclamation Indexing ====
	IndexSingleReclamation(reclamation models.Reclamation) error
	IndexExistingReclamations(reclamations []models.Reclamation) error
	UpdateReclamation(reclamation models.Reclamation) error
	DeleteReclamation(reclamationID string) error
	SearchReclamations(queryString, etat string) (*bleve.SearchResult, error)
	GetReclamationDocument(id string) (interface{}, error)

	// ==== Citoyen Indexing ====
	IndexSingleCitoyen(citoyen models.Citoyen) error
	IndexExistingCitoyens(citoyens []models.Citoyen) error
	UpdateCitoyen(citoyen models.Citoyen) error
	DeleteCitoyen(citoyenID string) error
	SearchCitoyens(queryString, etat string) (*bleve.SearchResult, error)
	GetCitoyenDocument(id string) (interface{}, error)
}

// Constructor returning both the struct and the interface
func NewBleveRepository(indexer *bleveindex.IndexingService) (*BleveRepository, BleveRepositoryInterface) {
	repo := &BleveRepository{indexer: indexer}
	return repo, repo
}

func (r *BleveRepository) DeleteAllIndices(ctx context.Context) error {
	return r.indexer.DeleteAllIndices()
}
