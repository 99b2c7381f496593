package bootstrap

import (
	"context"

	bleveRepositories "steg-backend/bleve/repositories"
	citoyens_repositories "steg-backend/citoyens/repositories"
	"steg-backend/config"
	reclamations_repositories "steg-backend/reclamations/repositories"

	"go.uber.org/zap"
)

// IndexBleveData rebuilds the search indices from the database. Run at boot
// so the indices never drift from Postgres across restarts.
func IndexBleveData(
	ctx context.Context,
	citoyenRepo citoyens_repositories.CitoyenRepository,
	reclamationRepo reclamations_repositories.ReclamationRepository,
	bleveRepo bleveRepositories.BleveRepositoryInterface,
) {
	if err := bleveRepo.DeleteAllIndices(ctx); err != nil {
		config.Logger.Error("Error deleting search indices before reindex", zap.Error(err))
		return
	}

	if citoyens, err := citoyenRepo.GetAllCitoyens(); err != nil {
		config.Logger.Error("Error fetching citoyens for indexing", zap.Error(err))
	} else if err := bleveRepo.IndexExistingCitoyens(citoyens); err != nil {
		config.Logger.Error("Failed to index citoyens", zap.Error(err))
	} else {
		config.Logger.Info("Indexed citoyens", zap.Int("count", len(citoyens)))
	}

	if reclamations, err := reclamationRepo.GetAllReclamations(); err != nil {
		config.Logger.Error("Error fetching réclamations for indexing", zap.Error(err))
	} else if err := bleveRepo.IndexExistingReclamations(reclamations); err != nil {
		config.Logger.Error("Failed to index réclamations", zap.Error(err))
	} else {
		config.Logger.Info("Indexed réclamations", zap.Int("count", len(reclamations)))
	}
}
