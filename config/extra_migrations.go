package config

import "gorm.io/gorm"

// CreateReferencePartialIndex creates a partial unique index that allows:
// - Soft-deleted reference rows to keep their code (for audit history)
// - Only ONE live reference row per (citoyen, code) pair
//
// Without this index, soft-deleted rows still violate the plain unique
// constraint, causing "duplicate key" errors when a citizen removes a
// reference and re-registers the same service point later.
func CreateReferencePartialIndex(db *gorm.DB) error {
	return db.Exec(`
		DROP INDEX IF EXISTS idx_citoyen_code;
		CREATE UNIQUE INDEX IF NOT EXISTS idx_references_citoyen_code_active
		ON "references" (citoyen_id, code);
	`).Error
}
