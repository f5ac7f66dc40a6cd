package infra

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, then applies the
// idempotent SQL patches GORM cannot express. Schema is managed via SQL
// migrations; AutoMigrate is deliberately not used.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := applySchemaPatches(db); err != nil {
		return nil, fmt.Errorf("schema patches: %w", err)
	}
	return db, nil
}

// applySchemaPatches runs idempotent DDL the migrations may not have caught
// up with on older deployments. Each statement uses IF NOT EXISTS semantics
// so re-running on an already-patched DB is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// dispatch bookkeeping columns added after initial deployment
		`DO $$ BEGIN
		  IF EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'emails_sortants') THEN
		    ALTER TABLE emails_sortants ADD COLUMN IF NOT EXISTS locked_at           TIMESTAMPTZ;
		    ALTER TABLE emails_sortants ADD COLUMN IF NOT EXISTS last_error          TEXT;
		    ALTER TABLE emails_sortants ADD COLUMN IF NOT EXISTS sent_at             TIMESTAMPTZ;
		    ALTER TABLE emails_sortants ADD COLUMN IF NOT EXISTS provider_message_id VARCHAR(120);
		  END IF;
		END $$`,
		// partial index backing the claim query
		`DO $$ BEGIN
		  IF EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'emails_sortants')
		    AND NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_emails_sortants_pending') THEN
		    CREATE INDEX idx_emails_sortants_pending
		        ON emails_sortants (created_at)
		        WHERE statut = 'pending';
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
