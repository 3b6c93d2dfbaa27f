package infra

import (
	"fmt"

	"garagedesk/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the idempotent SQL patches that
// AutoMigrate cannot express (sequences, partial indexes).
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

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations applies AutoMigrate plus schema patches. Also used by the
// seed command so that seeding a fresh database does not depend on the server
// having started once.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Customer{},
		&model.Vehicle{},
		&model.RepairOrder{},
		&model.RepairOrderItem{},
		&model.Payment{},
		&model.SparePart{},
		&model.LaborType{},
		&model.Profile{},
		&model.StockMovement{},
		&model.Invoice{},
		&model.SystemSetting{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that GORM AutoMigrate cannot fully
// handle on its own. Each statement uses IF NOT EXISTS / guarded DO blocks so
// re-running on an already-patched DB is safe.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		// Invoice numbers come from a dedicated sequence, not the row count,
		// so concurrent completions can never collide.
		{"invoice number sequence",
			`CREATE SEQUENCE IF NOT EXISTS invoice_number_seq START 1`},
		// Partial index for the retry cron query.
		{"pending invoice retry index", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_invoices_pending_retry') THEN
    CREATE INDEX idx_invoices_pending_retry
        ON invoices (next_retry_at)
        WHERE status = 'pending' AND next_retry_at IS NOT NULL;
  END IF;
END $$`},
		// An order line must reference a part or a labor entry, never both.
		{"order item one-of constraint", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_order_item_one_of') THEN
    ALTER TABLE repair_order_items
      ADD CONSTRAINT chk_order_item_one_of
      CHECK (NOT (spare_part_id IS NOT NULL AND labor_type_id IS NOT NULL));
  END IF;
END $$`},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
