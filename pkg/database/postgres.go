package database

import (
	"fmt"
	"time"

	"github.com/Eursukkul/campsite-reservation/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	return db, nil
}

// noOverlapConstraint rejects two active reservations on one site whose
// [check_in_date, check_out_date) ranges intersect. int8range is half-open by
// default, so back-to-back stays are accepted.
const noOverlapConstraint = `
DO $$
BEGIN
	IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'reservations_no_overlap') THEN
		ALTER TABLE reservations ADD CONSTRAINT reservations_no_overlap
		EXCLUDE USING gist (
			site_id WITH =,
			int8range(check_in_date, check_out_date) WITH &&
		) WHERE (status IN ('pending', 'approved'));
	END IF;
END $$;`

// Migrate creates the schema and the constraints AutoMigrate cannot express.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	// site_id needs a btree opclass inside a gist index
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		return fmt.Errorf("enable btree_gist: %w", err)
	}

	stmts := []string{
		`ALTER TABLE reservations DROP CONSTRAINT IF EXISTS reservations_range_valid`,
		`ALTER TABLE reservations ADD CONSTRAINT reservations_range_valid CHECK (check_in_date < check_out_date)`,
		noOverlapConstraint,
		`CREATE INDEX IF NOT EXISTS idx_reservations_site_active
		ON reservations (site_id, check_in_date)
		WHERE status IN ('pending', 'approved')`,
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migrate reservations: %w", err)
		}
	}
	return nil
}
