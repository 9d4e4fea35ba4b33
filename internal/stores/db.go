package stores

import (
	"fmt"
	"time"

	"traffic-analytics/internal/shared/configs"
	"traffic-analytics/internal/shared/loggers"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var migrationStatements = []string{
	`CREATE TABLE IF NOT EXISTS traffic_metrics (
		id                  BIGSERIAL PRIMARY KEY,
		camera_id           TEXT NOT NULL,
		camera_name         TEXT,
		district            TEXT NOT NULL,
		annotated_image_url TEXT,
		coordinates         JSONB,
		detection_details   JSONB,
		total_count         BIGINT NOT NULL,
		timestamp           TIMESTAMPTZ NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_traffic_metrics_timestamp ON traffic_metrics(timestamp);`,
	`CREATE INDEX IF NOT EXISTS idx_traffic_metrics_district_timestamp ON traffic_metrics(district, timestamp);`,
	`CREATE INDEX IF NOT EXISTS idx_traffic_metrics_camera_timestamp ON traffic_metrics(camera_id, timestamp);`,
	`CREATE TABLE IF NOT EXISTS report_jobs (
		id               BIGSERIAL PRIMARY KEY,
		name             TEXT NOT NULL,
		start_time       TIMESTAMPTZ NOT NULL,
		end_time         TIMESTAMPTZ NOT NULL,
		interval_minutes INT NOT NULL,
		districts        JSONB,
		cameras          JSONB,
		status           TEXT NOT NULL,
		file_url         TEXT,
		failure_reason   TEXT,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
		execute_at       TIMESTAMPTZ NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_report_jobs_status_execute_at ON report_jobs(status, execute_at);`,
}

// OpenDatabase connects to Postgres and applies the schema.
func OpenDatabase(cfg configs.DatabaseConfig, logger loggers.Logger) (*gorm.DB, error) {
	dbLogger := loggers.Component(logger, "database")
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger: gormlogger.New(&dbLogger, gormlogger.Config{
			SlowThreshold:             500 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access database handle: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := runMigrations(db); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// CloseDatabase releases the pool behind db.
func CloseDatabase(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
