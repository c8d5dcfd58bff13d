package database

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gamecatalog/backend/internal/logging"
	"gamecatalog/backend/internal/repository/gormrepo"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DefaultSQLiteFile is used when no DATABASE_URL is configured.
const DefaultSQLiteFile = "games.db"

// Dialector picks the driver for a DSN: postgres:// and postgresql:// URLs
// and key=value DSNs go to postgres, everything else is a sqlite path.
// An empty DSN means a sqlite file in dataPath.
func Dialector(dsn, dataPath string) (gorm.Dialector, error) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"),
		strings.Contains(dsn, "host="):
		return postgres.Open(dsn), nil
	case dsn == "":
		if err := os.MkdirAll(dataPath, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		return sqlite.Open(filepath.Join(dataPath, DefaultSQLiteFile)), nil
	default:
		return sqlite.Open(strings.TrimPrefix(dsn, "sqlite://")), nil
	}
}

// Connect opens the database and runs migrations.
func Connect(dsn, dataPath string) (*gorm.DB, error) {
	dialector, err := Dialector(dsn, dataPath)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logging.GormLogger(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if dialector.Name() == "sqlite" {
		// sqlite allows one writer at a time.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	logging.Info().Str("driver", dialector.Name()).Msg("database connection established")

	if err := gormrepo.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	logging.Info().Msg("database migrated successfully")
	return db, nil
}

// Empty reports whether the catalog has no games yet.
func Empty(db *gorm.DB) (bool, error) {
	var n int64
	if err := db.Table("games").Count(&n).Error; err != nil {
		return false, err
	}
	return n == 0, nil
}
