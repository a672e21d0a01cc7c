package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/betterday-backend/internal/platform/logger"
	"github.com/yungbote/betterday-backend/internal/types"
)

// DB opens a throwaway sqlite database for one test and migrates the full
// schema. Every call hands back an isolated database; the file lives in
// the test's temp dir and goes away with it.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(tb.TempDir(), "test.db")), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		tb.Fatalf("failed to open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("failed to access sql db: %v", err)
	}
	tb.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Exec(`PRAGMA foreign_keys = ON;`).Error; err != nil {
		tb.Fatalf("failed to enable foreign keys: %v", err)
	}
	if err := autoMigrateAll(db); err != nil {
		tb.Fatalf("failed to migrate test db: %v", err)
	}
	return db
}

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	return logger.NewNop()
}

// Date builds the canonical stored form of a calendar date.
func Date(year int, month time.Month, day int) datatypes.Date {
	return types.DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

func autoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&types.ImportanceLevel{},
		&types.Day{},
		&types.Category{},
		&types.Target{},
	)
}
