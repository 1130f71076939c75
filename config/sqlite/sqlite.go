// Package sqlite opens the embedded database and runs schema migration.
package sqlite

import (
	"context"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"repodigest/internal/model"
	"repodigest/internal/scheduler"
)

// Connect opens the sqlite database at dsn and migrates the schema.
func Connect(ctx context.Context, dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to open %q: %w", dsn, err)
	}

	// Single writer; serializing access avoids SQLITE_BUSY under load.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		return nil, fmt.Errorf("sqlite: migration failed: %w", err)
	}

	return db.WithContext(ctx), nil
}

// Disconnect closes the underlying connection.
func Disconnect(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Event{},
		&model.Digest{},
		&model.Summary{},
		&model.Repository{},
		&model.OwnerCredential{},
		&scheduler.Task{},
	)
}
