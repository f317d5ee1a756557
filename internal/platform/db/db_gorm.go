// Package db opens the application database and runs schema migrations.
package db

import (
	"time"

	"go.uber.org/zap"
	gpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	authadapters "farmgrocery/internal/feature/auth/adapters"
	authentity "farmgrocery/internal/feature/auth/domain/entity"
	farmentity "farmgrocery/internal/feature/farms/domain/entity"
	productentity "farmgrocery/internal/feature/products/domain/entity"
	"farmgrocery/internal/platform/config"
	"farmgrocery/internal/platform/logger"
)

// OpenDB connects to PostgreSQL, retrying until the database accepts
// connections or the deadline passes. Containerized databases routinely
// come up after the application process.
func OpenDB(cfg config.DBConfig) *gorm.DB {
	log := logger.Get()

	var (
		gdb *gorm.DB
		err error
	)
	deadline := time.Now().Add(60 * time.Second)
	for {
		gdb, err = gorm.Open(gpostgres.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatal("db connect failed after 60s", zap.Error(err))
		}
		log.Warn("db connect failed, retrying...", zap.Error(err))
		time.Sleep(3 * time.Second)
	}

	if cfg.RunMigrations {
		if err := Migrate(gdb); err != nil {
			log.Fatal("failed to migrate", zap.Error(err))
		}
	}

	return gdb
}

// Migrate creates or updates the schema for every persisted type.
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&authentity.User{},
		&authadapters.SessionModel{},
		&farmentity.Farm{},
		&productentity.Product{},
	)
}
