package db

import (
	"github.com/ikkim/gestion-empresas-backend/internal/app/model"
	"github.com/ikkim/gestion-empresas-backend/pkg/logger"
	"gorm.io/gorm"
)

// Models lists every table managed by AutoMigrate, parents first.
func Models() []interface{} {
	return []interface{}{
		&model.Empresa{},
		&model.Sede{},
	}
}

// Migrate runs database migrations on the package-level connection
func Migrate() error {
	return MigrateDB(DB)
}

func MigrateDB(conn *gorm.DB) error {
	logger.Info("Running database migrations...")

	models := Models()
	if err := conn.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}
