package app

import (
	"errors"
	"log/slog"

	"github.com/GoArmGo/PetAdoption/internal/config"
)

// runMigrate применяет миграции и завершается; сервер не запускается.
func runMigrate(cfg *config.Config, migrator Migrator, logger *slog.Logger) error {
	if migrator == nil || cfg.DatabaseURL == "" {
		return errors.New("migrate mode requires DATABASE_URL")
	}
	if err := migrator.Migrate(cfg.DatabaseURL); err != nil {
		return err
	}
	logger.Info("migrations finished")
	return nil
}
