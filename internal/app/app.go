package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/GoArmGo/PetAdoption/internal/config"
)

// Migrator применяет схему бд; nil для in-memory хранилища.
type Migrator interface {
	Migrate(databaseURL string) error
}

type App struct {
	Config   *config.Config
	logger   *slog.Logger
	router   http.Handler
	migrator Migrator
	closers  []func() error
}

func NewApp(cfg *config.Config, logger *slog.Logger, router http.Handler, migrator Migrator, closers ...func() error) *App {
	return &App{
		Config:   cfg,
		logger:   logger,
		router:   router,
		migrator: migrator,
		closers:  closers,
	}
}

// LoggerIns возвращает основной логгер приложения
func (a *App) LoggerIns() *slog.Logger {
	return a.logger
}

func (a *App) Run(ctx context.Context, mode string) error {
	// канал для graceful shutdown
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	defer a.Shutdown()

	a.logger.Info("starting", "mode", mode)

	switch mode {
	case "server":
		return runServer(ctx, a.Config, a.router, a.logger)
	case "migrate":
		return runMigrate(a.Config, a.migrator, a.logger)
	default:
		return fmt.Errorf("неизвестный режим: %s (используйте 'server' или 'migrate')", mode)
	}
}

// Shutdown закрывает все ресурсы приложения в обратном порядке
func (a *App) Shutdown() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Error("failed to release resource", "error", err)
		}
	}
	a.closers = nil
}
