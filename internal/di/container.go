package di

import (
	"context"
	"fmt"

	"github.com/GoArmGo/PetAdoption/internal/adapter/storage/local"
	"github.com/GoArmGo/PetAdoption/internal/adapter/storage/minio"
	"github.com/GoArmGo/PetAdoption/internal/app"
	"github.com/GoArmGo/PetAdoption/internal/config"
	"github.com/GoArmGo/PetAdoption/internal/core/ports"
	"github.com/GoArmGo/PetAdoption/internal/database/client"
	"github.com/GoArmGo/PetAdoption/internal/database/memory"
	"github.com/GoArmGo/PetAdoption/internal/database/storage"
	"github.com/GoArmGo/PetAdoption/internal/handler"
	"github.com/GoArmGo/PetAdoption/internal/logger"
	"github.com/GoArmGo/PetAdoption/internal/security"
	"github.com/GoArmGo/PetAdoption/internal/session"
	"github.com/GoArmGo/PetAdoption/internal/usecase"
	"github.com/GoArmGo/PetAdoption/internal/view"
)

type storages struct {
	users ports.UserStorage
	pets  ports.PetStorage
	apps  ports.ApplicationStorage
}

// BuildApp инициализирует все зависимости и возвращает готовый объект App.
func BuildApp(ctx context.Context, mode string) (*app.App, error) {
	// 1. Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	slogger := logger.NewSlog(logger.SlogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	slogger.Info("logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)

	var closers []func() error
	fail := func(err error) (*app.App, error) {
		for i := len(closers) - 1; i >= 0; i-- {
			_ = closers[i]()
		}
		return nil, err
	}

	// 2. Хранилища: PostgreSQL или in-memory, если DATABASE_URL не задан
	var (
		st       storages
		migrator app.Migrator
	)
	if cfg.DatabaseURL == "" {
		if mode == "migrate" {
			return nil, fmt.Errorf("migrate mode requires DATABASE_URL")
		}
		slogger.Warn("DATABASE_URL is empty, using in-memory storage; data is lost on restart")
		db := memory.NewDB()
		st = storages{
			users: memory.NewUserStorage(db),
			pets:  memory.NewPetStorage(db),
			apps:  memory.NewApplicationStorage(db),
		}
	} else {
		// в режиме migrate миграции применяет сам runMigrate
		if mode == "migrate" {
			cfg.DB.MigrationsEnabled = false
		}
		dbClient, err := client.NewClient(ctx, cfg, slogger)
		if err != nil {
			return nil, err
		}
		closers = append(closers, dbClient.Close)
		migrator = dbClient
		st = storages{
			users: storage.NewUserStorage(dbClient.DB, slogger),
			pets:  storage.NewPetStorage(dbClient.DB, slogger),
			apps:  storage.NewApplicationStorage(dbClient.DB, slogger),
		}
	}

	if mode == "migrate" {
		return app.NewApp(cfg, slogger, nil, migrator, closers...), nil
	}

	// 3. Сессии
	var sessions ports.SessionStore
	switch cfg.Session.Backend {
	case config.SessionBackendRedis:
		rdb, err := session.NewRedisClient(ctx, cfg.Session.RedisAddr, cfg.Session.RedisPassword, cfg.Session.RedisDB)
		if err != nil {
			return fail(err)
		}
		closers = append(closers, rdb.Close)
		sessions = session.NewRedisStore(rdb, cfg.Session.TTL, slogger)
		slogger.Info("redis session store connected", "addr", cfg.Session.RedisAddr)
	default:
		sessions = session.NewMemoryStore(cfg.Session.TTL)
	}

	// 4. Файловое хранилище: диск или S3 / MinIO
	var (
		files     ports.FileStorage
		imagesDir string
	)
	switch cfg.Upload.Backend {
	case config.UploadBackendS3:
		mc, err := minio.NewMinioClient(ctx, cfg, slogger)
		if err != nil {
			return fail(err)
		}
		files = mc
	default:
		ls, err := local.NewStore(cfg.Upload.Dir, slogger)
		if err != nil {
			return fail(err)
		}
		files = ls
		imagesDir = ls.Dir()
	}

	// 5. Бизнес-логика
	hasher, err := security.NewPasswordHasher(cfg.BcryptCost)
	if err != nil {
		return fail(err)
	}
	accounts := usecase.NewAccountUseCase(st.users, hasher, slogger)
	pets := usecase.NewPetUseCase(st.pets, st.apps, files, slogger)
	applications := usecase.NewApplicationUseCase(st.pets, st.apps, slogger)

	// 6. HTTP
	renderer, err := view.NewRenderer()
	if err != nil {
		return fail(err)
	}
	h := handler.NewHandler(accounts, pets, applications, sessions, renderer, handler.Options{
		CookieName:     cfg.Session.CookieName,
		CookieSecure:   cfg.Session.CookieSecure,
		SessionTTL:     cfg.Session.TTL,
		MaxUploadBytes: cfg.Upload.MaxBytes,
		ImagesDir:      imagesDir,
		RequestTimeout: cfg.RequestTimeout,
	}, slogger)

	slogger.Info("all dependencies initialized",
		"session_backend", cfg.Session.Backend,
		"upload_backend", cfg.Upload.Backend,
		"postgres", cfg.DatabaseURL != "",
	)
	return app.NewApp(cfg, slogger, handler.NewRouter(h, slogger), migrator, closers...), nil
}
