package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"

	UploadBackendLocal = "local"
	UploadBackendS3    = "s3"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	// Пустой DATABASE_URL включает in-memory хранилище (режим разработки).
	DatabaseURL    string        `env:"DATABASE_URL"`
	ServerPort     string        `env:"SERVER_PORT" envDefault:"3000"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat      string        `env:"LOG_FORMAT" envDefault:"json"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`
	BcryptCost     int           `env:"BCRYPT_COST" envDefault:"10"`

	DB struct {
		MaxOpenConns      int           `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
		MaxIdleConns      int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
		ConnMaxLifetime   time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"5m"`
		ConnectTimeout    time.Duration `env:"DB_CONNECT_TIMEOUT" envDefault:"5s"`
		MigrationsEnabled bool          `env:"DB_MIGRATIONS_ENABLED" envDefault:"true"`
	}

	Session struct {
		Backend       string        `env:"SESSION_BACKEND" envDefault:"memory"`
		TTL           time.Duration `env:"SESSION_TTL" envDefault:"24h"`
		CookieName    string        `env:"SESSION_COOKIE_NAME" envDefault:"sid"`
		CookieSecure  bool          `env:"SESSION_COOKIE_SECURE"`
		RedisAddr     string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
		RedisPassword string        `env:"REDIS_PASSWORD"`
		RedisDB       int           `env:"REDIS_DB"`
	}

	Upload struct {
		Backend  string `env:"UPLOAD_BACKEND" envDefault:"local"`
		Dir      string `env:"UPLOAD_DIR" envDefault:"static/images"`
		MaxBytes int64  `env:"UPLOAD_MAX_BYTES" envDefault:"10485760"`
	}

	// Настройки для MinIO (используются при UPLOAD_BACKEND=s3)
	Minio struct {
		Endpoint        string `env:"MINIO_ENDPOINT"`
		AccessKeyID     string `env:"MINIO_ACCESS_KEY_ID"`
		SecretAccessKey string `env:"MINIO_SECRET_ACCESS_KEY"`
		UseSSL          bool   `env:"MINIO_USE_SSL"`
		BucketName      string `env:"MINIO_BUCKET_NAME" envDefault:"pet-photos"`
		Region          string `env:"MINIO_REGION" envDefault:"us-east-1"`
		// Базовый адрес, по которому браузер видит бакет.
		PublicURL string `env:"MINIO_PUBLIC_URL" envDefault:"http://localhost:9000"`
	}
}

// LoadConfig загружает конфигурацию из переменных окружения.
// В режиме разработки пытается загрузить .env файл.
func LoadConfig() (*Config, error) {
	if _, err := os.Stat(".env"); !os.IsNotExist(err) {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse config from environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate проверяет перечислимые значения и обязательные для выбранных бэкендов поля.
func (c *Config) Validate() error {
	switch c.Session.Backend {
	case SessionBackendMemory, SessionBackendRedis:
	default:
		return fmt.Errorf("SESSION_BACKEND must be %q or %q, got %q",
			SessionBackendMemory, SessionBackendRedis, c.Session.Backend)
	}

	switch c.Upload.Backend {
	case UploadBackendLocal:
	case UploadBackendS3:
		if c.Minio.Endpoint == "" || c.Minio.AccessKeyID == "" || c.Minio.SecretAccessKey == "" {
			return fmt.Errorf("UPLOAD_BACKEND=s3 requires MINIO_ENDPOINT, MINIO_ACCESS_KEY_ID and MINIO_SECRET_ACCESS_KEY")
		}
	default:
		return fmt.Errorf("UPLOAD_BACKEND must be %q or %q, got %q",
			UploadBackendLocal, UploadBackendS3, c.Upload.Backend)
	}

	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.Upload.MaxBytes <= 0 {
		return fmt.Errorf("UPLOAD_MAX_BYTES must be positive")
	}
	return nil
}
