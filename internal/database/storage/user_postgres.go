package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/GoArmGo/PetAdoption/internal/domain"
)

const userColumns = `id, name, username, email, password_hash, role, phone, city, created_at`

// UserStorage реализует интерфейс ports.UserStorage поверх sqlx
type UserStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewUserStorage создает новый экземпляр UserStorage
func NewUserStorage(db *sqlx.DB, logger *slog.Logger) *UserStorage {
	return &UserStorage{db: db, logger: logger}
}

// CreateUser сохраняет пользователя; уникальность email гарантирует ограничение users_email_key.
func (s *UserStorage) CreateUser(ctx context.Context, user *domain.User) error {
	start := time.Now()

	stmt, err := s.db.PrepareNamedContext(ctx, `
		INSERT INTO users (name, username, email, password_hash, role, phone, city)
		VALUES (:name, :username, :email, :password_hash, :role, :phone, :city)
		RETURNING id, created_at
	`)
	if err != nil {
		return fmt.Errorf("prepare insert user: %w", err)
	}
	defer stmt.Close()

	var out struct {
		ID        int64     `db:"id"`
		CreatedAt time.Time `db:"created_at"`
	}
	if err := stmt.GetContext(ctx, &out, user); err != nil {
		if terr := translateError(err); errors.Is(terr, domain.ErrEmailTaken) {
			s.logger.Warn("duplicate email on insert", "email", user.Email)
			return terr
		}
		s.logger.Error("failed to insert user", "email", user.Email, "error", err)
		return fmt.Errorf("insert user: %w", err)
	}
	user.ID = out.ID
	user.CreatedAt = out.CreatedAt

	s.logger.Info("user created",
		"user_id", user.ID,
		"role", user.Role,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// GetUserByEmail используется как быстрая предварительная проверка при регистрации.
func (s *UserStorage) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := s.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		s.logger.Error("failed to select user by email", "error", err)
		return nil, fmt.Errorf("select user by email: %w", err)
	}
	return &user, nil
}

// GetUserByEmailAndRole ищет пользователя по (email, role) для логина.
func (s *UserStorage) GetUserByEmailAndRole(ctx context.Context, email string, role domain.Role) (*domain.User, error) {
	var user domain.User
	err := s.db.GetContext(ctx, &user,
		`SELECT `+userColumns+` FROM users WHERE email = $1 AND role = $2`, email, role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		s.logger.Error("failed to select user by email and role", "error", err)
		return nil, fmt.Errorf("select user by email and role: %w", err)
	}
	return &user, nil
}
