package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/GoArmGo/PetAdoption/internal/core/ports"
	"github.com/GoArmGo/PetAdoption/internal/domain"
	"github.com/GoArmGo/PetAdoption/internal/security"
)

// accountUseCase implements AccountUseCase
type accountUseCase struct {
	users  ports.UserStorage
	hasher *security.PasswordHasher
	logger *slog.Logger
}

func NewAccountUseCase(users ports.UserStorage, hasher *security.PasswordHasher, logger *slog.Logger) AccountUseCase {
	return &accountUseCase{users: users, hasher: hasher, logger: logger}
}

// Register проверяет форму в порядке: совпадение паролей, роль, обязательные поля, email.
// Ничего не сохраняется, пока все проверки не пройдены.
func (uc *accountUseCase) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	if in.Password != in.PasswordConfirm {
		return nil, domain.ErrPasswordMismatch
	}

	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	username := domain.UsernameFromEmail(email)
	// bcrypt учитывает не больше 72 байт пароля
	if name == "" || in.Password == "" || len(in.Password) > 72 || !strings.Contains(email, "@") || username == "" {
		return nil, domain.ErrInvalidInput
	}

	// Быстрая проверка; окончательно уникальность гарантирует хранилище.
	if _, err := uc.users.GetUserByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("usecase: check email: %w", err)
	}

	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("usecase: hash password: %w", err)
	}

	user := &domain.User{
		Name:         name,
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Phone:        strings.TrimSpace(in.Phone),
		City:         strings.TrimSpace(in.City),
	}
	if err := uc.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("usecase: create user: %w", err)
	}

	uc.logger.Info("user registered", "user_id", user.ID, "role", user.Role)
	return user, nil
}

func (uc *accountUseCase) Login(ctx context.Context, email, password, role string) (*domain.SessionUser, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	r, err := domain.ParseRole(role)
	if err != nil {
		uc.hasher.CompareDummy(password)
		return nil, domain.ErrInvalidCredentials
	}

	user, err := uc.users.GetUserByEmailAndRole(ctx, email, r)
	if errors.Is(err, domain.ErrNotFound) {
		uc.hasher.CompareDummy(password)
		uc.logger.Info("login rejected", "reason", "unknown user")
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("usecase: find user: %w", err)
	}

	if !uc.hasher.Compare(user.PasswordHash, password) {
		uc.logger.Info("login rejected", "reason", "wrong password", "user_id", user.ID)
		return nil, domain.ErrInvalidCredentials
	}

	snap := user.Snapshot()
	return &snap, nil
}
