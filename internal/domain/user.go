// internal/domain/user.go
package domain

import (
	"strings"
	"time"
)

// Role определяет роль пользователя в системе.
type Role string

const (
	RoleAdopter Role = "adopter"
	RoleShelter Role = "shelter"
)

// ParseRole проверяет значение роли, пришедшее из формы регистрации.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.TrimSpace(s)); r {
	case RoleAdopter, RoleShelter:
		return r, nil
	default:
		return "", ErrInvalidRole
	}
}

// User представляет модель пользователя в системе.
// Соответствует таблице 'users' в базе данных.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         Role      `json:"role" db:"role"`
	Phone        string    `json:"phone" db:"phone"`
	City         string    `json:"city" db:"city"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Snapshot копирует публичные поля пользователя для хранения в сессии.
func (u User) Snapshot() SessionUser {
	return SessionUser{
		ID:       u.ID,
		Name:     u.Name,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
		Phone:    u.Phone,
		City:     u.City,
	}
}

// SessionUser — копия пользователя, привязанная к сессии в момент логина.
// Не обновляется до следующего входа.
type SessionUser struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	Phone    string `json:"phone"`
	City     string `json:"city"`
}

func (u *SessionUser) Is(role Role) bool {
	return u != nil && u.Role == role
}

// UsernameFromEmail возвращает часть email до '@'.
// Уникальность не гарантируется.
func UsernameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}
