package domain

import (
	"strings"
	"time"
)

// ApplicationStatus определяет статус заявки на усыновление.
type ApplicationStatus string

const (
	ApplicationSubmitted ApplicationStatus = "submitted"
	ApplicationApproved  ApplicationStatus = "approved"
	ApplicationDeclined  ApplicationStatus = "declined"
)

// ParseDecision принимает только статусы, которые может выставить приют.
func ParseDecision(s string) (ApplicationStatus, error) {
	switch st := ApplicationStatus(strings.TrimSpace(s)); st {
	case ApplicationApproved, ApplicationDeclined:
		return st, nil
	default:
		return "", ErrInvalidStatus
	}
}

// CanBecome сообщает, можно ли перевести заявку из s в next.
// Решение принимается только по submitted; повтор текущего статуса допустим.
func (s ApplicationStatus) CanBecome(next ApplicationStatus) bool {
	if s == next {
		return true
	}
	return s == ApplicationSubmitted && (next == ApplicationApproved || next == ApplicationDeclined)
}

// Application представляет заявку усыновителя,
// соответствует таблице applications в бд
type Application struct {
	ID        int64             `json:"id" db:"id"`
	PetID     int64             `json:"pet_id" db:"pet_id"`
	AdopterID int64             `json:"adopter_id" db:"adopter_id"`
	HomeSetup string            `json:"home_setup" db:"home_setup"`
	PriorPets string            `json:"prior_pets" db:"prior_pets"`
	Status    ApplicationStatus `json:"status" db:"status"`
	CreatedAt time.Time         `json:"created_at" db:"created_at"`
}

// AdopterApplication — строка списка "мои заявки".
type AdopterApplication struct {
	PetID       int64             `json:"pet_id" db:"pet_id"`
	PetName     string            `json:"pet_name" db:"pet_name"`
	ShelterName string            `json:"shelter_name" db:"shelter_name"`
	Status      ApplicationStatus `json:"status" db:"status"`
	DateApplied time.Time         `json:"date_applied" db:"date_applied"`
}

// IncomingApplication — строка списка входящих заявок приюта.
type IncomingApplication struct {
	ID           int64             `json:"id" db:"id"`
	Status       ApplicationStatus `json:"status" db:"status"`
	HomeSetup    string            `json:"home_setup" db:"home_setup"`
	PriorPets    string            `json:"prior_pets" db:"prior_pets"`
	PetID        int64             `json:"pet_id" db:"pet_id"`
	PetName      string            `json:"pet_name" db:"pet_name"`
	PetSpecies   string            `json:"pet_species" db:"pet_species"`
	AdopterName  string            `json:"adopter_name" db:"adopter_name"`
	AdopterEmail string            `json:"adopter_email" db:"adopter_email"`
	CreatedAt    time.Time         `json:"created_at" db:"created_at"`
}
