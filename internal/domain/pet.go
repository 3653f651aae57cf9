package domain

import "time"

// PlaceholderPhoto используется, когда приют не загрузил фото.
const PlaceholderPhoto = "/images/no_photo.jpg"

// PetStatus определяет статус объявления.
type PetStatus string

const (
	PetActive  PetStatus = "active"
	PetAdopted PetStatus = "adopted"
)

// Toggled возвращает противоположный статус.
func (s PetStatus) Toggled() PetStatus {
	if s == PetActive {
		return PetAdopted
	}
	return PetActive
}

// Pet представляет объявление о животном,
// соответствует таблице pets в бд
type Pet struct {
	ID          int64     `json:"id" db:"id"`
	ShelterID   int64     `json:"shelter_id" db:"shelter_id"`
	Name        string    `json:"name" db:"name"`
	Species     string    `json:"species" db:"species"`
	Breed       string    `json:"breed" db:"breed"`
	Age         int       `json:"age" db:"age"`
	Size        string    `json:"size" db:"size"`
	Temperament string    `json:"temperament" db:"temperament"`
	Description string    `json:"description" db:"description"`
	Photo       string    `json:"photo" db:"photo"`
	Status      PetStatus `json:"status" db:"status"`
	DateListed  time.Time `json:"date_listed" db:"date_listed"`
}

// PetListing — объявление вместе с именем приюта (для публичных списков).
type PetListing struct {
	Pet
	ShelterName string `json:"shelter_name" db:"shelter_name"`
}

// PetDetail — объявление с контактами приюта.
type PetDetail struct {
	Pet
	ShelterName  string `json:"shelter_name" db:"shelter_name"`
	ShelterEmail string `json:"shelter_email" db:"shelter_email"`
	ShelterPhone string `json:"shelter_phone" db:"shelter_phone"`
}
