package storage

import (
	"errors"

	"github.com/lib/pq"

	"github.com/GoArmGo/PetAdoption/internal/domain"
)

const (
	pqUniqueViolation     = pq.ErrorCode("23505")
	pqForeignKeyViolation = pq.ErrorCode("23503")
)

// ограничения из миграции 000001_init
const (
	constraintUserEmail       = "users_email_key"
	constraintApplicationPair = "applications_pet_adopter_key"
)

// translateError переводит ошибки нарушений ограничений PostgreSQL в доменные ошибки.
// Остальные ошибки возвращаются как есть.
func translateError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch pqErr.Code {
	case pqUniqueViolation:
		switch pqErr.Constraint {
		case constraintUserEmail:
			return domain.ErrEmailTaken
		case constraintApplicationPair:
			return domain.ErrAlreadyApplied
		}
	case pqForeignKeyViolation:
		return domain.ErrNotFound
	}
	return err
}
