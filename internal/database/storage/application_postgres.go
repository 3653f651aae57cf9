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

// ApplicationStorage реализует ports.ApplicationStorage поверх sqlx
type ApplicationStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewApplicationStorage(db *sqlx.DB, logger *slog.Logger) *ApplicationStorage {
	return &ApplicationStorage{db: db, logger: logger}
}

// CreateApplication сохраняет заявку. Повтор пары (pet_id, adopter_id) отсекает
// ограничение applications_pet_adopter_key, а не предварительная проверка.
func (s *ApplicationStorage) CreateApplication(ctx context.Context, app *domain.Application) error {
	start := time.Now()

	stmt, err := s.db.PrepareNamedContext(ctx, `
		INSERT INTO applications (pet_id, adopter_id, home_setup, prior_pets, status)
		VALUES (:pet_id, :adopter_id, :home_setup, :prior_pets, :status)
		RETURNING id, created_at
	`)
	if err != nil {
		return fmt.Errorf("prepare insert application: %w", err)
	}
	defer stmt.Close()

	var out struct {
		ID        int64     `db:"id"`
		CreatedAt time.Time `db:"created_at"`
	}
	if err := stmt.GetContext(ctx, &out, app); err != nil {
		terr := translateError(err)
		if errors.Is(terr, domain.ErrAlreadyApplied) || errors.Is(terr, domain.ErrNotFound) {
			s.logger.Warn("application rejected by constraint",
				"pet_id", app.PetID,
				"adopter_id", app.AdopterID,
				"reason", terr,
			)
			return terr
		}
		s.logger.Error("failed to insert application", "pet_id", app.PetID, "error", err)
		return fmt.Errorf("insert application: %w", err)
	}
	app.ID = out.ID
	app.CreatedAt = out.CreatedAt

	s.logger.Info("application submitted",
		"application_id", app.ID,
		"pet_id", app.PetID,
		"adopter_id", app.AdopterID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

func (s *ApplicationStorage) GetApplicationStatus(ctx context.Context, petID, adopterID int64) (domain.ApplicationStatus, error) {
	var status domain.ApplicationStatus
	err := s.db.GetContext(ctx, &status,
		`SELECT status FROM applications WHERE pet_id = $1 AND adopter_id = $2`, petID, adopterID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrNotFound
	}
	if err != nil {
		s.logger.Error("failed to get application status", "pet_id", petID, "error", err)
		return "", fmt.Errorf("get application status: %w", err)
	}
	return status, nil
}

// ListByAdopter получает заявки усыновителя с именем питомца и приюта, новые первыми
func (s *ApplicationStorage) ListByAdopter(ctx context.Context, adopterID int64) ([]domain.AdopterApplication, error) {
	apps := []domain.AdopterApplication{}
	err := s.db.SelectContext(ctx, &apps, `
		SELECT
			applications.status,
			applications.created_at AS date_applied,
			pets.id AS pet_id,
			pets.name AS pet_name,
			users.name AS shelter_name
		FROM applications
		JOIN pets ON applications.pet_id = pets.id
		JOIN users ON pets.shelter_id = users.id
		WHERE applications.adopter_id = $1
		ORDER BY applications.created_at DESC, applications.id DESC`, adopterID)
	if err != nil {
		s.logger.Error("failed to list adopter applications", "adopter_id", adopterID, "error", err)
		return nil, fmt.Errorf("list adopter applications: %w", err)
	}
	return apps, nil
}

// ListByShelter получает заявки на питомцев приюта с данными усыновителя
func (s *ApplicationStorage) ListByShelter(ctx context.Context, shelterID int64) ([]domain.IncomingApplication, error) {
	apps := []domain.IncomingApplication{}
	err := s.db.SelectContext(ctx, &apps, `
		SELECT
			applications.id,
			applications.status,
			applications.home_setup,
			applications.prior_pets,
			applications.created_at,
			pets.id AS pet_id,
			pets.name AS pet_name,
			pets.species AS pet_species,
			users.name AS adopter_name,
			users.email AS adopter_email
		FROM applications
		JOIN pets ON applications.pet_id = pets.id
		JOIN users ON applications.adopter_id = users.id
		WHERE pets.shelter_id = $1
		ORDER BY applications.created_at DESC, applications.id DESC`, shelterID)
	if err != nil {
		s.logger.Error("failed to list incoming applications", "shelter_id", shelterID, "error", err)
		return nil, fmt.Errorf("list incoming applications: %w", err)
	}
	return apps, nil
}

// GetApplicationForShelter возвращает заявку, если её питомец принадлежит приюту
func (s *ApplicationStorage) GetApplicationForShelter(ctx context.Context, id, shelterID int64) (*domain.Application, error) {
	var app domain.Application
	err := s.db.GetContext(ctx, &app, `
		SELECT a.id, a.pet_id, a.adopter_id, a.home_setup, a.prior_pets, a.status, a.created_at
		FROM applications a
		JOIN pets p ON p.id = a.pet_id
		WHERE a.id = $1 AND p.shelter_id = $2`, id, shelterID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		s.logger.Error("failed to get application", "application_id", id, "error", err)
		return nil, fmt.Errorf("get application: %w", err)
	}
	return &app, nil
}

// UpdateApplicationStatus меняет статус одним UPDATE с проверкой владения и текущего статуса
func (s *ApplicationStorage) UpdateApplicationStatus(ctx context.Context, id, shelterID int64, from, to domain.ApplicationStatus) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE applications a
		SET status = $1
		FROM pets p
		WHERE a.pet_id = p.id
		  AND a.id = $2
		  AND p.shelter_id = $3
		  AND a.status = $4`, to, id, shelterID, from)
	if err != nil {
		s.logger.Error("failed to update application status", "application_id", id, "error", err)
		return fmt.Errorf("update application status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}

	s.logger.Info("application status updated",
		"application_id", id,
		"shelter_id", shelterID,
		"from", from,
		"to", to,
	)
	return nil
}
