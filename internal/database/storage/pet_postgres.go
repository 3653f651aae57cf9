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

const petColumns = `pets.id, pets.shelter_id, pets.name, pets.species, pets.breed, pets.age,
	pets.size, pets.temperament, pets.description, pets.photo, pets.status, pets.date_listed`

// PetStorage реализует ports.PetStorage поверх sqlx
type PetStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewPetStorage(db *sqlx.DB, logger *slog.Logger) *PetStorage {
	return &PetStorage{db: db, logger: logger}
}

// CreatePet сохраняет новое объявление
func (s *PetStorage) CreatePet(ctx context.Context, pet *domain.Pet) error {
	start := time.Now()

	stmt, err := s.db.PrepareNamedContext(ctx, `
		INSERT INTO pets (shelter_id, name, species, breed, age, size, temperament, description, photo, status, date_listed)
		VALUES (:shelter_id, :name, :species, :breed, :age, :size, :temperament, :description, :photo, :status, :date_listed)
		RETURNING id
	`)
	if err != nil {
		return fmt.Errorf("prepare insert pet: %w", err)
	}
	defer stmt.Close()

	if err := stmt.GetContext(ctx, &pet.ID, pet); err != nil {
		s.logger.Error("failed to insert pet", "shelter_id", pet.ShelterID, "error", err)
		return fmt.Errorf("insert pet: %w", translateError(err))
	}

	s.logger.Info("pet listed",
		"pet_id", pet.ID,
		"shelter_id", pet.ShelterID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// ListActivePets получает активные объявления с именем приюта, новые первыми
func (s *PetStorage) ListActivePets(ctx context.Context, limit int) ([]domain.PetListing, error) {
	start := time.Now()

	query := `
		SELECT ` + petColumns + `, users.username AS shelter_name
		FROM pets
		JOIN users ON pets.shelter_id = users.id
		WHERE pets.status = $1
		ORDER BY pets.date_listed DESC, pets.id DESC`
	args := []any{domain.PetActive}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	pets := []domain.PetListing{}
	if err := s.db.SelectContext(ctx, &pets, query, args...); err != nil {
		s.logger.Error("failed to list active pets", "error", err)
		return nil, fmt.Errorf("list active pets: %w", err)
	}

	s.logger.Debug("active pets listed",
		"count", len(pets),
		"limit", limit,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return pets, nil
}

// GetPetDetail получает объявление с контактами приюта
func (s *PetStorage) GetPetDetail(ctx context.Context, id int64) (*domain.PetDetail, error) {
	var pet domain.PetDetail
	err := s.db.GetContext(ctx, &pet, `
		SELECT `+petColumns+`,
			users.username AS shelter_name,
			users.email AS shelter_email,
			users.phone AS shelter_phone
		FROM pets
		JOIN users ON pets.shelter_id = users.id
		WHERE pets.id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		s.logger.Warn("pet not found by id", "pet_id", id)
		return nil, domain.ErrNotFound
	}
	if err != nil {
		s.logger.Error("failed to get pet by id", "pet_id", id, "error", err)
		return nil, fmt.Errorf("get pet detail: %w", err)
	}
	return &pet, nil
}

// GetOwnedPet получает объявление, только если оно принадлежит приюту
func (s *PetStorage) GetOwnedPet(ctx context.Context, id, shelterID int64) (*domain.Pet, error) {
	var pet domain.Pet
	err := s.db.GetContext(ctx, &pet,
		`SELECT `+petColumns+` FROM pets WHERE pets.id = $1 AND pets.shelter_id = $2`, id, shelterID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		s.logger.Error("failed to get owned pet", "pet_id", id, "shelter_id", shelterID, "error", err)
		return nil, fmt.Errorf("get owned pet: %w", err)
	}
	return &pet, nil
}

// ListPetsByShelter получает все объявления приюта, новые первыми
func (s *PetStorage) ListPetsByShelter(ctx context.Context, shelterID int64) ([]domain.Pet, error) {
	pets := []domain.Pet{}
	err := s.db.SelectContext(ctx, &pets, `
		SELECT `+petColumns+`
		FROM pets
		WHERE pets.shelter_id = $1
		ORDER BY pets.date_listed DESC, pets.id DESC`, shelterID)
	if err != nil {
		s.logger.Error("failed to list shelter pets", "shelter_id", shelterID, "error", err)
		return nil, fmt.Errorf("list shelter pets: %w", err)
	}
	return pets, nil
}

// UpdatePetStatus меняет статус; владение и текущий статус проверяются в том же запросе
func (s *PetStorage) UpdatePetStatus(ctx context.Context, id, shelterID int64, from, to domain.PetStatus) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE pets SET status = $1 WHERE id = $2 AND shelter_id = $3 AND status = $4`, to, id, shelterID, from)
	if err != nil {
		s.logger.Error("failed to update pet status", "pet_id", id, "error", err)
		return fmt.Errorf("update pet status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}

	s.logger.Info("pet status updated", "pet_id", id, "from", from, "to", to)
	return nil
}

// UpdatePet обновляет описательные поля объявления владельца
func (s *PetStorage) UpdatePet(ctx context.Context, pet *domain.Pet) error {
	res, err := s.db.NamedExecContext(ctx, `
		UPDATE pets SET
			name = :name,
			species = :species,
			breed = :breed,
			age = :age,
			size = :size,
			temperament = :temperament,
			description = :description,
			photo = :photo
		WHERE id = :id AND shelter_id = :shelter_id
	`, pet)
	if err != nil {
		s.logger.Error("failed to update pet", "pet_id", pet.ID, "error", err)
		return fmt.Errorf("update pet: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}

	s.logger.Info("pet updated", "pet_id", pet.ID)
	return nil
}
