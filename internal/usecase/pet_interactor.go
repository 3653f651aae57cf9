package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/GoArmGo/PetAdoption/internal/core/ports"
	"github.com/GoArmGo/PetAdoption/internal/domain"
)

// FeaturedCount — сколько объявлений показывается на главной.
const FeaturedCount = 3

// petUseCase implements PetUseCase
type petUseCase struct {
	pets   ports.PetStorage
	apps   ports.ApplicationStorage
	files  ports.FileStorage
	logger *slog.Logger
	now    func() time.Time
}

func NewPetUseCase(pets ports.PetStorage, apps ports.ApplicationStorage, files ports.FileStorage, logger *slog.Logger) PetUseCase {
	return &petUseCase{pets: pets, apps: apps, files: files, logger: logger, now: time.Now}
}

func (uc *petUseCase) Featured(ctx context.Context) ([]domain.PetListing, error) {
	pets, err := uc.pets.ListActivePets(ctx, FeaturedCount)
	if err != nil {
		return nil, fmt.Errorf("usecase: featured pets: %w", err)
	}
	return pets, nil
}

func (uc *petUseCase) ListActive(ctx context.Context) ([]domain.PetListing, error) {
	pets, err := uc.pets.ListActivePets(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("usecase: active pets: %w", err)
	}
	return pets, nil
}

// Details возвращает карточку питомца; усыновителю добавляется статус его заявки.
func (uc *petUseCase) Details(ctx context.Context, id int64, viewer *domain.SessionUser) (*PetView, error) {
	pet, err := uc.pets.GetPetDetail(ctx, id)
	if err != nil {
		return nil, err
	}

	view := &PetView{Pet: pet}
	if viewer.Is(domain.RoleAdopter) {
		status, err := uc.apps.GetApplicationStatus(ctx, id, viewer.ID)
		switch {
		case err == nil:
			view.ApplicationStatus = status
		case !errors.Is(err, domain.ErrNotFound):
			return nil, fmt.Errorf("usecase: application status: %w", err)
		}
	}
	return view, nil
}

func (uc *petUseCase) ListShelterPets(ctx context.Context, shelterID int64) ([]domain.Pet, error) {
	pets, err := uc.pets.ListPetsByShelter(ctx, shelterID)
	if err != nil {
		return nil, fmt.Errorf("usecase: shelter pets: %w", err)
	}
	return pets, nil
}

func (uc *petUseCase) GetOwnedPet(ctx context.Context, id, shelterID int64) (*domain.Pet, error) {
	return uc.pets.GetOwnedPet(ctx, id, shelterID)
}

func (uc *petUseCase) CreateListing(ctx context.Context, shelterID int64, in PetInput, photo *PhotoUpload) (*domain.Pet, error) {
	pet := &domain.Pet{
		ShelterID:  shelterID,
		Photo:      domain.PlaceholderPhoto,
		Status:     domain.PetActive,
		DateListed: today(uc.now()),
	}
	if err := applyPetInput(pet, in); err != nil {
		return nil, err
	}

	if photo != nil {
		url, err := uc.savePhoto(ctx, photo)
		if err != nil {
			return nil, err
		}
		pet.Photo = url
	}

	if err := uc.pets.CreatePet(ctx, pet); err != nil {
		uc.discardPhoto(ctx, photo, pet.Photo)
		return nil, fmt.Errorf("usecase: create pet: %w", err)
	}
	uc.logger.Info("listing created", "pet_id", pet.ID, "shelter_id", shelterID)
	return pet, nil
}

// UpdateListing меняет описательные поля; статус и дата публикации не трогаются.
// Без нового файла фото остаётся прежним.
func (uc *petUseCase) UpdateListing(ctx context.Context, id, shelterID int64, in PetInput, photo *PhotoUpload) (*domain.Pet, error) {
	pet, err := uc.pets.GetOwnedPet(ctx, id, shelterID)
	if err != nil {
		return nil, err
	}
	if err := applyPetInput(pet, in); err != nil {
		return nil, err
	}

	if photo != nil {
		url, err := uc.savePhoto(ctx, photo)
		if err != nil {
			return nil, err
		}
		pet.Photo = url
	}

	if err := uc.pets.UpdatePet(ctx, pet); err != nil {
		uc.discardPhoto(ctx, photo, pet.Photo)
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("usecase: update pet: %w", err)
	}
	return pet, nil
}

func (uc *petUseCase) ToggleStatus(ctx context.Context, id, shelterID int64) (domain.PetStatus, error) {
	pet, err := uc.pets.GetOwnedPet(ctx, id, shelterID)
	if err != nil {
		return "", err
	}

	next := pet.Status.Toggled()
	if err := uc.pets.UpdatePetStatus(ctx, id, shelterID, pet.Status, next); err != nil {
		// запись есть и принадлежит приюту, значит статус успел смениться параллельно
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrInvalidTransition
		}
		return "", fmt.Errorf("usecase: toggle pet status: %w", err)
	}
	return next, nil
}

func (uc *petUseCase) savePhoto(ctx context.Context, photo *PhotoUpload) (string, error) {
	if !strings.HasPrefix(photo.ContentType, "image/") {
		return "", domain.ErrUnsupportedPhoto
	}
	url, err := uc.files.SavePhoto(ctx, photo.Filename, photo.Body, photo.ContentType)
	if err != nil {
		return "", fmt.Errorf("usecase: save photo: %w", err)
	}
	return url, nil
}

// discardPhoto удаляет только что загруженное фото, если объявление не сохранилось.
func (uc *petUseCase) discardPhoto(ctx context.Context, photo *PhotoUpload, url string) {
	if photo == nil {
		return
	}
	if err := uc.files.DeletePhoto(context.WithoutCancel(ctx), url); err != nil {
		uc.logger.Warn("orphaned photo left in storage", "url", url, "error", err)
	}
}

// applyPetInput проверяет поля формы и переносит их в pet.
func applyPetInput(pet *domain.Pet, in PetInput) error {
	name := strings.TrimSpace(in.Name)
	species := strings.TrimSpace(in.Species)
	if name == "" || species == "" {
		return domain.ErrInvalidInput
	}

	age := 0
	if s := strings.TrimSpace(in.Age); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return domain.ErrInvalidInput
		}
		age = n
	}

	pet.Name = name
	pet.Species = species
	pet.Breed = strings.TrimSpace(in.Breed)
	pet.Age = age
	pet.Size = strings.TrimSpace(in.Size)
	pet.Temperament = strings.TrimSpace(in.Temperament)
	pet.Description = strings.TrimSpace(in.Description)
	return nil
}

func today(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
