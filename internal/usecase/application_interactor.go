package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/GoArmGo/PetAdoption/internal/core/ports"
	"github.com/GoArmGo/PetAdoption/internal/domain"
)

// applicationUseCase implements ApplicationUseCase
type applicationUseCase struct {
	pets   ports.PetStorage
	apps   ports.ApplicationStorage
	logger *slog.Logger
}

func NewApplicationUseCase(pets ports.PetStorage, apps ports.ApplicationStorage, logger *slog.Logger) ApplicationUseCase {
	return &applicationUseCase{pets: pets, apps: apps, logger: logger}
}

func (uc *applicationUseCase) ApplyForm(ctx context.Context, petID int64) (*domain.PetDetail, error) {
	return uc.pets.GetPetDetail(ctx, petID)
}

// Apply создаёт заявку в статусе submitted. Повтор отсекается хранилищем.
func (uc *applicationUseCase) Apply(ctx context.Context, petID, adopterID int64, in ApplyInput) (*domain.Application, error) {
	app := &domain.Application{
		PetID:     petID,
		AdopterID: adopterID,
		HomeSetup: strings.TrimSpace(in.HomeSetup),
		PriorPets: strings.TrimSpace(in.PriorPets),
		Status:    domain.ApplicationSubmitted,
	}
	if err := uc.apps.CreateApplication(ctx, app); err != nil {
		if errors.Is(err, domain.ErrAlreadyApplied) || errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("usecase: create application: %w", err)
	}
	return app, nil
}

func (uc *applicationUseCase) ListMine(ctx context.Context, adopterID int64) ([]domain.AdopterApplication, error) {
	apps, err := uc.apps.ListByAdopter(ctx, adopterID)
	if err != nil {
		return nil, fmt.Errorf("usecase: adopter applications: %w", err)
	}
	return apps, nil
}

func (uc *applicationUseCase) ListIncoming(ctx context.Context, shelterID int64) ([]domain.IncomingApplication, error) {
	apps, err := uc.apps.ListByShelter(ctx, shelterID)
	if err != nil {
		return nil, fmt.Errorf("usecase: incoming applications: %w", err)
	}
	return apps, nil
}

func (uc *applicationUseCase) Decide(ctx context.Context, id, shelterID int64, status string) error {
	next, err := domain.ParseDecision(status)
	if err != nil {
		return err
	}

	app, err := uc.apps.GetApplicationForShelter(ctx, id, shelterID)
	if err != nil {
		return err
	}
	if !app.Status.CanBecome(next) {
		return domain.ErrInvalidTransition
	}
	if app.Status == next {
		return nil
	}

	err = uc.apps.UpdateApplicationStatus(ctx, id, shelterID, app.Status, next)
	if errors.Is(err, domain.ErrNotFound) {
		// Заявку успели изменить между чтением и записью.
		return domain.ErrInvalidTransition
	}
	if err != nil {
		return fmt.Errorf("usecase: update application status: %w", err)
	}

	uc.logger.Info("application decided", "application_id", id, "shelter_id", shelterID, "status", next)
	return nil
}
