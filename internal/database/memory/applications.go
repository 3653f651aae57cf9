package memory

import (
	"context"

	"github.com/GoArmGo/PetAdoption/internal/domain"
)

type ApplicationStorage struct {
	db *DB
}

func NewApplicationStorage(db *DB) *ApplicationStorage {
	return &ApplicationStorage{db: db}
}

func (s *ApplicationStorage) CreateApplication(ctx context.Context, app *domain.Application) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.pets[app.PetID]; !ok {
		return domain.ErrNotFound
	}
	if _, ok := s.db.users[app.AdopterID]; !ok {
		return domain.ErrNotFound
	}
	for _, a := range s.db.apps {
		if a.PetID == app.PetID && a.AdopterID == app.AdopterID {
			return domain.ErrAlreadyApplied
		}
	}

	s.db.nextAppID++
	app.ID = s.db.nextAppID
	app.CreatedAt = s.db.now()
	s.db.apps[app.ID] = *app
	return nil
}

func (s *ApplicationStorage) GetApplicationStatus(ctx context.Context, petID, adopterID int64) (domain.ApplicationStatus, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	for _, a := range s.db.apps {
		if a.PetID == petID && a.AdopterID == adopterID {
			return a.Status, nil
		}
	}
	return "", domain.ErrNotFound
}

func (s *ApplicationStorage) ListByAdopter(ctx context.Context, adopterID int64) ([]domain.AdopterApplication, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	mine := s.filter(func(a domain.Application) bool { return a.AdopterID == adopterID })

	out := make([]domain.AdopterApplication, 0, len(mine))
	for _, a := range mine {
		pet := s.db.pets[a.PetID]
		out = append(out, domain.AdopterApplication{
			PetID:       pet.ID,
			PetName:     pet.Name,
			ShelterName: s.db.users[pet.ShelterID].Name,
			Status:      a.Status,
			DateApplied: a.CreatedAt,
		})
	}
	return out, nil
}

func (s *ApplicationStorage) ListByShelter(ctx context.Context, shelterID int64) ([]domain.IncomingApplication, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	incoming := s.filter(func(a domain.Application) bool { return s.db.pets[a.PetID].ShelterID == shelterID })

	out := make([]domain.IncomingApplication, 0, len(incoming))
	for _, a := range incoming {
		pet := s.db.pets[a.PetID]
		adopter := s.db.users[a.AdopterID]
		out = append(out, domain.IncomingApplication{
			ID:           a.ID,
			Status:       a.Status,
			HomeSetup:    a.HomeSetup,
			PriorPets:    a.PriorPets,
			PetID:        pet.ID,
			PetName:      pet.Name,
			PetSpecies:   pet.Species,
			AdopterName:  adopter.Name,
			AdopterEmail: adopter.Email,
			CreatedAt:    a.CreatedAt,
		})
	}
	return out, nil
}

func (s *ApplicationStorage) GetApplicationForShelter(ctx context.Context, id, shelterID int64) (*domain.Application, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	a, ok := s.db.apps[id]
	if !ok || s.db.pets[a.PetID].ShelterID != shelterID {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}

func (s *ApplicationStorage) UpdateApplicationStatus(ctx context.Context, id, shelterID int64, from, to domain.ApplicationStatus) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	a, ok := s.db.apps[id]
	if !ok || s.db.pets[a.PetID].ShelterID != shelterID || a.Status != from {
		return domain.ErrNotFound
	}
	a.Status = to
	s.db.apps[id] = a
	return nil
}

// filter вызывается под блокировкой.
func (s *ApplicationStorage) filter(keep func(domain.Application) bool) []domain.Application {
	out := make([]domain.Application, 0)
	for _, a := range s.db.apps {
		if keep(a) {
			out = append(out, a)
		}
	}
	newestAppsFirst(out)
	return out
}
