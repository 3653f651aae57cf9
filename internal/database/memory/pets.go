package memory

import (
	"context"

	"github.com/GoArmGo/PetAdoption/internal/domain"
)

type PetStorage struct {
	db *DB
}

func NewPetStorage(db *DB) *PetStorage {
	return &PetStorage{db: db}
}

func (s *PetStorage) CreatePet(ctx context.Context, pet *domain.Pet) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.users[pet.ShelterID]; !ok {
		return domain.ErrNotFound
	}

	s.db.nextPetID++
	pet.ID = s.db.nextPetID
	s.db.pets[pet.ID] = *pet
	return nil
}

func (s *PetStorage) ListActivePets(ctx context.Context, limit int) ([]domain.PetListing, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	active := make([]domain.Pet, 0, len(s.db.pets))
	for _, p := range s.db.pets {
		if p.Status == domain.PetActive {
			active = append(active, p)
		}
	}
	newestPetsFirst(active)
	if limit > 0 && len(active) > limit {
		active = active[:limit]
	}

	out := make([]domain.PetListing, 0, len(active))
	for _, p := range active {
		out = append(out, domain.PetListing{Pet: p, ShelterName: s.db.users[p.ShelterID].Username})
	}
	return out, nil
}

func (s *PetStorage) GetPetDetail(ctx context.Context, id int64) (*domain.PetDetail, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	p, ok := s.db.pets[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	shelter := s.db.users[p.ShelterID]
	return &domain.PetDetail{
		Pet:          p,
		ShelterName:  shelter.Username,
		ShelterEmail: shelter.Email,
		ShelterPhone: shelter.Phone,
	}, nil
}

func (s *PetStorage) GetOwnedPet(ctx context.Context, id, shelterID int64) (*domain.Pet, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	p, ok := s.db.pets[id]
	if !ok || p.ShelterID != shelterID {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (s *PetStorage) ListPetsByShelter(ctx context.Context, shelterID int64) ([]domain.Pet, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	out := make([]domain.Pet, 0)
	for _, p := range s.db.pets {
		if p.ShelterID == shelterID {
			out = append(out, p)
		}
	}
	newestPetsFirst(out)
	return out, nil
}

func (s *PetStorage) UpdatePetStatus(ctx context.Context, id, shelterID int64, from, to domain.PetStatus) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	p, ok := s.db.pets[id]
	if !ok || p.ShelterID != shelterID || p.Status != from {
		return domain.ErrNotFound
	}
	p.Status = to
	s.db.pets[id] = p
	return nil
}

func (s *PetStorage) UpdatePet(ctx context.Context, pet *domain.Pet) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	p, ok := s.db.pets[pet.ID]
	if !ok || p.ShelterID != pet.ShelterID {
		return domain.ErrNotFound
	}
	p.Name = pet.Name
	p.Species = pet.Species
	p.Breed = pet.Breed
	p.Age = pet.Age
	p.Size = pet.Size
	p.Temperament = pet.Temperament
	p.Description = pet.Description
	p.Photo = pet.Photo
	s.db.pets[pet.ID] = p
	return nil
}
