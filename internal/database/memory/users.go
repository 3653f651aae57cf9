package memory

import (
	"context"

	"github.com/GoArmGo/PetAdoption/internal/domain"
)

type UserStorage struct {
	db *DB
}

func NewUserStorage(db *DB) *UserStorage {
	return &UserStorage{db: db}
}

func (s *UserStorage) CreateUser(ctx context.Context, user *domain.User) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, u := range s.db.users {
		if u.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}

	s.db.nextUserID++
	user.ID = s.db.nextUserID
	user.CreatedAt = s.db.now()
	s.db.users[user.ID] = *user
	return nil
}

func (s *UserStorage) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	for _, u := range s.db.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *UserStorage) GetUserByEmailAndRole(ctx context.Context, email string, role domain.Role) (*domain.User, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	for _, u := range s.db.users {
		if u.Email == email && u.Role == role {
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}
