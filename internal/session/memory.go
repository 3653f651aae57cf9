package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/GoArmGo/PetAdoption/internal/domain"
)

type entry struct {
	user      domain.SessionUser
	expiresAt time.Time
}

// MemoryStore держит сессии в памяти процесса; при рестарте все пользователи разлогиниваются.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]entry
	ttl      time.Duration
	now      func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]entry),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *MemoryStore) Create(ctx context.Context, user domain.SessionUser) (string, error) {
	sid := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()
	s.sessions[sid] = entry{user: user, expiresAt: s.now().Add(s.ttl)}
	return sid, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*domain.SessionUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if !s.now().Before(e.expiresAt) {
		delete(s.sessions, id)
		return nil, domain.ErrSessionNotFound
	}
	user := e.user
	return &user, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// sweep удаляет истёкшие сессии, вызывается под s.mu
func (s *MemoryStore) sweep() {
	now := s.now()
	for id, e := range s.sessions {
		if !now.Before(e.expiresAt) {
			delete(s.sessions, id)
		}
	}
}
