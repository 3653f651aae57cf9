// Package memory — in-process реализация хранилищ для режима разработки и тестов.
// Ограничения уникальности и внешние ключи воспроизводят схему PostgreSQL.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/GoArmGo/PetAdoption/internal/domain"
)

// DB — общее состояние для всех хранилищ, чтобы работали "join"-запросы.
type DB struct {
	mu    sync.RWMutex
	users map[int64]domain.User
	pets  map[int64]domain.Pet
	apps  map[int64]domain.Application

	nextUserID int64
	nextPetID  int64
	nextAppID  int64

	now func() time.Time
}

func NewDB() *DB {
	return &DB{
		users: make(map[int64]domain.User),
		pets:  make(map[int64]domain.Pet),
		apps:  make(map[int64]domain.Application),
		now:   time.Now,
	}
}

// newestPetsFirst сортирует по date_listed DESC, id DESC — как ORDER BY в postgres-хранилище.
func newestPetsFirst(pets []domain.Pet) {
	sort.Slice(pets, func(i, j int) bool {
		if !pets[i].DateListed.Equal(pets[j].DateListed) {
			return pets[i].DateListed.After(pets[j].DateListed)
		}
		return pets[i].ID > pets[j].ID
	})
}

func newestAppsFirst(apps []domain.Application) {
	sort.Slice(apps, func(i, j int) bool {
		if !apps[i].CreatedAt.Equal(apps[j].CreatedAt) {
			return apps[i].CreatedAt.After(apps[j].CreatedAt)
		}
		return apps[i].ID > apps[j].ID
	})
}
