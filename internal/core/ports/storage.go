package ports

import (
	"context"
	"io"

	"github.com/GoArmGo/PetAdoption/internal/domain"
)

// UserStorage определяет методы для взаимодействия с хранилищем пользователей
type UserStorage interface {
	// CreateUser сохраняет пользователя и проставляет ему ID.
	// Нарушение уникальности email возвращается как domain.ErrEmailTaken.
	CreateUser(ctx context.Context, user *domain.User) error

	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetUserByEmailAndRole ищет пользователя по паре (email, role).
	GetUserByEmailAndRole(ctx context.Context, email string, role domain.Role) (*domain.User, error)
}

// PetStorage определяет методы для взаимодействия с хранилищем объявлений
type PetStorage interface {
	CreatePet(ctx context.Context, pet *domain.Pet) error

	// ListActivePets возвращает активные объявления, новые первыми.
	// limit <= 0 означает без ограничения.
	ListActivePets(ctx context.Context, limit int) ([]domain.PetListing, error)

	GetPetDetail(ctx context.Context, id int64) (*domain.PetDetail, error)

	// GetOwnedPet возвращает domain.ErrNotFound и для чужого, и для несуществующего объявления.
	GetOwnedPet(ctx context.Context, id, shelterID int64) (*domain.Pet, error)

	ListPetsByShelter(ctx context.Context, shelterID int64) ([]domain.Pet, error)

	// UpdatePetStatus меняет статус только если текущий равен from; иначе domain.ErrNotFound.
	UpdatePetStatus(ctx context.Context, id, shelterID int64, from, to domain.PetStatus) error

	// UpdatePet обновляет описательные поля; пишет только если pet.ShelterID владеет объявлением.
	UpdatePet(ctx context.Context, pet *domain.Pet) error
}

// ApplicationStorage определяет методы для работы с заявками
type ApplicationStorage interface {
	// CreateApplication возвращает domain.ErrAlreadyApplied при повторной заявке
	// и domain.ErrNotFound, если объявления нет.
	CreateApplication(ctx context.Context, app *domain.Application) error

	GetApplicationStatus(ctx context.Context, petID, adopterID int64) (domain.ApplicationStatus, error)

	ListByAdopter(ctx context.Context, adopterID int64) ([]domain.AdopterApplication, error)

	ListByShelter(ctx context.Context, shelterID int64) ([]domain.IncomingApplication, error)

	// GetApplicationForShelter возвращает заявку, только если её питомец принадлежит приюту.
	GetApplicationForShelter(ctx context.Context, id, shelterID int64) (*domain.Application, error)

	// UpdateApplicationStatus меняет статус одним условным UPDATE:
	// заявка должна принадлежать приюту и находиться в статусе from.
	UpdateApplicationStatus(ctx context.Context, id, shelterID int64, from, to domain.ApplicationStatus) error
}

// FileStorage определяет интерфейс для работы с файловым хранилищем (диск, AWS S3, MinIO)
type FileStorage interface {
	// SavePhoto сохраняет файл и возвращает стабильную ссылку на него.
	SavePhoto(ctx context.Context, filename string, body io.Reader, contentType string) (string, error)
	// DeletePhoto удаляет файл по ссылке, которую вернул SavePhoto.
	DeletePhoto(ctx context.Context, url string) error
}

// SessionStore хранит соответствие session id -> снимок пользователя.
type SessionStore interface {
	Create(ctx context.Context, user domain.SessionUser) (string, error)
	// Get возвращает domain.ErrSessionNotFound для неизвестной или истёкшей сессии.
	Get(ctx context.Context, id string) (*domain.SessionUser, error)
	Delete(ctx context.Context, id string) error
}
