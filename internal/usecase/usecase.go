package usecase

import (
	"context"
	"io"

	"github.com/GoArmGo/PetAdoption/internal/domain"
)

// RegisterInput — поля формы регистрации как они пришли от клиента.
type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	PasswordConfirm string
	Role            string
	Phone           string
	City            string
}

// PetInput — описательные поля объявления из формы приюта.
type PetInput struct {
	Name        string
	Species     string
	Breed       string
	Age         string
	Size        string
	Temperament string
	Description string
}

// PhotoUpload — загруженный файл; ContentType определяется по содержимому.
type PhotoUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

type ApplyInput struct {
	HomeSetup string
	PriorPets string
}

// PetView — карточка питомца для конкретного зрителя.
type PetView struct {
	Pet *domain.PetDetail
	// Статус заявки текущего усыновителя, пусто если заявки нет или зритель не усыновитель.
	ApplicationStatus domain.ApplicationStatus
}

// AccountUseCase — регистрация и вход.
type AccountUseCase interface {
	// Register возвращает domain.ErrPasswordMismatch, domain.ErrInvalidRole,
	// domain.ErrInvalidInput или domain.ErrEmailTaken для отклонённых форм.
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)

	// Login возвращает снимок для сессии или domain.ErrInvalidCredentials,
	// одинаково для неизвестного пользователя и неверного пароля.
	Login(ctx context.Context, email, password, role string) (*domain.SessionUser, error)
}

// PetUseCase — публичный каталог и управление объявлениями приюта
type PetUseCase interface {
	Featured(ctx context.Context) ([]domain.PetListing, error)
	ListActive(ctx context.Context) ([]domain.PetListing, error)
	Details(ctx context.Context, id int64, viewer *domain.SessionUser) (*PetView, error)

	ListShelterPets(ctx context.Context, shelterID int64) ([]domain.Pet, error)
	// GetOwnedPet отдаёт объявление для формы редактирования.
	GetOwnedPet(ctx context.Context, id, shelterID int64) (*domain.Pet, error)
	CreateListing(ctx context.Context, shelterID int64, in PetInput, photo *PhotoUpload) (*domain.Pet, error)
	UpdateListing(ctx context.Context, id, shelterID int64, in PetInput, photo *PhotoUpload) (*domain.Pet, error)
	// ToggleStatus переключает active <-> adopted и возвращает новый статус.
	ToggleStatus(ctx context.Context, id, shelterID int64) (domain.PetStatus, error)
}

// ApplicationUseCase — заявки на усыновление.
type ApplicationUseCase interface {
	// ApplyForm проверяет, что питомец существует, и возвращает его для формы заявки.
	ApplyForm(ctx context.Context, petID int64) (*domain.PetDetail, error)
	Apply(ctx context.Context, petID, adopterID int64, in ApplyInput) (*domain.Application, error)
	ListMine(ctx context.Context, adopterID int64) ([]domain.AdopterApplication, error)
	ListIncoming(ctx context.Context, shelterID int64) ([]domain.IncomingApplication, error)
	// Decide выставляет approved/declined; чужая заявка даёт domain.ErrNotFound,
	// недопустимый переход domain.ErrInvalidTransition.
	Decide(ctx context.Context, id, shelterID int64, status string) error
}
