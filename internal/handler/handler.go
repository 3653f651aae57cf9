package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/GoArmGo/PetAdoption/internal/core/ports"
	"github.com/GoArmGo/PetAdoption/internal/domain"
	"github.com/GoArmGo/PetAdoption/internal/usecase"
	"github.com/GoArmGo/PetAdoption/internal/view"
)

// Options — параметры HTTP-слоя, не относящиеся к бизнес-логике.
type Options struct {
	CookieName     string
	CookieSecure   bool
	SessionTTL     time.Duration
	MaxUploadBytes int64
	// Каталог, который раздаётся по /images/*. Пусто — маршрут не регистрируется.
	ImagesDir      string
	RequestTimeout time.Duration
}

// Handler — обработчик HTTP-запросов приложения.
type Handler struct {
	accounts     usecase.AccountUseCase
	pets         usecase.PetUseCase
	applications usecase.ApplicationUseCase
	sessions     ports.SessionStore
	renderer     *view.Renderer
	opts         Options
	logger       *slog.Logger
}

// NewHandler создаёт новый экземпляр Handler.
func NewHandler(
	accounts usecase.AccountUseCase,
	pets usecase.PetUseCase,
	applications usecase.ApplicationUseCase,
	sessions ports.SessionStore,
	renderer *view.Renderer,
	opts Options,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		accounts:     accounts,
		pets:         pets,
		applications: applications,
		sessions:     sessions,
		renderer:     renderer,
		opts:         opts,
		logger:       logger,
	}
}

// render отрисовывает страницу от имени текущего пользователя.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	page := view.Page{User: currentUser(r.Context()), Data: data}
	if err := h.renderer.Render(w, status, name, page); err != nil {
		h.logger.Error("failed to render page", "page", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.render(w, r, status, "error", view.ErrorData{Title: http.StatusText(status), Message: message})
}

// notFound одинаков для несуществующих и чужих записей.
func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.renderError(w, r, http.StatusNotFound, "The page you are looking for does not exist.")
}

// serverError логирует полную ошибку, клиенту отдаётся только общий текст.
func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", requestID(r.Context()),
		"error", err,
	)
	h.renderError(w, r, http.StatusInternalServerError, "Something went wrong. Please try again later.")
}

// fail переводит доменную ошибку в ответ: ErrNotFound -> 404, остальное -> 500.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		h.notFound(w, r)
		return
	}
	h.serverError(w, r, err)
}

func redirect(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// redirectWith добавляет к пути один query-параметр.
func redirectWith(w http.ResponseWriter, r *http.Request, path, key, value string) {
	redirect(w, r, path+"?"+url.Values{key: {value}}.Encode())
}

// pathID разбирает числовой {id}; некорректный id трактуется как отсутствующая запись.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
