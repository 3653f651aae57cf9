package handler

import (
	"errors"
	"net/http"

	"github.com/GoArmGo/PetAdoption/internal/domain"
	"github.com/GoArmGo/PetAdoption/internal/usecase"
	"github.com/GoArmGo/PetAdoption/internal/view"
)

func (h *Handler) setSessionCookie(w http.ResponseWriter, sid string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.opts.CookieName,
		Value:    sid,
		Path:     "/",
		MaxAge:   int(h.opts.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.opts.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.opts.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.opts.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "login", view.FormErrorData{Error: r.URL.Query().Get("error")})
}

// Login проверяет учётные данные и открывает сессию.
// Неизвестный пользователь и неверный пароль неразличимы для клиента.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectWith(w, r, "/login", "error", "invalid")
		return
	}

	user, err := h.accounts.Login(r.Context(), r.PostForm.Get("email"), r.PostForm.Get("password"), r.PostForm.Get("role"))
	if errors.Is(err, domain.ErrInvalidCredentials) {
		redirectWith(w, r, "/login", "error", "invalid")
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	sid, err := h.sessions.Create(r.Context(), *user)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.setSessionCookie(w, sid)

	h.logger.Info("user logged in", "user_id", user.ID, "role", user.Role)
	if user.Role == domain.RoleShelter {
		redirect(w, r, "/shelter/pets")
		return
	}
	redirect(w, r, "/")
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(h.opts.CookieName); err == nil && c.Value != "" {
		if err := h.sessions.Delete(r.Context(), c.Value); err != nil {
			h.logger.Warn("failed to delete session", "error", err)
		}
	}
	h.clearSessionCookie(w)
	redirect(w, r, "/")
}

func (h *Handler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "register", view.FormErrorData{Error: r.URL.Query().Get("error")})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectWith(w, r, "/register", "error", "invalid_input")
		return
	}
	f := r.PostForm

	_, err := h.accounts.Register(r.Context(), usecase.RegisterInput{
		Name:            f.Get("name"),
		Email:           f.Get("email"),
		Password:        f.Get("password"),
		PasswordConfirm: f.Get("password_confirm"),
		Role:            f.Get("role"),
		Phone:           f.Get("phone"),
		City:            f.Get("city"),
	})
	if err != nil {
		redirectWith(w, r, "/register", "error", h.registerErrorCode(r, err))
		return
	}
	redirect(w, r, "/login")
}

func (h *Handler) registerErrorCode(r *http.Request, err error) string {
	switch {
	case errors.Is(err, domain.ErrPasswordMismatch):
		return "password_mismatch"
	case errors.Is(err, domain.ErrInvalidRole):
		return "invalid_role"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, domain.ErrEmailTaken):
		return "email_exists"
	default:
		h.logger.Error("registration failed", "request_id", requestID(r.Context()), "error", err)
		return "server_error"
	}
}
