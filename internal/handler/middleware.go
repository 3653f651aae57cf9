package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/GoArmGo/PetAdoption/internal/domain"
)

type ctxKey int

const userKey ctxKey = iota

// RequestLogger — middleware для логирования HTTP-запросов.
func RequestLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Оборачиваем ResponseWriter, чтобы знать статус
			ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(ww, r)

			duration := time.Since(start)
			logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.statusCode,
				"duration_ms", duration.Milliseconds(),
				"request_id", requestID(r.Context()),
			)
		})
	}
}

// responseWriter нужен, чтобы перехватывать код ответа
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// LoadSession кладёт снимок пользователя в контекст, если cookie указывает на живую сессию.
// Неизвестная сессия не ошибка: запрос просто идёт анонимно. Сбой хранилища даёт 500.
func (h *Handler) LoadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(h.opts.CookieName)
		if err != nil || c.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		user, err := h.sessions.Get(r.Context(), c.Value)
		switch {
		case err == nil:
			r = r.WithContext(context.WithValue(r.Context(), userKey, user))
		case errors.Is(err, domain.ErrSessionNotFound):
			h.clearSessionCookie(w)
		default:
			h.serverError(w, r, fmt.Errorf("load session: %w", err))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole пропускает только пользователей с ролью role, остальных отправляет на /login.
func RequireRole(role domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !currentUser(r.Context()).Is(role) {
				redirect(w, r, "/login")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func currentUser(ctx context.Context) *domain.SessionUser {
	u, _ := ctx.Value(userKey).(*domain.SessionUser)
	return u
}

func requestID(ctx context.Context) string {
	return middleware.GetReqID(ctx)
}
