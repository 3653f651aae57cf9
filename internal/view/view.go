// Package view рендерит HTML-страницы из встроенных шаблонов.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/GoArmGo/PetAdoption/internal/domain"
)

//go:embed templates
var templatesFS embed.FS

const layoutFile = "templates/layout.html"

// Page — то, что получает каждый шаблон: текущий пользователь и данные страницы.
type Page struct {
	User *domain.SessionUser
	Data any
}

type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer разбирает все страницы заранее, ошибка в шаблоне ломает старт, а не запрос.
func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"errorMessage": ErrorMessage,
		"date":         formatDate,
		"isAdopter":    func(u *domain.SessionUser) bool { return u.Is(domain.RoleAdopter) },
		"isShelter":    func(u *domain.SessionUser) bool { return u.Is(domain.RoleShelter) },
	}

	r := &Renderer{pages: make(map[string]*template.Template)}
	err := fs.WalkDir(templatesFS, "templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path == layoutFile || !strings.HasSuffix(path, ".html") {
			return nil
		}

		name := strings.TrimSuffix(strings.TrimPrefix(path, "templates/"), ".html")
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templatesFS, layoutFile, path)
		if err != nil {
			return fmt.Errorf("parse template %s: %w", name, err)
		}
		r.pages[name] = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Render пишет страницу со статусом status. Шаблон исполняется в буфер,
// поэтому при ошибке клиент не получает половину страницы.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, page Page) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", page); err != nil {
		return fmt.Errorf("execute template %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// ErrorMessage переводит код из ?error= в текст для пользователя.
func ErrorMessage(code string) string {
	switch code {
	case "":
		return ""
	case "invalid":
		return "Invalid email, password or role."
	case "password_mismatch":
		return "Passwords do not match."
	case "invalid_role":
		return "Please choose adopter or shelter."
	case "invalid_input":
		return "Name, a valid email and a password are required."
	case "email_exists":
		return "An account with this email already exists."
	default:
		return "Something went wrong. Please try again later."
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

//go:embed static/no_photo.svg
var placeholderPhoto []byte

// Placeholder отдаёт картинку для объявлений без фото.
func Placeholder(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(placeholderPhoto)
}
