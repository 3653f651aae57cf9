package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/GoArmGo/PetAdoption/internal/domain"
	"github.com/GoArmGo/PetAdoption/internal/view"
)

// NewRouter собирает все маршруты приложения.
func NewRouter(h *Handler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)
	if h.opts.RequestTimeout > 0 {
		r.Use(middleware.Timeout(h.opts.RequestTimeout))
	}

	r.Get("/health", h.Health)
	r.Get(domain.PlaceholderPhoto, view.Placeholder)
	if h.opts.ImagesDir != "" {
		r.Handle("/images/*", http.StripPrefix("/images/", http.FileServer(http.Dir(h.opts.ImagesDir))))
	}

	r.Group(func(r chi.Router) {
		r.Use(h.LoadSession)
		r.NotFound(h.NotFound)

		r.Get("/", h.Index)
		r.Get("/about", h.About)
		r.Get("/contact", h.Contact)

		r.Get("/login", h.LoginForm)
		r.Post("/login", h.Login)
		r.Get("/logout", h.Logout)
		r.Get("/register", h.RegisterForm)
		r.Post("/register", h.Register)

		r.Get("/pets", h.ListPets)
		r.Get("/pets/{id}", h.PetDetails)

		r.Group(func(r chi.Router) {
			r.Use(RequireRole(domain.RoleAdopter))
			r.Get("/pets/{id}/apply", h.ApplyForm)
			r.Post("/pets/{id}/apply", h.Apply)
			r.Get("/adopter/applications", h.MyApplications)
			r.Get("/adopter/profile", h.AdopterProfile)
		})

		r.Group(func(r chi.Router) {
			r.Use(RequireRole(domain.RoleShelter))
			r.Get("/shelter/pets", h.ShelterPets)
			r.Post("/shelter/pets/{id}/toggle", h.TogglePet)
			r.Get("/shelter/pets/{id}/edit", h.EditPetForm)
			r.Post("/shelter/pets/{id}/edit", h.UpdatePet)
			r.Get("/shelter/pet/new", h.NewPetForm)
			r.Post("/shelter/pet/new", h.CreatePet)
			r.Get("/shelter/applications", h.IncomingApplications)
			r.Post("/application/{id}/update", h.UpdateApplication)
			r.Get("/shelter/profile", h.ShelterProfile)
		})
	})

	return r
}
