package handler

import (
	"errors"
	"net/http"

	"github.com/GoArmGo/PetAdoption/internal/domain"
	"github.com/GoArmGo/PetAdoption/internal/usecase"
	"github.com/GoArmGo/PetAdoption/internal/view"
)

func (h *Handler) ListPets(w http.ResponseWriter, r *http.Request) {
	pets, err := h.pets.ListActive(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "all_pets", view.PetListData{Pets: pets})
}

func (h *Handler) PetDetails(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.notFound(w, r)
		return
	}

	pv, err := h.pets.Details(r.Context(), id, currentUser(r.Context()))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "pet_details", view.PetDetailData{Pet: pv.Pet, ApplicationStatus: pv.ApplicationStatus})
}

func (h *Handler) ApplyForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.notFound(w, r)
		return
	}

	pet, err := h.applications.ApplyForm(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "adopter/apply", view.ApplyData{Pet: pet})
}

func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.notFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "The application form could not be read.")
		return
	}

	user := currentUser(r.Context())
	_, err := h.applications.Apply(r.Context(), id, user.ID, usecase.ApplyInput{
		HomeSetup: r.PostForm.Get("home_setup"),
		PriorPets: r.PostForm.Get("prior_pets"),
	})
	if errors.Is(err, domain.ErrAlreadyApplied) {
		h.renderError(w, r, http.StatusConflict, "You have already applied for this pet")
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	redirectWith(w, r, "/adopter/applications", "submitted", "true")
}

func (h *Handler) MyApplications(w http.ResponseWriter, r *http.Request) {
	apps, err := h.applications.ListMine(r.Context(), currentUser(r.Context()).ID)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "adopter/applications", view.AdopterApplicationsData{
		Applications: apps,
		Submitted:    r.URL.Query().Get("submitted") == "true",
	})
}

func (h *Handler) AdopterProfile(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "adopter/profile", nil)
}
