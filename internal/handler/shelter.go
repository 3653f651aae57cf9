package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/GoArmGo/PetAdoption/internal/domain"
	"github.com/GoArmGo/PetAdoption/internal/usecase"
	"github.com/GoArmGo/PetAdoption/internal/view"
)

const (
	// Запас под остальные поля multipart-формы сверх лимита на файл.
	formOverheadBytes = 1 << 20
	sniffLen          = 512
)

func (h *Handler) ShelterPets(w http.ResponseWriter, r *http.Request) {
	pets, err := h.pets.ListShelterPets(r.Context(), currentUser(r.Context()).ID)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "shelter/my_pets", view.ShelterPetsData{
		Pets:    pets,
		Message: r.URL.Query().Get("message"),
	})
}

func (h *Handler) TogglePet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.notFound(w, r)
		return
	}

	status, err := h.pets.ToggleStatus(r.Context(), id, currentUser(r.Context()).ID)
	if errors.Is(err, domain.ErrInvalidTransition) {
		h.renderError(w, r, http.StatusConflict, "The status of this pet has just been changed. Reload the page and try again.")
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	redirectWith(w, r, "/shelter/pets", "message", "Status updated to: "+string(status))
}

func (h *Handler) NewPetForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "shelter/add_pet", view.PetFormData{})
}

func (h *Handler) CreatePet(w http.ResponseWriter, r *http.Request) {
	in, photo, err := h.readPetForm(w, r)
	defer closePhoto(photo)
	if err == nil {
		_, err = h.pets.CreateListing(r.Context(), currentUser(r.Context()).ID, in, photo)
	}
	switch {
	case err == nil:
		redirectWith(w, r, "/shelter/pets", "message", "Pet listed successfully")
	case isPetInputError(err):
		h.render(w, r, http.StatusBadRequest, "shelter/add_pet", view.PetFormData{Form: in, Error: petFormError(err)})
	default:
		h.logger.Error("failed to create listing", "request_id", requestID(r.Context()), "error", err)
		h.render(w, r, http.StatusInternalServerError, "shelter/add_pet", view.PetFormData{
			Form:  in,
			Error: "We could not list this pet. Please try again later.",
		})
	}
}

func (h *Handler) EditPetForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.notFound(w, r)
		return
	}

	pet, err := h.pets.GetOwnedPet(r.Context(), id, currentUser(r.Context()).ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "shelter/edit_pet", view.PetFormData{ID: pet.ID, Photo: pet.Photo, Form: petInputOf(pet)})
}

func (h *Handler) UpdatePet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.notFound(w, r)
		return
	}
	shelterID := currentUser(r.Context()).ID

	in, photo, err := h.readPetForm(w, r)
	defer closePhoto(photo)
	if err == nil {
		_, err = h.pets.UpdateListing(r.Context(), id, shelterID, in, photo)
	}
	switch {
	case err == nil:
		redirectWith(w, r, "/shelter/pets", "message", "Pet updated successfully")
	case errors.Is(err, domain.ErrNotFound):
		h.notFound(w, r)
	case isPetInputError(err):
		data := view.PetFormData{ID: id, Form: in, Error: petFormError(err)}
		if pet, gerr := h.pets.GetOwnedPet(r.Context(), id, shelterID); gerr == nil {
			data.Photo = pet.Photo
		}
		h.render(w, r, http.StatusBadRequest, "shelter/edit_pet", data)
	default:
		h.serverError(w, r, err)
	}
}

func (h *Handler) IncomingApplications(w http.ResponseWriter, r *http.Request) {
	apps, err := h.applications.ListIncoming(r.Context(), currentUser(r.Context()).ID)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "shelter/applications", view.IncomingApplicationsData{Applications: apps})
}

func (h *Handler) UpdateApplication(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.notFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Invalid status.")
		return
	}

	err := h.applications.Decide(r.Context(), id, currentUser(r.Context()).ID, r.PostForm.Get("status"))
	switch {
	case err == nil:
		redirect(w, r, "/shelter/applications")
	case errors.Is(err, domain.ErrInvalidStatus):
		h.renderError(w, r, http.StatusBadRequest, "Status must be approved or declined.")
	case errors.Is(err, domain.ErrInvalidTransition):
		h.renderError(w, r, http.StatusConflict, "This application has already been decided.")
	default:
		h.fail(w, r, err)
	}
}

func (h *Handler) ShelterProfile(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "shelter/profile", nil)
}

// readPetForm разбирает форму объявления. photo == nil, если файл не выбран
// или форма пришла без multipart.
func (h *Handler) readPetForm(w http.ResponseWriter, r *http.Request) (usecase.PetInput, *usecase.PhotoUpload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxUploadBytes+formOverheadBytes)
	err := r.ParseMultipartForm(h.opts.MaxUploadBytes)
	if errors.Is(err, http.ErrNotMultipart) {
		// urlencoded-форма: поля уже разобраны в PostForm, фото нет
		if err := r.ParseForm(); err != nil {
			return usecase.PetInput{}, nil, formError(err)
		}
		return petInputFromForm(r.PostForm), nil, nil
	}
	if err != nil {
		return usecase.PetInput{}, nil, formError(err)
	}

	in := petInputFromForm(r.PostForm)

	file, header, err := r.FormFile("photo")
	if errors.Is(err, http.ErrMissingFile) {
		return in, nil, nil
	}
	if err != nil {
		return in, nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if header.Size > h.opts.MaxUploadBytes {
		_ = file.Close()
		return in, nil, errPhotoTooLarge
	}

	// Тип определяем по первым байтам файла, заголовку клиента не доверяем.
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		_ = file.Close()
		return in, nil, fmt.Errorf("read photo: %w", err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		_ = file.Close()
		return in, nil, fmt.Errorf("rewind photo: %w", err)
	}
	if n == 0 {
		_ = file.Close()
		return in, nil, nil
	}

	return in, &usecase.PhotoUpload{
		Filename:    header.Filename,
		ContentType: http.DetectContentType(head[:n]),
		Body:        file,
	}, nil
}

var errPhotoTooLarge = errors.New("photo too large")

func formError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return errPhotoTooLarge
	}
	return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
}

func petInputFromForm(form url.Values) usecase.PetInput {
	return usecase.PetInput{
		Name:        form.Get("name"),
		Species:     form.Get("species"),
		Breed:       form.Get("breed"),
		Age:         form.Get("age"),
		Size:        form.Get("size"),
		Temperament: form.Get("temperament"),
		Description: form.Get("description"),
	}
}

func closePhoto(photo *usecase.PhotoUpload) {
	if photo == nil {
		return
	}
	if c, ok := photo.Body.(io.Closer); ok {
		_ = c.Close()
	}
}

func isPetInputError(err error) bool {
	return errors.Is(err, domain.ErrInvalidInput) || errors.Is(err, domain.ErrUnsupportedPhoto) || errors.Is(err, errPhotoTooLarge)
}

func petFormError(err error) string {
	switch {
	case errors.Is(err, errPhotoTooLarge):
		return "The photo is too large."
	case errors.Is(err, domain.ErrUnsupportedPhoto):
		return "The photo must be an image (JPEG, PNG, GIF or WebP)."
	default:
		return "Name and species are required and age must be a whole number of years."
	}
}

func petInputOf(p *domain.Pet) usecase.PetInput {
	return usecase.PetInput{
		Name:        p.Name,
		Species:     p.Species,
		Breed:       p.Breed,
		Age:         strconv.Itoa(p.Age),
		Size:        p.Size,
		Temperament: p.Temperament,
		Description: p.Description,
	}
}
