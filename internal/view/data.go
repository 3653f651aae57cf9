package view

import (
	"github.com/GoArmGo/PetAdoption/internal/domain"
	"github.com/GoArmGo/PetAdoption/internal/usecase"
)

type PetListData struct {
	Pets []domain.PetListing
}

type FormErrorData struct {
	Error string
}

type PetDetailData struct {
	Pet               *domain.PetDetail
	ApplicationStatus domain.ApplicationStatus
}

type ApplyData struct {
	Pet *domain.PetDetail
}

type AdopterApplicationsData struct {
	Applications []domain.AdopterApplication
	Submitted    bool
}

type ShelterPetsData struct {
	Pets    []domain.Pet
	Message string
}

// PetFormData используется формами создания и редактирования объявления.
type PetFormData struct {
	ID    int64
	Photo string
	Form  usecase.PetInput
	Error string
}

type IncomingApplicationsData struct {
	Applications []domain.IncomingApplication
}

type ErrorData struct {
	Title   string
	Message string
}
