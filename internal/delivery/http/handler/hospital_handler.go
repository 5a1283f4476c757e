package handler

import (
	"net/http"

	"clinic-services/internal/delivery/dto"
	"clinic-services/internal/usecase"
	"clinic-services/pkg/pagination"
	"clinic-services/pkg/response"
	"clinic-services/pkg/validator"

	"github.com/gorilla/mux"
)

type HospitalHandler struct {
	hospitalUsecase usecase.HospitalUsecase
	validator       *validator.CustomValidator
}

func NewHospitalHandler(hospitalUsecase usecase.HospitalUsecase, validator *validator.CustomValidator) *HospitalHandler {
	return &HospitalHandler{
		hospitalUsecase: hospitalUsecase,
		validator:       validator,
	}
}

func (h *HospitalHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.hospitalUsecase.List(r.Context(), pagination.FromRequest(r))
	if err != nil {
		writeError(w, err, "Failed to get hospitals")
		return
	}

	response.OK(w, page)
}

func (h *HospitalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	hospital, err := h.hospitalUsecase.Get(r.Context(), id)
	if err != nil {
		writeError(w, err, "Failed to get hospital")
		return
	}

	response.OK(w, hospital)
}

func (h *HospitalHandler) Rooms(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	rooms, err := h.hospitalUsecase.Rooms(r.Context(), id)
	if err != nil {
		writeError(w, err, "Failed to get rooms")
		return
	}

	response.OK(w, rooms)
}

func (h *HospitalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.HospitalRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	hospital, err := h.hospitalUsecase.Create(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to create hospital")
		return
	}

	response.Created(w, hospital)
}

func (h *HospitalHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req dto.HospitalRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	hospital, err := h.hospitalUsecase.Update(r.Context(), id, &req)
	if err != nil {
		writeError(w, err, "Failed to update hospital")
		return
	}

	response.OK(w, hospital)
}

func (h *HospitalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.hospitalUsecase.Delete(r.Context(), id); err != nil {
		writeError(w, err, "Failed to delete hospital")
		return
	}

	response.NoContent(w)
}

func (h *HospitalHandler) Exists(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	exists, err := h.hospitalUsecase.Exists(r.Context(), id)
	if err != nil {
		writeError(w, err, "Failed to check hospital")
		return
	}

	response.Exists(w, exists)
}

func (h *HospitalHandler) RoomExists(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	exists, err := h.hospitalUsecase.RoomExists(r.Context(), id, mux.Vars(r)["room"])
	if err != nil {
		writeError(w, err, "Failed to check room")
		return
	}

	response.Exists(w, exists)
}
