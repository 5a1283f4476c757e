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

type AccountHandler struct {
	accountUsecase usecase.AccountUsecase
	validator      *validator.CustomValidator
}

func NewAccountHandler(accountUsecase usecase.AccountUsecase, validator *validator.CustomValidator) *AccountHandler {
	return &AccountHandler{
		accountUsecase: accountUsecase,
		validator:      validator,
	}
}

func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := caller(w, r)
	if !ok {
		return
	}

	user, err := h.accountUsecase.Me(r.Context(), principal)
	if err != nil {
		writeError(w, err, "Failed to get user info")
		return
	}

	response.OK(w, user)
}

func (h *AccountHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	principal, ok := caller(w, r)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	user, err := h.accountUsecase.UpdateMe(r.Context(), principal, &req)
	if err != nil {
		writeError(w, err, "Failed to update profile")
		return
	}

	response.OK(w, user)
}

func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.accountUsecase.List(r.Context(), pagination.FromRequest(r))
	if err != nil {
		writeError(w, err, "Failed to get accounts")
		return
	}

	response.OK(w, page)
}

func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := caller(w, r)
	if !ok {
		return
	}

	var req dto.AccountRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	user, err := h.accountUsecase.Create(r.Context(), principal, &req)
	if err != nil {
		writeError(w, err, "Failed to create account")
		return
	}

	response.Created(w, user)
}

func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req dto.AccountRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	user, err := h.accountUsecase.Update(r.Context(), principal, id, &req)
	if err != nil {
		writeError(w, err, "Failed to update account")
		return
	}

	response.OK(w, user)
}

// Delete soft-deletes the account and invalidates its tokens
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.accountUsecase.Delete(r.Context(), principal, id); err != nil {
		writeError(w, err, "Failed to delete account")
		return
	}

	response.NoContent(w)
}

// Exists is called by sibling services to check a reference.
func (h *AccountHandler) Exists(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	exists, err := h.accountUsecase.Exists(r.Context(), mux.Vars(r)["role"], id)
	if err != nil {
		writeError(w, err, "Failed to check account")
		return
	}

	response.Exists(w, exists)
}

func (h *AccountHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	page, err := h.accountUsecase.ListDoctors(r.Context(), r.URL.Query().Get("nameFilter"), pagination.FromRequest(r))
	if err != nil {
		writeError(w, err, "Failed to get doctors")
		return
	}

	response.OK(w, page)
}

func (h *AccountHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	doctor, err := h.accountUsecase.GetDoctor(r.Context(), id)
	if err != nil {
		writeError(w, err, "Failed to get doctor")
		return
	}

	response.OK(w, doctor)
}
