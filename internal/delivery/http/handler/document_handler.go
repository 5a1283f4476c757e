package handler

import (
	"net/http"

	"clinic-services/internal/delivery/dto"
	"clinic-services/internal/usecase"
	"clinic-services/pkg/response"
	"clinic-services/pkg/validator"
)

type DocumentHandler struct {
	documentUsecase usecase.DocumentUsecase
	validator       *validator.CustomValidator
}

func NewDocumentHandler(documentUsecase usecase.DocumentUsecase, validator *validator.CustomValidator) *DocumentHandler {
	return &DocumentHandler{
		documentUsecase: documentUsecase,
		validator:       validator,
	}
}

func (h *DocumentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.DocumentRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	document, err := h.documentUsecase.Create(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to create document")
		return
	}

	response.Created(w, document)
}

func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	document, err := h.documentUsecase.Get(r.Context(), principal, id)
	if err != nil {
		writeError(w, err, "Failed to get document")
		return
	}

	response.OK(w, document)
}

func (h *DocumentHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req dto.DocumentRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	document, err := h.documentUsecase.Update(r.Context(), principal, id, &req)
	if err != nil {
		writeError(w, err, "Failed to update document")
		return
	}

	response.OK(w, document)
}

// ListByPatient returns the medical history of one account
func (h *DocumentHandler) ListByPatient(w http.ResponseWriter, r *http.Request) {
	principal, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	documents, err := h.documentUsecase.ListByPatient(r.Context(), principal, id)
	if err != nil {
		writeError(w, err, "Failed to get history")
		return
	}

	response.OK(w, documents)
}
