package response

import (
	"encoding/json"
	"net/http"
)

// Error codes carried in the "code" field of every error body.
const (
	CodeBadRequest            = "BAD_REQUEST"
	CodeNotAuthorized         = "NOT_AUTHORIZED"
	CodeTokenInvalidated      = "TOKEN_INVALIDATED"
	CodeForbidden             = "FORBIDDEN"
	CodeNotFound              = "NOT_FOUND"
	CodeAlreadyRegistered     = "ALREADY_REGISTERED"
	CodeAppointmentOccupied   = "APPOINTMENT_OCCUPIED"
	CodeUserDeleted           = "USER_DELETED"
	CodeDependencyUnavailable = "DEPENDENCY_UNAVAILABLE"
	CodeInternal              = "INTERNAL_ERROR"
)

type ErrorBody struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
}

type ExistsBody struct {
	Exists bool `json:"exists"`
}

func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func OK(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusOK, data)
}

func Created(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusCreated, data)
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func Text(w http.ResponseWriter, statusCode int, body string) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(statusCode)
	w.Write([]byte(body))
}

func Exists(w http.ResponseWriter, exists bool) {
	JSON(w, http.StatusOK, ExistsBody{Exists: exists})
}

func Error(w http.ResponseWriter, statusCode int, code, detail string) {
	JSON(w, statusCode, ErrorBody{
		Code:   code,
		Detail: detail,
	})
}

func BadRequest(w http.ResponseWriter, detail string) {
	if detail == "" {
		detail = "Bad request format or data"
	}
	Error(w, http.StatusBadRequest, CodeBadRequest, detail)
}

func ValidationError(w http.ResponseWriter, detail string) {
	BadRequest(w, detail)
}

func Unauthorized(w http.ResponseWriter, detail string) {
	if detail == "" {
		detail = "Not authorized"
	}
	Error(w, http.StatusUnauthorized, CodeNotAuthorized, detail)
}

func NotFound(w http.ResponseWriter, detail string) {
	if detail == "" {
		detail = "Resource with such parameters cannot be found"
	}
	Error(w, http.StatusNotFound, CodeNotFound, detail)
}

func Conflict(w http.ResponseWriter, code, detail string) {
	Error(w, http.StatusConflict, code, detail)
}

func Forbidden(w http.ResponseWriter, detail string) {
	if detail == "" {
		detail = "Not enough permissions"
	}
	Error(w, http.StatusForbidden, CodeForbidden, detail)
}

func ServiceUnavailable(w http.ResponseWriter, detail string) {
	if detail == "" {
		detail = "A dependent service is unavailable"
	}
	Error(w, http.StatusServiceUnavailable, CodeDependencyUnavailable, detail)
}

func InternalServerError(w http.ResponseWriter, detail string) {
	if detail == "" {
		detail = "Internal server error"
	}
	Error(w, http.StatusInternalServerError, CodeInternal, detail)
}
