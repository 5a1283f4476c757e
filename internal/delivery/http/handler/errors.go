package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"clinic-services/internal/client"
	"clinic-services/internal/delivery/http/middleware"
	"clinic-services/internal/domain/entity"
	"clinic-services/internal/permission"
	"clinic-services/internal/usecase"
	"clinic-services/pkg/response"
	"clinic-services/pkg/validator"

	"github.com/gorilla/mux"
)

// writeError maps a usecase error to its HTTP status and error code.
// Anything unrecognised becomes a 500 carrying fallback.
func writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrUsernameTaken):
		response.Conflict(w, response.CodeAlreadyRegistered, "Username is already registered")
	case errors.Is(err, usecase.ErrSlotOccupied):
		response.Conflict(w, response.CodeAppointmentOccupied, "Appointment slot is already taken")
	case errors.Is(err, usecase.ErrTokenInvalidated):
		response.Error(w, http.StatusUnauthorized, response.CodeTokenInvalidated, "Token has been invalidated")
	case errors.Is(err, usecase.ErrInvalidCredentials):
		response.Unauthorized(w, "Invalid username or password")
	case errors.Is(err, usecase.ErrInvalidToken):
		response.Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, usecase.ErrUserDeleted):
		response.Error(w, http.StatusNotFound, response.CodeUserDeleted, "User has been deleted")
	case errors.Is(err, usecase.ErrForbidden):
		response.Forbidden(w, "")
	case errors.Is(err, usecase.ErrUserNotFound),
		errors.Is(err, usecase.ErrDoctorNotFound),
		errors.Is(err, usecase.ErrAuditLogNotFound),
		errors.Is(err, usecase.ErrHospitalNotFound),
		errors.Is(err, usecase.ErrTimetableNotFound),
		errors.Is(err, usecase.ErrAppointmentNotFound),
		errors.Is(err, usecase.ErrDocumentNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, usecase.ErrOutOfBounds),
		errors.Is(err, usecase.ErrMisalignedTime),
		errors.Is(err, usecase.ErrInvertedWindow),
		errors.Is(err, usecase.ErrWindowTooLong),
		errors.Is(err, usecase.ErrInvalidReference),
		errors.Is(err, entity.ErrUnknownRole):
		response.BadRequest(w, err.Error())
	case errors.Is(err, client.ErrDependencyUnavailable):
		response.ServiceUnavailable(w, "")
	default:
		response.InternalServerError(w, fallback)
	}
}

// decodeAndValidate reads a JSON body into req and runs struct validation.
// It writes the 400 itself and reports whether the handler may continue.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v *validator.CustomValidator, req interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return false
	}

	if err := v.Validate(req); err != nil {
		response.ValidationError(w, v.Detail(err))
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(w, "Invalid "+name)
		return 0, false
	}
	return id, true
}

func caller(w http.ResponseWriter, r *http.Request) (*permission.Principal, bool) {
	principal, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
	}
	return principal, ok
}

// Ping answers liveness probes on every service.
func Ping(w http.ResponseWriter, r *http.Request) {
	response.Text(w, http.StatusOK, "ok")
}
