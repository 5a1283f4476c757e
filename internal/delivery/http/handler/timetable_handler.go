package handler

import (
	"net/http"
	"time"

	"clinic-services/internal/delivery/dto"
	"clinic-services/internal/usecase"
	"clinic-services/pkg/response"
	"clinic-services/pkg/validator"

	"github.com/gorilla/mux"
)

type TimetableHandler struct {
	timetableUsecase   usecase.TimetableUsecase
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewTimetableHandler(
	timetableUsecase usecase.TimetableUsecase,
	appointmentUsecase usecase.AppointmentUsecase,
	validator *validator.CustomValidator,
) *TimetableHandler {
	return &TimetableHandler{
		timetableUsecase:   timetableUsecase,
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

func (h *TimetableHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.TimetableRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	timetable, err := h.timetableUsecase.Create(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to create timetable")
		return
	}

	response.Created(w, timetable)
}

func (h *TimetableHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req dto.TimetableRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	timetable, err := h.timetableUsecase.Update(r.Context(), id, &req)
	if err != nil {
		writeError(w, err, "Failed to update timetable")
		return
	}

	response.OK(w, timetable)
}

func (h *TimetableHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.timetableUsecase.Delete(r.Context(), id); err != nil {
		writeError(w, err, "Failed to delete timetable")
		return
	}

	response.NoContent(w)
}

// ByDoctor, ByHospital and ByRoom serve both GET (list) and DELETE (bulk delete).
func (h *TimetableHandler) ByDoctor(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	h.byQuery(w, r, usecase.TimetableQuery{DoctorID: id})
}

func (h *TimetableHandler) ByHospital(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	h.byQuery(w, r, usecase.TimetableQuery{HospitalID: id})
}

func (h *TimetableHandler) ByRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	h.byQuery(w, r, usecase.TimetableQuery{HospitalID: id, Room: mux.Vars(r)["room"]})
}

func (h *TimetableHandler) byQuery(w http.ResponseWriter, r *http.Request, q usecase.TimetableQuery) {
	from, to, ok := parseWindow(w, r, r.Method == http.MethodGet)
	if !ok {
		return
	}
	q.From, q.To = from, to

	if r.Method == http.MethodDelete {
		if _, err := h.timetableUsecase.DeleteWhere(r.Context(), q); err != nil {
			writeError(w, err, "Failed to delete timetables")
			return
		}
		response.NoContent(w)
		return
	}

	timetables, err := h.timetableUsecase.Find(r.Context(), q)
	if err != nil {
		writeError(w, err, "Failed to get timetables")
		return
	}

	response.OK(w, timetables)
}

// parseWindow reads the RFC 3339 "from" and "to" query parameters.
func parseWindow(w http.ResponseWriter, r *http.Request, required bool) (time.Time, time.Time, bool) {
	var bounds [2]time.Time
	for i, name := range []string{"from", "to"} {
		raw := r.URL.Query().Get(name)
		if raw == "" {
			if required {
				response.BadRequest(w, name+" query parameter is required")
				return time.Time{}, time.Time{}, false
			}
			continue
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			response.BadRequest(w, name+" must be an RFC 3339 timestamp")
			return time.Time{}, time.Time{}, false
		}
		bounds[i] = t.UTC()
	}

	from, to := bounds[0], bounds[1]
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		response.BadRequest(w, "to must not be before from")
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

func (h *TimetableHandler) FreeSlots(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	slots, err := h.appointmentUsecase.FreeSlots(r.Context(), id)
	if err != nil {
		writeError(w, err, "Failed to get appointments")
		return
	}

	response.OK(w, slots)
}

func (h *TimetableHandler) Book(w http.ResponseWriter, r *http.Request) {
	principal, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req dto.AppointmentRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	appointment, err := h.appointmentUsecase.Book(r.Context(), principal, id, req.Time)
	if err != nil {
		writeError(w, err, "Failed to book appointment")
		return
	}

	response.Created(w, appointment)
}

func (h *TimetableHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	principal, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.appointmentUsecase.Cancel(r.Context(), principal, id); err != nil {
		writeError(w, err, "Failed to cancel appointment")
		return
	}

	response.NoContent(w)
}
