package http

import (
	"net/http"

	"clinic-services/internal/delivery/http/handler"
	"clinic-services/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type TimetableRouter struct {
	middlewares      Middlewares
	timetableHandler *handler.TimetableHandler
}

func NewTimetableRouter(middlewares Middlewares, timetableHandler *handler.TimetableHandler) *TimetableRouter {
	return &TimetableRouter{
		middlewares:      middlewares,
		timetableHandler: timetableHandler,
	}
}

func (r *TimetableRouter) Setup() *mux.Router {
	root, api := newAPI(r.middlewares)
	h := r.timetableHandler

	// Reads for any authenticated user, writes for admins and managers
	timetables := protected(api, r.middlewares, middleware.AdminOrManagerOrReadOnly)
	timetables.HandleFunc("/Timetable", h.Create).Methods(http.MethodPost)
	timetables.HandleFunc("/Timetable/{id:[0-9]+}", h.Update).Methods(http.MethodPut)
	timetables.HandleFunc("/Timetable/{id:[0-9]+}", h.Delete).Methods(http.MethodDelete)
	timetables.HandleFunc("/Timetable/Doctor/{id:[0-9]+}", h.ByDoctor).Methods(http.MethodGet, http.MethodDelete)
	timetables.HandleFunc("/Timetable/Hospital/{id:[0-9]+}", h.ByHospital).Methods(http.MethodGet, http.MethodDelete)
	timetables.HandleFunc("/Timetable/Hospital/{id:[0-9]+}/Room/{room}", h.ByRoom).Methods(http.MethodGet, http.MethodDelete)

	// Appointments: any authenticated user books, cancellation is checked per appointment
	appointments := protected(api, r.middlewares)
	appointments.HandleFunc("/Timetable/{id:[0-9]+}/Appointments", h.FreeSlots).Methods(http.MethodGet)
	appointments.HandleFunc("/Timetable/{id:[0-9]+}/Appointments", h.Book).Methods(http.MethodPost)
	appointments.HandleFunc("/Appointment/{id:[0-9]+}", h.CancelAppointment).Methods(http.MethodDelete)

	return root
}
