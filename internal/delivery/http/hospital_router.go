package http

import (
	"net/http"

	"clinic-services/internal/delivery/http/handler"
	"clinic-services/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type HospitalRouter struct {
	middlewares     Middlewares
	hospitalHandler *handler.HospitalHandler
}

func NewHospitalRouter(middlewares Middlewares, hospitalHandler *handler.HospitalHandler) *HospitalRouter {
	return &HospitalRouter{
		middlewares:     middlewares,
		hospitalHandler: hospitalHandler,
	}
}

func (r *HospitalRouter) Setup() *mux.Router {
	root, api := newAPI(r.middlewares)

	// Service-to-service checks (public)
	api.HandleFunc("/Hospitals/Exists/{id:[0-9]+}", r.hospitalHandler.Exists).Methods(http.MethodGet)
	api.HandleFunc("/Hospitals/RoomExists/{id:[0-9]+}/{room}", r.hospitalHandler.RoomExists).Methods(http.MethodGet)

	hospitals := protected(api, r.middlewares, middleware.AdminOrReadOnly)
	hospitals.HandleFunc("/Hospitals", r.hospitalHandler.List).Methods(http.MethodGet)
	hospitals.HandleFunc("/Hospitals", r.hospitalHandler.Create).Methods(http.MethodPost)
	hospitals.HandleFunc("/Hospitals/{id:[0-9]+}", r.hospitalHandler.Get).Methods(http.MethodGet)
	hospitals.HandleFunc("/Hospitals/{id:[0-9]+}", r.hospitalHandler.Update).Methods(http.MethodPut)
	hospitals.HandleFunc("/Hospitals/{id:[0-9]+}", r.hospitalHandler.Delete).Methods(http.MethodDelete)
	hospitals.HandleFunc("/Hospitals/{id:[0-9]+}/Rooms", r.hospitalHandler.Rooms).Methods(http.MethodGet)

	return root
}
