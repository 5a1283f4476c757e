package http

import (
	"net/http"

	"clinic-services/internal/delivery/http/handler"
	"clinic-services/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type DocumentRouter struct {
	middlewares     Middlewares
	documentHandler *handler.DocumentHandler
}

func NewDocumentRouter(middlewares Middlewares, documentHandler *handler.DocumentHandler) *DocumentRouter {
	return &DocumentRouter{
		middlewares:     middlewares,
		documentHandler: documentHandler,
	}
}

func (r *DocumentRouter) Setup() *mux.Router {
	root, api := newAPI(r.middlewares)

	// Ownership checks happen in the usecase
	history := protected(api, r.middlewares)
	history.HandleFunc("/History/{id:[0-9]+}", r.documentHandler.Get).Methods(http.MethodGet)
	history.HandleFunc("/History/Account/{id:[0-9]+}", r.documentHandler.ListByPatient).Methods(http.MethodGet)

	staff := protected(api, r.middlewares, middleware.RequireDocumentWriter)
	staff.HandleFunc("/History", r.documentHandler.Create).Methods(http.MethodPost)
	staff.HandleFunc("/History/{id:[0-9]+}", r.documentHandler.Update).Methods(http.MethodPut)

	return root
}
