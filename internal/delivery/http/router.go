package http

import (
	"net/http"

	"clinic-services/internal/delivery/http/handler"
	"clinic-services/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

// Middlewares shared by every service router.
type Middlewares struct {
	Auth    *middleware.AuthMiddleware
	CORS    *middleware.CORSMiddleware
	Logging *middleware.LoggingMiddleware
}

// newAPI returns the root router and its /api subrouter with the ping route
// and the global middleware installed.
func newAPI(mw Middlewares) (*mux.Router, *mux.Router) {
	root := mux.NewRouter()
	api := root.PathPrefix("/api").Subrouter()

	// Health check
	api.HandleFunc("/Ping", handler.Ping).Methods(http.MethodGet)

	// Preflight requests never match a method-restricted route.
	root.Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	root.Use(mw.CORS.Handle)
	if mw.Logging != nil {
		root.Use(mw.Logging.Handle)
	}
	return root, api
}

// protected returns a subrouter of api that requires a valid bearer token.
func protected(api *mux.Router, mw Middlewares, mws ...mux.MiddlewareFunc) *mux.Router {
	sub := api.NewRoute().Subrouter()
	sub.Use(mw.Auth.Authenticate)
	sub.Use(mws...)
	return sub
}
