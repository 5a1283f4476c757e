package http

import (
	"net/http"

	"clinic-services/internal/delivery/http/handler"
	"clinic-services/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type AccountRouter struct {
	middlewares     Middlewares
	authHandler     *handler.AuthHandler
	accountHandler  *handler.AccountHandler
	auditLogHandler *handler.AuditLogHandler
}

func NewAccountRouter(
	middlewares Middlewares,
	authHandler *handler.AuthHandler,
	accountHandler *handler.AccountHandler,
	auditLogHandler *handler.AuditLogHandler,
) *AccountRouter {
	return &AccountRouter{
		middlewares:     middlewares,
		authHandler:     authHandler,
		accountHandler:  accountHandler,
		auditLogHandler: auditLogHandler,
	}
}

func (r *AccountRouter) Setup() *mux.Router {
	root, api := newAPI(r.middlewares)

	// Auth routes (public)
	auth := api.PathPrefix("/Authentication").Subrouter()
	auth.HandleFunc("/SignUp", r.authHandler.SignUp).Methods(http.MethodPost)
	auth.HandleFunc("/SignIn", r.authHandler.SignIn).Methods(http.MethodPost)
	auth.HandleFunc("/Validate", r.authHandler.Validate).Methods(http.MethodGet)
	auth.HandleFunc("/Refresh", r.authHandler.Refresh).Methods(http.MethodPost)

	// Service-to-service checks (public)
	api.HandleFunc("/Accounts/Exists/{role}/{id:[0-9]+}", r.accountHandler.Exists).Methods(http.MethodGet)

	// Authenticated
	user := protected(api, r.middlewares)
	user.HandleFunc("/Authentication/SignOut", r.authHandler.SignOut).Methods(http.MethodPut)
	user.HandleFunc("/Accounts/Me", r.accountHandler.Me).Methods(http.MethodGet)
	user.HandleFunc("/Accounts/Update", r.accountHandler.UpdateMe).Methods(http.MethodPut)
	user.HandleFunc("/Doctors", r.accountHandler.ListDoctors).Methods(http.MethodGet)
	user.HandleFunc("/Doctors/{id:[0-9]+}", r.accountHandler.GetDoctor).Methods(http.MethodGet)

	// Admin routes
	admin := protected(api, r.middlewares, middleware.RequireAdmin)
	admin.HandleFunc("/Accounts", r.accountHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/Accounts", r.accountHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/Accounts/{id:[0-9]+}", r.accountHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/Accounts/{id:[0-9]+}", r.accountHandler.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/AuditLogs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/AuditLogs/{id:[0-9]+}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	return root
}
