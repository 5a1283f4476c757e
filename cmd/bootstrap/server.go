package bootstrap

import (
	"fmt"
	"net/http"

	"clinic-services/config"
	"clinic-services/internal/client"
	deliveryHttp "clinic-services/internal/delivery/http"
	"clinic-services/internal/delivery/http/handler"
	"clinic-services/internal/delivery/http/middleware"
	"clinic-services/internal/infrastructure/cache"
	"clinic-services/internal/infrastructure/search"
	"clinic-services/internal/repository"
	"clinic-services/internal/service"
	"clinic-services/internal/usecase"
	"clinic-services/pkg/jwt"
	"clinic-services/pkg/validator"

	"github.com/gorilla/mux"
)

// initializeServer wires the layers of app.Service and creates the HTTP server
func (app *App) initializeServer() (*http.Server, error) {
	var httpRouter *mux.Router
	switch app.Service {
	case config.ServiceAccount:
		httpRouter = app.accountRouter()
	case config.ServiceHospital:
		httpRouter = app.hospitalRouter()
	case config.ServiceTimetable:
		httpRouter = app.timetableRouter()
	case config.ServiceDocument:
		httpRouter = app.documentRouter()
	default:
		return nil, fmt.Errorf("unknown service %q", app.Service)
	}

	// Create server
	serverAddr := fmt.Sprintf(":%s", app.Config.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}, nil
}

func (app *App) middlewares(authenticator middleware.Authenticator) deliveryHttp.Middlewares {
	return deliveryHttp.Middlewares{
		Auth:    middleware.NewAuthMiddleware(authenticator, app.Log),
		CORS:    middleware.NewCORSMiddleware(app.Config.App.CORSOrigins),
		Logging: middleware.NewLoggingMiddleware(app.Log, app.Service),
	}
}

func (app *App) serviceClient(name, baseURL string) *client.ServiceClient {
	cfg := app.Config
	return client.NewServiceClient(name, baseURL, cfg.Services.Timeout, cfg.Breaker, app.Log)
}

// accountClient returns the one client, and so the one breaker, the app
// uses for the account service.
func (app *App) accountClient() *client.ServiceClient {
	if app.accounts == nil {
		app.accounts = app.serviceClient("account", app.Config.Services.AccountURL)
	}
	return app.accounts
}

// remoteAuthenticator resolves bearer tokens through the account service
func (app *App) remoteAuthenticator() middleware.Authenticator {
	accounts := client.NewAccountClient(app.accountClient())
	return middleware.AuthenticatorFunc(accounts.Me)
}

func (app *App) existenceChecker() client.EntityExistenceChecker {
	return client.NewHTTPExistenceChecker(
		app.accountClient(),
		app.serviceClient("hospital", app.Config.Services.HospitalURL),
	)
}

func (app *App) accountRouter() *mux.Router {
	db, log := app.DB, app.Log

	// Initialize JWT service
	jwtService := jwt.NewJWTService(app.Config.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	tokenRepo := repository.NewIssuedTokenRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	auditService := service.NewAuditService(log, auditLogRepo)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, tokenRepo, auditService, jwtService)
	accountUsecase := usecase.NewAccountUsecase(db, log, userRepo, tokenRepo, auditService)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	accountHandler := handler.NewAccountHandler(accountUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Tokens are checked locally
	router := deliveryHttp.NewAccountRouter(app.middlewares(authUsecase), authHandler, accountHandler, auditLogHandler)
	return router.Setup()
}

func (app *App) hospitalRouter() *mux.Router {
	hospitalUsecase := usecase.NewHospitalUsecase(app.DB, app.Log, repository.NewHospitalRepository())
	hospitalHandler := handler.NewHospitalHandler(hospitalUsecase, validator.NewValidator())

	router := deliveryHttp.NewHospitalRouter(app.middlewares(app.remoteAuthenticator()), hospitalHandler)
	return router.Setup()
}

func (app *App) timetableRouter() *mux.Router {
	timetableRepo := repository.NewTimetableRepository()
	appointmentRepo := repository.NewAppointmentRepository()

	timetableUsecase := usecase.NewTimetableUsecase(app.DB, app.Log, timetableRepo, app.existenceChecker())
	appointmentUsecase := usecase.NewAppointmentUsecase(app.DB, app.Log, timetableRepo, appointmentRepo)
	timetableHandler := handler.NewTimetableHandler(timetableUsecase, appointmentUsecase, validator.NewValidator())

	router := deliveryHttp.NewTimetableRouter(app.middlewares(app.remoteAuthenticator()), timetableHandler)
	return router.Setup()
}

func (app *App) documentRouter() *mux.Router {
	documentUsecase := usecase.NewDocumentUsecase(
		app.DB,
		app.Log,
		repository.NewDocumentRepository(),
		app.existenceChecker(),
		app.IndexService,
	)
	documentHandler := handler.NewDocumentHandler(documentUsecase, validator.NewValidator())

	router := deliveryHttp.NewDocumentRouter(app.middlewares(app.remoteAuthenticator()), documentHandler)
	return router.Setup()
}

// initializeIndexing connects Redis and Elasticsearch for the document service
func (app *App) initializeIndexing() error {
	cfg := app.Config

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	app.Log.Info("Redis connected successfully")

	indexer, err := search.NewDocumentIndexer(cfg.Elastic, app.Log)
	if err != nil {
		return fmt.Errorf("failed to create search client: %w", err)
	}

	app.IndexService = service.NewDocumentIndexService(
		app.DB,
		app.Log,
		indexer,
		cache.NewRedisReindexQueue(redisClient, app.Log),
		repository.NewDocumentRepository(),
		cfg.Reindex.Interval,
		cfg.Reindex.BatchSize,
	)
	return nil
}
