package app

import (
	"civic/config"
	"civic/internal/clients/essentials"
	"civic/internal/database"
	"civic/internal/logger"
	"civic/internal/repositories"
	"civic/internal/services"

	compassController "civic/internal/controllers/compass"
	officialsController "civic/internal/controllers/officials"
)

type App struct {
	Database database.DB
	Backend  *essentials.Client
	Config   config.Config

	// Services
	TransactionService *services.TransactionService
	ResolverService    *services.ResolverService

	// Repositories
	LookupRepo repositories.LookupRepository

	// Controllers
	OfficialsController *officialsController.OfficialsController
	CompassController   *compassController.CompassController
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.InitConfig()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	logger.Init(config.LogLevel, config.LogJSON)

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	backend, err := essentials.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create essentials client", err)
	}

	// Initialize services
	transactionService := services.NewTransactionService(db)

	// Initialize repositories
	lookupRepo := repositories.NewLookup(db, config.LookupsCacheTTL)

	resolverService := services.NewResolverService(
		backend,
		db.Cache.Results,
		config.ResultCacheTTL,
		services.PolicyFromConfig(config),
		lookupRepo,
	)

	// Initialize controllers with services and the backend client
	officialsController := officialsController.New(resolverService, backend)
	compassController := compassController.New(backend, db.Cache.Compass, config.TopicsCacheTTL)

	app := &App{
		Database:            db,
		Backend:             backend,
		Config:              config,
		TransactionService:  transactionService,
		ResolverService:     resolverService,
		LookupRepo:          lookupRepo,
		OfficialsController: officialsController,
		CompassController:   compassController,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")
	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.Backend,
		a.TransactionService,
		a.ResolverService,
		a.LookupRepo,
		a.OfficialsController,
		a.CompassController,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
