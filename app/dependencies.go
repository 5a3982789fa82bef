package app

import (
	"context"
	"fmt"

	"github.com/upb/esg-data-management/auth"
	"github.com/upb/esg-data-management/config"
	"github.com/upb/esg-data-management/handlers"
	"github.com/upb/esg-data-management/internal/clock"
	"github.com/upb/esg-data-management/internal/observability"
	"github.com/upb/esg-data-management/middleware"
	"github.com/upb/esg-data-management/repositories"
	"github.com/upb/esg-data-management/repositories/postgres"
	"github.com/upb/esg-data-management/services"
	"github.com/upb/esg-data-management/services/esg"
	"github.com/upb/esg-data-management/tokens"
	"go.uber.org/zap"
)

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	DB     *postgres.DB
	Logger *zap.Logger
	Clock  clock.Clock

	// Repository Factory
	RepoFactory *postgres.RepositoryFactory

	// Repositories
	Companies     repositories.CompanyRepository
	BusinessUnits repositories.BusinessUnitRepository
	Metrics       repositories.MetricRepository
	Users         repositories.UserRepository
	TxManager     repositories.TransactionManager

	// Services
	CompanyService      *esg.CompanyService
	BusinessUnitService *esg.BusinessUnitService
	MetricService       *esg.MetricService
	AuthService         *services.AuthService
	Tokens              *tokens.Service

	// HTTP
	CompanyHandler      *handlers.CompanyHandler
	BusinessUnitHandler *handlers.BusinessUnitHandler
	MetricHandler       *handlers.MetricHandler
	HealthHandler       *handlers.HealthHandler
	AuthHandler         *auth.Handler
	AuthMiddleware      *middleware.AuthMiddleware
	HTTPMetrics         *observability.HTTPMetrics
}

// NewDependencies opens the database and wires up all application dependencies.
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	factory, err := postgres.NewRepositoryFactory(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	deps, err := NewDependenciesFromFactory(ctx, cfg, factory, clock.System(), logger)
	if err != nil {
		_ = factory.Close()
		return nil, err
	}

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// NewDependenciesFromFactory wires the application over an already opened
// repository factory.
func NewDependenciesFromFactory(ctx context.Context, cfg *config.Config, factory *postgres.RepositoryFactory, clk clock.Clock, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config:      cfg,
		Logger:      logger,
		Clock:       clk,
		RepoFactory: factory,
		DB:          factory.GetDB(),
	}

	deps.initRepositories()
	deps.initServices()

	if err := deps.initMetrics(); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	if err := deps.ensureBootstrapUser(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure bootstrap user: %w", err)
	}

	deps.initHandlers()
	return deps, nil
}

// initRepositories initializes all repository instances
func (d *Dependencies) initRepositories() {
	repos := d.RepoFactory.NewRepositories()

	d.Companies = repos.Companies
	d.BusinessUnits = repos.BusinessUnits
	d.Metrics = repos.Metrics
	d.Users = repos.Users
	d.TxManager = d.RepoFactory.GetTransactionManager()

	d.Logger.Info("repositories initialized")
}

func (d *Dependencies) initServices() {
	d.CompanyService = esg.NewCompanyService(d.Companies, d.Metrics, d.TxManager, d.Clock, d.Logger)
	d.BusinessUnitService = esg.NewBusinessUnitService(d.BusinessUnits, d.Companies, d.TxManager, d.Clock, d.Logger)
	d.MetricService = esg.NewMetricService(d.Metrics, d.BusinessUnits, d.TxManager, d.Clock, d.Logger)
	d.AuthService = services.NewAuthService(d.Users, d.TxManager, d.Clock, d.Logger)

	d.Tokens = tokens.NewService(tokens.Config{
		SigningKey: d.Config.Auth.SigningKey,
		Issuer:     d.Config.Auth.Issuer,
		AccessTTL:  d.Config.Auth.AccessTokenTTL,
		RefreshTTL: d.Config.Auth.RefreshTokenTTL,
	}, d.Clock)
}

func (d *Dependencies) initMetrics() error {
	if !d.Config.Observability.MetricsEnabled {
		return nil
	}

	m := observability.NewHTTPMetrics()
	if err := m.RegisterDB(d.DB.DB); err != nil {
		return err
	}
	d.HTTPMetrics = m
	return nil
}

// ensureBootstrapUser creates the configured login when both credentials are set
func (d *Dependencies) ensureBootstrapUser(ctx context.Context) error {
	username := d.Config.Auth.BootstrapUsername
	password := d.Config.Auth.BootstrapPassword
	if username == "" || password == "" {
		d.Logger.Debug("no bootstrap user configured")
		return nil
	}
	return d.AuthService.EnsureUser(ctx, username, password)
}

func (d *Dependencies) initHandlers() {
	d.CompanyHandler = handlers.NewCompanyHandler(d.CompanyService, d.Logger)
	d.BusinessUnitHandler = handlers.NewBusinessUnitHandler(d.BusinessUnitService, d.Logger)
	d.MetricHandler = handlers.NewMetricHandler(d.MetricService, d.Logger)
	d.HealthHandler = handlers.NewHealthHandler(d.DB, d.Logger)
	d.AuthHandler = auth.NewHandler(d.AuthService, d.Tokens, d.Logger)
	d.AuthMiddleware = middleware.NewAuthMiddleware(d.Tokens, d.Logger)
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close(ctx context.Context) error {
	d.Logger.Info("shutting down dependencies")

	if d.RepoFactory != nil {
		if err := d.RepoFactory.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
		d.RepoFactory = nil
		d.Logger.Info("database connection closed")
	}

	_ = d.Logger.Sync()
	return nil
}
