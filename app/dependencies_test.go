package app

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upb/esg-data-management/config"
	"github.com/upb/esg-data-management/internal/clock"
	"github.com/upb/esg-data-management/repositories/postgres"
	"go.uber.org/zap/zaptest"
)

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		Server: config.ServerConfig{
			Host:            "localhost",
			Port:            8080,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Auth: config.AuthConfig{
			SigningKey:      "test-signing-key",
			Issuer:          "esg-api",
			AccessTokenTTL:  5 * time.Minute,
			RefreshTokenTTL: 24 * time.Hour,
		},
		Observability: config.ObservabilityConfig{
			LogLevel:  "debug",
			LogFormat: "json",
		},
	}
}

func newMockFactory(t *testing.T) (*postgres.RepositoryFactory, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	logger := zaptest.NewLogger(t)
	return postgres.NewRepositoryFactoryFromDB(postgres.NewDBFromConn(db, logger), logger), mock
}

func TestNewDependenciesFromFactory(t *testing.T) {
	t.Run("wires every component", func(t *testing.T) {
		factory, mock := newMockFactory(t)
		cfg := testConfig()
		clk := clock.NewFakeClock(time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC))

		deps, err := NewDependenciesFromFactory(context.Background(), cfg, factory, clk, zaptest.NewLogger(t))
		require.NoError(t, err)

		assert.Same(t, cfg, deps.Config)
		assert.NotNil(t, deps.DB)
		assert.NotNil(t, deps.Companies)
		assert.NotNil(t, deps.BusinessUnits)
		assert.NotNil(t, deps.Metrics)
		assert.NotNil(t, deps.Users)
		assert.NotNil(t, deps.TxManager)
		assert.NotNil(t, deps.CompanyHandler)
		assert.NotNil(t, deps.BusinessUnitHandler)
		assert.NotNil(t, deps.MetricHandler)
		assert.NotNil(t, deps.HealthHandler)
		assert.NotNil(t, deps.AuthHandler)
		assert.NotNil(t, deps.AuthMiddleware)
		assert.Nil(t, deps.HTTPMetrics)

		pair, err := deps.Tokens.IssuePair(1, "analyst")
		require.NoError(t, err)
		claims, err := deps.Tokens.ValidateToken(context.Background(), pair.Access)
		require.NoError(t, err)
		assert.Equal(t, "esg-api", claims.Issuer)
		assert.True(t, clk.Now().Add(5*time.Minute).Equal(claims.ExpiresAt.Time))

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("metrics enabled", func(t *testing.T) {
		factory, _ := newMockFactory(t)
		cfg := testConfig()
		cfg.Observability.MetricsEnabled = true

		deps, err := NewDependenciesFromFactory(context.Background(), cfg, factory, clock.System(), zaptest.NewLogger(t))
		require.NoError(t, err)
		require.NotNil(t, deps.HTTPMetrics)

		families, err := deps.HTTPMetrics.Registry().Gather()
		require.NoError(t, err)
		names := make([]string, 0, len(families))
		for _, f := range families {
			names = append(names, f.GetName())
		}
		assert.Contains(t, names, "go_sql_max_open_connections")
	})

	t.Run("creates bootstrap user", func(t *testing.T) {
		factory, mock := newMockFactory(t)
		cfg := testConfig()
		cfg.Auth.BootstrapUsername = "admin"
		cfg.Auth.BootstrapPassword = "change-me"

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE username = $1")).
			WithArgs("admin").
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "is_active", "created_at", "updated_at"}))
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectCommit()

		_, err := NewDependenciesFromFactory(context.Background(), cfg, factory, clock.System(), zaptest.NewLogger(t))
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("bootstrap failure", func(t *testing.T) {
		factory, mock := newMockFactory(t)
		cfg := testConfig()
		cfg.Auth.BootstrapUsername = "admin"
		cfg.Auth.BootstrapPassword = "change-me"

		mock.ExpectBegin().WillReturnError(errors.New("connection refused"))

		deps, err := NewDependenciesFromFactory(context.Background(), cfg, factory, clock.System(), zaptest.NewLogger(t))
		assert.Error(t, err)
		assert.Nil(t, deps)
		assert.Contains(t, err.Error(), "failed to ensure bootstrap user")
	})
}

func TestNewDependencies_DatabaseUnavailable(t *testing.T) {
	cfg := testConfig()
	cfg.Database = config.DatabaseConfig{
		Host:     "127.0.0.1",
		Port:     1,
		User:     "esg",
		Password: "esg",
		Database: "esg",
		SSLMode:  "disable",
	}

	deps, err := NewDependencies(context.Background(), cfg, zaptest.NewLogger(t))
	assert.Error(t, err)
	assert.Nil(t, deps)
	assert.Contains(t, err.Error(), "failed to initialize database")
}

func TestDependenciesClose(t *testing.T) {
	factory, mock := newMockFactory(t)
	mock.ExpectClose()

	deps, err := NewDependenciesFromFactory(context.Background(), testConfig(), factory, clock.System(), zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.NoError(t, deps.Close(context.Background()))
	assert.NoError(t, deps.Close(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
