package repositories

import (
	"context"
	"time"

	"github.com/upb/esg-data-management/models"
)

// TransactionManager manages database transactions
type TransactionManager interface {
	// Begin starts a new transaction. The returned Transaction's Context
	// carries the transaction so repositories called with it join it.
	Begin(ctx context.Context) (Transaction, error)
}

// Transaction represents a database transaction
type Transaction interface {
	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Context returns the transaction context
	Context() context.Context
}

// Page bounds a list query. A zero Limit means no limit.
type Page struct {
	Limit  int
	Offset int
}

// CompanyFilter narrows company listings.
type CompanyFilter struct {
	Sector *models.Sector
	// Search matches name or location, case-insensitively.
	Search string
	Page
}

// BusinessUnitFilter narrows business unit listings.
type BusinessUnitFilter struct {
	CompanyID *int64
	UnitType  *models.UnitType
	IsActive  *bool
	// Search matches unit name, company name or location.
	Search string
	Page
}

// MetricFilter narrows metric listings.
type MetricFilter struct {
	BusinessUnitID    *int64
	CompanyID         *int64
	ESGCategory       *models.ESGCategory
	ReportingYear     *int
	UnitOfMeasurement *models.MeasurementUnit
	IsVerified        *bool
	// Search matches metric name, unit name or company name.
	Search string
	Page
}

// CompanyRepository handles company data operations
type CompanyRepository interface {
	// Create inserts a company and sets its ID
	Create(ctx context.Context, company *models.Company) error

	// GetByID retrieves a company by ID
	GetByID(ctx context.Context, id int64) (*models.Company, error)

	// Exists reports whether a company with the ID exists
	Exists(ctx context.Context, id int64) (bool, error)

	// List retrieves companies ordered by name
	List(ctx context.Context, filter CompanyFilter) ([]*models.Company, error)

	// Update updates a company
	Update(ctx context.Context, company *models.Company) error

	// Delete deletes a company together with its business units and metrics
	Delete(ctx context.Context, id int64) error
}

// BusinessUnitRepository handles business unit data operations
type BusinessUnitRepository interface {
	// Create inserts a business unit and sets its ID
	Create(ctx context.Context, unit *models.BusinessUnit) error

	// GetByID retrieves a business unit by ID
	GetByID(ctx context.Context, id int64) (*models.BusinessUnit, error)

	// Exists reports whether a business unit with the ID exists
	Exists(ctx context.Context, id int64) (bool, error)

	// List retrieves business units ordered by company name, then name
	List(ctx context.Context, filter BusinessUnitFilter) ([]*models.BusinessUnit, error)

	// Update updates a business unit
	Update(ctx context.Context, unit *models.BusinessUnit) error

	// Delete deletes a business unit together with its metrics
	Delete(ctx context.Context, id int64) error
}

// MetricRepository handles metric data operations
type MetricRepository interface {
	// Create inserts a metric and sets its ID
	Create(ctx context.Context, metric *models.Metric) error

	// GetByID retrieves a metric by ID
	GetByID(ctx context.Context, id int64) (*models.Metric, error)

	// List retrieves metrics ordered by reporting year (newest first),
	// ESG category and name
	List(ctx context.Context, filter MetricFilter) ([]*models.Metric, error)

	// Update updates a metric
	Update(ctx context.Context, metric *models.Metric) error

	// Delete deletes a metric
	Delete(ctx context.Context, id int64) error

	// SummaryForCompany aggregates the metrics of every business unit of a
	// company in a single statement. Returns ErrNotFound for an unknown company.
	SummaryForCompany(ctx context.Context, companyID int64) (*models.ESGSummary, error)
}

// UserRepository handles user data operations
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id int64) (*models.User, error)

	// GetByUsername retrieves a user by username
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// UpdatePassword replaces a user's password hash
	UpdatePassword(ctx context.Context, id int64, passwordHash string, updatedAt time.Time) error
}

// Repositories aggregates all repository interfaces
type Repositories struct {
	Companies     CompanyRepository
	BusinessUnits BusinessUnitRepository
	Metrics       MetricRepository
	Users         UserRepository
}
