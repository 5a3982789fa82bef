package handlers

import (
	"time"

	"github.com/upb/esg-data-management/models"
)

// CompanyResponse represents a company in API responses
type CompanyResponse struct {
	ID                   int64         `json:"id"`
	Name                 string        `json:"name"`
	Location             string        `json:"location"`
	Sector               models.Sector `json:"sector"`
	ReportingPeriodStart string        `json:"reporting_period_start"`
	ReportingPeriodEnd   string        `json:"reporting_period_end"`
	Description          *string       `json:"description"`
	CreatedAt            string        `json:"created_at"`
	UpdatedAt            string        `json:"updated_at"`
}

// BusinessUnitResponse represents a business unit in API responses
type BusinessUnitResponse struct {
	ID          int64           `json:"id"`
	Company     int64           `json:"company"`
	Name        string          `json:"name"`
	UnitType    models.UnitType `json:"unit_type"`
	Location    string          `json:"location"`
	Description *string         `json:"description"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
}

// MetricResponse represents a metric in API responses. Value is a decimal
// string with four fractional digits.
type MetricResponse struct {
	ID                int64                  `json:"id"`
	BusinessUnit      int64                  `json:"business_unit"`
	Name              string                 `json:"name"`
	ESGCategory       models.ESGCategory     `json:"esg_category"`
	MetricType        string                 `json:"metric_type"`
	UnitOfMeasurement models.MeasurementUnit `json:"unit_of_measurement"`
	Value             string                 `json:"value"`
	ReportingYear     int                    `json:"reporting_year"`
	ReportingPeriod   string                 `json:"reporting_period"`
	Description       *string                `json:"description"`
	DataSource        *string                `json:"data_source"`
	IsVerified        bool                   `json:"is_verified"`
	CreatedAt         string                 `json:"created_at"`
	UpdatedAt         string                 `json:"updated_at"`
}

// ESGSummaryResponse represents the per-company ESG summary
type ESGSummaryResponse struct {
	TotalMetrics        int  `json:"total_metrics"`
	Environmental       int  `json:"environmental"`
	Social              int  `json:"social"`
	Governance          int  `json:"governance"`
	Verified            int  `json:"verified"`
	LatestReportingYear *int `json:"latest_reporting_year"`
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func companyToResponse(c *models.Company) CompanyResponse {
	return CompanyResponse{
		ID:                   c.ID,
		Name:                 c.Name,
		Location:             c.Location,
		Sector:               c.Sector,
		ReportingPeriodStart: c.ReportingPeriodStart.String(),
		ReportingPeriodEnd:   c.ReportingPeriodEnd.String(),
		Description:          c.Description,
		CreatedAt:            formatTimestamp(c.CreatedAt),
		UpdatedAt:            formatTimestamp(c.UpdatedAt),
	}
}

func businessUnitToResponse(u *models.BusinessUnit) BusinessUnitResponse {
	return BusinessUnitResponse{
		ID:          u.ID,
		Company:     u.CompanyID,
		Name:        u.Name,
		UnitType:    u.UnitType,
		Location:    u.Location,
		Description: u.Description,
		IsActive:    u.IsActive,
		CreatedAt:   formatTimestamp(u.CreatedAt),
		UpdatedAt:   formatTimestamp(u.UpdatedAt),
	}
}

func metricToResponse(m *models.Metric) MetricResponse {
	return MetricResponse{
		ID:                m.ID,
		BusinessUnit:      m.BusinessUnitID,
		Name:              m.Name,
		ESGCategory:       m.ESGCategory,
		MetricType:        m.MetricType,
		UnitOfMeasurement: m.UnitOfMeasurement,
		Value:             m.Value.StringFixed(models.MetricValuePlaces),
		ReportingYear:     m.ReportingYear,
		ReportingPeriod:   m.ReportingPeriod,
		Description:       m.Description,
		DataSource:        m.DataSource,
		IsVerified:        m.IsVerified,
		CreatedAt:         formatTimestamp(m.CreatedAt),
		UpdatedAt:         formatTimestamp(m.UpdatedAt),
	}
}

func summaryToResponse(s *models.ESGSummary) ESGSummaryResponse {
	return ESGSummaryResponse{
		TotalMetrics:        s.TotalMetrics,
		Environmental:       s.Environmental,
		Social:              s.Social,
		Governance:          s.Governance,
		Verified:            s.Verified,
		LatestReportingYear: s.LatestReportingYear,
	}
}
