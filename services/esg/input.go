package esg

import (
	"github.com/shopspring/decimal"
	"github.com/upb/esg-data-management/models"
)

// CompanyInput carries client-supplied company attributes. A nil field was
// not supplied (or was null).
type CompanyInput struct {
	Name                 *string        `json:"name"`
	Location             *string        `json:"location"`
	Sector               *models.Sector `json:"sector"`
	ReportingPeriodStart *models.Date   `json:"reporting_period_start"`
	ReportingPeriodEnd   *models.Date   `json:"reporting_period_end"`
	Description          *string        `json:"description"`
}

// BusinessUnitInput carries client-supplied business unit attributes.
type BusinessUnitInput struct {
	CompanyID   *int64           `json:"company"`
	Name        *string          `json:"name"`
	UnitType    *models.UnitType `json:"unit_type"`
	Location    *string          `json:"location"`
	Description *string          `json:"description"`
	IsActive    *bool            `json:"is_active"`
}

// MetricInput carries client-supplied metric attributes.
type MetricInput struct {
	BusinessUnitID    *int64                  `json:"business_unit"`
	Name              *string                 `json:"name"`
	ESGCategory       *models.ESGCategory     `json:"esg_category"`
	MetricType        *string                 `json:"metric_type"`
	UnitOfMeasurement *models.MeasurementUnit `json:"unit_of_measurement"`
	Value             *decimal.Decimal        `json:"value"`
	ReportingYear     *int                    `json:"reporting_year"`
	ReportingPeriod   *string                 `json:"reporting_period"`
	Description       *string                 `json:"description"`
	DataSource        *string                 `json:"data_source"`
	IsVerified        *bool                   `json:"is_verified"`
}

// assign copies src into dst. In replace mode an absent src resets dst to
// def; in partial mode dst is left alone.
func assign[T any](dst *T, src *T, def T, partial bool) {
	switch {
	case src != nil:
		*dst = *src
	case !partial:
		*dst = def
	}
}

// assignOptional is assign for nullable model fields.
func assignOptional[T any](dst **T, src *T, partial bool) {
	switch {
	case src != nil:
		v := *src
		*dst = &v
	case !partial:
		*dst = nil
	}
}

func (in CompanyInput) applyTo(c *models.Company, partial bool) {
	assign(&c.Name, in.Name, "", partial)
	assign(&c.Location, in.Location, "", partial)
	assign(&c.Sector, in.Sector, "", partial)
	assign(&c.ReportingPeriodStart, in.ReportingPeriodStart, models.Date{}, partial)
	assign(&c.ReportingPeriodEnd, in.ReportingPeriodEnd, models.Date{}, partial)
	assignOptional(&c.Description, in.Description, partial)
}

func (in BusinessUnitInput) applyTo(u *models.BusinessUnit, partial bool) {
	assign(&u.CompanyID, in.CompanyID, 0, partial)
	assign(&u.Name, in.Name, "", partial)
	assign(&u.UnitType, in.UnitType, "", partial)
	assign(&u.Location, in.Location, "", partial)
	assignOptional(&u.Description, in.Description, partial)
	assign(&u.IsActive, in.IsActive, true, partial)
}

func (in MetricInput) applyTo(m *models.Metric, partial bool) {
	assign(&m.BusinessUnitID, in.BusinessUnitID, 0, partial)
	assign(&m.Name, in.Name, "", partial)
	assign(&m.ESGCategory, in.ESGCategory, "", partial)
	assign(&m.MetricType, in.MetricType, "", partial)
	assign(&m.UnitOfMeasurement, in.UnitOfMeasurement, "", partial)
	assign(&m.Value, in.Value, decimal.Zero, partial)
	assign(&m.ReportingYear, in.ReportingYear, 0, partial)
	assign(&m.ReportingPeriod, in.ReportingPeriod, models.DefaultReportingPeriod, partial)
	assignOptional(&m.Description, in.Description, partial)
	assignOptional(&m.DataSource, in.DataSource, partial)
	assign(&m.IsVerified, in.IsVerified, false, partial)
}
