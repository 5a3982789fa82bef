package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ESGCategory is one of the three fixed ESG classifications
type ESGCategory string

const (
	CategoryEnvironmental ESGCategory = "ENVIRONMENTAL"
	CategorySocial        ESGCategory = "SOCIAL"
	CategoryGovernance    ESGCategory = "GOVERNANCE"
)

// ESGCategories lists the categories in their canonical order
var ESGCategories = []ESGCategory{CategoryEnvironmental, CategorySocial, CategoryGovernance}

// Valid reports whether c is a known category
func (c ESGCategory) Valid() bool {
	for _, v := range ESGCategories {
		if v == c {
			return true
		}
	}
	return false
}

// MeasurementUnit classifies the value of a Metric
type MeasurementUnit string

const (
	UnitKWh        MeasurementUnit = "KWH"
	UnitTonnes     MeasurementUnit = "TONNES"
	UnitLiters     MeasurementUnit = "LITERS"
	UnitHours      MeasurementUnit = "HOURS"
	UnitPercentage MeasurementUnit = "PERCENTAGE"
	UnitCount      MeasurementUnit = "COUNT"
	UnitRatio      MeasurementUnit = "RATIO"
	UnitCurrency   MeasurementUnit = "CURRENCY"
	UnitOther      MeasurementUnit = "OTHER"
)

// MeasurementUnits lists every accepted unit of measurement
var MeasurementUnits = []MeasurementUnit{
	UnitKWh, UnitTonnes, UnitLiters, UnitHours, UnitPercentage,
	UnitCount, UnitRatio, UnitCurrency, UnitOther,
}

// Valid reports whether u is a known unit of measurement
func (u MeasurementUnit) Valid() bool {
	for _, v := range MeasurementUnits {
		if v == u {
			return true
		}
	}
	return false
}

const (
	// DefaultReportingPeriod is used when a metric is created without a period
	DefaultReportingPeriod = "ANNUAL"

	// MetricValueDigits and MetricValuePlaces mirror the NUMERIC(15,4) column
	MetricValueDigits = 15
	MetricValuePlaces = 4
)

// Metric is a measurable ESG value reported by a BusinessUnit for a year and period.
// The tuple (BusinessUnitID, Name, ReportingYear, ReportingPeriod) is unique.
type Metric struct {
	ID                int64           `json:"id" db:"id"`
	BusinessUnitID    int64           `json:"business_unit" db:"business_unit_id" validate:"required,gt=0"`
	Name              string          `json:"name" db:"name" validate:"required,min=2,max=255"`
	ESGCategory       ESGCategory     `json:"esg_category" db:"esg_category" validate:"required,oneof=ENVIRONMENTAL SOCIAL GOVERNANCE"`
	MetricType        string          `json:"metric_type" db:"metric_type" validate:"required,max=100"`
	UnitOfMeasurement MeasurementUnit `json:"unit_of_measurement" db:"unit_of_measurement" validate:"required,oneof=KWH TONNES LITERS HOURS PERCENTAGE COUNT RATIO CURRENCY OTHER"`
	Value             decimal.Decimal `json:"value" db:"value"`
	ReportingYear     int             `json:"reporting_year" db:"reporting_year" validate:"required,gt=0"`
	ReportingPeriod   string          `json:"reporting_period" db:"reporting_period" validate:"required,max=50"`
	Description       *string         `json:"description" db:"description"`
	DataSource        *string         `json:"data_source" db:"data_source" validate:"omitempty,max=255"`
	IsVerified        bool            `json:"is_verified" db:"is_verified"`
	CreatedAt         time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for the Metric model
func (Metric) TableName() string {
	return "metrics"
}

// NewMetric creates an unverified annual Metric with both timestamps set to now
func NewMetric(businessUnitID int64, name string, category ESGCategory, metricType string, unit MeasurementUnit, value decimal.Decimal, year int, now time.Time) *Metric {
	return &Metric{
		BusinessUnitID:    businessUnitID,
		Name:              name,
		ESGCategory:       category,
		MetricType:        metricType,
		UnitOfMeasurement: unit,
		Value:             value,
		ReportingYear:     year,
		ReportingPeriod:   DefaultReportingPeriod,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// PrecisionFault names the first NUMERIC(digits, places) limit a value breaks.
type PrecisionFault int

const (
	PrecisionOK PrecisionFault = iota
	PrecisionTotalDigits
	PrecisionDecimalPlaces
	PrecisionWholeDigits
)

// CheckPrecision counts the digits of d as written, so "1.00000" has five
// decimal places. Only the coefficient and exponent are inspected; d is never
// rescaled, which keeps huge exponents such as 1e2000000000 cheap to reject.
func CheckPrecision(d decimal.Decimal, digits, places int) PrecisionFault {
	exp := int64(d.Exponent())
	n := int64(len(d.Coefficient().Text(10)))
	if d.Sign() < 0 {
		n--
	}

	var total, decimals int64
	switch {
	case exp >= 0:
		total = n
		if !d.IsZero() {
			total += exp
		}
	case -exp > n:
		total, decimals = -exp, -exp
	default:
		total, decimals = n, -exp
	}

	switch {
	case total > int64(digits):
		return PrecisionTotalDigits
	case decimals > int64(places):
		return PrecisionDecimalPlaces
	case total-decimals > int64(digits-places):
		return PrecisionWholeDigits
	}
	return PrecisionOK
}

// FitsPrecision reports whether d can be stored in a NUMERIC(digits, places) column.
func FitsPrecision(d decimal.Decimal, digits, places int) bool {
	return CheckPrecision(d, digits, places) == PrecisionOK
}

// ESGSummary is the derived per-company view over its metrics
type ESGSummary struct {
	CompanyID           int64 `json:"-"`
	TotalMetrics        int   `json:"total_metrics"`
	Environmental       int   `json:"environmental"`
	Social              int   `json:"social"`
	Governance          int   `json:"governance"`
	Verified            int   `json:"verified"`
	LatestReportingYear *int  `json:"latest_reporting_year"`
}
