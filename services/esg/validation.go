package esg

import (
	"fmt"
	"time"

	"github.com/upb/esg-data-management/models"
	"github.com/upb/esg-data-management/services"
	"github.com/upb/esg-data-management/utils"
)

const (
	msgRequired       = "This field is required."
	msgPeriodOrder    = "Reporting period end date must be after start date."
	msgTotalDigits    = "Ensure that there are no more than %d digits in total."
	msgDecimalPlaces  = "Ensure that there are no more than %d decimal places."
	msgIntegerDigits  = "Ensure that there are no more than %d digits before the decimal point."
	msgFutureYear     = "Reporting year cannot be in the future (current year: %d)."
	msgMissingObject  = "Invalid pk \"%d\" - object does not exist."
	msgUniqueTogether = "The fields %s must make a unique set."
)

// fieldErrors collects the tag-level failures of a model, keyed by JSON field name.
func fieldErrors(model interface{}) map[string]string {
	fields := make(map[string]string)
	for k, v := range utils.GetValidationFields(utils.ValidateStruct(model)) {
		fields[k] = v
	}
	return fields
}

func finish(fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	return services.NewValidationError(fields)
}

// ValidateCompany checks field constraints and that the reporting period
// ends strictly after it starts.
func ValidateCompany(c *models.Company) error {
	fields := fieldErrors(c)

	if c.ReportingPeriodStart.IsZero() {
		fields["reporting_period_start"] = msgRequired
	}
	if c.ReportingPeriodEnd.IsZero() {
		fields["reporting_period_end"] = msgRequired
	}
	if !c.ReportingPeriodStart.IsZero() && !c.ReportingPeriodEnd.IsZero() &&
		!c.ReportingPeriodEnd.After(c.ReportingPeriodStart) {
		fields["reporting_period_start"] = msgPeriodOrder
		fields["reporting_period_end"] = msgPeriodOrder
	}

	return finish(fields)
}

// ValidateBusinessUnit checks field constraints. The company reference is
// checked against storage by the service.
func ValidateBusinessUnit(u *models.BusinessUnit) error {
	return finish(fieldErrors(u))
}

// ValidateMetric checks field constraints, the NUMERIC(15,4) precision of
// the value and that the reporting year is not after now's year.
func ValidateMetric(m *models.Metric, now time.Time) error {
	fields := fieldErrors(m)

	switch models.CheckPrecision(m.Value, models.MetricValueDigits, models.MetricValuePlaces) {
	case models.PrecisionTotalDigits:
		fields["value"] = fmt.Sprintf(msgTotalDigits, models.MetricValueDigits)
	case models.PrecisionDecimalPlaces:
		fields["value"] = fmt.Sprintf(msgDecimalPlaces, models.MetricValuePlaces)
	case models.PrecisionWholeDigits:
		fields["value"] = fmt.Sprintf(msgIntegerDigits, models.MetricValueDigits-models.MetricValuePlaces)
	}

	if m.ReportingYear > now.Year() {
		fields["reporting_year"] = fmt.Sprintf(msgFutureYear, now.Year())
	}

	return finish(fields)
}
