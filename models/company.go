package models

import (
	"time"
)

// Sector is the industry classification of a Company
type Sector string

const (
	SectorTechnology     Sector = "TECHNOLOGY"
	SectorHealthcare     Sector = "HEALTHCARE"
	SectorFinance        Sector = "FINANCE"
	SectorEnergy         Sector = "ENERGY"
	SectorManufacturing  Sector = "MANUFACTURING"
	SectorRetail         Sector = "RETAIL"
	SectorAgriculture    Sector = "AGRICULTURE"
	SectorTransportation Sector = "TRANSPORTATION"
	SectorRealEstate     Sector = "REAL_ESTATE"
	SectorUtilities      Sector = "UTILITIES"
	SectorOther          Sector = "OTHER"
)

// Sectors lists every accepted sector in display order
var Sectors = []Sector{
	SectorTechnology, SectorHealthcare, SectorFinance, SectorEnergy, SectorManufacturing,
	SectorRetail, SectorAgriculture, SectorTransportation, SectorRealEstate, SectorUtilities, SectorOther,
}

// Valid reports whether s is one of the known sectors
func (s Sector) Valid() bool {
	for _, v := range Sectors {
		if v == s {
			return true
		}
	}
	return false
}

// Company is an organization reporting ESG data. It owns zero or more business units.
type Company struct {
	ID                   int64     `json:"id" db:"id"`
	Name                 string    `json:"name" db:"name" validate:"required,min=2,max=255"`
	Location             string    `json:"location" db:"location" validate:"required,max=255"`
	Sector               Sector    `json:"sector" db:"sector" validate:"required,oneof=TECHNOLOGY HEALTHCARE FINANCE ENERGY MANUFACTURING RETAIL AGRICULTURE TRANSPORTATION REAL_ESTATE UTILITIES OTHER"`
	ReportingPeriodStart Date      `json:"reporting_period_start" db:"reporting_period_start"`
	ReportingPeriodEnd   Date      `json:"reporting_period_end" db:"reporting_period_end"`
	Description          *string   `json:"description" db:"description"`
	CreatedAt            time.Time `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for the Company model
func (Company) TableName() string {
	return "companies"
}

// NewCompany creates a new Company with both timestamps set to now
func NewCompany(name, location string, sector Sector, start, end Date, now time.Time) *Company {
	return &Company{
		Name:                 name,
		Location:             location,
		Sector:               sector,
		ReportingPeriodStart: start,
		ReportingPeriodEnd:   end,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}
