package models

import (
	"time"
)

// UnitType classifies a BusinessUnit
type UnitType string

const (
	UnitTypeDepartment UnitType = "DEPARTMENT"
	UnitTypeDivision   UnitType = "DIVISION"
	UnitTypeSubsidiary UnitType = "SUBSIDIARY"
	UnitTypeBranch     UnitType = "BRANCH"
	UnitTypeFacility   UnitType = "FACILITY"
	UnitTypeRegion     UnitType = "REGION"
	UnitTypeOther      UnitType = "OTHER"
)

// UnitTypes lists every accepted unit type
var UnitTypes = []UnitType{
	UnitTypeDepartment, UnitTypeDivision, UnitTypeSubsidiary, UnitTypeBranch,
	UnitTypeFacility, UnitTypeRegion, UnitTypeOther,
}

// Valid reports whether t is one of the known unit types
func (t UnitType) Valid() bool {
	for _, v := range UnitTypes {
		if v == t {
			return true
		}
	}
	return false
}

// BusinessUnit is a subdivision of exactly one Company.
// The pair (CompanyID, Name) is unique.
type BusinessUnit struct {
	ID          int64     `json:"id" db:"id"`
	CompanyID   int64     `json:"company" db:"company_id" validate:"required,gt=0"`
	Name        string    `json:"name" db:"name" validate:"required,min=2,max=255"`
	UnitType    UnitType  `json:"unit_type" db:"unit_type" validate:"required,oneof=DEPARTMENT DIVISION SUBSIDIARY BRANCH FACILITY REGION OTHER"`
	Location    string    `json:"location" db:"location" validate:"required,max=255"`
	Description *string   `json:"description" db:"description"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for the BusinessUnit model
func (BusinessUnit) TableName() string {
	return "business_units"
}

// NewBusinessUnit creates an active BusinessUnit with both timestamps set to now
func NewBusinessUnit(companyID int64, name string, unitType UnitType, location string, now time.Time) *BusinessUnit {
	return &BusinessUnit{
		CompanyID: companyID,
		Name:      name,
		UnitType:  unitType,
		Location:  location,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
