package model

import (
	"time"

	"gorm.io/gorm"
)

// Rent Directions
type RentDirection string

const (
	RentDirectionOut RentDirection = "rent_out" // we are the landlord, collecting
	RentDirectionIn  RentDirection = "renting"  // we are the tenant, paying
)

// Lease Statuses
type LeaseStatus string

const (
	LeaseStatusListing    LeaseStatus = "listing"
	LeaseStatusActive     LeaseStatus = "active"
	LeaseStatusCompleted  LeaseStatus = "completed"
	LeaseStatusTerminated LeaseStatus = "terminated"
)

// Rent is a lease record in exactly one direction. The direction-prefixed
// column groups are the current schema generation; the flat Amount/StartDate/
// EndDate/Status/Location columns are the first generation and survive as
// fallback values on rows written before the split.
type Rent struct {
	gorm.Model

	// Cleared (not cascaded) when the lease is unlinked or the property is
	// deleted, so the history row itself persists.
	PropertyID *uint         `json:"property_id" gorm:"index"`
	Type       RentDirection `json:"type" gorm:"not null;index"`

	// rent_out generation-2 fields
	RentOutContractNo      string      `json:"rent_out_contract_no"`
	RentOutMonthlyRental   *float64    `json:"rent_out_monthly_rental"`
	RentOutPeriods         *int        `json:"rent_out_periods"`
	RentOutStartDate       *time.Time  `json:"rent_out_start_date"`
	RentOutEndDate         *time.Time  `json:"rent_out_end_date"`
	RentOutActualEndDate   *time.Time  `json:"rent_out_actual_end_date"`
	RentOutDepositReceived *float64    `json:"rent_out_deposit_received"`
	RentOutDepositDate     *time.Time  `json:"rent_out_deposit_date"`
	RentOutDepositReturned *float64    `json:"rent_out_deposit_returned"`
	RentOutDepositReturnAt *time.Time  `json:"rent_out_deposit_return_at"`
	RentOutTenantID        *uint       `json:"rent_out_tenant_id" gorm:"index"`
	RentOutStatus          LeaseStatus `json:"rent_out_status"`
	RentOutDescription     string      `json:"rent_out_description" gorm:"type:text"`

	// renting generation-2 fields
	RentingContractNo      string      `json:"renting_contract_no"`
	RentingMonthlyRental   *float64    `json:"renting_monthly_rental"`
	RentingPeriods         *int        `json:"renting_periods"`
	RentingStartDate       *time.Time  `json:"renting_start_date"`
	RentingEndDate         *time.Time  `json:"renting_end_date"`
	RentingActualEndDate   *time.Time  `json:"renting_actual_end_date"`
	RentingDepositPaid     *float64    `json:"renting_deposit_paid"`
	RentingDepositDate     *time.Time  `json:"renting_deposit_date"`
	RentingDepositReturned *float64    `json:"renting_deposit_returned"`
	RentingDepositReturnAt *time.Time  `json:"renting_deposit_return_at"`
	RentingLandlordID      *uint       `json:"renting_landlord_id" gorm:"index"`
	RentingStatus          LeaseStatus `json:"renting_status"`
	RentingDescription     string      `json:"renting_description" gorm:"type:text"`

	// generation-1 fallback fields
	Amount    *float64    `json:"amount"`
	StartDate *time.Time  `json:"start_date"`
	EndDate   *time.Time  `json:"end_date"`
	Status    LeaseStatus `json:"status"`
	Location  string      `json:"location"`

	CreatedBy uint `json:"created_by"`
}

// CounterpartyID returns the direction-specific counterparty reference:
// the tenant we collect from, or the landlord we pay.
func (r *Rent) CounterpartyID() *uint {
	if r.Type == RentDirectionIn {
		return r.RentingLandlordID
	}
	return r.RentOutTenantID
}

// Orphaned reports whether the lease has lost its property link.
func (r *Rent) Orphaned() bool {
	return r.PropertyID == nil
}
