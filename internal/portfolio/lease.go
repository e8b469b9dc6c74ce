// Package portfolio derives display views and dashboard statistics from the
// raw property, proprietor and rent collections. Every function here is a
// pure fold over its inputs: no database access, no package-level state, and
// nothing is cached — callers re-derive on every read.
package portfolio

import (
	"time"

	"assetdesk_backend/internal/model"
)

// LeaseView is the effective reading of a lease after reconciling the two
// schema generations: direction-specific field when present, else the legacy
// flat field, else absent.
type LeaseView struct {
	EffectiveStart  *time.Time        `json:"effective_start"`
	EffectiveEnd    *time.Time        `json:"effective_end"`
	EffectiveAmount float64           `json:"effective_amount"`
	TotalAmount     float64           `json:"total_amount"`
	Status          model.LeaseStatus `json:"status"`
	IsExpired       bool              `json:"is_expired"`
}

// ComputeLeaseView resolves a lease against the current instant.
func ComputeLeaseView(r *model.Rent) LeaseView {
	return LeaseViewAt(r, time.Now())
}

// LeaseViewAt resolves a lease against an explicit evaluation instant. A lease
// is expired only when its effective end date is strictly before the instant;
// a lease with no end date never expires.
func LeaseViewAt(r *model.Rent, at time.Time) LeaseView {
	var (
		start, end *time.Time
		amount     *float64
		periods    *int
		status     model.LeaseStatus
	)

	switch r.Type {
	case model.RentDirectionIn:
		start = r.RentingStartDate
		end = r.RentingEndDate
		amount = r.RentingMonthlyRental
		periods = r.RentingPeriods
		status = r.RentingStatus
	default:
		start = r.RentOutStartDate
		end = r.RentOutEndDate
		amount = r.RentOutMonthlyRental
		periods = r.RentOutPeriods
		status = r.RentOutStatus
	}

	if start == nil {
		start = r.StartDate
	}
	if end == nil {
		end = r.EndDate
	}
	if amount == nil {
		amount = r.Amount
	}
	if status == "" {
		status = r.Status
	}

	view := LeaseView{
		EffectiveStart: start,
		EffectiveEnd:   end,
		Status:         status,
	}
	if amount != nil {
		view.EffectiveAmount = *amount
	}

	// An absent period count still contributes one month's value.
	n := 1
	if periods != nil {
		n = *periods
	}
	view.TotalAmount = view.EffectiveAmount * float64(n)

	if end != nil && end.Before(at) {
		view.IsExpired = true
	}

	return view
}
