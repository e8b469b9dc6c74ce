package portfolio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"assetdesk_backend/internal/model"
)

func TestZeroInputStats(t *testing.T) {
	got := ComputeDashboardStats(nil, nil, nil)

	assert.Equal(t, 0, got.TotalProperties)
	assert.Equal(t, 0, got.TotalProprietors)
	assert.Equal(t, 0, got.RentingLeases)
	assert.Equal(t, 0, got.ExpiredLeases)
	assert.Equal(t, 0.0, got.TotalIncome)
	assert.Equal(t, 0.0, got.TotalExpenses)
	assert.Equal(t, 0.0, got.NetProfit)

	// every status is keyed even with no properties
	assert.Equal(t, map[model.PropertyStatus]int{
		model.PropertyStatusHolding:   0,
		model.PropertyStatusRenting:   0,
		model.PropertyStatusSold:      0,
		model.PropertyStatusSuspended: 0,
	}, got.StatusBreakdown)
}

func TestStatusBreakdown(t *testing.T) {
	props := []model.Property{
		{Status: model.PropertyStatusHolding},
		{Status: model.PropertyStatusRenting},
		{Status: model.PropertyStatusRenting},
		{Status: model.PropertyStatusSold},
	}

	got := ComputeDashboardStats(props, nil, nil)

	assert.Equal(t, 4, got.TotalProperties)
	assert.Equal(t, 1, got.StatusBreakdown[model.PropertyStatusHolding])
	assert.Equal(t, 2, got.StatusBreakdown[model.PropertyStatusRenting])
	assert.Equal(t, 1, got.StatusBreakdown[model.PropertyStatusSold])
	assert.Equal(t, 0, got.StatusBreakdown[model.PropertyStatusSuspended])
}

func TestIncomeExpenseAndNet(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rents := []model.Rent{
		{ // active rent_out, 12 x 50000
			Type:                 model.RentDirectionOut,
			RentOutMonthlyRental: f64(50000),
			RentOutPeriods:       iptr(12),
			RentOutStatus:        model.LeaseStatusActive,
		},
		{ // listing: excluded from income
			Type:                 model.RentDirectionOut,
			RentOutMonthlyRental: f64(99999),
			RentOutStatus:        model.LeaseStatusListing,
		},
		{ // renting: expense, 24 x 30000
			Type:                 model.RentDirectionIn,
			RentingMonthlyRental: f64(30000),
			RentingPeriods:       iptr(24),
			RentingStatus:        model.LeaseStatusActive,
		},
	}

	got := DashboardStatsAt(nil, nil, rents, now)

	assert.Equal(t, 600000.0, got.TotalIncome)
	assert.Equal(t, 720000.0, got.TotalExpenses)
	assert.Equal(t, -120000.0, got.NetProfit) // signed, may be negative
	assert.Equal(t, 1, got.RentingLeases)
	assert.Equal(t, 0, got.ExpiredLeases)
}

func TestExpiredLeasesCountBothDirections(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	past := now.AddDate(-1, 0, 0)

	rents := []model.Rent{
		{
			Type:           model.RentDirectionOut,
			RentOutEndDate: tptr(past),
			RentOutStatus:  model.LeaseStatusActive,
		},
		{
			Type:    model.RentDirectionIn,
			EndDate: tptr(past), // legacy end date still expires
		},
		{
			Type: model.RentDirectionOut, // no end date, never expired
		},
	}

	got := DashboardStatsAt(nil, nil, rents, now)

	assert.Equal(t, 2, got.ExpiredLeases)
	// expired rent_out is not an active tenancy
	assert.Equal(t, 0, got.RentingLeases)
}

func TestMalformedLeaseDoesNotAbortFold(t *testing.T) {
	rents := []model.Rent{
		{Type: model.RentDirectionOut, RentOutStatus: model.LeaseStatusActive}, // no amounts at all
		{Type: model.RentDirectionOut, RentOutMonthlyRental: f64(100), RentOutStatus: model.LeaseStatusCompleted},
	}

	got := ComputeDashboardStats(nil, nil, rents)

	// the empty record contributes zero and the fold continues
	assert.Equal(t, 100.0, got.TotalIncome)
}

func TestStatsIdempotent(t *testing.T) {
	now := time.Now()
	props := []model.Property{{Status: model.PropertyStatusHolding}}
	proprietors := []model.Proprietor{{Code: "A01"}}
	rents := []model.Rent{{Type: model.RentDirectionOut, Amount: f64(10)}}

	first := DashboardStatsAt(props, proprietors, rents, now)
	second := DashboardStatsAt(props, proprietors, rents, now)

	assert.Equal(t, first, second)
}
