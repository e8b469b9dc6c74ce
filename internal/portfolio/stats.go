package portfolio

import (
	"time"

	"assetdesk_backend/internal/model"
)

// DashboardStats genel dashboard istatistikleri
type DashboardStats struct {
	TotalProperties  int                          `json:"total_properties"`
	TotalProprietors int                          `json:"total_proprietors"`
	StatusBreakdown  map[model.PropertyStatus]int `json:"status_breakdown"`
	RentingLeases    int                          `json:"renting_leases"`
	ExpiredLeases    int                          `json:"expired_leases"`
	TotalIncome      float64                      `json:"total_income"`
	TotalExpenses    float64                      `json:"total_expenses"`
	NetProfit        float64                      `json:"net_profit"`
}

// ComputeDashboardStats folds the full data set into the dashboard summary.
func ComputeDashboardStats(properties []model.Property, proprietors []model.Proprietor, rents []model.Rent) DashboardStats {
	return DashboardStatsAt(properties, proprietors, rents, time.Now())
}

// DashboardStatsAt is ComputeDashboardStats with an explicit evaluation
// instant for the expiry predicate. Empty inputs yield the all-zero summary;
// a malformed lease contributes its best-effort resolved values and the fold
// continues.
func DashboardStatsAt(properties []model.Property, proprietors []model.Proprietor, rents []model.Rent, at time.Time) DashboardStats {
	stats := DashboardStats{
		TotalProperties:  len(properties),
		TotalProprietors: len(proprietors),
		// All four statuses are always keyed, zero-defaulted.
		StatusBreakdown: map[model.PropertyStatus]int{
			model.PropertyStatusHolding:   0,
			model.PropertyStatusRenting:   0,
			model.PropertyStatusSold:      0,
			model.PropertyStatusSuspended: 0,
		},
	}

	for _, p := range properties {
		stats.StatusBreakdown[p.Status]++
	}

	for i := range rents {
		r := &rents[i]
		view := LeaseViewAt(r, at)

		if view.IsExpired {
			stats.ExpiredLeases++
		}

		switch r.Type {
		case model.RentDirectionIn:
			stats.TotalExpenses += view.TotalAmount
		default:
			// Speculative listings do not count as income yet.
			if view.Status != model.LeaseStatusListing {
				stats.TotalIncome += view.TotalAmount
			}
			if view.Status == model.LeaseStatusActive && !view.IsExpired {
				stats.RentingLeases++
			}
		}
	}

	stats.NetProfit = stats.TotalIncome - stats.TotalExpenses
	return stats
}
