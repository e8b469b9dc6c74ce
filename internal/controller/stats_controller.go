package controller

import (
	"github.com/gofiber/fiber/v2"

	"assetdesk_backend/internal/model"
	"assetdesk_backend/internal/portfolio"
	"assetdesk_backend/pkg/database"
)

// GetDashboardStats dashboard istatistiklerini getirir. The summary is folded
// in memory from fresh fetches on every request; nothing is cached.
func GetDashboardStats(c *fiber.Ctx) error {
	var properties []model.Property
	if err := database.GetDB().Find(&properties).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch properties",
		})
	}

	proprietors, rents, err := fetchRegistry()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch related records",
		})
	}

	return c.JSON(portfolio.ComputeDashboardStats(properties, proprietors, rents))
}

type ownershipWarning struct {
	PropertyID uint   `json:"property_id"`
	Name       string `json:"name"`
	Code       string `json:"code"`
}

type orphanedLease struct {
	RentID     uint                `json:"rent_id"`
	Type       model.RentDirection `json:"type"`
	PropertyID *uint               `json:"property_id"`
}

// GetIntegrityReport lists data-quality findings: properties whose legacy
// owner reference disagrees with the co-ownership list, proprietors filed
// under the wrong role category, and leases pointing at missing properties.
func GetIntegrityReport(c *fiber.Ctx) error {
	var properties []model.Property
	if err := database.GetDB().Find(&properties).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch properties",
		})
	}

	proprietors, rents, err := fetchRegistry()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch related records",
		})
	}

	var ownershipWarnings []ownershipWarning
	propertyIDs := make(map[uint]bool, len(properties))
	for i := range properties {
		p := &properties[i]
		propertyIDs[p.ID] = true
		if !p.OwnershipConsistent() {
			ownershipWarnings = append(ownershipWarnings, ownershipWarning{
				PropertyID: p.ID,
				Name:       p.Name,
				Code:       p.Code,
			})
		}
	}

	var roleWarnings []model.Proprietor
	for i := range proprietors {
		if !proprietors[i].RoleConsistent() {
			roleWarnings = append(roleWarnings, proprietors[i])
		}
	}

	// A lease is orphaned when its link was cleared or its property deleted.
	var orphaned []orphanedLease
	for i := range rents {
		r := &rents[i]
		if r.PropertyID == nil || !propertyIDs[*r.PropertyID] {
			orphaned = append(orphaned, orphanedLease{
				RentID:     r.ID,
				Type:       r.Type,
				PropertyID: r.PropertyID,
			})
		}
	}

	return c.JSON(fiber.Map{
		"ownership_warnings": ownershipWarnings,
		"role_warnings":      roleWarnings,
		"orphaned_leases":    orphaned,
	})
}
