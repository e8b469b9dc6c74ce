package controller

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"assetdesk_backend/internal/model"
	"assetdesk_backend/internal/portfolio"
	"assetdesk_backend/pkg/database"
	"assetdesk_backend/pkg/utils/jwt"
)

const (
	MaxPropertyImages = 16
	MaxGeoMaps        = 2
)

type PropertyInput struct {
	Name    string               `json:"name" validate:"required"`
	Code    string               `json:"code"`
	Address string               `json:"address"`
	Type    model.PropertyType   `json:"type" validate:"required"`
	Status  model.PropertyStatus `json:"status" validate:"required"`
	LandUse model.LandUse        `json:"land_use"`

	LotIndex string  `json:"lot_index"`
	LotArea  float64 `json:"lot_area" validate:"omitempty,min=0"`

	OwnerID  *uint  `json:"owner_id"`
	OwnerIDs []uint `json:"owner_ids"`
	TenantID *uint  `json:"tenant_id"`

	GeoMaps    []string        `json:"geo_maps"`
	Coordinate json.RawMessage `json:"coordinate"`

	PlanningNote string `json:"planning_note"`
	Notes        string `json:"notes"`

	Images []string `json:"images"`
}

func (in *PropertyInput) apply(p *model.Property) error {
	p.Name = in.Name
	p.Address = in.Address
	p.Type = in.Type
	p.Status = in.Status
	p.LandUse = in.LandUse
	p.LotIndex = in.LotIndex
	p.LotArea = in.LotArea
	p.OwnerID = in.OwnerID
	p.TenantID = in.TenantID
	p.PlanningNote = in.PlanningNote
	p.Notes = in.Notes
	if in.Code != "" {
		p.Code = in.Code
	}

	if in.OwnerIDs != nil {
		raw, err := json.Marshal(in.OwnerIDs)
		if err != nil {
			return err
		}
		p.OwnerIDs = datatypes.JSON(raw)
	}
	if in.GeoMaps != nil {
		raw, err := json.Marshal(in.GeoMaps)
		if err != nil {
			return err
		}
		p.GeoMaps = datatypes.JSON(raw)
	}
	if len(in.Coordinate) > 0 {
		p.Coordinate = datatypes.JSON(in.Coordinate)
	}
	return nil
}

// CreateProperty yeni mülk kaydı oluşturur
func CreateProperty(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)
	input := new(PropertyInput)

	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if len(input.Images) > MaxPropertyImages {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Maximum %d images allowed", MaxPropertyImages),
		})
	}
	if len(input.GeoMaps) > MaxGeoMaps {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Maximum %d geo maps allowed", MaxGeoMaps),
		})
	}

	property := model.Property{CreatedBy: claims.UserID}
	if err := input.apply(&property); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid ownership or map payload",
		})
	}

	// Historical imports may disagree; warn, never reject.
	if !property.OwnershipConsistent() {
		log.Printf("Ownership warning: property %q primary owner does not match co-ownership list head", property.Name)
	}

	tx := database.GetDB().Begin()

	if err := tx.Create(&property).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create property",
		})
	}

	for i, imageURL := range input.Images {
		image := model.PropertyImage{
			PropertyID: property.ID,
			URL:        imageURL,
			Order:      i,
			IsCover:    i == 0,
		}
		if err := tx.Create(&image).Error; err != nil {
			tx.Rollback()
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not save images",
			})
		}
	}

	if err := tx.Commit().Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not complete the property creation",
		})
	}

	database.GetDB().Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("property_images.order ASC")
	}).First(&property, property.ID)

	return c.Status(fiber.StatusCreated).JSON(property)
}

// UpdateProperty mülk kaydını günceller
func UpdateProperty(c *fiber.Ctx) error {
	id := c.Params("id")
	input := new(PropertyInput)

	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if len(input.GeoMaps) > MaxGeoMaps {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Maximum %d geo maps allowed", MaxGeoMaps),
		})
	}

	var property model.Property
	if err := database.GetDB().First(&property, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Property not found",
		})
	}

	if err := input.apply(&property); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid ownership or map payload",
		})
	}

	if !property.OwnershipConsistent() {
		log.Printf("Ownership warning: property %d primary owner does not match co-ownership list head", property.ID)
	}

	if err := database.GetDB().Save(&property).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update property",
		})
	}

	database.GetDB().Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("property_images.order ASC")
	}).First(&property, property.ID)

	return c.JSON(property)
}

// ListProperties tüm mülkleri ilişkileriyle birlikte listeler
func ListProperties(c *fiber.Ctx) error {
	var properties []model.Property
	if err := database.GetDB().
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("property_images.order ASC")
		}).
		Order("created_at desc").
		Find(&properties).Error; err != nil {
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

	return c.JSON(portfolio.ResolveAll(properties, proprietors, rents))
}

// GetProperty tek mülkün detayını getirir
func GetProperty(c *fiber.Ctx) error {
	id := c.Params("id")

	var property model.Property
	if err := database.GetDB().
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("property_images.order ASC")
		}).
		First(&property, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Property not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch property",
		})
	}

	proprietors, rents, err := fetchRegistry()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch related records",
		})
	}

	resolved := portfolio.ResolveProperty(property, proprietors, rents)

	// Effective lease readings are derived per request, aligned with Rents.
	views := make([]portfolio.LeaseView, 0, len(resolved.Rents))
	for i := range resolved.Rents {
		views = append(views, portfolio.ComputeLeaseView(&resolved.Rents[i]))
	}

	return c.JSON(fiber.Map{
		"property":    resolved,
		"lease_views": views,
	})
}

// DeleteProperty mülkü siler; kira kayıtları silinmez, sahipsiz kalır
func DeleteProperty(c *fiber.Ctx) error {
	id := c.Params("id")

	var property model.Property
	if err := database.GetDB().First(&property, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Property not found",
		})
	}

	if err := database.GetDB().Delete(&property).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete property",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// fetchRegistry loads the full proprietor and rent sets for in-memory joins.
func fetchRegistry() ([]model.Proprietor, []model.Rent, error) {
	var proprietors []model.Proprietor
	if err := database.GetDB().Find(&proprietors).Error; err != nil {
		return nil, nil, err
	}
	var rents []model.Rent
	if err := database.GetDB().Order("created_at asc").Find(&rents).Error; err != nil {
		return nil, nil, err
	}
	return proprietors, rents, nil
}
