package controller

import (
	"encoding/json"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"

	"assetdesk_backend/internal/model"
	"assetdesk_backend/pkg/database"
	"assetdesk_backend/pkg/utils/storage"
	"assetdesk_backend/pkg/utils/validation"
)

// UploadPropertyImage mülk için fotoğraf yükler
func UploadPropertyImage(c *fiber.Ctx) error {
	propertyIDStr := c.Params("property_id")
	propertyID, err := strconv.ParseUint(propertyIDStr, 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid property ID",
		})
	}

	var property model.Property
	if err := database.GetDB().First(&property, propertyID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Property not found",
		})
	}

	var imageCount int64
	database.GetDB().Model(&model.PropertyImage{}).
		Where("property_id = ?", propertyID).
		Count(&imageCount)

	if imageCount >= MaxPropertyImages {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Maximum image limit reached (16)",
		})
	}

	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file uploaded",
		})
	}

	if err := validation.ValidateImage(file); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	url, err := storage.UploadImage(file, "photos", property.Code)
	if err != nil {
		log.Printf("Image upload failed for property %d: %v", property.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not upload image",
		})
	}

	image := model.PropertyImage{
		PropertyID: uint(propertyID),
		URL:        url,
		Order:      int(imageCount),
		IsCover:    imageCount == 0,
	}

	if err := database.GetDB().Create(&image).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not save image record",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Image uploaded successfully",
		"image":   image,
	})
}

// DeletePropertyImage mülk fotoğrafını siler
func DeletePropertyImage(c *fiber.Ctx) error {
	imageIDStr := c.Params("image_id")
	imageID, err := strconv.ParseUint(imageIDStr, 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid image ID",
		})
	}

	var image model.PropertyImage
	if err := database.GetDB().First(&image, imageID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Image not found",
		})
	}

	if err := storage.DeleteImage(image.URL); err != nil {
		log.Printf("Could not delete file from bucket: %v", err)
	}

	if err := database.GetDB().Delete(&image).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete image",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// UploadGeoMap mülke kadastro/harita görseli ekler (en fazla iki adet)
func UploadGeoMap(c *fiber.Ctx) error {
	propertyIDStr := c.Params("property_id")
	propertyID, err := strconv.ParseUint(propertyIDStr, 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid property ID",
		})
	}

	var property model.Property
	if err := database.GetDB().First(&property, propertyID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Property not found",
		})
	}

	var maps []string
	if len(property.GeoMaps) > 0 {
		if err := json.Unmarshal(property.GeoMaps, &maps); err != nil {
			maps = nil
		}
	}
	if len(maps) >= MaxGeoMaps {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Maximum geo map limit reached (2)",
		})
	}

	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file uploaded",
		})
	}

	if err := validation.ValidateImage(file); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	url, err := storage.UploadImage(file, "geo-maps", property.Code)
	if err != nil {
		log.Printf("Geo map upload failed for property %d: %v", property.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not upload geo map",
		})
	}

	maps = append(maps, url)
	raw, err := json.Marshal(maps)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not encode geo map list",
		})
	}

	if err := database.GetDB().Model(&property).
		Update("geo_maps", datatypes.JSON(raw)).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not save geo map",
		})
	}

	return c.JSON(fiber.Map{
		"message":  "Geo map uploaded successfully",
		"geo_maps": maps,
	})
}
