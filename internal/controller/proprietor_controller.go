package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"assetdesk_backend/internal/model"
	"assetdesk_backend/internal/store"
	"assetdesk_backend/pkg/database"
	"assetdesk_backend/pkg/utils/jwt"
)

type ProprietorInput struct {
	Name        string                   `json:"name" validate:"required"`
	Role        string                   `json:"role" validate:"required,oneof=owner tenant"`
	Type        model.ProprietorType     `json:"type" validate:"required"`
	Category    model.ProprietorCategory `json:"category"`
	EnglishName string                   `json:"english_name"`
	ShortName   string                   `json:"short_name"`
}

// CreateProprietor registers a counterparty and allocates its code from the
// role's prefix sequence.
func CreateProprietor(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)
	input := new(ProprietorInput)

	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	prefix := model.CodePrefixOwner
	if input.Role == "tenant" {
		prefix = model.CodePrefixTenant
	}

	code, err := model.NextProprietorCode(database.GetDB(), prefix)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not allocate proprietor code",
		})
	}

	proprietor := model.Proprietor{
		Name:        input.Name,
		Code:        code,
		Type:        input.Type,
		Category:    input.Category,
		EnglishName: input.EnglishName,
		ShortName:   input.ShortName,
		CreatedBy:   claims.UserID,
	}

	if err := database.GetDB().Create(&proprietor).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create proprietor",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(proprietor)
}

// ListProprietors kayıtlı tüm tarafları listeler
func ListProprietors(c *fiber.Ctx) error {
	var proprietors []model.Proprietor
	query := database.GetDB().Order("code asc")

	// optional role filter: ?role=owner / ?role=tenant
	switch c.Query("role") {
	case "owner":
		query = query.Where("code LIKE ?", model.CodePrefixOwner+"%")
	case "tenant":
		query = query.Where("code LIKE ?", model.CodePrefixTenant+"%")
	}

	if err := query.Find(&proprietors).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch proprietors",
		})
	}

	return c.JSON(proprietors)
}

// GetProprietor tek kaydı getirir
func GetProprietor(c *fiber.Ctx) error {
	id := c.Params("id")

	var proprietor model.Proprietor
	if err := database.GetDB().First(&proprietor, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Proprietor not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch proprietor",
		})
	}

	return c.JSON(proprietor)
}

// UpdateProprietor günceller; kod değişmez
func UpdateProprietor(c *fiber.Ctx) error {
	id := c.Params("id")
	input := new(ProprietorInput)

	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	var proprietor model.Proprietor
	if err := database.GetDB().First(&proprietor, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Proprietor not found",
		})
	}

	proprietor.Name = input.Name
	proprietor.Type = input.Type
	proprietor.Category = input.Category
	proprietor.EnglishName = input.EnglishName
	proprietor.ShortName = input.ShortName

	if err := database.GetDB().Save(&proprietor).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update proprietor",
		})
	}

	return c.JSON(proprietor)
}

// DeleteProprietor refuses the delete while any property or rent still
// references the record, and answers with the offenders.
func DeleteProprietor(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid proprietor ID",
		})
	}

	var proprietor model.Proprietor
	if err := database.GetDB().First(&proprietor, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Proprietor not found",
		})
	}

	ok, refs, err := store.New(database.GetDB()).Delete(store.KindProprietor, uint(id))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete proprietor",
		})
	}

	if !ok {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":      "Proprietor is still referenced",
			"references": refs,
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
