package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"assetdesk_backend/internal/model"
	"assetdesk_backend/internal/portfolio"
	"assetdesk_backend/internal/store"
	"assetdesk_backend/pkg/database"
	"assetdesk_backend/pkg/utils/jwt"
)

// RentInput carries both direction-prefixed field sets; the form only fills
// the set matching Type. Changing the direction of an existing lease means
// re-entering every direction-specific field, so edits keep Type as-is.
type RentInput struct {
	PropertyID *uint               `json:"property_id"`
	Type       model.RentDirection `json:"type" validate:"required,oneof=rent_out renting"`

	RentOutContractNo      string            `json:"rent_out_contract_no"`
	RentOutMonthlyRental   *float64          `json:"rent_out_monthly_rental" validate:"omitempty,min=0"`
	RentOutPeriods         *int              `json:"rent_out_periods" validate:"omitempty,min=1"`
	RentOutStartDate       *time.Time        `json:"rent_out_start_date"`
	RentOutEndDate         *time.Time        `json:"rent_out_end_date"`
	RentOutActualEndDate   *time.Time        `json:"rent_out_actual_end_date"`
	RentOutDepositReceived *float64          `json:"rent_out_deposit_received" validate:"omitempty,min=0"`
	RentOutDepositDate     *time.Time        `json:"rent_out_deposit_date"`
	RentOutDepositReturned *float64          `json:"rent_out_deposit_returned" validate:"omitempty,min=0"`
	RentOutDepositReturnAt *time.Time        `json:"rent_out_deposit_return_at"`
	RentOutTenantID        *uint             `json:"rent_out_tenant_id"`
	RentOutStatus          model.LeaseStatus `json:"rent_out_status"`
	RentOutDescription     string            `json:"rent_out_description"`

	RentingContractNo      string            `json:"renting_contract_no"`
	RentingMonthlyRental   *float64          `json:"renting_monthly_rental" validate:"omitempty,min=0"`
	RentingPeriods         *int              `json:"renting_periods" validate:"omitempty,min=1"`
	RentingStartDate       *time.Time        `json:"renting_start_date"`
	RentingEndDate         *time.Time        `json:"renting_end_date"`
	RentingActualEndDate   *time.Time        `json:"renting_actual_end_date"`
	RentingDepositPaid     *float64          `json:"renting_deposit_paid" validate:"omitempty,min=0"`
	RentingDepositDate     *time.Time        `json:"renting_deposit_date"`
	RentingDepositReturned *float64          `json:"renting_deposit_returned" validate:"omitempty,min=0"`
	RentingDepositReturnAt *time.Time        `json:"renting_deposit_return_at"`
	RentingLandlordID      *uint             `json:"renting_landlord_id"`
	RentingStatus          model.LeaseStatus `json:"renting_status"`
	RentingDescription     string            `json:"renting_description"`
}

func (in *RentInput) apply(r *model.Rent) {
	r.PropertyID = in.PropertyID

	r.RentOutContractNo = in.RentOutContractNo
	r.RentOutMonthlyRental = in.RentOutMonthlyRental
	r.RentOutPeriods = in.RentOutPeriods
	r.RentOutStartDate = in.RentOutStartDate
	r.RentOutEndDate = in.RentOutEndDate
	r.RentOutActualEndDate = in.RentOutActualEndDate
	r.RentOutDepositReceived = in.RentOutDepositReceived
	r.RentOutDepositDate = in.RentOutDepositDate
	r.RentOutDepositReturned = in.RentOutDepositReturned
	r.RentOutDepositReturnAt = in.RentOutDepositReturnAt
	r.RentOutTenantID = in.RentOutTenantID
	r.RentOutStatus = in.RentOutStatus
	r.RentOutDescription = in.RentOutDescription

	r.RentingContractNo = in.RentingContractNo
	r.RentingMonthlyRental = in.RentingMonthlyRental
	r.RentingPeriods = in.RentingPeriods
	r.RentingStartDate = in.RentingStartDate
	r.RentingEndDate = in.RentingEndDate
	r.RentingActualEndDate = in.RentingActualEndDate
	r.RentingDepositPaid = in.RentingDepositPaid
	r.RentingDepositDate = in.RentingDepositDate
	r.RentingDepositReturned = in.RentingDepositReturned
	r.RentingDepositReturnAt = in.RentingDepositReturnAt
	r.RentingLandlordID = in.RentingLandlordID
	r.RentingStatus = in.RentingStatus
	r.RentingDescription = in.RentingDescription
}

// CreateRent yeni kira kaydı oluşturur
func CreateRent(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)
	input := new(RentInput)

	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if input.Type != model.RentDirectionOut && input.Type != model.RentDirectionIn {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid rent direction",
		})
	}

	if input.PropertyID != nil {
		var property model.Property
		if err := database.GetDB().First(&property, *input.PropertyID).Error; err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Referenced property does not exist",
			})
		}
	}

	rent := model.Rent{Type: input.Type, CreatedBy: claims.UserID}
	input.apply(&rent)

	if err := database.GetDB().Create(&rent).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create rent record",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"rent": rent,
		"view": portfolio.ComputeLeaseView(&rent),
	})
}

// ListRents kira kayıtlarını listeler; ?type= ile yön filtrelenir
func ListRents(c *fiber.Ctx) error {
	query := database.GetDB().Order("created_at asc")

	if direction := c.Query("type"); direction != "" {
		query = query.Where("type = ?", direction)
	}
	if c.Query("orphaned") == "true" {
		query = query.Where("property_id IS NULL")
	}

	var rents []model.Rent
	if err := query.Find(&rents).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch rent records",
		})
	}

	type rentWithView struct {
		model.Rent
		View portfolio.LeaseView `json:"view"`
	}

	out := make([]rentWithView, 0, len(rents))
	for i := range rents {
		out = append(out, rentWithView{
			Rent: rents[i],
			View: portfolio.ComputeLeaseView(&rents[i]),
		})
	}

	return c.JSON(out)
}

// GetRent tek kira kaydını efektif değerleriyle getirir
func GetRent(c *fiber.Ctx) error {
	id := c.Params("id")

	var rent model.Rent
	if err := database.GetDB().First(&rent, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Rent record not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch rent record",
		})
	}

	return c.JSON(fiber.Map{
		"rent": rent,
		"view": portfolio.ComputeLeaseView(&rent),
	})
}

// UpdateRent kira kaydını günceller; yön değiştirilemez
func UpdateRent(c *fiber.Ctx) error {
	id := c.Params("id")
	input := new(RentInput)

	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	var rent model.Rent
	if err := database.GetDB().First(&rent, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Rent record not found",
		})
	}

	if input.Type != "" && input.Type != rent.Type {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Rent direction cannot be changed; create a new record instead",
		})
	}

	input.apply(&rent)

	if err := database.GetDB().Save(&rent).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update rent record",
		})
	}

	return c.JSON(fiber.Map{
		"rent": rent,
		"view": portfolio.ComputeLeaseView(&rent),
	})
}

// DeleteRent unlinks the lease from its property. The row is never removed:
// history is expected to persist, only the association is dropped.
func DeleteRent(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid rent ID",
		})
	}

	var rent model.Rent
	if err := database.GetDB().First(&rent, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Rent record not found",
		})
	}

	if _, _, err := store.New(database.GetDB()).Delete(store.KindRent, uint(id)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not unlink rent record",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
