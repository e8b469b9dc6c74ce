package controller

import (
	"github.com/gofiber/fiber/v2"

	"assetdesk_backend/internal/store"
	"assetdesk_backend/pkg/database"
	"assetdesk_backend/pkg/keyconv"
)

// ExportPortfolio dumps every record in the application naming convention.
// The UI keeps this payload as its local mirror of the portfolio, so keys are
// translated out of the persistence convention before they leave the server.
func ExportPortfolio(c *fiber.Ctx) error {
	s := store.New(database.GetDB())

	out := fiber.Map{}
	for kind, field := range map[store.Kind]string{
		store.KindProperty:   "properties",
		store.KindProprietor: "proprietors",
		store.KindRent:       "rents",
	} {
		rows, err := s.FetchAll(kind)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not export " + string(kind) + " records",
			})
		}
		converted := make([]map[string]interface{}, 0, len(rows))
		for _, row := range rows {
			converted = append(converted, keyconv.ToApplicationForm(row))
		}
		out[field] = converted
	}

	return c.JSON(out)
}

type importPayload struct {
	Properties  []map[string]interface{} `json:"properties"`
	Proprietors []map[string]interface{} `json:"proprietors"`
	Rents       []map[string]interface{} `json:"rents"`
}

// ImportPortfolio restores records from an export payload. Keys arrive in the
// application convention and are translated back before the upsert; rows that
// fail are reported but do not abort the rest of the batch.
func ImportPortfolio(c *fiber.Ctx) error {
	payload := new(importPayload)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid import payload",
		})
	}

	s := store.New(database.GetDB())

	imported := 0
	var failures []fiber.Map

	batches := []struct {
		kind    store.Kind
		records []map[string]interface{}
	}{
		{store.KindProprietor, payload.Proprietors},
		{store.KindProperty, payload.Properties},
		{store.KindRent, payload.Rents},
	}

	for _, batch := range batches {
		for _, record := range batch.records {
			_, err := s.Upsert(batch.kind, keyconv.ToStorageForm(record))
			if err != nil {
				failures = append(failures, fiber.Map{
					"kind":  batch.kind,
					"error": err.Error(),
				})
				continue
			}
			imported++
		}
	}

	return c.JSON(fiber.Map{
		"imported": imported,
		"failures": failures,
	})
}
