package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/wellnest/internal/models"
)

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// SymptomCatalog lists the built-in symptom tags for ?kind=cycle (default)
// or ?kind=pregnancy. Clients may still submit free-form tags.
func (handler *Handler) SymptomCatalog(c *fiber.Ctx) error {
	if strings.EqualFold(strings.TrimSpace(c.Query("kind")), "pregnancy") {
		return c.JSON(models.DefaultPregnancySymptoms())
	}
	return c.JSON(models.DefaultCycleSymptoms())
}

func (handler *Handler) NotFound(c *fiber.Ctx) error {
	return handler.apiError(c, fiber.StatusNotFound, "error.not_found")
}
