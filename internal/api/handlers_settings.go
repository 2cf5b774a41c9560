package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/wellnest/internal/models"
)

func (handler *Handler) GetSettings(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	settings, err := handler.settings.LoadSettings(user.ID)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(settings)
}

func (handler *Handler) PatchSettings(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	var patch models.SettingsPatch
	if err := c.BodyParser(&patch); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "error.invalid_json")
	}

	settings, err := handler.settings.SaveSettings(user.ID, patch)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(settings)
}
