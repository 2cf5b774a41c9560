package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/wellnest/internal/services"
)

func (handler *Handler) ListPregnancyDays(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	days, err := handler.pregnancyDays.ListDays(user.ID)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(days)
}

func (handler *Handler) GetPregnancyDay(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	day, found, err := handler.pregnancyDays.GetDay(user.ID, c.Params("date"))
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	if !found {
		return handler.apiError(c, fiber.StatusNotFound, "error.not_found")
	}
	return c.JSON(day)
}

func (handler *Handler) SavePregnancyDay(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	var input services.PregnancyDayInput
	if err := c.BodyParser(&input); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "error.invalid_json")
	}

	day, err := handler.pregnancyDays.SaveDay(user.ID, c.Params("date"), input, handler.now())
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(day)
}

func (handler *Handler) DeletePregnancyDay(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}
	if err := handler.pregnancyDays.DeleteDay(user.ID, c.Params("date")); err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) DeletePregnancyMonth(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	results, err := handler.pregnancyDays.DeleteMonth(user.ID, c.Params("month"))
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return respondDeleteResults(c, results)
}

func (handler *Handler) GetPregnancyStatus(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	status, err := handler.settings.PregnancyStatus(user.ID, handler.now(), handler.location)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(status)
}

func (handler *Handler) TopPregnancySymptoms(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	top, err := handler.stats.TopPregnancySymptoms(user.ID, topSymptomsLimit(c))
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(top)
}
