package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/wellnest/internal/services"
)

// ListCycleDays returns every record keyed by date, or an ordered slice when
// from/to bounds are given.
func (handler *Handler) ListCycleDays(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	from, to := c.Query("from"), c.Query("to")
	if strings.TrimSpace(from) != "" || strings.TrimSpace(to) != "" {
		days, err := handler.cycleDays.ListDaysInRange(user.ID, from, to)
		if err != nil {
			return handler.respondServiceError(c, err)
		}
		return c.JSON(days)
	}

	days, err := handler.cycleDays.ListDays(user.ID)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(days)
}

func (handler *Handler) GetCycleDay(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	day, found, err := handler.cycleDays.GetDay(user.ID, c.Params("date"))
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	if !found {
		return handler.apiError(c, fiber.StatusNotFound, "error.not_found")
	}
	return c.JSON(day)
}

func (handler *Handler) SaveCycleDay(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	var input services.CycleDayInput
	if err := c.BodyParser(&input); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "error.invalid_json")
	}

	day, err := handler.cycleDays.SaveDay(user.ID, c.Params("date"), input, handler.now())
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(day)
}

func (handler *Handler) DeleteCycleDay(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}
	if err := handler.cycleDays.DeleteDay(user.ID, c.Params("date")); err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) DeleteCycleMonth(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	results, err := handler.cycleDays.DeleteMonth(user.ID, c.Params("month"))
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return respondDeleteResults(c, results)
}

func (handler *Handler) ListPeriodStarts(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	descending := strings.EqualFold(strings.TrimSpace(c.Query("order")), "desc")
	starts, err := handler.stats.PeriodStarts(user.ID, descending)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(starts)
}

func (handler *Handler) GetCycleStats(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	stats, err := handler.stats.CycleStats(user.ID, handler.now())
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(stats)
}

func (handler *Handler) TopCycleSymptoms(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	top, err := handler.stats.TopCycleSymptoms(user.ID, topSymptomsLimit(c))
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(top)
}

func topSymptomsLimit(c *fiber.Ctx) int {
	limit := c.QueryInt("limit", services.DefaultTopSymptomsLimit)
	if limit <= 0 {
		return services.DefaultTopSymptomsLimit
	}
	return limit
}

// respondDeleteResults answers 207 when at least one key could not be
// deleted so callers can retry the failed dates.
func respondDeleteResults(c *fiber.Ctx, results []services.DeleteResult) error {
	status := fiber.StatusOK
	if services.DeleteResultsFailed(results) > 0 {
		status = fiber.StatusMultiStatus
	}
	return c.Status(status).JSON(fiber.Map{
		"results": results,
		"failed":  services.DeleteResultsFailed(results),
	})
}
