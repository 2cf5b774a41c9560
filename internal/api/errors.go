package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/wellnest/internal/sentiment"
	"github.com/terraincognita07/wellnest/internal/services"
	"go.uber.org/zap"
)

type errorMapping struct {
	target error
	status int
	key    string
}

var serviceErrorMappings = []errorMapping{
	{services.ErrInvalidDate, fiber.StatusBadRequest, "error.invalid_date"},
	{services.ErrInvalidMonth, fiber.StatusBadRequest, "error.invalid_month"},
	{services.ErrInvalidPeriodStatus, fiber.StatusBadRequest, "error.invalid_period_status"},
	{services.ErrInvalidFlow, fiber.StatusBadRequest, "error.invalid_flow"},
	{services.ErrFuturePeriodDate, fiber.StatusUnprocessableEntity, "error.future_period_date"},
	{services.ErrPregnancyNotConfigured, fiber.StatusConflict, "error.pregnancy_not_configured"},
	{services.ErrInvalidAppointment, fiber.StatusBadRequest, "error.invalid_appointment"},
	{services.ErrPastAppointmentRemoval, fiber.StatusUnprocessableEntity, "error.past_appointment_removal"},
	{services.ErrInvalidSettingsDate, fiber.StatusBadRequest, "error.invalid_settings_date"},
	{services.ErrExportFromDateInvalid, fiber.StatusBadRequest, "error.invalid_date"},
	{services.ErrExportToDateInvalid, fiber.StatusBadRequest, "error.invalid_date"},
	{services.ErrExportRangeInvalid, fiber.StatusBadRequest, "error.invalid_range"},
	{services.ErrAuthCredentialsInvalid, fiber.StatusUnauthorized, "error.invalid_credentials"},
	{services.ErrWeakPassword, fiber.StatusBadRequest, "error.weak_password"},
	{services.ErrEmailAlreadyRegistered, fiber.StatusConflict, "error.email_taken"},
	{services.ErrUserNotFound, fiber.StatusNotFound, "error.not_found"},
	{sentiment.ErrEmptyText, fiber.StatusBadRequest, "error.empty_text"},
	{sentiment.ErrSentimentUnavailable, fiber.StatusServiceUnavailable, "error.sentiment_unavailable"},
	{services.ErrStoreUnavailable, fiber.StatusServiceUnavailable, "error.store_unavailable"},
}

func classifyServiceError(err error) (int, string) {
	for _, mapping := range serviceErrorMappings {
		if errors.Is(err, mapping.target) {
			return mapping.status, mapping.key
		}
	}
	return fiber.StatusInternalServerError, "error.internal"
}

// apiError writes {"error": key, "message": localized text}.
func (handler *Handler) apiError(c *fiber.Ctx, status int, key string) error {
	return c.Status(status).JSON(fiber.Map{
		"error":   key,
		"message": handler.i18n.Translate(currentLanguage(c), key),
	})
}

func (handler *Handler) respondServiceError(c *fiber.Ctx, err error) error {
	status, key := classifyServiceError(err)
	if status >= fiber.StatusInternalServerError {
		handler.logger.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Error(err),
		)
	}
	return handler.apiError(c, status, key)
}
