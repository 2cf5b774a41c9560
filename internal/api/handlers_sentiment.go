package api

import "github.com/gofiber/fiber/v2"

type sentimentInput struct {
	Text string `json:"text"`
}

func (handler *Handler) AnalyzeSentiment(c *fiber.Ctx) error {
	if handler.sentiment == nil {
		return handler.apiError(c, fiber.StatusServiceUnavailable, "error.sentiment_unavailable")
	}

	var input sentimentInput
	if err := c.BodyParser(&input); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "error.invalid_json")
	}

	result, err := handler.sentiment.Analyze(c.UserContext(), input.Text)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(result)
}
