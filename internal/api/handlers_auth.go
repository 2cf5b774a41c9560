package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/wellnest/internal/services"
)

type credentialsInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userView struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	var input credentialsInput
	if err := c.BodyParser(&input); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "error.invalid_json")
	}

	user, err := handler.auth.Register(input.Email, input.Password, handler.now())
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	token, err := handler.buildToken(&user, defaultAuthTokenTTL)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	handler.setAuthCookie(c, token)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  userView{ID: user.ID, Email: user.Email},
	})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	limiterKey := requestLimiterKey(c)
	if handler.loginLimiter.blocked(limiterKey, handler.now()) {
		return handler.apiError(c, fiber.StatusTooManyRequests, "error.too_many_attempts")
	}

	var input credentialsInput
	if err := c.BodyParser(&input); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "error.invalid_json")
	}

	user, err := handler.auth.Authenticate(input.Email, input.Password)
	if errors.Is(err, services.ErrAuthCredentialsInvalid) {
		handler.loginLimiter.recordFailure(limiterKey, handler.now())
		return handler.respondServiceError(c, err)
	}
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	handler.loginLimiter.clear(limiterKey)

	token, err := handler.buildToken(&user, defaultAuthTokenTTL)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	handler.setAuthCookie(c, token)
	return c.JSON(fiber.Map{
		"token": token,
		"user":  userView{ID: user.ID, Email: user.Email},
	})
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) CurrentUser(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}
	return c.JSON(userView{ID: user.ID, Email: user.Email})
}

func (handler *Handler) DeleteAccount(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}
	if err := handler.auth.DeleteAccount(user.ID); err != nil {
		return handler.respondServiceError(c, err)
	}
	handler.clearAuthCookie(c)
	return c.SendStatus(fiber.StatusNoContent)
}
