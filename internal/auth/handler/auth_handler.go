package handler

import (
	"errors"

	"github.com/Shaurya8425/Blogs/internal/auth/dto"
	"github.com/Shaurya8425/Blogs/internal/auth/service"
	autherror "github.com/Shaurya8425/Blogs/internal/errors"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	userService *service.UserService
	tokens      service.TokenManager
	limiter     *service.AttemptLimiter
	secret      string
}

func NewAuthHandler(userService *service.UserService, tokens service.TokenManager, limiter *service.AttemptLimiter, secret string) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		tokens:      tokens,
		limiter:     limiter,
		secret:      secret,
	}
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var input dto.SignupInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	if input.Email == "" || input.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "username and password are required"})
	}

	out, err := h.userService.Signup(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, autherror.ErrInvalidEmail):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, autherror.ErrEmailAlreadyInUse):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "error creating user"})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	if input.Email == "" || input.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "username and password are required"})
	}

	out, err := h.userService.Login(c.Context(), input)
	if err != nil {
		if errors.Is(err, autherror.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "error during login"})
	}

	return c.Status(fiber.StatusOK).JSON(out)
}

// Me echoes the verified identity; the frontend uses it as a token probe.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	claims, ok := c.Locals(LocalsUserKey).(*service.SessionClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "no token provided"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"user": dto.UserOutput{ID: claims.UserID, Email: claims.Email, Name: claims.Name},
	})
}
