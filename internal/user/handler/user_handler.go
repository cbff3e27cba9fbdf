package handler

import (
	"errors"

	authdto "github.com/Shaurya8425/Blogs/internal/auth/dto"
	authhandler "github.com/Shaurya8425/Blogs/internal/auth/handler"
	authservice "github.com/Shaurya8425/Blogs/internal/auth/service"
	blogservice "github.com/Shaurya8425/Blogs/internal/blog/service"
	usererror "github.com/Shaurya8425/Blogs/internal/errors"
	"github.com/gofiber/fiber/v2"
)

// UserHandler serves profile endpoints. It composes the auth user service
// (profile data, password change) with the blog post service (a user's posts).
type UserHandler struct {
	userService *authservice.UserService
	postService *blogservice.PostService
}

func NewUserHandler(userService *authservice.UserService, postService *blogservice.PostService) *UserHandler {
	return &UserHandler{userService: userService, postService: postService}
}

func currentUser(c *fiber.Ctx) (*authservice.SessionClaims, bool) {
	claims, ok := c.Locals(authhandler.LocalsUserKey).(*authservice.SessionClaims)
	return claims, ok
}

func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	user, err := h.userService.GetProfile(c.Context(), c.Params("userId"))
	if err != nil {
		if errors.Is(err, usererror.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "user not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "internal server error"})
	}

	return c.Status(fiber.StatusOK).JSON(user)
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	claims, ok := currentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "no token provided"})
	}

	var input authdto.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	user, err := h.userService.UpdateProfile(c.Context(), claims.UserID, c.Params("userId"), input)
	if err != nil {
		switch {
		case errors.Is(err, usererror.ErrNotOwner):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "not authorized to update this profile"})
		case errors.Is(err, usererror.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "user not found"})
		case errors.Is(err, usererror.ErrWrongPassword):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "internal server error"})
		}
	}

	return c.Status(fiber.StatusOK).JSON(user)
}

func (h *UserHandler) GetUserPosts(c *fiber.Ctx) error {
	posts, err := h.postService.ListByAuthor(c.Context(), c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "internal server error"})
	}

	return c.Status(fiber.StatusOK).JSON(posts)
}
