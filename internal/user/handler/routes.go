package handler

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App, h *UserHandler, requireAuth fiber.Handler) {
	user := app.Group("/api/v1/user", requireAuth)

	user.Get("/:userId", h.GetProfile)
	user.Put("/:userId", h.UpdateProfile)
	user.Get("/:userId/posts", h.GetUserPosts)
}
