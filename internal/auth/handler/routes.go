package handler

import (
	"github.com/Shaurya8425/Blogs/pkg/constant"
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App, h *AuthHandler) {
	app.Post("/api/v1/signup", h.RateLimit(constant.RateLimitClassSignup), h.Signup)
	app.Post("/api/v1/login", h.RateLimit(constant.RateLimitClassLogin), h.Login)
	app.Get("/api/v1/me", h.RequireAuth, h.Me)
}
