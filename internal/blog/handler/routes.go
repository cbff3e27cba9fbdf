package handler

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the blog routes. Listing and reading posts is public;
// everything else runs behind the auth middleware.
func RegisterRoutes(app *fiber.App, h *BlogHandler, requireAuth fiber.Handler) {
	blog := app.Group("/api/v1/blog")

	blog.Get("/", h.ListPosts)

	blog.Post("/", requireAuth, h.CreatePost)
	blog.Post("/upload", requireAuth, h.UploadImage)

	blog.Get("/:id", h.GetPost)
	blog.Put("/:id", requireAuth, h.UpdatePost)
	blog.Delete("/:id", requireAuth, h.DeletePost)

	blog.Post("/:id/upvote", requireAuth, h.Upvote)
	blog.Delete("/:id/upvote", requireAuth, h.RemoveUpvote)

	blog.Post("/:id/replies", requireAuth, h.AddReply)
	blog.Delete("/:id/replies/:replyId", requireAuth, h.DeleteReply)
}
