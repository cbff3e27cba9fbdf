package handler

import (
	"errors"
	"path/filepath"

	authhandler "github.com/Shaurya8425/Blogs/internal/auth/handler"
	authservice "github.com/Shaurya8425/Blogs/internal/auth/service"
	"github.com/Shaurya8425/Blogs/internal/blog/dto"
	"github.com/Shaurya8425/Blogs/internal/blog/service"
	blogerror "github.com/Shaurya8425/Blogs/internal/errors"
	"github.com/Shaurya8425/Blogs/internal/storage"
	"github.com/Shaurya8425/Blogs/pkg/constant"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type BlogHandler struct {
	postService *service.PostService
	uploader    storage.ObjectUploader // nil when uploads are not configured
}

func NewBlogHandler(postService *service.PostService, uploader storage.ObjectUploader) *BlogHandler {
	return &BlogHandler{postService: postService, uploader: uploader}
}

// currentUser reads the identity attached by the auth middleware.
func currentUser(c *fiber.Ctx) (*authservice.SessionClaims, bool) {
	claims, ok := c.Locals(authhandler.LocalsUserKey).(*authservice.SessionClaims)
	return claims, ok
}

func (h *BlogHandler) ListPosts(c *fiber.Ctx) error {
	posts, err := h.postService.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "error fetching posts"})
	}

	return c.Status(fiber.StatusOK).JSON(posts)
}

func (h *BlogHandler) GetPost(c *fiber.Ctx) error {
	post, err := h.postService.Get(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, blogerror.ErrPostNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "error fetching post"})
	}

	return c.Status(fiber.StatusOK).JSON(post)
}

func (h *BlogHandler) CreatePost(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "no token provided"})
	}

	var input dto.CreatePostInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}
	if input.Title == "" || input.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "title and content are required"})
	}

	post, err := h.postService.Create(c.Context(), user.UserID, input)
	if err != nil {
		if errors.Is(err, blogerror.ErrAuthorMissing) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "error creating post"})
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

func (h *BlogHandler) UpdatePost(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "no token provided"})
	}

	var input dto.UpdatePostInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}
	if input.Title == "" || input.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "title and content are required"})
	}

	post, err := h.postService.Update(c.Context(), user.UserID, c.Params("id"), input)
	if err != nil {
		return h.mapPostError(c, err, "error updating post")
	}

	return c.Status(fiber.StatusOK).JSON(post)
}

func (h *BlogHandler) DeletePost(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "no token provided"})
	}

	if err := h.postService.Delete(c.Context(), user.UserID, c.Params("id")); err != nil {
		return h.mapPostError(c, err, "error deleting post")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "post deleted successfully"})
}

func (h *BlogHandler) Upvote(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "no token provided"})
	}

	upvote, err := h.postService.Upvote(c.Context(), user.UserID, c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, blogerror.ErrPostNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, blogerror.ErrAlreadyUpvoted):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "error upvoting post"})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(upvote)
}

func (h *BlogHandler) RemoveUpvote(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "no token provided"})
	}

	if err := h.postService.RemoveUpvote(c.Context(), user.UserID, c.Params("id")); err != nil {
		if errors.Is(err, blogerror.ErrUpvoteNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "error removing upvote"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "upvote removed successfully"})
}

func (h *BlogHandler) AddReply(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "no token provided"})
	}

	var input dto.CreateReplyInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	reply, err := h.postService.AddReply(c.Context(), user.UserID, c.Params("id"), input)
	if err != nil {
		switch {
		case errors.Is(err, blogerror.ErrReplyContentRequired):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, blogerror.ErrPostNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "error creating reply"})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(reply)
}

func (h *BlogHandler) DeleteReply(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "no token provided"})
	}

	if err := h.postService.DeleteReply(c.Context(), user.UserID, c.Params("replyId")); err != nil {
		switch {
		case errors.Is(err, blogerror.ErrReplyNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, blogerror.ErrNotOwner):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "unauthorized to delete this reply"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "error deleting reply"})
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "reply deleted successfully"})
}

// UploadImage stores a multipart image in object storage and returns its
// public URL.
func (h *BlogHandler) UploadImage(c *fiber.Ctx) error {
	if _, ok := currentUser(c); !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "no token provided"})
	}
	if h.uploader == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "uploads are not configured"})
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "image file is required"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "error reading upload"})
	}
	defer file.Close()

	key := constant.UploadKeyPrefix + uuid.NewString() + filepath.Ext(fileHeader.Filename)
	contentType := fileHeader.Header.Get(fiber.HeaderContentType)

	url, err := h.uploader.Upload(c.Context(), key, file, contentType)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "error uploading image"})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.UploadOutput{URL: url})
}

func (h *BlogHandler) mapPostError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, blogerror.ErrPostNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, blogerror.ErrNotOwner):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "unauthorized to modify this post"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fallback})
	}
}
