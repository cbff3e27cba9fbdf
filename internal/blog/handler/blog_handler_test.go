package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	authhandler "github.com/Shaurya8425/Blogs/internal/auth/handler"
	authservice "github.com/Shaurya8425/Blogs/internal/auth/service"
	"github.com/Shaurya8425/Blogs/internal/blog/domain"
	"github.com/Shaurya8425/Blogs/internal/blog/handler"
	"github.com/Shaurya8425/Blogs/internal/blog/service"
	blogerror "github.com/Shaurya8425/Blogs/internal/errors"
	"github.com/Shaurya8425/Blogs/internal/mocks"
	"github.com/Shaurya8425/Blogs/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// authAs simulates the auth middleware with a fixed verified identity.
func authAs(userID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(authhandler.LocalsUserKey, &authservice.SessionClaims{UserID: userID, Email: userID + "@example.com"})
		return c.Next()
	}
}

func newTestApp(t *testing.T, ctrl *gomock.Controller, userID string, uploader storage.ObjectUploader) (*fiber.App, *mocks.MockPostRepository) {
	t.Helper()

	mockRepo := mocks.NewMockPostRepository(ctrl)
	h := handler.NewBlogHandler(service.NewPostService(mockRepo), uploader)

	app := fiber.New()
	handler.RegisterRoutes(app, h, authAs(userID))

	return app, mockRepo
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func TestListPosts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	app, mockRepo := newTestApp(t, ctrl, "u1", nil)

	mockRepo.EXPECT().List(gomock.Any()).Return([]*domain.Post{
		{ID: "p1", Title: "First"},
		{ID: "p2", Title: "Second"},
	}, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/blog/", nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var posts []map[string]any
	require.NoError(t, json.Unmarshal(raw, &posts))
	assert.Len(t, posts, 2)
	assert.Equal(t, "First", posts[0]["title"])
}

func TestGetPost_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	app, mockRepo := newTestApp(t, ctrl, "u1", nil)

	mockRepo.EXPECT().GetByID(gomock.Any(), "missing").Return(nil, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/blog/missing", nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreatePost(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	app, mockRepo := newTestApp(t, ctrl, "u1", nil)

	t.Run("missing fields", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/blog/", strings.NewReader(`{"title":"only"}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("success", func(t *testing.T) {
		mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		mockRepo.EXPECT().GetByID(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ interface{}, id string) (*domain.Post, error) {
				return &domain.Post{ID: id, Title: "Hello", AuthorID: "u1"}, nil
			})

		req := httptest.NewRequest(http.MethodPost, "/api/v1/blog/",
			strings.NewReader(`{"title":"Hello","content":"World"}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, "Hello", decodeBody(t, resp)["title"])
	})
}

func TestUpdatePost_NotOwner(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	app, mockRepo := newTestApp(t, ctrl, "intruder", nil)

	mockRepo.EXPECT().GetByID(gomock.Any(), "p1").Return(&domain.Post{ID: "p1", AuthorID: "owner"}, nil)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/blog/p1",
		strings.NewReader(`{"title":"T","content":"C"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestUpvote_Duplicate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	app, mockRepo := newTestApp(t, ctrl, "u1", nil)

	mockRepo.EXPECT().GetByID(gomock.Any(), "p1").Return(&domain.Post{ID: "p1"}, nil)
	mockRepo.EXPECT().AddUpvote(gomock.Any(), gomock.Any()).Return(blogerror.ErrAlreadyUpvoted)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/v1/blog/p1/upvote", nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "already upvoted", decodeBody(t, resp)["error"])
}

func TestUploadImage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("uploads disabled", func(t *testing.T) {
		app, _ := newTestApp(t, ctrl, "u1", nil)

		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/v1/blog/upload", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})

	t.Run("success", func(t *testing.T) {
		uploader := mocks.NewMockObjectUploader(ctrl)
		uploader.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ interface{}, key string, _ io.Reader, _ string) (string, error) {
				assert.True(t, strings.HasPrefix(key, "blog-images/"))
				assert.True(t, strings.HasSuffix(key, ".png"))
				return "https://bucket.acc.r2.dev/" + key, nil
			})

		app, _ := newTestApp(t, ctrl, "u1", uploader)

		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		part, err := w.CreateFormFile("image", "cover.png")
		require.NoError(t, err)
		_, err = part.Write([]byte("fake-png-bytes"))
		require.NoError(t, err)
		require.NoError(t, w.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/blog/upload", &buf)
		req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())

		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Contains(t, decodeBody(t, resp)["url"], "r2.dev/blog-images/")
	})
}
