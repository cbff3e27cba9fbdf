package handler_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Shaurya8425/Blogs/internal/auth/domain"
	authhandler "github.com/Shaurya8425/Blogs/internal/auth/handler"
	authservice "github.com/Shaurya8425/Blogs/internal/auth/service"
	blogdomain "github.com/Shaurya8425/Blogs/internal/blog/domain"
	blogservice "github.com/Shaurya8425/Blogs/internal/blog/service"
	"github.com/Shaurya8425/Blogs/internal/mocks"
	"github.com/Shaurya8425/Blogs/internal/user/handler"
	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authAs(userID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(authhandler.LocalsUserKey, &authservice.SessionClaims{UserID: userID, Email: userID + "@example.com"})
		return c.Next()
	}
}

func newTestApp(t *testing.T, ctrl *gomock.Controller, userID string) (*fiber.App, *mocks.MockUserRepository, *mocks.MockPostRepository) {
	t.Helper()

	mockUsers := mocks.NewMockUserRepository(ctrl)
	mockPosts := mocks.NewMockPostRepository(ctrl)
	mockTokens := mocks.NewMockTokenManager(ctrl)

	h := handler.NewUserHandler(
		authservice.NewUserService(mockUsers, mockTokens),
		blogservice.NewPostService(mockPosts),
	)

	app := fiber.New()
	handler.RegisterRoutes(app, h, authAs(userID))

	return app, mockUsers, mockPosts
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func TestGetProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	app, mockUsers, _ := newTestApp(t, ctrl, "u1")

	t.Run("success", func(t *testing.T) {
		name := "Alice"
		mockUsers.EXPECT().GetByID(gomock.Any(), "u2").Return(
			&domain.User{ID: "u2", Email: "alice@example.com", Name: &name}, nil)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/user/u2", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, "alice@example.com", body["email"])
		assert.Equal(t, "Alice", body["name"])
	})

	t.Run("not found", func(t *testing.T) {
		mockUsers.EXPECT().GetByID(gomock.Any(), "missing").Return(nil, nil)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/user/missing", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "user not found", decodeBody(t, resp)["message"])
	})
}

func TestUpdateProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	app, mockUsers, _ := newTestApp(t, ctrl, "u1")

	t.Run("only the owner may update", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/api/v1/user/someone-else",
			strings.NewReader(`{"name":"Hacker"}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("rename", func(t *testing.T) {
		mockUsers.EXPECT().GetByID(gomock.Any(), "u1").Return(
			&domain.User{ID: "u1", Email: "a@example.com"}, nil)
		mockUsers.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ interface{}, u *domain.User) error {
				assert.Equal(t, "Renamed", *u.Name)
				return nil
			})

		req := httptest.NewRequest(http.MethodPut, "/api/v1/user/u1",
			strings.NewReader(`{"name":"Renamed"}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Renamed", decodeBody(t, resp)["name"])
	})

	t.Run("wrong current password", func(t *testing.T) {
		hash, err := authservice.HashPassword("correct-horse")
		require.NoError(t, err)
		mockUsers.EXPECT().GetByID(gomock.Any(), "u1").Return(
			&domain.User{ID: "u1", Email: "a@example.com", PasswordHash: hash}, nil)

		req := httptest.NewRequest(http.MethodPut, "/api/v1/user/u1",
			strings.NewReader(`{"currentPassword":"nope","newPassword":"battery-staple"}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestGetUserPosts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	app, _, mockPosts := newTestApp(t, ctrl, "u1")

	mockPosts.EXPECT().ListByAuthor(gomock.Any(), "u2").Return([]*blogdomain.Post{
		{ID: "p1", Title: "Mine", AuthorID: "u2"},
	}, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/user/u2/posts", nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var posts []map[string]any
	require.NoError(t, json.Unmarshal(raw, &posts))
	require.Len(t, posts, 1)
	assert.Equal(t, "Mine", posts[0]["title"])
}
