package main

import (
	"context"
	"log"
	"log/slog"
	"time"

	"github.com/Shaurya8425/Blogs/config"
	"github.com/Shaurya8425/Blogs/db"
	authhandler "github.com/Shaurya8425/Blogs/internal/auth/handler"
	authrepo "github.com/Shaurya8425/Blogs/internal/auth/repository/postgres"
	authservice "github.com/Shaurya8425/Blogs/internal/auth/service"
	bloghandler "github.com/Shaurya8425/Blogs/internal/blog/handler"
	blogrepo "github.com/Shaurya8425/Blogs/internal/blog/repository/postgres"
	blogservice "github.com/Shaurya8425/Blogs/internal/blog/service"
	"github.com/Shaurya8425/Blogs/internal/storage"
	userhandler "github.com/Shaurya8425/Blogs/internal/user/handler"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	if err := db.RunMigrations(ctx, cfg.DBURL); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	pool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer pool.Close()

	userRepo := authrepo.NewPostgresRepository(pool)
	postRepo := blogrepo.NewPostgresRepository(pool)

	tokenService := authservice.NewTokenService(cfg.JWTSecret, cfg.TokenExpiryHours)
	limiter := authservice.NewAttemptLimiter(cfg.RateLimitMax, time.Duration(cfg.RateLimitWindow)*time.Minute)
	userService := authservice.NewUserService(userRepo, tokenService)
	postService := blogservice.NewPostService(postRepo)

	var uploader storage.ObjectUploader
	if cfg.UploadsEnabled() {
		r2, err := storage.NewR2Client(ctx, storage.R2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			Bucket:          cfg.R2Bucket,
		})
		if err != nil {
			log.Fatalf("object storage setup failed: %v", err)
		}
		uploader = r2
	} else {
		slog.Warn("object storage not configured, image uploads disabled")
	}

	authHandler := authhandler.NewAuthHandler(userService, tokenService, limiter, cfg.JWTSecret)
	blogHandler := bloghandler.NewBlogHandler(postService, uploader)
	userHandler := userhandler.NewUserHandler(userService, postService)

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:5173, http://127.0.0.1:5173, https://medium-clone-frontend.vercel.app",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
		AllowHeaders:     "Content-Type, Authorization, X-Requested-With, Accept",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	authhandler.RegisterRoutes(app, authHandler)
	bloghandler.RegisterRoutes(app, blogHandler, authHandler.RequireAuth)
	userhandler.RegisterRoutes(app, userHandler, authHandler.RequireAuth)

	slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
