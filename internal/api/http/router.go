package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/codepulse/internal/api/http/handlers"
	"github.com/spec-kit/codepulse/internal/auth"
	"github.com/spec-kit/codepulse/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Categories     *handlers.CategoriesHandler
	BlogPosts      *handlers.BlogPostsHandler
	Images         *handlers.ImagesHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Reads are public; every mutation sits
// behind bearer auth plus the Writer role.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	requireWriter := auth.RequireRole(domain.RoleWriter)

	categories := api.Group("/categories")
	categories.Get("/", cfg.Categories.List)
	categories.Get("/count", cfg.Categories.Count)
	categories.Get("/:id", cfg.Categories.GetByID)
	categories.Post("/", cfg.AuthMiddleware.Handle, requireWriter, cfg.Categories.Create)
	categories.Put("/:id", cfg.AuthMiddleware.Handle, requireWriter, cfg.Categories.Update)
	categories.Delete("/:id", cfg.AuthMiddleware.Handle, requireWriter, cfg.Categories.Delete)

	posts := api.Group("/blogposts")
	posts.Get("/", cfg.BlogPosts.List)
	posts.Get("/handle/:urlHandle", cfg.BlogPosts.GetByURLHandle)
	posts.Get("/:id", cfg.BlogPosts.GetByID)
	posts.Post("/", cfg.AuthMiddleware.Handle, requireWriter, cfg.BlogPosts.Create)
	posts.Put("/:id", cfg.AuthMiddleware.Handle, requireWriter, cfg.BlogPosts.Update)
	posts.Delete("/:id", cfg.AuthMiddleware.Handle, requireWriter, cfg.BlogPosts.Delete)

	images := api.Group("/images", cfg.AuthMiddleware.Handle, requireWriter)
	images.Get("/", cfg.Images.List)
	images.Post("/", cfg.Images.Upload)
}
