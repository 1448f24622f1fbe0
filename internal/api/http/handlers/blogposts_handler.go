package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/codepulse/internal/api/dto"
	"github.com/spec-kit/codepulse/internal/service"
)

// BlogPostsHandler exposes blog post CRUD endpoints plus the public
// reading view by URL handle.
type BlogPostsHandler struct {
	posts *service.BlogPostService
}

// NewBlogPostsHandler constructs handler.
func NewBlogPostsHandler(posts *service.BlogPostService) *BlogPostsHandler {
	return &BlogPostsHandler{posts: posts}
}

// List handles GET /api/blogposts.
func (h *BlogPostsHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("pageSize", 100)
	page := c.QueryInt("pageNumber", 1)
	if page < 1 {
		page = 1
	}

	posts, err := h.posts.List(c.UserContext(), limit, (page-1)*limit)
	if err != nil {
		return err
	}
	return c.JSON(dto.BlogPostsFromDomain(posts))
}

// GetByID handles GET /api/blogposts/:id.
func (h *BlogPostsHandler) GetByID(c *fiber.Ctx) error {
	post, err := h.posts.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.BlogPostFromDomain(*post))
}

// GetByURLHandle handles GET /api/blogposts/handle/:urlHandle.
func (h *BlogPostsHandler) GetByURLHandle(c *fiber.Ctx) error {
	post, err := h.posts.GetByURLHandle(c.UserContext(), c.Params("urlHandle"))
	if err != nil {
		return err
	}
	return c.JSON(dto.BlogPostFromDomain(*post))
}

// Create handles POST /api/blogposts.
func (h *BlogPostsHandler) Create(c *fiber.Ctx) error {
	input, err := parseBlogPostInput(c)
	if err != nil {
		return err
	}

	post, err := h.posts.Create(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.BlogPostFromDomain(*post))
}

// Update handles PUT /api/blogposts/:id.
func (h *BlogPostsHandler) Update(c *fiber.Ctx) error {
	input, err := parseBlogPostInput(c)
	if err != nil {
		return err
	}

	post, err := h.posts.Update(c.UserContext(), c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(dto.BlogPostFromDomain(*post))
}

// Delete handles DELETE /api/blogposts/:id.
func (h *BlogPostsHandler) Delete(c *fiber.Ctx) error {
	post, err := h.posts.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.BlogPostFromDomain(*post))
}

func parseBlogPostInput(c *fiber.Ctx) (service.BlogPostInput, error) {
	var req dto.BlogPostRequest
	if err := c.BodyParser(&req); err != nil {
		return service.BlogPostInput{}, fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	return service.BlogPostInput{
		Title:            req.Title,
		ShortDescription: req.ShortDescription,
		Content:          req.Content,
		FeaturedImageURL: req.FeaturedImageURL,
		URLHandle:        req.URLHandle,
		Author:           req.Author,
		IsVisible:        req.IsVisible,
		PublishedAt:      req.PublishedDate,
		CategoryIDs:      req.CategoryIDs,
	}, nil
}
