package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/codepulse/internal/api/dto"
	"github.com/spec-kit/codepulse/internal/repository"
	"github.com/spec-kit/codepulse/internal/service"
)

// CategoriesHandler exposes category CRUD endpoints.
type CategoriesHandler struct {
	categories *service.CategoryService
}

// NewCategoriesHandler constructs handler.
func NewCategoriesHandler(categories *service.CategoryService) *CategoriesHandler {
	return &CategoriesHandler{categories: categories}
}

// List handles GET /api/categories with filter, sort and pagination.
func (h *CategoriesHandler) List(c *fiber.Ctx) error {
	filter := repository.CategoryFilter{
		Query:         c.Query("query"),
		SortBy:        c.Query("sortBy"),
		SortDirection: c.Query("sortDirection"),
		Page:          c.QueryInt("pageNumber", 1),
		PageSize:      c.QueryInt("pageSize", 100),
	}

	categories, err := h.categories.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(dto.CategoriesFromDomain(categories))
}

// GetByID handles GET /api/categories/:id.
func (h *CategoriesHandler) GetByID(c *fiber.Ctx) error {
	category, err := h.categories.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.CategoryFromDomain(*category))
}

// Count handles GET /api/categories/count.
func (h *CategoriesHandler) Count(c *fiber.Ctx) error {
	count, err := h.categories.Count(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(count)
}

// Create handles POST /api/categories.
func (h *CategoriesHandler) Create(c *fiber.Ctx) error {
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	category, err := h.categories.Create(c.UserContext(), req.Name, req.URLHandle)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.CategoryFromDomain(*category))
}

// Update handles PUT /api/categories/:id.
func (h *CategoriesHandler) Update(c *fiber.Ctx) error {
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	category, err := h.categories.Update(c.UserContext(), c.Params("id"), req.Name, req.URLHandle)
	if err != nil {
		return err
	}
	return c.JSON(dto.CategoryFromDomain(*category))
}

// Delete handles DELETE /api/categories/:id.
func (h *CategoriesHandler) Delete(c *fiber.Ctx) error {
	category, err := h.categories.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.CategoryFromDomain(*category))
}
