package handlers

import (
	"io"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/codepulse/internal/api/dto"
	"github.com/spec-kit/codepulse/internal/service"
)

// ImagesHandler exposes image listing and multipart upload.
type ImagesHandler struct {
	images *service.ImageService
}

// NewImagesHandler constructs handler.
func NewImagesHandler(images *service.ImageService) *ImagesHandler {
	return &ImagesHandler{images: images}
}

// List handles GET /api/images.
func (h *ImagesHandler) List(c *fiber.Ctx) error {
	images, err := h.images.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.ImagesFromDomain(images))
}

// Upload handles POST /api/images with multipart fields file, fileName, title.
func (h *ImagesHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "unreadable file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "unreadable file")
	}

	image, err := h.images.Upload(c.UserContext(), service.ImageUpload{
		OriginalName: fileHeader.Filename,
		FileName:     c.FormValue("fileName"),
		Title:        c.FormValue("title"),
		Data:         data,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.ImageFromDomain(*image))
}
