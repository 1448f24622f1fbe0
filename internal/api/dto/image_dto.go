package dto

import (
	"time"

	"github.com/spec-kit/codepulse/internal/domain"
)

// ImageResponse representation.
type ImageResponse struct {
	ID            string    `json:"id"`
	FileName      string    `json:"fileName"`
	FileExtension string    `json:"fileExtension"`
	Title         string    `json:"title"`
	URL           string    `json:"url"`
	DateCreated   time.Time `json:"dateCreated"`
}

// ImageFromDomain maps a domain image onto its response shape.
func ImageFromDomain(image domain.Image) ImageResponse {
	return ImageResponse{
		ID:            image.ID,
		FileName:      image.FileName,
		FileExtension: image.FileExtension,
		Title:         image.Title,
		URL:           image.URL,
		DateCreated:   image.CreatedAt,
	}
}

// ImagesFromDomain maps a slice of domain images.
func ImagesFromDomain(images []domain.Image) []ImageResponse {
	response := make([]ImageResponse, 0, len(images))
	for _, image := range images {
		response = append(response, ImageFromDomain(image))
	}
	return response
}
