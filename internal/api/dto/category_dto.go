package dto

import "github.com/spec-kit/codepulse/internal/domain"

// CategoryRequest payload for create/update.
type CategoryRequest struct {
	Name      string `json:"name"`
	URLHandle string `json:"urlHandle"`
}

// CategoryResponse representation.
type CategoryResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	URLHandle string `json:"urlHandle"`
}

// CategoryFromDomain maps a domain category onto its response shape.
func CategoryFromDomain(category domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:        category.ID,
		Name:      category.Name,
		URLHandle: category.URLHandle,
	}
}

// CategoriesFromDomain maps a slice of domain categories.
func CategoriesFromDomain(categories []domain.Category) []CategoryResponse {
	response := make([]CategoryResponse, 0, len(categories))
	for _, category := range categories {
		response = append(response, CategoryFromDomain(category))
	}
	return response
}
