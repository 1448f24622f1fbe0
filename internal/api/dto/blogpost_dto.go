package dto

import (
	"time"

	"github.com/spec-kit/codepulse/internal/domain"
)

// BlogPostRequest payload for create/update.
type BlogPostRequest struct {
	Title            string    `json:"title"`
	ShortDescription string    `json:"shortDescription"`
	Content          string    `json:"content"`
	FeaturedImageURL string    `json:"featuredImageUrl"`
	URLHandle        string    `json:"urlHandle"`
	Author           string    `json:"author"`
	IsVisible        bool      `json:"isVisible"`
	PublishedDate    time.Time `json:"publishedDate"`
	CategoryIDs      []string  `json:"categories"`
}

// BlogPostResponse representation with expanded categories.
type BlogPostResponse struct {
	ID               string             `json:"id"`
	Title            string             `json:"title"`
	ShortDescription string             `json:"shortDescription"`
	Content          string             `json:"content"`
	FeaturedImageURL string             `json:"featuredImageUrl"`
	URLHandle        string             `json:"urlHandle"`
	Author           string             `json:"author"`
	IsVisible        bool               `json:"isVisible"`
	PublishedDate    time.Time          `json:"publishedDate"`
	Categories       []CategoryResponse `json:"categories"`
}

// BlogPostFromDomain maps a domain post onto its response shape.
func BlogPostFromDomain(post domain.BlogPost) BlogPostResponse {
	return BlogPostResponse{
		ID:               post.ID,
		Title:            post.Title,
		ShortDescription: post.ShortDescription,
		Content:          post.Content,
		FeaturedImageURL: post.FeaturedImageURL,
		URLHandle:        post.URLHandle,
		Author:           post.Author,
		IsVisible:        post.IsVisible,
		PublishedDate:    post.PublishedAt,
		Categories:       CategoriesFromDomain(post.Categories),
	}
}

// BlogPostsFromDomain maps a slice of domain posts.
func BlogPostsFromDomain(posts []domain.BlogPost) []BlogPostResponse {
	response := make([]BlogPostResponse, 0, len(posts))
	for _, post := range posts {
		response = append(response, BlogPostFromDomain(post))
	}
	return response
}
