package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/codepulse/internal/cache"
	"github.com/spec-kit/codepulse/internal/domain"
	"github.com/spec-kit/codepulse/internal/events"
	"github.com/spec-kit/codepulse/internal/repository"
	apperrors "github.com/spec-kit/codepulse/pkg/util"
)

// BlogPostInput carries the writable fields of a post.
type BlogPostInput struct {
	Title            string
	ShortDescription string
	Content          string
	FeaturedImageURL string
	URLHandle        string
	Author           string
	IsVisible        bool
	PublishedAt      time.Time
	CategoryIDs      []string
}

// BlogPostService orchestrates post CRUD, the cached public reading view
// and content event publication.
type BlogPostService struct {
	posts      repository.BlogPostRepository
	categories repository.CategoryRepository
	postCache  *cache.PostCache
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewBlogPostService builds the service.
func NewBlogPostService(
	posts repository.BlogPostRepository,
	categories repository.CategoryRepository,
	postCache *cache.PostCache,
	dispatcher events.Dispatcher,
	logger *zap.Logger,
) *BlogPostService {
	return &BlogPostService{
		posts:      posts,
		categories: categories,
		postCache:  postCache,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Create validates category links and persists a new post.
func (s *BlogPostService) Create(ctx context.Context, input BlogPostInput) (*domain.BlogPost, error) {
	if err := s.validate(ctx, input); err != nil {
		return nil, err
	}

	post := postFromInput(input)
	if err := s.posts.Create(ctx, post, input.CategoryIDs); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventPostCreated, post)
	return post, nil
}

// Update replaces a post's fields and category links.
func (s *BlogPostService) Update(ctx context.Context, id string, input BlogPostInput) (*domain.BlogPost, error) {
	if err := s.validate(ctx, input); err != nil {
		return nil, err
	}

	existing, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	previousHandle := existing.URLHandle

	post := postFromInput(input)
	post.ID = id
	if err := s.posts.Update(ctx, post, input.CategoryIDs); err != nil {
		return nil, err
	}

	// A renamed handle leaves a stale entry under the old key.
	if previousHandle != post.URLHandle {
		s.postCache.InvalidatePost(ctx, previousHandle)
	}
	s.publish(ctx, events.EventPostUpdated, post)
	return post, nil
}

// Delete removes a post.
func (s *BlogPostService) Delete(ctx context.Context, id string) (*domain.BlogPost, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventPostDeleted, post)
	return post, nil
}

// GetByID loads one post with its categories.
func (s *BlogPostService) GetByID(ctx context.Context, id string) (*domain.BlogPost, error) {
	return s.posts.GetByID(ctx, id)
}

// GetByURLHandle serves the public reading view through the cache.
func (s *BlogPostService) GetByURLHandle(ctx context.Context, handle string) (*domain.BlogPost, error) {
	if cached := s.postCache.GetByHandle(ctx, handle); cached != nil {
		return cached, nil
	}

	post, err := s.posts.GetByURLHandle(ctx, handle)
	if err != nil {
		return nil, err
	}
	s.postCache.SetByHandle(ctx, post)
	return post, nil
}

// List returns posts newest-first, backed by the list cache for the first page.
func (s *BlogPostService) List(ctx context.Context, limit, offset int) ([]domain.BlogPost, error) {
	firstPage := offset == 0
	if firstPage {
		if cached := s.postCache.GetList(ctx); cached != nil {
			return cached, nil
		}
	}

	posts, err := s.posts.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	if firstPage {
		s.postCache.SetList(ctx, posts)
	}
	return posts, nil
}

func (s *BlogPostService) validate(ctx context.Context, input BlogPostInput) error {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.URLHandle) == "" {
		return apperrors.NewBadRequest("title and url handle are required")
	}

	ok, err := s.categories.ExistAll(ctx, input.CategoryIDs)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NewBadRequest("one or more categories do not exist")
	}
	return nil
}

func postFromInput(input BlogPostInput) *domain.BlogPost {
	publishedAt := input.PublishedAt
	if publishedAt.IsZero() {
		publishedAt = time.Now()
	}
	return &domain.BlogPost{
		Title:            input.Title,
		ShortDescription: input.ShortDescription,
		Content:          input.Content,
		FeaturedImageURL: input.FeaturedImageURL,
		URLHandle:        input.URLHandle,
		Author:           input.Author,
		IsVisible:        input.IsVisible,
		PublishedAt:      publishedAt,
	}
}

func (s *BlogPostService) publish(ctx context.Context, eventType events.EventType, post *domain.BlogPost) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Payload: events.PostChangedPayload{
			PostID:    post.ID,
			URLHandle: post.URLHandle,
			Visible:   post.IsVisible,
		},
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("post event handlers failed", zap.Error(err))
	}
}
