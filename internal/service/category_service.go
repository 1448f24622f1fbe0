package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/codepulse/internal/domain"
	"github.com/spec-kit/codepulse/internal/events"
	"github.com/spec-kit/codepulse/internal/repository"
	apperrors "github.com/spec-kit/codepulse/pkg/util"
)

// CategoryService orchestrates category CRUD and publishes content events.
type CategoryService struct {
	categories repository.CategoryRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewCategoryService builds the service.
func NewCategoryService(categories repository.CategoryRepository, dispatcher events.Dispatcher, logger *zap.Logger) *CategoryService {
	return &CategoryService{categories: categories, dispatcher: dispatcher, logger: logger}
}

// Create validates and persists a new category.
func (s *CategoryService) Create(ctx context.Context, name, urlHandle string) (*domain.Category, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(urlHandle) == "" {
		return nil, apperrors.NewBadRequest("name and url handle are required")
	}

	category := &domain.Category{Name: name, URLHandle: urlHandle}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventCategoryCreated, category)
	return category, nil
}

// Update replaces the category's name and URL handle.
func (s *CategoryService) Update(ctx context.Context, id, name, urlHandle string) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	category.Name = name
	category.URLHandle = urlHandle
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventCategoryUpdated, category)
	return category, nil
}

// Delete removes a category.
func (s *CategoryService) Delete(ctx context.Context, id string) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventCategoryDeleted, category)
	return category, nil
}

// GetByID loads one category.
func (s *CategoryService) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	return s.categories.GetByID(ctx, id)
}

// List returns categories matching the filter.
func (s *CategoryService) List(ctx context.Context, filter repository.CategoryFilter) ([]domain.Category, error) {
	return s.categories.List(ctx, filter)
}

// Count returns the total category count.
func (s *CategoryService) Count(ctx context.Context) (int64, error) {
	return s.categories.Count(ctx)
}

func (s *CategoryService) publish(ctx context.Context, eventType events.EventType, category *domain.Category) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Payload: events.CategoryChangedPayload{
			CategoryID: category.ID,
			URLHandle:  category.URLHandle,
		},
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("category event handlers failed", zap.Error(err))
	}
}
