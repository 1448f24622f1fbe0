package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/codepulse/internal/cache"
	"github.com/spec-kit/codepulse/internal/events"
)

// StartCacheWorker subscribes cache-invalidation handlers to content events.
func StartCacheWorker(dispatcher events.Dispatcher, postCache *cache.PostCache, logger *zap.Logger) {
	if dispatcher == nil || postCache == nil {
		return
	}

	invalidatePost := func(ctx context.Context, event events.Event) error {
		payload, ok := event.Payload.(events.PostChangedPayload)
		if !ok {
			postCache.InvalidateAll(ctx)
			return nil
		}
		logger.Debug("invalidating post cache",
			zap.String("event", string(event.Type)),
			zap.String("url_handle", payload.URLHandle))
		postCache.InvalidatePost(ctx, payload.URLHandle)
		return nil
	}

	invalidateLists := func(ctx context.Context, event events.Event) error {
		logger.Debug("invalidating list cache", zap.String("event", string(event.Type)))
		postCache.InvalidateAll(ctx)
		return nil
	}

	dispatcher.Subscribe(events.EventPostCreated, invalidatePost)
	dispatcher.Subscribe(events.EventPostUpdated, invalidatePost)
	dispatcher.Subscribe(events.EventPostDeleted, invalidatePost)
	dispatcher.Subscribe(events.EventCategoryCreated, invalidateLists)
	dispatcher.Subscribe(events.EventCategoryUpdated, invalidateLists)
	dispatcher.Subscribe(events.EventCategoryDeleted, invalidateLists)
}
