package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventPostCreated     EventType = "post_created"
	EventPostUpdated     EventType = "post_updated"
	EventPostDeleted     EventType = "post_deleted"
	EventCategoryCreated EventType = "category_created"
	EventCategoryUpdated EventType = "category_updated"
	EventCategoryDeleted EventType = "category_deleted"
	EventImageUploaded   EventType = "image_uploaded"
)

// Event represents a content change emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     string      `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// PostChangedPayload accompanies post events.
type PostChangedPayload struct {
	PostID    string `json:"post_id"`
	URLHandle string `json:"url_handle"`
	Visible   bool   `json:"visible"`
}

// CategoryChangedPayload accompanies category events.
type CategoryChangedPayload struct {
	CategoryID string `json:"category_id"`
	URLHandle  string `json:"url_handle"`
}

// ImageUploadedPayload accompanies image events.
type ImageUploadedPayload struct {
	ImageID    string `json:"image_id"`
	StorageKey string `json:"storage_key"`
}
