package service

import "sync"

// NotificationType names a change published on the EventBus
type NotificationType string

const (
	VenueCreated           NotificationType = "venue_created"
	VenueUpdated           NotificationType = "venue_updated"
	VenueDeleted           NotificationType = "venue_deleted"
	EventCreated           NotificationType = "event_created"
	EventUpdated           NotificationType = "event_updated"
	EventStatusChanged     NotificationType = "event_status_changed"
	EventCategoriesChanged NotificationType = "event_categories_changed"
	EventDeleted           NotificationType = "event_deleted"
	CategoryCreated        NotificationType = "category_created"
	CategoryUpdated        NotificationType = "category_updated"
	CategoryDeleted        NotificationType = "category_deleted"
	CatalogImported        NotificationType = "catalog_imported"
)

// Notification describes one committed change
type Notification struct {
	Type    NotificationType `json:"type"`
	Payload interface{}      `json:"payload,omitempty"`
}

// EventBus fans notifications out to subscribers
type EventBus struct {
	mu          sync.RWMutex
	subscribers []chan<- Notification
}

// NewEventBus creates a new event bus
func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make([]chan<- Notification, 0),
	}
}

// Subscribe adds a subscriber to receive notifications
func (eb *EventBus) Subscribe(ch chan<- Notification) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.subscribers = append(eb.subscribers, ch)
}

// Unsubscribe removes ch. The channel is not closed.
func (eb *EventBus) Unsubscribe(ch chan<- Notification) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	for i, sub := range eb.subscribers {
		if sub == ch {
			eb.subscribers = append(eb.subscribers[:i], eb.subscribers[i+1:]...)
			return
		}
	}
}

// Publish sends n to every subscriber without blocking
func (eb *EventBus) Publish(n Notification) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	for _, ch := range eb.subscribers {
		select {
		case ch <- n:
		default:
			// Subscriber is slow, skip
		}
	}
}
