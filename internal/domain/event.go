package domain

import (
	"fmt"
	"strings"
)

// EventStatus is the lifecycle state of an event
type EventStatus string

const (
	EventStatusActive    EventStatus = "active"
	EventStatusCancelled EventStatus = "cancelled"
	EventStatusFinished  EventStatus = "finished"
	EventStatusPostponed EventStatus = "postponed"
)

// Valid reports whether s is a known status.
func (s EventStatus) Valid() bool {
	switch s {
	case EventStatusActive, EventStatusCancelled, EventStatusFinished, EventStatusPostponed:
		return true
	}
	return false
}

// ParseEventStatus accepts a status name in any letter case.
func ParseEventStatus(s string) (EventStatus, error) {
	status := EventStatus(strings.ToLower(strings.TrimSpace(s)))
	if !status.Valid() {
		return "", fmt.Errorf("unknown event status %q: %w", s, ErrInvalidInput)
	}
	return status, nil
}

// Event is a dated happening at exactly one venue.
type Event struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Date        Date        `json:"date"`
	Status      EventStatus `json:"status"`
	VenueID     int64       `json:"venue_id"`
	CategoryIDs []int64     `json:"category_ids"`
}

// IsActive reports whether the event is still scheduled.
func (e Event) IsActive() bool {
	return e.Status == EventStatusActive
}

// EventInput carries the attributes of an event for create and update.
//
// On update an empty Status keeps the current status and a nil CategoryIDs
// keeps the current category links; a non-nil (possibly empty) slice
// replaces them.
type EventInput struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Date        Date        `json:"date"`
	Status      EventStatus `json:"status,omitempty"`
	VenueID     int64       `json:"venue_id"`
	CategoryIDs []int64     `json:"category_ids,omitempty"`
}

func (in EventInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("event title is required: %w", ErrInvalidInput)
	}
	if in.Date.IsZero() {
		return fmt.Errorf("event date is required: %w", ErrInvalidInput)
	}
	if in.Status != "" && !in.Status.Valid() {
		return fmt.Errorf("unknown event status %q: %w", in.Status, ErrInvalidInput)
	}
	return nil
}

func (in EventInput) Normalize() EventInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	return in
}
