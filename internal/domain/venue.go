package domain

import (
	"fmt"
	"strings"
)

// Venue is a place that hosts events. It owns its events.
type Venue struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Address  string  `json:"address"`
	City     string  `json:"city"`
	Capacity int     `json:"capacity"`
	EventIDs []int64 `json:"event_ids"`
}

// VenueInput carries the mutable attributes of a Venue.
type VenueInput struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Capacity int    `json:"capacity"`
}

// Validate checks the attribute constraints of a venue.
func (in VenueInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("venue name is required: %w", ErrInvalidInput)
	}
	if in.Capacity <= 0 {
		return fmt.Errorf("venue capacity must be positive, got %d: %w", in.Capacity, ErrInvalidInput)
	}
	return nil
}

// Normalize trims surrounding whitespace from text fields.
func (in VenueInput) Normalize() VenueInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Address = strings.TrimSpace(in.Address)
	in.City = strings.TrimSpace(in.City)
	return in
}
