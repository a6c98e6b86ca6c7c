package domain

import (
	"fmt"
	"strings"
)

// Category labels events. EventIDs is a back-reference set.
type Category struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	EventIDs    []int64 `json:"event_ids"`
}

type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (in CategoryInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("category name is required: %w", ErrInvalidInput)
	}
	return nil
}

func (in CategoryInput) Normalize() CategoryInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	return in
}
