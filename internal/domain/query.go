package domain

// EventFilter selects events. Every zero-valued field is unconstrained.
type EventFilter struct {
	City          string // substring of the venue city, case-insensitive
	Category      string // substring of any linked category name, case-insensitive
	DateFrom      Date   // event date strictly after
	DateTo        Date   // event date on or before
	Status        EventStatus
	VenueID       int64
	TitleContains string
}

// VenueFilter selects venues. Every zero-valued field is unconstrained.
type VenueFilter struct {
	NameContains string
	City         string
	MinCapacity  int
	MaxCapacity  int
}

// PageRequest addresses a zero-based page. A Size of zero or less means the
// store default.
type PageRequest struct {
	Index int
	Size  int
}

// Page is one slice of an ordered result set.
type Page[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Index      int `json:"page"`
	Size       int `json:"size"`
	TotalPages int `json:"total_pages"`
}
