package domain

// Fixture is a hand-writable catalog. Events refer to their venue and
// categories by name rather than by identifier, so a fixture can be loaded
// into any store.
type Fixture struct {
	Venues     []FixtureVenue    `json:"venues" yaml:"venues"`
	Categories []FixtureCategory `json:"categories" yaml:"categories"`
	Events     []FixtureEvent    `json:"events" yaml:"events"`
}

type FixtureVenue struct {
	Name     string `json:"name" yaml:"name"`
	Address  string `json:"address,omitempty" yaml:"address,omitempty"`
	City     string `json:"city,omitempty" yaml:"city,omitempty"`
	Capacity int    `json:"capacity" yaml:"capacity"`
}

type FixtureCategory struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

type FixtureEvent struct {
	Title       string      `json:"title" yaml:"title"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Date        Date        `json:"date" yaml:"date"`
	Status      EventStatus `json:"status,omitempty" yaml:"status,omitempty"`
	Venue       string      `json:"venue" yaml:"venue"`
	Categories  []string    `json:"categories,omitempty" yaml:"categories,omitempty"`
}

// Input converts the venue to a create/update payload.
func (v FixtureVenue) Input() VenueInput {
	return VenueInput{Name: v.Name, Address: v.Address, City: v.City, Capacity: v.Capacity}.Normalize()
}

func (c FixtureCategory) Input() CategoryInput {
	return CategoryInput{Name: c.Name, Description: c.Description}.Normalize()
}
