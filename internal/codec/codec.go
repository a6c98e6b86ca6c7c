// Package codec reads and writes catalog fixtures.
package codec

import (
	"fmt"
	"io"
	"strings"

	"venuestore/internal/domain"
)

// Importer parses a fixture from some format
type Importer interface {
	Parse(r io.Reader) (*domain.Fixture, error)
	Format() string
}

// Exporter writes a fixture in some format
type Exporter interface {
	Export(fixture *domain.Fixture, w io.Writer) error
	Format() string
}

// Codec both reads and writes one format
type Codec interface {
	Importer
	Exporter
}

// ForFormat returns the codec for "yaml"/"yml" or "json".
func ForFormat(format string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "yaml", "yml":
		return NewYAMLCodec(), nil
	case "json":
		return NewJSONCodec(), nil
	default:
		return nil, fmt.Errorf("unknown fixture format %q: %w", format, domain.ErrInvalidInput)
	}
}

// normalize trims names so references written by hand still resolve
func normalize(fx *domain.Fixture) *domain.Fixture {
	for i := range fx.Venues {
		fx.Venues[i].Name = strings.TrimSpace(fx.Venues[i].Name)
	}
	for i := range fx.Categories {
		fx.Categories[i].Name = strings.TrimSpace(fx.Categories[i].Name)
	}
	for i := range fx.Events {
		e := &fx.Events[i]
		e.Title = strings.TrimSpace(e.Title)
		e.Venue = strings.TrimSpace(e.Venue)
		cats := e.Categories[:0]
		for _, c := range e.Categories {
			if c = strings.TrimSpace(c); c != "" {
				cats = append(cats, c)
			}
		}
		e.Categories = cats
	}
	return fx
}
