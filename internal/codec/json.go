package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"venuestore/internal/domain"
)

// JSONCodec handles JSON fixtures
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// Parse reads a fixture from JSON
func (c *JSONCodec) Parse(r io.Reader) (*domain.Fixture, error) {
	var fx domain.Fixture
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&fx); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %v: %w", err, domain.ErrInvalidInput)
	}
	return normalize(&fx), nil
}

// Export writes the fixture as indented JSON
func (c *JSONCodec) Export(fixture *domain.Fixture, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(fixture); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
