package codec

import (
	"errors"
	"fmt"
	"io"

	"venuestore/internal/domain"

	"gopkg.in/yaml.v3"
)

// YAMLCodec handles YAML fixtures
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// Parse reads a fixture from YAML. Unknown keys are rejected so typos in
// hand-written seeds surface early. An empty document is an empty fixture.
func (c *YAMLCodec) Parse(r io.Reader) (*domain.Fixture, error) {
	var fx domain.Fixture
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&fx); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %v: %w", err, domain.ErrInvalidInput)
	}
	return normalize(&fx), nil
}

// Export writes the fixture as YAML
func (c *YAMLCodec) Export(fixture *domain.Fixture, w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(fixture); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}
