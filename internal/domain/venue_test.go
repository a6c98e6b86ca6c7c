package domain

import (
	"errors"
	"testing"
)

func TestVenueInputValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   VenueInput
		wantErr bool
	}{
		{"valid", VenueInput{Name: "Teatro Colón", City: "Bogotá", Capacity: 900}, false},
		{"no city or address", VenueInput{Name: "Hall", Capacity: 1}, false},
		{"blank name", VenueInput{Name: " ", Capacity: 10}, true},
		{"zero capacity", VenueInput{Name: "Hall"}, true},
		{"negative capacity", VenueInput{Name: "Hall", Capacity: -5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.wantErr && !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestVenueInputNormalize(t *testing.T) {
	in := VenueInput{Name: " Hall ", Address: " Cra 7 ", City: " Cali ", Capacity: 3}.Normalize()
	want := VenueInput{Name: "Hall", Address: "Cra 7", City: "Cali", Capacity: 3}
	if in != want {
		t.Errorf("expected %+v, got %+v", want, in)
	}
}

func TestCategoryInputValidate(t *testing.T) {
	t.Run("requires a name", func(t *testing.T) {
		if err := (CategoryInput{Name: "\t"}).Validate(); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("description is optional", func(t *testing.T) {
		if err := (CategoryInput{Name: "Jazz"}).Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("normalize trims both fields", func(t *testing.T) {
		in := CategoryInput{Name: " Jazz ", Description: " swing "}.Normalize()
		if in.Name != "Jazz" || in.Description != "swing" {
			t.Errorf("unexpected normalized input %+v", in)
		}
	})
}
