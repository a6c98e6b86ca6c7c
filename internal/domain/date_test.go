package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Date
		wantErr bool
	}{
		{"valid", "2025-03-04", NewDate(2025, time.March, 4), false},
		{"leap day", "2024-02-29", NewDate(2024, time.February, 29), false},
		{"not a leap year", "2025-02-29", Date{}, true},
		{"wrong layout", "04/03/2025", Date{}, true},
		{"with time", "2025-03-04T10:00:00Z", Date{}, true},
		{"empty", "", Date{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestDateOfDropsTimeOfDay(t *testing.T) {
	bogota := time.FixedZone("COT", -5*3600)
	got := DateOf(time.Date(2025, time.March, 4, 23, 30, 0, 0, bogota))
	if got != NewDate(2025, time.March, 4) {
		t.Errorf("expected 2025-03-04 in the caller's zone, got %s", got)
	}
}

func TestDateOrdering(t *testing.T) {
	a, b := NewDate(2025, time.March, 4), NewDate(2025, time.March, 5)

	if !a.Before(b) || !b.After(a) {
		t.Error("expected March 4 before March 5")
	}
	if a.Compare(b) != -1 || b.Compare(a) != 1 || a.Compare(a) != 0 {
		t.Error("unexpected Compare results")
	}
	if !a.AddDays(1).Equal(b) {
		t.Errorf("expected AddDays(1) to give %s, got %s", b, a.AddDays(1))
	}
	if a.AddDays(-4) != NewDate(2025, time.February, 28) {
		t.Errorf("expected AddDays to cross month boundaries, got %s", a.AddDays(-4))
	}
}

func TestDateJSON(t *testing.T) {
	type wrapper struct {
		Date Date `json:"date"`
	}

	t.Run("marshals as string", func(t *testing.T) {
		data, err := json.Marshal(wrapper{Date: NewDate(2025, time.March, 4)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(data) != `{"date":"2025-03-04"}` {
			t.Errorf("unexpected JSON %s", data)
		}
	})

	t.Run("zero marshals as null", func(t *testing.T) {
		data, err := json.Marshal(wrapper{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(data) != `{"date":null}` {
			t.Errorf("unexpected JSON %s", data)
		}
	})

	tests := []struct {
		name    string
		input   string
		want    Date
		wantErr bool
	}{
		{"value", `{"date":"2025-03-04"}`, NewDate(2025, time.March, 4), false},
		{"null", `{"date":null}`, Date{}, false},
		{"empty string", `{"date":""}`, Date{}, false},
		{"bad layout", `{"date":"March 4"}`, Date{}, true},
		{"number", `{"date":20250304}`, Date{}, true},
	}
	for _, tt := range tests {
		t.Run("unmarshal "+tt.name, func(t *testing.T) {
			w := wrapper{Date: NewDate(2000, time.January, 1)}
			err := json.Unmarshal([]byte(tt.input), &w)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if w.Date != tt.want {
				t.Errorf("expected %q, got %q", tt.want, w.Date)
			}
		})
	}
}

func TestDateYAML(t *testing.T) {
	type wrapper struct {
		Date Date `yaml:"date"`
	}

	data, err := yaml.Marshal(wrapper{Date: NewDate(2025, time.March, 4)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var back wrapper
	if err := yaml.Unmarshal(data, &back); err != nil {
		t.Fatalf("unexpected error reading %q: %v", data, err)
	}
	if back.Date != NewDate(2025, time.March, 4) {
		t.Errorf("expected 2025-03-04 from %q, got %q", data, back.Date)
	}

	tests := []struct {
		name    string
		input   string
		want    Date
		wantErr bool
	}{
		{"quoted", `date: "2025-03-04"`, NewDate(2025, time.March, 4), false},
		{"plain", `date: 2025-03-04`, NewDate(2025, time.March, 4), false},
		{"null", `date: null`, Date{}, false},
		{"empty", `date: ""`, Date{}, false},
		{"bad layout", `date: tomorrow`, Date{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var w wrapper
			err := yaml.Unmarshal([]byte(tt.input), &w)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if w.Date != tt.want {
				t.Errorf("expected %q, got %q", tt.want, w.Date)
			}
		})
	}
}
