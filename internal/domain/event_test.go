package domain

import (
	"errors"
	"testing"
	"time"
)

func TestParseEventStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    EventStatus
		wantErr bool
	}{
		{"active", EventStatusActive, false},
		{"CANCELLED", EventStatusCancelled, false},
		{"Finished", EventStatusFinished, false},
		{"  postponed ", EventStatusPostponed, false},
		{"canceled", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseEventStatus(tt.input)
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

func TestEventStatusValid(t *testing.T) {
	for _, s := range []EventStatus{EventStatusActive, EventStatusCancelled, EventStatusFinished, EventStatusPostponed} {
		if !s.Valid() {
			t.Errorf("expected %s to be valid", s)
		}
	}
	if EventStatus("Active").Valid() {
		t.Error("expected Valid to be case-sensitive")
	}
}

func TestEventInputValidate(t *testing.T) {
	date := NewDate(2025, time.March, 4)

	tests := []struct {
		name    string
		input   EventInput
		wantErr bool
	}{
		{"minimal", EventInput{Title: "Show", Date: date}, false},
		{"with status", EventInput{Title: "Show", Date: date, Status: EventStatusPostponed}, false},
		{"blank title", EventInput{Title: "   ", Date: date}, true},
		{"missing date", EventInput{Title: "Show"}, true},
		{"unknown status", EventInput{Title: "Show", Date: date, Status: "paused"}, true},
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

func TestEventInputNormalize(t *testing.T) {
	in := EventInput{Title: "  Show ", Description: "\tlate night\n", CategoryIDs: []int64{2, 1}}.Normalize()

	if in.Title != "Show" {
		t.Errorf("expected title 'Show', got %q", in.Title)
	}
	if in.Description != "late night" {
		t.Errorf("expected trimmed description, got %q", in.Description)
	}
	if len(in.CategoryIDs) != 2 || in.CategoryIDs[0] != 2 {
		t.Errorf("expected category ids untouched, got %v", in.CategoryIDs)
	}
}
