package products

import (
	"strings"
	"testing"
)

func TestValidateFields_CreateMode(t *testing.T) {
	limits := DefaultLimits()

	tests := []struct {
		name     string
		body     RawBody
		wantMsgs []string
	}{
		{
			name: "valid body",
			body: RawBody{"name": "Рис", "weight": 0.9, "threshold_days": float64(7)},
		},
		{
			name:     "everything missing",
			body:     RawBody{},
			wantMsgs: []string{"name is required", "weight must be a positive"},
		},
		{
			name: "absent threshold falls back to default, not an error",
			body: RawBody{"name": "Рис", "weight": 0.9},
		},
		{
			name:     "missing name only",
			body:     RawBody{"weight": 1.0, "threshold_days": float64(7)},
			wantMsgs: []string{"name is required"},
		},
		{
			name:     "name too long",
			body:     RawBody{"name": strings.Repeat("я", 256), "weight": 1.0, "threshold_days": float64(7)},
			wantMsgs: []string{"must not exceed 255 characters"},
		},
		{
			name: "name of exactly 255 runes passes",
			body: RawBody{"name": strings.Repeat("я", 255), "weight": 1.0, "threshold_days": float64(7)},
		},
		{
			name:     "zero weight",
			body:     RawBody{"name": "Рис", "weight": 0.0, "threshold_days": float64(7)},
			wantMsgs: []string{"weight must be a positive number"},
		},
		{
			name:     "negative weight",
			body:     RawBody{"name": "Рис", "weight": -2.5, "threshold_days": float64(7)},
			wantMsgs: []string{"weight must be a positive number"},
		},
		{
			name:     "weight below minimum",
			body:     RawBody{"name": "Рис", "weight": 0.0005, "threshold_days": float64(7)},
			wantMsgs: []string{"weight must be at least 0.001 kg"},
		},
		{
			name:     "weight above maximum",
			body:     RawBody{"name": "Рис", "weight": 1000.5, "threshold_days": float64(7)},
			wantMsgs: []string{"weight must not exceed 1000 kg"},
		},
		{
			name: "weight exactly at minimum passes",
			body: RawBody{"name": "Рис", "weight": "0.001", "threshold_days": float64(7)},
		},
		{
			name: "weight exactly at maximum passes",
			body: RawBody{"name": "Рис", "weight": "1000", "threshold_days": float64(7)},
		},
		{
			name:     "weight as unparseable string",
			body:     RawBody{"name": "Рис", "weight": "heavy", "threshold_days": float64(7)},
			wantMsgs: []string{"weight must be a positive number"},
		},
		{
			name: "weight as numeric string",
			body: RawBody{"name": "Рис", "weight": "2.5", "threshold_days": float64(7)},
		},
		{
			name:     "threshold zero",
			body:     RawBody{"name": "Рис", "weight": 1.0, "threshold_days": float64(0)},
			wantMsgs: []string{"threshold must be between 1 and 365"},
		},
		{
			name:     "threshold above maximum",
			body:     RawBody{"name": "Рис", "weight": 1.0, "threshold_days": float64(366)},
			wantMsgs: []string{"threshold must be between 1 and 365"},
		},
		{
			name:     "threshold fractional",
			body:     RawBody{"name": "Рис", "weight": 1.0, "threshold_days": 7.5},
			wantMsgs: []string{"threshold must be between 1 and 365"},
		},
		{
			name: "threshold as numeric string",
			body: RawBody{"name": "Рис", "weight": 1.0, "threshold_days": "30"},
		},
		{
			name:     "all errors accumulated",
			body:     RawBody{"name": "", "weight": -1.0, "threshold_days": float64(9999)},
			wantMsgs: []string{"name is required", "weight must be a positive", "threshold must be between"},
		},
		{
			name:     "supplied invalid threshold still checked",
			body:     RawBody{"name": "Рис", "weight": 0.9, "threshold_days": "soon"},
			wantMsgs: []string{"threshold must be between"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateFields(tt.body, ModeCreate, limits)
			if len(got) != len(tt.wantMsgs) {
				t.Fatalf("want %d messages, got %d: %v", len(tt.wantMsgs), len(got), got)
			}
			for i, fragment := range tt.wantMsgs {
				if !strings.Contains(got[i], fragment) {
					t.Fatalf("message %d: want fragment %q, got %q", i, fragment, got[i])
				}
			}
		})
	}
}

func TestValidateFields_UpdateMode(t *testing.T) {
	limits := DefaultLimits()

	tests := []struct {
		name     string
		body     RawBody
		wantMsgs int
	}{
		{name: "empty body is valid", body: RawBody{}},
		{name: "absent fields are not checked", body: RawBody{"weight": 2.5}},
		{name: "supplied invalid weight still fails", body: RawBody{"weight": -1.0}, wantMsgs: 1},
		{name: "supplied empty name still fails", body: RawBody{"name": ""}, wantMsgs: 1},
		{name: "supplied bad threshold still fails", body: RawBody{"threshold_days": "soon"}, wantMsgs: 1},
		{name: "unrecognized keys are ignored", body: RawBody{"colour": "green"}},
		{
			name:     "multiple supplied problems accumulate",
			body:     RawBody{"name": "", "weight": "heavy"},
			wantMsgs: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateFields(tt.body, ModeUpdate, limits)
			if len(got) != tt.wantMsgs {
				t.Fatalf("want %d messages, got %d: %v", tt.wantMsgs, len(got), got)
			}
		})
	}
}

func TestValidateFields_DoesNotMutateBody(t *testing.T) {
	body := RawBody{"name": "Рис", "weight": "2.5", "threshold_days": "7"}
	_ = ValidateFields(body, ModeCreate, DefaultLimits())

	if body["weight"] != "2.5" || body["threshold_days"] != "7" {
		t.Fatalf("body mutated: %v", body)
	}
}

func TestChangeSet(t *testing.T) {
	var cs ChangeSet
	if !cs.Empty() {
		t.Fatal("new change set should be empty")
	}

	cs.Set(FieldWeight, 2.5)
	cs.Set(FieldName, "Рис")

	if cs.Empty() {
		t.Fatal("change set with entries should not be empty")
	}
	if len(cs) != 2 {
		t.Fatalf("want 2 changes, got %d", len(cs))
	}
	if cs[0].Field != FieldWeight || cs[1].Field != FieldName {
		t.Fatalf("order not preserved: %v", cs)
	}
}
