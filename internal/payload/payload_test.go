package payload

import (
	"testing"
)

func TestUnwrap(t *testing.T) {
	record := map[string]any{"subject": "dragon"}

	tests := []struct {
		name      string
		payload   any
		wantShape Shape
		wantNil   bool
	}{
		{
			name:      "bare array",
			payload:   []any{record, map[string]any{"subject": "second"}},
			wantShape: ShapeArray,
		},
		{
			name:      "wrapped under data",
			payload:   map[string]any{"data": []any{record}},
			wantShape: ShapeWrapped,
		},
		{
			name:      "wrapped under result",
			payload:   map[string]any{"result": []any{record}},
			wantShape: ShapeWrapped,
		},
		{
			name:      "bare object",
			payload:   record,
			wantShape: ShapeObject,
		},
		{
			name:      "empty array",
			payload:   []any{},
			wantShape: ShapeArray,
			wantNil:   true,
		},
		{
			name:      "empty wrapped array",
			payload:   map[string]any{"data": []any{}},
			wantShape: ShapeWrapped,
			wantNil:   true,
		},
		{
			name:      "array of scalars",
			payload:   []any{"x", 1.0},
			wantShape: ShapeArray,
			wantNil:   true,
		},
		{
			name:      "nil",
			payload:   nil,
			wantShape: ShapeUnrecognized,
			wantNil:   true,
		},
		{
			name:      "string",
			payload:   "not json-shaped",
			wantShape: ShapeUnrecognized,
			wantNil:   true,
		},
		{
			name:      "number",
			payload:   42.0,
			wantShape: ShapeUnrecognized,
			wantNil:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.payload); got != tt.wantShape {
				t.Errorf("Expected shape %s, got %s", tt.wantShape, got)
			}

			got := Unwrap(tt.payload)
			if tt.wantNil {
				if got != nil {
					t.Errorf("Expected no candidate, got %v", got)
				}
				return
			}
			if got == nil {
				t.Fatal("Expected a candidate, got nil")
			}
			if got["subject"] != "dragon" {
				t.Errorf("Expected first record, got %v", got)
			}
		})
	}
}

func TestUnwrapDataNotArray(t *testing.T) {
	// An object whose data key holds an object is itself the candidate.
	v := map[string]any{"data": map[string]any{"subject": "inner"}, "mood": "calm"}

	if Classify(v) != ShapeObject {
		t.Fatalf("Expected object shape, got %s", Classify(v))
	}
	got := Unwrap(v)
	if got["mood"] != "calm" {
		t.Errorf("Expected outer object as candidate, got %v", got)
	}
}

func TestUnwrapPrefersDataOverResult(t *testing.T) {
	v := map[string]any{
		"result": []any{map[string]any{"from": "result"}},
		"data":   []any{map[string]any{"from": "data"}},
	}
	if got := Unwrap(v); got["from"] != "data" {
		t.Errorf("Expected data to win, got %v", got)
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantShape Shape
	}{
		{"array", `[{"a":"b"}]`, ShapeArray},
		{"object", `{"a":"b"}`, ShapeObject},
		{"wrapped", `{"result":[{"a":"b"}]}`, ShapeWrapped},
		{"invalid", `{"a":`, ShapeUnrecognized},
		{"empty", ``, ShapeUnrecognized},
		{"whitespace", "  \n", ShapeUnrecognized},
		{"null", `null`, ShapeUnrecognized},
		{"html error page", `<html>502</html>`, ShapeUnrecognized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(Decode([]byte(tt.input))); got != tt.wantShape {
				t.Errorf("Expected %s, got %s", tt.wantShape, got)
			}
		})
	}
}

func TestRecords(t *testing.T) {
	v := Decode([]byte(`{"data":[{"id":"rec1"},"noise",{"id":"rec2"}]}`))

	recs := Records(v)
	if len(recs) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(recs))
	}
	if recs[0]["id"] != "rec1" || recs[1]["id"] != "rec2" {
		t.Errorf("Unexpected records: %v", recs)
	}

	if got := Records(map[string]any{"id": "solo"}); len(got) != 1 {
		t.Errorf("Expected bare object to yield one record, got %d", len(got))
	}
	if got := Records(nil); got != nil {
		t.Errorf("Expected nil for nil payload, got %v", got)
	}
}
