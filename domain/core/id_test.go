package core

import (
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

// TestIDString tests ID string conversion
func TestIDString(t *testing.T) {
	id := ID("test-123")
	if id.String() != "test-123" {
		t.Errorf("Expected String() to return 'test-123', got '%s'", id.String())
	}
}

// TestIDIsEmpty tests ID emptiness check
func TestIDIsEmpty(t *testing.T) {
	emptyID := ID("")
	if !emptyID.IsEmpty() {
		t.Error("Expected empty ID to be empty")
	}

	nonEmptyID := ID("not-empty")
	if nonEmptyID.IsEmpty() {
		t.Error("Expected non-empty ID to not be empty")
	}
}

// TestParse tests client-supplied identifier validation
func TestParse(t *testing.T) {
	tests := []struct {
		input string
		ok    bool
	}{
		{NewID().String(), true},
		{"550e8400-e29b-41d4-a716-446655440000", true},
		{"", false},
		{"   ", false},
		{"not-a-uuid", false},
	}

	for _, test := range tests {
		result, ok := Parse(test.input)
		if ok != test.ok {
			t.Errorf("Parse(%q) ok = %v, want %v", test.input, ok, test.ok)
		}
		if ok && result.String() != test.input {
			t.Errorf("Parse(%q) = %s, want the input back", test.input, result)
		}
		if !ok && !result.IsEmpty() {
			t.Errorf("Parse(%q) returned %s with ok=false", test.input, result)
		}
	}
}
