package cryptids_test

import (
	"strings"
	"testing"

	"github.com/jrazmi/tasker/sdk/cryptids"
)

func TestGenerateID(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		id, err := cryptids.GenerateID()
		if err != nil {
			t.Fatalf("GenerateID failed: %v", err)
		}
		if len(id) != cryptids.IDLength {
			t.Fatalf("Expected length %d, got %d", cryptids.IDLength, len(id))
		}
		for _, r := range id {
			if !strings.ContainsRune(cryptids.IDAlphabet, r) {
				t.Fatalf("Character %q not in alphabet", r)
			}
		}
		if seen[id] {
			t.Fatalf("Duplicate id %s", id)
		}
		seen[id] = true
	}
}

func TestGenerateCustomID_Invalid(t *testing.T) {
	if _, err := cryptids.GenerateCustomID("a", 5); err == nil {
		t.Error("Expected error for single-character alphabet")
	}
	if _, err := cryptids.GenerateCustomID("ab", 0); err == nil {
		t.Error("Expected error for zero size")
	}
}
