package core

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
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

// TestIDIsEmpty tests ID emptiness check
func TestIDIsEmpty(t *testing.T) {
	if !ID("").IsEmpty() {
		t.Error("Expected empty ID to be empty")
	}
	if ID("not-empty").IsEmpty() {
		t.Error("Expected non-empty ID to not be empty")
	}
}

func TestNewRunID(t *testing.T) {
	a, b := NewRunID(), NewRunID()
	if a.String() == "" || a == b {
		t.Errorf("expected distinct non-empty run IDs, got %q and %q", a, b)
	}
}

func TestHashShort(t *testing.T) {
	h := NewHash([]byte("A_Score,B_Score\n40,42\n"))
	if len(h.String()) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(h.String()))
	}
	if h.Short() != h.String()[:12] {
		t.Errorf("Short() = %s, want prefix of %s", h.Short(), h)
	}
	if h != NewHash([]byte("A_Score,B_Score\n40,42\n")) {
		t.Error("hash of identical input should be equal")
	}
}

func TestInsufficientDataErrors(t *testing.T) {
	groupsErr := NewInsufficientGroupsError("Element1_Obligation", 1)
	pairsErr := NewInsufficientPairsError("Element2_Burden", 2)

	if !errors.Is(groupsErr, ErrInsufficientGroups) || !IsInsufficientData(groupsErr) {
		t.Errorf("groups error should wrap ErrInsufficientGroups and ErrInsufficientData: %v", groupsErr)
	}
	if !errors.Is(pairsErr, ErrInsufficientPairs) || !IsInsufficientData(pairsErr) {
		t.Errorf("pairs error should wrap ErrInsufficientPairs and ErrInsufficientData: %v", pairsErr)
	}
	if errors.Is(groupsErr, ErrInsufficientPairs) {
		t.Error("groups error must not match ErrInsufficientPairs")
	}
	if IsInputError(groupsErr) {
		t.Error("insufficient data is not an input error")
	}
	if !IsInputError(NewUnknownCategoryError("Element1_Obligation", "maybe", 3)) {
		t.Error("unknown category should be an input error")
	}
}

func TestTimestampString(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	ts := NewTimestamp(time.Date(2026, 10, 18, 18, 30, 0, 0, tokyo))
	if ts.String() != "2026-10-18T09:30:00Z" {
		t.Errorf("unexpected timestamp string %s", ts.String())
	}

	data, err := json.Marshal(struct {
		At Timestamp `json:"at"`
	}{ts})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"at":"2026-10-18T09:30:00Z"}` {
		t.Errorf("unexpected JSON %s", data)
	}
}
