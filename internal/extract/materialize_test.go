package extract

import (
	"testing"
	"time"

	"collabflow/internal/types"
)

func TestMaterializeAppliesDefaults(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

	records := Materialize([]Candidate{{}}, now)
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}

	r := records[0]
	if r.ID == "" {
		t.Fatal("record has no ID")
	}
	if r.BrandName != types.DefaultBrandName {
		t.Fatalf("brand = %q, want default", r.BrandName)
	}
	if r.Summary != types.DefaultSummary {
		t.Fatalf("summary = %q, want default", r.Summary)
	}
	if r.RequestDate != "2024-06-15" {
		t.Fatalf("requestDate = %q, want today", r.RequestDate)
	}
	if r.Status != types.StatusPending {
		t.Fatalf("status = %q, want pending", r.Status)
	}
}

func TestMaterializeKeepsProvidedFields(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

	records := Materialize([]Candidate{{
		BrandName:   "完美日记",
		Email:       "pr@example.com",
		RequestDate: "2024-05-01",
		Summary:     "新品口红推广",
		Budget:      "预算5k",
	}}, now)

	r := records[0]
	if r.BrandName != "完美日记" || r.Email != "pr@example.com" || r.RequestDate != "2024-05-01" {
		t.Fatalf("provided fields altered: %+v", r)
	}
	if r.Summary != "新品口红推广" || r.Budget != "预算5k" {
		t.Fatalf("provided fields altered: %+v", r)
	}
}

func TestMaterializeAssignsUniqueIDs(t *testing.T) {
	now := time.Now()
	records := Materialize(make([]Candidate, 5), now)

	seen := make(map[string]bool)
	for _, r := range records {
		if seen[r.ID] {
			t.Fatalf("duplicate ID %s", r.ID)
		}
		seen[r.ID] = true
	}
}

func TestMaterializeEmpty(t *testing.T) {
	if got := Materialize(nil, time.Now()); got != nil {
		t.Fatalf("want nil for empty input, got %v", got)
	}
}
