package store

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"collabflow/internal/types"
)

func openTestLocal(t *testing.T) *Local {
	t.Helper()
	local, err := Open(filepath.Join(t.TempDir(), "collabflow.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { local.Close() })
	return local
}

func req(id, brand, summary string) types.CollaborationRequest {
	return types.CollaborationRequest{
		ID:          id,
		BrandName:   brand,
		Email:       brand + "@example.com",
		RequestDate: "2024-01-10",
		Summary:     summary,
		Status:      types.StatusPending,
	}
}

func TestImportPrependsPreservingBatchOrder(t *testing.T) {
	local := openTestLocal(t)
	s, err := NewRequestStore(local)
	if err != nil {
		t.Fatalf("NewRequestStore: %v", err)
	}

	if err := s.Import([]types.CollaborationRequest{req("a", "Alpha", "first")}); err != nil {
		t.Fatalf("Import: %v", err)
	}
	if err := s.Import([]types.CollaborationRequest{
		req("b", "Beta", "second"),
		req("c", "Gamma", "third"),
	}); err != nil {
		t.Fatalf("Import: %v", err)
	}

	got := s.All()
	wantIDs := []string{"b", "c", "a"}
	if len(got) != len(wantIDs) {
		t.Fatalf("len = %d, want %d", len(got), len(wantIDs))
	}
	for i, id := range wantIDs {
		if got[i].ID != id {
			t.Fatalf("order[%d] = %s, want %s", i, got[i].ID, id)
		}
	}
	// Existing record untouched by the second batch.
	if got[2].Status != types.StatusPending || got[2].BrandName != "Alpha" {
		t.Fatalf("existing record mutated: %+v", got[2])
	}
}

func TestImportAllowsDuplicates(t *testing.T) {
	local := openTestLocal(t)
	s, _ := NewRequestStore(local)

	batch := []types.CollaborationRequest{
		req("x1", "SameBrand", "offer"),
		req("x2", "SameBrand", "offer"),
	}
	if err := s.Import(batch); err != nil {
		t.Fatalf("Import: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("Len = %d, duplicates must be kept", s.Len())
	}
}

func TestMarkRepliedIsIdempotentAndScoped(t *testing.T) {
	local := openTestLocal(t)
	s, _ := NewRequestStore(local)
	if err := s.Import([]types.CollaborationRequest{
		req("a", "Alpha", "one"),
		req("b", "Beta", "two"),
		req("c", "Gamma", "three"),
	}); err != nil {
		t.Fatalf("Import: %v", err)
	}

	if err := s.MarkReplied([]string{"a", "b"}); err != nil {
		t.Fatalf("MarkReplied: %v", err)
	}
	once := s.All()

	if err := s.MarkReplied([]string{"a", "b"}); err != nil {
		t.Fatalf("MarkReplied twice: %v", err)
	}
	twice := s.All()

	if diff := cmp.Diff(once, twice); diff != "" {
		t.Fatalf("second MarkReplied changed state (-once +twice):\n%s", diff)
	}

	for _, r := range twice {
		want := types.StatusReplied
		if r.ID == "c" {
			want = types.StatusPending
		}
		if r.Status != want {
			t.Fatalf("record %s status = %s, want %s", r.ID, r.Status, want)
		}
	}
}

func TestDeleteRemovesOnlyListedIDs(t *testing.T) {
	local := openTestLocal(t)
	s, _ := NewRequestStore(local)
	s.Import([]types.CollaborationRequest{
		req("a", "Alpha", "one"),
		req("b", "Beta", "two"),
		req("c", "Gamma", "three"),
	})

	if err := s.Delete([]string{"b"}); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got := s.All()
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
		t.Fatalf("unexpected survivors: %+v", got)
	}
}

func TestFilter(t *testing.T) {
	local := openTestLocal(t)
	s, _ := NewRequestStore(local)
	s.Import([]types.CollaborationRequest{
		req("a", "Glossier", "lipstick campaign"),
		req("b", "Nike", "sneaker video"),
		req("c", "Acme", "LIPSTICK giveaway"),
	})

	all := s.Filter("")
	if len(all) != 3 {
		t.Fatalf("empty query returned %d records", len(all))
	}
	for i, r := range s.All() {
		if all[i].ID != r.ID {
			t.Fatal("empty query must preserve collection order")
		}
	}

	got := s.Filter("lipstick")
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
		t.Fatalf("case-insensitive filter = %+v", got)
	}

	byBrand := s.Filter("nike")
	if len(byBrand) != 1 || byBrand[0].ID != "b" {
		t.Fatalf("brand filter = %+v", byBrand)
	}
}

func TestRestartReconstructsLastSavedCollection(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "collabflow.db")

	local, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	s, _ := NewRequestStore(local)
	s.Import([]types.CollaborationRequest{req("a", "Alpha", "one")})
	s.MarkReplied([]string{"a"})
	before := s.All()
	local.Close()

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	s2, err := NewRequestStore(reopened)
	if err != nil {
		t.Fatalf("NewRequestStore after reopen: %v", err)
	}
	if diff := cmp.Diff(before, s2.All()); diff != "" {
		t.Fatalf("restart lost state (-before +after):\n%s", diff)
	}
}
