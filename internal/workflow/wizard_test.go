package workflow

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"collabflow/internal/store"
	"collabflow/internal/types"

	"github.com/google/go-cmp/cmp"
)

func testRequests(t *testing.T) *store.RequestStore {
	t.Helper()
	local, err := store.Open(filepath.Join(t.TempDir(), "collabflow.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { local.Close() })

	requests, err := store.NewRequestStore(local)
	if err != nil {
		t.Fatalf("request store: %v", err)
	}
	return requests
}

func req(id, brand, email string) types.CollaborationRequest {
	return types.CollaborationRequest{
		ID:          id,
		BrandName:   brand,
		Email:       email,
		RequestDate: "2024-06-01",
		Summary:     "新品推广",
		Status:      types.StatusPending,
	}
}

func acceptTemplate() types.ReplyTemplate {
	return types.ReplyTemplate{
		ID:      types.TemplateYes,
		Subject: "Re: {brandName} 合作",
		Body:    "你好 {brandName}，我们聊聊。",
	}
}

func TestStartRequiresSelection(t *testing.T) {
	_, err := Start(nil, acceptTemplate())
	if !errors.Is(err, ErrEmptySelection) {
		t.Fatalf("err = %v, want ErrEmptySelection", err)
	}
}

func TestNavigationClampsAtEnds(t *testing.T) {
	w, err := Start([]types.CollaborationRequest{
		req("a", "A", "a@x.com"),
		req("b", "B", "b@x.com"),
	}, acceptTemplate())
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	w.Prev()
	if w.Index() != 0 {
		t.Fatal("Prev on first record moved the cursor")
	}
	w.Next()
	w.Next()
	w.Next()
	if w.Index() != 1 {
		t.Fatalf("index = %d, want clamped to last", w.Index())
	}
	if !w.AtLast() {
		t.Fatal("AtLast should be true on the last record")
	}
}

func TestCurrentRendersTemplateForCursor(t *testing.T) {
	w, err := Start([]types.CollaborationRequest{
		req("a", "完美日记", "pr@brand.com"),
		req("b", "Nike", "nike@brand.com"),
	}, acceptTemplate())
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	p := w.Current()
	if p.Subject != "Re: 完美日记 合作" {
		t.Fatalf("subject = %q", p.Subject)
	}
	if !strings.Contains(p.Body, "完美日记") {
		t.Fatalf("body not rendered: %q", p.Body)
	}
	if !strings.HasPrefix(p.Mailto, "mailto:pr@brand.com?subject=") {
		t.Fatalf("mailto = %q", p.Mailto)
	}

	w.Next()
	if got := w.Current().Request.BrandName; got != "Nike" {
		t.Fatalf("cursor brand = %q, want Nike", got)
	}
}

func TestDoneCommitsOnlyMarkedRecords(t *testing.T) {
	requests := testRequests(t)
	batch := []types.CollaborationRequest{
		req("a", "A", "a@x.com"),
		req("b", "B", "b@x.com"),
		req("c", "C", "c@x.com"),
	}
	if err := requests.Import(batch); err != nil {
		t.Fatalf("import: %v", err)
	}

	w, err := Start(batch[:2], acceptTemplate())
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	w.MarkSent()
	w.Next()
	w.MarkSent()
	if err := w.Done(requests); err != nil {
		t.Fatalf("Done: %v", err)
	}

	for _, want := range []struct {
		id     string
		status types.Status
	}{
		{"a", types.StatusReplied},
		{"b", types.StatusReplied},
		{"c", types.StatusPending},
	} {
		got, ok := requests.Get(want.id)
		if !ok {
			t.Fatalf("record %s missing", want.id)
		}
		if got.Status != want.status {
			t.Fatalf("record %s status = %q, want %q", want.id, got.Status, want.status)
		}
	}
}

func TestDoneSkipsUnmarkedRecords(t *testing.T) {
	requests := testRequests(t)
	batch := []types.CollaborationRequest{
		req("a", "A", "a@x.com"),
		req("b", "B", "b@x.com"),
	}
	if err := requests.Import(batch); err != nil {
		t.Fatalf("import: %v", err)
	}

	w, _ := Start(batch, acceptTemplate())
	w.MarkSent()
	if err := w.Done(requests); err != nil {
		t.Fatalf("Done: %v", err)
	}

	a, _ := requests.Get("a")
	b, _ := requests.Get("b")
	if a.Status != types.StatusReplied || b.Status != types.StatusPending {
		t.Fatalf("statuses = %q/%q, want replied/pending", a.Status, b.Status)
	}
}

func TestCancelLeavesStoreUntouched(t *testing.T) {
	requests := testRequests(t)
	batch := []types.CollaborationRequest{
		req("a", "A", "a@x.com"),
		req("b", "B", "b@x.com"),
	}
	if err := requests.Import(batch); err != nil {
		t.Fatalf("import: %v", err)
	}
	before := requests.All()

	w, _ := Start(batch, acceptTemplate())
	w.MarkSent()
	w.Next()
	w.MarkSent()
	w.Cancel()

	if diff := cmp.Diff(before, requests.All()); diff != "" {
		t.Fatalf("store changed after cancel (-before +after):\n%s", diff)
	}
}

func TestMarkSentIsIdempotent(t *testing.T) {
	w, _ := Start([]types.CollaborationRequest{req("a", "A", "a@x.com")}, acceptTemplate())

	first := w.MarkSent()
	second := w.MarkSent()
	if first != second {
		t.Fatal("repeated MarkSent returned different links")
	}
	if w.SentCount() != 1 {
		t.Fatalf("sent count = %d, want 1", w.SentCount())
	}
}

func TestStartSnapshotsTargets(t *testing.T) {
	batch := []types.CollaborationRequest{req("a", "A", "a@x.com")}
	w, _ := Start(batch, acceptTemplate())

	batch[0].BrandName = "mutated"
	if got := w.Current().Request.BrandName; got != "A" {
		t.Fatalf("wizard saw caller mutation: %q", got)
	}
}
