package dashboard

import (
	"context"
	"path/filepath"
	"testing"

	"collabflow/internal/extract"
	"collabflow/internal/store"
	"collabflow/internal/types"

	tea "github.com/charmbracelet/bubbletea"
)

type fakeParser struct {
	candidates []extract.Candidate
	err        error
}

func (p *fakeParser) Parse(_ context.Context, _, _ string) ([]extract.Candidate, error) {
	return p.candidates, p.err
}

func newTestModel(t *testing.T, records ...types.CollaborationRequest) Model {
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
	if len(records) > 0 {
		if err := requests.Import(records); err != nil {
			t.Fatalf("import: %v", err)
		}
	}
	templates, err := store.NewTemplateStore(local)
	if err != nil {
		t.Fatalf("template store: %v", err)
	}

	m, err := New(requests, templates, local, &fakeParser{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(Model)
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func record(id, brand string) types.CollaborationRequest {
	return types.CollaborationRequest{
		ID:          id,
		BrandName:   brand,
		Email:       brand + "@example.com",
		RequestDate: "2024-06-01",
		Summary:     "新品推广",
		Status:      types.StatusPending,
	}
}

func TestSpaceTogglesSelection(t *testing.T) {
	m := newTestModel(t, record("a", "Alpha"), record("b", "Beta"))

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = updated.(Model)
	if m.selection.Len() != 1 {
		t.Fatalf("selection = %d, want 1", m.selection.Len())
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = updated.(Model)
	if m.selection.Len() != 0 {
		t.Fatalf("selection = %d after second toggle, want 0", m.selection.Len())
	}
}

func TestToggleAllVisibleKey(t *testing.T) {
	m := newTestModel(t, record("a", "Alpha"), record("b", "Beta"), record("c", "Gamma"))

	updated, _ := m.Update(keyRunes("a"))
	m = updated.(Model)
	if m.selection.Len() != 3 {
		t.Fatalf("selection = %d, want all 3", m.selection.Len())
	}

	updated, _ = m.Update(keyRunes("a"))
	m = updated.(Model)
	if m.selection.Len() != 0 {
		t.Fatalf("selection = %d, want 0", m.selection.Len())
	}
}

func TestSearchFiltersList(t *testing.T) {
	m := newTestModel(t, record("a", "Nike"), record("b", "完美日记"))

	updated, _ := m.Update(keyRunes("/"))
	m = updated.(Model)
	if m.mode != ModeSearch {
		t.Fatalf("mode = %v, want ModeSearch", m.mode)
	}

	updated, _ = m.Update(keyRunes("nike"))
	m = updated.(Model)
	if len(m.visible) != 1 || m.visible[0].BrandName != "Nike" {
		t.Fatalf("visible = %v, want only Nike", m.visible)
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)
	if len(m.visible) != 2 {
		t.Fatalf("visible = %d after clearing search, want 2", len(m.visible))
	}
}

func TestReplyRequiresSelection(t *testing.T) {
	m := newTestModel(t, record("a", "Alpha"))

	updated, _ := m.Update(keyRunes("y"))
	m = updated.(Model)
	if m.mode != ModeBrowse {
		t.Fatal("wizard should not open without a selection")
	}
	if m.status == "" {
		t.Fatal("expected a hint about selecting records first")
	}
}

func TestReplyFlowCommitsSentRecords(t *testing.T) {
	m := newTestModel(t, record("a", "Alpha"), record("b", "Beta"), record("c", "Gamma"))

	// Select the first two and open the accept wizard.
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = updated.(Model)
	updated, _ = m.Update(keyRunes("j"))
	m = updated.(Model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = updated.(Model)
	updated, _ = m.Update(keyRunes("y"))
	m = updated.(Model)
	if m.mode != ModeReply {
		t.Fatalf("mode = %v, want ModeReply", m.mode)
	}

	// Send both, then finish.
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	updated, _ = m.Update(keyRunes("l"))
	m = updated.(Model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	updated, _ = m.Update(keyRunes("f"))
	m = updated.(Model)

	if m.mode != ModeBrowse {
		t.Fatalf("mode = %v after finish, want ModeBrowse", m.mode)
	}
	for id, want := range map[string]types.Status{
		"a": types.StatusReplied,
		"b": types.StatusReplied,
		"c": types.StatusPending,
	} {
		r, ok := m.requests.Get(id)
		if !ok {
			t.Fatalf("record %s missing", id)
		}
		if r.Status != want {
			t.Fatalf("record %s status = %q, want %q", id, r.Status, want)
		}
	}
	if m.selection.Len() != 0 {
		t.Fatalf("selection = %d after commit, want 0", m.selection.Len())
	}
}

func TestReplyCancelKeepsStatuses(t *testing.T) {
	m := newTestModel(t, record("a", "Alpha"))

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = updated.(Model)
	updated, _ = m.Update(keyRunes("n"))
	m = updated.(Model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)

	r, _ := m.requests.Get("a")
	if r.Status != types.StatusPending {
		t.Fatalf("status = %q after cancel, want pending", r.Status)
	}
	if !m.selection.Has("a") {
		t.Fatal("cancel should keep the selection")
	}
}

func TestImportBlocksSecondParseWhilePending(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.Update(keyRunes("i"))
	m = updated.(Model)
	m.paste.SetValue("完美日记 <pr@yatsen.com> 新品推广")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m = updated.(Model)
	if !m.busy {
		t.Fatal("first parse should raise the busy flag")
	}
	if cmd == nil {
		t.Fatal("first parse should issue a command")
	}

	updated, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m = updated.(Model)
	if cmd != nil {
		t.Fatal("second parse issued while one is pending")
	}

	// Leaving and re-entering the paste view does not reopen the gate.
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)
	updated, _ = m.Update(keyRunes("i"))
	m = updated.(Model)
	updated, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m = updated.(Model)
	if cmd != nil {
		t.Fatal("busy gate must hold across mode changes")
	}

	// Delivery of the result clears the gate.
	updated, _ = m.Update(parsedMsg{record("x", "NewBrand")})
	m = updated.(Model)
	if m.busy {
		t.Fatal("busy flag should clear once the result arrives")
	}
}

func TestTemplateResetRequiresConfirmation(t *testing.T) {
	m := newTestModel(t)

	edited := m.templates.All()
	edited[0].Subject = "edited subject"
	if err := m.templates.Save(edited); err != nil {
		t.Fatalf("save: %v", err)
	}

	updated, _ := m.Update(keyRunes("t"))
	m = updated.(Model)
	updated, _ = m.Update(keyRunes("r"))
	m = updated.(Model)
	if m.mode != ModeConfirmReset {
		t.Fatalf("mode = %v, want ModeConfirmReset", m.mode)
	}

	// Declining keeps the stored edit.
	updated, _ = m.Update(keyRunes("n"))
	m = updated.(Model)
	if m.mode != ModeTemplates {
		t.Fatalf("mode = %v, want ModeTemplates", m.mode)
	}
	if got := m.templates.All()[0].Subject; got != "edited subject" {
		t.Fatalf("declined reset changed the template: %q", got)
	}

	// Confirming restores the built-in content.
	updated, _ = m.Update(keyRunes("r"))
	m = updated.(Model)
	updated, _ = m.Update(keyRunes("y"))
	m = updated.(Model)
	if got := m.templates.All()[0].Subject; got == "edited subject" {
		t.Fatal("confirmed reset left the edit in place")
	}
}

func TestParsedMsgImportsRecords(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.Update(parsedMsg{record("x", "NewBrand")})
	m = updated.(Model)

	if m.requests.Len() != 1 {
		t.Fatalf("store has %d records, want 1", m.requests.Len())
	}
	if len(m.visible) != 1 {
		t.Fatalf("visible = %d, want 1", len(m.visible))
	}
}

func TestDeleteConfirmFlow(t *testing.T) {
	m := newTestModel(t, record("a", "Alpha"), record("b", "Beta"))

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = updated.(Model)
	updated, _ = m.Update(keyRunes("d"))
	m = updated.(Model)
	if m.mode != ModeConfirmDelete {
		t.Fatalf("mode = %v, want ModeConfirmDelete", m.mode)
	}

	updated, _ = m.Update(keyRunes("y"))
	m = updated.(Model)
	if m.requests.Len() != 1 {
		t.Fatalf("store has %d records, want 1", m.requests.Len())
	}
	if _, ok := m.requests.Get("a"); ok {
		t.Fatal("selected record should be gone")
	}
}
