package store

import (
	"strings"
	"testing"

	"collabflow/internal/types"
)

func TestTemplateStoreSeedsDefaults(t *testing.T) {
	local := openTestLocal(t)
	s, err := NewTemplateStore(local)
	if err != nil {
		t.Fatalf("NewTemplateStore: %v", err)
	}

	all := s.All()
	if len(all) != 2 {
		t.Fatalf("expected exactly two templates, got %d", len(all))
	}
	if s.Get(types.TemplateYes).ID != types.TemplateYes {
		t.Fatal("missing yes template")
	}
	if s.Get(types.TemplateNo).ID != types.TemplateNo {
		t.Fatal("missing no template")
	}
}

func TestTemplateSaveAndResetOne(t *testing.T) {
	local := openTestLocal(t)
	s, _ := NewTemplateStore(local)

	edited := s.All()
	for i := range edited {
		if edited[i].ID == types.TemplateYes {
			edited[i].Subject = "custom subject for {brandName}"
		}
	}
	if err := s.Save(edited); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got := s.Get(types.TemplateYes).Subject; got != "custom subject for {brandName}" {
		t.Fatalf("Save not applied: %q", got)
	}

	if err := s.ResetOne(types.TemplateYes); err != nil {
		t.Fatalf("ResetOne: %v", err)
	}
	if got := s.Get(types.TemplateYes); got.Subject != types.DefaultTemplate(types.TemplateYes).Subject {
		t.Fatalf("ResetOne did not restore default: %q", got.Subject)
	}
	// The other template keeps its content.
	if got := s.Get(types.TemplateNo); got.Subject != types.DefaultTemplate(types.TemplateNo).Subject {
		t.Fatalf("ResetOne touched the other template: %q", got.Subject)
	}
}

func TestTemplateResetAll(t *testing.T) {
	local := openTestLocal(t)
	s, _ := NewTemplateStore(local)

	edited := s.All()
	for i := range edited {
		edited[i].Body = "edited"
	}
	s.Save(edited)

	if err := s.ResetAll(); err != nil {
		t.Fatalf("ResetAll: %v", err)
	}
	for _, tmpl := range s.All() {
		if tmpl.Body == "edited" {
			t.Fatalf("template %s still edited after ResetAll", tmpl.ID)
		}
	}
}

func TestTemplatesSurviveRestart(t *testing.T) {
	local := openTestLocal(t)
	s, _ := NewTemplateStore(local)

	edited := s.All()
	edited[0].Subject = "persisted edit"
	s.Save(edited)

	s2, err := NewTemplateStore(local)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if s2.All()[0].Subject != "persisted edit" {
		t.Fatal("edit lost across reload")
	}
}

func TestRenderSubstitutesEveryOccurrence(t *testing.T) {
	tmpl := types.ReplyTemplate{
		ID:      types.TemplateYes,
		Subject: "Re: {brandName} x {brandName}",
		Body:    "Dear {brandName},\nthanks!",
	}

	subject, body := Render(tmpl, "Glossier")
	if subject != "Re: Glossier x Glossier" {
		t.Fatalf("subject = %q", subject)
	}
	if !strings.HasPrefix(body, "Dear Glossier,") {
		t.Fatalf("body = %q", body)
	}
}

func TestRenderDoesNotMutateStoredTemplate(t *testing.T) {
	tmpl := types.ReplyTemplate{Subject: "Hi {brandName}", Body: "{brandName}"}

	// A brand name containing quote characters and placeholder-like syntax is
	// treated as literal text; repeated renders with different brands start
	// from the same stored template.
	s1, _ := Render(tmpl, `O'Brien & Co"`)
	if s1 != `Hi O'Brien & Co"` {
		t.Fatalf("first render = %q", s1)
	}
	s2, _ := Render(tmpl, "{brandName}")
	if s2 != "Hi {brandName}" {
		t.Fatalf("placeholder-looking brand re-expanded: %q", s2)
	}
	s3, _ := Render(tmpl, "Nike")
	if s3 != "Hi Nike" {
		t.Fatalf("template mutated by earlier renders: %q", s3)
	}
	if tmpl.Subject != "Hi {brandName}" {
		t.Fatalf("stored subject mutated: %q", tmpl.Subject)
	}
}
