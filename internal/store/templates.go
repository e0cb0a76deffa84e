package store

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"collabflow/internal/logging"
	"collabflow/internal/types"
)

// TemplateStore holds the two reply templates. The collection always
// contains exactly one "yes" and one "no" template; first run seeds the
// built-in defaults.
type TemplateStore struct {
	local     *Local
	mu        sync.RWMutex
	templates []types.ReplyTemplate
}

// NewTemplateStore loads the templates slot, seeding defaults when absent.
func NewTemplateStore(local *Local) (*TemplateStore, error) {
	s := &TemplateStore{local: local}

	raw, ok, err := local.loadSlot(slotTemplates)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.templates = types.DefaultTemplates()
		logging.Store("Templates slot absent, seeded built-in defaults")
		return s, nil
	}
	if err := json.Unmarshal([]byte(raw), &s.templates); err != nil {
		return nil, fmt.Errorf("corrupt templates slot: %w", err)
	}
	return s, nil
}

// All returns a copy of both templates.
func (s *TemplateStore) All() []types.ReplyTemplate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.ReplyTemplate, len(s.templates))
	copy(out, s.templates)
	return out
}

// Get returns the template with the given id, falling back to the built-in
// default so callers always have something renderable.
func (s *TemplateStore) Get(id types.TemplateID) types.ReplyTemplate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.templates {
		if t.ID == id {
			return t
		}
	}
	return types.DefaultTemplate(id)
}

// Save replaces the stored templates wholesale and persists immediately.
func (s *TemplateStore) Save(templates []types.ReplyTemplate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.templates = make([]types.ReplyTemplate, len(templates))
	copy(s.templates, templates)
	return s.persistLocked()
}

// ResetOne restores a single template to its built-in default content.
// The caller must have confirmed: stored edits are discarded.
func (s *TemplateStore) ResetOne(id types.TemplateID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	def := types.DefaultTemplate(id)
	for i := range s.templates {
		if s.templates[i].ID == id {
			s.templates[i] = def
		}
	}
	logging.Store("Template %s reset to default", id)
	return s.persistLocked()
}

// ResetAll restores both templates to their built-in defaults.
func (s *TemplateStore) ResetAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.templates = types.DefaultTemplates()
	logging.Store("All templates reset to defaults")
	return s.persistLocked()
}

func (s *TemplateStore) persistLocked() error {
	data, err := json.Marshal(s.templates)
	if err != nil {
		return fmt.Errorf("failed to marshal templates: %w", err)
	}
	return s.local.saveSlot(slotTemplates, string(data))
}

// Render substitutes every occurrence of the {brandName} placeholder in the
// template's subject and body. A single literal substitution pass: brand
// names that themselves look like placeholder syntax stay literal text, and
// the stored template is never mutated.
func Render(t types.ReplyTemplate, brandName string) (subject, body string) {
	subject = strings.ReplaceAll(t.Subject, "{brandName}", brandName)
	body = strings.ReplaceAll(t.Body, "{brandName}", brandName)
	return subject, body
}
