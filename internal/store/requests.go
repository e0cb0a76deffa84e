package store

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"collabflow/internal/logging"
	"collabflow/internal/types"
)

// RequestStore holds the ordered collection of collaboration requests.
// Every mutation persists the full collection before returning, so the
// in-memory slice and the requests slot never diverge.
type RequestStore struct {
	local   *Local
	mu      sync.RWMutex
	records []types.CollaborationRequest
}

// NewRequestStore loads the requests slot. A missing slot means an empty
// collection, not an error.
func NewRequestStore(local *Local) (*RequestStore, error) {
	s := &RequestStore{local: local}

	raw, ok, err := local.loadSlot(slotRequests)
	if err != nil {
		return nil, err
	}
	if ok {
		if err := json.Unmarshal([]byte(raw), &s.records); err != nil {
			return nil, fmt.Errorf("corrupt requests slot: %w", err)
		}
	}
	logging.Store("Loaded %d collaboration requests", len(s.records))
	return s, nil
}

// All returns a copy of the collection in order.
func (s *RequestStore) All() []types.CollaborationRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.CollaborationRequest, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of records.
func (s *RequestStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Get returns the record with the given id.
func (s *RequestStore) Get(id string) (types.CollaborationRequest, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.records {
		if r.ID == id {
			return r, true
		}
	}
	return types.CollaborationRequest{}, false
}

// Import prepends newRecords to the front of the collection, preserving the
// batch's own order. No de-duplication: the same brand may legitimately
// inquire twice. Existing records keep their ids, statuses and order.
func (s *RequestStore) Import(newRecords []types.CollaborationRequest) error {
	if len(newRecords) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := make([]types.CollaborationRequest, 0, len(newRecords)+len(s.records))
	merged = append(merged, newRecords...)
	merged = append(merged, s.records...)
	s.records = merged

	logging.Store("Imported %d records, collection now %d", len(newRecords), len(s.records))
	return s.persistLocked()
}

// MarkReplied sets status=replied for every record whose id is in ids.
// Records not listed are untouched. Idempotent: repeating the call with the
// same ids changes nothing further.
func (s *RequestStore) MarkReplied(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	changed := 0
	for i := range s.records {
		if want[s.records[i].ID] && s.records[i].Status != types.StatusReplied {
			s.records[i].Status = types.StatusReplied
			changed++
		}
	}
	logging.Store("MarkReplied: %d of %d ids transitioned", changed, len(ids))
	return s.persistLocked()
}

// Delete removes every record whose id is in ids. The caller is responsible
// for confirming first; deletion is irreversible.
func (s *RequestStore) Delete(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.records[:0]
	for _, r := range s.records {
		if !drop[r.ID] {
			kept = append(kept, r)
		}
	}
	removed := len(s.records) - len(kept)
	s.records = kept

	logging.Store("Deleted %d records, collection now %d", removed, len(s.records))
	return s.persistLocked()
}

// Filter returns the records whose brand name or summary contains query,
// case-insensitively, preserving collection order. An empty query matches
// everything. Pure: the store is not modified.
func (s *RequestStore) Filter(query string) []types.CollaborationRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if query == "" {
		out := make([]types.CollaborationRequest, len(s.records))
		copy(out, s.records)
		return out
	}

	q := strings.ToLower(query)
	var out []types.CollaborationRequest
	for _, r := range s.records {
		if strings.Contains(strings.ToLower(r.BrandName), q) ||
			strings.Contains(strings.ToLower(r.Summary), q) {
			out = append(out, r)
		}
	}
	return out
}

// persistLocked writes the full collection to the requests slot.
// Callers must hold s.mu.
func (s *RequestStore) persistLocked() error {
	data, err := json.Marshal(s.records)
	if err != nil {
		return fmt.Errorf("failed to marshal requests: %w", err)
	}
	return s.local.saveSlot(slotRequests, string(data))
}
