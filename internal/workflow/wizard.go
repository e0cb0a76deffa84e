// Package workflow drives the reply review session: step through the
// selected inquiries one at a time, render the chosen template for
// each, hand off to the mail client, and finally commit which ones
// were actually sent.
package workflow

import (
	"errors"

	"collabflow/internal/logging"
	"collabflow/internal/store"
	"collabflow/internal/types"
)

// ErrEmptySelection is returned when a review session is started with
// no records selected.
var ErrEmptySelection = errors.New("workflow: no records selected")

// Preview is the rendered reply for the record currently in review.
type Preview struct {
	Request types.CollaborationRequest
	Subject string
	Body    string
	Mailto  string
	Sent    bool
}

// Wizard walks a fixed list of records with one reply template. The
// target list is snapshotted at Start: selection or store changes made
// while the session is open do not affect it. Nothing touches the
// store until Done.
type Wizard struct {
	targets  []types.CollaborationRequest
	template types.ReplyTemplate
	index    int
	sent     map[string]bool
	done     bool
}

// Start opens a review session over the given records.
func Start(targets []types.CollaborationRequest, template types.ReplyTemplate) (*Wizard, error) {
	if len(targets) == 0 {
		return nil, ErrEmptySelection
	}

	snapshot := make([]types.CollaborationRequest, len(targets))
	copy(snapshot, targets)

	logging.Workflow("[Wizard] Start: targets=%d template=%s", len(snapshot), template.ID)
	return &Wizard{
		targets:  snapshot,
		template: template,
		sent:     make(map[string]bool),
	}, nil
}

// Current renders the reply for the record at the cursor.
func (w *Wizard) Current() Preview {
	r := w.targets[w.index]
	subject, body := store.Render(w.template, r.BrandName)
	return Preview{
		Request: r,
		Subject: subject,
		Body:    body,
		Mailto:  MailtoLink(r.Email, subject, body),
		Sent:    w.sent[r.ID],
	}
}

// Index returns the zero-based cursor position.
func (w *Wizard) Index() int { return w.index }

// Len returns the number of records in the session.
func (w *Wizard) Len() int { return len(w.targets) }

// SentCount returns how many records have been marked sent so far.
func (w *Wizard) SentCount() int { return len(w.sent) }

// Sent reports whether the record at position i was marked sent.
func (w *Wizard) Sent(i int) bool {
	if i < 0 || i >= len(w.targets) {
		return false
	}
	return w.sent[w.targets[i].ID]
}

// SentIDs returns the ids marked sent, in target order.
func (w *Wizard) SentIDs() []string {
	ids := make([]string, 0, len(w.sent))
	for _, r := range w.targets {
		if w.sent[r.ID] {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

// Next advances the cursor. A no-op on the last record.
func (w *Wizard) Next() {
	if w.index < len(w.targets)-1 {
		w.index++
	}
}

// Prev moves the cursor back. A no-op on the first record.
func (w *Wizard) Prev() {
	if w.index > 0 {
		w.index--
	}
}

// AtFirst reports whether the cursor is on the first record.
func (w *Wizard) AtFirst() bool { return w.index == 0 }

// AtLast reports whether the cursor is on the last record.
func (w *Wizard) AtLast() bool { return w.index == len(w.targets)-1 }

// MarkSent flags the current record as sent and returns the mailto
// link to open. Marking the same record twice is harmless.
func (w *Wizard) MarkSent() string {
	r := w.targets[w.index]
	w.sent[r.ID] = true
	p := w.Current()
	logging.Workflow("[Wizard] MarkSent: id=%s brand=%s", r.ID, r.BrandName)
	return p.Mailto
}

// Done commits the session: only records marked sent transition to
// replied, the rest keep their status. The wizard is finished after
// this and must not be reused.
func (w *Wizard) Done(requests *store.RequestStore) error {
	if w.done {
		return nil
	}
	w.done = true

	ids := w.SentIDs()
	logging.Workflow("[Wizard] Done: marking %d of %d replied", len(ids), len(w.targets))
	if len(ids) == 0 {
		return nil
	}
	return requests.MarkReplied(ids)
}

// Cancel abandons the session without touching the store.
func (w *Wizard) Cancel() {
	w.done = true
	logging.Workflow("[Wizard] Cancel: discarded session with %d marked", len(w.sent))
}
