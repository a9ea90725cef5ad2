package editor

import (
	"time"

	"github.com/google/uuid"
)

// Fields are the editable values of a ticket as seen by the editor
type Fields struct {
	Title       string
	Description string
	Priority    string
	ExpiryDate  *time.Time
	// CategoryID carries a pending column move not yet committed
	CategoryID *uuid.UUID
}

// Session tracks one open ticket editor: the persisted values it started
// from, the values currently on screen, and whether a stored draft was
// restored over them. It is pure state; persistence is the caller's job.
type Session struct {
	original Fields
	current  Fields
	draftID  *uuid.UUID
	restored bool
	applied  bool
}

// NewSession opens an editor over the ticket's persisted values
func NewSession(ticket Fields) *Session {
	return &Session{
		original: ticket,
		current:  ticket,
	}
}

// ApplyDraft restores a stored draft over the editor, but only when the
// draft is newer than the ticket's last save. Repeated calls are no-ops;
// a draft is restored at most once per session, so a stale second apply
// cannot clobber what the user typed since.
func (s *Session) ApplyDraft(draftID uuid.UUID, draft Fields, draftUpdatedAt, ticketUpdatedAt time.Time) bool {
	if s.applied {
		return false
	}
	s.applied = true

	id := draftID
	s.draftID = &id
	if !draftUpdatedAt.After(ticketUpdatedAt) {
		// The ticket was saved after the draft; the draft is stale
		return false
	}

	s.current = draft
	s.restored = true
	return true
}

// Edit replaces the on-screen values
func (s *Session) Edit(fields Fields) {
	s.current = fields
}

// Dirty reports whether the on-screen values differ from the ticket's
// persisted values. A restored draft that happens to match the ticket
// is not dirty.
func (s *Session) Dirty() bool {
	return !fieldsEqual(s.current, s.original)
}

// Current returns the on-screen values
func (s *Session) Current() Fields {
	return s.current
}

// Restored reports whether a draft was restored into this session
func (s *Session) Restored() bool {
	return s.restored
}

// DraftID returns the stored draft's identifier, if one was seen
func (s *Session) DraftID() *uuid.UUID {
	return s.draftID
}

// MarkSaved records the draft identifier handed back by a save, so the
// next save can address the same row directly
func (s *Session) MarkSaved(draftID uuid.UUID) {
	id := draftID
	s.draftID = &id
}

// CommitTicket rebases the session onto freshly persisted ticket values.
// The on-screen values are kept; dirtiness is recomputed against the
// new baseline.
func (s *Session) CommitTicket(ticket Fields) {
	s.original = ticket
}

func fieldsEqual(a, b Fields) bool {
	if a.Title != b.Title || a.Description != b.Description || a.Priority != b.Priority {
		return false
	}
	if !timePtrEqual(a.ExpiryDate, b.ExpiryDate) {
		return false
	}
	return uuidPtrEqual(a.CategoryID, b.CategoryID)
}

func timePtrEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func uuidPtrEqual(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
