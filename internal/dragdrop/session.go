// Package dragdrop implements the board's drag session state machine.
// A Session is owned by a single connection and is not safe for
// concurrent use.
package dragdrop

import (
	"github.com/google/uuid"
)

// Session states
type State string

const (
	StateIdle           State = "idle"
	StateDraggingColumn State = "draggingColumn"
	StateDraggingTicket State = "draggingTicket"
)

// Drag payload types. The tag keeps column drags and ticket drags from
// reacting to each other's drop zones.
type DragType string

const (
	DragTypeTicket DragType = "ticket"
	DragTypeColumn DragType = "column"
)

// Payload is the tagged result of a committed drop
type Payload struct {
	Type             DragType
	TicketID         uuid.UUID
	ColumnID         uuid.UUID
	SourceCategoryID uuid.UUID
	TargetCategoryID uuid.UUID
	// Position is the insertion index within the target category for
	// ticket drops, or the target column index for column drops
	Position int
}

// Session tracks one in-flight drag operation
type Session struct {
	state             State
	draggedTicketID   uuid.UUID
	draggedColumnID   uuid.UUID
	sourceCategoryID  uuid.UUID
	dropTargetID      uuid.UUID
	dropPosition      int
	highlightedColumn uuid.UUID
}

// NewSession returns an idle session
func NewSession() *Session {
	s := &Session{}
	s.reset()
	return s
}

// State returns the current machine state
func (s *Session) State() State {
	return s.state
}

// HighlightedColumn returns the column currently highlighted as a drop
// target, or uuid.Nil
func (s *Session) HighlightedColumn() uuid.UUID {
	return s.highlightedColumn
}

// DropTarget returns the pending drop target and position. ok is false
// while no target has been computed.
func (s *Session) DropTarget() (uuid.UUID, int, bool) {
	if s.dropPosition < 0 || s.dropTargetID == uuid.Nil {
		return uuid.Nil, -1, false
	}
	return s.dropTargetID, s.dropPosition, true
}

// StartTicketDrag transitions idle -> draggingTicket. Starting a drag
// while another is active implicitly cancels the first.
func (s *Session) StartTicketDrag(ticketID, sourceCategoryID uuid.UUID) {
	s.reset()
	s.state = StateDraggingTicket
	s.draggedTicketID = ticketID
	s.sourceCategoryID = sourceCategoryID
}

// StartColumnDrag transitions idle -> draggingColumn
func (s *Session) StartColumnDrag(columnID uuid.UUID) {
	s.reset()
	s.state = StateDraggingColumn
	s.draggedColumnID = columnID
}

// TicketDragOver handles the pointer moving over a column's ticket list.
// rects are the rendered ticket rows of that column in display order,
// pointerY is relative to the list's top. Ignored unless a ticket drag
// is active.
func (s *Session) TicketDragOver(categoryID uuid.UUID, pointerY float64, rects []TicketRect) {
	if s.state != StateDraggingTicket {
		return
	}
	s.dropTargetID = categoryID
	s.dropPosition = DropIndex(pointerY, rects, s.draggedTicketID)
	s.highlightedColumn = categoryID
}

// ColumnDragOver handles the pointer moving over a column while dragging
// another column. Column drops are whole-unit, so only the hovered column
// matters. Ignored while a ticket drag is active.
func (s *Session) ColumnDragOver(categoryID uuid.UUID) {
	if s.state != StateDraggingColumn {
		return
	}
	s.dropTargetID = categoryID
	s.dropPosition = 0
	s.highlightedColumn = categoryID
}

// Enter records that the pointer entered a column's drop zone
func (s *Session) Enter(categoryID uuid.UUID) {
	if s.state == StateIdle {
		return
	}
	s.highlightedColumn = categoryID
}

// Leave records that the pointer left a column's drop zone. A move onto
// a nested child element still counts as inside, so toDescendant leaves
// the highlight in place.
func (s *Session) Leave(categoryID uuid.UUID, toDescendant bool) {
	if toDescendant {
		return
	}
	if s.highlightedColumn == categoryID {
		s.highlightedColumn = uuid.Nil
	}
}

// Drop commits the drag. It returns the tagged payload and resets the
// session to idle. ok is false when no valid target was pending.
func (s *Session) Drop() (Payload, bool) {
	defer s.reset()

	if s.dropTargetID == uuid.Nil || s.dropPosition < 0 {
		return Payload{}, false
	}

	switch s.state {
	case StateDraggingTicket:
		return Payload{
			Type:             DragTypeTicket,
			TicketID:         s.draggedTicketID,
			SourceCategoryID: s.sourceCategoryID,
			TargetCategoryID: s.dropTargetID,
			Position:         s.dropPosition,
		}, true
	case StateDraggingColumn:
		return Payload{
			Type:             DragTypeColumn,
			ColumnID:         s.draggedColumnID,
			TargetCategoryID: s.dropTargetID,
		}, true
	}
	return Payload{}, false
}

// Cancel aborts the drag without producing a payload
func (s *Session) Cancel() {
	s.reset()
}

func (s *Session) reset() {
	s.state = StateIdle
	s.draggedTicketID = uuid.Nil
	s.draggedColumnID = uuid.Nil
	s.sourceCategoryID = uuid.Nil
	s.dropTargetID = uuid.Nil
	s.dropPosition = -1
	s.highlightedColumn = uuid.Nil
}
