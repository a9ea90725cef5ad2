package dragdrop

import (
	"github.com/google/uuid"
)

// Rect is the vertical extent of a rendered ticket row, relative to the
// top of its column's ticket list
type Rect struct {
	Top    float64
	Height float64
}

// Midpoint returns the vertical center of the rect
func (r Rect) Midpoint() float64 {
	return r.Top + r.Height/2
}

// TicketRect pairs a rendered ticket with its geometry
type TicketRect struct {
	TicketID uuid.UUID
	Rect     Rect
}

// InsertionIndex computes where a dragged ticket would be inserted: the
// index of the first rect whose midpoint lies below pointerY, or
// len(rects) when the pointer is below every midpoint (append to end).
func InsertionIndex(pointerY float64, rects []Rect) int {
	for i, r := range rects {
		if pointerY < r.Midpoint() {
			return i
		}
	}
	return len(rects)
}

// DropIndex computes the insertion index for a drop, skipping the dragged
// ticket's own rect so a same-column drop is expressed in the coordinates
// of the list without it.
func DropIndex(pointerY float64, rects []TicketRect, draggedID uuid.UUID) int {
	others := make([]Rect, 0, len(rects))
	for _, tr := range rects {
		if tr.TicketID == draggedID {
			continue
		}
		others = append(others, tr.Rect)
	}
	return InsertionIndex(pointerY, others)
}
