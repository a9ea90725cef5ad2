package ordering

import (
	"testing"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// For any sequence of inserts, removes and moves, positions stay dense
// and contiguous (0..N-1 in order)
func TestProperty_PositionsStayContiguous(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("contiguity survives any op sequence", prop.ForAll(
		func(size int, ops []int) bool {
			items := make([]Item, size)
			for i := range items {
				items[i] = Item{ID: uuid.New(), Position: i}
			}
			for _, op := range ops {
				switch op % 4 {
				case 0:
					items = Insert(items, uuid.New(), op%7)
				case 1:
					items = Remove(items, op%7)
				case 2:
					items = MoveWithin(items, op%7, (op/2)%7)
				case 3:
					items = Normalize(items)
				}
				if !Contiguous(items) {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 10),
		gen.SliceOf(gen.IntRange(0, 100)),
	))

	properties.TestingRun(t)
}

// Moving an item onto itself changes nothing
func TestProperty_MoveWithinSameIndexIsIdentity(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("MoveWithin(i, i) is the identity", prop.ForAll(
		func(size, index int) bool {
			if size == 0 {
				return true
			}
			items := make([]Item, size)
			for i := range items {
				items[i] = Item{ID: uuid.New(), Position: i}
			}
			index = index % size
			moved := MoveWithin(items, index, index)
			if len(moved) != len(items) {
				return false
			}
			for i := range items {
				if moved[i].ID != items[i].ID || moved[i].Position != items[i].Position {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 12),
		gen.IntRange(0, 11),
	))

	properties.TestingRun(t)
}

// Moving from -> to and then back to -> from restores the original order
func TestProperty_MoveWithinRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("move then inverse move restores order", prop.ForAll(
		func(size, from, to int) bool {
			if size == 0 {
				return true
			}
			items := make([]Item, size)
			for i := range items {
				items[i] = Item{ID: uuid.New(), Position: i}
			}
			from = from % size
			to = to % size

			moved := MoveWithin(items, from, to)
			restored := MoveWithin(moved, to, from)

			for i := range items {
				if restored[i].ID != items[i].ID {
					return false
				}
			}
			return Contiguous(restored)
		},
		gen.IntRange(1, 12),
		gen.IntRange(0, 11),
		gen.IntRange(0, 11),
	))

	properties.TestingRun(t)
}

// Diff never reports an item whose position is unchanged
func TestProperty_DiffOnlyReportsChangedPositions(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("Diff is exactly the changed set", prop.ForAll(
		func(size, from, to int) bool {
			if size == 0 {
				return true
			}
			items := make([]Item, size)
			for i := range items {
				items[i] = Item{ID: uuid.New(), Position: i}
			}
			after := MoveWithin(items, from%size, to%size)
			changed := Diff(items, after)

			inChanged := make(map[uuid.UUID]bool, len(changed))
			for _, it := range changed {
				inChanged[it.ID] = true
			}
			before := make(map[uuid.UUID]int, len(items))
			for _, it := range items {
				before[it.ID] = it.Position
			}
			for _, it := range after {
				if (before[it.ID] != it.Position) != inChanged[it.ID] {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 12),
		gen.IntRange(0, 11),
		gen.IntRange(0, 11),
	))

	properties.TestingRun(t)
}
