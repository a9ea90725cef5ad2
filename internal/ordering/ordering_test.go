package ordering

import (
	"testing"

	"github.com/google/uuid"
)

func makeItems(n int) []Item {
	items := make([]Item, n)
	for i := range items {
		items[i] = Item{ID: uuid.New(), Position: i}
	}
	return items
}

func idsOf(items []Item) []uuid.UUID {
	ids := make([]uuid.UUID, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}

func assertOrder(t *testing.T, got []Item, want []uuid.UUID) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].ID != want[i] {
			t.Errorf("index %d: expected ID %v, got %v", i, want[i], got[i].ID)
		}
	}
	if !Contiguous(got) {
		t.Errorf("positions are not contiguous: %v", got)
	}
}

func TestNormalize_SparsePositions(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	items := []Item{
		{ID: c, Position: 17},
		{ID: a, Position: 2},
		{ID: b, Position: 5},
	}

	got := Normalize(items)

	assertOrder(t, got, []uuid.UUID{a, b, c})
}

func TestInsert_ClampsIndex(t *testing.T) {
	items := makeItems(3)
	newID := uuid.New()

	tests := []struct {
		name      string
		index     int
		wantIndex int
	}{
		{name: "negative index clamps to front", index: -5, wantIndex: 0},
		{name: "middle index", index: 1, wantIndex: 1},
		{name: "index past end clamps to append", index: 99, wantIndex: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Insert(items, newID, tt.index)
			if len(got) != 4 {
				t.Fatalf("expected 4 items, got %d", len(got))
			}
			if IndexOf(got, newID) != tt.wantIndex {
				t.Errorf("expected new item at index %d, got %d", tt.wantIndex, IndexOf(got, newID))
			}
			if !Contiguous(got) {
				t.Errorf("positions are not contiguous after insert")
			}
		})
	}
}

func TestRemove_Reindexes(t *testing.T) {
	items := makeItems(4)
	ids := idsOf(items)

	got := Remove(items, 1)

	assertOrder(t, got, []uuid.UUID{ids[0], ids[2], ids[3]})
}

func TestRemove_OutOfRange(t *testing.T) {
	items := makeItems(3)

	got := Remove(items, 7)

	assertOrder(t, got, idsOf(items))
}

func TestMoveWithin_NoOp(t *testing.T) {
	items := makeItems(5)

	got := MoveWithin(items, 2, 2)

	assertOrder(t, got, idsOf(items))
}

func TestMoveWithin_Forward(t *testing.T) {
	items := makeItems(4)
	ids := idsOf(items)

	// The moved item occupies index 2 of the result despite the
	// one-slot shift its own removal causes
	got := MoveWithin(items, 0, 2)

	assertOrder(t, got, []uuid.UUID{ids[1], ids[2], ids[0], ids[3]})
}

func TestMoveWithin_Backward(t *testing.T) {
	items := makeItems(4)
	ids := idsOf(items)

	got := MoveWithin(items, 3, 1)

	assertOrder(t, got, []uuid.UUID{ids[0], ids[3], ids[1], ids[2]})
}

func TestMoveAcross_BothSidesReindexed(t *testing.T) {
	src := makeItems(3)
	dst := makeItems(2)
	srcIDs := idsOf(src)
	dstIDs := idsOf(dst)

	gotSrc, gotDst := MoveAcross(src, dst, 1, 1)

	assertOrder(t, gotSrc, []uuid.UUID{srcIDs[0], srcIDs[2]})
	assertOrder(t, gotDst, []uuid.UUID{dstIDs[0], srcIDs[1], dstIDs[1]})
}

func TestMoveAcross_AppendToEnd(t *testing.T) {
	src := makeItems(2)
	dst := makeItems(3)
	srcIDs := idsOf(src)

	// Target index equal to the destination length appends
	_, gotDst := MoveAcross(src, dst, 0, len(dst))

	if gotDst[len(gotDst)-1].ID != srcIDs[0] {
		t.Errorf("expected moved item at the end of destination")
	}
	if gotDst[len(gotDst)-1].Position != 3 {
		t.Errorf("expected position 3, got %d", gotDst[len(gotDst)-1].Position)
	}
}

func TestDiff_MinimalWriteSet(t *testing.T) {
	items := makeItems(4)
	ids := idsOf(items)

	// Removing index 1 shifts only the items after it
	after := Remove(items, 1)
	changed := Diff(items, after)

	if len(changed) != 2 {
		t.Fatalf("expected 2 changed items, got %d", len(changed))
	}
	for _, it := range changed {
		if it.ID != ids[2] && it.ID != ids[3] {
			t.Errorf("unexpected changed item %v", it.ID)
		}
	}
}

func TestDiff_NoChanges(t *testing.T) {
	items := makeItems(3)

	changed := Diff(items, MoveWithin(items, 1, 1))

	if len(changed) != 0 {
		t.Errorf("expected no changed items, got %d", len(changed))
	}
}
