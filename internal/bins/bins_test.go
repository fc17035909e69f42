// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package bins

import "testing"

func TestAppendAndSum(t *testing.T) {
	t.Parallel()

	tbl := NewTable[string](2)

	p0 := tbl.Append(0, "a", 3)
	p1 := tbl.Append(0, "b", 4)

	if p0 != 0 || p1 != 1 {
		t.Fatalf("positions = %d, %d, want 0, 1", p0, p1)
	}
	if got := tbl.Sum(0); got != 7 {
		t.Errorf("Sum(0) = %v, want 7", got)
	}
	if got := tbl.Size(0); got != 2 {
		t.Errorf("Size(0) = %d, want 2", got)
	}
}

func TestOverwrite(t *testing.T) {
	t.Parallel()

	tbl := NewTable[string](1)
	tbl.Append(0, "a", 10)

	tbl.Overwrite(0, 0, 25)

	if _, w := tbl.At(0, 0); w != 25 {
		t.Errorf("weight after overwrite = %v, want 25", w)
	}
	if got := tbl.Sum(0); got != 25 {
		t.Errorf("Sum(0) after overwrite = %v, want 25", got)
	}
}

func TestSwapRemoveLastEntryReportsNoMove(t *testing.T) {
	t.Parallel()

	tbl := NewTable[string](1)
	tbl.Append(0, "a", 1)
	tbl.Append(0, "b", 2)

	moved, ok := tbl.SwapRemove(0, 1)
	if ok {
		t.Errorf("removing the last entry must not report a move, got %v", moved)
	}
	if got := tbl.Size(0); got != 1 {
		t.Errorf("Size(0) after removal = %d, want 1", got)
	}
	if got := tbl.Sum(0); got != 1 {
		t.Errorf("Sum(0) after removal = %v, want 1", got)
	}
}

func TestSwapRemoveMiddleEntryReportsMovedElement(t *testing.T) {
	t.Parallel()

	tbl := NewTable[string](1)
	tbl.Append(0, "a", 1)
	tbl.Append(0, "b", 2)
	tbl.Append(0, "c", 3)

	moved, ok := tbl.SwapRemove(0, 0)
	if !ok || moved != "c" {
		t.Fatalf("SwapRemove(0,0) moved=%q ok=%v, want \"c\", true", moved, ok)
	}

	// "c" is now at position 0, "b" is still at position 1.
	if e, w := tbl.At(0, 0); e != "c" || w != 3 {
		t.Errorf("At(0,0) = %q, %v, want c, 3", e, w)
	}
	if got := tbl.Sum(0); got != 5 {
		t.Errorf("Sum(0) after removal = %v, want 5", got)
	}
}

func TestRecomputeSumFixesDrift(t *testing.T) {
	t.Parallel()

	tbl := NewTable[int](1)
	tbl.Append(0, 1, 0.1)
	tbl.Append(0, 2, 0.2)

	tbl.sums[0] = 999 // simulate drift

	if got := tbl.RecomputeSum(0); got < 0.29999 || got > 0.30001 {
		t.Errorf("RecomputeSum(0) = %v, want ~0.3", got)
	}
}

func TestOccupiedTracksSwapRemoveEmptying(t *testing.T) {
	t.Parallel()

	tbl := NewTable[string](3)
	if tbl.Occupied(0) {
		t.Error("freshly built table should have no occupied groups")
	}

	tbl.Append(0, "a", 1)
	tbl.Append(2, "c", 3)

	if !tbl.Occupied(0) || !tbl.Occupied(2) {
		t.Error("groups with entries should be occupied")
	}
	if tbl.Occupied(1) {
		t.Error("empty group 1 should not be occupied")
	}

	tbl.SwapRemove(0, 0)
	if tbl.Occupied(0) {
		t.Error("group should be unoccupied after its only entry is removed")
	}

	if idx, ok := tbl.NextOccupied(0); !ok || idx != 2 {
		t.Errorf("NextOccupied(0) = %d, %v, want 2, true", idx, ok)
	}
	if _, ok := tbl.NextOccupied(3); ok {
		t.Error("NextOccupied past the last group should report false")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	t.Parallel()

	tbl := NewTable[string](1)
	tbl.Append(0, "a", 1)

	clone := tbl.Clone()
	clone.Append(0, "b", 2)

	if tbl.Size(0) == clone.Size(0) {
		t.Errorf("mutating clone affected original bin")
	}
}
