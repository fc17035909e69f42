// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package bins implements per-group bins: one contiguous sequence of
// (element, weight) pairs per group, each with a cached weight sum,
// supporting O(1) append and O(1) removal via swap-remove.
//
// Swap-remove overwrites the victim slot with the bin's last entry and
// truncates by one, which keeps the bin dense for O(1) uniform
// pick-by-index while avoiding an O(n) shift.
//
// Which groups currently hold at least one entry is tracked in a
// bits-and-blooms/bitset.BitSet alongside the bins themselves, so the
// sampler's retry loop can test group occupancy in O(1).
package bins

import "github.com/bits-and-blooms/bitset"

// Entry is one (element, weight) pair living in a bin.
type Entry[E any] struct {
	Elem   E
	Weight float64
}

// Table holds one contiguous bin per group, plus that group's cached
// weight sum S_g.
type Table[E any] struct {
	bins     [][]Entry[E]
	sums     []float64
	occupied *bitset.BitSet
}

// NewTable allocates per-group bins for the given number of groups.
func NewTable[E any](groups int) *Table[E] {
	return &Table[E]{
		bins:     make([][]Entry[E], groups),
		sums:     make([]float64, groups),
		occupied: bitset.New(uint(groups)),
	}
}

// Append pushes (e, w) onto group g's bin and returns its new position.
func (t *Table[E]) Append(g int, e E, w float64) int {
	t.bins[g] = append(t.bins[g], Entry[E]{Elem: e, Weight: w})
	t.sums[g] += w
	t.occupied.Set(uint(g))
	return len(t.bins[g]) - 1
}

// Occupied reports whether group g currently holds at least one entry,
// in O(1) via the group-presence bitset rather than a slice-length check.
func (t *Table[E]) Occupied(g int) bool {
	return t.occupied.Test(uint(g))
}

// NextOccupied returns the smallest occupied group index >= g, and false if
// none exists, finding it from the presence bitset rather than by checking
// each bin's length in between. The sampler itself only uses [Table.Occupied].
func (t *Table[E]) NextOccupied(g int) (int, bool) {
	idx, ok := t.occupied.NextSet(uint(g))
	return int(idx), ok
}

// Overwrite replaces the weight stored at (g, p) with wNew, adjusting the
// group's cached sum by the difference.
func (t *Table[E]) Overwrite(g, p int, wNew float64) {
	bin := t.bins[g]
	t.sums[g] += wNew - bin[p].Weight
	bin[p].Weight = wNew
}

// SwapRemove removes the entry at (g, p) by swapping in the bin's last
// entry and truncating. If a different entry was moved into position p, it
// reports that entry's element and true so the caller can patch that
// element's position record; otherwise it reports the zero value and
// false.
func (t *Table[E]) SwapRemove(g, p int) (moved E, movedOK bool) {
	bin := t.bins[g]
	last := len(bin) - 1

	removedWeight := bin[p].Weight
	if p != last {
		bin[p] = bin[last]
		moved = bin[p].Elem
		movedOK = true
	}

	var zero Entry[E]
	bin[last] = zero
	t.bins[g] = bin[:last]
	t.sums[g] -= removedWeight

	if len(t.bins[g]) == 0 {
		t.occupied.Clear(uint(g))
	}

	return moved, movedOK
}

// Sum returns the group's cached weight sum S_g.
func (t *Table[E]) Sum(g int) float64 {
	return t.sums[g]
}

// Size returns the number of entries in group g's bin.
func (t *Table[E]) Size(g int) int {
	return len(t.bins[g])
}

// At returns the (element, weight) pair at position p in group g's bin.
func (t *Table[E]) At(g, p int) (E, float64) {
	e := t.bins[g][p]
	return e.Elem, e.Weight
}

// RecomputeSum recalculates and stores S_g exactly from the live entries,
// eliminating incremental floating-point drift. Used by the sampler's
// Rebalance.
func (t *Table[E]) RecomputeSum(g int) float64 {
	var s float64
	for _, e := range t.bins[g] {
		s += e.Weight
	}
	t.sums[g] = s
	return s
}

// Groups returns the number of groups this table was built for.
func (t *Table[E]) Groups() int {
	return len(t.bins)
}

// Clone returns a deep, independent copy.
func (t *Table[E]) Clone() *Table[E] {
	c := &Table[E]{
		bins:     make([][]Entry[E], len(t.bins)),
		sums:     make([]float64, len(t.sums)),
		occupied: t.occupied.Clone(),
	}
	copy(c.sums, t.sums)
	for g, bin := range t.bins {
		c.bins[g] = append([]Entry[E](nil), bin...)
	}
	return c
}
