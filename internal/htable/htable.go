// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package htable implements ElementTable for element types that don't use
// Go's built-in comparable equality — instead, a 64-bit hash function and
// an equality function are injected at construction, rather than detected
// through runtime reflection.
//
// This is the uncommon path: most callers have a naturally comparable
// element type and use package table instead, which is a thin, faster
// wrapper over a native Go map. htable exists for element types that
// aren't comparable in Go's sense (they contain a slice or a function, or
// equality should be by some derived key rather than by value) but still
// need O(1) amortized lookup.
package htable

import "github.com/Syuu614/SamplableSet/internal/record"

// Record locates one element: which group's bin it lives in, at what
// position, and its current weight.
type Record = record.Record

type slot[E any] struct {
	elem E
	rec  Record
}

// Table maps element to Record using an injected hash and equality
// function, bucketed the way a textbook separate-chaining hash map is:
// hash(e) selects a bucket, equal(a, b) resolves collisions within it.
type Table[E any] struct {
	hash  func(E) uint64
	equal func(a, b E) bool

	buckets []([]slot[E])
	size    int
}

// New returns an empty Table using hash and equal as the injected identity
// capability for E.
func New[E any](hash func(E) uint64, equal func(a, b E) bool) *Table[E] {
	if hash == nil || equal == nil {
		panic("htable: hash and equal must both be non-nil")
	}
	return &Table[E]{
		hash:    hash,
		equal:   equal,
		buckets: make([]([]slot[E]), 16),
	}
}

func (t *Table[E]) bucketIndex(e E) int {
	return int(t.hash(e) % uint64(len(t.buckets)))
}

func (t *Table[E]) findInBucket(b int, e E) (int, bool) {
	for i, s := range t.buckets[b] {
		if t.equal(s.elem, e) {
			return i, true
		}
	}
	return 0, false
}

// Get returns the record for e, if present.
func (t *Table[E]) Get(e E) (Record, bool) {
	b := t.bucketIndex(e)
	if i, ok := t.findInBucket(b, e); ok {
		return t.buckets[b][i].rec, true
	}
	var zero Record
	return zero, false
}

// Put inserts or overwrites e's record.
func (t *Table[E]) Put(e E, r Record) {
	t.maybeGrow()

	b := t.bucketIndex(e)
	if i, ok := t.findInBucket(b, e); ok {
		t.buckets[b][i].rec = r
		return
	}
	t.buckets[b] = append(t.buckets[b], slot[E]{elem: e, rec: r})
	t.size++
}

// Remove deletes e's record, if present, and returns it.
func (t *Table[E]) Remove(e E) (Record, bool) {
	b := t.bucketIndex(e)
	i, ok := t.findInBucket(b, e)
	if !ok {
		var zero Record
		return zero, false
	}

	r := t.buckets[b][i].rec
	last := len(t.buckets[b]) - 1
	t.buckets[b][i] = t.buckets[b][last]
	t.buckets[b] = t.buckets[b][:last]
	t.size--

	return r, true
}

// RepositionTo patches e's stored position, leaving its group and weight
// unchanged.
func (t *Table[E]) RepositionTo(e E, position int) {
	b := t.bucketIndex(e)
	if i, ok := t.findInBucket(b, e); ok {
		t.buckets[b][i].rec.Position = position
	}
}

// Size returns the number of elements tracked.
func (t *Table[E]) Size() int {
	return t.size
}

// All iterates every (element, weight) pair. Order is unspecified;
// mutating the table during iteration is undefined.
func (t *Table[E]) All(yield func(e E, w float64) bool) {
	for _, bucket := range t.buckets {
		for _, s := range bucket {
			if !yield(s.elem, s.rec.Weight) {
				return
			}
		}
	}
}

// Clear empties the table without shrinking bucket capacity.
func (t *Table[E]) Clear() {
	for i := range t.buckets {
		t.buckets[i] = nil
	}
	t.size = 0
}

// Clone returns a deep, independent copy.
func (t *Table[E]) Clone() *Table[E] {
	c := &Table[E]{
		hash:    t.hash,
		equal:   t.equal,
		buckets: make([]([]slot[E]), len(t.buckets)),
		size:    t.size,
	}
	for i, bucket := range t.buckets {
		c.buckets[i] = append([]slot[E](nil), bucket...)
	}
	return c
}

// maybeGrow doubles the bucket count once the table gets dense enough that
// chains would start costing more than the O(1) this structure promises.
func (t *Table[E]) maybeGrow() {
	if t.size < len(t.buckets)*2 {
		return
	}

	old := t.buckets
	t.buckets = make([]([]slot[E]), len(old)*2)
	for _, bucket := range old {
		for _, s := range bucket {
			b := t.bucketIndex(s.elem)
			t.buckets[b] = append(t.buckets[b], s)
		}
	}
}
