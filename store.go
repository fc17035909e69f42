// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package samplableset

import (
	"github.com/Syuu614/SamplableSet/internal/htable"
	"github.com/Syuu614/SamplableSet/internal/record"
	"github.com/Syuu614/SamplableSet/internal/table"
)

// elementStore is the ElementTable capability Set needs: either backing
// implementation (package table's native-comparable map, or package
// htable's injected hash+equal map) satisfies it identically, so the
// sampler façade never needs to know which one it was built with.
type elementStore[E any] interface {
	get(e E) (record.Record, bool)
	put(e E, r record.Record)
	remove(e E) (record.Record, bool)
	repositionTo(e E, position int)
	size() int
	all(yield func(E, float64) bool)
	clear()
	clone() elementStore[E]
}

// comparableStore adapts package table's Table (E comparable, backed by a
// native Go map) to elementStore.
type comparableStore[E comparable] struct {
	t *table.Table[E]
}

func newComparableStore[E comparable]() *comparableStore[E] {
	return &comparableStore[E]{t: table.New[E]()}
}

func (s *comparableStore[E]) get(e E) (record.Record, bool)    { return s.t.Get(e) }
func (s *comparableStore[E]) put(e E, r record.Record)         { s.t.Put(e, r) }
func (s *comparableStore[E]) remove(e E) (record.Record, bool) { return s.t.Remove(e) }
func (s *comparableStore[E]) repositionTo(e E, position int)   { s.t.RepositionTo(e, position) }
func (s *comparableStore[E]) size() int                        { return s.t.Size() }
func (s *comparableStore[E]) all(yield func(E, float64) bool)  { s.t.All(yield) }
func (s *comparableStore[E]) clear()                           { s.t.Clear() }

func (s *comparableStore[E]) clone() elementStore[E] {
	return &comparableStore[E]{t: s.t.Clone()}
}

// hashedStore adapts package htable's Table (E any, backed by an injected
// hash/equal pair) to elementStore.
type hashedStore[E any] struct {
	t *htable.Table[E]
}

func newHashedStore[E any](hash func(E) uint64, equal func(a, b E) bool) *hashedStore[E] {
	return &hashedStore[E]{t: htable.New(hash, equal)}
}

func (s *hashedStore[E]) get(e E) (record.Record, bool)    { return s.t.Get(e) }
func (s *hashedStore[E]) put(e E, r record.Record)         { s.t.Put(e, r) }
func (s *hashedStore[E]) remove(e E) (record.Record, bool) { return s.t.Remove(e) }
func (s *hashedStore[E]) repositionTo(e E, position int)   { s.t.RepositionTo(e, position) }
func (s *hashedStore[E]) size() int                        { return s.t.Size() }
func (s *hashedStore[E]) all(yield func(E, float64) bool)  { s.t.All(yield) }
func (s *hashedStore[E]) clear()                           { s.t.Clear() }

func (s *hashedStore[E]) clone() elementStore[E] {
	return &hashedStore[E]{t: s.t.Clone()}
}
