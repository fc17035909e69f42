// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package htable

import "testing"

// key is intentionally not comparable in the way a caller would want
// element identity to work (two distinct slices with the same contents
// should count as the same element), which is exactly the case htable
// exists for.
type key struct {
	parts []byte
}

func hashKey(k key) uint64 {
	var h uint64 = 1469598103934665603 // FNV offset basis
	for _, b := range k.parts {
		h ^= uint64(b)
		h *= 1099511628211
	}
	return h
}

func equalKey(a, b key) bool {
	if len(a.parts) != len(b.parts) {
		return false
	}
	for i := range a.parts {
		if a.parts[i] != b.parts[i] {
			return false
		}
	}
	return true
}

func TestPutGetWithDistinctEqualSlices(t *testing.T) {
	t.Parallel()

	tbl := New(hashKey, equalKey)

	a := key{parts: []byte{1, 2, 3}}
	b := key{parts: []byte{1, 2, 3}} // distinct slice, equal contents

	tbl.Put(a, Record{Weight: 7})

	r, ok := tbl.Get(b)
	if !ok || r.Weight != 7 {
		t.Fatalf("Get(b) = %+v, %v, want weight 7, true", r, ok)
	}
	if tbl.Size() != 1 {
		t.Errorf("Size() = %d, want 1", tbl.Size())
	}
}

func TestRemove(t *testing.T) {
	t.Parallel()

	tbl := New(hashKey, equalKey)
	tbl.Put(key{parts: []byte{9}}, Record{Weight: 1})

	_, ok := tbl.Remove(key{parts: []byte{9}})
	if !ok {
		t.Fatal("Remove did not find the element")
	}
	if tbl.Size() != 0 {
		t.Errorf("Size() after Remove = %d, want 0", tbl.Size())
	}
	if _, ok := tbl.Get(key{parts: []byte{9}}); ok {
		t.Error("Get found a removed element")
	}
}

func TestRepositionTo(t *testing.T) {
	t.Parallel()

	tbl := New(hashKey, equalKey)
	k := key{parts: []byte{1}}
	tbl.Put(k, Record{Group: 3, Position: 0, Weight: 2})

	tbl.RepositionTo(k, 5)

	r, _ := tbl.Get(k)
	if r.Position != 5 || r.Group != 3 || r.Weight != 2 {
		t.Errorf("after RepositionTo: %+v", r)
	}
}

func TestGrowthPreservesAllEntries(t *testing.T) {
	t.Parallel()

	tbl := New(hashKey, equalKey)

	const n = 500
	for i := range n {
		tbl.Put(key{parts: []byte{byte(i), byte(i >> 8)}}, Record{Weight: float64(i)})
	}

	if tbl.Size() != n {
		t.Fatalf("Size() = %d, want %d", tbl.Size(), n)
	}

	for i := range n {
		k := key{parts: []byte{byte(i), byte(i >> 8)}}
		r, ok := tbl.Get(k)
		if !ok || r.Weight != float64(i) {
			t.Fatalf("Get(%d) = %+v, %v", i, r, ok)
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	t.Parallel()

	tbl := New(hashKey, equalKey)
	tbl.Put(key{parts: []byte{1}}, Record{Weight: 1})

	clone := tbl.Clone()
	clone.Put(key{parts: []byte{2}}, Record{Weight: 2})

	if tbl.Size() == clone.Size() {
		t.Error("mutating clone affected original")
	}
}

func TestAllEarlyStop(t *testing.T) {
	t.Parallel()

	tbl := New(hashKey, equalKey)
	tbl.Put(key{parts: []byte{1}}, Record{Weight: 1})
	tbl.Put(key{parts: []byte{2}}, Record{Weight: 2})

	seen := 0
	for range tbl.All {
		seen++
		break
	}
	if seen != 1 {
		t.Errorf("early break visited %d elements, want 1", seen)
	}
}
