// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package samplableset

import (
	crand "crypto/rand"
	"encoding/binary"
	"iter"
	"math/rand/v2"

	"github.com/Syuu614/SamplableSet/internal/binindex"
	"github.com/Syuu614/SamplableSet/internal/bins"
	"github.com/Syuu614/SamplableSet/internal/ptree"
	"github.com/Syuu614/SamplableSet/internal/record"
)

// Set is a dynamic weighted sampling set over element type E. The zero
// value is not usable; build one with [New] or [NewFunc].
//
// A Set must not be copied by value; use [Set.Copy].
type Set[E any] struct {
	_ noCopy

	idx  binindex.Index
	bins *bins.Table[E]
	tree *ptree.Tree
	elem elementStore[E]

	rng   *rand.Rand
	stats rejectionStats
}

// New builds an empty Set for a naturally comparable element type, with
// weights restricted to [wMin, wMax]. wMin must be > 0 and wMax >= wMin.
func New[E comparable](wMin, wMax float64, opts ...Option[E]) (*Set[E], error) {
	return newSet[E](wMin, wMax, newComparableStore[E](), opts)
}

// NewFunc builds an empty Set for an element type that isn't comparable in
// Go's sense (or for which a different identity notion is wanted), using
// an injected hash and equality function pair as the element's identity
// capability.
func NewFunc[E any](wMin, wMax float64, hash func(E) uint64, equal func(a, b E) bool, opts ...Option[E]) (*Set[E], error) {
	return newSet[E](wMin, wMax, newHashedStore[E](hash, equal), opts)
}

func newSet[E any](wMin, wMax float64, store elementStore[E], opts []Option[E]) (*Set[E], error) {
	if !(wMin > 0) || wMax < wMin {
		return nil, errInvalidRange(wMin, wMax)
	}

	idx := binindex.New(wMin, wMax)
	c := buildConfig(opts)

	s := &Set[E]{
		idx:  idx,
		bins: bins.NewTable[E](idx.Groups()),
		tree: ptree.New(idx.Groups()),
		elem: store,
		rng:  newRNG(c),
	}

	for _, it := range c.initial {
		if err := s.Insert(it.Elem, it.Weight); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func newRNG[E any](c *config[E]) *rand.Rand {
	if c.haveSeed {
		return rand.New(rand.NewPCG(c.seed, c.seed))
	}
	return rand.New(rand.NewPCG(osSeed(), osSeed()))
}

// osSeed draws a 64-bit seed from an OS entropy source, the same way the
// stdlib recommends seeding math/rand/v2 generators that must not be
// predictable.
func osSeed() uint64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		// crypto/rand.Read failing means the OS entropy source is broken;
		// there's nothing better to fall back to that's still "random".
		panic("samplableset: could not read OS entropy: " + err.Error())
	}
	return binary.LittleEndian.Uint64(b[:])
}

// Insert adds e with weight w. It returns [ErrDuplicateElement] if e is
// already present, or [ErrOutOfRangeWeight] if w is outside [wMin, wMax].
func (s *Set[E]) Insert(e E, w float64) error {
	if !s.idx.InRange(w) {
		return errOutOfRange(w, s.idx.WMin(), s.idx.WMax())
	}
	if _, ok := s.elem.get(e); ok {
		return errDuplicate(e)
	}

	g := s.idx.GroupOf(w)
	p := s.bins.Append(g, e, w)
	s.elem.put(e, record.Record{Group: g, Position: p, Weight: w})
	s.tree.UpdateLeaf(g, w)

	return nil
}

// SetWeight changes e's weight to wNew. It returns [ErrMissingElement] if e
// is not present, or [ErrOutOfRangeWeight] if wNew is outside
// [wMin, wMax].
func (s *Set[E]) SetWeight(e E, wNew float64) error {
	if !s.idx.InRange(wNew) {
		return errOutOfRange(wNew, s.idx.WMin(), s.idx.WMax())
	}

	rec, ok := s.elem.get(e)
	if !ok {
		return errMissing(e)
	}

	gNew := s.idx.GroupOf(wNew)
	if gNew == rec.Group {
		s.bins.Overwrite(rec.Group, rec.Position, wNew)
		s.tree.UpdateLeaf(rec.Group, wNew-rec.Weight)
		s.elem.put(e, record.Record{Group: rec.Group, Position: rec.Position, Weight: wNew})
		return nil
	}

	s.removeFromBin(e, rec)

	p := s.bins.Append(gNew, e, wNew)
	s.elem.put(e, record.Record{Group: gNew, Position: p, Weight: wNew})
	s.tree.UpdateLeaf(gNew, wNew)

	return nil
}

// removeFromBin swap-removes e from its current bin, fixing up the
// position record of whatever element got moved into its slot, and updates
// the tree leaf for the vacated group. It does not touch e's own record in
// the element table — callers either overwrite it right after (SetWeight)
// or remove it entirely (Erase).
func (s *Set[E]) removeFromBin(e E, rec record.Record) {
	moved, movedOK := s.bins.SwapRemove(rec.Group, rec.Position)
	if movedOK {
		s.elem.repositionTo(moved, rec.Position)
	}
	s.tree.UpdateLeaf(rec.Group, -rec.Weight)
}

// GetWeight returns e's current weight, and whether e is present.
func (s *Set[E]) GetWeight(e E) (float64, bool) {
	rec, ok := s.elem.get(e)
	if !ok {
		return 0, false
	}
	return rec.Weight, true
}

// Contains reports whether e is present.
func (s *Set[E]) Contains(e E) bool {
	_, ok := s.elem.get(e)
	return ok
}

// Erase removes e. It returns [ErrMissingElement] if e is not present.
func (s *Set[E]) Erase(e E) error {
	rec, ok := s.elem.get(e)
	if !ok {
		return errMissing(e)
	}

	s.removeFromBin(e, rec)
	s.elem.remove(e)

	return nil
}

// Size returns the number of elements currently in the set.
func (s *Set[E]) Size() int {
	return s.elem.size()
}

// TotalWeight returns the sum of every element's weight.
func (s *Set[E]) TotalWeight() float64 {
	return s.tree.Total()
}

// Clear removes every element, leaving the configured weight range intact.
func (s *Set[E]) Clear() {
	s.elem.clear()
	s.bins = bins.NewTable[E](s.idx.Groups())
	s.tree = ptree.New(s.idx.Groups())
}

// Rebalance recomputes every bin's cached sum and the whole propagation
// tree exactly from the live elements, eliminating floating-point drift
// accumulated over many incremental updates.
func (s *Set[E]) Rebalance() {
	sums := make([]float64, s.idx.Groups())
	for g := range sums {
		sums[g] = s.bins.RecomputeSum(g)
	}
	s.tree.Rebuild(sums)
}

// Sample draws one element with probability proportional to its weight.
// It returns ok=false if the set is empty.
func (s *Set[E]) Sample() (e E, w float64, ok bool) {
	return s.sampleOne()
}

func (s *Set[E]) sampleOne() (e E, w float64, ok bool) {
	if s.elem.size() == 0 || s.tree.Total() == 0 {
		return e, 0, false
	}

	for {
		r := s.rng.Float64() * s.tree.Total()
		g := s.tree.Descend(r)

		if !s.bins.Occupied(g) {
			// A padding leaf or a transiently emptied group; retry.
			continue
		}
		n := s.bins.Size(g)
		wStar := s.idx.UpperBoundOf(g)

		// Rejections retry within group g rather than descending again, so
		// an element's chance is S_g/W * w/S_g = w/W, independent of how
		// far its group's weights sit below the ceiling wStar.
		for {
			p := s.rng.IntN(n)
			cand, wc := s.bins.At(g, p)
			u := s.rng.Float64()

			if u*wStar <= wc {
				s.stats.recordAccept()
				return cand, wc, true
			}
			s.stats.recordReject()
		}
	}
}

// All returns an iterator over every (element, weight) pair currently in
// the set. Order is unspecified. The set must not be mutated while the
// iterator is live.
func (s *Set[E]) All() iter.Seq2[E, float64] {
	return s.elem.all
}

// SampleWithoutReplacement returns a lazy sequence of up to n distinct
// (element, weight) samples, each drawn proportional to its remaining
// weight among elements not yet produced by this sequence.
//
// Internally each draw temporarily erases the sampled element so it can't
// be drawn again, then reinserts every temporarily erased element with its
// original weight once the sequence stops being pulled — whether that's
// because it ran to completion, the consumer broke out of a range loop
// early, or a panic unwound through it. range-over-func's defer-runs-on-
// every-exit-path guarantee gives this scoped release with no finalizer
// needed.
//
// If n exceeds Size(), the remaining items in the sequence report ok=false
// rather than ending the sequence early.
func (s *Set[E]) SampleWithoutReplacement(n int) iter.Seq2[Sampled[E], bool] {
	return func(yield func(Sampled[E], bool) bool) {
		type removed struct {
			e E
			w float64
		}
		var taken []removed

		defer func() {
			for _, r := range taken {
				// Original weights were valid when first inserted, so
				// reinsertion cannot fail on range or duplication.
				_ = s.Insert(r.e, r.w)
			}
		}()

		for i := 0; i < n; i++ {
			e, w, ok := s.sampleOne()
			if !ok {
				if !yield(Sampled[E]{}, false) {
					return
				}
				continue
			}

			_ = s.Erase(e)
			taken = append(taken, removed{e: e, w: w})

			if !yield(Sampled[E]{Elem: e, Weight: w}, true) {
				return
			}
		}
	}
}

// Sampled is one result from [Set.SampleWithoutReplacement].
type Sampled[E any] struct {
	Elem   E
	Weight float64
}

// Copy returns a deep, independent copy of s. If seed is omitted, the
// copy's RNG is reseeded from a draw of s's own RNG; callers making many
// copies and relying on independent sample streams must pass an explicit
// seed, since the birthday-collision risk of reseeding from an unseeded
// parent grows with fan-out.
func (s *Set[E]) Copy(seed ...uint64) *Set[E] {
	var rng *rand.Rand
	if len(seed) > 0 {
		rng = rand.New(rand.NewPCG(seed[0], seed[0]))
	} else {
		rng = rand.New(rand.NewPCG(s.rng.Uint64(), s.rng.Uint64()))
	}

	return &Set[E]{
		idx:  s.idx,
		bins: s.bins.Clone(),
		tree: s.tree.Clone(),
		elem: s.elem.clone(),
		rng:  rng,
	}
}
