// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package samplableset

import "sync/atomic"

// rejectionStats tracks how many draws the composition-and-rejection loop
// has accepted versus rejected, for tuning and for tests validating the
// rejection-rate bound.
//
// Plain atomic counters rather than a mutex-guarded struct: Set is already
// documented as not safe for concurrent mutation, but reading Stats() from a
// goroutine other than the one driving Sample() is harmless and common
// enough (a metrics exporter, say) to be worth not racing on.
type rejectionStats struct {
	accepted atomic.Int64
	rejected atomic.Int64
}

func (s *rejectionStats) recordAccept() {
	s.accepted.Add(1)
}

func (s *rejectionStats) recordReject() {
	s.rejected.Add(1)
}

// Stats reports the cumulative number of accepted samples and rejected
// draws made by Sample and SampleWithoutReplacement since construction (or
// the last ResetStats call).
//
// TODO: expose a rolling window instead of a lifetime counter if callers
// need to detect rejection-rate regressions introduced mid-run rather than
// just the long-run average.
func (s *Set[E]) Stats() (accepted, rejected int64) {
	return s.stats.accepted.Load(), s.stats.rejected.Load()
}

// ResetStats zeroes the counters Stats reports.
func (s *Set[E]) ResetStats() {
	s.stats.accepted.Store(0)
	s.stats.rejected.Store(0)
}
