// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package samplableset implements a dynamic weighted sampling set: a
// container of distinct elements, each carrying a positive real weight,
// supporting insertion, weight update, removal, membership/weight queries,
// and weighted random sampling (with or without replacement).
//
// Every operation runs in expected O(log log(wMax/wMin)) time, independent
// of how many elements the set holds. The algorithm is composition and
// rejection: elements are grouped into logarithmic weight bands, a
// complete binary tree of band sums is descended with a bias proportional
// to each band's total weight, an element is picked uniformly within the
// chosen band, and it is accepted with probability proportional to its own
// weight within that band — rejecting and retrying otherwise. Expected
// rejections per accepted sample are bounded by a small constant.
//
// Set is generic over element type. The common case is a naturally
// comparable element type, used through [New]; element types that aren't
// comparable in Go's sense (or for which a different identity notion is
// wanted) go through [NewFunc], which takes an injected hash and equality
// function pair instead of relying on built-in map semantics.
//
// Set is not safe for concurrent mutation, nor for concurrent sampling
// alongside mutation — every operation is synchronous, single-threaded,
// and bounded; there are no suspension points.
package samplableset
