// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package binindex maps a weight to the logarithmic group it belongs to,
// and back.
//
// Groups partition the weight range [wMin, wMax] into consecutive
// power-of-two bands: group g covers [wMin*2^g, wMin*2^(g+1)). Mapping a
// weight to its group and a group to its weight interval are inverse
// functions of each other, carried out in the exponent of a float64 so
// band boundaries are bit-exact.
package binindex

import "math"

// Index derives the number of groups from a weight range and maps weights
// to group indices and back. The zero value is not usable; build one with
// [New].
type Index struct {
	wMin, wMax float64
	groups     int
}

// New builds an Index for the weight range [wMin, wMax]. It panics if the
// range is invalid; callers are expected to validate wMin > 0 and
// wMax >= wMin before constructing a sampler.
func New(wMin, wMax float64) Index {
	if !(wMin > 0) || wMax < wMin {
		panic("binindex: invalid weight range")
	}

	g := int(math.Floor(math.Log2(wMax/wMin))) + 1
	if g < 1 {
		g = 1
	}

	return Index{wMin: wMin, wMax: wMax, groups: g}
}

// Groups returns G, the number of weight groups.
func (x Index) Groups() int {
	return x.groups
}

// WMin returns the minimum weight the index was built for.
func (x Index) WMin() float64 {
	return x.wMin
}

// WMax returns the maximum weight the index was built for.
func (x Index) WMax() float64 {
	return x.wMax
}

// InRange reports whether w is within [wMin, wMax].
func (x Index) InRange(w float64) bool {
	return w >= x.wMin && w <= x.wMax
}

// GroupOf returns floor(log2(w/wMin)), clamped to [0, G-1].
//
// Uses [math.Frexp] rather than a log2-then-floor division: Frexp hands
// back the base-2 exponent of w/wMin directly from the float's bit layout,
// so there's no rounding hazard near a power-of-two boundary the way a
// floating Log2 can have (the GroupOf(wMax) == Groups()-1 boundary case in
// particular depends on this being exact).
//
// GroupOf panics if w is outside [wMin, wMax]; this is a contract
// violation, not a runtime condition callers recover from, and all exported
// paths into this function validate range first.
func (x Index) GroupOf(w float64) int {
	if !x.InRange(w) {
		panic("binindex: weight out of range")
	}

	ratio := w / x.wMin
	// Frexp(ratio) = frac, exp such that ratio == frac * 2^exp, frac in [0.5, 1).
	// floor(log2(ratio)) is exp-1, except when ratio is an exact power of two
	// (frac == 0.5 exactly), where it's still exp-1.
	_, exp := math.Frexp(ratio)

	g := exp - 1
	if g < 0 {
		g = 0
	}
	if g > x.groups-1 {
		g = x.groups - 1
	}

	return g
}

// UpperBoundOf returns the rejection ceiling w* = wMin * 2^(g+1) for group g.
func (x Index) UpperBoundOf(g int) float64 {
	return math.Ldexp(x.wMin, g+1)
}

// LowerBoundOf returns the lower edge wMin * 2^g of group g, exposed for
// tests validating that every element's weight stays within its group's
// half-open interval.
func (x Index) LowerBoundOf(g int) float64 {
	return math.Ldexp(x.wMin, g)
}
