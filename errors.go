// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package samplableset

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Set's public operations. Callers should
// compare with [errors.Is], since every returned error wraps one of these
// along with the offending element or weight.
var (
	// ErrOutOfRangeWeight is returned when a weight argument falls outside
	// [wMin, wMax].
	ErrOutOfRangeWeight = errors.New("samplableset: weight out of range")

	// ErrDuplicateElement is returned by Insert when the element is
	// already present.
	ErrDuplicateElement = errors.New("samplableset: element already present")

	// ErrMissingElement is returned by SetWeight and Erase when the
	// element is not present.
	ErrMissingElement = errors.New("samplableset: element not present")
)

func errInvalidRange(wMin, wMax float64) error {
	return fmt.Errorf("%w: invalid weight range [%v, %v]", ErrOutOfRangeWeight, wMin, wMax)
}

func errOutOfRange(w, wMin, wMax float64) error {
	return fmt.Errorf("%w: %v not in [%v, %v]", ErrOutOfRangeWeight, w, wMin, wMax)
}

func errDuplicate[E any](e E) error {
	return fmt.Errorf("%w: %v", ErrDuplicateElement, e)
}

func errMissing[E any](e E) error {
	return fmt.Errorf("%w: %v", ErrMissingElement, e)
}
