// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Command samplebench builds a weighted sampling set, draws from it, and
// reports how closely the empirical sampling frequencies track the
// configured weights — a visual companion to the package's chi-squared
// test, drawing 2,000,000 samples where that test draws 500,000.
package main

import (
	"log"
	"math/rand/v2"

	"github.com/Syuu614/SamplableSet"
)

func main() {
	log.SetFlags(log.Lmicroseconds)

	const (
		n     = 2_000
		draws = 2_000_000
	)

	prng := rand.New(rand.NewPCG(7, 7))

	items := make(map[int]float64, n)
	for i := range n {
		items[i] = 1 + prng.Float64()*1023 // weights in [1, 1024)
	}

	set, err := samplableset.New[int](1, 1024,
		samplableset.WithSeed[int](42),
		samplableset.WithInitial(items),
	)
	if err != nil {
		log.Fatalf("building set: %v", err)
	}

	log.Printf("set built: size=%d total=%v", set.Size(), set.TotalWeight())

	counts := make(map[int]int, n)
	for range draws {
		e, _, ok := set.Sample()
		if !ok {
			log.Fatal("Sample on a non-empty set returned ok=false")
		}
		counts[e]++
	}

	accepted, rejected := set.Stats()
	log.Printf("draws=%d accepted=%d rejected=%d rejection-rate=%.4f",
		draws, accepted, rejected, float64(rejected)/float64(accepted+rejected))

	var worst float64
	total := set.TotalWeight()
	for e, w := range set.All() {
		want := w / total
		got := float64(counts[e]) / float64(draws)
		if diff := abs(want - got); diff > worst {
			worst = diff
		}
	}
	log.Printf("largest empirical-vs-expected frequency gap: %.5f", worst)
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
