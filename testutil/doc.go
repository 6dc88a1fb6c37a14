// Package testutil provides testing utilities for slicemap.
//
// This package is intended for use in tests, benchmarks and the
// slicemapbench load generator only. It provides a seeded, thread-safe RNG
// and helpers for generating slice batches and random workloads.
//
// # Random Workloads
//
//	rng := testutil.NewRNG(seed)
//	batches := rng.Batches(100, 16)        // 100 slices, lengths in [0, 16]
//	lens := rng.ZipfLengths(100, 64, 1.5)  // skewed lengths
//	ops := rng.Ops(1000, 0.3, 0.2)         // 30% removes, 20% gets
package testutil
