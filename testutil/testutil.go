package testutil

import (
	"math"
	"math/rand"
	"slices"
	"sync"
)

// RNG struct encapsulates a seeded random number generator.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
	}
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Batches generates num slices with lengths uniform in [0, maxLen].
// Values are drawn sequentially from a counter so every item is unique,
// which makes misplaced items easy to spot.
// Uses a single backing array for efficiency.
func (r *RNG) Batches(num, maxLen int) [][]int {
	r.mu.Lock()
	defer r.mu.Unlock()

	lens := make([]int, num)
	for i := range lens {
		lens[i] = r.rand.Intn(maxLen + 1)
	}
	return batchesFromLengths(lens)
}

// ZipfBatches is like Batches, but lengths follow ZipfLengths: most slices
// are short and a few reach maxLen.
func (r *RNG) ZipfBatches(num, maxLen int, s float64) [][]int {
	return batchesFromLengths(r.ZipfLengths(num, maxLen, s))
}

// ZipfLengths generates n lengths in [0, maxLen] where length k has
// probability proportional to 1/(k+1)^s. s=1.0 gives standard Zipf,
// s=1.5 a heavier skew towards short slices.
func (r *RNG) ZipfLengths(n, maxLen int, s float64) []int {
	cdf := zipfCDF(maxLen+1, s)

	r.mu.Lock()
	defer r.mu.Unlock()

	lens := make([]int, n)
	for i := range lens {
		k, _ := slices.BinarySearch(cdf, r.rand.Float64()*cdf[len(cdf)-1])
		lens[i] = min(k, maxLen)
	}
	return lens
}

// zipfCDF returns the cumulative Zipf weights of ranks 1..n.
func zipfCDF(n int, s float64) []float64 {
	cdf := make([]float64, max(n, 1))
	sum := 0.0
	for k := range cdf {
		sum += 1 / math.Pow(float64(k+1), s)
		cdf[k] = sum
	}
	return cdf
}

// batchesFromLengths carves sequential values into slices of the given
// lengths over one backing array. Every slice is capped at its length.
func batchesFromLengths(lens []int) [][]int {
	total := 0
	for _, n := range lens {
		total += n
	}

	data := make([]int, total)
	for i := range data {
		data[i] = i
	}

	batches := make([][]int, len(lens))
	off := 0
	for i, n := range lens {
		batches[i] = data[off : off+n : off+n]
		off += n
	}
	return batches
}

// Op is one step of a random workload.
type Op int

const (
	OpAdd Op = iota
	OpRemove
	OpGet
)

// Ops generates n workload steps. removeRate and getRate are the
// probabilities of OpRemove and OpGet; the rest are OpAdd.
func (r *RNG) Ops(n int, removeRate, getRate float64) []Op {
	r.mu.Lock()
	defer r.mu.Unlock()

	ops := make([]Op, n)
	for i := range ops {
		switch u := r.rand.Float64(); {
		case u < removeRate:
			ops[i] = OpRemove
		case u < removeRate+getRate:
			ops[i] = OpGet
		default:
			ops[i] = OpAdd
		}
	}
	return ops
}
