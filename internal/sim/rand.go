package sim

import (
	"math/rand"
	"time"
)

// randSource is the subset of *rand.Rand the simulation draws from. Tests
// inject a seeded generator or a stub.
type randSource interface {
	Float64() float64
	Intn(n int) int
}

// NewRand returns a seeded generator. A zero seed uses the clock.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed)) // #nosec G404 -- gameplay randomness
}

// randRange returns a uniform value in [lo, hi).
func randRange(rng randSource, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}

// weighted is one entry of a weighted table.
type weighted[T any] struct {
	value  T
	weight int
}

// chooseWeighted picks an entry with probability proportional to its weight.
// An empty or zero-weight table returns the zero value.
func chooseWeighted[T any](rng randSource, table []weighted[T]) T {
	var zero T
	total := 0
	for _, e := range table {
		total += e.weight
	}
	if total <= 0 {
		return zero
	}
	r := rng.Intn(total)
	upto := 0
	for _, e := range table {
		if upto+e.weight > r {
			return e.value
		}
		upto += e.weight
	}
	return table[len(table)-1].value
}
