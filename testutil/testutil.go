package testutil

import (
	"math"
	"math/rand"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// Bool returns a pseudo-random boolean.
func (r *RNG) Bool() bool {
	return r.Intn(2) == 1
}

// RunLength returns a Zipf-distributed length in [0, maxLen). Short runs
// dominate, with an occasional long one, which exercises both small shifts
// and large relocations.
func (r *RNG) RunLength(maxLen int) int {
	if maxLen <= 1 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.zipfLocked(maxLen, 1.2)
}

func (r *RNG) zipfLocked(n int, s float64) int {
	// Inverse transform sampling over the normalized harmonic weights.
	var norm float64
	for k := 1; k <= n; k++ {
		norm += 1 / math.Pow(float64(k), s)
	}
	u := r.rand.Float64() * norm
	var acc float64
	for k := 1; k <= n; k++ {
		acc += 1 / math.Pow(float64(k), s)
		if u <= acc {
			return k - 1
		}
	}
	return n - 1
}

// Kind is the type of a scripted container operation.
type Kind uint8

const (
	KindPush Kind = iota
	KindInsert
	KindRemove
	KindTruncate
)

func (k Kind) String() string {
	switch k {
	case KindPush:
		return "push"
	case KindInsert:
		return "insert"
	case KindRemove:
		return "remove"
	case KindTruncate:
		return "truncate"
	default:
		return "unknown"
	}
}

// Op is one scripted container operation.
type Op struct {
	Kind Kind
	// Index is the insert or remove position, or the truncate length.
	Index int
	// Value seeds the element pushed or inserted.
	Value uint64
}

// Script returns n operations that are valid, in order, for a container
// that starts empty. Pushes and inserts outweigh removals so the container
// grows over the script.
func (r *RNG) Script(n int) []Op {
	ops := make([]Op, 0, n)
	length := 0
	for len(ops) < n {
		op := Op{Value: r.Uint64()}
		switch w := r.Intn(100); {
		case w < 40 || length == 0:
			op.Kind = KindPush
			length++
		case w < 70:
			op.Kind = KindInsert
			op.Index = r.Intn(length + 1)
			length++
		case w < 95:
			op.Kind = KindRemove
			op.Index = r.Intn(length)
			length--
		default:
			op.Kind = KindTruncate
			op.Index = length - r.Intn(min(length, 4)+1)
			length = op.Index
		}
		ops = append(ops, op)
	}
	return ops
}
