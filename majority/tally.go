package majority

import (
	"math/big"
	"sort"
	"sync"
)

// Tally counts how many combinations produced each secret. It remembers the
// ordinal of every contributing combination so partial tallies built by
// different workers can be merged without losing the enumeration order.
// It is safe for concurrent use.
type Tally struct {
	// buckets is keyed by the decimal form of the secret.
	buckets map[string]*bucket
	mu      sync.Mutex
}

type bucket struct {
	secret   *big.Int
	ordinals []int
}

// NewTally creates an empty tally.
func NewTally() *Tally {
	return &Tally{buckets: make(map[string]*bucket)}
}

// Add records that the combination with the given ordinal produced secret.
func (t *Tally) Add(ordinal int, secret *big.Int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	key := secret.String()
	b, ok := t.buckets[key]
	if !ok {
		b = &bucket{secret: secret}
		t.buckets[key] = b
	}
	b.ordinals = append(b.ordinals, ordinal)
}

// Merge folds other into t. other must not be used concurrently.
func (t *Tally) Merge(other *Tally) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for key, ob := range other.buckets {
		b, ok := t.buckets[key]
		if !ok {
			t.buckets[key] = &bucket{secret: ob.secret, ordinals: append([]int(nil), ob.ordinals...)}
			continue
		}
		b.ordinals = append(b.ordinals, ob.ordinals...)
	}
}

// Len returns the number of distinct secrets seen.
func (t *Tally) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.buckets)
}

// Winner returns the most frequent secret and its count. When several
// secrets share the highest count, the one that reached that count at the
// lowest combination ordinal wins, which is what a single left-to-right
// scan keeping the first strictly-greater count would pick.
func (t *Tally) Winner() (secret *big.Int, count int, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	reachedAt := -1
	for _, b := range t.buckets {
		sort.Ints(b.ordinals)
		n := len(b.ordinals)
		switch {
		case n > count:
		case n == count && b.ordinals[n-1] < reachedAt:
		default:
			continue
		}
		secret, count, reachedAt = b.secret, n, b.ordinals[n-1]
	}
	return secret, count, secret != nil
}
