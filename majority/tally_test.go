package majority

import (
	"math/big"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTallyWinner(t *testing.T) {
	a, b := big.NewInt(10), big.NewInt(20)

	cases := []struct {
		name    string
		secrets []*big.Int
		want    *big.Int
		count   int
	}{
		{"single", []*big.Int{a}, a, 1},
		{"clear majority", []*big.Int{b, a, a, b, a}, a, 3},
		{"all distinct picks first", []*big.Int{b, a}, b, 1},
		{"tie goes to first to reach the count", []*big.Int{a, b, b, a}, b, 2},
		{"tie reached earlier by first seen", []*big.Int{a, b, a, b}, a, 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tally := NewTally()
			for i, s := range c.secrets {
				tally.Add(i, s)
			}
			secret, count, ok := tally.Winner()
			require.True(t, ok)
			assert.Equal(t, 0, c.want.Cmp(secret))
			assert.Equal(t, c.count, count)
		})
	}
}

func TestTallyEmpty(t *testing.T) {
	_, count, ok := NewTally().Winner()
	assert.False(t, ok)
	assert.Zero(t, count)
}

func TestTallyMerge(t *testing.T) {
	a, b := big.NewInt(1), big.NewInt(2)
	// sequence a b b a split across two workers
	w1, w2 := NewTally(), NewTally()
	w1.Add(3, a)
	w1.Add(1, b)
	w2.Add(0, a)
	w2.Add(2, b)

	total := NewTally()
	total.Merge(w1)
	total.Merge(w2)
	assert.Equal(t, 2, total.Len())

	secret, count, ok := total.Winner()
	require.True(t, ok)
	assert.Equal(t, 0, b.Cmp(secret))
	assert.Equal(t, 2, count)
}

func TestTallyConcurrentMerge(t *testing.T) {
	total := NewTally()
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			local := NewTally()
			for i := 0; i < 100; i++ {
				local.Add(w*100+i, big.NewInt(int64(i%3)))
			}
			total.Merge(local)
		}(w)
	}
	wg.Wait()

	secret, count, ok := total.Winner()
	require.True(t, ok)
	assert.Equal(t, "0", secret.String())
	assert.Equal(t, 8*34, count)
}
