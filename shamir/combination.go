package shamir

import (
	"iter"
	"math/big"
)

// CountCombinations returns C(n, k), the number of k-subsets of n items, or
// 0 when k is outside [1, n]. The count grows exponentially with n; callers
// reconstructing from large share sets should check it before enumerating.
func CountCombinations(n, k int) *big.Int {
	if k <= 0 || k > n {
		return new(big.Int)
	}
	return new(big.Int).Binomial(int64(n), int64(k))
}

// Indices yields every k-subset of the positions 0..n-1 in lexicographic
// order. The sequence is lazy and can be ranged over again from the start.
// Every yielded slice is owned by the caller.
func Indices(n, k int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		if k <= 0 || k > n {
			return
		}
		path := make([]int, 0, k)

		var extend func(start int) bool
		extend = func(start int) bool {
			if len(path) == k {
				return yield(append([]int(nil), path...))
			}
			// leave room for the positions still to be chosen
			for i := start; i <= n-(k-len(path)); i++ {
				path = append(path, i)
				if !extend(i + 1) {
					return false
				}
				path = path[:len(path)-1]
			}
			return true
		}
		extend(0)
	}
}

// Combinations yields every k-element selection of items, keeping the
// source order inside each selection.
func Combinations[T any](items []T, k int) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		for positions := range Indices(len(items), k) {
			combo := make([]T, len(positions))
			for i, p := range positions {
				combo[i] = items[p]
			}
			if !yield(combo) {
				return
			}
		}
	}
}
