// Package majority recovers a secret from shares of which some may be
// corrupted. Every k-subset of the share set is interpolated and the most
// frequent result is accepted; shares that never take part in an agreeing
// subset are reported as corrupted.
//
// The number of subsets is C(n, k), so the cost grows exponentially with
// the number of shares. Callers are expected to bound n, or to set
// WithMaxCombinations.
package majority

import (
	"math"
	"math/big"
	"runtime"
	"sort"

	"github.com/izouxv/goShareVote/field"
	"github.com/izouxv/goShareVote/shamir"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrTooManyCombinations is returned when C(n, k) exceeds the configured cap.
	ErrTooManyCombinations = errors.New("too many combinations")
	// ErrNilShareSet is returned when no share set is given.
	ErrNilShareSet = errors.New("share set is nil")
	// ErrUnknownField is returned when the reconstruction field is not registered.
	ErrUnknownField = errors.New("unknown field")
)

// Outcome is the interpolation result of one combination.
type Outcome struct {
	// Ordinal is the position of the combination in enumeration order.
	Ordinal   int
	Positions []int
	Indices   []*big.Int
	Secret    *big.Int
	// Err is set when the combination could not be interpolated; Secret is
	// nil then and the outcome is not counted.
	Err    error
	Agrees bool
}

// Result is the outcome of a reconstruction run.
type Result struct {
	Accepted *big.Int
	// Count is the number of combinations that produced Accepted.
	Count int
	// Total is C(n, k).
	Total  int
	Failed int
	// Majority is false when no secret was produced by more than one
	// combination. Accepted is then the first successful combination's secret.
	Majority bool
	Outcomes []Outcome
	// Agreeing lists the share indices of every combination producing Accepted.
	Agreeing [][]*big.Int
	// Corrupted holds, in ascending order, the indices of shares that take
	// part in no agreeing combination. It is empty, never nil, when all
	// shares are trusted.
	Corrupted []*big.Int
}

type options struct {
	workers         int
	maxCombinations int64
}

// Option configures Resolve.
type Option func(*options)

// WithWorkers sets the number of goroutines interpolating combinations.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = 1
		}
		o.workers = n
	}
}

// WithMaxCombinations rejects share sets with more than max combinations
// before any work is done. Zero disables the check.
func WithMaxCombinations(max int64) Option {
	return func(o *options) {
		o.maxCombinations = max
	}
}

type job struct {
	ordinal   int
	positions []int
}

// Reconstruct resolves set over the default field, the 521-bit Mersenne
// prime.
func Reconstruct(set *shamir.ShareSet, opts ...Option) (*Result, error) {
	return ReconstructIn(field.DefaultName, set, opts...)
}

// ReconstructIn resolves set over the prime registered as name.
func ReconstructIn(name string, set *shamir.ShareSet, opts ...Option) (*Result, error) {
	prime := field.Get(name)
	if prime == nil {
		return nil, errors.Wrapf(ErrUnknownField, "%q", name)
	}
	return Resolve(set, prime, opts...)
}

// Resolve interpolates every k-subset of set modulo prime and returns the
// majority secret together with the corrupted share indices. The result
// does not depend on the number of workers.
func Resolve(set *shamir.ShareSet, prime *big.Int, opts ...Option) (*Result, error) {
	if set == nil {
		return nil, ErrNilShareSet
	}
	if prime == nil || prime.Cmp(big.NewInt(1)) <= 0 {
		return nil, field.ErrInvalidModulus
	}
	// sets built by hand bypass NewShareSet
	if _, err := shamir.NewShareSet(set.Total, set.Threshold, set.Shares); err != nil {
		return nil, err
	}

	o := &options{workers: runtime.NumCPU()}
	for _, opt := range opts {
		opt(o)
	}

	total := shamir.CountCombinations(set.Total, set.Threshold)
	if o.maxCombinations > 0 && total.Cmp(big.NewInt(o.maxCombinations)) > 0 {
		return nil, errors.Wrapf(ErrTooManyCombinations, "C(%d, %d) = %s exceeds %d",
			set.Total, set.Threshold, total, o.maxCombinations)
	}
	if !total.IsInt64() || total.Int64() > math.MaxInt32 {
		return nil, errors.Wrapf(ErrTooManyCombinations, "C(%d, %d) = %s", set.Total, set.Threshold, total)
	}

	outcomes := make([]Outcome, total.Int64())
	tally := NewTally()
	jobs := make(chan job, o.workers)

	var g errgroup.Group
	g.Go(func() error {
		defer close(jobs)
		ordinal := 0
		for positions := range shamir.Indices(set.Total, set.Threshold) {
			jobs <- job{ordinal: ordinal, positions: positions}
			ordinal++
		}
		return nil
	})
	for w := 0; w < o.workers; w++ {
		g.Go(func() error {
			local := NewTally()
			for j := range jobs {
				out := evaluate(set, prime, j)
				// every ordinal is written by exactly one worker
				outcomes[j.ordinal] = out
				if out.Err == nil {
					local.Add(j.ordinal, out.Secret)
				}
			}
			tally.Merge(local)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{
		Total:     len(outcomes),
		Outcomes:  outcomes,
		Agreeing:  [][]*big.Int{},
		Corrupted: []*big.Int{},
	}
	var firstErr error
	for i := range outcomes {
		if outcomes[i].Err != nil {
			res.Failed++
			if firstErr == nil {
				firstErr = outcomes[i].Err
			}
		}
	}

	accepted, count, ok := tally.Winner()
	if !ok {
		return nil, errors.Wrapf(firstErr, "all %d combinations failed", res.Total)
	}
	res.Accepted = accepted
	res.Count = count
	res.Majority = count > 1

	trusted := make(map[string]struct{}, set.Total)
	for i := range outcomes {
		out := &outcomes[i]
		if out.Err != nil || out.Secret.Cmp(accepted) != 0 {
			continue
		}
		out.Agrees = true
		res.Agreeing = append(res.Agreeing, out.Indices)
		for _, x := range out.Indices {
			trusted[x.String()] = struct{}{}
		}
	}
	for _, s := range set.Shares {
		if _, ok := trusted[s.X.String()]; !ok {
			res.Corrupted = append(res.Corrupted, s.X)
		}
	}
	sort.Slice(res.Corrupted, func(i, j int) bool {
		return res.Corrupted[i].Cmp(res.Corrupted[j]) < 0
	})

	if res.Failed > 0 {
		log.Warn().
			Int("failed", res.Failed).
			Int("combinations", res.Total).
			Err(firstErr).
			Msg("Some combinations could not be interpolated")
	}
	log.Debug().
		Int("n", set.Total).
		Int("k", set.Threshold).
		Int("combinations", res.Total).
		Int("distinct_secrets", tally.Len()).
		Int("accepted_count", res.Count).
		Int("corrupted", len(res.Corrupted)).
		Msg("Resolved majority secret")

	return res, nil
}

func evaluate(set *shamir.ShareSet, prime *big.Int, j job) Outcome {
	out := Outcome{
		Ordinal:   j.ordinal,
		Positions: j.positions,
		Indices:   set.Indices(j.positions),
	}
	secret, err := shamir.InterpolateAtZero(set.Pick(j.positions), prime)
	if err != nil {
		out.Err = errors.Wrapf(err, "combination %d", j.ordinal)
		return out
	}
	out.Secret = secret
	return out
}
