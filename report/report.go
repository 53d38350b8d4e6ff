// Package report renders reconstruction results for people and machines.
package report

import (
	"fmt"
	"io"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/google/uuid"
	"github.com/izouxv/goShareVote/majority"
	"github.com/izouxv/goShareVote/shamir"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Combination status markers.
const (
	StatusOK     = "OK"
	StatusWrong  = "WRONG"
	StatusFailed = "FAILED"
)

// Report is the presentation form of one reconstruction.
type Report struct {
	ID          string        `json:"id"`
	Source      string        `json:"source"`
	Fingerprint string        `json:"fingerprint"`
	CreatedAt   time.Time     `json:"created_at"`
	Total       int           `json:"n"`
	Threshold   int           `json:"k"`
	Secret      string        `json:"secret"`
	SecretHex   string        `json:"secret_hex"`
	Agreeing    int           `json:"agreeing"`
	Majority    bool          `json:"majority"`
	Failed      int           `json:"failed"`
	Combos      []Combination `json:"combinations"`
	Corrupted   []string      `json:"corrupted"`
}

// Combination is one evaluated k-subset.
type Combination struct {
	Indices []string `json:"indices"`
	Secret  string   `json:"secret,omitempty"`
	Status  string   `json:"status"`
	Error   string   `json:"error,omitempty"`
}

// New builds the report of res, computed from set read from source.
func New(source string, set *shamir.ShareSet, res *majority.Result) (*Report, error) {
	fp, err := set.Fingerprint()
	if err != nil {
		return nil, errors.Wrap(err, "fingerprint share set")
	}

	r := &Report{
		ID:          uuid.New().String(),
		Source:      source,
		Fingerprint: fp,
		CreatedAt:   time.Now().UTC(),
		Total:       set.Total,
		Threshold:   set.Threshold,
		Secret:      res.Accepted.String(),
		SecretHex:   hexutil.EncodeBig(res.Accepted),
		Agreeing:    res.Count,
		Majority:    res.Majority,
		Failed:      res.Failed,
		Combos:      make([]Combination, 0, len(res.Outcomes)),
		Corrupted:   decimals(res.Corrupted),
	}
	for _, out := range res.Outcomes {
		c := Combination{Indices: decimals(out.Indices)}
		switch {
		case out.Err != nil:
			c.Status = StatusFailed
			c.Error = out.Err.Error()
		case out.Agrees:
			c.Status = StatusOK
			c.Secret = out.Secret.String()
		default:
			c.Status = StatusWrong
			c.Secret = out.Secret.String()
		}
		r.Combos = append(r.Combos, c)
	}
	return r, nil
}

// WriteText prints the report in the console layout.
func (r *Report) WriteText(w io.Writer) error {
	tw := &textWriter{w: w}
	tw.printf("\nFile: %s\n", r.Source)
	tw.printf("Expected Secret (Most Frequent): %s\n", r.Secret)
	if !r.Majority {
		tw.printf("Warning: no secret was produced by more than one combination\n")
	}

	tw.printf("\nAll Secret Calculations:\n")
	for _, c := range r.Combos {
		indices := strings.Join(c.Indices, ", ")
		if c.Status == StatusFailed {
			tw.printf("%s Combo %s -> Error: %s\n", c.Status, indices, c.Error)
			continue
		}
		tw.printf("%s Combo %s -> Secret: %s\n", c.Status, indices, c.Secret)
	}

	wrong := "None"
	if len(r.Corrupted) > 0 {
		wrong = strings.Join(r.Corrupted, ", ")
	}
	tw.printf("\nWrong Shares Detected (should be ignored): %s\n", wrong)
	return tw.err
}

// WriteJSON prints the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal report")
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// WriteSummary prints the final secret of every report.
func WriteSummary(w io.Writer, reports []*Report) error {
	tw := &textWriter{w: w}
	tw.printf("\nFinal Secrets\n")
	for _, r := range reports {
		tw.printf("%s -> Secret: %s\n", r.Source, r.Secret)
	}
	return tw.err
}

func decimals(xs []*big.Int) []string {
	out := make([]string, len(xs))
	for i, x := range xs {
		out[i] = x.String()
	}
	return out
}

// textWriter keeps the first write error.
type textWriter struct {
	w   io.Writer
	err error
}

func (t *textWriter) printf(format string, args ...interface{}) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, args...)
}
