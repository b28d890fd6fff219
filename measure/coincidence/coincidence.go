package coincidence

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-entropy/stats/entropy"
)

// Errors returned by coincidence functions.
var ErrTooShort = errors.New("coincidence: data must be at least 2 bytes")

// minScore keeps widths from being reported for data whose baseline index
// is zero.
const minScore = 1.0 / 256

// Score is the index of coincidence of data with itself shifted by Width.
type Score struct {
	Width int
	Index float64
}

// Result holds the outcome of a width scan.
type Result struct {
	// Baseline is the width-1 index: the probability that adjacent bytes
	// are equal.
	Baseline float64
	// Widths are the candidate key widths, in ascending order.
	Widths []Score
}

// Index returns the fraction of positions at which a and b hold the same
// byte. Only the first min(len(a), len(b)) positions are compared. Empty input
// yields 0.
func Index(a, b []byte) float64 {
	n := min(len(a), len(b))
	if n == 0 {
		return 0
	}

	var same int
	for i := range n {
		if a[i] == b[i] {
			same++
		}
	}

	return float64(same) / float64(n)
}

// Scores returns the index of coincidence of data against itself shifted by
// each width from 1 to maxWidth. The scan stops once the width reaches
// len(data).
func Scores(data []byte, maxWidth int) []Score {
	n := min(maxWidth, len(data)-1)
	if n < 1 {
		return nil
	}

	out := make([]Score, n)
	for i := range out {
		w := i + 1
		out[i] = Score{Width: w, Index: Index(data[:len(data)-w], data[w:])}
	}

	return out
}

// Filter selects the widths whose score clearly beats both the baseline
// (scores[0]) and a fraction of the best score. A width that is a multiple of
// an already selected width is skipped, since the shorter width explains it.
func Filter(scores []Score, cfg Config) []Score {
	if len(scores) == 0 {
		return nil
	}

	best := scores[0].Index
	for _, s := range scores[1:] {
		best = math.Max(best, s.Index)
	}

	threshold := math.Max(
		math.Max(cfg.ImprovementRatio*scores[0].Index, cfg.SignificanceRatio*best),
		minScore,
	)

	var out []Score
	for _, s := range scores {
		if s.Index < threshold || isMultiple(s.Width, out) {
			continue
		}
		out = append(out, s)
	}

	return out
}

func isMultiple(width int, kept []Score) bool {
	for _, k := range kept {
		if width%k.Width == 0 {
			return true
		}
	}

	return false
}

// Analyze scans data for key widths that raise its index of coincidence,
// such as the length of a repeating XOR key or the record size of repeated
// structures.
func Analyze(data []byte, opts ...Option) (Result, error) {
	if len(data) < 2 {
		return Result{}, fmt.Errorf("%w: got %d", ErrTooShort, len(data))
	}

	cfg := ApplyOptions(opts...)
	scores := Scores(data, cfg.MaxWidth)

	return Result{
		Baseline: scores[0].Index,
		Widths:   Filter(scores, cfg),
	}, nil
}

// Screen runs Analyze only when the entropy of data is at least minEntropy;
// otherwise it returns ok == false without scanning.
func Screen(data []byte, minEntropy float64, opts ...Option) (res Result, ok bool, err error) {
	if entropy.Calculate(data) < minEntropy {
		return Result{}, false, nil
	}

	res, err = Analyze(data, opts...)
	if err != nil {
		return Result{}, false, err
	}

	return res, true, nil
}
