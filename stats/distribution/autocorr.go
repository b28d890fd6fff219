package distribution

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-entropy/stats/entropy"
	"github.com/cwbudde/algo-vecmath"
	"github.com/montanaflynn/stats"
)

// Errors returned by autocorrelation functions.
var (
	ErrInvalidMaxLag = errors.New("distribution: max lag must be positive")
	ErrTooShort      = errors.New("distribution: input too short")
)

// Autocorrelation returns the normalized autocorrelation of buf, treated as
// a mean-removed signal of byte values, for lags 1..maxLag. Element k of the
// result belongs to lag k+1. maxLag is clamped to len(buf)-1.
//
// The correlation is computed in the frequency domain as the inverse FFT of
// the power spectrum. Constant input yields all zeros.
func Autocorrelation(buf []byte, maxLag int) ([]float64, error) {
	if maxLag < 1 {
		return nil, ErrInvalidMaxLag
	}
	if len(buf) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 bytes, got %d", ErrTooShort, len(buf))
	}

	a, err := newAutocorrelator(len(buf), min(maxLag, len(buf)-1))
	if err != nil {
		return nil, err
	}

	return a.process(buf)
}

// AutocorrelationSpread splits buf into blocks planned with
// [entropy.PlanBySize], reduces each block to its mean absolute
// autocorrelation over lags 1..maxLag, and returns the population standard
// deviation of those per-block values.
//
// Random or encrypted data has uniformly tiny autocorrelation in every block,
// so its spread is close to zero.
func AutocorrelationSpread(buf []byte, blockSize, maxLag int) (float64, error) {
	if maxLag < 1 {
		return 0, ErrInvalidMaxLag
	}

	p := entropy.PlanBySize(len(buf), blockSize)
	if p.BlockCount < 1 {
		return 0, fmt.Errorf("%w: %d bytes is less than one %d-byte block", ErrTooShort, len(buf), p.BlockSize)
	}

	a, err := newAutocorrelator(p.BlockSize, min(maxLag, p.BlockSize-1))
	if err != nil {
		return 0, err
	}

	means := make([]float64, p.BlockCount)
	for i := range means {
		off := p.Offset(i)
		r, err := a.process(buf[off : off+p.BlockSize])
		if err != nil {
			return 0, err
		}
		for j := range r {
			r[j] = math.Abs(r[j])
		}
		means[i], err = stats.Mean(r)
		if err != nil {
			return 0, fmt.Errorf("distribution: block %d: %w", i, err)
		}
	}

	return stats.StandardDeviationPopulation(means)
}

// autocorrelator holds an FFT plan and scratch buffers for repeated
// autocorrelation of equally sized inputs.
type autocorrelator struct {
	n, maxLag int
	plan      *algofft.Plan[complex128]
	time      []complex128
	freq      []complex128
	re, im    []float64
	power     []float64
}

func newAutocorrelator(n, maxLag int) (*autocorrelator, error) {
	// Zero padding to n+maxLag keeps the circular correlation linear for
	// the lags of interest.
	size := nextPowerOf2(n + maxLag)

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("distribution: failed to create FFT plan: %w", err)
	}

	return &autocorrelator{
		n:      n,
		maxLag: maxLag,
		plan:   plan,
		time:   make([]complex128, size),
		freq:   make([]complex128, size),
		re:     make([]float64, size),
		im:     make([]float64, size),
		power:  make([]float64, size),
	}, nil
}

func (a *autocorrelator) process(buf []byte) ([]float64, error) {
	var sum float64
	for _, b := range buf {
		sum += float64(b)
	}
	mean := sum / float64(len(buf))

	clear(a.time)
	for i, b := range buf {
		a.time[i] = complex(float64(b)-mean, 0)
	}

	if err := a.plan.Forward(a.freq, a.time); err != nil {
		return nil, fmt.Errorf("distribution: forward FFT failed: %w", err)
	}

	for i, c := range a.freq {
		a.re[i] = real(c)
		a.im[i] = imag(c)
	}
	vecmath.Power(a.power, a.re, a.im)
	for i, p := range a.power {
		a.freq[i] = complex(p, 0)
	}

	if err := a.plan.Inverse(a.time, a.freq); err != nil {
		return nil, fmt.Errorf("distribution: inverse FFT failed: %w", err)
	}

	out := make([]float64, a.maxLag)

	zeroLag := real(a.time[0])
	if zeroLag <= 0 {
		return out, nil
	}

	for k := range out {
		out[k] = real(a.time[k+1]) / zeroLag
	}

	return out, nil
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
