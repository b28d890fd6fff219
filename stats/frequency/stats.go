// Package frequency computes frequency-domain statistics of byte buffers.
package frequency

import (
	"errors"
	"fmt"
	"math"
	"sync"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

const (
	// MinBytes is the shortest buffer accepted by [Calculate], [Spectrum]
	// and [SpectralTest].
	MinBytes = 16

	// MaxSpectralBits caps the number of bits transformed by [SpectralTest].
	MaxSpectralBits = 1 << 20

	// spectralAlpha is the fraction of peaks expected to exceed the
	// spectral-test threshold for random input.
	spectralAlpha = 0.05
)

// Errors returned by frequency functions.
var ErrTooShort = errors.New("frequency: input too short")

// Stats holds frequency-domain statistics of a byte buffer.
type Stats struct {
	Bins      int     // one-sided spectrum bins, DC included
	Flatness  float64 // spectral flatness (Wiener entropy), 0..1
	Centroid  float64 // spectral centroid in cycles per byte, 0..0.5
	PeakBin   int     // strongest non-DC bin
	PeakRatio float64 // strongest non-DC magnitude over the mean non-DC magnitude

	Spectral DFTTest
}

// DFTTest is the outcome of the discrete Fourier transform (spectral) test
// over the bit sequence of a buffer.
type DFTTest struct {
	Bits      int     // bits transformed
	Threshold float64 // peak height below which 95% of peaks fall for random input
	Expected  float64 // expected number of peaks below Threshold
	Observed  int     // observed number of peaks below Threshold
	D         float64 // normalized difference between Observed and Expected
	PValue    float64
}

type scratchBuf struct {
	re, im []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) *scratchBuf {
	buf := scratchPool.Get().(*scratchBuf)
	if cap(buf.re) < n {
		buf.re = make([]float64, n)
		buf.im = make([]float64, n)
	}
	buf.re = buf.re[:n]
	buf.im = buf.im[:n]
	return buf
}

// Calculate computes spectral statistics of buf treated as a signal of byte
// values, together with the bitwise spectral test.
func Calculate(buf []byte) (Stats, error) {
	if len(buf) < MinBytes {
		return Stats{}, fmt.Errorf("%w: need at least %d bytes, got %d", ErrTooShort, MinBytes, len(buf))
	}

	mag, err := Spectrum(buf)
	if err != nil {
		return Stats{}, err
	}

	dft, err := SpectralTest(buf)
	if err != nil {
		return Stats{}, err
	}

	s := Stats{
		Bins:     len(mag),
		Flatness: Flatness(mag),
		Centroid: Centroid(mag),
		Spectral: dft,
	}

	s.PeakBin = 1

	var sum float64
	for i := 1; i < len(mag); i++ {
		sum += mag[i]
		if mag[i] > mag[s.PeakBin] {
			s.PeakBin = i
		}
	}
	if mean := sum / float64(len(mag)-1); mean > 0 {
		s.PeakRatio = mag[s.PeakBin] / mean
	}

	return s, nil
}

// Spectrum returns the one-sided magnitude spectrum of buf treated as a
// mean-removed signal of byte values. The signal is zero padded to the next
// power of two n, so the result holds n/2+1 bins and bin i lies at i/n
// cycles per byte.
func Spectrum(buf []byte) ([]float64, error) {
	if len(buf) < MinBytes {
		return nil, fmt.Errorf("%w: need at least %d bytes, got %d", ErrTooShort, MinBytes, len(buf))
	}

	n := nextPowerOf2(len(buf))

	var sum float64
	for _, b := range buf {
		sum += float64(b)
	}
	mean := sum / float64(len(buf))

	in := make([]complex128, n)
	for i, b := range buf {
		in[i] = complex(float64(b)-mean, 0)
	}

	out, err := forward(in)
	if err != nil {
		return nil, err
	}

	return magnitude(out[:n/2+1]), nil
}

// SpectralTest runs the discrete Fourier transform test over the bits of
// buf, most significant bit first. Only the largest power-of-two prefix of
// the bit sequence, at most [MaxSpectralBits] long, is transformed.
//
// Random input yields a p-value uniformly distributed in [0, 1]; periodic
// input produces too few or too many peaks and a p-value near 0.
func SpectralTest(buf []byte) (DFTTest, error) {
	if len(buf) < MinBytes {
		return DFTTest{}, fmt.Errorf("%w: need at least %d bytes, got %d", ErrTooShort, MinBytes, len(buf))
	}

	n := prevPowerOf2(min(8*len(buf), MaxSpectralBits))

	in := make([]complex128, n)
	for i := range in {
		if buf[i/8]&(0x80>>(i%8)) != 0 {
			in[i] = 1
		} else {
			in[i] = -1
		}
	}

	out, err := forward(in)
	if err != nil {
		return DFTTest{}, err
	}

	mag := magnitude(out[:n/2])

	fn := float64(n)
	t := DFTTest{
		Bits:      n,
		Threshold: math.Sqrt(math.Log(1/spectralAlpha) * fn),
		Expected:  (1 - spectralAlpha) * fn / 2,
	}

	for _, m := range mag {
		if m < t.Threshold {
			t.Observed++
		}
	}

	t.D = (float64(t.Observed) - t.Expected) / math.Sqrt(fn*(1-spectralAlpha)*spectralAlpha/4)
	t.PValue = math.Erfc(math.Abs(t.D) / math.Sqrt2)

	return t, nil
}

func forward(in []complex128) ([]complex128, error) {
	plan, err := algofft.NewPlan64(len(in))
	if err != nil {
		return nil, fmt.Errorf("frequency: failed to create FFT plan: %w", err)
	}

	out := make([]complex128, len(in))
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("frequency: forward FFT failed: %w", err)
	}

	return out, nil
}

func magnitude(in []complex128) []float64 {
	out := make([]float64, len(in))
	buf := getScratch(len(in))

	for i, c := range in {
		buf.re[i] = real(c)
		buf.im[i] = imag(c)
	}

	vecmath.Magnitude(out, buf.re, buf.im)
	scratchPool.Put(buf)

	return out
}

// Centroid returns the spectral centroid of a one-sided magnitude spectrum in
// cycles per byte, with bin i at i/(2*(len(magnitude)-1)).
//
//	centroid = sum(f_i * |X_i|) / sum(|X_i|)
func Centroid(magnitude []float64) float64 {
	n := len(magnitude)
	if n < 2 {
		return 0
	}

	var sum, weighted float64
	for i, v := range magnitude {
		sum += v
		weighted += float64(i) / float64(2*(n-1)) * v
	}
	if sum == 0 {
		return 0
	}

	return weighted / sum
}

// Flatness returns the spectral flatness (Wiener entropy) in the range 0..1.
//
// Flatness = exp(mean(log(|X_i|))) / mean(|X_i|)
//
// DC bin (index 0) is excluded from the computation. If all considered bins
// are zero, 0 is returned. White noise scores about 0.85, a periodic signal
// scores near 0.
func Flatness(magnitude []float64) float64 {
	n := len(magnitude)
	if n < 2 {
		return 0
	}

	nBins := n - 1
	sumLin := 0.0
	sumLog := 0.0

	for i := 1; i < n; i++ {
		v := magnitude[i]
		if v <= 0 {
			// A zero bin makes the geometric mean zero.
			return 0
		}
		sumLin += v
		sumLog += math.Log(v)
	}

	meanLin := sumLin / float64(nBins)
	geoMean := math.Exp(sumLog / float64(nBins))

	return geoMean / meanLin
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p *= 2
	}
	return p
}

func prevPowerOf2(n int) int {
	p := 1
	for p*2 <= n {
		p *= 2
	}
	return p
}
