package distribution

import (
	"math"

	"github.com/cwbudde/algo-entropy/stats/entropy"
	"github.com/cwbudde/algo-vecmath"
)

// Kolmogorov-Smirnov critical value coefficients for the 1% and 5%
// significance levels.
const (
	ksCoeff01 = 1.63
	ksCoeff05 = 1.36
)

// Stats holds byte-distribution statistics of a buffer.
type Stats struct {
	Length            int
	Mean              float64 // mean byte value, 127.5 for uniform data
	Entropy           float64 // Shannon entropy, bits per byte
	ChiSquare         float64 // Pearson chi-square against a uniform distribution
	KS                float64 // max distance between empirical and uniform CDF
	KSPos             int     // byte value at which KS is attained
	KSCritical01      float64
	KSCritical05      float64
	Coincidence       float64 // probability that two distinct positions hold the same value
	SerialCorrelation float64 // lag-1 autocorrelation of the byte signal
}

// Calculate computes all byte-distribution statistics of buf. An empty buffer
// yields a zero Stats.
func Calculate(buf []byte) Stats {
	n := len(buf)
	if n == 0 {
		return Stats{}
	}

	h := entropy.NewHistogram(buf)
	ks, ksPos := KolmogorovSmirnov(&h)
	sqrtN := math.Sqrt(float64(n))

	return Stats{
		Length:            n,
		Mean:              Mean(&h),
		Entropy:           h.Entropy(),
		ChiSquare:         ChiSquare(&h),
		KS:                ks,
		KSPos:             ksPos,
		KSCritical01:      ksCoeff01 / sqrtN,
		KSCritical05:      ksCoeff05 / sqrtN,
		Coincidence:       Coincidence(&h),
		SerialCorrelation: SerialCorrelation(buf),
	}
}

// Mean returns the mean byte value of the counted distribution.
func Mean(h *entropy.Histogram) float64 {
	total := h.Total()
	if total == 0 {
		return 0
	}

	var sum float64
	for v, c := range h {
		sum += float64(v) * float64(c)
	}

	return sum / float64(total)
}

// ChiSquare returns Pearson's chi-square statistic of h against a uniform
// distribution over all 256 byte values. Uniform random data scores close to
// 255 (the degrees of freedom); structured data scores far higher.
func ChiSquare(h *entropy.Histogram) float64 {
	total := h.Total()
	if total == 0 {
		return 0
	}

	expected := float64(total) / 256

	var dev, sq [256]float64
	for i, c := range h {
		dev[i] = float64(c) - expected
	}
	vecmath.MulBlock(sq[:], dev[:], dev[:])

	var chi float64
	for _, v := range sq {
		chi += v
	}

	return chi / expected
}

// KolmogorovSmirnov returns the largest absolute distance between the
// empirical CDF of h and the uniform CDF, and the first byte value where it
// occurs.
func KolmogorovSmirnov(h *entropy.Histogram) (d float64, pos int) {
	total := h.Total()
	if total == 0 {
		return 0, 0
	}

	n := float64(total)

	var cum float64
	for i, c := range h {
		cum += float64(c) / n
		diff := math.Abs(cum - float64(i+1)/256)
		if diff > d {
			d = diff
			pos = i
		}
	}

	return d, pos
}

// Coincidence returns the index of coincidence of h: the probability that two
// bytes drawn without replacement from the counted data are equal. Uniform
// data scores about 1/256; plain text scores considerably higher.
func Coincidence(h *entropy.Histogram) float64 {
	total := h.Total()
	if total < 2 {
		return 0
	}

	var c, cm1, prod [256]float64
	for i, v := range h {
		c[i] = float64(v)
		if v > 0 {
			cm1[i] = float64(v - 1)
		}
	}
	vecmath.MulBlock(prod[:], c[:], cm1[:])

	var sum float64
	for _, v := range prod {
		sum += v
	}

	n := float64(total)

	return sum / (n * (n - 1))
}

// SerialCorrelation returns the lag-1 autocorrelation coefficient of buf
// treated as a signal of byte values. Constant or single-byte input yields 0.
func SerialCorrelation(buf []byte) float64 {
	if len(buf) < 2 {
		return 0
	}

	var sum float64
	for _, b := range buf {
		sum += float64(b)
	}
	mean := sum / float64(len(buf))

	var num, den float64
	for i, b := range buf {
		d := float64(b) - mean
		den += d * d
		if i > 0 {
			num += (float64(buf[i-1]) - mean) * d
		}
	}

	if den == 0 {
		return 0
	}

	return num / den
}
