package entropy

import "math"

// MaxEntropy is the entropy of a perfectly uniform byte distribution.
const MaxEntropy = 8.0

// Histogram holds per-byte-value occurrence counts.
type Histogram [256]uint64

// NewHistogram counts the byte values in buf.
func NewHistogram(buf []byte) Histogram {
	var h Histogram
	h.Add(buf)
	return h
}

// Add counts the byte values in buf into h.
func (h *Histogram) Add(buf []byte) {
	for _, b := range buf {
		h[b]++
	}
}

// Total returns the number of bytes counted.
func (h *Histogram) Total() uint64 {
	var n uint64
	for _, c := range h {
		n += c
	}
	return n
}

// Entropy returns the Shannon entropy in bits of the counted distribution.
// An empty histogram has entropy 0.
func (h *Histogram) Entropy() float64 {
	return shannon(h, h.Total())
}

// Calculate returns the Shannon entropy of buf in bits per byte.
//
// The result lies in [0, 8]. An empty buffer, or one consisting of a single
// repeated byte value, has entropy 0.
func Calculate(buf []byte) float64 {
	var h Histogram
	h.Add(buf)
	return shannon(&h, uint64(len(buf)))
}

func shannon(h *Histogram, total uint64) float64 {
	if total == 0 {
		return 0
	}

	n := float64(total)

	var sum float64
	for _, c := range h {
		if c == 0 {
			continue
		}
		p := float64(c) / n
		sum += p * math.Log2(p)
	}

	// A single populated bucket sums to +0; negating it would give -0.
	if sum == 0 {
		return 0
	}

	return -sum
}
