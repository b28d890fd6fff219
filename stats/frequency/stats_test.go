package frequency

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-entropy/internal/testutil"
)

// makeFlatSpectrum creates a spectrum where all bins have the same magnitude.
func makeFlatSpectrum(n int, amplitude float64) []float64 {
	mag := make([]float64, n)
	for i := range mag {
		mag[i] = amplitude
	}

	return mag
}

// makeTone returns n bytes of a sine with the given number of cycles.
func makeTone(n, cycles int) []byte {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = byte(math.Round(128 + 100*math.Sin(2*math.Pi*float64(cycles*i)/float64(n))))
	}

	return buf
}

func TestFlatness(t *testing.T) {
	tests := []struct {
		name string
		mag  []float64
		want float64
	}{
		{"flat", makeFlatSpectrum(65, 3), 1},
		{"flat ignores DC", append([]float64{100}, makeFlatSpectrum(16, 0.5)...), 1},
		{"zero bin", []float64{0, 1, 0, 1}, 0},
		{"all zero", make([]float64, 33), 0},
		{"single bin", []float64{5}, 0},
		{"two levels", []float64{0, 1, 4}, 2.0 / 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.RequireNearlyEqual(t, Flatness(tt.mag), tt.want, 1e-12)
		})
	}
}

func TestCentroid(t *testing.T) {
	// Bin 2 of 5 lies at 2/8 cycles per byte.
	testutil.RequireNearlyEqual(t, Centroid([]float64{0, 0, 1, 0, 0}), 0.25, 1e-12)
	// Symmetric spectrum centers at the middle bin.
	testutil.RequireNearlyEqual(t, Centroid([]float64{0, 1, 2, 1, 0}), 0.25, 1e-12)
	testutil.RequireNearlyEqual(t, Centroid(make([]float64, 9)), 0, 0)
	testutil.RequireNearlyEqual(t, Centroid([]float64{1}), 0, 0)
}

func TestSpectrumLength(t *testing.T) {
	for _, n := range []int{16, 17, 100, 1000, 1024, 1025} {
		mag, err := Spectrum(testutil.DeterministicBytes(int64(n), n))
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		if want := nextPowerOf2(n)/2 + 1; len(mag) != want {
			t.Fatalf("n=%d: got %d bins, want %d", n, len(mag), want)
		}
		testutil.RequireFinite(t, mag)
	}
}

func TestSpectrumConstantIsSilent(t *testing.T) {
	mag, err := Spectrum(testutil.Repeated(0x7f, 512))
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireInRange(t, mag, 0, 1e-9)
}

func TestSpectrumTonePeak(t *testing.T) {
	mag, err := Spectrum(makeTone(1024, 64))
	if err != nil {
		t.Fatal(err)
	}

	peak := 1
	for i := 1; i < len(mag); i++ {
		if mag[i] > mag[peak] {
			peak = i
		}
	}
	if peak != 64 {
		t.Fatalf("peak at bin %d, want 64", peak)
	}
}

func TestCalculateTone(t *testing.T) {
	s, err := Calculate(makeTone(4096, 256))
	if err != nil {
		t.Fatal(err)
	}

	if s.Bins != 2049 {
		t.Fatalf("Bins = %d, want 2049", s.Bins)
	}
	if s.PeakBin != 256 {
		t.Fatalf("PeakBin = %d, want 256", s.PeakBin)
	}
	if s.PeakRatio < 100 {
		t.Fatalf("PeakRatio = %.1f, want a dominant peak", s.PeakRatio)
	}
	if s.Flatness > 0.5 {
		t.Fatalf("Flatness = %.3f, want a tonal spectrum", s.Flatness)
	}
}

func TestCalculateRandom(t *testing.T) {
	s, err := Calculate(testutil.DeterministicBytes(42, 1<<14))
	if err != nil {
		t.Fatal(err)
	}

	if s.Flatness < 0.75 || s.Flatness > 0.95 {
		t.Fatalf("Flatness = %.3f, want about 0.85 for white noise", s.Flatness)
	}
	if s.Centroid < 0.2 || s.Centroid > 0.3 {
		t.Fatalf("Centroid = %.3f, want about 0.25 for white noise", s.Centroid)
	}
	if s.Spectral.PValue < 1e-4 {
		t.Fatalf("spectral test p-value %.2e rejects random input", s.Spectral.PValue)
	}
}

func TestCalculateRampIsNotFlat(t *testing.T) {
	s, err := Calculate(testutil.Ramp(4096))
	if err != nil {
		t.Fatal(err)
	}
	if s.Flatness > 0.1 {
		t.Fatalf("Flatness = %.3f, want near 0 for a periodic buffer", s.Flatness)
	}
}

func TestSpectralTestBits(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{16, 128},
		{17, 128},
		{100, 512},
		{1 << 17, MaxSpectralBits},
		{1 << 18, MaxSpectralBits},
	}

	for _, tt := range tests {
		res, err := SpectralTest(testutil.DeterministicBytes(3, tt.n))
		if err != nil {
			t.Fatalf("n=%d: %v", tt.n, err)
		}
		if res.Bits != tt.want {
			t.Fatalf("n=%d: Bits = %d, want %d", tt.n, res.Bits, tt.want)
		}
		if res.PValue < 0 || res.PValue > 1 {
			t.Fatalf("n=%d: PValue %v out of range", tt.n, res.PValue)
		}
	}
}

func TestSpectralTestConstantRejected(t *testing.T) {
	// All bits equal: every non-DC peak is zero, far more than expected fall
	// below the threshold.
	res, err := SpectralTest(testutil.Repeated(0, 4096))
	if err != nil {
		t.Fatal(err)
	}

	if res.Observed != res.Bits/2-1 {
		t.Fatalf("Observed = %d, want %d", res.Observed, res.Bits/2-1)
	}
	if res.D <= 0 || res.PValue > 1e-6 {
		t.Fatalf("D = %.2f, PValue = %.2e; want a clear rejection", res.D, res.PValue)
	}
}

func TestTooShort(t *testing.T) {
	if _, err := Spectrum([]byte{1}); !errors.Is(err, ErrTooShort) {
		t.Fatalf("Spectrum: expected ErrTooShort, got %v", err)
	}
	if _, err := SpectralTest(make([]byte, MinBytes-1)); !errors.Is(err, ErrTooShort) {
		t.Fatalf("SpectralTest: expected ErrTooShort, got %v", err)
	}
	if _, err := Calculate(nil); !errors.Is(err, ErrTooShort) {
		t.Fatalf("Calculate: expected ErrTooShort, got %v", err)
	}
}

func TestPowerOf2Helpers(t *testing.T) {
	cases := []struct{ n, next, prev int }{
		{1, 1, 1},
		{2, 2, 2},
		{3, 4, 2},
		{1000, 1024, 512},
		{1024, 1024, 1024},
	}
	for _, c := range cases {
		if got := nextPowerOf2(c.n); got != c.next {
			t.Errorf("nextPowerOf2(%d) = %d, want %d", c.n, got, c.next)
		}
		if got := prevPowerOf2(c.n); got != c.prev {
			t.Errorf("prevPowerOf2(%d) = %d, want %d", c.n, got, c.prev)
		}
	}
}
