// Package distribution provides byte-distribution statistics that complement
// Shannon entropy when characterizing binary data.
//
// The histogram-based measures (chi-square and Kolmogorov-Smirnov distance to
// the uniform distribution, index of coincidence, mean byte value) share a
// single [entropy.Histogram] pass. The correlation measures treat the buffer
// as a signal of byte values:
//
//   - SerialCorrelation: lag-1 autocorrelation, computed directly
//   - Autocorrelation: lags 1..maxLag, computed via FFT
//   - AutocorrelationSpread: variation of the mean absolute autocorrelation
//     across fixed-size blocks
//
// # Usage
//
//	s := distribution.Calculate(data)
//	fmt.Printf("chi2=%.1f ks=%.4f (crit %.4f)\n", s.ChiSquare, s.KS, s.KSCritical05)
package distribution
