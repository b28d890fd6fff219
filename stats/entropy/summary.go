package entropy

import "github.com/montanaflynn/stats"

// Summary holds descriptive statistics of an entropy sequence.
type Summary struct {
	Count  int
	Mean   float64
	Median float64
	StdDev float64 // population standard deviation
	Min    float64
	Max    float64
	MinPos int // index of the first minimum
	MaxPos int // index of the first maximum
}

// Summarize computes descriptive statistics of values, typically
// Result.Entropies. An empty sequence yields a zero Summary.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}

	// stats only fails on empty input, handled above.
	mean, _ := stats.Mean(values)
	median, _ := stats.Median(values)
	stdDev, _ := stats.StandardDeviationPopulation(values)
	minVal, _ := stats.Min(values)
	maxVal, _ := stats.Max(values)

	return Summary{
		Count:  len(values),
		Mean:   mean,
		Median: median,
		StdDev: stdDev,
		Min:    minVal,
		Max:    maxVal,
		MinPos: indexOf(values, minVal),
		MaxPos: indexOf(values, maxVal),
	}
}

func indexOf(values []float64, v float64) int {
	for i, x := range values {
		if x == v {
			return i
		}
	}

	return -1
}
