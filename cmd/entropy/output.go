package main

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"text/tabwriter"

	"github.com/cwbudde/algo-entropy/stats/entropy"
	"github.com/dustin/go-humanize"
)

func writeJSON(w io.Writer) func(Report) error {
	enc := json.NewEncoder(w)
	return func(rep Report) error {
		return enc.Encode(rep)
	}
}

func writeText(w io.Writer) func(Report) error {
	return func(rep Report) error {
		// The header stays out of the tabwriter so long paths do not widen
		// the columns below it.
		if _, err := fmt.Fprintf(w, "%s  %s  entropy %.4f\n", rep.Path, humanize.Bytes(uint64(rep.Size)), rep.Entropy); err != nil {
			return err
		}

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

		if rep.Profile != nil {
			writeBlocks(tw, *rep.Profile)
		}
		if s := rep.Summary; s != nil {
			fmt.Fprintf(tw, "  summary\tmean %.4f\tmedian %.4f\tstddev %.4f\tmin %.4f @%d\tmax %.4f @%d\n",
				s.Mean, s.Median, s.StdDev, s.Min, s.MinPos, s.Max, s.MaxPos)
		}
		if d := rep.Distribution; d != nil {
			fmt.Fprintf(tw, "  mean\t%.4f\n", d.Mean)
			fmt.Fprintf(tw, "  chi-square\t%.2f\n", d.ChiSquare)
			fmt.Fprintf(tw, "  kolmogorov-smirnov\t%.5f @%d\t(1%%: %.5f, 5%%: %.5f)\n", d.KS, d.KSPos, d.KSCritical01, d.KSCritical05)
			fmt.Fprintf(tw, "  coincidence\t%.6f\n", d.Coincidence)
			fmt.Fprintf(tw, "  serial correlation\t%.6f\n", d.SerialCorrelation)
		}
		if f := rep.Frequency; f != nil {
			fmt.Fprintf(tw, "  spectral flatness\t%.4f\n", f.Flatness)
			fmt.Fprintf(tw, "  spectral peak\tbin %d\tx%.1f\n", f.PeakBin, f.PeakRatio)
			fmt.Fprintf(tw, "  dft test\t%d bits\tp=%.4f\n", f.Spectral.Bits, f.Spectral.PValue)
		}
		if c := rep.Coincidence; c != nil {
			fmt.Fprintf(tw, "  coincidence baseline\t%.4f\n", c.Baseline)
			for _, s := range c.Widths {
				fmt.Fprintf(tw, "  key width %d\t%.4f\n", s.Width, s.Index)
			}
		}
		if c := rep.Compression; c != nil {
			names := make([]string, 0, len(c.Ratios))
			for name := range c.Ratios {
				names = append(names, name)
			}
			slices.Sort(names)
			for _, name := range names {
				fmt.Fprintf(tw, "  %s\t%s\tratio %.3f\n", name, humanize.Bytes(uint64(c.Sizes[name])), c.Ratios[name])
			}
			fmt.Fprintf(tw, "  compression average\t\tratio %.3f\n", c.Average)
		}

		return tw.Flush()
	}
}

func writeBlocks(tw *tabwriter.Writer, res entropy.Result) {
	fmt.Fprintf(tw, "  blocks\t%d x %s\n", res.BlockCount, humanize.Bytes(uint64(res.BlockSize)))
	if len(res.Entropies) == 0 {
		fmt.Fprintf(tw, "  \t(file shorter than one block)\n")
		return
	}

	fmt.Fprintf(tw, "  Block\tOffset\tEntropy\n")
	fmt.Fprintf(tw, "  -----\t------\t-------\n")
	p := res.Plan()
	for i, e := range res.Entropies {
		fmt.Fprintf(tw, "  %d\t%d\t%.4f\n", i, p.Offset(i), e)
	}
}
