package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/cwbudde/algo-entropy/measure/coincidence"
	"github.com/cwbudde/algo-entropy/measure/compressibility"
	"github.com/cwbudde/algo-entropy/stats/distribution"
	"github.com/cwbudde/algo-entropy/stats/entropy"
	"github.com/cwbudde/algo-entropy/stats/frequency"
	"github.com/sirupsen/logrus"
)

// Report is the analysis of one file.
type Report struct {
	Path    string  `json:"path"`
	Size    int     `json:"size"`
	Entropy float64 `json:"entropy"`

	Profile      *entropy.Result         `json:"profile,omitempty"`
	Summary      *entropy.Summary        `json:"summary,omitempty"`
	Distribution *distribution.Stats     `json:"distribution,omitempty"`
	Frequency    *frequency.Stats        `json:"frequency,omitempty"`
	Coincidence  *coincidence.Result     `json:"coincidence,omitempty"`
	Compression  *compressibility.Result `json:"compression,omitempty"`
}

func (c *Config) profiling() bool {
	return c.BlockSize > 0 || c.Count > 0
}

// analyze reads path once and runs the analyses enabled in cfg.
func analyze(path string, cfg *Config) (Report, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return Report{}, err
	}

	rep := Report{
		Path:    path,
		Size:    len(buf),
		Entropy: entropy.Calculate(buf),
	}

	if cfg.profiling() {
		var res entropy.Result
		if cfg.BlockSize > 0 {
			res = entropy.BlockEntropies(buf, cfg.BlockSize)
		} else {
			res = entropy.CountEntropies(buf, cfg.Count)
		}

		rep.Profile = &res

		if cfg.Summary {
			s := entropy.Summarize(res.Entropies)
			rep.Summary = &s
		}
	}

	if cfg.Dist {
		d := distribution.Calculate(buf)
		rep.Distribution = &d
	}

	if cfg.Spectral {
		f, err := frequency.Calculate(buf)
		switch {
		case err == nil:
			rep.Frequency = &f
		case errors.Is(err, frequency.ErrTooShort):
			cfg.Logger.WithFields(logrus.Fields{"path": path, "size": len(buf)}).Debug("file too short for spectral test")
		default:
			return rep, err
		}
	}

	if cfg.Coincidence {
		res, ok, err := coincidence.Screen(buf, cfg.MinEntropy)
		switch {
		case err != nil:
			cfg.Logger.WithFields(logrus.Fields{"path": path, "error": err}).Debug("coincidence scan skipped")
		case ok:
			rep.Coincidence = &res
		default:
			cfg.Logger.WithFields(logrus.Fields{"path": path, "entropy": rep.Entropy}).Debug("entropy below coincidence threshold")
		}
	}

	if cfg.Compress {
		res, err := compressibility.Measure(buf, compressibility.WithCodecs(cfg.Codecs...))
		switch {
		case err == nil:
			rep.Compression = &res
		case errors.Is(err, compressibility.ErrEmptyInput):
			cfg.Logger.WithField("path", path).Debug("empty file, compression skipped")
		default:
			return rep, err
		}
	}

	return rep, nil
}

// run analyzes every path and hands each report to emit. It returns the number
// of files that could not be analyzed. Cancellation is checked between files.
func run(ctx context.Context, cfg *Config, paths []string, emit func(Report) error) (int, error) {
	var failed int

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return failed, err
		}

		log := cfg.Logger.WithField("path", path)
		log.Debug("analyzing")

		rep, err := analyze(path, cfg)
		if err != nil {
			log.WithError(err).Error("analysis failed")
			failed++
			continue
		}

		log.WithFields(logrus.Fields{"size": rep.Size, "entropy": rep.Entropy}).Debug("done")

		if err := emit(rep); err != nil {
			return failed, fmt.Errorf("write report: %w", err)
		}
	}

	return failed, nil
}
