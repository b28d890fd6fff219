// Command entropy prints Shannon entropy profiles of files.
//
// Usage:
//
//	entropy [flags] file...
//
// Without -block-size or -count it prints the whole-file entropy only.
//
// Examples:
//
//	entropy firmware.bin
//	entropy -count 64 -summary firmware.bin
//	entropy -block-size 4096 -dist -compress image.img
//	entropy -spectral random.bin
//	entropy -coincidence -min-entropy 7 blob.enc
//	entropy -json -count 100 *.bin
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/cwbudde/algo-entropy/measure/compressibility"
	"github.com/cwbudde/algo-entropy/stats/entropy"
)

const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := realMain(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func realMain(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, paths, err := parseArgs(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	}

	cfg.setDefaults()
	cfg.Logger.SetOutput(stderr)

	emit := writeText(stdout)
	if cfg.JSON {
		emit = writeJSON(stdout)
	}

	failed, err := run(ctx, &cfg, paths, emit)
	if err != nil {
		cfg.Logger.WithError(err).Error("aborted")
		return exitFailed
	}
	if failed > 0 {
		cfg.Logger.Warnf("%d of %d files failed", failed, len(paths))
		return exitFailed
	}

	return exitOK
}

// parseArgs builds the run configuration. Values from -config are applied
// first; flags given on the command line override them.
func parseArgs(args []string, stderr io.Writer) (Config, []string, error) {
	fs := flag.NewFlagSet("entropy", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		flagCfg    = defaultConfig()
		configPath string
		codecs     string
	)

	fs.IntVar(&flagCfg.BlockSize, "block-size", 0, "split files into blocks of `N` bytes; values below 256, including 0, use 256")
	fs.IntVar(&flagCfg.Count, "count", 0, "split files into about `N` blocks")
	fs.BoolVar(&flagCfg.Summary, "summary", false, "print statistics of the block profile")
	fs.BoolVar(&flagCfg.Dist, "dist", false, "print byte-distribution statistics")
	fs.BoolVar(&flagCfg.Spectral, "spectral", false, "print spectral flatness and the bitwise DFT test")
	fs.BoolVar(&flagCfg.Coincidence, "coincidence", false, "scan for repeating key widths")
	fs.Float64Var(&flagCfg.MinEntropy, "min-entropy", flagCfg.MinEntropy, "entropy below which -coincidence skips a file")
	fs.BoolVar(&flagCfg.Compress, "compress", false, "print compression ratios")
	fs.StringVar(&codecs, "codecs", "", "comma-separated codecs for -compress ("+strings.Join(compressibility.Codecs(), ", ")+")")
	fs.BoolVar(&flagCfg.JSON, "json", false, "emit one JSON document per file")
	fs.StringVar(&configPath, "config", "", "load defaults from YAML `file`")
	fs.BoolVar(&flagCfg.Verbose, "v", false, "enable debug logging")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: entropy [flags] file...\n\n")
		fmt.Fprintf(stderr, "Prints Shannon entropy (bits per byte) of files and their blocks.\n")
		fmt.Fprintf(stderr, "Without -block-size or -count, prints whole-file entropy only.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  entropy -count 64 -summary firmware.bin\n")
		fmt.Fprintf(stderr, "  entropy -block-size 4096 -dist -compress image.img\n")
		fmt.Fprintf(stderr, "  entropy -json -count 100 *.bin\n")
	}

	if err := fs.Parse(args); err != nil {
		return Config{}, nil, err
	}

	cfg := defaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = loadConfig(configPath); err != nil {
			return Config{}, nil, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "block-size":
			cfg.BlockSize = flagCfg.BlockSize
			if cfg.BlockSize == 0 {
				// An explicit zero still asks for a profile.
				cfg.BlockSize = entropy.MinBlockSize
			}
		case "count":
			cfg.Count = flagCfg.Count
		case "summary":
			cfg.Summary = flagCfg.Summary
		case "dist":
			cfg.Dist = flagCfg.Dist
		case "spectral":
			cfg.Spectral = flagCfg.Spectral
		case "coincidence":
			cfg.Coincidence = flagCfg.Coincidence
		case "min-entropy":
			cfg.MinEntropy = flagCfg.MinEntropy
		case "compress":
			cfg.Compress = flagCfg.Compress
		case "codecs":
			cfg.Codecs = splitList(codecs)
		case "json":
			cfg.JSON = flagCfg.JSON
		case "v":
			cfg.Verbose = flagCfg.Verbose
		}
	})

	if err := cfg.validate(); err != nil {
		fs.Usage()
		return Config{}, nil, err
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return Config{}, nil, errors.New("no input files")
	}

	return cfg, fs.Args(), nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, strings.ToLower(part))
		}
	}
	return out
}
