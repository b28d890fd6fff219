package main

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/cwbudde/algo-entropy/measure/coincidence"
	"github.com/cwbudde/algo-entropy/measure/compressibility"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

var errConflictingPlan = errors.New("-block-size and -count are mutually exclusive")

// Config controls which analyses run on each file.
type Config struct {
	BlockSize   int      `yaml:"blockSize"`
	Count       int      `yaml:"count"`
	Summary     bool     `yaml:"summary"`
	Dist        bool     `yaml:"dist"`
	Spectral    bool     `yaml:"spectral"`
	Coincidence bool     `yaml:"coincidence"`
	MinEntropy  float64  `yaml:"minEntropy"`
	Compress    bool     `yaml:"compress"`
	Codecs      []string `yaml:"codecs"`
	JSON        bool     `yaml:"json"`
	Verbose     bool     `yaml:"verbose"`

	Logger *logrus.Logger `yaml:"-"`
}

func defaultConfig() Config {
	return Config{MinEntropy: coincidence.DefaultMinEntropy}
}

// loadConfig reads a YAML config file on top of the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.BlockSize > 0 && c.Count > 0 {
		return errConflictingPlan
	}
	if c.BlockSize < 0 || c.Count < 0 {
		return fmt.Errorf("block size and count must not be negative (got %d, %d)", c.BlockSize, c.Count)
	}

	known := compressibility.Codecs()
	for _, name := range c.Codecs {
		if !slices.Contains(known, name) {
			return fmt.Errorf("%w: %q", compressibility.ErrUnknownCodec, name)
		}
	}

	return nil
}

func (c *Config) setDefaults() {
	if c.Logger == nil {
		c.Logger = logrus.New()
		c.Logger.SetOutput(os.Stderr)
	}

	if c.Verbose {
		c.Logger.SetLevel(logrus.DebugLevel)
	} else {
		c.Logger.SetLevel(logrus.WarnLevel)
	}
}
