package coincidence

const (
	// DefaultMaxWidth is the largest key width scanned.
	DefaultMaxWidth = 300

	// DefaultImprovementRatio is the factor by which a width must raise the
	// index of coincidence over the unshifted baseline to be kept.
	DefaultImprovementRatio = 2.0

	// DefaultSignificanceRatio is the fraction of the best width score a
	// width must reach to be kept.
	DefaultSignificanceRatio = 0.333333333

	// DefaultMinEntropy is the whole-buffer entropy below which Screen skips
	// the width scan.
	DefaultMinEntropy = 6.0
)

// Config holds width-scan parameters.
type Config struct {
	MaxWidth          int
	ImprovementRatio  float64
	SignificanceRatio float64
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the default scan parameters.
func DefaultConfig() Config {
	return Config{
		MaxWidth:          DefaultMaxWidth,
		ImprovementRatio:  DefaultImprovementRatio,
		SignificanceRatio: DefaultSignificanceRatio,
	}
}

// WithMaxWidth sets the largest key width scanned.
func WithMaxWidth(width int) Option {
	return func(cfg *Config) {
		if width > 0 {
			cfg.MaxWidth = width
		}
	}
}

// WithImprovementRatio sets the minimum improvement over the baseline.
func WithImprovementRatio(ratio float64) Option {
	return func(cfg *Config) {
		if ratio > 0 {
			cfg.ImprovementRatio = ratio
		}
	}
}

// WithSignificanceRatio sets the minimum fraction of the best score.
func WithSignificanceRatio(ratio float64) Option {
	return func(cfg *Config) {
		if ratio > 0 && ratio <= 1 {
			cfg.SignificanceRatio = ratio
		}
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
