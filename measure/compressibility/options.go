package compressibility

// Config selects the codecs to measure with.
type Config struct {
	Codecs []string
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig measures with every supported codec.
func DefaultConfig() Config {
	return Config{Codecs: Codecs()}
}

// WithCodecs restricts measurement to the named codecs. An empty list keeps
// the default.
func WithCodecs(names ...string) Option {
	return func(cfg *Config) {
		if len(names) > 0 {
			cfg.Codecs = append([]string(nil), names...)
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
