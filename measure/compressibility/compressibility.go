package compressibility

import (
	"errors"
	"fmt"
)

// Errors returned by [Measure].
var (
	ErrEmptyInput   = errors.New("compressibility: input is empty")
	ErrUnknownCodec = errors.New("compressibility: unknown codec")
)

// Result holds compression ratios of a buffer.
type Result struct {
	Size    int                // uncompressed size in bytes
	Sizes   map[string]int     // compressed size per codec
	Ratios  map[string]float64 // Size / compressed size per codec
	Average float64            // mean ratio over all codecs
}

// Measure compresses data with each configured codec and reports the
// compression ratios. Ratios near or below 1 indicate data that is already
// compressed or encrypted.
//
// All codec names are validated before any compression runs.
func Measure(data []byte, opts ...Option) (Result, error) {
	if len(data) == 0 {
		return Result{}, ErrEmptyInput
	}

	cfg := ApplyOptions(opts...)

	fns := make([]sizeFunc, len(cfg.Codecs))
	for i, name := range cfg.Codecs {
		fn, err := lookup(name)
		if err != nil {
			return Result{}, err
		}
		fns[i] = fn
	}

	res := Result{
		Size:   len(data),
		Sizes:  make(map[string]int, len(cfg.Codecs)),
		Ratios: make(map[string]float64, len(cfg.Codecs)),
	}

	var sum float64
	for i, name := range cfg.Codecs {
		if _, seen := res.Ratios[name]; seen {
			continue
		}

		n, err := fns[i](data)
		if err != nil {
			return Result{}, fmt.Errorf("compressibility: %s: %w", name, err)
		}

		ratio := float64(len(data)) / float64(n)
		res.Sizes[name] = n
		res.Ratios[name] = ratio
		sum += ratio
	}

	res.Average = sum / float64(len(res.Ratios))

	return res, nil
}
