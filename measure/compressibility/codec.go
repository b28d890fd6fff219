package compressibility

import (
	"bytes"
	"fmt"
	"io"
	"slices"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
	"github.com/ulikunitz/xz/lzma"
)

// Codec names.
const (
	CodecGzip   = "gzip"
	CodecZstd   = "zstd"
	CodecXZ     = "xz"
	CodecLZMA   = "lzma"
	CodecSnappy = "snappy"
)

// sizeFunc returns the compressed size of data.
type sizeFunc func(data []byte) (int, error)

var codecs = map[string]sizeFunc{
	CodecGzip:   gzipSize,
	CodecZstd:   zstdSize,
	CodecXZ:     xzSize,
	CodecLZMA:   lzmaSize,
	CodecSnappy: snappySize,
}

// Codecs returns the names of all supported codecs in sorted order.
func Codecs() []string {
	names := make([]string, 0, len(codecs))
	for name := range codecs {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}

func gzipSize(data []byte) (int, error) {
	var buf bytes.Buffer

	w, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if err != nil {
		return 0, err
	}

	return streamSize(&buf, w, data)
}

func xzSize(data []byte) (int, error) {
	var buf bytes.Buffer

	w, err := xz.NewWriter(&buf)
	if err != nil {
		return 0, err
	}

	return streamSize(&buf, w, data)
}

func lzmaSize(data []byte) (int, error) {
	var buf bytes.Buffer

	w, err := lzma.NewWriter(&buf)
	if err != nil {
		return 0, err
	}

	return streamSize(&buf, w, data)
}

func streamSize(buf *bytes.Buffer, w io.WriteCloser, data []byte) (int, error) {
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return 0, err
	}
	if err := w.Close(); err != nil {
		return 0, err
	}

	return buf.Len(), nil
}

func zstdSize(data []byte) (int, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return 0, err
	}
	defer enc.Close()

	return len(enc.EncodeAll(data, nil)), nil
}

func snappySize(data []byte) (int, error) {
	return len(snappy.Encode(nil, data)), nil
}

func lookup(name string) (sizeFunc, error) {
	fn, ok := codecs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}

	return fn, nil
}
