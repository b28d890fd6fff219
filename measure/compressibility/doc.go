// Package compressibility estimates how much structure a byte buffer holds
// by compressing it with general-purpose codecs.
//
// Entropy only sees the byte histogram; a buffer of ascending counters has
// maximal entropy yet compresses extremely well. Compression ratios catch
// that kind of structure and complement the block entropies of
// [github.com/cwbudde/algo-entropy/stats/entropy].
//
// Supported codecs are gzip and zstd (klauspost/compress), xz and lzma
// (ulikunitz/xz) and snappy (golang/snappy).
//
// # Usage
//
//	res, err := compressibility.Measure(data)
//	if err != nil {
//		return err
//	}
//	fmt.Printf("average ratio %.2f\n", res.Average)
//
//	// Restrict to fast codecs
//	res, err = compressibility.Measure(data,
//		compressibility.WithCodecs(compressibility.CodecSnappy, compressibility.CodecZstd),
//	)
package compressibility
