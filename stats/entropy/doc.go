// Package entropy computes the Shannon entropy of byte buffers.
//
// Entropy is measured in bits per byte over the 256-symbol byte alphabet,
// so every result lies in [0, 8]. Values close to 8 indicate compressed or
// encrypted content, values close to 0 indicate repetitive or highly
// structured content.
//
// # Whole-buffer entropy
//
//	h := entropy.Calculate(data)
//
// # Block entropy
//
// A buffer can be split into contiguous, equally sized blocks and the entropy
// of every block reported in order. The block layout is chosen either from a
// requested block size or from a requested block count:
//
//	r := entropy.BlockEntropies(data, 4096) // blocks of (at least) 4096 bytes
//	r := entropy.CountEntropies(data, 100)  // about 100 blocks
//
// Blocks are never smaller than [MinBlockSize]. Requests below the floor are
// raised to it, which means CountEntropies can return fewer blocks than
// requested. Since the block size is derived by integer division, it can
// also return a few more. Trailing bytes that do not fill a whole block are
// ignored, and buffers shorter than MinBlockSize produce no blocks at all.
// The resolved block size and count are returned alongside the values so
// that block i can be mapped back to byte offset i*BlockSize.
//
// All functions are pure: they never retain or modify the input buffer and
// are safe for concurrent use.
package entropy
