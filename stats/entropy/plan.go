package entropy

import "iter"

// MinBlockSize is the smallest block, in bytes, that block entropy is
// computed over.
const MinBlockSize = 256

// Plan describes how a buffer is partitioned into blocks.
//
// For plans produced by [PlanBySize] and [PlanByCount], BlockSize is at least
// MinBlockSize and BlockSize*BlockCount never exceeds the planned length.
type Plan struct {
	BlockSize  int
	BlockCount int
}

// Offset returns the byte offset of block i.
func (p Plan) Offset(i int) int {
	return i * p.BlockSize
}

// Covered returns the number of bytes spanned by all blocks. Bytes past
// Covered are not part of any block.
func (p Plan) Covered() int {
	return p.BlockSize * p.BlockCount
}

// PlanBySize partitions total bytes into blocks of blockSize bytes.
//
// A blockSize below MinBlockSize (including zero) is raised to MinBlockSize.
// The block count is total/BlockSize, truncated; remainder bytes are dropped.
func PlanBySize(total, blockSize int) Plan {
	if blockSize < MinBlockSize {
		blockSize = MinBlockSize
	}
	if total < 0 {
		total = 0
	}

	return Plan{
		BlockSize:  blockSize,
		BlockCount: total / blockSize,
	}
}

// PlanByCount partitions total bytes into roughly count blocks.
//
// The block size is total/count, raised to MinBlockSize if needed, and the
// count is then derived from that size. The resolved count can therefore be
// smaller than requested when the buffer is too short for count blocks of
// MinBlockSize bytes. A count of zero (or less) plans MinBlockSize blocks.
func PlanByCount(total, count int) Plan {
	if count <= 0 {
		return PlanBySize(total, 0)
	}

	return PlanBySize(total, total/count)
}

// Blocks returns the entropy of each block of buf described by p, in block
// order. The plan must fit within buf.
func Blocks(buf []byte, p Plan) []float64 {
	out := make([]float64, p.BlockCount)
	for i := range out {
		off := p.Offset(i)
		out[i] = Calculate(buf[off : off+p.BlockSize])
	}

	return out
}

// BlockSeq lazily yields the block index and entropy of each block of buf
// described by p. Values are computed on demand, so stopping the iteration
// early skips the remaining blocks.
func BlockSeq(buf []byte, p Plan) iter.Seq2[int, float64] {
	return func(yield func(int, float64) bool) {
		for i := range p.BlockCount {
			off := p.Offset(i)
			if !yield(i, Calculate(buf[off:off+p.BlockSize])) {
				return
			}
		}
	}
}

// Result holds a block entropy sequence together with the block layout it
// was computed with.
type Result struct {
	Entropies  []float64 `json:"entropies"`
	BlockSize  int       `json:"blockSize"`
	BlockCount int       `json:"blockCount"`
}

// Plan returns the block layout of r.
func (r Result) Plan() Plan {
	return Plan{BlockSize: r.BlockSize, BlockCount: r.BlockCount}
}

// BlockEntropies computes the entropy of every blockSize-byte block of buf.
// See [PlanBySize] for how blockSize is resolved. Buffers shorter than
// MinBlockSize yield an empty result with zero size and count.
func BlockEntropies(buf []byte, blockSize int) Result {
	if len(buf) < MinBlockSize {
		return emptyResult()
	}

	return produce(buf, PlanBySize(len(buf), blockSize))
}

// CountEntropies computes the entropy of buf split into about count
// blocks. See [PlanByCount] for how count is resolved. Buffers shorter than
// MinBlockSize yield an empty result with zero size and count.
func CountEntropies(buf []byte, count int) Result {
	if len(buf) < MinBlockSize {
		return emptyResult()
	}

	return produce(buf, PlanByCount(len(buf), count))
}

func produce(buf []byte, p Plan) Result {
	return Result{
		Entropies:  Blocks(buf, p),
		BlockSize:  p.BlockSize,
		BlockCount: p.BlockCount,
	}
}

func emptyResult() Result {
	return Result{Entropies: []float64{}}
}
