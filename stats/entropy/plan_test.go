package entropy

import (
	"reflect"
	"testing"

	"github.com/cwbudde/algo-entropy/internal/testutil"
)

const (
	testBlockSize  = 256
	testBlockCount = 100
)

func TestPlanBySize(t *testing.T) {
	tests := []struct {
		total, blockSize int
		want             Plan
	}{
		{1000, 100, Plan{256, 3}},
		{1000, 0, Plan{256, 3}},
		{1000, -1, Plan{256, 3}},
		{1000, 255, Plan{256, 3}},
		{1000, 256, Plan{256, 3}},
		{1000, 500, Plan{500, 2}},
		{1000, 1000, Plan{1000, 1}},
		{1000, 1001, Plan{1001, 0}},
		{25600, 256, Plan{256, 100}},
		{255, 0, Plan{256, 0}},
		{0, 0, Plan{256, 0}},
		{-5, 0, Plan{256, 0}},
	}

	for _, tt := range tests {
		if got := PlanBySize(tt.total, tt.blockSize); got != tt.want {
			t.Errorf("PlanBySize(%d, %d) = %+v, want %+v", tt.total, tt.blockSize, got, tt.want)
		}
	}
}

func TestPlanByCount(t *testing.T) {
	tests := []struct {
		total, count int
		want         Plan
	}{
		{1000, 4, Plan{256, 3}}, // 250 is below the floor
		{2048, 8, Plan{256, 8}},
		{1000, 0, Plan{256, 3}},
		{1000, -2, Plan{256, 3}},
		{25600, 100, Plan{256, 100}},
		{10000, 3, Plan{3333, 3}},
		{2048, 1, Plan{2048, 1}},
		{300, 1000, Plan{256, 1}},
		{0, 5, Plan{256, 0}},
		{77399, 300, Plan{257, 301}}, // truncated size lets one extra block fit
	}

	for _, tt := range tests {
		if got := PlanByCount(tt.total, tt.count); got != tt.want {
			t.Errorf("PlanByCount(%d, %d) = %+v, want %+v", tt.total, tt.count, got, tt.want)
		}
	}
}

func TestPlanOffsetCovered(t *testing.T) {
	p := PlanBySize(1000, 300)
	if p.Offset(0) != 0 || p.Offset(2) != 600 {
		t.Fatalf("Offset: got %d, %d", p.Offset(0), p.Offset(2))
	}
	if p.Covered() != 900 {
		t.Fatalf("Covered = %d, want 900", p.Covered())
	}
}

func TestBlockEntropies_Eights(t *testing.T) {
	buf := testutil.Ramp(testBlockSize * testBlockCount)
	want := make([]float64, testBlockCount)
	for i := range want {
		want[i] = MaxEntropy
	}

	for name, r := range map[string]Result{
		"by size":  BlockEntropies(buf, testBlockSize),
		"by count": CountEntropies(buf, testBlockCount),
	} {
		testutil.RequireSliceNearlyEqual(t, r.Entropies, want, tolerance)
		if r.BlockSize != testBlockSize || r.BlockCount != testBlockCount {
			t.Fatalf("%s: got size=%d count=%d", name, r.BlockSize, r.BlockCount)
		}
	}
}

func TestBlockEntropies_Zero(t *testing.T) {
	buf := testutil.Repeated(0x41, testBlockSize*testBlockCount)
	want := make([]float64, testBlockCount)

	for name, r := range map[string]Result{
		"by size":  BlockEntropies(buf, testBlockSize),
		"by count": CountEntropies(buf, testBlockCount),
	} {
		testutil.RequireSliceNearlyEqual(t, r.Entropies, want, tolerance)
		if r.BlockSize != testBlockSize || r.BlockCount != testBlockCount {
			t.Fatalf("%s: got size=%d count=%d", name, r.BlockSize, r.BlockCount)
		}
	}
}

func TestBlockEntropies_ShortBuffer(t *testing.T) {
	for _, n := range []int{0, 1, 100, MinBlockSize - 1} {
		buf := testutil.Ramp(n)
		for _, r := range []Result{
			BlockEntropies(buf, 0),
			BlockEntropies(buf, 16),
			CountEntropies(buf, 0),
			CountEntropies(buf, 3),
		} {
			if r.Entropies == nil || len(r.Entropies) != 0 {
				t.Fatalf("len %d: entropies = %v, want empty slice", n, r.Entropies)
			}
			if r.BlockSize != 0 || r.BlockCount != 0 {
				t.Fatalf("len %d: got size=%d count=%d, want 0, 0", n, r.BlockSize, r.BlockCount)
			}
		}
	}
}

func TestBlockEntropies_MinimumSize(t *testing.T) {
	buf := testutil.Ramp(testBlockSize * testBlockCount)

	for name, r := range map[string]Result{
		"by size":  BlockEntropies(buf, 0),
		"by count": CountEntropies(buf, 0),
	} {
		if r.BlockCount <= 0 {
			t.Fatalf("%s: block count = %d, want > 0", name, r.BlockCount)
		}
		if r.BlockSize > len(buf) {
			t.Fatalf("%s: block size %d exceeds buffer", name, r.BlockSize)
		}
		if len(r.Entropies) != r.BlockCount {
			t.Fatalf("%s: %d entropies for %d blocks", name, len(r.Entropies), r.BlockCount)
		}
		for _, e := range r.Entropies {
			testutil.RequireNearlyEqual(t, e, MaxEntropy, tolerance)
		}
	}
}

func TestBlockEntropies_SmallRequestsEquivalent(t *testing.T) {
	buf := testutil.DeterministicBytes(11, 5000)
	want := BlockEntropies(buf, 0)

	for _, k := range []int{1, 2, 64, 128, 200, 255} {
		if got := BlockEntropies(buf, k); !reflect.DeepEqual(got, want) {
			t.Fatalf("BlockEntropies(buf, %d) differs from BlockEntropies(buf, 0)", k)
		}
	}
}

func TestBlockEntropies_RemainderExcluded(t *testing.T) {
	buf := testutil.Concat(testutil.Ramp(512), testutil.Repeated(0, 200))
	r := BlockEntropies(buf, 256)

	if r.BlockCount != 2 || r.BlockSize != 256 {
		t.Fatalf("got size=%d count=%d, want 256, 2", r.BlockSize, r.BlockCount)
	}
	testutil.RequireSliceNearlyEqual(t, r.Entropies, []float64{8, 8}, tolerance)
}

func TestBlocks_MatchesPerBlockCalculate(t *testing.T) {
	buf := testutil.Concat(
		testutil.Repeated(0, 1024),
		testutil.DeterministicBytes(5, 3000),
		[]byte("MZ\x90\x00 this program cannot be run in DOS mode"),
	)
	p := PlanByCount(len(buf), 7)
	got := Blocks(buf, p)

	if len(got) != p.BlockCount {
		t.Fatalf("len = %d, want %d", len(got), p.BlockCount)
	}
	for i, e := range got {
		off := p.Offset(i)
		if want := Calculate(buf[off : off+p.BlockSize]); e != want {
			t.Fatalf("block %d: got %v, want %v", i, e, want)
		}
	}
}

func TestBlocks_EmptyPlan(t *testing.T) {
	got := Blocks(testutil.Ramp(1024), Plan{BlockSize: 256})
	if got == nil || len(got) != 0 {
		t.Fatalf("Blocks with zero count = %v, want empty slice", got)
	}
}

func TestBlockSeq(t *testing.T) {
	buf := testutil.Concat(testutil.Repeated(7, 512), testutil.Ramp(512))
	p := PlanBySize(len(buf), 256)
	want := Blocks(buf, p)

	var got []float64
	for i, e := range BlockSeq(buf, p) {
		if i != len(got) {
			t.Fatalf("index %d out of order", i)
		}
		got = append(got, e)
	}
	testutil.RequireSliceNearlyEqual(t, got, want, 0)
}

func TestBlockSeq_EarlyStop(t *testing.T) {
	buf := testutil.Ramp(256 * 10)
	p := PlanBySize(len(buf), 256)

	var visited int
	for i := range BlockSeq(buf, p) {
		visited++
		if i == 2 {
			break
		}
	}
	if visited != 3 {
		t.Fatalf("visited %d blocks, want 3", visited)
	}
}

func TestResultPlan(t *testing.T) {
	r := CountEntropies(testutil.Ramp(2048), 8)
	if got := r.Plan(); got != (Plan{256, 8}) {
		t.Fatalf("Plan = %+v, want {256 8}", got)
	}
}

func FuzzPlanByCount(f *testing.F) {
	f.Add(1000, 4)
	f.Add(2048, 8)
	f.Add(0, 0)
	f.Add(255, 1)

	f.Fuzz(func(t *testing.T, total, count int) {
		if total < 0 || total > 1<<30 {
			t.Skip()
		}
		p := PlanByCount(total, count)
		if p.BlockSize < MinBlockSize {
			t.Fatalf("PlanByCount(%d, %d): block size %d below floor", total, count, p.BlockSize)
		}
		if p.Covered() > total {
			t.Fatalf("PlanByCount(%d, %d): covers %d bytes", total, count, p.Covered())
		}
		if p.BlockCount != total/p.BlockSize {
			t.Fatalf("PlanByCount(%d, %d): count %d inconsistent with size %d", total, count, p.BlockCount, p.BlockSize)
		}
	})
}
