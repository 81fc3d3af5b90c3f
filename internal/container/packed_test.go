package container

import (
	"math/rand/v2"
	"slices"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/polyvec/internal/arena"
	"github.com/hupe1980/polyvec/internal/bitmap"
	"github.com/hupe1980/polyvec/internal/layout"
	"github.com/hupe1980/polyvec/internal/view"
)

type runs = Packed[[]uint64, view.Run[uint64]]

func newRuns(t *testing.T, capacity int, opts ...arena.Option) *runs {
	t.Helper()
	a, err := arena.New(capacity, opts...)
	require.NoError(t, err)
	t.Cleanup(a.Free)
	return New[[]uint64, view.Run[uint64]](a, 0)
}

func raw(s []uint64) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*8)
}

func fp(s []uint64) int {
	return layout.Padded.Reserve(len(s)*8, 8)
}

func push(p *runs, s ...uint64) {
	p.Push(raw(s), fp(s), view.Run[uint64]{Count: len(s)})
}

func insert(p *runs, i int, s ...uint64) {
	p.Insert(i, raw(s), fp(s), view.Run[uint64]{Count: len(s)})
}

func collect(p *runs) [][]uint64 {
	out := [][]uint64{}
	for _, r := range p.All() {
		out = append(out, slices.Clone(r))
	}
	return out
}

// assertPacked checks that displacements start at zero, increase strictly
// and that the last footprint ends at the arena length.
func assertPacked(t *testing.T, p *runs) {
	t.Helper()
	end := 0
	for i := 0; i < p.Len(); i++ {
		assert.Equal(t, end, p.Displacement(i), "element %d", i)
		assert.Positive(t, p.Footprint(i))
		end += p.Footprint(i)
	}
	assert.Equal(t, end, p.Arena().Len())
}

func TestPacked_Push(t *testing.T) {
	p := newRuns(t, 0)
	push(p, 1, 2, 3)
	push(p, 4)
	push(p)

	assert.Equal(t, 3, p.Len())
	assert.Equal(t, [][]uint64{{1, 2, 3}, {4}, {}}, collect(p))
	assertPacked(t, p)

	// Padded footprints reserve size plus alignment.
	assert.Equal(t, 32, p.Footprint(0))
	assert.Equal(t, 16, p.Footprint(1))
	assert.Equal(t, 8, p.Footprint(2))
}

func TestPacked_PushSurvivesRelocation(t *testing.T) {
	p := newRuns(t, 0)
	for i := range 200 {
		push(p, uint64(i), uint64(i)*2)
	}
	require.Positive(t, p.Arena().Stats().Relocations)

	for i, r := range p.All() {
		assert.Equal(t, []uint64{uint64(i), uint64(i) * 2}, r)
	}
	assertPacked(t, p)
}

func TestPacked_PushWithinCapacity(t *testing.T) {
	p := newRuns(t, 48)

	assert.True(t, p.PushWithinCapacity(raw([]uint64{1}), 16, view.Run[uint64]{Count: 1}))
	assert.True(t, p.PushWithinCapacity(raw([]uint64{2, 3}), 24, view.Run[uint64]{Count: 2}))
	assert.False(t, p.PushWithinCapacity(raw([]uint64{4}), 16, view.Run[uint64]{Count: 1}))

	assert.Equal(t, 2, p.Len())
	assert.Equal(t, 40, p.Arena().Len())
	assert.Equal(t, 48, p.Arena().Cap())
	assert.Equal(t, uint64(1), p.Arena().Stats().Relocations)
}

func TestPacked_Insert(t *testing.T) {
	p := newRuns(t, 0)
	push(p, 1)
	push(p, 3, 3, 3)

	insert(p, 1, 2, 2)
	insert(p, 0, 0)
	insert(p, 4, 4)

	assert.Equal(t, [][]uint64{{0}, {1}, {2, 2}, {3, 3, 3}, {4}}, collect(p))
	assertPacked(t, p)
}

func TestPacked_InsertOutOfRange(t *testing.T) {
	p := newRuns(t, 0)
	push(p, 1)

	assert.PanicsWithError(t, "polyvec: insertion index (is 2) should be <= len (is 1)", func() {
		insert(p, 2, 9)
	})
	assert.Panics(t, func() { insert(p, -1, 9) })
	assert.Equal(t, [][]uint64{{1}}, collect(p))
}

func TestPacked_Remove(t *testing.T) {
	p := newRuns(t, 0)
	push(p, 1)
	push(p, 2, 2)
	push(p, 3, 3, 3)

	released := p.Remove(1)
	assert.Equal(t, 24, released)
	assert.Equal(t, [][]uint64{{1}, {3, 3, 3}}, collect(p))
	assertPacked(t, p)

	p.Remove(1)
	p.Remove(0)
	assert.Equal(t, 0, p.Len())
	assert.Equal(t, 0, p.Arena().Len())

	assert.PanicsWithError(t, "polyvec: removal index (is 0) should be < len (is 0)", func() {
		p.Remove(0)
	})
}

func TestPacked_RemoveSet(t *testing.T) {
	p := newRuns(t, 0)
	for i := range 10 {
		s := make([]uint64, i%3+1)
		for j := range s {
			s[j] = uint64(i)
		}
		push(p, s...)
	}

	set := bitmap.New()
	for _, i := range []uint32{0, 3, 4, 9} {
		set.Add(i)
	}
	assert.Equal(t, 4, p.RemoveSet(set))
	require.Equal(t, 6, p.Len())

	want := []uint64{1, 2, 5, 6, 7, 8}
	for i, r := range p.All() {
		require.NotEmpty(t, r)
		assert.Equal(t, want[i], r[0])
		assert.Len(t, r, int(want[i])%3+1)
	}
	assertPacked(t, p)

	assert.Equal(t, 0, p.RemoveSet(bitmap.New()))

	out := bitmap.New()
	out.Add(6)
	assert.Panics(t, func() { p.RemoveSet(out) })
}

func TestPacked_Truncate(t *testing.T) {
	p := newRuns(t, 0)
	push(p, 1)
	push(p, 2, 2)
	push(p, 3, 3, 3)
	capBefore := p.Arena().Cap()

	p.Truncate(5)
	assert.Equal(t, 3, p.Len())

	p.Truncate(2)
	assert.Equal(t, [][]uint64{{1}, {2, 2}}, collect(p))
	assertPacked(t, p)

	p.Truncate(0)
	assert.Equal(t, 0, p.Len())
	assert.Equal(t, 0, p.Arena().Len())
	assert.Equal(t, capBefore, p.Arena().Cap())
}

func TestPacked_At(t *testing.T) {
	p := newRuns(t, 0)
	push(p, 7, 8)

	r := p.At(0)
	r[1] = 9
	assert.Equal(t, []uint64{7, 9}, p.At(0))

	assert.PanicsWithError(t, "polyvec: index out of range [1] with length 1", func() { p.At(1) })
}

func TestPacked_Iterators(t *testing.T) {
	p := newRuns(t, 0)
	for i := range 5 {
		push(p, uint64(i))
	}

	var forward []uint64
	for r := range p.Values() {
		forward = append(forward, r[0])
		if len(forward) == 3 {
			break
		}
	}
	assert.Equal(t, []uint64{0, 1, 2}, forward)

	var backward []int
	for i, r := range p.Backward() {
		backward = append(backward, i)
		assert.Equal(t, uint64(i), r[0])
	}
	assert.Equal(t, []int{4, 3, 2, 1, 0}, backward)
}

func TestPacked_OffHeap(t *testing.T) {
	p := newRuns(t, 0, arena.WithOffHeap())
	for i := range 1000 {
		push(p, uint64(i))
	}
	insert(p, 500, 12345)
	p.Remove(0)

	assert.Equal(t, 1000, p.Len())
	assert.Equal(t, []uint64{12345}, p.At(499))
	assert.Equal(t, []uint64{999}, p.At(999))
	assertPacked(t, p)
}

func TestPacked_MatchesReference(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	p := newRuns(t, 0)
	var ref [][]uint64

	for step := range 2000 {
		s := make([]uint64, rng.IntN(5))
		for j := range s {
			s[j] = uint64(step)
		}

		switch op := rng.IntN(10); {
		case op < 4:
			push(p, s...)
			ref = append(ref, s)
		case op < 7:
			i := rng.IntN(len(ref) + 1)
			insert(p, i, s...)
			ref = append(ref[:i], append([][]uint64{s}, ref[i:]...)...)
		case op < 9 && len(ref) > 0:
			i := rng.IntN(len(ref))
			p.Remove(i)
			ref = append(ref[:i], ref[i+1:]...)
		case len(ref) > 0:
			n := rng.IntN(len(ref) + 1)
			p.Truncate(n)
			ref = ref[:n]
		}
	}

	if ref == nil {
		ref = [][]uint64{}
	}
	assert.Equal(t, ref, collect(p))
	assertPacked(t, p)
}

func TestPacked_SourceAliasesContainer(t *testing.T) {
	t.Run("insert shifts the source", func(t *testing.T) {
		p := newRuns(t, 0)
		push(p, 1, 1)
		push(p, 2, 2)

		own := p.At(1)
		p.Insert(0, raw(own), fp(own), view.Run[uint64]{Count: len(own)})
		assert.Equal(t, [][]uint64{{2, 2}, {1, 1}, {2, 2}}, collect(p))
		assertPacked(t, p)
	})

	for name, opts := range map[string][]arena.Option{"heap": nil, "off-heap": {arena.WithOffHeap()}} {
		t.Run("push across relocation/"+name, func(t *testing.T) {
			p := newRuns(t, 0, opts...)
			push(p, 7, 8, 9)
			relocations := p.Arena().Stats().Relocations

			for p.Arena().Stats().Relocations == relocations {
				own := p.At(0)
				p.Push(raw(own), fp(own), view.Run[uint64]{Count: len(own)})
			}

			for i, r := range p.All() {
				require.Equal(t, []uint64{7, 8, 9}, r, "element %d", i)
			}
			assertPacked(t, p)
		})
	}
}
