package view

import (
	"fmt"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/polyvec/internal/layout"
)

type counter struct {
	N int64
}

func (c *counter) String() string { return fmt.Sprintf("counter(%d)", c.N) }
func (c *counter) Inc()           { c.N++ }

type incrementer interface {
	fmt.Stringer
	Inc()
}

type valueOnly struct{ X int32 }

func (v valueOnly) String() string { return "value" }

type withPointer struct{ P *int }

func (w *withPointer) String() string { return "ptr" }

func TestDispatchFor(t *testing.T) {
	d, err := DispatchFor[fmt.Stringer, counter]()
	require.NoError(t, err)
	assert.Equal(t, 8, d.Layout.Size)
	assert.Equal(t, 8, d.Layout.Align)

	t.Run("not an interface", func(t *testing.T) {
		_, err := DispatchFor[counter, counter]()
		var ute *layout.UnsupportedTypeError
		require.ErrorAs(t, err, &ute)
		assert.Contains(t, err.Error(), "must be an interface")
	})

	t.Run("pointer receiver required", func(t *testing.T) {
		// *valueOnly has String through the value method set, so it qualifies.
		_, err := DispatchFor[fmt.Stringer, valueOnly]()
		require.NoError(t, err)

		_, err = DispatchFor[incrementer, valueOnly]()
		var ute *layout.UnsupportedTypeError
		require.ErrorAs(t, err, &ute)
		assert.Contains(t, err.Error(), "does not implement")
	})

	t.Run("pointer-bearing type", func(t *testing.T) {
		_, err := DispatchFor[fmt.Stringer, withPointer]()
		var ute *layout.UnsupportedTypeError
		require.ErrorAs(t, err, &ute)
	})
}

func TestDispatch_Materialize(t *testing.T) {
	d, err := DispatchFor[incrementer, counter]()
	require.NoError(t, err)

	buf := make([]int64, 2)
	buf[1] = 41

	v := d.Materialize(unsafe.Pointer(&buf[1]))
	assert.Equal(t, "counter(41)", v.String())

	// Mutation through the interface lands in the backing bytes.
	v.Inc()
	assert.Equal(t, int64(42), buf[1])
	assert.Equal(t, int64(0), buf[0])

	c, ok := v.(*counter)
	require.True(t, ok)
	assert.Equal(t, unsafe.Pointer(&buf[1]), unsafe.Pointer(c))
}

func TestRun_Materialize(t *testing.T) {
	buf := []uint32{1, 2, 3, 4, 5}
	r := Run[uint32]{Count: 3}

	s := r.Materialize(unsafe.Pointer(&buf[1]))
	assert.Equal(t, []uint32{2, 3, 4}, s)
	assert.Equal(t, 3, cap(s))

	_ = append(s, 99)
	assert.Equal(t, uint32(5), buf[4], "append must not overwrite the following bytes")

	empty := Run[uint32]{}.Materialize(unsafe.Pointer(&buf[0]))
	assert.Empty(t, empty)
}

func TestDescriptor_Interface(t *testing.T) {
	var _ Descriptor[fmt.Stringer] = Dispatch[fmt.Stringer]{}
	var _ Descriptor[[]byte] = Run[byte]{}
}
