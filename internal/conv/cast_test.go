package conv

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntToUint32(t *testing.T) {
	t.Run("valid zero", func(t *testing.T) {
		got, err := IntToUint32(0)
		assert.NoError(t, err)
		assert.Equal(t, uint32(0), got)
	})

	t.Run("valid positive", func(t *testing.T) {
		got, err := IntToUint32(123)
		assert.NoError(t, err)
		assert.Equal(t, uint32(123), got)
	})

	t.Run("invalid negative", func(t *testing.T) {
		_, err := IntToUint32(-1)
		assert.Error(t, err)
	})

	t.Run("valid max int32", func(t *testing.T) {
		got, err := IntToUint32(math.MaxInt32)
		assert.NoError(t, err)
		assert.Equal(t, uint32(math.MaxInt32), got)
	})
}

func TestUint32ToInt(t *testing.T) {
	got, err := Uint32ToInt(math.MaxUint16)
	assert.NoError(t, err)
	assert.Equal(t, math.MaxUint16, got)
}

func TestIntToUint64(t *testing.T) {
	t.Run("valid max int", func(t *testing.T) {
		got, err := IntToUint64(math.MaxInt)
		assert.NoError(t, err)
		assert.Equal(t, uint64(math.MaxInt), got)
	})

	t.Run("invalid negative", func(t *testing.T) {
		_, err := IntToUint64(-1)
		assert.Error(t, err)
	})
}

func TestIntToInt64(t *testing.T) {
	got, err := IntToInt64(4096)
	assert.NoError(t, err)
	assert.Equal(t, int64(4096), got)

	_, err = IntToInt64(-8)
	assert.Error(t, err)
}

func TestAddInt(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		got, err := AddInt(40, 2)
		assert.NoError(t, err)
		assert.Equal(t, 42, got)
	})

	t.Run("overflow", func(t *testing.T) {
		_, err := AddInt(math.MaxInt, 1)
		assert.Error(t, err)
	})

	t.Run("negative operand", func(t *testing.T) {
		_, err := AddInt(-1, 1)
		assert.Error(t, err)
	})
}

func TestMulInt(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		got, err := MulInt(16, 4)
		assert.NoError(t, err)
		assert.Equal(t, 64, got)
	})

	t.Run("zero", func(t *testing.T) {
		got, err := MulInt(0, math.MaxInt)
		assert.NoError(t, err)
		assert.Equal(t, 0, got)
	})

	t.Run("overflow", func(t *testing.T) {
		_, err := MulInt(math.MaxInt/2, 3)
		assert.Error(t, err)
	})
}
