package mmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapAnon(t *testing.T) {
	m, err := MapAnon(100)
	require.NoError(t, err)
	defer m.Close()

	data := m.Bytes()
	require.Len(t, data, PageSize(), "size is rounded up to a page")

	for i, b := range data {
		if b != 0 {
			t.Fatalf("byte %d not zero", i)
		}
	}

	data[0] = 0xAB
	data[len(data)-1] = 0xCD
	assert.Equal(t, byte(0xAB), m.Bytes()[0])
	assert.Equal(t, byte(0xCD), m.Bytes()[PageSize()-1])
}

func TestMapAnon_InvalidSize(t *testing.T) {
	_, err := MapAnon(0)
	assert.ErrorIs(t, err, ErrInvalidSize)

	_, err = MapAnon(-5)
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestRoundToPage(t *testing.T) {
	page := PageSize()
	assert.Equal(t, page, RoundToPage(1))
	assert.Equal(t, page, RoundToPage(page))
	assert.Equal(t, 2*page, RoundToPage(page+1))
	assert.Equal(t, 0, RoundToPage(0))
}

func TestMapping_Advise(t *testing.T) {
	page := PageSize()
	m, err := MapAnon(4 * page)
	require.NoError(t, err)
	defer m.Close()

	require.NoError(t, m.AdviseRange(0, 4*page, AccessRandom))
	require.NoError(t, m.AdviseRange(1, 3*page, AccessSequential))

	// DontNeed drops whole pages past the offset; the partial first page survives.
	data := m.Bytes()
	data[page-1] = 7
	data[2*page] = 9
	require.NoError(t, m.AdviseRange(page-1, 3*page+1, AccessDontNeed))
	assert.Equal(t, byte(7), data[page-1])

	assert.ErrorIs(t, m.AdviseRange(-1, 1, AccessDefault), ErrOutOfBounds)
	assert.ErrorIs(t, m.AdviseRange(0, 5*page, AccessDefault), ErrOutOfBounds)
}

func TestMapping_AfterClose(t *testing.T) {
	m, err := MapAnon(1)
	require.NoError(t, err)

	require.NoError(t, m.Close())
	require.NoError(t, m.Close(), "close is idempotent")

	assert.Nil(t, m.Bytes())
	assert.ErrorIs(t, m.AdviseRange(0, 1, AccessRandom), ErrClosed)
}
