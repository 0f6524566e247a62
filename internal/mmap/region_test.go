package mmap

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegion_MirroredHalves(t *testing.T) {
	page := os.Getpagesize()
	f := newBackingFile(t, page)

	m, err := Reserve(2 * page)
	require.NoError(t, err)
	defer m.Close()

	require.NoError(t, m.Overlay(0, page, int(f.Fd()), false))
	require.NoError(t, m.Overlay(page, page, int(f.Fd()), false))

	lo, err := m.Region(0, page)
	require.NoError(t, err)
	hi, err := m.Region(page, page)
	require.NoError(t, err)

	assert.Equal(t, 0, lo.Offset())
	assert.Equal(t, page, hi.Offset())
	assert.Len(t, lo.Bytes(), page)
	assert.Len(t, hi.Bytes(), page)

	// Both regions alias the same object
	lo.Bytes()[5] = 'a'
	assert.Equal(t, byte('a'), hi.Bytes()[5])
	hi.Bytes()[page-1] = 'z'
	assert.Equal(t, byte('z'), lo.Bytes()[page-1])

	// Appending to a view must not clobber the sibling
	grown := append(lo.Bytes(), 0xFF)
	assert.NotEqual(t, byte(0xFF), hi.Bytes()[0])
	_ = grown

	require.NoError(t, lo.Advise(AccessRandom))
}

func TestRegion_Bounds(t *testing.T) {
	page := os.Getpagesize()
	f := newBackingFile(t, page)

	m, err := Reserve(page)
	require.NoError(t, err)
	defer m.Close()

	require.NoError(t, m.Overlay(0, page, int(f.Fd()), false))

	_, err = m.Region(-1, 0)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	_, err = m.Region(0, -1)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	_, err = m.Region(1, page)
	assert.ErrorIs(t, err, ErrOutOfBounds)

	r, err := m.Region(16, 16)
	require.NoError(t, err)
	assert.Equal(t, 16, r.Size())
}

func TestRegion_AfterClose(t *testing.T) {
	page := os.Getpagesize()
	f := newBackingFile(t, page)

	m, err := Reserve(page)
	require.NoError(t, err)
	require.NoError(t, m.Overlay(0, page, int(f.Fd()), false))

	r, err := m.Region(0, page)
	require.NoError(t, err)

	require.NoError(t, m.Close())

	assert.Nil(t, r.Bytes())
	assert.ErrorIs(t, r.Advise(AccessDefault), ErrClosed)

	_, err = m.Region(0, 1)
	assert.ErrorIs(t, err, ErrClosed)
}
