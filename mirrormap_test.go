package mirrormap

import (
	"context"
	"io/fs"
	"math"
	"os"
	"runtime"
	"testing"
	"time"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/mirrormap/internal/shm"
)

func newTestMirror(t *testing.T, length int, optFns ...Option) *Mirror {
	t.Helper()

	optFns = append([]Option{WithDir(t.TempDir())}, optFns...)
	m, err := New(length, optFns...)
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })
	return m
}

func TestNew_InvalidLength(t *testing.T) {
	page := os.Getpagesize()

	for _, length := range []int{0, -page, 1, page - 1, page + 1} {
		_, err := New(length)
		require.Error(t, err, "length %d", length)

		var il *ErrInvalidLength
		require.ErrorAs(t, err, &il, "length %d", length)
		assert.Equal(t, length, il.Length)
		assert.Equal(t, page, il.PageSize)
	}
}

func TestMirror_Adjacency(t *testing.T) {
	page := os.Getpagesize()
	m := newTestMirror(t, page)

	view, alias := m.View(), m.Alias()
	require.Len(t, view, page)
	require.Len(t, alias, page)

	base := uintptr(unsafe.Pointer(&view[0]))
	second := uintptr(unsafe.Pointer(&alias[0]))
	assert.Equal(t, uintptr(page), second-base)

	combined := m.Combined()
	require.Len(t, combined, 2*page)
	assert.Equal(t, base, uintptr(unsafe.Pointer(&combined[0])))

	assert.Equal(t, page, m.Len())
	assert.Equal(t, 2*page, m.Size())
	assert.Equal(t, BackingNamed, m.Backing())
	assert.NotEmpty(t, m.Name())
}

func TestMirror_SymmetricAliasing(t *testing.T) {
	page := os.Getpagesize()
	m := newTestMirror(t, page)

	view, alias := m.View(), m.Alias()

	for _, off := range []int{0, 1, page / 2, page - 1} {
		view[off] = 'v'
		assert.Equal(t, byte('v'), alias[off], "offset %d", off)

		alias[off] = 'a'
		assert.Equal(t, byte('a'), view[off], "offset %d", off)

		// Reads are idempotent without intervening writes
		assert.Equal(t, byte('a'), view[off])
		assert.Equal(t, byte('a'), alias[off])
	}
}

func TestMirror_SeamBehavior(t *testing.T) {
	page := os.Getpagesize()
	m := newTestMirror(t, page)

	view := m.View()
	combined := m.Combined()

	// A write at the end of the view does not bleed into its start
	view[page-1] = 'q'
	assert.Equal(t, byte(0), view[0])

	// But it is aliased across the seam of the combined span
	assert.Equal(t, byte('q'), combined[page-1])
	assert.Equal(t, byte('q'), combined[2*page-1])
}

func TestMirror_FreshObjectZeroFilled(t *testing.T) {
	if 32768%os.Getpagesize() != 0 {
		t.Skipf("page size %d does not divide 32768", os.Getpagesize())
	}

	m := newTestMirror(t, 32768)
	view, alias := m.View(), m.Alias()

	assert.Equal(t, byte(0x00), view[2])
	assert.Equal(t, byte(0x00), alias[2])

	view[2] = 'A'
	assert.Equal(t, byte(0x41), view[2])
	assert.Equal(t, byte(0x41), alias[2])

	alias[2] = 'M'
	assert.Equal(t, byte(0x4D), view[2])
	assert.Equal(t, byte(0x4D), alias[2])
}

func TestMirror_NameCollision(t *testing.T) {
	page := os.Getpagesize()
	dir := t.TempDir()

	// Occupy the name the way a half-established peer would, before the
	// unlink step has run.
	obj, err := shm.Create(shm.Config{Name: "occupied", Dir: dir})
	require.NoError(t, err)
	defer obj.Close()

	_, err = New(page, WithName("occupied"), WithDir(dir))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrObjectCreate)
	assert.ErrorIs(t, err, fs.ErrExist)

	// Once the name is free the same call succeeds
	require.NoError(t, obj.Unlink())
	m, err := New(page, WithName("occupied"), WithDir(dir))
	require.NoError(t, err)
	require.NoError(t, m.Close())
}

func TestMirror_NameUnlinkedAfterEstablish(t *testing.T) {
	page := os.Getpagesize()
	dir := t.TempDir()

	m, err := New(page, WithName("gone"), WithDir(dir))
	require.NoError(t, err)
	defer m.Close()

	// The name disappears during establish; the storage stays mapped.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	m.View()[0] = 1
	assert.Equal(t, byte(1), m.Alias()[0])
}

func TestMirror_CloseReleasesEverything(t *testing.T) {
	page := os.Getpagesize()
	m := newTestMirror(t, page)

	require.False(t, m.Closed())
	require.NoError(t, m.Close())
	assert.True(t, m.Closed())

	assert.Nil(t, m.View())
	assert.Nil(t, m.Alias())
	assert.Nil(t, m.Combined())
	assert.ErrorIs(t, m.Advise(AccessRandom), ErrClosed)
	assert.ErrorIs(t, m.Wipe(context.Background()), ErrClosed)

	// Close is idempotent
	require.NoError(t, m.Close())
}

func TestMirror_Advise(t *testing.T) {
	page := os.Getpagesize()
	m := newTestMirror(t, page)

	for _, pattern := range []AccessPattern{
		AccessDefault, AccessSequential, AccessRandom, AccessWillNeed,
	} {
		require.NoError(t, m.Advise(pattern))
	}
}

func TestMirror_Wipe(t *testing.T) {
	page := os.Getpagesize()
	m := newTestMirror(t, page)

	view, alias := m.View(), m.Alias()
	for i := range view {
		view[i] = 0xAB
	}

	require.NoError(t, m.Wipe(context.Background()))

	for i := range alias {
		require.Equal(t, byte(0), alias[i], "offset %d", i)
	}
}

func TestMirror_WipeRateLimited(t *testing.T) {
	page := os.Getpagesize()

	rc := NewResourceController(ResourceConfig{WipeBytesPerSec: 1})
	m := newTestMirror(t, page, WithResourceController(rc))

	// Rate 1 B/s cannot zero a page within the deadline
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.Error(t, m.Wipe(ctx))
}

func TestMirror_MemoryBudget(t *testing.T) {
	page := os.Getpagesize()
	dir := t.TempDir()

	rc := NewResourceController(ResourceConfig{MemoryLimitBytes: int64(3 * page)})

	first, err := New(page, WithDir(dir), WithResourceController(rc))
	require.NoError(t, err)
	assert.Equal(t, int64(2*page), rc.MemoryUsage())

	// Only one page of budget left; the next mirror needs two
	_, err = New(page, WithDir(dir), WithResourceController(rc))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrReserve)
	assert.ErrorIs(t, err, ErrMemoryLimitExceeded)

	// A failed establish must not leak budget
	assert.Equal(t, int64(2*page), rc.MemoryUsage())

	require.NoError(t, first.Close())
	assert.Equal(t, int64(0), rc.MemoryUsage())

	second, err := New(page, WithDir(dir), WithResourceController(rc))
	require.NoError(t, err)
	require.NoError(t, second.Close())
}

func TestMirror_MemfdBacking(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("memfd_create is Linux-only")
	}

	page := os.Getpagesize()
	m, err := New(page, WithBacking(BackingMemfd))
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, BackingMemfd, m.Backing())

	m.View()[7] = 'x'
	assert.Equal(t, byte('x'), m.Alias()[7])
}

func TestMirror_Prefault(t *testing.T) {
	page := os.Getpagesize()
	m := newTestMirror(t, page, WithPrefault(true))

	m.View()[0] = 1
	assert.Equal(t, byte(1), m.Alias()[0])
}

func TestMirror_Metrics(t *testing.T) {
	page := os.Getpagesize()
	dir := t.TempDir()

	metrics := &BasicMetricsCollector{}

	m, err := New(page, WithDir(dir), WithMetricsCollector(metrics))
	require.NoError(t, err)
	require.NoError(t, m.Wipe(context.Background()))
	require.NoError(t, m.Close())

	// Establish failures are recorded too
	obj, err := shm.Create(shm.Config{Name: "dup", Dir: dir})
	require.NoError(t, err)
	defer obj.Close()
	defer obj.Unlink()

	_, err = New(page, WithName("dup"), WithDir(dir), WithMetricsCollector(metrics))
	require.Error(t, err)

	stats := metrics.GetStats()
	assert.Equal(t, int64(2), stats.MapCount)
	assert.Equal(t, int64(1), stats.MapErrors)
	assert.Equal(t, int64(1), stats.ReleaseCount)
	assert.Equal(t, int64(1), stats.WipeCount)
	assert.Equal(t, int64(page), stats.WipeBytes)
}

func TestMirror_BudgetFailureBeforeCreate(t *testing.T) {
	page := os.Getpagesize()
	dir := t.TempDir()

	rc := NewResourceController(ResourceConfig{MemoryLimitBytes: 1})

	// Fails before the object is created
	_, err := New(page, WithName("ghost"), WithDir(dir), WithResourceController(rc))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMemoryLimitExceeded)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestMirror_RollbackOnResizeFailure(t *testing.T) {
	if math.MaxInt != math.MaxInt64 {
		t.Skip("needs a 64-bit address space")
	}

	page := os.Getpagesize()
	dir := t.TempDir()

	// A page-aligned length no filesystem can hold
	length := math.MaxInt / 4 / page * page

	_, err := New(length, WithName("doomed"), WithDir(dir))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrObjectResize)

	// The failed attempt unwound its name
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
