package register

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testLock      = 3
	testProtected = 1
)

func newTestFile() *File {
	return NewFile(4, WithLock(testLock, 0x59, 0x16, 0x88), WithProtected(testProtected))
}

func TestFileProtection(t *testing.T) {
	f := newTestFile()
	field := Field{Register: testProtected, Offset: 0, Width: 8}

	require.True(t, f.Locked())
	require.ErrorIs(t, f.Set(field, 1), ErrLocked)
	require.ErrorIs(t, f.Write(testProtected, 1), ErrLocked)
	assert.Zero(t, f.Read(testProtected))

	// Unprotected words are always writable.
	require.NoError(t, f.Set(Field{Register: 0, Width: 8}, 0x42))

	err := f.Protected(func() error {
		assert.False(t, f.Locked())
		assert.Equal(t, uint32(1), f.Read(testLock))
		return f.Set(field, 0x7F)
	})
	require.NoError(t, err)
	assert.True(t, f.Locked())
	assert.Equal(t, uint32(0x7F), f.Read(testProtected))
	assert.Zero(t, f.Read(testLock))
}

func TestFileProtectedRelocksOnError(t *testing.T) {
	f := newTestFile()
	sentinel := errors.New("boom")

	err := f.Protected(func() error { return sentinel })
	require.ErrorIs(t, err, sentinel)
	assert.True(t, f.Locked())
}

func TestFileProtectedDoesNotNest(t *testing.T) {
	f := newTestFile()
	err := f.Protected(func() error {
		return f.Protected(func() error { return nil })
	})
	require.ErrorIs(t, err, ErrNotReentrant)
	assert.True(t, f.Locked())
}

func TestFileObservers(t *testing.T) {
	f := newTestFile()

	var writes []Write
	cancel := f.Observe(func(w Write) { writes = append(writes, w) })

	require.NoError(t, f.Set(Field{Register: 0, Offset: 4, Width: 4}, 0xA))
	f.Poke(2, 0xFFFF)
	require.NoError(t, f.Protected(func() error { return f.Write(testProtected, 9) }))

	// Set, three unlock keys, protected write, relock.
	require.Len(t, writes, 6)
	assert.Equal(t, Write{Register: 0, Old: 0, New: 0xA0}, writes[0])
	assert.Equal(t, []uint32{0x59, 0x16, 0x88}, []uint32{writes[1].New, writes[2].New, writes[3].New})
	assert.Equal(t, Write{Register: testProtected, Old: 0, New: 9}, writes[4])
	assert.Equal(t, testLock, writes[5].Register)

	cancel()
	require.NoError(t, f.Write(0, 1))
	assert.Len(t, writes, 6)
}

func TestFileSnapshotIsCopy(t *testing.T) {
	f := NewFile(2)
	require.False(t, f.Locked())
	require.NoError(t, f.Write(1, 7))

	snap := f.Snapshot()
	snap[1] = 0
	assert.Equal(t, uint32(7), f.Read(1))
	assert.Equal(t, 2, f.Len())
}

func TestFileRejectsOverflowWithoutNotify(t *testing.T) {
	f := NewFile(1)
	notified := false
	f.Observe(func(Write) { notified = true })

	require.ErrorIs(t, f.Set(Field{Register: 0, Width: 2}, 4), ErrValueOutOfRange)
	require.ErrorIs(t, f.Write(5, 1), ErrNoRegister)
	assert.False(t, notified)
}
