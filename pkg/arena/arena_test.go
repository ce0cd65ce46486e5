package arena

import (
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeap_Allocate(t *testing.T) {
	buf, err := Heap.Allocate(24)
	require.NoError(t, err)
	assert.Len(t, buf, 24)
	assert.Equal(t, make([]byte, 24), buf)

	_, err = Heap.Allocate(-1)
	assert.True(t, errors.Is(err, ErrInvalidSize))
}

func TestArena_SmallAllocationsShareBlock(t *testing.T) {
	a := New(Options{BlockSize: 64})

	first, err := a.Allocate(9)
	require.NoError(t, err)
	second, err := a.Allocate(8)
	require.NoError(t, err)

	assert.Equal(t, 1, a.Blocks())
	assert.Equal(t, 17, a.Used())
	assert.Len(t, first, 9)
	assert.Equal(t, 9, cap(first), "buffer must be capped")

	// appending to the first buffer must not clobber the second
	first = append(first, 0xFF)
	second[0] = 0x11
	assert.Equal(t, byte(0xFF), first[9])
	assert.Equal(t, byte(0x11), second[0])
}

func TestArena_NewBlockWhenFull(t *testing.T) {
	a := New(Options{BlockSize: 64})
	for i := 0; i < 4; i++ {
		_, err := a.Allocate(16)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, a.Blocks())

	_, err := a.Allocate(16)
	require.NoError(t, err)
	assert.Equal(t, 2, a.Blocks())
}

func TestArena_LargeAllocationGetsOwnBlock(t *testing.T) {
	a := New(Options{BlockSize: 64})
	buf, err := a.Allocate(40)
	require.NoError(t, err)
	assert.Len(t, buf, 40)
	assert.Equal(t, 1, a.Blocks())

	small, err := a.Allocate(8)
	require.NoError(t, err)
	assert.Len(t, small, 8)
	assert.Equal(t, 2, a.Blocks())
}

func TestArena_Limit(t *testing.T) {
	a := New(Options{BlockSize: 64, Limit: 32})
	_, err := a.Allocate(16)
	require.NoError(t, err)
	_, err = a.Allocate(16)
	require.NoError(t, err)

	_, err = a.Allocate(1)
	assert.True(t, errors.Is(err, ErrExhausted), "got %v", err)
	assert.Equal(t, 32, a.Used())

	a.Reset()
	assert.Equal(t, 0, a.Used())
	assert.Equal(t, 0, a.Blocks())
	_, err = a.Allocate(16)
	assert.NoError(t, err)
}

func TestArena_InvalidSize(t *testing.T) {
	a := New(Options{})
	_, err := a.Allocate(-8)
	assert.True(t, errors.Is(err, ErrInvalidSize))
	assert.Equal(t, 0, a.Used())
}

func TestArena_BuffersAreZeroedAfterReset(t *testing.T) {
	a := New(Options{BlockSize: 64})
	buf, err := a.Allocate(16)
	require.NoError(t, err)
	for i := range buf {
		buf[i] = 0xAA
	}

	a.Reset()
	buf, err = a.Allocate(16)
	require.NoError(t, err)
	assert.Equal(t, make([]byte, 16), buf)
}

func TestArena_ConcurrentAllocate(t *testing.T) {
	a := New(Options{BlockSize: 256})
	const workers, each = 8, 50

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(tag byte) {
			defer wg.Done()
			for i := 0; i < each; i++ {
				buf, err := a.Allocate(8)
				if !assert.NoError(t, err) {
					return
				}
				for j := range buf {
					buf[j] = tag
				}
				for j := range buf {
					assert.Equal(t, tag, buf[j])
				}
			}
		}(byte(w + 1))
	}
	wg.Wait()

	assert.Equal(t, workers*each*8, a.Used())
}
