// Package arena provides the buffers index tuples are formed into.
//
// Allocators hand out zeroed byte slices that the caller owns outright.
// Heap allocates each buffer independently; Arena carves buffers out of
// larger blocks so that a batch of short-lived tuples can be released
// together with Reset.
package arena

import (
	"sync"

	"github.com/cockroachdb/errors"
)

var (
	// ErrExhausted is returned when an Arena's byte limit would be exceeded.
	ErrExhausted = errors.New("arena: exhausted")
	// ErrInvalidSize is returned for negative allocation sizes.
	ErrInvalidSize = errors.New("arena: invalid allocation size")
)

// Allocator returns a zeroed buffer of exactly size bytes.
type Allocator interface {
	Allocate(size int) ([]byte, error)
}

type heapAllocator struct{}

// Heap allocates every buffer with make.
var Heap Allocator = heapAllocator{}

func (heapAllocator) Allocate(size int) ([]byte, error) {
	if size < 0 {
		return nil, errors.Wrapf(ErrInvalidSize, "%d", size)
	}
	return make([]byte, size), nil
}

// DefaultBlockSize matches the page size tuples are usually destined for.
const DefaultBlockSize = 8192

// Options configures an Arena.
type Options struct {
	BlockSize int // bytes per block; DefaultBlockSize if zero
	Limit     int // total bytes the arena may hand out; unlimited if zero
}

// Arena is a bump allocator. It is safe for concurrent use.
type Arena struct {
	mu        sync.Mutex
	blockSize int
	limit     int
	used      int
	blocks    int
	cur       []byte
}

// New creates an empty Arena.
func New(opts Options) *Arena {
	if opts.BlockSize <= 0 {
		opts.BlockSize = DefaultBlockSize
	}
	return &Arena{blockSize: opts.BlockSize, limit: opts.Limit}
}

// Allocate returns size zeroed bytes. Buffers are 8-byte aligned within
// their block and capped so that appending to one never reaches another.
func (a *Arena) Allocate(size int) ([]byte, error) {
	if size < 0 {
		return nil, errors.Wrapf(ErrInvalidSize, "%d", size)
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.limit > 0 && a.used+size > a.limit {
		return nil, errors.Wrapf(ErrExhausted, "allocating %d bytes with %d of %d in use", size, a.used, a.limit)
	}
	a.used += size

	if size > a.blockSize/4 {
		// Large requests get their own block so they do not waste the
		// remainder of the current one.
		a.blocks++
		return make([]byte, size), nil
	}
	rounded := (size + 7) &^ 7
	if len(a.cur) < rounded {
		a.cur = make([]byte, a.blockSize)
		a.blocks++
	}
	buf := a.cur[:size:size]
	a.cur = a.cur[rounded:]
	return buf, nil
}

// Reset forgets every block. Buffers handed out earlier must no longer be
// used by the caller.
func (a *Arena) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.used = 0
	a.blocks = 0
	a.cur = nil
}

// Used returns the bytes handed out since creation or the last Reset.
func (a *Arena) Used() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.used
}

// Blocks returns the number of blocks allocated since the last Reset.
func (a *Arena) Blocks() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.blocks
}
