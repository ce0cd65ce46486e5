package itup

import (
	"github.com/cockroachdb/errors"

	"github.com/ssargent/indextuple/pkg/arena"
)

// Copy returns a byte-identical heap copy of t.
func Copy(t Tuple) (Tuple, error) {
	return CopyIn(arena.Heap, t)
}

// CopyIn is Copy with the buffer taken from a.
func CopyIn(a arena.Allocator, t Tuple) (Tuple, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	buf, err := a.Allocate(len(t))
	if err != nil {
		return nil, errors.Wrapf(err, "allocating %d byte tuple copy", len(t))
	}
	copy(buf, t)
	return Tuple(buf), nil
}
