package itup

import (
	"github.com/cockroachdb/errors"

	"github.com/ssargent/indextuple/pkg/arena"
)

// Form encodes values for the first len(values) attributes of s into a
// new heap-allocated tuple pointing at ref. isnull may be nil when no
// value is null.
func Form(s *Schema, ref RowRef, values []Datum, isnull []bool) (Tuple, error) {
	return FormIn(arena.Heap, s, ref, values, isnull)
}

// FormIn is Form with the buffer taken from a. A failed call returns no
// buffer.
func FormIn(a arena.Allocator, s *Schema, ref RowRef, values []Datum, isnull []bool) (Tuple, error) {
	l, err := ComputeLayout(s, values, isnull)
	if err != nil {
		return nil, err
	}
	buf, err := a.Allocate(l.Size)
	if err != nil {
		return nil, errors.Wrapf(err, "allocating %d byte tuple", l.Size)
	}
	if len(buf) != l.Size {
		return nil, errors.AssertionFailedf("allocator returned %d bytes, asked for %d", len(buf), l.Size)
	}
	// Arenas hand out zeroed memory, but padding must be zero for readers
	// to find short length headers, so do not rely on it.
	clear(buf)

	t := Tuple(buf)
	ref.encode(t)
	t.setInfo(l.info())

	var bitmap []byte
	if l.HasNulls {
		bitmap = t.nullBitmap()
	}
	data := t[l.DataOffset:]
	off := 0
	for i, d := range values {
		if nullAt(isnull, i) {
			setAttNull(bitmap, i)
			continue
		}
		att := &s.attrs[i]
		start, n := place(att, d, off)
		putAttr(data[start:start+n], att, d)
		off = start + n
	}
	return t, nil
}
