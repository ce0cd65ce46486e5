package itup

import (
	"github.com/cockroachdb/errors"

	"github.com/ssargent/indextuple/pkg/arena"
)

// Truncate builds a new tuple holding only the first keep attributes of
// src, with src's row reference. The header is recomputed for the shorter
// tuple; the access-method bit is not carried over. Asking for every
// attribute returns a copy.
func Truncate(s *Schema, src Tuple, keep int) (Tuple, error) {
	return TruncateIn(arena.Heap, s, src, keep)
}

// TruncateIn is Truncate with the buffer taken from a.
func TruncateIn(a arena.Allocator, s *Schema, src Tuple, keep int) (Tuple, error) {
	if keep < 0 || keep > s.NumAttrs() {
		return nil, errors.Wrapf(ErrAttrOutOfRange, "keeping %d of %d attributes", keep, s.NumAttrs())
	}
	if keep == s.NumAttrs() {
		return CopyIn(a, src)
	}

	var (
		values [MaxKeyAttributes]Datum
		isnull [MaxKeyAttributes]bool
	)
	if err := Deform(src, s, values[:keep], isnull[:keep]); err != nil {
		return nil, errors.Wrap(err, "decoding tuple to truncate")
	}
	return FormIn(a, s, src.RowRef(), values[:keep], isnull[:keep])
}
