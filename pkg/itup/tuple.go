package itup

import (
	"encoding/binary"

	"github.com/cockroachdb/errors"
)

// Tuple is an encoded index tuple. The slice length always equals the size
// recorded in its header. Tuples are immutable once formed, except for the
// row reference and the reserved bit, which the owning buffer's holder may
// fix up before publishing the tuple.
type Tuple []byte

// Info returns the header info word. The tuple must be at least
// HeaderSize bytes long.
func (t Tuple) Info() Info {
	return Info(binary.LittleEndian.Uint16(t[RowRefSize:]))
}

func (t Tuple) setInfo(i Info) {
	binary.LittleEndian.PutUint16(t[RowRefSize:], uint16(i))
}

func (t Tuple) Size() int { return t.Info().Size() }

func (t Tuple) HasNulls() bool { return t.Info().HasNulls() }

func (t Tuple) HasVarWidths() bool { return t.Info().HasVarWidths() }

func (t Tuple) DataOffset() int { return t.Info().DataOffset() }

func (t Tuple) RowRef() RowRef { return decodeRowRef(t) }

// SetRowRef overwrites the row reference in place.
func (t Tuple) SetRowRef(r RowRef) { r.encode(t) }

func (t Tuple) AMReserved() bool { return t.Info().AMReserved() }

// SetAMReserved sets or clears bit 13 of the info word. The bit has no
// meaning to this package.
func (t Tuple) SetAMReserved(on bool) {
	info := t.Info()
	if on {
		info |= AMReservedMask
	} else {
		info &^= AMReservedMask
	}
	t.setInfo(info)
}

// Validate checks that the header is consistent with the buffer. Every
// reader in this package calls it before touching attribute data.
func (t Tuple) Validate() error {
	if len(t) < HeaderSize {
		return errors.Wrapf(ErrMalformedTuple, "%d bytes is shorter than the %d byte header", len(t), HeaderSize)
	}
	info := t.Info()
	if info.Size() != len(t) {
		return errors.Wrapf(ErrMalformedTuple, "header size %d does not match buffer length %d", info.Size(), len(t))
	}
	if info.DataOffset() > len(t) {
		return errors.Wrapf(ErrMalformedTuple, "data offset %d beyond tuple end %d", info.DataOffset(), len(t))
	}
	return nil
}

func (t Tuple) nullBitmap() []byte {
	return t[HeaderSize : HeaderSize+NullBitmapSize]
}

func attIsNull(bitmap []byte, i int) bool {
	return bitmap[i>>3]&(1<<(uint(i)&7)) != 0
}

func setAttNull(bitmap []byte, i int) {
	bitmap[i>>3] |= 1 << (uint(i) & 7)
}
