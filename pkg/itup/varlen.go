package itup

import (
	"encoding/binary"

	"github.com/cockroachdb/errors"
)

// Variable-width values are stored with a length header that counts
// itself. Short values get a one byte header with the low bit set and are
// never padded; longer values get a four byte header with the low two bits
// clear, placed at the attribute's alignment. Padding is always zero, so a
// reader at an unaligned position can tell a short header from padding.
const (
	shortHeaderSize = 1
	longHeaderSize  = 4
	maxShortPayload = 0x7F - shortHeaderSize
)

func varlenSize(payload int) int {
	if payload <= maxShortPayload {
		return shortHeaderSize + payload
	}
	return longHeaderSize + payload
}

func varlenIsShort(payload int) bool { return payload <= maxShortPayload }

// putVarlen writes payload with its header at b[0:] and returns the number
// of bytes written.
func putVarlen(b []byte, payload []byte) int {
	n := varlenSize(len(payload))
	if varlenIsShort(len(payload)) {
		b[0] = byte(n<<1 | 1)
		copy(b[shortHeaderSize:], payload)
		return n
	}
	binary.LittleEndian.PutUint32(b, uint32(n)<<2)
	copy(b[longHeaderSize:], payload)
	return n
}

// readVarlen decodes the value starting at t[pos] and returns its payload
// and total encoded size.
func readVarlen(t Tuple, pos int) ([]byte, int, error) {
	if pos >= len(t) {
		return nil, 0, errors.Wrapf(ErrMalformedTuple, "variable-width header at %d past tuple end %d", pos, len(t))
	}
	var total, hdr int
	if t[pos]&1 == 1 {
		total, hdr = int(t[pos]>>1), shortHeaderSize
	} else {
		if pos+longHeaderSize > len(t) {
			return nil, 0, errors.Wrapf(ErrMalformedTuple, "truncated length header at %d", pos)
		}
		word := binary.LittleEndian.Uint32(t[pos:])
		if word&3 != 0 {
			return nil, 0, errors.Wrapf(ErrMalformedTuple, "bad length header %#x at %d", word, pos)
		}
		total, hdr = int(word>>2), longHeaderSize
	}
	if total < hdr || pos+total > len(t) {
		return nil, 0, errors.Wrapf(ErrMalformedTuple, "variable-width value of %d bytes at %d overruns tuple of %d", total, pos, len(t))
	}
	return t[pos+hdr : pos+total : pos+total], total, nil
}
