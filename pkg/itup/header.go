package itup

import "encoding/binary"

const (
	// RowRefSize is the encoded width of a RowRef.
	RowRefSize = 6
	// HeaderSize is the fixed tuple header: row reference + info word.
	HeaderSize = RowRefSize + 2

	// MaxKeyAttributes bounds the attributes of an index schema and fixes
	// the width of the null bitmap.
	MaxKeyAttributes = 32
	// NullBitmapSize does not vary with the attribute count; the count is
	// never stored in the tuple.
	NullBitmapSize = (MaxKeyAttributes + 8 - 1) / 8

	// MaxAlign is the strictest scalar alignment. Attribute data and tuple
	// ends are aligned to it.
	MaxAlign = 8

	// MaxTupleSize is the largest size the info word can express.
	MaxTupleSize = int(SizeMask)
)

// Info is the 16-bit flags/size word of a tuple header.
//
//	bit 15:     has nulls
//	bit 14:     has variable-width attributes
//	bit 13:     reserved for the access method
//	bits 12-0:  tuple size in bytes
type Info uint16

// Masks over the Info word.
const (
	SizeMask       Info = 0x1FFF
	AMReservedMask Info = 0x2000
	VarWidthMask   Info = 0x4000
	NullMask       Info = 0x8000
)

func (i Info) Size() int { return int(i & SizeMask) }

func (i Info) HasNulls() bool { return i&NullMask != 0 }

func (i Info) HasVarWidths() bool { return i&VarWidthMask != 0 }

func (i Info) AMReserved() bool { return i&AMReservedMask != 0 }

// DataOffset returns where attribute data begins for a tuple carrying this
// info word. It is usable before the size bits are filled in.
func (i Info) DataOffset() int {
	if !i.HasNulls() {
		return maxAlign(HeaderSize)
	}
	return maxAlign(HeaderSize + NullBitmapSize)
}

// RowRef locates the data row an index tuple points at. The page storage
// layer assigns and interprets it; this package only carries it.
type RowRef struct {
	Block  uint32
	Offset uint16
}

// InvalidRowRef is a placeholder for tuples whose reference is fixed up
// after formation.
var InvalidRowRef = RowRef{Block: 0xFFFFFFFF, Offset: 0}

func (r RowRef) IsValid() bool { return r != InvalidRowRef }

func (r RowRef) encode(b []byte) {
	binary.LittleEndian.PutUint16(b[0:], uint16(r.Block>>16))
	binary.LittleEndian.PutUint16(b[2:], uint16(r.Block))
	binary.LittleEndian.PutUint16(b[4:], r.Offset)
}

func decodeRowRef(b []byte) RowRef {
	hi := binary.LittleEndian.Uint16(b[0:])
	lo := binary.LittleEndian.Uint16(b[2:])
	return RowRef{
		Block:  uint32(hi)<<16 | uint32(lo),
		Offset: binary.LittleEndian.Uint16(b[4:]),
	}
}

func alignUp(off, align int) int {
	return (off + align - 1) &^ (align - 1)
}

func maxAlign(off int) int { return alignUp(off, MaxAlign) }
