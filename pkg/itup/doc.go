// Package itup implements the binary format of index tuples: records that
// pair a reference to a data row with the key values an index orders by.
//
// # Tuple Format
//
// Every tuple starts with an 8 byte header:
//
//	[RowRef(6)][Info(2)]
//
// RowRef is the block number as two little-endian 16-bit halves (high
// first) followed by a little-endian 16-bit offset. Info packs three flags
// and the tuple size:
//
//	bit 15:     has nulls
//	bit 14:     has variable-width attributes
//	bit 13:     reserved for the access method
//	bits 12-0:  total size in bytes (at most 8191)
//
// When the has-nulls bit is set the header is followed by a 4 byte null
// bitmap, one bit per attribute (set means null) for up to
// MaxKeyAttributes attributes. Attribute data starts at the next 8 byte
// boundary: offset 8 without a bitmap, 16 with one.
//
// Attributes are packed in schema order. Null attributes take no space.
// Fixed-width attributes are aligned to their class (1, 2, 4 or 8 bytes)
// and stored little-endian. Variable-width attributes carry a length
// header: one byte for payloads up to 126 bytes, written without padding,
// or four bytes at the attribute's alignment for longer payloads. The
// total size is rounded up to 8 bytes.
//
// The number of attributes is not stored. Readers pass it in, which lets a
// truncated tuple be read with the same schema and a shorter count.
//
// # Usage
//
//	s := itup.MustSchema(
//	    itup.Attribute{Name: "id", Len: 4, Align: itup.AlignInt, ByVal: true},
//	    itup.Attribute{Name: "name", Len: itup.VarLen, Align: itup.AlignInt},
//	)
//
//	t, err := itup.Form(s, itup.RowRef{Block: 7, Offset: 3},
//	    []itup.Datum{itup.Int32Datum(42), itup.TextDatum("hi")},
//	    []bool{false, false})
//	if err != nil {
//	    return err
//	}
//
//	d, isnull, err := itup.GetAttr(t, 2, s)
//
// # Offset Cache
//
// A Schema remembers, per attribute, where the attribute starts in tuples
// that have no nulls, once that position is known to be the same for all
// such tuples. GetAttr uses it to skip the walk over earlier attributes.
// The cache is filled lazily by GetAttr and never invalidated; a Schema's
// attributes cannot change after construction.
//
// # Thread Safety
//
// Tuples are read-only after formation and may be shared. A Schema may be
// used from many goroutines; cache slots are written atomically and every
// writer stores the same value.
//
// # Error Handling
//
// Oversized tuples fail with ErrTupleTooLarge. Tuples whose header does
// not match their buffer, or whose attribute data runs past the end, fail
// with ErrMalformedTuple rather than being read out of bounds. Allocation
// errors from the arena are returned wrapped. Use errors.Is to test.
package itup
