// Package codec frames index tuples for storage outside a page.
//
// A tuple in a page is protected by the page checksum. A tuple written on its
// own, for example as a value in a key-value store, has no such protection,
// so the codec prefixes it with a checksum and a write timestamp.
//
// # Record Format
//
//	[CRC32(4)][Timestamp(8)][Tuple]
//
// Fields:
//   - CRC32: IEEE CRC32 of the timestamp and tuple bytes (little-endian)
//   - Timestamp: 64-bit Unix timestamp in nanoseconds (little-endian)
//   - Tuple: the index tuple, whose header carries its own total size
//
// The record size is 12 bytes plus the tuple size. There is no separate
// length field; Decode rejects a record whose trailing bytes do not match
// the size recorded in the tuple header.
//
// # Usage
//
//	c := codec.NewRecordCodec()
//	data, err := c.Encode(tuple)
//	...
//	rec, err := c.Decode(data)
//	if err == nil {
//		err = rec.Validate()
//	}
//
// Decode only checks structure. Validate must be called before trusting the
// tuple contents.
package codec
