package codec

import (
	"encoding/binary"
	"hash/crc32"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/ssargent/indextuple/pkg/itup"
)

// HeaderSize is the fixed prefix in front of every framed tuple.
const HeaderSize = 12

var (
	ErrShortRecord = errors.New("record too short")
	ErrChecksum    = errors.New("record checksum mismatch")
)

// Record is an index tuple framed for storage outside a page.
type Record struct {
	CRC32     uint32     // CRC32 checksum for integrity
	Timestamp uint64     // Unix timestamp in nanoseconds
	Tuple     itup.Tuple // framed tuple, aliasing the decoded buffer
}

// RecordCodec handles serialization and deserialization of records
type RecordCodec struct{}

// NewRecordCodec creates a new record codec instance
func NewRecordCodec() *RecordCodec {
	return &RecordCodec{}
}

// Encode frames a tuple into the binary record format.
// Format: [CRC32(4)][Timestamp(8)][Tuple]
func (c *RecordCodec) Encode(t itup.Tuple) ([]byte, error) {
	if err := t.Validate(); err != nil {
		return nil, errors.Wrap(err, "failed to encode record")
	}
	r := NewRecord(t)
	r.CRC32 = r.calculateCRC32()

	buf := make([]byte, r.Size())
	binary.LittleEndian.PutUint32(buf[0:], r.CRC32)
	binary.LittleEndian.PutUint64(buf[4:], r.Timestamp)
	copy(buf[HeaderSize:], r.Tuple)

	return buf, nil
}

// Decode parses a framed record. The tuple's own size field must account
// for every byte after the header. Call Validate to check the checksum.
func (c *RecordCodec) Decode(data []byte) (*Record, error) {
	if len(data) < HeaderSize+itup.HeaderSize {
		return nil, errors.Wrapf(ErrShortRecord, "%d bytes", len(data))
	}

	r := &Record{
		CRC32:     binary.LittleEndian.Uint32(data[0:4]),
		Timestamp: binary.LittleEndian.Uint64(data[4:12]),
		Tuple:     itup.Tuple(data[HeaderSize:]),
	}
	if err := r.Tuple.Validate(); err != nil {
		return nil, errors.Wrap(err, "failed to decode record")
	}
	return r, nil
}

// Validate checks the integrity of a record using CRC32
func (r *Record) Validate() error {
	if sum := r.calculateCRC32(); r.CRC32 != sum {
		return errors.Wrapf(ErrChecksum, "%08x != %08x", r.CRC32, sum)
	}
	return nil
}

// Size returns the total size of the record when encoded
func (r *Record) Size() int {
	return HeaderSize + len(r.Tuple)
}

// Time returns the record's timestamp.
func (r *Record) Time() time.Time {
	return time.Unix(0, int64(r.Timestamp))
}

// NewRecord creates a new record with current timestamp
func NewRecord(t itup.Tuple) *Record {
	return &Record{
		Timestamp: uint64(time.Now().UnixNano()),
		Tuple:     t,
	}
}

// calculateCRC32 covers everything but the CRC field itself.
func (r *Record) calculateCRC32() uint32 {
	var ts [8]byte
	binary.LittleEndian.PutUint64(ts[:], r.Timestamp)
	crc := crc32.NewIEEE()
	crc.Write(ts[:])
	crc.Write(r.Tuple)
	return crc.Sum32()
}
