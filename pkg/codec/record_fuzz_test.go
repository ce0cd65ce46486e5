//go:build fuzz
// +build fuzz

package codec

import (
	"testing"

	"github.com/ssargent/indextuple/pkg/itup"
)

// FuzzRecordCodec_RoundTrip frames random rows and checks they decode intact.
func FuzzRecordCodec_RoundTrip(f *testing.F) {
	codec := NewRecordCodec()

	f.Add(int32(0), "", false)
	f.Add(int32(42), "hi", false)
	f.Add(int32(-1), "", true)

	f.Fuzz(func(t *testing.T, id int32, label string, labelNull bool) {
		if len(label) > 4000 {
			t.Skip("label too large for one tuple")
		}
		tup, err := itup.Form(testSchema, itup.RowRef{Block: 1, Offset: 1},
			[]itup.Datum{itup.Int32Datum(id), itup.TextDatum(label)},
			[]bool{false, labelNull})
		if err != nil {
			t.Fatalf("Form failed: %v", err)
		}

		encoded, err := codec.Encode(tup)
		if err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		record, err := codec.Decode(encoded)
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if err := record.Validate(); err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
		if string(record.Tuple) != string(tup) {
			t.Fatalf("tuple mismatch: %x != %x", record.Tuple, tup)
		}
	})
}

// FuzzRecordCodec_Decode checks that arbitrary input never panics.
func FuzzRecordCodec_Decode(f *testing.F) {
	codec := NewRecordCodec()

	f.Add([]byte{})
	f.Add(make([]byte, HeaderSize+itup.HeaderSize))

	f.Fuzz(func(t *testing.T, data []byte) {
		record, err := codec.Decode(data)
		if err != nil {
			return
		}
		_ = record.Validate()
		values := make([]itup.Datum, testSchema.NumAttrs())
		isnull := make([]bool, testSchema.NumAttrs())
		_ = itup.Deform(record.Tuple, testSchema, values, isnull)
	})
}
