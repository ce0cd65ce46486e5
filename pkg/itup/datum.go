package itup

import (
	"bytes"
	"fmt"
	"math"
)

// Datum holds one attribute value. By-value attributes use the word;
// fixed-width by-reference and variable-width attributes use the byte
// slice. Datums returned by Deform and GetAttr alias the tuple's buffer.
type Datum struct {
	word uint64
	data []byte
}

func WordDatum(w uint64) Datum { return Datum{word: w} }

func BoolDatum(v bool) Datum {
	if v {
		return Datum{word: 1}
	}
	return Datum{}
}

func CharDatum(v byte) Datum       { return Datum{word: uint64(v)} }
func Int16Datum(v int16) Datum     { return Datum{word: uint64(uint16(v))} }
func Int32Datum(v int32) Datum     { return Datum{word: uint64(uint32(v))} }
func Uint32Datum(v uint32) Datum   { return Datum{word: uint64(v)} }
func Int64Datum(v int64) Datum     { return Datum{word: uint64(v)} }
func Float32Datum(v float32) Datum { return Datum{word: uint64(math.Float32bits(v))} }
func Float64Datum(v float64) Datum { return Datum{word: math.Float64bits(v)} }

// BytesDatum wraps b without copying it.
func BytesDatum(b []byte) Datum { return Datum{data: b} }

func TextDatum(s string) Datum { return Datum{data: []byte(s)} }

func (d Datum) Word() uint64     { return d.word }
func (d Datum) Bool() bool       { return d.word != 0 }
func (d Datum) Char() byte       { return byte(d.word) }
func (d Datum) Int16() int16     { return int16(uint16(d.word)) }
func (d Datum) Int32() int32     { return int32(uint32(d.word)) }
func (d Datum) Uint32() uint32   { return uint32(d.word) }
func (d Datum) Int64() int64     { return int64(d.word) }
func (d Datum) Float32() float32 { return math.Float32frombits(uint32(d.word)) }
func (d Datum) Float64() float64 { return math.Float64frombits(d.word) }
func (d Datum) Bytes() []byte    { return d.data }
func (d Datum) String() string   { return string(d.data) }

// Equal compares the stored representation, not a typed value.
func (d Datum) Equal(o Datum) bool {
	return d.word == o.word && bytes.Equal(d.data, o.data)
}

func (d Datum) GoString() string {
	if d.data != nil {
		return fmt.Sprintf("itup.BytesDatum(%q)", d.data)
	}
	return fmt.Sprintf("itup.WordDatum(%#x)", d.word)
}
