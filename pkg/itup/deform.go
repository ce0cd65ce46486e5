package itup

import (
	"encoding/binary"

	"github.com/cockroachdb/errors"
)

// Deform decodes the first len(values) attributes of t into values and
// isnull. The attribute count is not stored in tuples, so the caller
// chooses it; truncated tuples are read by passing shorter slices.
// Variable-width and by-reference values alias t. Unlike Form, isnull
// must not be nil when values is non-empty.
func Deform(t Tuple, s *Schema, values []Datum, isnull []bool) error {
	if err := checkArgs(s, values, isnull); err != nil {
		return err
	}
	if isnull == nil && len(values) > 0 {
		return errors.Newf("itup: Deform needs %d null flags", len(values))
	}
	if err := t.Validate(); err != nil {
		return err
	}
	info := t.Info()
	hasNulls := info.HasNulls()
	dataOff := info.DataOffset()
	var bitmap []byte
	if hasNulls {
		bitmap = t.nullBitmap()
	}

	off := 0
	for i := range values {
		if hasNulls && attIsNull(bitmap, i) {
			values[i] = Datum{}
			isnull[i] = true
			continue
		}
		att := &s.attrs[i]
		off = alignAttr(t, dataOff, att, off)
		d, n, err := readAttr(t, dataOff, att, off)
		if err != nil {
			return errors.Wrapf(err, "attribute %d (%s)", i+1, att.Name)
		}
		values[i] = d
		isnull[i] = false
		off += n
	}
	return nil
}

// alignAttr moves the data-relative offset off to where att's value
// starts. A variable-width value at an unaligned offset starts right there
// if the byte is non-zero (a short header); a zero byte is padding.
func alignAttr(t Tuple, dataOff int, att *Attribute, off int) int {
	aligned := alignUp(off, int(att.Align))
	if !att.IsVarLen() || aligned == off {
		return aligned
	}
	if pos := dataOff + off; pos < len(t) && t[pos] != 0 {
		return off
	}
	return aligned
}

// readAttr decodes att at data-relative offset off and reports how many
// bytes the encoded value occupies.
func readAttr(t Tuple, dataOff int, att *Attribute, off int) (Datum, int, error) {
	pos := dataOff + off
	if att.IsVarLen() {
		payload, n, err := readVarlen(t, pos)
		if err != nil {
			return Datum{}, 0, err
		}
		return Datum{data: payload}, n, nil
	}
	end := pos + att.Len
	if end > len(t) {
		return Datum{}, 0, errors.Wrapf(ErrMalformedTuple, "%d byte value at %d overruns tuple of %d", att.Len, pos, len(t))
	}
	if !att.ByVal {
		return Datum{data: t[pos:end:end]}, att.Len, nil
	}
	var w uint64
	switch att.Len {
	case 1:
		w = uint64(t[pos])
	case 2:
		w = uint64(binary.LittleEndian.Uint16(t[pos:]))
	case 4:
		w = uint64(binary.LittleEndian.Uint32(t[pos:]))
	case 8:
		w = binary.LittleEndian.Uint64(t[pos:])
	}
	return Datum{word: w}, att.Len, nil
}
