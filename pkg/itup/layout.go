package itup

import (
	"encoding/binary"

	"github.com/cockroachdb/errors"
)

// Layout is the computed shape of a tuple before it is written.
type Layout struct {
	Size         int
	DataOffset   int
	HasNulls     bool
	HasVarWidths bool
}

func (l Layout) info() Info {
	info := Info(l.Size)
	if l.HasNulls {
		info |= NullMask
	}
	if l.HasVarWidths {
		info |= VarWidthMask
	}
	return info
}

// ComputeLayout sizes a tuple holding values for the first len(values)
// attributes of s. isnull may be nil when no value is null.
func ComputeLayout(s *Schema, values []Datum, isnull []bool) (Layout, error) {
	if err := checkArgs(s, values, isnull); err != nil {
		return Layout{}, err
	}
	var l Layout
	for i := range values {
		if nullAt(isnull, i) {
			l.HasNulls = true
		}
	}
	if l.HasNulls {
		l.DataOffset = NullMask.DataOffset()
	} else {
		l.DataOffset = Info(0).DataOffset()
	}

	off := 0
	for i, d := range values {
		if nullAt(isnull, i) {
			continue
		}
		att := &s.attrs[i]
		if err := checkDatum(att, d); err != nil {
			return Layout{}, err
		}
		if att.IsVarLen() {
			l.HasVarWidths = true
		}
		start, n := place(att, d, off)
		off = start + n
	}

	l.Size = maxAlign(l.DataOffset + off)
	if l.Size > MaxTupleSize {
		return Layout{}, errors.Wrapf(ErrTupleTooLarge, "%d bytes, limit %d", l.Size, MaxTupleSize)
	}
	return l, nil
}

// nullAt treats a nil isnull as all values present.
func nullAt(isnull []bool, i int) bool { return isnull != nil && isnull[i] }

func checkArgs(s *Schema, values []Datum, isnull []bool) error {
	if isnull != nil && len(values) != len(isnull) {
		return errors.Newf("itup: %d values but %d null flags", len(values), len(isnull))
	}
	if len(values) > s.NumAttrs() {
		return errors.Wrapf(ErrAttrOutOfRange, "%d values for a schema of %d attributes", len(values), s.NumAttrs())
	}
	return nil
}

func checkDatum(att *Attribute, d Datum) error {
	switch {
	case att.ByVal:
		if d.data != nil || (att.Len < 8 && d.word>>(8*uint(att.Len)) != 0) {
			return errors.Wrapf(ErrValueLength, "%q expects a %d byte word", att.Name, att.Len)
		}
	case att.IsVarLen():
		if d.word != 0 {
			return errors.Wrapf(ErrValueLength, "%q expects bytes, got a word", att.Name)
		}
	default:
		if d.word != 0 || len(d.data) != att.Len {
			return errors.Wrapf(ErrValueLength, "%q expects %d bytes, got %d", att.Name, att.Len, len(d.data))
		}
	}
	return nil
}

// place returns where a non-null value goes given the running data offset,
// and how many bytes it occupies there.
func place(att *Attribute, d Datum, off int) (start, n int) {
	if att.IsVarLen() {
		if varlenIsShort(len(d.data)) {
			return off, varlenSize(len(d.data))
		}
		return alignUp(off, int(att.Align)), varlenSize(len(d.data))
	}
	return alignUp(off, int(att.Align)), att.Len
}

// putAttr writes a non-null value at b[0:].
func putAttr(b []byte, att *Attribute, d Datum) {
	switch {
	case att.IsVarLen():
		putVarlen(b, d.data)
	case att.ByVal:
		switch att.Len {
		case 1:
			b[0] = byte(d.word)
		case 2:
			binary.LittleEndian.PutUint16(b, uint16(d.word))
		case 4:
			binary.LittleEndian.PutUint32(b, uint32(d.word))
		case 8:
			binary.LittleEndian.PutUint64(b, d.word)
		}
	default:
		copy(b, d.data)
	}
}
