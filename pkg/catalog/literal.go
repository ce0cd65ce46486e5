package catalog

import (
	"bytes"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/ssargent/indextuple/pkg/itup"
)

// NullLiteral is how a null value is written.
const NullLiteral = "NULL"

// Parse converts a literal of type t into a datum.
func Parse(t TypeName, lit string) (itup.Datum, error) {
	switch t {
	case TypeBool:
		v, err := strconv.ParseBool(lit)
		if err != nil {
			return itup.Datum{}, invalid(t, lit, err)
		}
		return itup.BoolDatum(v), nil
	case TypeChar:
		if len(lit) != 1 {
			return itup.Datum{}, invalid(t, lit, nil)
		}
		return itup.CharDatum(lit[0]), nil
	case TypeInt2:
		v, err := strconv.ParseInt(lit, 10, 16)
		if err != nil {
			return itup.Datum{}, invalid(t, lit, err)
		}
		return itup.Int16Datum(int16(v)), nil
	case TypeInt4:
		v, err := strconv.ParseInt(lit, 10, 32)
		if err != nil {
			return itup.Datum{}, invalid(t, lit, err)
		}
		return itup.Int32Datum(int32(v)), nil
	case TypeInt8:
		v, err := strconv.ParseInt(lit, 10, 64)
		if err != nil {
			return itup.Datum{}, invalid(t, lit, err)
		}
		return itup.Int64Datum(v), nil
	case TypeOID:
		v, err := strconv.ParseUint(lit, 10, 32)
		if err != nil {
			return itup.Datum{}, invalid(t, lit, err)
		}
		return itup.Uint32Datum(uint32(v)), nil
	case TypeFloat4:
		v, err := strconv.ParseFloat(lit, 32)
		if err != nil {
			return itup.Datum{}, invalid(t, lit, err)
		}
		return itup.Float32Datum(float32(v)), nil
	case TypeFloat8:
		v, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			return itup.Datum{}, invalid(t, lit, err)
		}
		return itup.Float64Datum(v), nil
	case TypeUUID:
		id, err := uuid.Parse(lit)
		if err != nil {
			return itup.Datum{}, invalid(t, lit, err)
		}
		return itup.BytesDatum(id[:]), nil
	case TypeName64:
		if len(lit) >= NameLen {
			return itup.Datum{}, invalid(t, lit, errors.Newf("longer than %d bytes", NameLen-1))
		}
		b := make([]byte, NameLen)
		copy(b, lit)
		return itup.BytesDatum(b), nil
	case TypeText:
		return itup.TextDatum(lit), nil
	case TypeBytea:
		b, err := hex.DecodeString(strings.TrimPrefix(lit, `\x`))
		if err != nil {
			return itup.Datum{}, invalid(t, lit, err)
		}
		return itup.BytesDatum(b), nil
	}
	return itup.Datum{}, errors.Wrapf(ErrUnsupportedType, "%q", t)
}

// Format renders d as a literal of type t that Parse accepts.
func Format(t TypeName, d itup.Datum) string {
	switch t {
	case TypeBool:
		return strconv.FormatBool(d.Bool())
	case TypeChar:
		return string([]byte{d.Char()})
	case TypeInt2:
		return strconv.FormatInt(int64(d.Int16()), 10)
	case TypeInt4:
		return strconv.FormatInt(int64(d.Int32()), 10)
	case TypeInt8:
		return strconv.FormatInt(d.Int64(), 10)
	case TypeOID:
		return strconv.FormatUint(uint64(d.Uint32()), 10)
	case TypeFloat4:
		return strconv.FormatFloat(float64(d.Float32()), 'g', -1, 32)
	case TypeFloat8:
		return strconv.FormatFloat(d.Float64(), 'g', -1, 64)
	case TypeUUID:
		id, err := uuid.FromBytes(d.Bytes())
		if err != nil {
			return hex.EncodeToString(d.Bytes())
		}
		return id.String()
	case TypeName64:
		b := d.Bytes()
		if i := bytes.IndexByte(b, 0); i >= 0 {
			b = b[:i]
		}
		return string(b)
	case TypeText:
		return d.String()
	case TypeBytea:
		return `\x` + hex.EncodeToString(d.Bytes())
	}
	return d.GoString()
}

// ParseRow parses one literal per column; NullLiteral marks a null. It may
// be given fewer literals than columns.
func (t *Table) ParseRow(lits []string) ([]itup.Datum, []bool, error) {
	if len(lits) > len(t.Columns) {
		return nil, nil, errors.Newf("catalog: %d values for %d columns", len(lits), len(t.Columns))
	}
	values := make([]itup.Datum, len(lits))
	isnull := make([]bool, len(lits))
	for i, lit := range lits {
		if lit == NullLiteral {
			isnull[i] = true
			continue
		}
		d, err := Parse(t.Columns[i].Type, lit)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "column %q", t.Columns[i].Name)
		}
		values[i] = d
	}
	return values, isnull, nil
}

// FormatRow renders decoded values, writing NullLiteral for nulls.
func (t *Table) FormatRow(values []itup.Datum, isnull []bool) []string {
	out := make([]string, len(values))
	for i := range values {
		if isnull[i] {
			out[i] = NullLiteral
			continue
		}
		out[i] = Format(t.Columns[i].Type, values[i])
	}
	return out
}

func invalid(t TypeName, lit string, cause error) error {
	if cause == nil {
		return errors.Wrapf(ErrInvalidLiteral, "%q is not a valid %s", lit, t)
	}
	return errors.Wrapf(ErrInvalidLiteral, "%q is not a valid %s: %v", lit, t, cause)
}
