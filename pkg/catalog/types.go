// Package catalog names the attribute types index schemas are built from
// and converts their values to and from text.
package catalog

import (
	"github.com/cockroachdb/errors"

	"github.com/ssargent/indextuple/pkg/itup"
)

var (
	ErrUnsupportedType = errors.New("catalog: unsupported type")
	ErrInvalidLiteral  = errors.New("catalog: invalid literal")
)

// TypeName identifies an attribute type.
type TypeName string

const (
	TypeBool   TypeName = "bool"
	TypeChar   TypeName = "char"
	TypeInt2   TypeName = "int2"
	TypeInt4   TypeName = "int4"
	TypeInt8   TypeName = "int8"
	TypeOID    TypeName = "oid"
	TypeFloat4 TypeName = "float4"
	TypeFloat8 TypeName = "float8"
	TypeUUID   TypeName = "uuid"
	TypeName64 TypeName = "name"
	TypeText   TypeName = "text"
	TypeBytea  TypeName = "bytea"
)

// NameLen is the fixed width of the name type.
const NameLen = 64

var layouts = map[TypeName]itup.Attribute{
	TypeBool:   {Len: 1, Align: itup.AlignChar, ByVal: true},
	TypeChar:   {Len: 1, Align: itup.AlignChar, ByVal: true},
	TypeInt2:   {Len: 2, Align: itup.AlignShort, ByVal: true},
	TypeInt4:   {Len: 4, Align: itup.AlignInt, ByVal: true},
	TypeInt8:   {Len: 8, Align: itup.AlignDouble, ByVal: true},
	TypeOID:    {Len: 4, Align: itup.AlignInt, ByVal: true},
	TypeFloat4: {Len: 4, Align: itup.AlignInt, ByVal: true},
	TypeFloat8: {Len: 8, Align: itup.AlignDouble, ByVal: true},
	TypeUUID:   {Len: 16, Align: itup.AlignChar},
	TypeName64: {Len: NameLen, Align: itup.AlignChar},
	TypeText:   {Len: itup.VarLen, Align: itup.AlignInt},
	TypeBytea:  {Len: itup.VarLen, Align: itup.AlignInt},
}

// Column is a named, typed key column as written in schema files.
type Column struct {
	Name string   `yaml:"name"`
	Type TypeName `yaml:"type"`
}

// Attribute returns the storage layout of a column.
func Attribute(c Column) (itup.Attribute, error) {
	att, ok := layouts[c.Type]
	if !ok {
		return itup.Attribute{}, errors.Wrapf(ErrUnsupportedType, "column %q has type %q", c.Name, c.Type)
	}
	att.Name = c.Name
	return att, nil
}

// Table pairs a schema with the column types needed to print its values.
type Table struct {
	Columns []Column
	Schema  *itup.Schema
}

// NewTable builds the schema for cols.
func NewTable(cols []Column) (*Table, error) {
	attrs := make([]itup.Attribute, len(cols))
	for i, c := range cols {
		att, err := Attribute(c)
		if err != nil {
			return nil, err
		}
		attrs[i] = att
	}
	s, err := itup.NewSchema(attrs...)
	if err != nil {
		return nil, errors.Wrap(err, "building schema")
	}
	return &Table{Columns: append([]Column(nil), cols...), Schema: s}, nil
}
