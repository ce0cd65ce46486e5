package itup

import (
	"sync/atomic"

	"github.com/cockroachdb/errors"
)

// Align is an attribute's alignment class in bytes.
type Align uint8

const (
	AlignChar   Align = 1
	AlignShort  Align = 2
	AlignInt    Align = 4
	AlignDouble Align = 8
)

func (a Align) valid() bool {
	switch a {
	case AlignChar, AlignShort, AlignInt, AlignDouble:
		return true
	}
	return false
}

// VarLen marks an attribute whose values carry their own length header.
const VarLen = -1

// Attribute describes one key column.
type Attribute struct {
	Name  string
	Len   int // byte width, or VarLen
	Align Align
	ByVal bool // value fits in a Datum word rather than a byte slice
}

func (a Attribute) IsVarLen() bool { return a.Len == VarLen }

func (a Attribute) validate() error {
	if !a.Align.valid() {
		return errors.Wrapf(ErrInvalidAttribute, "%q: alignment %d", a.Name, a.Align)
	}
	switch {
	case a.Len == VarLen:
		if a.ByVal {
			return errors.Wrapf(ErrInvalidAttribute, "%q: variable-width attribute cannot be by-value", a.Name)
		}
	case a.Len <= 0 || a.Len > MaxTupleSize:
		return errors.Wrapf(ErrInvalidAttribute, "%q: width %d", a.Name, a.Len)
	case a.ByVal && a.Len != 1 && a.Len != 2 && a.Len != 4 && a.Len != 8:
		return errors.Wrapf(ErrInvalidAttribute, "%q: by-value width %d", a.Name, a.Len)
	}
	return nil
}

const offsetUnknown = -1

// Schema is the tuple descriptor for one index shape. Its attribute list
// never changes after NewSchema; the only mutable state is the offset
// cache, which is safe for concurrent use.
//
// A cached offset for attribute i is the position of i relative to the
// start of attribute data in any tuple of this schema that has no nulls.
// It is set only when every attribute before i is fixed-width, and is
// never unset.
type Schema struct {
	attrs []Attribute
	cache []atomic.Int32
	stats accessStats
}

// NewSchema builds a schema from attribute definitions in key order.
func NewSchema(attrs ...Attribute) (*Schema, error) {
	if len(attrs) == 0 {
		return nil, errors.Wrap(ErrInvalidAttribute, "schema has no attributes")
	}
	if len(attrs) > MaxKeyAttributes {
		return nil, errors.Wrapf(ErrTooManyAttributes, "%d attributes, limit %d", len(attrs), MaxKeyAttributes)
	}
	for _, a := range attrs {
		if err := a.validate(); err != nil {
			return nil, err
		}
	}
	s := &Schema{
		attrs: append([]Attribute(nil), attrs...),
		cache: make([]atomic.Int32, len(attrs)),
	}
	for i := range s.cache {
		s.cache[i].Store(offsetUnknown)
	}
	return s, nil
}

// MustSchema is NewSchema for static definitions; it panics on error.
func MustSchema(attrs ...Attribute) *Schema {
	s, err := NewSchema(attrs...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Schema) NumAttrs() int { return len(s.attrs) }

// Attr returns the attribute at 0-based position i.
func (s *Schema) Attr(i int) Attribute { return s.attrs[i] }

// CachedOffset reports the cached data offset of the 1-based attribute
// attnum, if one has been computed.
func (s *Schema) CachedOffset(attnum int) (int, bool) {
	if attnum < 1 || attnum > len(s.attrs) {
		return 0, false
	}
	off := s.cache[attnum-1].Load()
	return int(off), off != offsetUnknown
}

func (s *Schema) cachedOffset(i int) (int, bool) {
	off := s.cache[i].Load()
	return int(off), off != offsetUnknown
}

// setCachedOffset records an offset. Every writer computes the same value
// for a given slot, so racing stores are harmless.
func (s *Schema) setCachedOffset(i, off int) {
	if s.cache[i].CompareAndSwap(offsetUnknown, int32(off)) {
		s.stats.cacheFills.Add(1)
	}
}

// Stats returns a snapshot of the schema's accessor counters.
func (s *Schema) Stats() Stats {
	return Stats{
		CacheHits:  s.stats.cacheHits.Load(),
		NullHits:   s.stats.nullHits.Load(),
		SlowWalks:  s.stats.slowWalks.Load(),
		CacheFills: s.stats.cacheFills.Load(),
	}
}

// Stats counts how single-attribute lookups were resolved.
type Stats struct {
	CacheHits  uint64 // answered from a cached offset
	NullHits   uint64 // answered from the null bitmap
	SlowWalks  uint64 // required walking from the first attribute
	CacheFills uint64 // cache slots populated
}

type accessStats struct {
	cacheHits  atomic.Uint64
	nullHits   atomic.Uint64
	slowWalks  atomic.Uint64
	cacheFills atomic.Uint64
}
