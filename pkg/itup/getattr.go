package itup

import "github.com/cockroachdb/errors"

// GetAttr returns the 1-based attribute attnum of t and whether it is null.
//
// Tuples without nulls are served straight from the schema's offset cache
// when it knows the attribute's position. Everything else walks the
// attributes before attnum, filling the cache where it can.
func GetAttr(t Tuple, attnum int, s *Schema) (Datum, bool, error) {
	if attnum < 1 || attnum > s.NumAttrs() {
		return Datum{}, false, errors.Wrapf(ErrAttrOutOfRange, "attribute %d of %d", attnum, s.NumAttrs())
	}
	if err := t.Validate(); err != nil {
		return Datum{}, false, err
	}
	info := t.Info()
	i := attnum - 1

	if !info.HasNulls() {
		if off, ok := s.cachedOffset(i); ok {
			s.stats.cacheHits.Add(1)
			d, _, err := readAttr(t, info.DataOffset(), &s.attrs[i], off)
			if err != nil {
				return Datum{}, false, errors.Wrapf(err, "attribute %d (%s)", attnum, s.attrs[i].Name)
			}
			return d, false, nil
		}
	} else if attIsNull(t.nullBitmap(), i) {
		s.stats.nullHits.Add(1)
		return Datum{}, true, nil
	}

	d, err := getAttrNoCache(t, i, s)
	if err != nil {
		return Datum{}, false, errors.Wrapf(err, "attribute %d (%s)", attnum, s.attrs[i].Name)
	}
	return d, false, nil
}

// getAttrNoCache finds non-null attribute i by walking from the first
// attribute. Offsets are cached only while every attribute walked so far
// was fixed-width and non-null, since only those positions hold for every
// null-free tuple of the schema.
func getAttrNoCache(t Tuple, i int, s *Schema) (Datum, error) {
	s.stats.slowWalks.Add(1)

	info := t.Info()
	dataOff := info.DataOffset()
	hasNulls := info.HasNulls()
	var bitmap []byte
	if hasNulls {
		bitmap = t.nullBitmap()
	}

	slow := false
	if hasNulls {
		for j := 0; j < i; j++ {
			if attIsNull(bitmap, j) {
				slow = true
				break
			}
		}
	}
	if !slow {
		// No nulls before i. If nothing up to i is variable-width, every
		// fixed-width attribute from the start can be cached in one pass.
		if off, ok := s.cachedOffset(i); ok {
			return s.readCached(t, dataOff, i, off)
		}
		for j := 0; j <= i; j++ {
			if s.attrs[j].IsVarLen() {
				slow = true
				break
			}
		}
	}

	if !slow {
		off := 0
		for j := range s.attrs {
			att := &s.attrs[j]
			if att.IsVarLen() {
				break
			}
			off = alignUp(off, int(att.Align))
			s.setCachedOffset(j, off)
			off += att.Len
		}
		off, _ = s.cachedOffset(i)
		return s.readCached(t, dataOff, i, off)
	}

	off := 0
	usecache := true
	for j := 0; ; j++ {
		if hasNulls && attIsNull(bitmap, j) {
			usecache = false
			continue
		}
		att := &s.attrs[j]
		if cached, ok := s.cachedOffset(j); usecache && ok {
			off = cached
		} else if att.IsVarLen() {
			if usecache && off == alignUp(off, int(att.Align)) {
				s.setCachedOffset(j, off)
			} else {
				off = alignAttr(t, dataOff, att, off)
				usecache = false
			}
		} else {
			off = alignUp(off, int(att.Align))
			if usecache {
				s.setCachedOffset(j, off)
			}
		}
		if j == i {
			break
		}
		_, n, err := readAttr(t, dataOff, att, off)
		if err != nil {
			return Datum{}, err
		}
		off += n
		if att.IsVarLen() {
			usecache = false
		}
	}
	d, _, err := readAttr(t, dataOff, &s.attrs[i], off)
	return d, err
}

func (s *Schema) readCached(t Tuple, dataOff, i, off int) (Datum, error) {
	d, _, err := readAttr(t, dataOff, &s.attrs[i], off)
	return d, err
}
