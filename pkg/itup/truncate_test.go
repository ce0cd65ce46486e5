package itup

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/indextuple/pkg/arena"
)

func routingSchema(t testing.TB) *Schema {
	s, err := NewSchema(int4Att("tenant"), textAtt("path"), int8Att("version"), textAtt("suffix"))
	require.NoError(t, err)
	return s
}

func TestTruncate_Prefix(t *testing.T) {
	s := routingSchema(t)
	ref := RowRef{Block: 12, Offset: 4}
	values := []Datum{Int32Datum(3), TextDatum("/a/b"), Int64Datum(99), TextDatum("tail")}
	src, err := Form(s, ref, values, make([]bool, 4))
	require.NoError(t, err)
	src.SetAMReserved(true)

	for keep := 0; keep < 4; keep++ {
		tr, err := Truncate(s, src, keep)
		require.NoError(t, err, "keep %d", keep)

		assert.LessOrEqual(t, len(tr), len(src), "keep %d", keep)
		assert.Equal(t, len(tr), tr.Size(), "keep %d", keep)
		assert.Equal(t, ref, tr.RowRef(), "keep %d", keep)
		assert.False(t, tr.AMReserved(), "keep %d", keep)
		assert.Equal(t, keep >= 2, tr.HasVarWidths(), "keep %d", keep)

		gotV, gotN := deformAll(t, tr, s, keep)
		srcV, srcN := deformAll(t, src, s, keep)
		requireSameValues(t, srcV, srcN, gotV, gotN)
	}

	tr, err := Truncate(s, src, 1)
	require.NoError(t, err)
	assert.Equal(t, 16, len(tr))
}

func TestTruncate_RecomputesNullFlag(t *testing.T) {
	s := routingSchema(t)
	src, err := Form(s, RowRef{}, []Datum{Int32Datum(1), TextDatum("p"), {}, TextDatum("s")}, []bool{false, false, true, false})
	require.NoError(t, err)
	require.True(t, src.HasNulls())

	tr, err := Truncate(s, src, 2)
	require.NoError(t, err)
	assert.False(t, tr.HasNulls())
	assert.Equal(t, 8, tr.DataOffset())

	tr, err = Truncate(s, src, 3)
	require.NoError(t, err)
	assert.True(t, tr.HasNulls())
	_, isnull, err := GetAttr(tr, 3, s)
	require.NoError(t, err)
	assert.True(t, isnull)
}

func TestTruncate_FullWidthCopies(t *testing.T) {
	s := routingSchema(t)
	src, err := Form(s, RowRef{Block: 1}, []Datum{Int32Datum(1), TextDatum("p"), Int64Datum(2), TextDatum("s")}, make([]bool, 4))
	require.NoError(t, err)
	src.SetAMReserved(true)

	tr, err := Truncate(s, src, 4)
	require.NoError(t, err)
	assert.Equal(t, []byte(src), []byte(tr))
}

func TestTruncate_Errors(t *testing.T) {
	s := routingSchema(t)
	src, err := Form(s, RowRef{}, []Datum{Int32Datum(1)}, []bool{false})
	require.NoError(t, err)

	_, err = Truncate(s, src, 5)
	assert.True(t, errors.Is(err, ErrAttrOutOfRange), "got %v", err)
	_, err = Truncate(s, src, -1)
	assert.True(t, errors.Is(err, ErrAttrOutOfRange), "got %v", err)

	_, err = Truncate(s, src[:8], 1)
	assert.True(t, errors.Is(err, ErrMalformedTuple), "got %v", err)

	a := arena.New(arena.Options{Limit: 8})
	_, err = TruncateIn(a, s, src, 1)
	assert.True(t, errors.Is(err, arena.ErrExhausted), "got %v", err)
}

func TestTruncate_Random(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for iter := 0; iter < 200; iter++ {
		s := randomSchema(t, r)
		n := s.NumAttrs()
		values, isnull := randomRow(r, s, n, 4)
		src, err := Form(s, RowRef{Block: uint32(iter)}, values, isnull)
		require.NoError(t, err)

		keep := r.Intn(n)
		tr, err := Truncate(s, src, keep)
		require.NoError(t, err)
		require.LessOrEqual(t, len(tr), len(src))

		gotV, gotN := deformAll(t, tr, s, keep)
		requireSameValues(t, values[:keep], isnull[:keep], gotV, gotN)
	}
}

func TestCopy(t *testing.T) {
	s := exampleSchema(t)
	src, err := Form(s, RowRef{Block: 5, Offset: 6}, []Datum{Int32Datum(42), TextDatum("hi"), {}}, []bool{false, false, true})
	require.NoError(t, err)

	dup, err := Copy(src)
	require.NoError(t, err)
	assert.Equal(t, []byte(src), []byte(dup))

	original := bytes.Clone(src)
	dup.SetRowRef(RowRef{Block: 1})
	dup[16] = 0xFF
	assert.Equal(t, original, []byte(src))

	_, err = Copy(src[:10])
	assert.True(t, errors.Is(err, ErrMalformedTuple), "got %v", err)

	a := arena.New(arena.Options{})
	dup, err = CopyIn(a, src)
	require.NoError(t, err)
	assert.Equal(t, []byte(src), []byte(dup))
	assert.Equal(t, len(src), a.Used())
}
