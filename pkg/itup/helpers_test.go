package itup

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func charAtt(name string) Attribute { return Attribute{Name: name, Len: 1, Align: AlignChar, ByVal: true} }
func int2Att(name string) Attribute { return Attribute{Name: name, Len: 2, Align: AlignShort, ByVal: true} }
func int4Att(name string) Attribute { return Attribute{Name: name, Len: 4, Align: AlignInt, ByVal: true} }
func int8Att(name string) Attribute { return Attribute{Name: name, Len: 8, Align: AlignDouble, ByVal: true} }
func uuidAtt(name string) Attribute { return Attribute{Name: name, Len: 16, Align: AlignChar} }
func textAtt(name string) Attribute { return Attribute{Name: name, Len: VarLen, Align: AlignInt} }

// exampleSchema is (int4 not null, text, int4 nullable).
func exampleSchema(t testing.TB) *Schema {
	s, err := NewSchema(int4Att("id"), textAtt("label"), int4Att("rank"))
	require.NoError(t, err)
	return s
}

func deformAll(t testing.TB, tup Tuple, s *Schema, n int) ([]Datum, []bool) {
	values := make([]Datum, n)
	isnull := make([]bool, n)
	require.NoError(t, Deform(tup, s, values, isnull))
	return values, isnull
}

func requireSameValues(t testing.TB, wantV []Datum, wantN []bool, gotV []Datum, gotN []bool) {
	require.Len(t, gotV, len(wantV))
	for i := range wantV {
		require.Equal(t, wantN[i], gotN[i], "null flag of attribute %d", i+1)
		if wantN[i] {
			continue
		}
		require.True(t, wantV[i].Equal(gotV[i]), "attribute %d: want %#v, got %#v", i+1, wantV[i], gotV[i])
	}
}

// randomAttribute picks from the shapes the format distinguishes.
func randomAttribute(r *rand.Rand, i int) Attribute {
	name := string(rune('a' + i))
	switch r.Intn(7) {
	case 0:
		return charAtt(name)
	case 1:
		return int2Att(name)
	case 2:
		return int4Att(name)
	case 3:
		return int8Att(name)
	case 4:
		return uuidAtt(name)
	case 5:
		return Attribute{Name: name, Len: VarLen, Align: AlignChar}
	default:
		return textAtt(name)
	}
}

func randomSchema(t testing.TB, r *rand.Rand) *Schema {
	n := 1 + r.Intn(8)
	attrs := make([]Attribute, n)
	for i := range attrs {
		attrs[i] = randomAttribute(r, i)
	}
	s, err := NewSchema(attrs...)
	require.NoError(t, err)
	return s
}

func randomValue(r *rand.Rand, att Attribute) Datum {
	switch {
	case att.IsVarLen():
		// Mix short headers, long headers, and the empty payload.
		var n int
		switch r.Intn(4) {
		case 0:
			n = 0
		case 1:
			n = 127 + r.Intn(300)
		default:
			n = r.Intn(127)
		}
		b := make([]byte, n)
		r.Read(b)
		return BytesDatum(b)
	case att.ByVal:
		w := r.Uint64()
		if att.Len < 8 {
			w &= 1<<(8*uint(att.Len)) - 1
		}
		return WordDatum(w)
	default:
		b := bytes.Repeat([]byte{byte(r.Intn(256))}, att.Len)
		return BytesDatum(b)
	}
}

func randomRow(r *rand.Rand, s *Schema, n int, nullOdds int) ([]Datum, []bool) {
	values := make([]Datum, n)
	isnull := make([]bool, n)
	for i := 0; i < n; i++ {
		if nullOdds > 0 && r.Intn(nullOdds) == 0 {
			isnull[i] = true
			continue
		}
		values[i] = randomValue(r, s.Attr(i))
	}
	return values, isnull
}
