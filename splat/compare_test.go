package splat

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func posFile(recs ...[]float32) *File {
	return &File{Schema: Schema{"x", "y", "z"}, Records: recs}
}

func TestCompare_Tolerance(t *testing.T) {
	a := posFile([]float32{0, 0, 0})
	b := posFile([]float32{0, 0, 0.00005})

	rep, err := Compare(a, b, CompareOptions{Tolerance: 1e-4})
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Compared)
	assert.Equal(t, 1, rep.Identical)
	assert.Equal(t, 0, rep.Different)
	assert.True(t, rep.Equal())
	assert.Empty(t, rep.Details)

	rep, err = Compare(a, b, CompareOptions{Tolerance: 1e-6})
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Different)
	assert.False(t, rep.Equal())
	require.Len(t, rep.Details, 1)
	d := rep.Details[0]
	assert.Equal(t, "z", d.Property)
	assert.Equal(t, 0, d.Row)
	assert.InDelta(t, 0.00005, d.Diff, 1e-9)
	assert.InDelta(t, 0.00005, rep.Properties[2].MaxDiff, 1e-9)
	assert.Equal(t, 0.0, rep.Properties[0].MaxDiff)
}

func TestCompare_ToleranceBoundary(t *testing.T) {
	a := &File{Schema: Schema{"v"}, Records: [][]float32{{0}, {0}}}
	b := &File{Schema: Schema{"v"}, Records: [][]float32{{0.5}, {math.Nextafter32(0.5, 1)}}}

	// row 0 differs by exactly the tolerance, row 1 by the tolerance plus one ulp
	rep, err := Compare(a, b, CompareOptions{Tolerance: 0.5})
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Identical)
	assert.Equal(t, 1, rep.Different)
	require.Len(t, rep.Details, 1)
	assert.Equal(t, 1, rep.Details[0].Row)
	assert.Greater(t, rep.Details[0].Diff, 0.5)
}

func TestCompare_EqualInfinities(t *testing.T) {
	inf, ninf := float32(math.Inf(1)), float32(math.Inf(-1))
	a := &File{Schema: Schema{"v", "w"}, Records: [][]float32{{inf, ninf}, {inf, 1}}}

	rep, err := Compare(a, a.Clone(), CompareOptions{})
	require.NoError(t, err)
	assert.True(t, rep.Equal())
	assert.Equal(t, 2, rep.Identical)
	assert.Empty(t, rep.Details)
	for _, ps := range rep.Properties {
		assert.Equal(t, 0.0, ps.MaxDiff, ps.Name)
		assert.Equal(t, 0.0, ps.MeanDiff, ps.Name)
	}

	b := &File{Schema: a.Schema, Records: [][]float32{{ninf, ninf}, {inf, 1}}}
	rep, err = Compare(a, b, CompareOptions{Tolerance: 1e30})
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Different)
	assert.True(t, math.IsInf(rep.Details[0].Diff, 1))
}

func TestCompare_Symmetric(t *testing.T) {
	a := posFile([]float32{0, 0, 0}, []float32{1, 1, 1}, []float32{2, 2, 2})
	b := posFile([]float32{0, 0, 0.5}, []float32{1, 1, 1}, []float32{2, 3, 2})

	ab, err := Compare(a, b, CompareOptions{Tolerance: 0.1})
	require.NoError(t, err)
	ba, err := Compare(b, a, CompareOptions{Tolerance: 0.1})
	require.NoError(t, err)

	assert.Equal(t, ab.Identical, ba.Identical)
	assert.Equal(t, ab.Different, ba.Different)
	assert.Equal(t, ab.Properties, ba.Properties)
	assert.Equal(t, 2, ab.Different)
	assert.InDelta(t, 0.5/3, ab.Properties[2].MeanDiff, 1e-9)
}

func TestCompare_NaN(t *testing.T) {
	nan := float32(math.NaN())
	a := &File{Schema: Schema{"v"}, Records: [][]float32{{nan}, {nan}}}
	b := &File{Schema: Schema{"v"}, Records: [][]float32{{nan}, {0}}}

	rep, err := Compare(a, b, CompareOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Identical)
	assert.Equal(t, 1, rep.Different)
}

func TestCompare_ExtraRecords(t *testing.T) {
	a := posFile([]float32{0, 0, 0}, []float32{1, 1, 1}, []float32{2, 2, 2})
	b := posFile([]float32{0, 0, 0})

	rep, err := Compare(a, b, CompareOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Compared)
	assert.Equal(t, 2, rep.ExtraA)
	assert.Equal(t, 0, rep.ExtraB)
	assert.False(t, rep.Equal())

	rep, err = Compare(posFile(), posFile(), CompareOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, rep.Compared)
	assert.True(t, rep.Equal())
	assert.Equal(t, rep.ChecksumA, rep.ChecksumB)
}

func TestCompare_SchemaMismatch(t *testing.T) {
	a := posFile([]float32{0, 0, 0})
	b := &File{Schema: Schema{"x", "z", "y"}, Records: [][]float32{{0, 0, 0}}}
	_, err := Compare(a, b, CompareOptions{})
	var se *SchemaMismatchError
	require.ErrorAs(t, err, &se)
	assert.True(t, IsSchemaMismatch(err))
	assert.Equal(t, Schema{"x", "z", "y"}, se.B)
}

func TestCompare_MatchNearest(t *testing.T) {
	a := &File{Schema: Schema{"x", "y", "z", "opacity"}, Records: [][]float32{
		{0, 0, 0, 1},
		{10, 0, 0, 2},
		{0, 10, 0, 3},
	}}
	// same splats, shuffled, with one slightly moved and one extra far away
	b := &File{Schema: a.Schema, Records: [][]float32{
		{0, 10, 0, 3},
		{100, 100, 100, 9},
		{0, 0, 0.001, 1},
		{10, 0, 0, 2},
	}}

	byIndex, err := Compare(a, b, CompareOptions{Tolerance: 0.01})
	require.NoError(t, err)
	assert.Equal(t, 3, byIndex.Different)

	rep, err := Compare(a, b, CompareOptions{Tolerance: 0.01, MatchNearest: true})
	require.NoError(t, err)
	assert.Equal(t, 3, rep.Compared)
	assert.Equal(t, 3, rep.Identical)
	assert.Equal(t, 0, rep.ExtraA)
	assert.Equal(t, 1, rep.ExtraB)
	assert.False(t, rep.Equal())

	rep, err = Compare(a, b, CompareOptions{MatchNearest: true})
	require.NoError(t, err)
	require.Len(t, rep.Details, 1)
	assert.Equal(t, 0, rep.Details[0].Row)
	assert.Equal(t, 2, rep.Details[0].RowB)
	assert.Equal(t, "z", rep.Details[0].Property)
}

func TestCompare_MatchNearestNeedsPosition(t *testing.T) {
	a := &File{Schema: Schema{"v"}, Records: [][]float32{{1}}}
	_, err := Compare(a, a, CompareOptions{MatchNearest: true})
	var me *MissingPropertyError
	require.ErrorAs(t, err, &me)
}

func TestWriteDiffTable(t *testing.T) {
	a := posFile([]float32{0, 0, 0}, []float32{1, 1, 1})
	b := posFile([]float32{0, 0, 0}, []float32{1, 1.5, 1})
	rep, err := Compare(a, b, CompareOptions{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteDiffTable(&buf, rep))
	assert.Equal(t, "row,row_b,property,value_a,value_b,diff\n1,1,y,1,1.5,0.5\n", buf.String())
}
