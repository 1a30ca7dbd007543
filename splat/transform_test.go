package splat

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransform_Translate(t *testing.T) {
	f := &File{Schema: Schema{"x", "y", "z", "opacity"}, Records: [][]float32{{1, 2, 3, 0.5}}}
	out, err := Transform{Translate: [3]float64{10, -2, 0.5}}.Apply(f)
	require.NoError(t, err)
	assert.Equal(t, []float32{11, 0, 3.5, 0.5}, out.Records[0])
	assert.Equal(t, []float32{1, 2, 3, 0.5}, f.Records[0])
}

func TestTransform_ScaleOffsetsLogScales(t *testing.T) {
	f := &File{Schema: Schema{"x", "y", "z", "scale_0", "scale_1", "scale_2"}, Records: [][]float32{{1, -1, 2, -3, -4, -5}}}
	out, err := Transform{Scale: 2}.Apply(f)
	require.NoError(t, err)
	rec := out.Records[0]
	assert.Equal(t, []float32{2, -2, 4}, rec[:3])
	for i, want := range []float64{-3, -4, -5} {
		assert.InDelta(t, want+math.Ln2, rec[3+i], 1e-6)
	}
}

func TestTransform_RotateZ(t *testing.T) {
	f := &File{
		Schema:  Schema{"x", "y", "z", "rot_0", "rot_1", "rot_2", "rot_3"},
		Records: [][]float32{{1, 0, 5, 1, 0, 0, 0}},
	}
	out, err := Transform{RotateZDeg: 90}.Apply(f)
	require.NoError(t, err)
	rec := out.Records[0]
	assert.InDelta(t, 0, rec[0], 1e-6)
	assert.InDelta(t, 1, rec[1], 1e-6)
	assert.InDelta(t, 5, rec[2], 1e-6)

	// identity orientation becomes a 90 degree turn about Z
	half := math.Sqrt2 / 2
	assert.InDelta(t, half, rec[3], 1e-6)
	assert.InDelta(t, 0, rec[4], 1e-6)
	assert.InDelta(t, 0, rec[5], 1e-6)
	assert.InDelta(t, half, rec[6], 1e-6)
}

func TestTransform_Errors(t *testing.T) {
	_, err := Transform{}.Apply(&File{Schema: Schema{"opacity"}})
	var me *MissingPropertyError
	require.ErrorAs(t, err, &me)

	_, err = Transform{Scale: -1}.Apply(posFile([]float32{0, 0, 0}))
	require.Error(t, err)
}
