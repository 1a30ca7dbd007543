package splat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := map[string]PropertyFamily{
		"x":          FamilyPosition,
		"pos_2":      FamilyPosition,
		"ny":         FamilyNormal,
		"rot_3":      FamilyRotation,
		"rotation_0": FamilyRotation,
		"scale_1":    FamilyScale,
		"opacity":    FamilyOpacity,
		"red":        FamilyColor,
		"g":          FamilyColor,
		"f_dc_0":     FamilySHDC,
		"f_rest_44":  FamilySHRest,
		"f_rest_":    FamilyOther,
		"scale_x":    FamilyOther,
		"segment_id": FamilyOther,
	}
	for name, want := range cases {
		assert.Equal(t, want, Classify(name), name)
	}
}

func TestSchema_Summary(t *testing.T) {
	s := Schema{"x", "y", "z", "f_dc_0", "f_dc_1", "f_dc_2", "f_rest_0", "opacity", "label"}
	assert.Equal(t, "position=3 opacity=1 sh_dc=3 sh_rest=1 other=1", s.Summary())
	assert.Equal(t, "", Schema{}.Summary())
}

func TestSchema_Indexes(t *testing.T) {
	s := Schema{"a", "b", "a"}
	assert.Equal(t, map[string]int{"a": 0, "b": 1}, s.Indexes())
	assert.Equal(t, 0, s.Index("a"))
	assert.Equal(t, -1, s.Index("c"))
	assert.True(t, s.Equal(Schema{"a", "b", "a"}))
	assert.False(t, s.Equal(Schema{"a", "a", "b"}))
}

func TestSchema_PositionIndices(t *testing.T) {
	idx, ok := Schema{"pos_0", "x", "pos_1", "pos_2"}.PositionIndices()
	assert.True(t, ok)
	assert.Equal(t, [3]int{0, 2, 3}, idx)

	idx, ok = Schema{"pos_0", "x", "y", "z"}.PositionIndices()
	assert.True(t, ok)
	assert.Equal(t, [3]int{1, 2, 3}, idx)

	_, ok = Schema{"x", "y"}.PositionIndices()
	assert.False(t, ok)
}

func TestFile_Clone(t *testing.T) {
	f := shFile()
	f.Footer = []byte{1}
	c := f.Clone()
	c.Records[0][0] = 9
	c.Schema[0] = "q"
	c.Footer[0] = 2
	assert.Equal(t, shFile().Records, f.Records)
	assert.Equal(t, "x", f.Schema[0])
	assert.Equal(t, []byte{1}, f.Footer)
}
