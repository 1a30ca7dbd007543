package splat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge(t *testing.T) {
	a := &File{Schema: Schema{"x", "y", "z"}, Records: [][]float32{{1, 1, 1}}, Footer: []byte("A")}
	b := &File{Schema: Schema{"x", "y", "z"}, Records: [][]float32{{2, 2, 2}, {3, 3, 3}}, Footer: []byte("B")}

	m, err := Merge(a, b)
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{1, 1, 1}, {2, 2, 2}, {3, 3, 3}}, m.Records)
	assert.Equal(t, []byte("A"), m.Footer)

	m.Records[0][0] = 42
	m.Footer[0] = 'Z'
	assert.Equal(t, float32(1), a.Records[0][0])
	assert.Equal(t, []byte("A"), a.Footer)
}

func TestMerge_EncodedHeaderCount(t *testing.T) {
	a := shFile()
	m, err := Merge(a, shFile())
	require.NoError(t, err)
	data, err := Encode(m)
	require.NoError(t, err)
	h, err := ParsePLYHeader(data)
	require.NoError(t, err)
	assert.Equal(t, 4, h.VertexCount)
	assert.Nil(t, m.Footer)
}

func TestMerge_SchemaMismatch(t *testing.T) {
	a := &File{Schema: Schema{"x", "y", "z"}}
	b := &File{Schema: Schema{"x", "y", "z", "opacity"}}
	_, err := Merge(a, b)
	assert.True(t, IsSchemaMismatch(err))
}
