package splat

import (
	"bytes"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToRowsFromRows_RoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	schema := Schema{"x", "y", "z", "opacity", "unknown_prop"}
	recs := make([][]float32, 200)
	for i := range recs {
		rec := make([]float32, len(schema))
		for j := range rec {
			rec[j] = float32(r.NormFloat64() * math.Pow(10, float64(r.Intn(20)-10)))
		}
		recs[i] = rec
	}
	recs = append(recs, []float32{0, float32(math.Copysign(0, -1)), math.MaxFloat32, math.SmallestNonzeroFloat32, 1e-45})

	header, rows := ToRows(schema, recs)
	gotSchema, gotRecs, err := FromRows(header, rows)
	require.NoError(t, err)
	assert.Equal(t, schema, gotSchema)
	for i := range recs {
		for j := range recs[i] {
			require.Equal(t, math.Float32bits(recs[i][j]), math.Float32bits(gotRecs[i][j]),
				"row %d col %d: %v != %v", i, j, recs[i][j], gotRecs[i][j])
		}
	}
}

func TestToRows_Formatting(t *testing.T) {
	header, rows := ToRows(Schema{"x", "y"}, [][]float32{{0.1, -2}, {float32(math.Inf(1)), 1e-7}})
	assert.Equal(t, []string{"x", "y"}, header)
	assert.Equal(t, [][]string{{"0.1", "-2"}, {"+Inf", "1e-07"}}, rows)
}

func TestFromRows_FieldParseError(t *testing.T) {
	header := []string{"x", "y", "z"}
	rows := [][]string{{"1", "2", "3"}, {"4", "five", "6"}}
	_, _, err := FromRows(header, rows)

	var fe *FieldParseError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, 1, fe.Row)
	assert.Equal(t, 1, fe.Column)
	assert.Equal(t, "y", fe.Name)
	assert.Equal(t, "five", fe.Raw)
	assert.Contains(t, err.Error(), `"five"`)
}

func TestFromRows_Errors(t *testing.T) {
	cases := map[string][][]string{
		"empty cell":   {{"1", ""}},
		"overflow":     {{"1", "1e50"}},
		"ragged short": {{"1"}},
		"ragged long":  {{"1", "2", "3"}},
	}
	for name, rows := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := FromRows([]string{"a", "b"}, rows)
			require.Error(t, err)
		})
	}
	_, _, err := FromRows([]string{"a", "b"}, [][]string{{"1", "2"}, {"1"}})
	var ce *ColumnCountError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ColumnCountError{Row: 1, Got: 1, Want: 2}, *ce)
}

func TestWriteReadTable(t *testing.T) {
	f := shFile()
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, f))
	assert.Equal(t, "x,y,z,f_dc_0,f_dc_1,f_dc_2\n0,0,0,-1,-1,-1\n1,1,1,1,1,1\n", buf.String())

	got, err := ReadTable(&buf)
	require.NoError(t, err)
	if diff := cmp.Diff(f, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestReadTable_HandEdited(t *testing.T) {
	in := "x, y, z\n 1.5, 2 ,3\n-0.25,1e3,  4\n"
	f, err := ReadTable(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, Schema{"x", "y", "z"}, f.Schema)
	assert.Equal(t, [][]float32{{1.5, 2, 3}, {-0.25, 1000, 4}}, f.Records)
	assert.Nil(t, f.Footer)
}

func TestReadTable_Empty(t *testing.T) {
	_, err := ReadTable(strings.NewReader(""))
	require.Error(t, err)

	f, err := ReadTable(strings.NewReader("x,y,z\n"))
	require.NoError(t, err)
	assert.Empty(t, f.Records)
}

func TestReadTable_BadHeaderFailsBeforeEncoding(t *testing.T) {
	f, err := ReadTable(strings.NewReader("x,,my prop\n1,2,3\n"))
	require.NoError(t, err)

	_, err = Encode(f)
	var pe *PropertyNameError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 1, pe.Column)
	assert.Contains(t, err.Error(), "empty")
}
