package splat

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// CompareOptions controls how two files are aligned and judged.
type CompareOptions struct {
	// Tolerance is the largest absolute difference still counted as equal.
	Tolerance float64
	// MatchNearest pairs each record of A with the record of B closest in
	// position instead of the record with the same index.
	MatchNearest bool
}

// CellDiff is one property that differs between a pair of records.
type CellDiff struct {
	Row      int
	RowB     int
	Property string
	A        float32
	B        float32
	Diff     float64
}

// PropertyStats aggregates the absolute differences of one property over all compared pairs.
type PropertyStats struct {
	Name     string
	MaxDiff  float64
	MeanDiff float64
}

// Report is the result of Compare.
type Report struct {
	Compared   int
	Identical  int
	Different  int
	ExtraA     int
	ExtraB     int
	Properties []PropertyStats
	Details    []CellDiff
	ChecksumA  uint64
	ChecksumB  uint64
}

// Equal reports whether every compared pair was within tolerance and neither
// file had unpaired records.
func (r *Report) Equal() bool {
	return r.Different == 0 && r.ExtraA == 0 && r.ExtraB == 0
}

// Compare aligns a and b record by record and reports per-property deltas.
// Both files must have the same schema. A pair whose absolute difference
// equals the tolerance is not different.
func Compare(a, b *File, opts CompareOptions) (*Report, error) {
	if !a.Schema.Equal(b.Schema) {
		return nil, &SchemaMismatchError{A: a.Schema, B: b.Schema}
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}

	pairs, extraA, extraB, err := pairRecords(a, b, opts.MatchNearest)
	if err != nil {
		return nil, err
	}

	rep := &Report{
		Compared:  len(pairs),
		ExtraA:    extraA,
		ExtraB:    extraB,
		ChecksumA: Checksum(a),
		ChecksumB: Checksum(b),
	}
	diffs := make([][]float64, len(a.Schema))
	for p := range diffs {
		diffs[p] = make([]float64, 0, len(pairs))
	}
	for _, pr := range pairs {
		ra, rb := a.Records[pr[0]], b.Records[pr[1]]
		same := true
		for p, name := range a.Schema {
			var d float64
			switch va, vb := float64(ra[p]), float64(rb[p]); {
			case va == vb, math.IsNaN(va) && math.IsNaN(vb):
				// equal infinities would otherwise give Inf-Inf = NaN
			default:
				d = math.Abs(va - vb)
			}
			diffs[p] = append(diffs[p], d)
			if d > opts.Tolerance || math.IsNaN(d) {
				same = false
				rep.Details = append(rep.Details, CellDiff{
					Row: pr[0], RowB: pr[1], Property: name, A: ra[p], B: rb[p], Diff: d,
				})
			}
		}
		if same {
			rep.Identical++
		} else {
			rep.Different++
		}
	}

	rep.Properties = make([]PropertyStats, len(a.Schema))
	for p, name := range a.Schema {
		ps := PropertyStats{Name: name}
		if len(diffs[p]) > 0 {
			ps.MaxDiff = floats.Max(diffs[p])
			ps.MeanDiff = stat.Mean(diffs[p], nil)
		}
		rep.Properties[p] = ps
	}
	return rep, nil
}

// pairRecords returns index pairs (row in a, row in b) and the number of
// unpaired records on each side.
func pairRecords(a, b *File, nearest bool) ([][2]int, int, int, error) {
	if !nearest {
		n := min(len(a.Records), len(b.Records))
		pairs := make([][2]int, n)
		for i := range pairs {
			pairs[i] = [2]int{i, i}
		}
		return pairs, len(a.Records) - n, len(b.Records) - n, nil
	}
	if len(a.Records) == 0 || len(b.Records) == 0 {
		return nil, len(a.Records), len(b.Records), nil
	}
	pos, ok := a.Schema.PositionIndices()
	if !ok {
		return nil, 0, 0, &MissingPropertyError{Family: "position"}
	}
	idx := newPositionIndex(b.Records, pos)
	used := make([]bool, len(b.Records))
	pairs := make([][2]int, len(a.Records))
	for i, rec := range a.Records {
		j := idx.nearest(rec, pos)
		used[j] = true
		pairs[i] = [2]int{i, j}
	}
	unused := 0
	for _, u := range used {
		if !u {
			unused++
		}
	}
	return pairs, 0, unused, nil
}

// WriteDiffTable writes the differing cells of rep as comma separated text.
func WriteDiffTable(w io.Writer, rep *Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"row", "row_b", "property", "value_a", "value_b", "diff"}); err != nil {
		return err
	}
	for _, d := range rep.Details {
		row := []string{
			strconv.Itoa(d.Row),
			strconv.Itoa(d.RowB),
			d.Property,
			FormatValue(d.A),
			FormatValue(d.B),
			strconv.FormatFloat(d.Diff, 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
