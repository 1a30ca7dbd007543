package splat

import (
	"gonum.org/v1/gonum/spatial/kdtree"
)

// indexedPoint is a 3D position that remembers which record it came from.
type indexedPoint struct {
	pos [3]float64
	row int
}

func (p indexedPoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(indexedPoint)
	return p.pos[d] - q.pos[d]
}

func (p indexedPoint) Dims() int { return 3 }

func (p indexedPoint) Distance(c kdtree.Comparable) float64 {
	q := c.(indexedPoint)
	var sum float64
	for i := range p.pos {
		d := p.pos[i] - q.pos[i]
		sum += d * d
	}
	return sum
}

type indexedPoints []indexedPoint

func (p indexedPoints) Index(i int) kdtree.Comparable { return p[i] }
func (p indexedPoints) Len() int                      { return len(p) }
func (p indexedPoints) Slice(start, end int) kdtree.Interface {
	return p[start:end]
}
func (p indexedPoints) Pivot(d kdtree.Dim) int {
	return pointPlane{Dim: d, points: p}.Pivot()
}

// pointPlane sorts points along one axis for median selection.
type pointPlane struct {
	kdtree.Dim
	points indexedPoints
}

func (p pointPlane) Less(i, j int) bool {
	return p.points[i].pos[p.Dim] < p.points[j].pos[p.Dim]
}
func (p pointPlane) Swap(i, j int) { p.points[i], p.points[j] = p.points[j], p.points[i] }
func (p pointPlane) Len() int      { return len(p.points) }
func (p pointPlane) Slice(start, end int) kdtree.SortSlicer {
	p.points = p.points[start:end]
	return p
}
func (p pointPlane) Pivot() int {
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}

// positionIndex answers nearest-position queries over a record set.
type positionIndex struct {
	tree *kdtree.Tree
}

func newPositionIndex(records [][]float32, pos [3]int) *positionIndex {
	pts := make(indexedPoints, len(records))
	for i, rec := range records {
		pts[i] = indexedPoint{pos: positionOf(rec, pos), row: i}
	}
	return &positionIndex{tree: kdtree.New(pts, false)}
}

// nearest returns the row of the record closest to rec's position.
func (ix *positionIndex) nearest(rec []float32, pos [3]int) int {
	got, _ := ix.tree.Nearest(indexedPoint{pos: positionOf(rec, pos)})
	return got.(indexedPoint).row
}

func positionOf(rec []float32, pos [3]int) [3]float64 {
	return [3]float64{float64(rec[pos[0]]), float64(rec[pos[1]]), float64(rec[pos[2]])}
}
