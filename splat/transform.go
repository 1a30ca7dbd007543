package splat

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Transform is a similarity transform applied as scale, then rotation about
// the Z axis, then translation.
type Transform struct {
	Translate  [3]float64
	Scale      float64 // 0 means 1
	RotateZDeg float64
}

// Apply returns a transformed copy of f. Positions are moved, rot_0..3
// quaternions (w,x,y,z) are rotated and log scales scale_* are offset by
// ln(Scale), so splats keep their shape relative to the scene.
func (t Transform) Apply(f *File) (*File, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	pos, ok := f.Schema.PositionIndices()
	if !ok {
		return nil, &MissingPropertyError{Family: "position"}
	}
	scale := t.Scale
	if scale == 0 {
		scale = 1
	}
	if scale < 0 || math.IsNaN(scale) {
		return nil, fmt.Errorf("transform scale must be positive, got %g", t.Scale)
	}
	rot := r3.NewRotation(t.RotateZDeg*math.Pi/180, r3.Vec{Z: 1})
	shift := r3.Vec{X: t.Translate[0], Y: t.Translate[1], Z: t.Translate[2]}
	quatIdx, hasQuat := rotationIndices(f.Schema)
	logScale := math.Log(scale)
	scaleIdx := f.Schema.familyIndices(FamilyScale)

	out := f.Clone()
	for _, rec := range out.Records {
		p := r3.Vec{X: float64(rec[pos[0]]), Y: float64(rec[pos[1]]), Z: float64(rec[pos[2]])}
		p = r3.Add(rot.Rotate(r3.Scale(scale, p)), shift)
		rec[pos[0]], rec[pos[1]], rec[pos[2]] = float32(p.X), float32(p.Y), float32(p.Z)

		if hasQuat && t.RotateZDeg != 0 {
			q := quat.Number{
				Real: float64(rec[quatIdx[0]]),
				Imag: float64(rec[quatIdx[1]]),
				Jmag: float64(rec[quatIdx[2]]),
				Kmag: float64(rec[quatIdx[3]]),
			}
			q = quat.Mul(quat.Number(rot), q)
			rec[quatIdx[0]], rec[quatIdx[1]] = float32(q.Real), float32(q.Imag)
			rec[quatIdx[2]], rec[quatIdx[3]] = float32(q.Jmag), float32(q.Kmag)
		}
		if logScale != 0 {
			for _, i := range scaleIdx {
				rec[i] = float32(float64(rec[i]) + logScale)
			}
		}
	}
	return out, nil
}

func rotationIndices(s Schema) ([4]int, bool) {
	for _, prefix := range []string{"rot_", "rotation_"} {
		var idx [4]int
		ok := true
		for k := range idx {
			idx[k] = s.Index(prefix + string(rune('0'+k)))
			if idx[k] < 0 {
				ok = false
				break
			}
		}
		if ok {
			return idx, true
		}
	}
	return [4]int{}, false
}
