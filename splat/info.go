package splat

import "math"

// Info summarizes a decoded file.
type Info struct {
	VertexCount int
	Schema      Schema
	Color       ColorEncoding
	ColorRange  ColorRange
	HasPosition bool
	BoundsMin   [3]float32
	BoundsMax   [3]float32
	FooterBytes int
	Checksum    uint64
}

// Describe computes the summary of f.
func Describe(f *File) Info {
	info := Info{
		VertexCount: len(f.Records),
		Schema:      f.Schema,
		FooterBytes: len(f.Footer),
		Checksum:    Checksum(f),
	}
	enc, cidx := DetectColorProperties(f.Schema)
	info.Color = enc
	if enc != ColorNone {
		info.ColorRange = ObserveColorRange(f.Records, cidx)
	}
	pos, ok := f.Schema.PositionIndices()
	info.HasPosition = ok
	if ok && len(f.Records) > 0 {
		for k := range 3 {
			info.BoundsMin[k] = float32(math.Inf(1))
			info.BoundsMax[k] = float32(math.Inf(-1))
		}
		for _, rec := range f.Records {
			for k, c := range pos {
				info.BoundsMin[k] = min(info.BoundsMin[k], rec[c])
				info.BoundsMax[k] = max(info.BoundsMax[k], rec[c])
			}
		}
	}
	return info
}
