package splat

import "math"

// ColorEncoding tags how a schema stores base color.
type ColorEncoding int

const (
	ColorNone ColorEncoding = iota
	ColorStandard
	ColorSH
)

func (c ColorEncoding) String() string {
	switch c {
	case ColorStandard:
		return "standard"
	case ColorSH:
		return "spherical_harmonic"
	default:
		return "none"
	}
}

// SHC0 is the zeroth-order real spherical harmonic basis constant.
const SHC0 = 0.28209479177387814

var colorTriples = []struct {
	enc   ColorEncoding
	names [3]string
}{
	// SH first: it is the native 3DGS encoding, standard names only show up
	// as an editing artifact.
	{ColorSH, [3]string{"f_dc_0", "f_dc_1", "f_dc_2"}},
	{ColorStandard, [3]string{"r", "g", "b"}},
	{ColorStandard, [3]string{"red", "green", "blue"}},
}

// DetectColorProperties classifies the color encoding of schema and returns
// the column indices of the color triple. With ColorNone all indices are -1.
func DetectColorProperties(schema Schema) (ColorEncoding, [3]int) {
	for _, t := range colorTriples {
		if idx, ok := schema.lookup3(t.names[0], t.names[1], t.names[2]); ok {
			return t.enc, idx
		}
	}
	return ColorNone, [3]int{-1, -1, -1}
}

// ColorRange is the value range observed over the three color columns.
// Signed is set when the range includes negative values.
type ColorRange struct {
	Min    float64
	Max    float64
	Signed bool
}

// ObserveColorRange scans the color columns of all records.
// An empty record set yields the zero range.
func ObserveColorRange(records [][]float32, idx [3]int) ColorRange {
	if len(records) == 0 {
		return ColorRange{}
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, rec := range records {
		for _, c := range idx {
			v := float64(rec[c])
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	return ColorRange{Min: lo, Max: hi, Signed: lo < 0}
}

// NormalizeForEditing returns a copy of records with SH color columns mapped
// linearly from their observed range onto [0,1]. Standard colors are copied
// unchanged. A flat or empty range maps every color value to 0.
func NormalizeForEditing(records [][]float32, idx [3]int, enc ColorEncoding) ([][]float32, ColorRange) {
	out := cloneRecords(records)
	if enc == ColorNone {
		return out, ColorRange{}
	}
	rng := ObserveColorRange(records, idx)
	if enc != ColorSH {
		return out, rng
	}
	span := rng.Max - rng.Min
	for _, rec := range out {
		for _, c := range idx {
			if span == 0 {
				rec[c] = 0
				continue
			}
			rec[c] = float32((float64(rec[c]) - rng.Min) / span)
		}
	}
	return out, rng
}

// DenormalizeToSH maps [0,1] editing values back onto rng. Values outside
// [0,1] extrapolate linearly and are not clamped.
func DenormalizeToSH(rgb [][3]float32, rng ColorRange) [][3]float32 {
	span := rng.Max - rng.Min
	out := make([][3]float32, len(rgb))
	for i, t := range rgb {
		for c := range t {
			out[i][c] = float32(rng.Min + float64(t[c])*span)
		}
	}
	return out
}

// SHToRGB converts a DC coefficient to its absolute 3DGS color value.
func SHToRGB(dc float32) float32 {
	return float32(0.5 + SHC0*float64(dc))
}

// RGBToSH is the inverse of SHToRGB.
func RGBToSH(v float32) float32 {
	return float32((float64(v) - 0.5) / SHC0)
}
