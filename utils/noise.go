package utils

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/voxelsplace/gsplat/go/splat"
)

// NoiseSchema is the property layout of generated scenes: the standard 3DGS
// layout without higher-order SH.
var NoiseSchema = splat.Schema{
	"x", "y", "z",
	"nx", "ny", "nz",
	"f_dc_0", "f_dc_1", "f_dc_2",
	"opacity",
	"scale_0", "scale_1", "scale_2",
	"rot_0", "rot_1", "rot_2", "rot_3",
}

// GenerateNoiseFile creates count random splats inside the unit cube with unit
// quaternions, log scales around 1cm and SH DC colors in [-1.7, 1.7].
func GenerateNoiseFile(count int, r *rand.Rand) *splat.File {
	if count < 0 {
		count = 0
	}
	f := &splat.File{Schema: append(splat.Schema(nil), NoiseSchema...), Records: make([][]float32, count)}
	for i := range f.Records {
		rec := make([]float32, len(NoiseSchema))
		for k := 0; k < 3; k++ {
			rec[k] = r.Float32()*2 - 1
			rec[6+k] = (r.Float32()*2 - 1) * 1.7
			rec[10+k] = float32(math.Log(0.01)) + float32(r.NormFloat64()*0.3)
		}
		rec[9] = float32(r.NormFloat64() * 2)
		var q [4]float64
		var norm float64
		for k := range q {
			q[k] = r.NormFloat64()
			norm += q[k] * q[k]
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			q, norm = [4]float64{1, 0, 0, 0}, 1
		}
		for k := range q {
			rec[13+k] = float32(q[k] / norm)
		}
		f.Records[i] = rec
	}
	return f
}

// RunGenerateNoise creates amount files named 0.ply..(amount-1).ply in outDir,
// each holding count random splats.
func RunGenerateNoise(count, amount int, outDir string) error {
	if amount < 0 {
		amount = 0
	}
	if outDir == "" {
		outDir = "."
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	// Seed base once and derive per-file seeds deterministically
	baseSeed := uint64(time.Now().UnixNano())
	for i := 0; i < amount; i++ {
		const weyl = uint64(0x9e3779b97f4a7c15)
		seed := baseSeed ^ (uint64(i)+1)*weyl
		r := rand.New(rand.NewSource(int64(seed & 0x7fffffffffffffff)))

		f := GenerateNoiseFile(count, r)
		path := filepath.Join(outDir, fmt.Sprintf("%d.ply", i))
		if err := splat.Save(f, path); err != nil {
			return fmt.Errorf("save %s: %w", path, err)
		}
	}
	return nil
}
