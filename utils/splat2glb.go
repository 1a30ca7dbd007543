package utils

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/voxelsplace/gsplat/go/api"
	"github.com/voxelsplace/gsplat/go/splat"
)

// RunSplat2GLB exports the splat centers of a PLY as a point-cloud .glb.
func RunSplat2GLB(inPath, outPath string) error {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}
	glb, err := api.SplatToGLB(data)
	if err != nil {
		return err
	}
	return splat.WriteFileAtomic(outPath, glb, 0o644)
}

// RunPack2GLB converts a .splatpack into a .glb with one points node per entry.
// Entries are laid out side by side along X so they do not overlap.
func RunPack2GLB(inPackPath, outGlbPath string) error {
	data, err := os.ReadFile(inPackPath)
	if err != nil {
		return err
	}
	pack, _, err := splat.UnmarshalPack(data)
	if err != nil {
		return err
	}
	if len(pack.Entries) == 0 {
		return fmt.Errorf("empty pack: no entries")
	}

	doc := gltf.NewDocument()
	doc.Asset.Generator = "SPLATPACK -> GLB"

	var offsetX float32
	for i, e := range pack.Entries {
		f, err := splat.Decode(e.Data)
		if err != nil {
			return fmt.Errorf("entry %d (%s): %w", i, e.Name, err)
		}
		info := splat.Describe(f)
		width := info.BoundsMax[0] - info.BoundsMin[0]
		if math.IsInf(float64(width), 0) || width < 0 {
			width = 0
		}
		offset := [3]float32{offsetX - info.BoundsMin[0], 0, 0}
		if err := api.AddPointsNode(doc, filepath.Base(e.Name), f, offset); err != nil {
			return fmt.Errorf("entry %d (%s): %w", i, e.Name, err)
		}
		offsetX += width
	}

	var out bytes.Buffer
	enc := gltf.NewEncoder(&out)
	enc.AsBinary = true
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return splat.WriteFileAtomic(outGlbPath, out.Bytes(), 0o644)
}
