package utils

import (
	"fmt"
	"io"

	"github.com/voxelsplace/gsplat/go/splat"
)

// RunInfo prints a summary of a splat PLY.
func RunInfo(w io.Writer, path string) (splat.Info, error) {
	f, err := splat.Load(path)
	if err != nil {
		return splat.Info{}, fmt.Errorf("load %s: %w", path, err)
	}
	info := splat.Describe(f)
	fmt.Fprintf(w, "File:       %s\n", path)
	fmt.Fprintf(w, "Vertices:   %d\n", info.VertexCount)
	fmt.Fprintf(w, "Properties: %d (%s)\n", len(info.Schema), info.Schema.Summary())
	fmt.Fprintf(w, "Color:      %s", info.Color)
	if info.Color != splat.ColorNone {
		fmt.Fprintf(w, " range [%g, %g]", info.ColorRange.Min, info.ColorRange.Max)
	}
	fmt.Fprintln(w)
	if info.HasPosition && info.VertexCount > 0 {
		fmt.Fprintf(w, "Bounds:     %v .. %v\n", info.BoundsMin, info.BoundsMax)
	}
	fmt.Fprintf(w, "Footer:     %d bytes\n", info.FooterBytes)
	fmt.Fprintf(w, "Checksum:   %016x\n", info.Checksum)
	return info, nil
}
