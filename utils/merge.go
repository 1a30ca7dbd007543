package utils

import (
	"fmt"
	"log"

	"github.com/voxelsplace/gsplat/go/splat"
)

// RunMerge writes the vertices of aPath followed by those of bPath to outPath.
func RunMerge(aPath, bPath, outPath string) error {
	a, err := splat.Load(aPath)
	if err != nil {
		return fmt.Errorf("load %s: %w", aPath, err)
	}
	b, err := splat.Load(bPath)
	if err != nil {
		return fmt.Errorf("load %s: %w", bPath, err)
	}
	out, err := splat.Merge(a, b)
	if err != nil {
		return err
	}
	if err := splat.Save(out, outPath); err != nil {
		return fmt.Errorf("save merged PLY: %w", err)
	}
	log.Printf("merge: %d + %d vertices -> %s", len(a.Records), len(b.Records), outPath)
	return nil
}
