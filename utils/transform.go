package utils

import (
	"fmt"
	"log"

	"github.com/voxelsplace/gsplat/go/splat"
)

// RunTransform applies t to a splat PLY and writes the result.
func RunTransform(inPath, outPath string, t splat.Transform) error {
	f, err := splat.Load(inPath)
	if err != nil {
		return fmt.Errorf("load %s: %w", inPath, err)
	}
	out, err := t.Apply(f)
	if err != nil {
		return err
	}
	if err := splat.Save(out, outPath); err != nil {
		return fmt.Errorf("save PLY: %w", err)
	}
	log.Printf("transform: scale=%g rotz=%gdeg translate=%v -> %s", t.Scale, t.RotateZDeg, t.Translate, outPath)
	return nil
}
