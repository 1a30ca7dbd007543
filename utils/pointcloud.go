package utils

import (
	"fmt"
	"log"

	"github.com/voxelsplace/gsplat/go/splat"
)

// RunPLY2PointCloud writes the position+color projection of a splat PLY.
func RunPLY2PointCloud(inPath, outPath string) error {
	f, err := splat.Load(inPath)
	if err != nil {
		return fmt.Errorf("load %s: %w", inPath, err)
	}
	pc, err := splat.ToPointCloud(f)
	if err != nil {
		return err
	}
	if err := splat.Save(pc, outPath); err != nil {
		return fmt.Errorf("save point cloud: %w", err)
	}
	log.Printf("ply2pc: %d points %v -> %s", len(pc.Records), []string(pc.Schema), outPath)
	return nil
}

// RunPointCloud2PLY restores a full splat PLY from an edited point cloud,
// taking every non-positional attribute from donorPath.
func RunPointCloud2PLY(pcPath, donorPath, outPath string) error {
	pc, err := splat.Load(pcPath)
	if err != nil {
		return fmt.Errorf("load point cloud: %w", err)
	}
	donor, err := splat.Load(donorPath)
	if err != nil {
		return fmt.Errorf("load donor: %w", err)
	}
	out, err := splat.FromPointCloud(pc, donor)
	if err != nil {
		return err
	}
	if err := splat.Save(out, outPath); err != nil {
		return fmt.Errorf("save PLY: %w", err)
	}
	log.Printf("pc2ply: %d vertices -> %s", len(out.Records), outPath)
	return nil
}
