package utils

import (
	"bytes"
	"fmt"
	"io"
	"log"

	"github.com/voxelsplace/gsplat/go/splat"
)

// RunCompare compares two splat PLYs. When diffPath is set the differing cells
// are written there as CSV.
func RunCompare(aPath, bPath string, opts splat.CompareOptions, diffPath string) (*splat.Report, error) {
	a, err := splat.Load(aPath)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", aPath, err)
	}
	b, err := splat.Load(bPath)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", bPath, err)
	}
	rep, err := splat.Compare(a, b, opts)
	if err != nil {
		return nil, err
	}
	if diffPath != "" {
		var buf bytes.Buffer
		if err := splat.WriteDiffTable(&buf, rep); err != nil {
			return nil, err
		}
		if err := splat.WriteFileAtomic(diffPath, buf.Bytes(), 0o644); err != nil {
			return nil, fmt.Errorf("save diff CSV: %w", err)
		}
		log.Printf("compare: %d differing cells -> %s", len(rep.Details), diffPath)
	}
	return rep, nil
}

// PrintReport writes a human readable summary of rep.
func PrintReport(w io.Writer, rep *splat.Report) {
	fmt.Fprintf(w, "Compared records:  %d\n", rep.Compared)
	fmt.Fprintf(w, "Identical records: %d\n", rep.Identical)
	fmt.Fprintf(w, "Different records: %d\n", rep.Different)
	if rep.ExtraA > 0 || rep.ExtraB > 0 {
		fmt.Fprintf(w, "Extra records:     %d only in A, %d only in B\n", rep.ExtraA, rep.ExtraB)
	}
	fmt.Fprintf(w, "Vertex checksums:  %016x / %016x\n", rep.ChecksumA, rep.ChecksumB)
	for _, p := range rep.Properties {
		if p.MaxDiff == 0 {
			continue
		}
		fmt.Fprintf(w, "  %-12s max=%g mean=%g\n", p.Name, p.MaxDiff, p.MeanDiff)
	}
	if rep.Equal() {
		fmt.Fprintln(w, "Files are identical within tolerance.")
	}
}
