package utils

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/voxelsplace/gsplat/go/splat"
)

// DefaultFooterPath is the footer side-file used when none is given: input.ply -> input_footer.tmp.
func DefaultFooterPath(plyPath string) string {
	return strings.TrimSuffix(plyPath, filepath.Ext(plyPath)) + "_footer.tmp"
}

// RunPLY2CSV converts a splat PLY into an editable CSV and writes the footer
// side-file next to it. An empty footerPath uses DefaultFooterPath(inPath).
func RunPLY2CSV(inPath, csvPath, footerPath string) error {
	f, err := splat.Load(inPath)
	if err != nil {
		return fmt.Errorf("load %s: %w", inPath, err)
	}
	var buf bytes.Buffer
	if err := splat.WriteTable(&buf, f); err != nil {
		return fmt.Errorf("render CSV: %w", err)
	}
	if err := splat.WriteFileAtomic(csvPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("save CSV: %w", err)
	}
	if footerPath == "" {
		footerPath = DefaultFooterPath(inPath)
	}
	if err := splat.WriteFileAtomic(footerPath, f.Footer, 0o644); err != nil {
		return fmt.Errorf("save footer: %w", err)
	}
	log.Printf("ply2csv: %d vertices x %d properties -> %s (footer %d bytes -> %s)",
		len(f.Records), len(f.Schema), csvPath, len(f.Footer), footerPath)
	return nil
}

// RunCSV2PLY rebuilds a splat PLY from a CSV and an optional footer side-file.
// A missing footer file is treated as an empty footer.
func RunCSV2PLY(csvPath, footerPath, outPath string) error {
	data, err := os.ReadFile(csvPath)
	if err != nil {
		return fmt.Errorf("read CSV: %w", err)
	}
	f, err := splat.ReadTable(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("parse %s: %w", csvPath, err)
	}
	f.Footer, err = readFooter(footerPath)
	if err != nil {
		return err
	}
	if err := splat.Save(f, outPath); err != nil {
		return fmt.Errorf("save PLY: %w", err)
	}
	log.Printf("csv2ply: %d vertices -> %s", len(f.Records), outPath)
	return nil
}

func readFooter(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("footer %s not found, writing file without footer", path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read footer: %w", err)
	}
	return b, nil
}
