package utils

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/voxelsplace/gsplat/go/splat"
)

// CreatePack reads splat PLY files and writes a .splatpack to outputFile.
// Inputs are read and validated concurrently; the pack keeps argument order.
func CreatePack(inputFiles []string, outputFile string, comp splat.PackCompression) error {
	if len(inputFiles) == 0 {
		return fmt.Errorf("no .ply files provided")
	}
	type item struct {
		name string
		data []byte
		err  error
	}
	items := make([]item, len(inputFiles))

	var wg sync.WaitGroup
	for i := range inputFiles {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			path := inputFiles[i]
			b, err := os.ReadFile(path)
			if err != nil {
				items[i].err = err
				return
			}
			if _, err := splat.Decode(b); err != nil {
				items[i].err = fmt.Errorf("%s: %w", path, err)
				return
			}
			items[i] = item{name: filepath.Base(path), data: b}
		}(i)
	}
	wg.Wait()

	pack := &splat.Pack{Entries: make([]splat.PackEntry, len(items))}
	for i, it := range items {
		if it.err != nil {
			return it.err
		}
		pack.Entries[i] = splat.PackEntry{Name: it.name, Data: it.data}
	}
	start := time.Now()
	data, err := pack.Marshal(comp)
	if err != nil {
		return err
	}
	log.Printf("pack: %d entries, %d bytes, compression took %d ms", len(pack.Entries), len(data), time.Since(start).Milliseconds())
	return splat.WriteFileAtomic(outputFile, data, 0o644)
}

// UnpackToDir writes the PLY entries of a .splatpack into outputDir.
func UnpackToDir(packFile, outputDir string) error {
	data, err := os.ReadFile(packFile)
	if err != nil {
		return err
	}
	pack, _, err := splat.UnmarshalPack(data)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}
	for _, e := range pack.Entries {
		name := filepath.Base(e.Name)
		if name == "." || name == ".." || name == string(filepath.Separator) {
			return fmt.Errorf("invalid entry name %q", e.Name)
		}
		if err := splat.WriteFileAtomic(filepath.Join(outputDir, name), e.Data, 0o644); err != nil {
			return err
		}
	}
	return nil
}

// UnpackToMemory returns names and decoded files without writing to disk.
func UnpackToMemory(packFile string) ([]string, []*splat.File, error) {
	data, err := os.ReadFile(packFile)
	if err != nil {
		return nil, nil, err
	}
	pack, _, err := splat.UnmarshalPack(data)
	if err != nil {
		return nil, nil, err
	}
	names := make([]string, len(pack.Entries))
	files := make([]*splat.File, len(pack.Entries))
	for i, e := range pack.Entries {
		f, err := splat.Decode(e.Data)
		if err != nil {
			return nil, nil, fmt.Errorf("entry %s: %w", e.Name, err)
		}
		names[i] = e.Name
		files[i] = f
	}
	return names, files, nil
}
