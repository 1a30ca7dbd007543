package api

import (
	"bytes"
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/voxelsplace/gsplat/go/splat"
)

// PLYToCSV converts splat PLY bytes to comma separated text and returns the
// footer that must be handed back to CSVToPLY for a byte-exact round trip.
func PLYToCSV(plyBytes []byte) (csvBytes, footer []byte, err error) {
	f, err := splat.Decode(plyBytes)
	if err != nil {
		return nil, nil, err
	}
	var buf bytes.Buffer
	if err := splat.WriteTable(&buf, f); err != nil {
		return nil, nil, err
	}
	return buf.Bytes(), f.Footer, nil
}

// CSVToPLY rebuilds splat PLY bytes from comma separated text and a footer.
// A nil footer is valid and produces a file without trailing data.
func CSVToPLY(csvBytes, footer []byte) ([]byte, error) {
	f, err := splat.ReadTable(bytes.NewReader(csvBytes))
	if err != nil {
		return nil, err
	}
	f.Footer = footer
	return splat.Encode(f)
}

// PLYToPointCloud projects splat PLY bytes to a position+color PLY.
func PLYToPointCloud(plyBytes []byte) ([]byte, error) {
	f, err := splat.Decode(plyBytes)
	if err != nil {
		return nil, err
	}
	pc, err := splat.ToPointCloud(f)
	if err != nil {
		return nil, err
	}
	return splat.Encode(pc)
}

// PointCloudToPLY restores a full splat PLY from an edited point cloud and its donor.
func PointCloudToPLY(pcBytes, donorBytes []byte) ([]byte, error) {
	pc, err := splat.Decode(pcBytes)
	if err != nil {
		return nil, fmt.Errorf("point cloud: %w", err)
	}
	donor, err := splat.Decode(donorBytes)
	if err != nil {
		return nil, fmt.Errorf("donor: %w", err)
	}
	out, err := splat.FromPointCloud(pc, donor)
	if err != nil {
		return nil, err
	}
	return splat.Encode(out)
}

// MergePLYs concatenates two splat PLYs, a's vertices first.
func MergePLYs(a, b []byte) ([]byte, error) {
	fa, err := splat.Decode(a)
	if err != nil {
		return nil, fmt.Errorf("first file: %w", err)
	}
	fb, err := splat.Decode(b)
	if err != nil {
		return nil, fmt.Errorf("second file: %w", err)
	}
	out, err := splat.Merge(fa, fb)
	if err != nil {
		return nil, err
	}
	return splat.Encode(out)
}

// ComparePLYs decodes and compares two splat PLYs.
func ComparePLYs(a, b []byte, opts splat.CompareOptions) (*splat.Report, error) {
	fa, err := splat.Decode(a)
	if err != nil {
		return nil, fmt.Errorf("first file: %w", err)
	}
	fb, err := splat.Decode(b)
	if err != nil {
		return nil, fmt.Errorf("second file: %w", err)
	}
	return splat.Compare(fa, fb, opts)
}

// SplatToGLB takes splat PLY bytes and returns a .glb holding one POINTS primitive.
func SplatToGLB(plyBytes []byte) ([]byte, error) {
	f, err := splat.Decode(plyBytes)
	if err != nil {
		return nil, err
	}
	doc := gltf.NewDocument()
	doc.Asset.Generator = "3DGS PLY -> GLB"
	if err := AddPointsNode(doc, "Splats", f, [3]float32{}); err != nil {
		return nil, err
	}
	var out bytes.Buffer
	enc := gltf.NewEncoder(&out)
	enc.AsBinary = true
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// AddPointsNode appends f as a POINTS mesh plus a node translated by offset,
// and adds the node to the first scene. Colors come from the file's color
// properties (SH DC mapped through the basis constant), alpha from opacity.
func AddPointsNode(doc *gltf.Document, name string, f *splat.File, offset [3]float32) error {
	pos, ok := f.Schema.PositionIndices()
	if !ok {
		return &splat.MissingPropertyError{Family: "position"}
	}
	if len(f.Records) == 0 {
		return fmt.Errorf("%s: no vertices to export", name)
	}
	positions := make([][3]float32, len(f.Records))
	for i, rec := range f.Records {
		positions[i] = [3]float32{rec[pos[0]], rec[pos[1]], rec[pos[2]]}
	}
	colors, hasAlpha := pointColors(f)

	posAccessor := modeler.WritePosition(doc, positions)
	prim := &gltf.Primitive{
		Attributes: map[string]uint32{
			gltf.POSITION: uint32(posAccessor),
		},
		Mode: gltf.PrimitivePoints,
	}
	if colors != nil {
		colorAccessor := modeler.WriteColor(doc, colors)
		prim.Attributes[gltf.COLOR_0] = uint32(colorAccessor)
	}

	pbr := &gltf.PBRMetallicRoughness{BaseColorFactor: &[4]float32{1, 1, 1, 1}, MetallicFactor: gltf.Float(0), RoughnessFactor: gltf.Float(1)}
	material := &gltf.Material{PBRMetallicRoughness: pbr, AlphaMode: gltf.AlphaOpaque}
	if hasAlpha {
		material.AlphaMode = gltf.AlphaBlend
	}
	doc.Materials = append(doc.Materials, material)
	prim.Material = gltf.Index(uint32(len(doc.Materials) - 1))

	doc.Meshes = append(doc.Meshes, &gltf.Mesh{Name: name, Primitives: []*gltf.Primitive{prim}})
	node := &gltf.Node{Name: name, Mesh: gltf.Index(uint32(len(doc.Meshes) - 1))}
	node.Translation = offset
	doc.Nodes = append(doc.Nodes, node)
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(len(doc.Nodes)-1))
	return nil
}

// pointColors returns per-vertex RGBA in [0,1], or nil when the file has no color.
func pointColors(f *splat.File) ([][4]float32, bool) {
	enc, cidx := splat.DetectColorProperties(f.Schema)
	if enc == splat.ColorNone {
		return nil, false
	}
	// Standard colors may be stored as 0..255.
	div := float32(1)
	if enc == splat.ColorStandard && splat.ObserveColorRange(f.Records, cidx).Max > 1 {
		div = 255
	}
	opacity := f.Schema.Index("opacity")
	hasAlpha := false
	colors := make([][4]float32, len(f.Records))
	for i, rec := range f.Records {
		var c [4]float32
		for k, col := range cidx {
			v := rec[col]
			if enc == splat.ColorSH {
				v = splat.SHToRGB(v)
			} else {
				v /= div
			}
			c[k] = clamp01(v)
		}
		c[3] = 1
		if opacity >= 0 {
			c[3] = clamp01(float32(1 / (1 + math.Exp(-float64(rec[opacity])))))
			if c[3] < 1 {
				hasAlpha = true
			}
		}
		colors[i] = c
	}
	return colors, hasAlpha
}

func clamp01(v float32) float32 {
	if v < 0 || v != v {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// PackPLYs builds a .splatpack from provided file blobs and names.
func PackPLYs(files map[string][]byte, comp splat.PackCompression) ([]byte, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files")
	}
	pack := &splat.Pack{}
	for _, name := range slices.Sorted(maps.Keys(files)) {
		pack.Entries = append(pack.Entries, splat.PackEntry{Name: name, Data: files[name]})
	}
	return pack.Marshal(comp)
}

// UnpackSplatPackToMemory returns a map of file name -> PLY bytes from a .splatpack blob.
func UnpackSplatPackToMemory(packBytes []byte) (map[string][]byte, error) {
	pack, _, err := splat.UnmarshalPack(packBytes)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]byte, len(pack.Entries))
	for _, e := range pack.Entries {
		out[e.Name] = e.Data
	}
	return out, nil
}
