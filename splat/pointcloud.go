package splat

// Point cloud color columns for SH sources. Standard sources keep their own names.
var pointCloudColorNames = [3]string{"red", "green", "blue"}

// ToPointCloud projects f down to position and, when present, color. SH color
// is emitted as red/green/blue normalized to [0,1] over the observed range;
// standard color is copied under its original names. All other properties and
// the footer are dropped.
func ToPointCloud(f *File) (*File, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	pos, ok := f.Schema.PositionIndices()
	if !ok {
		return nil, &MissingPropertyError{Family: "position"}
	}
	enc, cidx := DetectColorProperties(f.Schema)

	schema := Schema{f.Schema[pos[0]], f.Schema[pos[1]], f.Schema[pos[2]]}
	src := f.Records
	switch enc {
	case ColorSH:
		schema = append(schema, pointCloudColorNames[:]...)
		src, _ = NormalizeForEditing(f.Records, cidx, enc)
	case ColorStandard:
		schema = append(schema, f.Schema[cidx[0]], f.Schema[cidx[1]], f.Schema[cidx[2]])
	}

	out := &File{Schema: schema, Records: make([][]float32, len(src))}
	for i, rec := range src {
		pc := make([]float32, 0, len(schema))
		pc = append(pc, rec[pos[0]], rec[pos[1]], rec[pos[2]])
		if enc != ColorNone {
			pc = append(pc, rec[cidx[0]], rec[cidx[1]], rec[cidx[2]])
		}
		out.Records[i] = pc
	}
	return out, nil
}

// FromPointCloud rebuilds a full splat file from an edited point cloud and the
// donor it was projected from. Rows pair by index. Position, and color when
// both sides carry it, come from pc; every other field and the footer come
// from donor. For an SH donor the [0,1] colors are mapped back onto the
// donor's observed coefficient range.
func FromPointCloud(pc, donor *File) (*File, error) {
	if err := pc.Validate(); err != nil {
		return nil, err
	}
	if err := donor.Validate(); err != nil {
		return nil, err
	}
	if len(pc.Records) != len(donor.Records) {
		return nil, &RecordCountMismatchError{Got: len(pc.Records), Want: len(donor.Records)}
	}
	pcPos, ok := pc.Schema.PositionIndices()
	if !ok {
		return nil, &MissingPropertyError{Family: "point cloud position"}
	}
	dPos, ok := donor.Schema.PositionIndices()
	if !ok {
		return nil, &MissingPropertyError{Family: "donor position"}
	}
	pcEnc, pcCol := DetectColorProperties(pc.Schema)
	dEnc, dCol := DetectColorProperties(donor.Schema)
	copyColor := pcEnc != ColorNone && dEnc != ColorNone

	var colors [][3]float32
	if copyColor {
		colors = make([][3]float32, len(pc.Records))
		for i, rec := range pc.Records {
			colors[i] = [3]float32{rec[pcCol[0]], rec[pcCol[1]], rec[pcCol[2]]}
		}
		if dEnc == ColorSH && pcEnc == ColorStandard {
			colors = DenormalizeToSH(colors, ObserveColorRange(donor.Records, dCol))
		}
	}

	out := donor.Clone()
	for i, rec := range out.Records {
		src := pc.Records[i]
		for k := range dPos {
			rec[dPos[k]] = src[pcPos[k]]
		}
		if copyColor {
			for k := range dCol {
				rec[dCol[k]] = colors[i][k]
			}
		}
	}
	return out, nil
}
