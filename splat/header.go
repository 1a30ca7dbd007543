package splat

import (
	"bytes"
	"strconv"
	"strings"
)

const (
	headerTerminator = "end_header\n"
	formatBinaryLE   = "binary_little_endian"
)

// PLYHeader holds the parts of a PLY header this package understands.
// Size is the header length in bytes, terminator included.
type PLYHeader struct {
	VertexCount int
	Properties  Schema
	Size        int
}

// ParsePLYHeader locates and parses the ASCII header at the start of data.
//
// Only float properties of the vertex element are accepted. Properties of
// other elements are skipped; their payload, if any, is kept in the footer.
func ParsePLYHeader(data []byte) (PLYHeader, error) {
	var hdr PLYHeader
	// The terminator must be a line of its own, not the tail of a property name.
	end := bytes.Index(data, []byte("\n"+headerTerminator))
	if end < 0 {
		return hdr, &MalformedHeaderError{Reason: "no end_header line"}
	}
	hdr.Size = end + 1 + len(headerTerminator)

	element := ""
	sawVertex := false
	lines := strings.Split(string(data[:end]), "\n")
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "format":
			if len(fields) < 2 || fields[1] != formatBinaryLE {
				return hdr, &MalformedHeaderError{Reason: "unsupported format line " + strconv.Quote(line)}
			}
		case "element":
			if len(fields) < 2 {
				return hdr, &MalformedHeaderError{Reason: "element line without name"}
			}
			element = fields[1]
			if element != "vertex" {
				continue
			}
			if len(fields) != 3 {
				return hdr, &MalformedHeaderError{Reason: "bad vertex element line " + strconv.Quote(line)}
			}
			n, err := strconv.Atoi(fields[2])
			if err != nil || n < 0 {
				return hdr, &MalformedHeaderError{Reason: "bad vertex count " + strconv.Quote(fields[2])}
			}
			hdr.VertexCount = n
			sawVertex = true
		case "property":
			if element != "vertex" {
				continue
			}
			if len(fields) < 3 {
				return hdr, &MalformedHeaderError{Reason: "bad property line " + strconv.Quote(line)}
			}
			typ, name := fields[1], fields[len(fields)-1]
			if len(fields) != 3 || (typ != "float" && typ != "float32") {
				return hdr, &UnsupportedPropertyTypeError{Line: i + 1, Type: typ, Name: name}
			}
			hdr.Properties = append(hdr.Properties, name)
		}
	}
	if !sawVertex {
		return hdr, &MalformedHeaderError{Reason: "no element vertex line"}
	}
	return hdr, nil
}

// BuildPLYHeader renders the canonical header for n vertices with the given properties.
func BuildPLYHeader(n int, props Schema) []byte {
	var buf bytes.Buffer
	buf.WriteString("ply\nformat binary_little_endian 1.0\n")
	buf.WriteString("element vertex ")
	buf.WriteString(strconv.Itoa(n))
	buf.WriteByte('\n')
	for _, p := range props {
		buf.WriteString("property float ")
		buf.WriteString(p)
		buf.WriteByte('\n')
	}
	buf.WriteString(headerTerminator)
	return buf.Bytes()
}
