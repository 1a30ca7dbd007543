package splat

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"

	xxhash "github.com/cespare/xxhash/v2"
)

// Save encodes f and writes it to filename atomically.
func Save(f *File, filename string) error {
	data, err := Encode(f)
	if err != nil {
		return err
	}
	return WriteFileAtomic(filename, data, 0o644)
}

// Load reads and decodes a splat PLY file.
func Load(filename string) (*File, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// Decode parses a binary little-endian PLY from memory. Everything after the
// vertex block is returned verbatim as the footer.
func Decode(data []byte) (*File, error) {
	hdr, err := ParsePLYHeader(data)
	if err != nil {
		return nil, err
	}
	nprops := len(hdr.Properties)
	stride := nprops * 4
	body := data[hdr.Size:]
	if hdr.VertexCount > 0 && nprops == 0 {
		return nil, &MalformedHeaderError{Reason: "vertex element declares records but no properties"}
	}
	want := hdr.VertexCount * stride
	if hdr.VertexCount > 0 && (want/stride != hdr.VertexCount || len(body) < want) {
		return nil, &TruncatedDataError{VertexCount: hdr.VertexCount, Want: want, Got: len(body)}
	}

	f := &File{Schema: hdr.Properties, Records: make([][]float32, hdr.VertexCount)}
	for i := range f.Records {
		rec := make([]float32, nprops)
		off := i * stride
		for j := range rec {
			rec[j] = math.Float32frombits(binary.LittleEndian.Uint32(body[off+j*4:]))
		}
		f.Records[i] = rec
	}
	if footer := body[want:]; len(footer) > 0 {
		f.Footer = append([]byte{}, footer...)
	}
	return f, nil
}

// Encode renders f as a binary little-endian PLY followed by its footer.
func Encode(f *File) ([]byte, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	header := BuildPLYHeader(len(f.Records), f.Schema)
	var buf bytes.Buffer
	buf.Grow(len(header) + len(f.Records)*len(f.Schema)*4 + len(f.Footer))
	buf.Write(header)
	buf.Write(vertexBlock(f))
	buf.Write(f.Footer)
	return buf.Bytes(), nil
}

func vertexBlock(f *File) []byte {
	out := make([]byte, 0, len(f.Records)*len(f.Schema)*4)
	for _, rec := range f.Records {
		for _, v := range rec {
			out = binary.LittleEndian.AppendUint32(out, math.Float32bits(v))
		}
	}
	return out
}

// Checksum returns the xxhash64 of the encoded vertex block. Two files with the
// same checksum carry bit-identical records.
func Checksum(f *File) uint64 {
	return xxhash.Sum64(vertexBlock(f))
}
