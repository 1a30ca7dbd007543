package splat

import (
	"fmt"
	"strings"
	"unicode"
)

// Schema is the ordered list of float properties of a vertex record.
// Order is significant and names are never reordered or deduplicated.
type Schema []string

// Index returns the position of the first property called name, or -1.
func (s Schema) Index(name string) int {
	for i, n := range s {
		if n == name {
			return i
		}
	}
	return -1
}

// Indexes maps property names to their positions. For duplicated names the
// first occurrence wins, matching Index.
func (s Schema) Indexes() map[string]int {
	m := make(map[string]int, len(s))
	for i, n := range s {
		if _, ok := m[n]; !ok {
			m[n] = i
		}
	}
	return m
}

// Equal reports whether both schemas have the same names in the same order.
func (s Schema) Equal(o Schema) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}
	return true
}

// lookup3 returns the indices of three names, or false if any is missing.
func (s Schema) lookup3(a, b, c string) ([3]int, bool) {
	idx := [3]int{s.Index(a), s.Index(b), s.Index(c)}
	if idx[0] < 0 || idx[1] < 0 || idx[2] < 0 {
		return [3]int{-1, -1, -1}, false
	}
	return idx, true
}

// PositionIndices locates the position triple, x/y/z first, then pos_0..2.
func (s Schema) PositionIndices() ([3]int, bool) {
	if idx, ok := s.lookup3("x", "y", "z"); ok {
		return idx, true
	}
	return s.lookup3("pos_0", "pos_1", "pos_2")
}

// File is a decoded splat PLY: schema, one float32 record per vertex, and the
// opaque bytes that followed the vertex block.
type File struct {
	Schema  Schema
	Records [][]float32
	Footer  []byte
}

// Validate checks that every property name can be written to a PLY header
// and that every record has one field per property.
func (f *File) Validate() error {
	for i, name := range f.Schema {
		if reason := badPropertyName(name); reason != "" {
			return &PropertyNameError{Column: i, Name: name, Reason: reason}
		}
	}
	if len(f.Schema) == 0 && len(f.Records) > 0 {
		return &MissingPropertyError{Family: "vertex"}
	}
	for i, r := range f.Records {
		if len(r) != len(f.Schema) {
			return &ColumnCountError{Row: i, Got: len(r), Want: len(f.Schema)}
		}
	}
	return nil
}

// Clone returns a deep copy of f.
func (f *File) Clone() *File {
	out := &File{
		Schema:  append(Schema(nil), f.Schema...),
		Records: cloneRecords(f.Records),
	}
	if f.Footer != nil {
		out.Footer = append([]byte{}, f.Footer...)
	}
	return out
}

func cloneRecords(recs [][]float32) [][]float32 {
	out := make([][]float32, len(recs))
	for i, r := range recs {
		out[i] = append([]float32(nil), r...)
	}
	return out
}

// PropertyFamily groups property names by meaning.
type PropertyFamily int

const (
	FamilyOther PropertyFamily = iota
	FamilyPosition
	FamilyNormal
	FamilyRotation
	FamilyScale
	FamilyOpacity
	FamilyColor
	FamilySHDC
	FamilySHRest
)

func (p PropertyFamily) String() string {
	switch p {
	case FamilyPosition:
		return "position"
	case FamilyNormal:
		return "normal"
	case FamilyRotation:
		return "rotation"
	case FamilyScale:
		return "scale"
	case FamilyOpacity:
		return "opacity"
	case FamilyColor:
		return "color"
	case FamilySHDC:
		return "sh_dc"
	case FamilySHRest:
		return "sh_rest"
	default:
		return "other"
	}
}

// Classify returns the family a property name belongs to. Unknown names are
// FamilyOther and are carried through every operation untouched.
func Classify(name string) PropertyFamily {
	switch name {
	case "x", "y", "z", "pos_0", "pos_1", "pos_2":
		return FamilyPosition
	case "nx", "ny", "nz":
		return FamilyNormal
	case "opacity":
		return FamilyOpacity
	case "r", "g", "b", "red", "green", "blue":
		return FamilyColor
	}
	switch {
	case hasIndexSuffix(name, "rot_"), hasIndexSuffix(name, "rotation_"):
		return FamilyRotation
	case hasIndexSuffix(name, "scale_"):
		return FamilyScale
	case hasIndexSuffix(name, "f_dc_"):
		return FamilySHDC
	case hasIndexSuffix(name, "f_rest_"):
		return FamilySHRest
	}
	return FamilyOther
}

func hasIndexSuffix(name, prefix string) bool {
	rest, ok := strings.CutPrefix(name, prefix)
	if !ok || rest == "" {
		return false
	}
	for _, c := range rest {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// familyIndices returns the positions of all properties in family fam, in schema order.
func (s Schema) familyIndices(fam PropertyFamily) []int {
	var out []int
	for i, n := range s {
		if Classify(n) == fam {
			out = append(out, i)
		}
	}
	return out
}

// Summary returns a one-line description of the schema grouped by family.
func (s Schema) Summary() string {
	counts := map[PropertyFamily]int{}
	for _, n := range s {
		counts[Classify(n)]++
	}
	var parts []string
	for fam := FamilyPosition; fam <= FamilySHRest; fam++ {
		if c := counts[fam]; c > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", fam, c))
		}
	}
	if c := counts[FamilyOther]; c > 0 {
		parts = append(parts, fmt.Sprintf("other=%d", c))
	}
	return strings.Join(parts, " ")
}

// badPropertyName returns why name cannot appear in a "property float <name>"
// header line, or "" when it can.
func badPropertyName(name string) string {
	switch {
	case name == "":
		return "name is empty"
	case strings.ContainsFunc(name, unicode.IsSpace):
		return "name contains whitespace"
	case name == "end_header":
		return "name is the header terminator"
	}
	return ""
}
