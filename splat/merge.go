package splat

// Merge concatenates the records of a and b: a's records first, then b's.
// The schemas must match. The result keeps a's footer; b's footer is dropped.
func Merge(a, b *File) (*File, error) {
	if !a.Schema.Equal(b.Schema) {
		return nil, &SchemaMismatchError{A: a.Schema, B: b.Schema}
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	out := &File{
		Schema:  append(Schema(nil), a.Schema...),
		Records: make([][]float32, 0, len(a.Records)+len(b.Records)),
	}
	out.Records = append(out.Records, cloneRecords(a.Records)...)
	out.Records = append(out.Records, cloneRecords(b.Records)...)
	if a.Footer != nil {
		out.Footer = append([]byte{}, a.Footer...)
	}
	return out, nil
}
