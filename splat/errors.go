package splat

import (
	"errors"
	"fmt"
)

// MalformedHeaderError reports a PLY header that cannot be parsed.
type MalformedHeaderError struct {
	Reason string
}

func (e *MalformedHeaderError) Error() string {
	return fmt.Sprintf("malformed PLY header: %s", e.Reason)
}

// TruncatedDataError reports a vertex block shorter than the header declares.
type TruncatedDataError struct {
	VertexCount int
	Want        int
	Got         int
}

func (e *TruncatedDataError) Error() string {
	return fmt.Sprintf("truncated vertex data: %d vertices need %d bytes, only %d available", e.VertexCount, e.Want, e.Got)
}

// UnsupportedPropertyTypeError reports a vertex property that is not a 32-bit float.
type UnsupportedPropertyTypeError struct {
	Line int
	Type string
	Name string
}

func (e *UnsupportedPropertyTypeError) Error() string {
	return fmt.Sprintf("header line %d: property %q has unsupported type %q (only float is supported)", e.Line, e.Name, e.Type)
}

// FieldParseError identifies a tabular cell that is not a number.
// Row is the 0-based data row (the header is not counted), Column the 0-based column.
type FieldParseError struct {
	Row    int
	Column int
	Name   string
	Raw    string
	Err    error
}

func (e *FieldParseError) Error() string {
	return fmt.Sprintf("row %d, column %d (%s): cannot parse %q as float", e.Row, e.Column, e.Name, e.Raw)
}

func (e *FieldParseError) Unwrap() error { return e.Err }

// ColumnCountError reports a tabular row whose width differs from the header.
type ColumnCountError struct {
	Row  int
	Got  int
	Want int
}

func (e *ColumnCountError) Error() string {
	return fmt.Sprintf("row %d has %d columns, header has %d", e.Row, e.Got, e.Want)
}

// PropertyNameError reports a property name that cannot be written to a PLY header.
type PropertyNameError struct {
	Column int
	Name   string
	Reason string
}

func (e *PropertyNameError) Error() string {
	return fmt.Sprintf("column %d: invalid property name %q: %s", e.Column, e.Name, e.Reason)
}

// SchemaMismatchError reports two files whose property lists differ.
type SchemaMismatchError struct {
	A, B Schema
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("schemas differ: %v vs %v", []string(e.A), []string(e.B))
}

// RecordCountMismatchError reports index-paired files with different lengths.
type RecordCountMismatchError struct {
	Got  int
	Want int
}

func (e *RecordCountMismatchError) Error() string {
	return fmt.Sprintf("record count mismatch: point cloud has %d records, donor has %d", e.Got, e.Want)
}

// MissingPropertyError reports a required property family absent from a schema.
type MissingPropertyError struct {
	Family string
}

func (e *MissingPropertyError) Error() string {
	return fmt.Sprintf("schema has no %s properties", e.Family)
}

// IsMalformedHeader reports whether err is, or wraps, a MalformedHeaderError.
func IsMalformedHeader(err error) bool {
	var e *MalformedHeaderError
	return errors.As(err, &e)
}

// IsTruncated reports whether err is, or wraps, a TruncatedDataError.
func IsTruncated(err error) bool {
	var e *TruncatedDataError
	return errors.As(err, &e)
}

// IsSchemaMismatch reports whether err is, or wraps, a SchemaMismatchError.
func IsSchemaMismatch(err error) bool {
	var e *SchemaMismatchError
	return errors.As(err, &e)
}
