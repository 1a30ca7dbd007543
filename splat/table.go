package splat

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// FormatValue renders v with the shortest text that parses back to the same float32.
func FormatValue(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}

// ToRows renders the schema as a header row and each record as a row of
// round-trippable float strings.
func ToRows(schema Schema, records [][]float32) ([]string, [][]string) {
	header := append([]string(nil), schema...)
	rows := make([][]string, len(records))
	for i, rec := range records {
		row := make([]string, len(rec))
		for j, v := range rec {
			row[j] = FormatValue(v)
		}
		rows[i] = row
	}
	return header, rows
}

// FromRows parses tabular rows back into records. The header becomes the
// schema verbatim. A non-numeric cell fails with a FieldParseError naming the
// row and column.
func FromRows(header []string, rows [][]string) (Schema, [][]float32, error) {
	schema := append(Schema(nil), header...)
	records := make([][]float32, len(rows))
	for i, row := range rows {
		if len(row) != len(schema) {
			return nil, nil, &ColumnCountError{Row: i, Got: len(row), Want: len(schema)}
		}
		rec := make([]float32, len(row))
		for j, cell := range row {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 32)
			if err != nil {
				return nil, nil, &FieldParseError{Row: i, Column: j, Name: schema[j], Raw: cell, Err: err}
			}
			rec[j] = float32(v)
		}
		records[i] = rec
	}
	return schema, records, nil
}

// WriteTable writes f as comma separated text: header first, then one row per record.
func WriteTable(w io.Writer, f *File) error {
	header, rows := ToRows(f.Schema, f.Records)
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

// ReadTable parses comma separated text written by WriteTable (or edited by hand).
// The returned file has no footer.
func ReadTable(r io.Reader) (*File, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("table is empty: no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	schema, records, err := FromRows(header, rows)
	if err != nil {
		return nil, err
	}
	return &File{Schema: schema, Records: records}, nil
}
