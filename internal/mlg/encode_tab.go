package mlg

import (
	"encoding/csv"
	"io"
	"strconv"
)

// WriteTable writes the document as tab-delimited text: a field-name row,
// a units row, then one row of calibrated values per measurement block.
// Marker blocks carry no per-field values and produce no row.
func (d *Document) WriteTable(w io.Writer) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	names := make([]string, len(d.Fields))
	units := make([]string, len(d.Fields))
	for i := range d.Fields {
		names[i] = d.Fields[i].Name
		units[i] = d.Fields[i].Units
	}
	if err := cw.Write(names); err != nil {
		return err
	}
	if err := cw.Write(units); err != nil {
		return err
	}

	row := make([]string, len(d.Fields))
	for i := range d.Blocks {
		blk := &d.Blocks[i]
		if blk.Type != BlockField {
			continue
		}
		for j := range d.Fields {
			f := &d.Fields[j]
			row[j] = f.displayValue(blk.Records[f.Name])
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// displayValue calibrates a raw sample and renders its tabular cell text.
// Only Float-style fields honour the digit precision; every other style
// falls back to the plain decimal value.
func (f *LoggerField) displayValue(raw float64) string {
	v := (raw + float64(f.Transform)) * float64(f.Scale)
	if f.Style == StyleFloat {
		return strconv.FormatFloat(v, 'f', int(f.Digits), 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
