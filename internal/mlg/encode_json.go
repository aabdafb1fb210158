package mlg

import (
	"bytes"
	"io"
	"strconv"

	json "github.com/goccy/go-json"
)

// jsonDocument is the wire shape of the JSON output. Block values stay
// raw: scale and transform apply to tabular output only.
type jsonDocument struct {
	FileFormat      string      `json:"fileFormat"`
	FormatVersion   int16       `json:"formatVersion"`
	Timestamp       int32       `json:"timestamp"`
	InfoDataStart   int16       `json:"infoDataStart"`
	DataBeginIndex  int32       `json:"dataBeginIndex"`
	RecordLength    int16       `json:"recordLength"`
	NumLoggerFields int16       `json:"numLoggerFields"`
	Fields          []jsonField `json:"fields"`
	BitFieldNames   string      `json:"bitFieldNames"`
	InfoData        string      `json:"infoData"`
	DataBlocks      []jsonBlock `json:"dataBlocks"`
}

type jsonField struct {
	FieldType    int8    `json:"fieldType"`
	Name         string  `json:"name"`
	Units        string  `json:"units"`
	DisplayStyle string  `json:"displayStyle"`
	Scale        float32 `json:"scale"`
	Transform    float32 `json:"transform"`
	Digits       int8    `json:"digits"`
}

// jsonBlock serializes one data block with its variant-specific shape:
// per-field members in descriptor order for measurements, a single
// message member for markers.
type jsonBlock struct {
	block  *DataBlock
	fields []LoggerField
}

func (b jsonBlock) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"timestamp":`)
	buf.WriteString(strconv.FormatUint(uint64(b.block.Timestamp), 10))
	buf.WriteString(`,"type":`)
	if err := appendJSON(&buf, b.block.Type.String()); err != nil {
		return nil, err
	}

	switch b.block.Type {
	case BlockField:
		for i := range b.fields {
			buf.WriteByte(',')
			if err := appendJSON(&buf, b.fields[i].Name); err != nil {
				return nil, err
			}
			buf.WriteByte(':')
			if err := appendJSON(&buf, b.block.Records[b.fields[i].Name]); err != nil {
				return nil, err
			}
		}
	case BlockMarker:
		buf.WriteString(`,"message":`)
		if err := appendJSON(&buf, b.block.Message); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func appendJSON(buf *bytes.Buffer, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(raw)
	return nil
}

// MarshalJSON renders the whole document in the lower-camel-case shape
// described in the format notes.
func (d *Document) MarshalJSON() ([]byte, error) {
	out := jsonDocument{
		FileFormat:      d.Header.FileFormat,
		FormatVersion:   d.Header.FormatVersion,
		Timestamp:       d.Header.Timestamp,
		InfoDataStart:   d.Header.InfoDataStart,
		DataBeginIndex:  d.Header.DataBeginIndex,
		RecordLength:    d.Header.RecordLength,
		NumLoggerFields: d.Header.NumLoggerFields,
		Fields:          make([]jsonField, 0, len(d.Fields)),
		BitFieldNames:   d.BitFieldNames,
		InfoData:        d.InfoData,
		DataBlocks:      make([]jsonBlock, 0, len(d.Blocks)),
	}
	for i := range d.Fields {
		f := &d.Fields[i]
		out.Fields = append(out.Fields, jsonField{
			FieldType:    int8(f.Type),
			Name:         f.Name,
			Units:        f.Units,
			DisplayStyle: f.Style.String(),
			Scale:        f.Scale,
			Transform:    f.Transform,
			Digits:       f.Digits,
		})
	}
	for i := range d.Blocks {
		out.DataBlocks = append(out.DataBlocks, jsonBlock{
			block:  &d.Blocks[i],
			fields: d.Fields,
		})
	}
	return json.Marshal(&out)
}

// WriteJSON writes the document as a single JSON object.
func (d *Document) WriteJSON(w io.Writer) error {
	raw, err := d.MarshalJSON()
	if err != nil {
		return err
	}
	if _, err := w.Write(raw); err != nil {
		return err
	}
	_, err = w.Write([]byte{'\n'})
	return err
}
