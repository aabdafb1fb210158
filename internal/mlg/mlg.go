// Package mlg implements the MLG binary telemetry-log format.
//
// An MLG file is a fixed big-endian header, a table of logger-field
// descriptors, a free-form info blob, and a stream of data blocks. The
// package decodes a whole file into a Document and re-encodes it as
// tab-delimited text or JSON.
package mlg

import "fmt"

const (
	formatMarker     = "MLVLG"
	supportedVersion = 1

	formatLength        = 6
	fieldNameLength     = 34
	fieldUnitsLength    = 10
	loggerFieldLength   = 55
	markerMessageLength = 50
)

// BlockType discriminates the two data-block variants.
type BlockType int8

const (
	BlockField  BlockType = 0
	BlockMarker BlockType = 1
)

func (t BlockType) String() string {
	switch t {
	case BlockField:
		return "field"
	case BlockMarker:
		return "marker"
	default:
		return fmt.Sprintf("block(%d)", int8(t))
	}
}

// FieldType selects the scalar encoding of one logger field inside every
// measurement block. Codes 10-12 are the bit-packed variants.
type FieldType int8

const (
	FieldU8     FieldType = 0
	FieldI8     FieldType = 1
	FieldU16    FieldType = 2
	FieldI16    FieldType = 3
	FieldU32    FieldType = 4
	FieldI32    FieldType = 5
	FieldI64    FieldType = 6
	FieldF32    FieldType = 7
	FieldBitU8  FieldType = 10
	FieldBitU16 FieldType = 11
	FieldBitU32 FieldType = 12
)

func (t FieldType) String() string {
	switch t {
	case FieldU8:
		return "u8"
	case FieldI8:
		return "i8"
	case FieldU16:
		return "u16"
	case FieldI16:
		return "i16"
	case FieldU32:
		return "u32"
	case FieldI32:
		return "i32"
	case FieldI64:
		return "i64"
	case FieldF32:
		return "f32"
	case FieldBitU8:
		return "bit-u8"
	case FieldBitU16:
		return "bit-u16"
	case FieldBitU32:
		return "bit-u32"
	default:
		return fmt.Sprintf("type(%d)", int8(t))
	}
}

// DisplayStyle is the presentation hint attached to a logger field. Only
// StyleFloat affects tabular formatting; the rest render as plain numbers.
type DisplayStyle int8

const (
	StyleFloat DisplayStyle = iota
	StyleHex
	StyleBits
	StyleDate
	StyleOnOff
	StyleYesNo
	StyleHighLow
	StyleActiveInactive
)

func (s DisplayStyle) String() string {
	switch s {
	case StyleFloat:
		return "Float"
	case StyleHex:
		return "Hex"
	case StyleBits:
		return "bits"
	case StyleDate:
		return "Date"
	case StyleOnOff:
		return "On/Off"
	case StyleYesNo:
		return "Yes/No"
	case StyleHighLow:
		return "High/Low"
	case StyleActiveInactive:
		return "Active/Inactive"
	default:
		return fmt.Sprintf("style(%d)", int8(s))
	}
}

func (s DisplayStyle) valid() bool {
	return s >= StyleFloat && s <= StyleActiveInactive
}

// Header is the fixed-layout MLG file header.
type Header struct {
	FileFormat      string
	FormatVersion   int16
	Timestamp       int32
	InfoDataStart   int16
	DataBeginIndex  int32
	RecordLength    int16
	NumLoggerFields int16
}

// LoggerField is one descriptor from the logger-field table. The table is
// parsed once and shared read-only by block decoding and tabular output.
type LoggerField struct {
	Type      FieldType
	Name      string
	Units     string
	Style     DisplayStyle
	Scale     float32
	Transform float32
	Digits    int8
}

// DataBlock is one entry of the data-block stream. Exactly one side of the
// variant is populated: Records for BlockField, Message for BlockMarker.
type DataBlock struct {
	Type      BlockType
	Counter   int8
	Timestamp uint16
	Records   map[string]float64
	Message   string
}

// Document is the fully decoded in-memory form of one MLG file. It is
// produced in a single pass and never mutated afterwards.
type Document struct {
	Header        Header
	Fields        []LoggerField
	BitFieldNames string
	InfoData      string
	Blocks        []DataBlock
}

// Measurements returns how many blocks carry per-field records.
func (d *Document) Measurements() int {
	n := 0
	for i := range d.Blocks {
		if d.Blocks[i].Type == BlockField {
			n++
		}
	}
	return n
}
