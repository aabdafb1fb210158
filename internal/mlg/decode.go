package mlg

import "fmt"

// Decode parses a complete MLG buffer into a Document. Decoding is
// all-or-nothing: the first violation of the layout aborts the file.
func Decode(data []byte) (*Document, error) {
	cur := newCursor(data)

	hdr, err := decodeHeader(cur)
	if err != nil {
		return nil, err
	}
	if err := checkLayout(hdr, len(data)); err != nil {
		return nil, err
	}

	doc := &Document{Header: *hdr}

	doc.Fields, err = decodeFieldTable(cur, int(hdr.NumLoggerFields))
	if err != nil {
		return nil, err
	}

	// Whatever sits between the field table and the declared info-data
	// section holds the bit-field names. Both regions are carried through
	// as opaque text.
	doc.BitFieldNames, err = readRegion(cur, int(hdr.InfoDataStart))
	if err != nil {
		return nil, fmt.Errorf("bit-field names: %w", err)
	}
	if err := cur.jump(int(hdr.InfoDataStart)); err != nil {
		return nil, err
	}
	doc.InfoData, err = readRegion(cur, int(hdr.DataBeginIndex))
	if err != nil {
		return nil, fmt.Errorf("info data: %w", err)
	}
	if err := cur.jump(int(hdr.DataBeginIndex)); err != nil {
		return nil, err
	}

	doc.Blocks, err = decodeBlocks(cur, doc.Fields)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func decodeHeader(cur *cursor) (*Header, error) {
	marker, err := cur.readText(formatLength)
	if err != nil {
		return nil, err
	}
	if marker != formatMarker {
		return nil, fmt.Errorf("%w: marker %q", ErrUnsupportedFormat, marker)
	}

	h := &Header{FileFormat: marker}
	if h.FormatVersion, err = cur.readI16(); err != nil {
		return nil, err
	}
	if h.FormatVersion != supportedVersion {
		return nil, fmt.Errorf("%w: version %d", ErrUnsupportedVersion, h.FormatVersion)
	}
	if h.Timestamp, err = cur.readI32(); err != nil {
		return nil, err
	}
	if h.InfoDataStart, err = cur.readI16(); err != nil {
		return nil, err
	}
	if h.DataBeginIndex, err = cur.readI32(); err != nil {
		return nil, err
	}
	if h.RecordLength, err = cur.readI16(); err != nil {
		return nil, err
	}
	if h.NumLoggerFields, err = cur.readI16(); err != nil {
		return nil, err
	}
	return h, nil
}

// checkLayout verifies the offsets the header declares before any of them
// is used to size a read.
func checkLayout(h *Header, size int) error {
	if h.NumLoggerFields < 0 {
		return fmt.Errorf("%w: negative field count %d", ErrCorruptLayout, h.NumLoggerFields)
	}
	if h.InfoDataStart < 0 || h.DataBeginIndex < 0 {
		return fmt.Errorf("%w: negative section offset (info=%d, data=%d)",
			ErrCorruptLayout, h.InfoDataStart, h.DataBeginIndex)
	}
	if int32(h.InfoDataStart) > h.DataBeginIndex {
		return fmt.Errorf("%w: info-data offset %d past data-begin offset %d",
			ErrCorruptLayout, h.InfoDataStart, h.DataBeginIndex)
	}
	if int(h.DataBeginIndex) > size {
		return fmt.Errorf("%w: data-begin offset %d in %d-byte buffer",
			ErrCorruptLayout, h.DataBeginIndex, size)
	}
	return nil
}

func decodeFieldTable(cur *cursor, count int) ([]LoggerField, error) {
	fields := make([]LoggerField, 0, count)
	for i := 0; i < count; i++ {
		f := LoggerField{}

		t, err := cur.readI8()
		if err != nil {
			return nil, fmt.Errorf("field %d: %w", i, err)
		}
		f.Type = FieldType(t)
		if f.Name, err = cur.readText(fieldNameLength); err != nil {
			return nil, fmt.Errorf("field %d: %w", i, err)
		}
		if f.Units, err = cur.readText(fieldUnitsLength); err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		style, err := cur.readI8()
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		f.Style = DisplayStyle(style)
		if !f.Style.valid() {
			return nil, fmt.Errorf("%w: code %d for field %q",
				ErrUnsupportedDisplayStyle, style, f.Name)
		}
		if f.Scale, err = cur.readF32(); err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		if f.Transform, err = cur.readF32(); err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		if f.Digits, err = cur.readI8(); err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		fields = append(fields, f)
	}
	return fields, nil
}

// readRegion reads the text between the cursor and an absolute end offset.
// The region length is derived from declared offsets, so a negative length
// means the header lied about the layout.
func readRegion(cur *cursor, end int) (string, error) {
	n := end - cur.pos()
	if n < 0 {
		return "", fmt.Errorf("%w: section end %d before offset %d",
			ErrCorruptLayout, end, cur.pos())
	}
	return cur.readText(n)
}

func decodeBlocks(cur *cursor, fields []LoggerField) ([]DataBlock, error) {
	var blocks []DataBlock

	// No block count is declared; the stream simply runs to the end of
	// the buffer.
	for cur.remaining() > 0 {
		start := cur.pos()

		bt, err := cur.readI8()
		if err != nil {
			return nil, err
		}
		counter, err := cur.readI8()
		if err != nil {
			return nil, err
		}
		ts, err := cur.readU16()
		if err != nil {
			return nil, err
		}

		blk := DataBlock{Type: BlockType(bt), Counter: counter, Timestamp: ts}
		switch blk.Type {
		case BlockField:
			blk.Records = make(map[string]float64, len(fields))
			for i := range fields {
				v, err := decodeScalar(cur, fields[i].Type)
				if err != nil {
					return nil, fmt.Errorf("block at offset %d, field %q: %w",
						start, fields[i].Name, err)
				}
				blk.Records[fields[i].Name] = v
			}
			// Each measurement block ends with a CRC byte. It is consumed
			// to keep the stream aligned but never validated.
			if err := cur.skip(1); err != nil {
				return nil, err
			}
		case BlockMarker:
			if blk.Message, err = cur.readText(markerMessageLength); err != nil {
				return nil, fmt.Errorf("marker at offset %d: %w", start, err)
			}
		default:
			return nil, fmt.Errorf("%w: code %d at offset %d",
				ErrUnsupportedBlockType, bt, start)
		}
		blocks = append(blocks, blk)
	}
	return blocks, nil
}

// decodeScalar reads one sample using the width and signedness the field
// descriptor declares, promoted to float64 for storage.
func decodeScalar(cur *cursor, t FieldType) (float64, error) {
	switch t {
	case FieldU8, FieldBitU8:
		v, err := cur.readU8()
		return float64(v), err
	case FieldI8:
		v, err := cur.readI8()
		return float64(v), err
	case FieldU16, FieldBitU16:
		v, err := cur.readU16()
		return float64(v), err
	case FieldI16:
		v, err := cur.readI16()
		return float64(v), err
	case FieldU32, FieldBitU32:
		v, err := cur.readU32()
		return float64(v), err
	case FieldI32:
		v, err := cur.readI32()
		return float64(v), err
	case FieldI64:
		v, err := cur.readI64()
		return float64(v), err
	case FieldF32:
		v, err := cur.readF32()
		return float64(v), err
	default:
		return 0, fmt.Errorf("%w: code %d", ErrUnsupportedFieldType, int8(t))
	}
}
