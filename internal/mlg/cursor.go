package mlg

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// cursor is a bounds-checked, big-endian reader over an in-memory buffer.
// Every read advances the offset by the width consumed.
type cursor struct {
	data []byte
	off  int
}

func newCursor(data []byte) *cursor {
	return &cursor{data: data}
}

func (c *cursor) pos() int {
	return c.off
}

func (c *cursor) remaining() int {
	return len(c.data) - c.off
}

func (c *cursor) readN(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative read length %d", ErrCorruptLayout, n)
	}
	if c.off+n > len(c.data) {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d",
			ErrUnexpectedEndOfData, n, c.off, len(c.data)-c.off)
	}
	b := c.data[c.off : c.off+n]
	c.off += n
	return b, nil
}

func (c *cursor) skip(n int) error {
	_, err := c.readN(n)
	return err
}

// jump repositions the cursor absolutely. The end of the buffer is a valid
// target; anything past it is not.
func (c *cursor) jump(to int) error {
	if to < 0 || to > len(c.data) {
		return fmt.Errorf("%w: jump to offset %d in %d-byte buffer",
			ErrUnexpectedEndOfData, to, len(c.data))
	}
	c.off = to
	return nil
}

func (c *cursor) readU8() (uint8, error) {
	b, err := c.readN(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *cursor) readI8() (int8, error) {
	v, err := c.readU8()
	return int8(v), err
}

func (c *cursor) readU16() (uint16, error) {
	b, err := c.readN(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (c *cursor) readI16() (int16, error) {
	v, err := c.readU16()
	return int16(v), err
}

func (c *cursor) readU32() (uint32, error) {
	b, err := c.readN(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (c *cursor) readI32() (int32, error) {
	v, err := c.readU32()
	return int32(v), err
}

func (c *cursor) readI64() (int64, error) {
	b, err := c.readN(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(b)), nil
}

func (c *cursor) readF32() (float32, error) {
	u, err := c.readU32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(u), nil
}

// readText decodes a fixed-length UTF-8 text field, trimming NUL padding.
func (c *cursor) readText(n int) (string, error) {
	b, err := c.readN(n)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf("%w: %d-byte text field at offset %d",
			ErrInvalidText, n, c.off-n)
	}
	return strings.Trim(string(b), "\x00"), nil
}
