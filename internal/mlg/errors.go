package mlg

import "errors"

var (
	ErrUnsupportedFormat       = errors.New("unsupported MLG file format")
	ErrUnsupportedVersion      = errors.New("unsupported MLG format version")
	ErrCorruptLayout           = errors.New("corrupt MLG section layout")
	ErrUnexpectedEndOfData     = errors.New("unexpected end of data")
	ErrUnsupportedDisplayStyle = errors.New("unsupported field display style")
	ErrUnsupportedFieldType    = errors.New("unsupported field type")
	ErrUnsupportedBlockType    = errors.New("unsupported block type")
	ErrInvalidText             = errors.New("invalid text encoding")
)
