package swiftchar

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrFailToOpenSource is returned when the byte source cannot be acquired.
	ErrFailToOpenSource = errors.New("swiftchar: fail to open source")
	// ErrUnexpectedEOF is returned when the stream ends inside a multi-byte character.
	ErrUnexpectedEOF = errors.New("swiftchar: unexpected end of stream")
	// ErrCorruptedData is returned when bytes violate the rules of the active encoding.
	ErrCorruptedData = errors.New("swiftchar: corrupted data")
	// ErrUnexpectedCharacter is returned when CSV input breaks the quoting rules.
	ErrUnexpectedCharacter = errors.New("swiftchar: unexpected character")
	// ErrInvalidDelimiter is returned for an empty or conflicting delimiter configuration.
	ErrInvalidDelimiter = errors.New("swiftchar: invalid delimiter")
	// ErrLeadingQuote is returned by Writer.Write for a field starting with a
	// quote, which CSVParser cannot read back.
	ErrLeadingQuote = errors.New("swiftchar: field starts with a quote")
	// ErrUnknownEncoding is returned by ParseEncoding for unsupported names.
	ErrUnknownEncoding = errors.New("swiftchar: unknown encoding")
)

// DecodeError reports where in the byte stream decoding failed.
type DecodeError struct {
	Encoding Encoding
	Offset   int64
	Err      error
}

// Error formats the decode error with the encoding and stream offset.
func (e *DecodeError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("swiftchar: %s decode error at byte %d: %v", e.Encoding, e.Offset, e.Err)
}

// Unwrap returns the underlying sentinel.
func (e *DecodeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ParseError contains location information for CSV parsing errors.
// Line and Column are 1-based text positions; Row and Field are the
// 0-based CSV coordinates of the field being assembled.
type ParseError struct {
	Line   int
	Column int
	Row    int
	Field  int
	Char   rune
	Err    error
}

// Error formats the parse error message with the stored position and Err values.
func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("swiftchar: parse error on line %d, column %d (row %d, field %d): %v %q",
		e.Line, e.Column, e.Row, e.Field, e.Err, e.Char)
}

// Unwrap returns the underlying Err so ParseError participates in errors.Unwrap.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
