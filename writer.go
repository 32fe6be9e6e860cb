package swiftchar

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	errNilWriter      = errors.New("swiftchar: writer is nil")
	errWriterNoTarget = errors.New("swiftchar: writer destination cannot be nil")
)

// Writer emits CSV records that CSVParser reads back unchanged, encoded as
// UTF-8, UTF-16BE or UTF-16LE. A quote only opens a field on the parser side,
// so fields starting with a quote are rejected.
type Writer struct {
	dst *bufio.Writer

	// Comma is the field delimiter. Default is ','.
	Comma rune
	// LineDelimiter terminates every record. Default is CRLF.
	LineDelimiter string
	// AlwaysQuote forces quoting for all fields when enabled.
	AlwaysQuote bool

	err error
}

// NewWriter creates a Writer producing text in enc. UTF-16 output is written
// without a byte order mark.
func NewWriter(w io.Writer, enc Encoding) *Writer {
	if w == nil {
		panic(errWriterNoTarget.Error())
	}
	return &Writer{
		dst:           bufio.NewWriterSize(encodeTo(w, enc), defaultBufferSize),
		Comma:         ',',
		LineDelimiter: CRLF,
	}
}

// encodeTo wraps w so UTF-8 written to it arrives in enc. Records are flushed
// on character boundaries, so the transformer never holds a partial rune
// after Flush.
func encodeTo(w io.Writer, enc Encoding) io.Writer {
	switch enc {
	case UTF16BE:
		return transform.NewWriter(w, unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewEncoder())
	case UTF16LE:
		return transform.NewWriter(w, unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder())
	}
	return w
}

// Write emits a single CSV record terminated with LineDelimiter. A record
// holding a field that starts with a quote is not written and yields an error
// wrapping ErrLeadingQuote; the Writer stays usable.
func (w *Writer) Write(record []string) error {
	if w == nil {
		return errNilWriter
	}
	if w.dst == nil {
		return errWriterNoTarget
	}
	if w.err != nil {
		return w.err
	}

	comma := w.Comma
	if comma == 0 {
		comma = ','
	}
	lineDelim := w.LineDelimiter
	if lineDelim == "" {
		lineDelim = CRLF
	}
	for i, field := range record {
		if strings.HasPrefix(field, `"`) {
			return errors.Wrapf(ErrLeadingQuote, "field %d %q", i, field)
		}
	}

	for i := range record {
		if i > 0 {
			if _, err := w.dst.WriteRune(comma); err != nil {
				return w.fail(err)
			}
		}
		if err := w.writeField(record[i], comma, lineDelim); err != nil {
			return w.fail(err)
		}
	}
	if _, err := w.dst.WriteString(lineDelim); err != nil {
		return w.fail(err)
	}
	return nil
}

// WriteAll writes multiple records, stopping at the first error.
func (w *Writer) WriteAll(records [][]string) error {
	if w == nil {
		return errNilWriter
	}
	for _, record := range records {
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes pending buffered data to the underlying writer.
func (w *Writer) Flush() error {
	if w == nil {
		return errNilWriter
	}
	if w.dst == nil {
		return errWriterNoTarget
	}
	if w.err != nil {
		return w.err
	}
	if err := w.dst.Flush(); err != nil {
		return w.fail(err)
	}
	return nil
}

// Error reports the first error encountered by the writer.
func (w *Writer) Error() error {
	if w == nil {
		return errNilWriter
	}
	return w.err
}

func (w *Writer) fail(err error) error {
	w.err = errors.Wrap(err, "swiftchar: write record")
	return w.err
}

func (w *Writer) writeField(field string, comma rune, lineDelim string) error {
	if !w.AlwaysQuote && !fieldNeedsQuote(field, comma, lineDelim) {
		_, err := w.dst.WriteString(field)
		return err
	}
	if err := w.dst.WriteByte(quote); err != nil {
		return err
	}
	if _, err := w.dst.WriteString(strings.ReplaceAll(field, `"`, `""`)); err != nil {
		return err
	}
	return w.dst.WriteByte(quote)
}

func fieldNeedsQuote(field string, comma rune, lineDelim string) bool {
	return strings.ContainsRune(field, comma) ||
		strings.ContainsRune(field, quote) ||
		strings.ContainsAny(field, "\r\n") ||
		strings.ContainsAny(field, lineDelim)
}
