package swiftchar

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

const (
	// CRLF is the RFC 4180 record terminator and the default line delimiter.
	CRLF = "\r\n"
	// LF is the Unix line delimiter.
	LF = "\n"

	quote = '"'
)

// FieldFunc receives a field's text with its 0-based row and column.
// Returning false stops parsing.
type FieldFunc func(field string, row, column int) bool

// LineFunc receives the index of a completed row. Returning false stops parsing.
type LineFunc func(row int) bool

// CSVParser splits the decoded character stream of a Reader into fields and
// rows. A quote may only open a field; inside quotes every character,
// delimiters included, is literal and "" stands for one quote.
type CSVParser struct {
	r *Reader

	// Comma is the field delimiter. Default is ','.
	Comma rune
	// LineDelimiter separates rows. Default is CRLF.
	LineDelimiter string
}

// NewCSVParser creates a CSVParser reading from r with the default delimiters.
func NewCSVParser(r *Reader) *CSVParser {
	if r == nil {
		panic("swiftchar: csv parser reader cannot be nil")
	}
	return &CSVParser{
		r:             r,
		Comma:         ',',
		LineDelimiter: CRLF,
	}
}

// csvState is the per-call parse state.
type csvState struct {
	field        []byte
	row, column  int
	quoted       bool
	quoteClosed  bool
	last         rune
	line, offset int // text position for error reports, 0-based
}

// Parse runs the CSV state machine over the whole stream. field is called for
// every field and line for every row terminated by the line delimiter. A
// non-empty trailing field left at the end of the stream is passed to field
// once, its return value ignored, with no line call. Quoting violations fail
// with a *ParseError wrapping ErrUnexpectedCharacter.
func (p *CSVParser) Parse(field FieldFunc, line LineFunc) error {
	comma, lineDelim, err := p.delimiters()
	if err != nil {
		return err
	}
	delim := []byte(lineDelim)
	delimFirst, _ := utf8.DecodeRuneInString(lineDelim)

	s := &csvState{}
	var (
		parseErr error
		stopped  bool
	)
	stop := func() bool {
		stopped = true
		return false
	}
	err = p.r.ReadChars(func(c rune, _ int) bool {
		closed := false
		switch {
		case c == comma:
			if s.quoted {
				s.field = utf8.AppendRune(s.field, c)
				break
			}
			if !field(string(s.field), s.row, s.column) {
				return stop()
			}
			s.field = s.field[:0]
			s.column++
		case c == quote:
			switch {
			case s.quoted:
				s.quoted = false
				closed = true
			case len(s.field) == 0:
				s.quoted = true
			case s.last == quote:
				// Second quote of an escape pair: reopen and keep one quote.
				s.quoted = true
				s.field = append(s.field, quote)
			default:
				parseErr = s.errorAt(c)
				return false
			}
		case s.quoteClosed && c != delimFirst:
			parseErr = s.errorAt(c)
			return false
		default:
			s.field = utf8.AppendRune(s.field, c)
			if !s.quoted && bytes.HasSuffix(s.field, delim) {
				s.field = s.field[:len(s.field)-len(delim)]
				if !field(string(s.field), s.row, s.column) {
					return stop()
				}
				if !line(s.row) {
					return stop()
				}
				s.field = s.field[:0]
				s.column = 0
				s.row++
				s.offset = -1
			}
		}
		s.last = c
		s.quoteClosed = closed
		if c == '\n' {
			s.line++
			s.offset = 0
		} else {
			s.offset++
		}
		return true
	})
	if err != nil {
		return err
	}
	if parseErr != nil {
		return parseErr
	}
	if !stopped && len(s.field) > 0 {
		field(string(s.field), s.row, s.column)
	}
	return nil
}

func (s *csvState) errorAt(c rune) error {
	return &ParseError{
		Line:   s.line + 1,
		Column: s.offset + 1,
		Row:    s.row,
		Field:  s.column,
		Char:   c,
		Err:    ErrUnexpectedCharacter,
	}
}

// ReadAll parses the whole stream and returns its rows. Fields left after the
// last line delimiter form a final row.
func (p *CSVParser) ReadAll() (records [][]string, err error) {
	var record []string
	err = p.Parse(func(field string, _, _ int) bool {
		record = append(record, field)
		return true
	}, func(int) bool {
		records = append(records, record)
		record = nil
		return true
	})
	if err != nil {
		return nil, err
	}
	if len(record) > 0 {
		records = append(records, record)
	}
	return records, nil
}

// delimiters applies defaults and rejects configurations the state machine
// cannot tell apart.
func (p *CSVParser) delimiters() (rune, string, error) {
	comma := p.Comma
	if comma == 0 {
		comma = ','
	}
	lineDelim := p.LineDelimiter
	if lineDelim == "" {
		lineDelim = CRLF
	}
	switch {
	case comma == quote || !utf8.ValidRune(comma):
		return 0, "", errors.Wrapf(ErrInvalidDelimiter, "field delimiter %q", comma)
	case !utf8.ValidString(lineDelim),
		strings.ContainsRune(lineDelim, comma),
		strings.ContainsRune(lineDelim, quote):
		return 0, "", errors.Wrapf(ErrInvalidDelimiter, "line delimiter %q", lineDelim)
	}
	return comma, lineDelim, nil
}
