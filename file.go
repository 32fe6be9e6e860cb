package swiftchar

import (
	"os"

	"github.com/pkg/errors"
)

// Options configures how a source is decoded.
type Options struct {
	Encoding   Encoding
	BufferSize int
}

// CSVOptions configures the CSV delimiters. Zero values select ',' and CRLF.
type CSVOptions struct {
	Comma         rune
	LineDelimiter string
}

func (o Options) apply(r *Reader) *Reader {
	r.Encoding = o.Encoding
	if o.BufferSize > 0 {
		r.BufferSize = o.BufferSize
	}
	return r
}

// withFile opens path, hands a configured Reader to fn and closes the file on
// every exit path.
func withFile(path string, opts Options, fn func(*Reader) error) (err error) {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(ErrFailToOpenSource, "%s: %v", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "swiftchar: close %s", path)
		}
	}()
	return fn(opts.apply(NewReader(f)))
}

// ReadFileChars decodes the file at path character by character.
func ReadFileChars(path string, opts Options, fn CharFunc) error {
	return withFile(path, opts, func(r *Reader) error {
		return r.ReadChars(fn)
	})
}

// ReadFileSegments splits the decoded file at path after every delim.
func ReadFileSegments(path string, opts Options, delim string, fn SegmentFunc) error {
	return withFile(path, opts, func(r *Reader) error {
		return r.ReadSegments(delim, fn)
	})
}

// ReadFileCSV parses the file at path as CSV.
func ReadFileCSV(path string, opts Options, csv CSVOptions, field FieldFunc, line LineFunc) error {
	return withFile(path, opts, func(r *Reader) error {
		p := NewCSVParser(r)
		if csv.Comma != 0 {
			p.Comma = csv.Comma
		}
		if csv.LineDelimiter != "" {
			p.LineDelimiter = csv.LineDelimiter
		}
		return p.Parse(field, line)
	})
}
