package swiftchar

import (
	"iter"
	"strings"

	"github.com/pkg/errors"
)

// SegmentFunc receives a completed segment (delimiter included), its size in
// source bytes and its 0-based index. Returning false stops reading.
type SegmentFunc func(segment string, size, index int) bool

// Segment is one delimited piece of the decoded text.
type Segment struct {
	Text  string
	Size  int
	Index int
}

// ReadSegments splits the decoded text after every occurrence of delim and
// passes each segment to fn. A trailing segment without delimiter is passed
// once at the end of the stream; its return value is ignored.
func (r *Reader) ReadSegments(delim string, fn SegmentFunc) error {
	if delim == "" {
		return errors.Wrap(ErrInvalidDelimiter, "segment delimiter is empty")
	}

	var (
		seg   strings.Builder
		size  int
		index int
	)
	err := r.ReadChars(func(c rune, n int) bool {
		seg.WriteRune(c)
		size += n
		if !strings.HasSuffix(seg.String(), delim) {
			return true
		}
		more := fn(seg.String(), size, index)
		seg = strings.Builder{}
		size = 0
		index++
		return more
	})
	if err != nil {
		return err
	}
	if seg.Len() > 0 {
		fn(seg.String(), size, index)
	}
	return nil
}

// Segments returns the delimited segments as a sequence. A terminal error is
// yielded once with a zero Segment.
func (r *Reader) Segments(delim string) iter.Seq2[Segment, error] {
	return func(yield func(Segment, error) bool) {
		stopped := false
		err := r.ReadSegments(delim, func(text string, size, index int) bool {
			if stopped {
				return false
			}
			if !yield(Segment{Text: text, Size: size, Index: index}, nil) {
				stopped = true
				return false
			}
			return true
		})
		if err != nil && !stopped {
			yield(Segment{}, err)
		}
	}
}
