package swiftchar

import (
	"io"
	"iter"

	"github.com/pkg/errors"
	"github.com/tliron/commonlog"
)

const (
	defaultBufferSize = 4 << 10 // 4096 bytes

	// maxEmptyReads bounds consecutive (0, nil) reads before giving up.
	maxEmptyReads = 100
)

var log = commonlog.GetLogger("swiftchar")

// Reader decodes characters from a byte stream pulled in bounded chunks.
// A multi-byte character split across two pulls is carried over and
// completed by the next pull; at most one chunk plus one partial character
// is buffered.
type Reader struct {
	src io.Reader

	// Encoding selects the decoder. Default is UTF8.
	Encoding Encoding
	// BufferSize is the maximum number of bytes pulled from the source at once.
	// Values below 1 select the default of 4096.
	BufferSize int

	buf    []byte
	bufPos int
	bufLen int
	bufErr error
	eof    bool

	err      error
	finished bool
	offset   int64
}

// NewReader creates a Reader that decodes UTF-8 from r in 4096-byte chunks,
// panicking if r is nil.
func NewReader(r io.Reader) *Reader {
	if r == nil {
		panic("swiftchar: reader source cannot be nil")
	}
	return &Reader{
		src:        r,
		Encoding:   UTF8,
		BufferSize: defaultBufferSize,
	}
}

// Offset returns the number of source bytes occupied by the characters
// delivered so far.
func (r *Reader) Offset() int64 {
	return r.offset
}

// ReadChar decodes the next character. It returns io.EOF once the source is
// exhausted on a character boundary. A source that ends inside a character
// yields a *DecodeError wrapping ErrUnexpectedEOF; malformed bytes yield one
// wrapping ErrCorruptedData. Errors are sticky.
func (r *Reader) ReadChar() (Char, error) {
	if r == nil || r.src == nil {
		return Char{}, io.EOF
	}
	if r.err != nil {
		return Char{}, r.err
	}
	if r.finished {
		return Char{}, io.EOF
	}

	for empty := 0; ; {
		if r.bufPos < r.bufLen {
			c, size, err := r.Encoding.decodeRune(r.buf[r.bufPos:r.bufLen])
			if err == nil {
				r.bufPos += size
				r.offset += int64(size)
				return Char{Rune: c, Size: size}, nil
			}
			if err != errShortInput {
				return Char{}, r.fail(&DecodeError{Encoding: r.Encoding, Offset: r.offset, Err: err})
			}
		}

		if r.bufErr != nil {
			return Char{}, r.fail(r.bufErr)
		}
		if r.eof {
			if tail := r.bufLen - r.bufPos; tail > 0 {
				log.Debugf("source ended with %d pending bytes at offset %d", tail, r.offset)
				return Char{}, r.fail(&DecodeError{Encoding: r.Encoding, Offset: r.offset, Err: ErrUnexpectedEOF})
			}
			r.finish()
			return Char{}, io.EOF
		}

		n := r.fill()
		if n > 0 {
			empty = 0
			continue
		}
		if empty++; empty >= maxEmptyReads && !r.eof && r.bufErr == nil {
			return Char{}, r.fail(errors.Wrap(io.ErrNoProgress, "swiftchar: read source"))
		}
	}
}

// ReadChars calls fn for every character until the source is exhausted or fn
// returns false. Stopping is not an error: ReadChars returns nil and the
// unread remainder of the source is discarded, so later reads report io.EOF.
func (r *Reader) ReadChars(fn CharFunc) error {
	for {
		c, err := r.ReadChar()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if !fn(c.Rune, c.Size) {
			log.Debugf("consumer stopped at offset %d, discarding %d buffered bytes", r.offset, r.bufLen-r.bufPos)
			r.finish()
			return nil
		}
	}
}

// Chars returns the decoded characters as a sequence. Breaking out of the
// loop stops the read exactly like a CharFunc returning false. A terminal
// error is yielded once with a zero Char.
func (r *Reader) Chars() iter.Seq2[Char, error] {
	return func(yield func(Char, error) bool) {
		err := r.ReadChars(func(c rune, size int) bool {
			return yield(Char{Rune: c, Size: size}, nil)
		})
		if err != nil {
			yield(Char{}, err)
		}
	}
}

// fill slides the pending tail to the front of the buffer and pulls up to
// BufferSize more bytes. It returns the number of bytes pulled.
func (r *Reader) fill() int {
	size := r.BufferSize
	if size < 1 {
		size = defaultBufferSize
	}
	tail := r.bufLen - r.bufPos
	if len(r.buf) < tail+size {
		buf := make([]byte, size+maxCharSize)
		copy(buf, r.buf[r.bufPos:r.bufLen])
		r.buf = buf
	} else if r.bufPos > 0 {
		copy(r.buf, r.buf[r.bufPos:r.bufLen])
	}
	r.bufPos, r.bufLen = 0, tail

	n, err := r.src.Read(r.buf[tail : tail+size])
	if n < 0 || n > size {
		n = 0
		err = errors.New("swiftchar: source returned invalid count")
	}
	r.bufLen += n
	if tail > 0 && n > 0 {
		log.Debugf("carried %d pending bytes into a %d byte chunk", tail, n)
	}
	switch {
	case err == io.EOF:
		r.eof = true
	case err != nil:
		r.bufErr = errors.Wrap(err, "swiftchar: read source")
	}
	return n
}

func (r *Reader) fail(err error) error {
	r.err = err
	r.release()
	return err
}

func (r *Reader) finish() {
	r.finished = true
	r.release()
}

func (r *Reader) release() {
	r.buf = nil
	r.bufPos, r.bufLen = 0, 0
}
