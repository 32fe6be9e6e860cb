package swiftchar

import (
	"strings"

	"github.com/pkg/errors"
)

// Encoding selects how source bytes are turned into characters.
type Encoding uint8

const (
	UTF8 Encoding = iota
	UTF16BE
	UTF16LE
)

// maxCharSize is the longest encoded character for every supported encoding:
// a 4-byte UTF-8 sequence or a UTF-16 surrogate pair.
const maxCharSize = 4

func (e Encoding) String() string {
	switch e {
	case UTF8:
		return "utf-8"
	case UTF16BE:
		return "utf-16be"
	case UTF16LE:
		return "utf-16le"
	}
	return "unknown"
}

// MaxCharSize returns the longest encoded character under e, which bounds the
// bytes a Reader carries between pulls.
func (e Encoding) MaxCharSize() int {
	return maxCharSize
}

// ParseEncoding maps a case-insensitive name such as "utf-8" or "utf16le" to an Encoding.
func ParseEncoding(name string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return UTF8, nil
	case "utf-16be", "utf16be":
		return UTF16BE, nil
	case "utf-16le", "utf16le":
		return UTF16LE, nil
	}
	return 0, errors.Wrapf(ErrUnknownEncoding, "%q", name)
}

// decodeRune decodes the first character of p under e. It returns errShortInput
// when p holds only a valid prefix of a character.
func (e Encoding) decodeRune(p []byte) (rune, int, error) {
	switch e {
	case UTF16BE:
		return decodeUTF16Rune(p, bigEndian)
	case UTF16LE:
		return decodeUTF16Rune(p, littleEndian)
	default:
		return decodeUTF8Rune(p)
	}
}

// errShortInput signals that more bytes are needed; it never escapes the package.
var errShortInput = errors.New("swiftchar: short input")

// CharFunc receives a decoded character and its size in source bytes.
// Returning false stops reading.
type CharFunc func(r rune, size int) bool

// Char is a decoded scalar plus the number of source bytes it occupied.
type Char struct {
	Rune rune
	Size int
}

// decode runs decodeRune over p left to right, delivering characters to fn.
// It backs the exported buffer decoders.
func (e Encoding) decode(p []byte, fn CharFunc) (more bool, rest []byte, err error) {
	pos := 0
	for pos < len(p) {
		r, size, err := e.decodeRune(p[pos:])
		if err == errShortInput {
			return true, p[pos:], nil
		}
		if err != nil {
			return false, nil, &DecodeError{Encoding: e, Offset: int64(pos), Err: err}
		}
		pos += size
		if !fn(r, size) {
			return false, p[pos:], nil
		}
	}
	return true, nil, nil
}
