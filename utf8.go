package swiftchar

import "unicode/utf8"

// utf8Lead describes one leading-byte bit pattern: byte&mask == prefix
// starts a sequence of size bytes whose first byte carries byte&^mask bits.
type utf8Lead struct {
	mask   byte
	prefix byte
	size   int
	min    rune // smallest scalar allowed at this size; smaller is overlong
}

var utf8Leads = [...]utf8Lead{
	{mask: 0b1000_0000, prefix: 0b0000_0000, size: 1, min: 0},
	{mask: 0b1110_0000, prefix: 0b1100_0000, size: 2, min: 0x80},
	{mask: 0b1111_0000, prefix: 0b1110_0000, size: 3, min: 0x800},
	{mask: 0b1111_1000, prefix: 0b1111_0000, size: 4, min: 0x10000},
}

const (
	utf8ContMask   = 0b1100_0000
	utf8ContPrefix = 0b1000_0000
)

func decodeUTF8Rune(p []byte) (rune, int, error) {
	if len(p) == 0 {
		return 0, 0, errShortInput
	}
	lead := p[0]
	for _, l := range utf8Leads {
		if lead&l.mask != l.prefix {
			continue
		}
		r := rune(lead &^ l.mask)
		for i := 1; i < l.size; i++ {
			if i >= len(p) {
				return 0, 0, errShortInput
			}
			if p[i]&utf8ContMask != utf8ContPrefix {
				return 0, 0, ErrCorruptedData
			}
			r = r<<6 | rune(p[i]&^utf8ContMask)
		}
		if r < l.min || r > utf8.MaxRune || (r >= surrogateMin && r <= surrogateMax) {
			return 0, 0, ErrCorruptedData
		}
		return r, l.size, nil
	}
	// Stray continuation byte or 11111xxx.
	return 0, 0, ErrCorruptedData
}

// DecodeUTF8 decodes complete UTF-8 characters from p, calling fn for each.
//
// If fn returns false, decoding halts with more == false and rest holding the
// bytes after the last delivered character. If p ends inside a character,
// more is true and rest holds the incomplete trailing bytes; that is only an
// error if no further bytes ever arrive. Malformed input yields a
// *DecodeError wrapping ErrCorruptedData with the offset into p.
func DecodeUTF8(p []byte, fn CharFunc) (more bool, rest []byte, err error) {
	return UTF8.decode(p, fn)
}
