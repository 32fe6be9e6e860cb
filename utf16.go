package swiftchar

import "encoding/binary"

const (
	surrogateMin  = 0xD800
	lowSurrogate  = 0xDC00
	surrogateMax  = 0xDFFF
	surrogateBase = 0x10000
)

var (
	bigEndian    binary.ByteOrder = binary.BigEndian
	littleEndian binary.ByteOrder = binary.LittleEndian
)

func decodeUTF16Rune(p []byte, order binary.ByteOrder) (rune, int, error) {
	if len(p) < 2 {
		return 0, 0, errShortInput
	}
	hi := rune(order.Uint16(p))
	switch {
	case hi < surrogateMin || hi > surrogateMax:
		return hi, 2, nil
	case hi >= lowSurrogate:
		// Low surrogate with no high surrogate before it.
		return 0, 0, ErrCorruptedData
	}
	if len(p) < 4 {
		return 0, 0, errShortInput
	}
	lo := rune(order.Uint16(p[2:]))
	if lo < lowSurrogate || lo > surrogateMax {
		return 0, 0, ErrCorruptedData
	}
	return (hi-surrogateMin)*0x400 + (lo - lowSurrogate) + surrogateBase, 4, nil
}

// DecodeUTF16BE decodes complete big-endian UTF-16 characters from p.
// Direct scalars are reported with size 2 and surrogate pairs with size 4.
// Stop and continuation semantics match DecodeUTF8.
func DecodeUTF16BE(p []byte, fn CharFunc) (more bool, rest []byte, err error) {
	return UTF16BE.decode(p, fn)
}

// DecodeUTF16LE is DecodeUTF16BE for little-endian input.
func DecodeUTF16LE(p []byte, fn CharFunc) (more bool, rest []byte, err error) {
	return UTF16LE.decode(p, fn)
}
