package swiftchar

import (
	"bytes"
	"errors"
	"reflect"
	"testing"
	"unicode/utf8"
)

func FuzzChunkInvariance(f *testing.F) {
	seeds := []string{
		"",
		"a\nbb\ncccc",
		sampleText,
		"\xc3",
		"\xed\xa0\x80",
		"\xd8\x3d\xde\x00",
		"\x00\xdc",
	}
	for _, seed := range seeds {
		f.Add([]byte(seed), uint8(1))
	}

	f.Fuzz(func(t *testing.T, data []byte, size uint8) {
		if len(data) > 1<<12 {
			t.Skip()
		}
		for _, enc := range encodings {
			whole, errWhole := readAllChars(t, newReaderFor(bytes.NewReader(data), enc, len(data)+1))
			chunked, errChunked := readAllChars(t, newReaderFor(bytes.NewReader(data), enc, int(size)+1))

			if errorKind(errWhole) != errorKind(errChunked) {
				t.Fatalf("%s: error mismatch: whole=%v chunked=%v input=%x", enc, errWhole, errChunked, data)
			}
			if !reflect.DeepEqual(whole, chunked) {
				t.Fatalf("%s: chars mismatch:\nwhole=%v\nchunked=%v\ninput=%x", enc, whole, chunked, data)
			}
			if enc == UTF8 && errWhole == nil {
				if !utf8.Valid(data) {
					t.Fatalf("accepted invalid UTF-8 %x", data)
				}
				if want := []rune(string(data)); len(want) != len(whole) {
					t.Fatalf("decoded %d chars, utf8 package sees %d", len(whole), len(want))
				}
			}
		}
	})
}

func FuzzCSVChunkInvariance(f *testing.F) {
	seeds := []string{
		"",
		"a,b,c\r\n",
		"a,\"b,c\",d\r\ne,f,g\r\n",
		"\"a\"\"b\",c\r\n",
		"ab\"c,d\r\n",
		"\"x\"y",
		"\"open",
	}
	for _, seed := range seeds {
		f.Add(seed, uint8(1))
	}

	f.Fuzz(func(t *testing.T, input string, size uint8) {
		if len(input) > 1<<12 {
			t.Skip()
		}
		whole, errWhole := NewCSVParser(newReaderFor(bytes.NewReader([]byte(input)), UTF8, len(input)+1)).ReadAll()
		chunked, errChunked := NewCSVParser(newReaderFor(bytes.NewReader([]byte(input)), UTF8, int(size)+1)).ReadAll()

		if errorKind(errWhole) != errorKind(errChunked) {
			t.Fatalf("error mismatch: whole=%v chunked=%v input=%q", errWhole, errChunked, truncateForMessage(input))
		}
		var pWhole, pChunked *ParseError
		if errors.As(errWhole, &pWhole) && errors.As(errChunked, &pChunked) && *pWhole != *pChunked {
			t.Fatalf("error position mismatch: whole=%+v chunked=%+v", *pWhole, *pChunked)
		}
		if !reflect.DeepEqual(whole, chunked) {
			t.Fatalf("records mismatch:\nwhole=%q\nchunked=%q\ninput=%q", whole, chunked, truncateForMessage(input))
		}
	})
}

func errorKind(err error) string {
	switch {
	case err == nil:
		return "nil"
	case errors.Is(err, ErrUnexpectedEOF):
		return "unexpected_eof"
	case errors.Is(err, ErrCorruptedData):
		return "corrupted"
	case errors.Is(err, ErrUnexpectedCharacter):
		return "unexpected_character"
	}
	return err.Error()
}
