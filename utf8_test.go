package swiftchar

import (
	"errors"
	"reflect"
	"testing"
)

func collect(chars *[]Char) CharFunc {
	return func(r rune, size int) bool {
		*chars = append(*chars, Char{Rune: r, Size: size})
		return true
	}
}

func TestDecodeUTF8(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []Char
	}{
		{
			name:  "ascii",
			input: "ab",
			want:  []Char{{'a', 1}, {'b', 1}},
		},
		{
			name:  "twoBytes",
			input: "é",
			want:  []Char{{'é', 2}},
		},
		{
			name:  "threeBytes",
			input: "x€",
			want:  []Char{{'x', 1}, {'€', 3}},
		},
		{
			name:  "fourBytes",
			input: "😀!",
			want:  []Char{{'😀', 4}, {'!', 1}},
		},
		{
			name:  "boundaries",
			input: "\u007f\u0080\u07ff\u0800\uffff\U00010000\U0010ffff",
			want: []Char{
				{0x7f, 1}, {0x80, 2}, {0x7ff, 2}, {0x800, 3},
				{0xffff, 3}, {0x10000, 4}, {0x10ffff, 4},
			},
		},
		{
			name:  "nul",
			input: "\x00",
			want:  []Char{{0, 1}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var got []Char
			more, rest, err := DecodeUTF8([]byte(tc.input), collect(&got))
			if err != nil {
				t.Fatalf("DecodeUTF8() error = %v", err)
			}
			if !more || len(rest) != 0 {
				t.Fatalf("DecodeUTF8() more=%v rest=%q, want true and empty", more, rest)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("DecodeUTF8() chars mismatch:\n got: %v\nwant: %v", got, tc.want)
			}
		})
	}
}

func TestDecodeUTF8Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		offset int64
	}{
		{name: "strayContinuation", input: "a\x80", offset: 1},
		{name: "fiveByteLead", input: "\xf8\x88\x80\x80\x80", offset: 0},
		{name: "badContinuation", input: "ab\xc3\x28", offset: 2},
		{name: "badThirdByte", input: "\xe2\x82\x41", offset: 0},
		{name: "overlongTwo", input: "\xc0\xaf", offset: 0},
		{name: "overlongThree", input: "\xe0\x80\xaf", offset: 0},
		{name: "overlongFour", input: "\xf0\x80\x80\xaf", offset: 0},
		{name: "surrogateHalf", input: "z\xed\xa0\x80", offset: 1},
		{name: "aboveMaxRune", input: "\xf4\x90\x80\x80", offset: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var got []Char
			_, _, err := DecodeUTF8([]byte(tc.input), collect(&got))
			if !errors.Is(err, ErrCorruptedData) {
				t.Fatalf("DecodeUTF8() error = %v, want ErrCorruptedData", err)
			}
			var derr *DecodeError
			if !errors.As(err, &derr) {
				t.Fatalf("DecodeUTF8() error type %T, want *DecodeError", err)
			}
			if derr.Offset != tc.offset {
				t.Fatalf("DecodeError.Offset = %d, want %d", derr.Offset, tc.offset)
			}
		})
	}
}

func TestDecodeUTF8Incomplete(t *testing.T) {
	t.Parallel()

	var got []Char
	more, rest, err := DecodeUTF8([]byte("a\xf0\x9f\x98"), collect(&got))
	if err != nil {
		t.Fatalf("DecodeUTF8() error = %v", err)
	}
	if !more {
		t.Fatalf("DecodeUTF8() more = false, want true")
	}
	if string(rest) != "\xf0\x9f\x98" {
		t.Fatalf("DecodeUTF8() rest = %q, want the partial emoji", rest)
	}
	if want := []Char{{'a', 1}}; !reflect.DeepEqual(got, want) {
		t.Fatalf("DecodeUTF8() chars = %v, want %v", got, want)
	}
}

func TestDecodeUTF8Stop(t *testing.T) {
	t.Parallel()

	var got []Char
	more, rest, err := DecodeUTF8([]byte("ab€cd"), func(r rune, size int) bool {
		got = append(got, Char{r, size})
		return r != '€'
	})
	if err != nil {
		t.Fatalf("DecodeUTF8() error = %v", err)
	}
	if more {
		t.Fatalf("DecodeUTF8() more = true, want false after stop")
	}
	if string(rest) != "cd" {
		t.Fatalf("DecodeUTF8() rest = %q, want %q", rest, "cd")
	}
	if len(got) != 3 {
		t.Fatalf("DecodeUTF8() delivered %d chars, want 3", len(got))
	}
}
