package segstore

import (
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/oleg578/swiftchar"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "segments.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStorePutGet(t *testing.T) {
	t.Parallel()

	s := openTemp(t)
	seg := swiftchar.Segment{Text: "héllo\n", Size: 7, Index: 3}
	if err := s.PutAll([]swiftchar.Segment{seg}); err != nil {
		t.Fatalf("PutAll() error = %v", err)
	}
	got, err := s.Get(3)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != seg {
		t.Fatalf("Get() = %+v, want %+v", got, seg)
	}
	if _, err := s.Get(4); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(4) error = %v, want ErrNotFound", err)
	}
	if err := s.PutAll([]swiftchar.Segment{{Index: -1}}); err == nil {
		t.Fatalf("PutAll(negative index) error = nil")
	}
}

func TestStoreFromReader(t *testing.T) {
	t.Parallel()

	s := openTemp(t)
	r := swiftchar.NewReader(strings.NewReader("a\nbb\ncccc"))
	r.BufferSize = 2
	var segs []swiftchar.Segment
	for seg, err := range r.Segments("\n") {
		if err != nil {
			t.Fatalf("Segments() error = %v", err)
		}
		segs = append(segs, seg)
	}
	// Store out of order; keys are big-endian so the cursor still sorts.
	if err := s.PutAll([]swiftchar.Segment{segs[2], segs[0]}); err != nil {
		t.Fatalf("PutAll() error = %v", err)
	}
	if err := s.PutAll(segs[1:2]); err != nil {
		t.Fatalf("PutAll() error = %v", err)
	}

	if n, err := s.Count(); err != nil || n != 3 {
		t.Fatalf("Count() = %d, %v; want 3", n, err)
	}
	var got []swiftchar.Segment
	if err := s.ForEach(func(seg swiftchar.Segment) bool {
		got = append(got, seg)
		return true
	}); err != nil {
		t.Fatalf("ForEach() error = %v", err)
	}
	if !reflect.DeepEqual(got, segs) {
		t.Fatalf("ForEach() = %#v, want %#v", got, segs)
	}

	var first []swiftchar.Segment
	s.ForEach(func(seg swiftchar.Segment) bool {
		first = append(first, seg)
		return false
	})
	if len(first) != 1 || first[0].Text != "a\n" {
		t.Fatalf("ForEach() with stop = %#v", first)
	}
}

func TestStoreReset(t *testing.T) {
	t.Parallel()

	s := openTemp(t)
	s.PutAll([]swiftchar.Segment{{Text: "x", Size: 1, Index: 256}})
	if err := s.Reset(); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if n, _ := s.Count(); n != 0 {
		t.Fatalf("Count() after Reset = %d", n)
	}
}

func TestStoreReopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "segments.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	s.PutAll([]swiftchar.Segment{{Text: "kept", Size: 4}})
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer s.Close()
	if got, err := s.Get(0); err != nil || got.Text != "kept" {
		t.Fatalf("Get(0) after reopen = %+v, %v", got, err)
	}
}
