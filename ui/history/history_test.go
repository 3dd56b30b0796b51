package history

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBrowse(t *testing.T) {
	h := New([]string{"spin a", "toast b"}, 0)

	if got, ok := h.Prev("draft"); !ok || got != "toast b" {
		t.Fatalf("Prev() = %q, %v", got, ok)
	}
	if got, ok := h.Prev(""); !ok || got != "spin a" {
		t.Fatalf("Prev() = %q, %v", got, ok)
	}
	if _, ok := h.Prev(""); ok {
		t.Fatalf("Prev() past the oldest entry succeeded")
	}
	if got, _ := h.Next(); got != "toast b" {
		t.Errorf("Next() = %q, want toast b", got)
	}
	if got, _ := h.Next(); got != "draft" {
		t.Errorf("Next() = %q, want the draft back", got)
	}
	if _, ok := h.Next(); ok {
		t.Errorf("Next() past the draft succeeded")
	}
}

func TestAdd(t *testing.T) {
	h := New(nil, 2)
	for _, l := range []string{"a", "a", "  ", "b", "c"} {
		h.Add(l)
	}
	if diff := cmp.Diff([]string{"b", "c"}, h.Entries()); diff != "" {
		t.Errorf("Entries() mismatch (-want +got):\n%s", diff)
	}
}

func TestRead(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"plain", "spin a\n\ntoast b\n", []string{"spin a", "toast b"}},
		{"libedit", cookie + "\nspin\\040a\nback\\134slash\n", []string{"spin a", `back\slash`}},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := read(strings.NewReader(tt.in))
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("read() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "history")
	if err := Save([]string{"spin a", "two\nlines", "ask b"}, path); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"spin a", "ask b"}, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}

	missing, err := Load(filepath.Join(t.TempDir(), "none"))
	if err != nil || missing != nil {
		t.Errorf("Load(missing) = %v, %v; want nil, nil", missing, err)
	}

	var buf bytes.Buffer
	if err := write(nil, &buf); err != nil || buf.Len() != 0 {
		t.Errorf("write(nil) = %q, %v", buf.String(), err)
	}
}
