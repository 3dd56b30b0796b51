package layer

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/google/go-cmp/cmp"
)

func TestPlace(t *testing.T) {
	base := "aaaaaaaaaa\nbbbbbbbbbb\ncccccccccc"
	tests := []struct {
		name          string
		base, card    string
		width, height int
		pos           Position
		want          string
	}{
		{
			name: "center", base: base, card: "XX", width: 10, height: 3, pos: Center,
			want: "aaaaaaaaaa\nbbbbXXbbbb\ncccccccccc",
		},
		{
			name: "top", base: base, card: "XX", width: 10, height: 3, pos: Top,
			want: "aaaaXXaaaa\nbbbbbbbbbb\ncccccccccc",
		},
		{
			name: "multi-line card", base: base, card: "12\n34", width: 10, height: 3, pos: Center,
			want: "aaaa12aaaa\nbbbb34bbbb\ncccccccccc",
		},
		{
			name: "empty base is padded", base: "", card: "X", width: 3, height: 2, pos: Top,
			want: " X \n   ",
		},
		{
			name: "base is clipped", base: base, card: "", width: 4, height: 2, pos: Center,
			want: "aaaa\nbbbb",
		},
		{
			name: "card wider than canvas", base: "abc", card: "XXXXX", width: 3, height: 1, pos: Center,
			want: "XXX",
		},
		{
			name: "zero size", base: base, card: "X", width: 0, height: 3, pos: Center,
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Place(tt.base, tt.card, tt.width, tt.height, tt.pos)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Place mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPlaceKeepsStyledBase(t *testing.T) {
	base := "\x1b[31mredredred\x1b[0m"
	got := Place(base, "X", 9, 1, Center)
	if w := ansi.StringWidth(got); w != 9 {
		t.Errorf("width = %d, want 9: %q", w, got)
	}
	if plain := ansi.Strip(got); plain != "redrXdred" {
		t.Errorf("Strip(Place) = %q, want redrXdred", plain)
	}
}

func TestBackdrop(t *testing.T) {
	got := Backdrop("\x1b[1mbold\x1b[0m\n\nplain")
	if plain := ansi.Strip(got); plain != "bold\n\nplain" {
		t.Errorf("Strip(Backdrop) = %q", plain)
	}
	if strings.Count(got, "\n") != 2 {
		t.Errorf("Backdrop changed the line count: %q", got)
	}
}
