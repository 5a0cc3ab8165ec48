package ui

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestWordWrap(t *testing.T) {
	got := wordWrap("one two three four\n\nfive", 9)
	want := "one two\nthree\nfour\n\nfive"
	if got != want {
		t.Errorf("wordWrap = %q, want %q", got, want)
	}
}

func TestPadRightCountsCells(t *testing.T) {
	for _, s := range []string{"⚡ Beta", "👑 Alpha", "a very long agent name indeed"} {
		got := padRight(s, 12)
		if w := runewidth.StringWidth(got); w != 12 {
			t.Errorf("padRight(%q) width = %d, want 12", s, w)
		}
	}
	if !strings.HasSuffix(truncate("abcdefgh", 5), "…") {
		t.Error("truncate dropped the ellipsis")
	}
}
