package main

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/sandbox/event"
)

func TestAppendTyped(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		r     rune
		limit int
		want  string
	}{
		{"append", "ab", 'c', 8, "abc"},
		{"control dropped", "ab", '\n', 8, "ab"},
		{"delete dropped", "ab", 0x7f, 8, "ab"},
		{"trims oldest", "abcd", 'e', 4, "bcde"},
		{"no limit", "abcd", 'e', 0, "abcde"},
		{"unicode", "", 'é', 4, "é"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := string(appendTyped([]rune(tc.line), tc.r, tc.limit))
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestObjectListing(t *testing.T) {
	if got := objectListing(nil); got != "(empty)" {
		t.Fatalf("empty listing = %q", got)
	}
	if got := objectListing([]string{"Player", "Object 1"}); got != "Player\nObject 1" {
		t.Fatalf("listing = %q", got)
	}
}

func TestOverlayEchoesTypedChars(t *testing.T) {
	o := NewOverlay()
	for _, e := range []event.Event{
		event.CharEvent{Char: 'h'},
		event.KeyDown(int(ebiten.KeyH)),
		event.WindowResizeEvent{Width: 10, Height: 10},
		event.CharEvent{Char: 'i'},
	} {
		o.OnEvent(e)
	}
	if o.typed.Label != "> hi" {
		t.Fatalf("typed line = %q, want \"> hi\"", o.typed.Label)
	}

	o.SetObjects([]string{"Player"})
	if o.objects.Label != "Player" {
		t.Fatalf("object list = %q", o.objects.Label)
	}
}
