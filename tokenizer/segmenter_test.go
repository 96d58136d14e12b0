package tokenizer

import (
	"strings"
	"testing"
)

func TestO200kSegmenterASCII(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"letters and spaces", "hello   world"},
		{"numbers limited to three", "1234abc"},
		{"letters numbers mix", "abc1234"},
		{"spaces and newlines", "  \n\nabc"},
		{"all whitespace", "\t \n"},
		{"empty", ""},
	}

	seg, err := NewO200kSegmenter()
	if err != nil {
		t.Fatalf("NewO200kSegmenter: %v", err)
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := seg.Split(tc.text)
			if err != nil {
				t.Fatalf("Split(%q): %v", tc.text, err)
			}
			if joined := strings.Join(got, ""); joined != tc.text {
				t.Fatalf("Split(%q) pieces don't reconstruct input: got %q from %v", tc.text, joined, got)
			}
		})
	}
}

func TestCl100kSegmenterContractions(t *testing.T) {
	seg, err := NewCl100kSegmenter()
	if err != nil {
		t.Fatalf("NewCl100kSegmenter: %v", err)
	}
	for _, text := range []string{"don't", "I'll", "we've", "DON'T", "she's going"} {
		got, err := seg.Split(text)
		if err != nil {
			t.Fatalf("Split(%q): %v", text, err)
		}
		if joined := strings.Join(got, ""); joined != text {
			t.Fatalf("Split(%q) pieces don't reconstruct input: got %q from %v", text, joined, got)
		}
	}
}

func TestP50kSegmenterReconstructsInput(t *testing.T) {
	seg, err := NewP50kSegmenter()
	if err != nil {
		t.Fatalf("NewP50kSegmenter: %v", err)
	}
	for _, text := range []string{"", "hello world", "  leading space", "mixed123 and-punct!!"} {
		got, err := seg.Split(text)
		if err != nil {
			t.Fatalf("Split(%q): %v", text, err)
		}
		if joined := strings.Join(got, ""); joined != text {
			t.Fatalf("Split(%q) pieces don't reconstruct input: got %q from %v", text, joined, got)
		}
	}
}

// Every piece splitter must reconstruct its input exactly.
func TestSegmentersReconstructUnicodeInput(t *testing.T) {
	segs := map[string]func() (Segmenter, error){
		"cl100k": NewCl100kSegmenter,
		"p50k":   NewP50kSegmenter,
		"o200k":  NewO200kSegmenter,
	}
	text := "héllo wörld こんにちは 123 !!\r\n\r\n  done"
	for name, factory := range segs {
		seg, err := factory()
		if err != nil {
			t.Fatalf("%s: factory: %v", name, err)
		}
		pieces, err := seg.Split(text)
		if err != nil {
			t.Fatalf("%s: Split: %v", name, err)
		}
		if joined := strings.Join(pieces, ""); joined != text {
			t.Fatalf("%s: pieces don't reconstruct input: got %q want %q", name, joined, text)
		}
	}
}
