package tokenizer

import (
	"strings"
	"testing"
)

// toyRanks builds a small, self-consistent rank table: every single byte,
// plus a handful of multi-byte merges, enough to exercise several merge
// passes without needing a real several-hundred-thousand-entry table.
func toyRanks() []RankEntry {
	ranks := make([]RankEntry, 0, 256+8)
	for b := 0; b < 256; b++ {
		ranks = append(ranks, RankEntry{Bytes: []byte{byte(b)}, Rank: uint32(b)})
	}
	extra := []struct {
		s    string
		rank uint32
	}{
		{"he", 300}, {"ll", 301}, {"lo", 302}, {"hell", 303},
		{"hello", 304}, {"wo", 305}, {"rl", 306}, {"world", 307},
		{"hellowo", 308},
	}
	for _, e := range extra {
		ranks = append(ranks, RankEntry{Bytes: []byte(e.s), Rank: e.rank})
	}
	return ranks
}

func newToyCore(t *testing.T) *Core {
	t.Helper()
	seg, err := NewO200kSegmenter()
	if err != nil {
		t.Fatalf("NewO200kSegmenter: %v", err)
	}
	core, err := NewCore(toyRanks(), seg, nil, MatchParity)
	if err != nil {
		t.Fatalf("NewCore: %v", err)
	}
	return core
}

func TestBytePairMergeNaiveAndHeapAgree(t *testing.T) {
	core := newToyCore(t)
	pieces := []string{
		"hello",
		"helloworld",
		strings.Repeat("helloworld", 20), // forces the heap path (>128 bytes)
		"x",
		"abcxyz",
	}
	for _, piece := range pieces {
		naive, releaseN, err := core.bytePairMergeNaive(piece)
		if err != nil {
			t.Fatalf("naive(%q): %v", piece, err)
		}
		heapParts, releaseH, err := core.bytePairMergeHeap(piece)
		if err != nil {
			t.Fatalf("heap(%q): %v", piece, err)
		}
		if len(naive) != len(heapParts) {
			t.Fatalf("%q: naive produced %d boundaries, heap produced %d", piece, len(naive), len(heapParts))
		}
		for i := range naive {
			if naive[i].start != heapParts[i].start {
				t.Fatalf("%q: boundary %d differs: naive=%d heap=%d", piece, i, naive[i].start, heapParts[i].start)
			}
		}
		releaseN()
		releaseH()
	}
}

func TestBytePairEncodeShortCircuitsOnWholePieceMatch(t *testing.T) {
	core := newToyCore(t)
	toks, release, err := core.bytePairEncode("hello")
	if err != nil {
		t.Fatalf("bytePairEncode: %v", err)
	}
	defer release()
	if len(toks) != 1 || toks[0] != 304 {
		t.Fatalf("expected single id 304, got %v", toks)
	}
}

func TestEncodeEmptyTextYieldsNoTokens(t *testing.T) {
	core := newToyCore(t)
	ids, err := core.Encode("", true)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected no tokens for empty input, got %v", ids)
	}
}

func TestDecodeUnknownTokenIDFails(t *testing.T) {
	core := newToyCore(t)
	if _, err := core.DecodeBytes([]uint32{999999}); err == nil {
		t.Fatalf("expected error for unknown token id")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	core := newToyCore(t)
	for _, text := range []string{"hello", "helloworld", "abcxyz", "h", ""} {
		ids, err := core.Encode(text, true)
		if err != nil {
			t.Fatalf("Encode(%q): %v", text, err)
		}
		out, err := core.DecodeBytes(ids)
		if err != nil {
			t.Fatalf("DecodeBytes(%q): %v", text, err)
		}
		if string(out) != text {
			t.Fatalf("round trip mismatch: got %q want %q", out, text)
		}
	}
}
