package tokenizer

import (
	"fmt"
	"sync"
)

// Rank is the priority/rank of a token; ranks double as token ids.
type Rank = uint32

// RankEntry pairs a token's raw bytes with its rank, the shape the loader
// hands to Core and the shape the decode-side token store is built from.
type RankEntry struct {
	Bytes []byte
	Rank  Rank
}

// heapThreshold is the piece byte-length above which the BPE engine uses the
// versioned min-heap merge instead of the naive O(n^2) scan. Purely a
// performance knob: both paths must agree on output.
const heapThreshold = 128

// Core is the two-stage encode/decode engine: piece split + byte-pair merge,
// plus the special-token splitter that runs ahead of it.
type Core struct {
	enc        map[string]Rank // byte string -> rank/id
	dec        tokenStore
	seg        Segmenter
	splitter   *specialSplitter
	specials   map[string]Rank
	specialDec map[Rank]string
	partsPool  sync.Pool
	tokenPool  sync.Pool
}

// NewCore builds the engine from a rank table, a piece splitter, and an
// optional special-token table. Callers (the façade) are responsible for
// construction-time validation; Core assumes the ranks it's given already
// have an entry for every single byte value.
func NewCore(ranks []RankEntry, seg Segmenter, specials map[string]Rank, mode SpecialMatching) (*Core, error) {
	enc := make(map[string]Rank, len(ranks))
	for _, r := range ranks {
		enc[string(r.Bytes)] = r.Rank
	}
	dec, err := newTokenStore(ranks)
	if err != nil {
		return nil, err
	}
	splitter, err := newSpecialSplitter(specials, mode)
	if err != nil {
		return nil, err
	}
	specialDec := make(map[Rank]string, len(specials))
	for t, id := range specials {
		specialDec[id] = t
	}
	return &Core{
		enc:        enc,
		dec:        dec,
		seg:        seg,
		splitter:   splitter,
		specials:   specials,
		specialDec: specialDec,
		partsPool:  sync.Pool{New: func() any { b := make([]part, 0, 64); return &b }},
		tokenPool:  sync.Pool{New: func() any { b := make([]uint32, 0, 32); return &b }},
	}, nil
}

// DecodeBytes concatenates the byte representation of each id in order.
func (c *Core) DecodeBytes(tokens []Rank) ([]byte, error) {
	var out []byte
	for _, t := range tokens {
		if c.dec.AppendInto(&out, t) {
			continue
		}
		if trigger, ok := c.specialDec[t]; ok {
			out = append(out, trigger...)
			continue
		}
		return nil, fmt.Errorf("%w: %d", ErrUnknownTokenID, t)
	}
	return out, nil
}

// Encode runs the special splitter (unless allowSpecial is false), then the
// piece splitter and BPE engine over each text segment.
func (c *Core) Encode(text string, allowSpecial bool) ([]Rank, error) {
	var out []Rank
	if !allowSpecial || c.splitter == nil {
		if err := c.encodeOrdinaryInto(text, &out); err != nil {
			return nil, err
		}
		return out, nil
	}
	segments, err := c.splitter.Split(text)
	if err != nil {
		return nil, err
	}
	for _, seg := range segments {
		switch seg.kind {
		case segSpecial:
			id, ok := c.specials[seg.text]
			if !ok {
				return nil, fmt.Errorf("%w: %q", ErrUnknownSpecialToken, seg.text)
			}
			out = append(out, id)
		case segText:
			if err := c.encodeOrdinaryInto(seg.text, &out); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// encodeOrdinaryInto appends ids for a text segment with no special-token
// handling: pure piece split + BPE.
func (c *Core) encodeOrdinaryInto(text string, out *[]Rank) error {
	pieces, err := c.seg.Split(text)
	if err != nil {
		return err
	}
	for _, piece := range pieces {
		if piece == "" {
			continue
		}
		if id, ok := c.enc[piece]; ok {
			*out = append(*out, id)
			continue
		}
		toks, release, err := c.bytePairEncode(piece)
		if err != nil {
			return err
		}
		*out = append(*out, toks...)
		release()
	}
	return nil
}

// part is one surviving boundary offset in the merge-in-progress sequence.
// len(parts) boundaries describe len(parts)-1 live tokens; token w spans
// piece[parts[w].start:parts[w+1].start].
type part struct {
	start int
}

// bytePairEncode turns one piece into token ids, dispatching to the naive or
// heap merge by length. Both must produce identical output, exercised by
// TestBytePairMergeNaiveAndHeapAgree.
func (c *Core) bytePairEncode(piece string) ([]Rank, func(), error) {
	if id, ok := c.enc[piece]; ok {
		buf, release := c.acquireTokens(1)
		buf = append(buf[:0], id)
		return buf, release, nil
	}
	var parts []part
	var releaseParts func()
	var err error
	if len(piece) > heapThreshold {
		parts, releaseParts, err = c.bytePairMergeHeap(piece)
	} else {
		parts, releaseParts, err = c.bytePairMergeNaive(piece)
	}
	if err != nil {
		return nil, func() {}, err
	}
	toks, releaseTokens := c.acquireTokens(len(parts))
	toks = toks[:0]
	for w := 0; w+1 < len(parts); w++ {
		key := piece[parts[w].start:parts[w+1].start]
		id, ok := c.enc[key]
		if !ok {
			releaseParts()
			releaseTokens()
			return nil, func() {}, fmt.Errorf("%w: %q", ErrMissingRank, key)
		}
		toks = append(toks, id)
	}
	release := func() {
		releaseParts()
		releaseTokens()
	}
	return toks, release, nil
}

// bytePairMergeNaive repeatedly finds the lowest-rank adjacent pair
// (leftmost on ties, since a pair only replaces the running minimum on a
// strictly-lower rank) and merges it, rescanning from scratch each pass.
// O(n) per pass, O(n) passes worst case.
func (c *Core) bytePairMergeNaive(piece string) ([]part, func(), error) {
	n := len(piece)
	parts, release := c.acquireParts(n + 1)
	parts = parts[:0]
	for i := 0; i <= n; i++ {
		parts = append(parts, part{start: i})
	}
	for {
		minIdx := -1
		var minRank Rank = ^Rank(0)
		for j := 0; j+2 < len(parts); j++ {
			r, ok := c.enc[piece[parts[j].start:parts[j+2].start]]
			if ok && r < minRank {
				minRank = r
				minIdx = j
			}
		}
		if minIdx == -1 {
			break
		}
		parts = append(parts[:minIdx+1], parts[minIdx+2:]...)
	}
	return parts, release, nil
}

func (c *Core) acquireParts(capHint int) ([]part, func()) {
	var p *[]part
	if v := c.partsPool.Get(); v != nil {
		p = v.(*[]part)
		if cap(*p) < capHint {
			buf := make([]part, 0, capHint)
			p = &buf
		} else {
			*p = (*p)[:0]
		}
	} else {
		buf := make([]part, 0, capHint)
		p = &buf
	}
	release := func() {
		if cap(*p) > 1<<12 {
			return
		}
		*p = (*p)[:0]
		c.partsPool.Put(p)
	}
	return *p, release
}

func (c *Core) acquireTokens(capHint int) ([]Rank, func()) {
	var p *[]Rank
	if v := c.tokenPool.Get(); v != nil {
		p = v.(*[]Rank)
		if cap(*p) < capHint {
			buf := make([]Rank, 0, capHint)
			p = &buf
		} else {
			*p = (*p)[:0]
		}
	} else {
		buf := make([]Rank, 0, capHint)
		p = &buf
	}
	release := func() {
		if cap(*p) > 1<<12 {
			return
		}
		*p = (*p)[:0]
		c.tokenPool.Put(p)
	}
	return *p, release
}
