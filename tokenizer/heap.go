package tokenizer

import "container/heap"

// bytePairMergeHeap is the versioned min-heap variant of the BPE merge,
// used once a piece exceeds heapThreshold bytes to avoid the naive scan's
// O(n^2) behavior on long runs. Grounded on the
// linked-list-plus-tombstoned-heap shape in
// adiu19-bpetok-go/internal/tokenizer/tokenizer.go's EncodeOffline, adapted
// to operate on one piece's byte slots instead of a whole pre-tokenized
// input.
//
// Slots are indices into start/end/next/prev/version, stable for the
// lifetime of the call (never compacted); next/prev form a doubly linked
// list over the slots still alive. Each heap entry captures the version of
// both sides at push time so a pop can detect staleness without touching
// the heap in place.
func (c *Core) bytePairMergeHeap(piece string) ([]part, func(), error) {
	n := len(piece)
	start := make([]int, n)
	end := make([]int, n)
	next := make([]int, n)
	prev := make([]int, n)
	version := make([]int, n)
	for i := 0; i < n; i++ {
		start[i] = i
		end[i] = i + 1
		next[i] = i + 1
		prev[i] = i - 1
	}
	next[n-1] = -1
	prev[0] = -1

	h := &mergeHeap{}
	var seq uint64

	rankOf := func(l, r int) (Rank, bool) {
		rk, ok := c.enc[piece[start[l]:end[r]]]
		return rk, ok
	}
	pushPair := func(l, r int) {
		if l < 0 || r < 0 {
			return
		}
		if rk, ok := rankOf(l, r); ok {
			heap.Push(h, heapEntry{rank: rk, seq: seq, left: l, right: r, lver: version[l], rver: version[r]})
			seq++
		}
	}

	for i := 0; i < n; i++ {
		if next[i] != -1 {
			pushPair(i, next[i])
		}
	}

	for h.Len() > 0 {
		e := heap.Pop(h).(heapEntry)
		l, r := e.left, e.right
		if next[l] != r {
			continue // stale: l's right neighbor changed
		}
		if version[l] != e.lver || version[r] != e.rver {
			continue // stale: contents changed since this entry was pushed
		}
		end[l] = end[r]
		version[l]++
		nr := next[r]
		next[l] = nr
		if nr != -1 {
			prev[nr] = l
		}
		prev[r], next[r] = -1, -1
		version[r]++

		if prev[l] != -1 {
			pushPair(prev[l], l)
		}
		if next[l] != -1 {
			pushPair(l, next[l])
		}
	}

	parts, release := c.acquireParts(n + 1)
	parts = parts[:0]
	for i := 0; i != -1; i = next[i] {
		parts = append(parts, part{start: start[i]})
	}
	parts = append(parts, part{start: n})
	return parts, release, nil
}

// heapEntry is one candidate merge: concatenating the byte spans at slots
// left and right has rank rank. seq is a monotonic insertion counter;
// ordering on (rank, seq) makes the earliest-inserted candidate win ties,
// which for the initial seed (inserted left to right) reproduces the naive
// scan's leftmost tie-break.
type heapEntry struct {
	rank  Rank
	seq   uint64
	left  int
	right int
	lver  int
	rver  int
}

type mergeHeap []heapEntry

func (h mergeHeap) Len() int { return len(h) }
func (h mergeHeap) Less(i, j int) bool {
	if h[i].rank != h[j].rank {
		return h[i].rank < h[j].rank
	}
	return h[i].seq < h[j].seq
}
func (h mergeHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *mergeHeap) Push(x any)        { *h = append(*h, x.(heapEntry)) }
func (h *mergeHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
