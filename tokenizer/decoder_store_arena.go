//go:build goexperiment.arenas

package tokenizer

import "arena"

// Arena-backed token store. All storage lives in a dedicated arena.
// AppendInto copies from the arena blob into the destination to avoid
// leaking arena-backed slices to the heap.
type arenaStore struct {
	a    *arena.Arena
	blob []byte
	off  []uint32
}

func newTokenStore(ranks []RankEntry) (tokenStore, error) {
	a := arena.NewArena()
	maxID := Rank(0)
	for _, r := range ranks {
		if r.Rank > maxID {
			maxID = r.Rank
		}
	}
	size := int(maxID) + 1
	bytesByID := make([][]byte, size)
	total := 0
	for _, r := range ranks {
		id := int(r.Rank)
		if bytesByID[id] == nil {
			bytesByID[id] = r.Bytes
			total += len(r.Bytes)
		}
	}
	blob := arena.MakeSlice[byte](a, total, total)
	off := arena.MakeSlice[uint32](a, size+1, size+1)
	pos := 0
	for i := 0; i < size; i++ {
		off[i] = uint32(pos)
		if b := bytesByID[i]; b != nil {
			copy(blob[pos:pos+len(b)], b)
			pos += len(b)
		}
	}
	off[size] = uint32(pos)
	return &arenaStore{a: a, blob: blob, off: off}, nil
}

func (s *arenaStore) AppendInto(dst *[]byte, id uint32) bool {
	if int(id) >= len(s.off)-1 {
		return false
	}
	a := s.off[id]
	b := s.off[id+1]
	if a == b {
		return false
	}
	*dst = append(*dst, s.blob[a:b]...)
	return true
}

func (s *arenaStore) Close() { s.a.Free() }
