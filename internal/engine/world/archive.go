package world

import (
	"container/list"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// Archive retains zstd-compressed block data of evicted chunks in a
// size-bounded LRU, so a chunk that leaves the streaming radius and comes
// back keeps its edits instead of being regenerated. It is process-local and
// best effort: entries fall off the cold end once the byte budget is hit.
type Archive struct {
	mu      sync.Mutex
	budget  int
	bytes   int
	order   *list.List // front = most recent
	entries map[ChunkCoord]*list.Element

	enc *zstd.Encoder
	dec *zstd.Decoder
}

type archiveEntry struct {
	coord ChunkCoord
	data  []byte
}

// NewArchive creates an archive bounded to budgetBytes of compressed data.
func NewArchive(budgetBytes int) (*Archive, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	return &Archive{
		budget:  budgetBytes,
		order:   list.New(),
		entries: make(map[ChunkCoord]*list.Element),
		enc:     enc,
		dec:     dec,
	}, nil
}

// Put compresses and stores the block data for coord, replacing any previous
// entry, then trims cold entries until the budget holds.
func (a *Archive) Put(coord ChunkCoord, blocks []uint8) {
	data := a.enc.EncodeAll(blocks, nil)

	a.mu.Lock()
	defer a.mu.Unlock()

	if el, ok := a.entries[coord]; ok {
		a.bytes -= len(el.Value.(*archiveEntry).data)
		a.order.Remove(el)
		delete(a.entries, coord)
	}
	a.entries[coord] = a.order.PushFront(&archiveEntry{coord: coord, data: data})
	a.bytes += len(data)

	for a.bytes > a.budget && a.order.Len() > 1 {
		el := a.order.Back()
		ent := el.Value.(*archiveEntry)
		a.bytes -= len(ent.data)
		a.order.Remove(el)
		delete(a.entries, ent.coord)
	}
}

// Take removes and decompresses the entry for coord, if present.
func (a *Archive) Take(coord ChunkCoord) ([]uint8, bool) {
	a.mu.Lock()
	el, ok := a.entries[coord]
	var data []byte
	if ok {
		ent := el.Value.(*archiveEntry)
		data = ent.data
		a.bytes -= len(data)
		a.order.Remove(el)
		delete(a.entries, coord)
	}
	a.mu.Unlock()
	if !ok {
		return nil, false
	}

	blocks, err := a.dec.DecodeAll(data, make([]uint8, 0, ChunkVolume))
	if err != nil || len(blocks) != ChunkVolume {
		return nil, false
	}
	return blocks, true
}

// Len returns the number of retained chunks.
func (a *Archive) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.order.Len()
}

// Bytes returns the compressed size of all retained entries.
func (a *Archive) Bytes() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.bytes
}
