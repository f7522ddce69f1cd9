// Package vecstore manages the optional HNSW index over unified-index
// items for semantic retrieval, persisted through hackpadfs. HNSW keys are
// uint32, so the store owns the item-ID mapping and persists it alongside
// the graph.
package vecstore

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"sync"

	"github.com/fogfish/hnsw"
	"github.com/fogfish/hnsw/vector"
	"github.com/hack-pad/hackpadfs"
	kvector "github.com/kshard/vector"
)

// Store holds the index plus the string-ID mapping.
type Store struct {
	mu    sync.RWMutex
	index *hnsw.HNSW[vector.VF32]
	fs    hackpadfs.FS
	path  string

	idToKey map[string]uint32
	keyToID map[uint32]string
	nextKey uint32
}

// persisted is the on-disk layout.
type persisted struct {
	Nodes   hnsw.Nodes[vector.VF32]
	KeyToID map[uint32]string
	NextKey uint32
}

// New opens the store at path, loading a previously saved index when one
// exists, otherwise starting empty.
func New(fs hackpadfs.FS, path string) (*Store, error) {
	s := &Store{
		fs:      fs,
		path:    path,
		idToKey: make(map[string]uint32),
		keyToID: make(map[uint32]string),
		nextKey: 1,
	}

	if err := s.load(); err != nil {
		// Missing or unreadable index: start clean with a cosine surface.
		s.index = hnsw.New[vector.VF32](vector.SurfaceVF32(kvector.Cosine()))
	}
	return s, nil
}

// Add inserts an item's embedding. Dimension must match the existing
// index once populated.
func (s *Store) Add(itemID string, vec []float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index == nil {
		return fmt.Errorf("vecstore: index not initialized")
	}
	if len(vec) == 0 || len(vec)%4 != 0 {
		// The SIMD cosine kernel requires 4-float lanes.
		return fmt.Errorf("vecstore: vector length must be a non-zero multiple of 4, got %d", len(vec))
	}
	if s.index.Size() > 0 {
		dim := len(s.index.Head().Vec)
		if len(vec) != dim {
			return fmt.Errorf("vecstore: dimension mismatch: expected %d, got %d", dim, len(vec))
		}
	}

	key, ok := s.idToKey[itemID]
	if !ok {
		key = s.nextKey
		s.nextKey++
		s.idToKey[itemID] = key
		s.keyToID[key] = itemID
	}

	s.index.Insert(vector.VF32{Key: key, Vec: vec})
	return nil
}

// Search returns the nearest k item IDs.
func (s *Store) Search(vec []float32, k int) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.index == nil {
		return nil, fmt.Errorf("vecstore: index not initialized")
	}
	if len(vec) == 0 || len(vec)%4 != 0 {
		return nil, fmt.Errorf("vecstore: vector length must be a non-zero multiple of 4, got %d", len(vec))
	}
	if s.index.Size() == 0 {
		return nil, nil
	}

	dim := len(s.index.Head().Vec)
	if len(vec) != dim {
		return nil, fmt.Errorf("vecstore: dimension mismatch: expected %d, got %d", dim, len(vec))
	}

	ef := k * 2
	if ef < 100 {
		ef = 100
	}

	results := s.index.Search(vector.VF32{Vec: vec}, k, ef)
	ids := make([]string, 0, len(results))
	for _, r := range results {
		if id, ok := s.keyToID[r.Key]; ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// Size returns the number of stored vectors.
func (s *Store) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.index == nil {
		return 0
	}
	return s.index.Size()
}

// Save persists the index and ID mapping to the FS.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index == nil {
		return nil
	}

	p := persisted{
		Nodes:   s.index.Nodes(),
		KeyToID: s.keyToID,
		NextKey: s.nextKey,
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(p); err != nil {
		return fmt.Errorf("vecstore: failed to encode index: %w", err)
	}
	if err := hackpadfs.WriteFullFile(s.fs, s.path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("vecstore: failed to write index file: %w", err)
	}
	return nil
}

func (s *Store) load() error {
	content, err := hackpadfs.ReadFile(s.fs, s.path)
	if err != nil {
		return err
	}

	var p persisted
	if err := gob.NewDecoder(bytes.NewReader(content)).Decode(&p); err != nil {
		return fmt.Errorf("vecstore: failed to decode index: %w", err)
	}

	s.index = hnsw.FromNodes[vector.VF32](
		vector.SurfaceVF32(kvector.Cosine()),
		p.Nodes,
	)
	s.keyToID = p.KeyToID
	s.nextKey = p.NextKey
	s.idToKey = make(map[string]uint32, len(p.KeyToID))
	for k, id := range p.KeyToID {
		s.idToKey[id] = k
	}
	return nil
}
