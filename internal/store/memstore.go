package store

import (
	"math"
	"sort"
	"sync"
)

// MemStore is an in-memory implementation of Storer for testing and
// sessions that don't need to survive a reload.
type MemStore struct {
	mu         sync.RWMutex
	messages   map[string][]*Message // threadID -> ordered messages
	summaries  map[string]*SummaryRecord
	prefs      *Preferences
	embeddings map[string][]float32
}

// NewMemStore creates a new in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		messages:   make(map[string][]*Message),
		summaries:  make(map[string]*SummaryRecord),
		embeddings: make(map[string][]float32),
	}
}

// Close is a no-op for MemStore.
func (s *MemStore) Close() error {
	return nil
}

func (s *MemStore) AddMessage(msg *Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copy := *msg
	s.messages[msg.ThreadID] = append(s.messages[msg.ThreadID], &copy)
	return nil
}

func (s *MemStore) GetMessages(threadID string) ([]*Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs := s.messages[threadID]
	out := make([]*Message, len(msgs))
	for i, m := range msgs {
		copy := *m
		out[i] = &copy
	}
	return out, nil
}

func (s *MemStore) TrimMessages(threadID string, keep int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := s.messages[threadID]
	if len(msgs) > keep {
		s.messages[threadID] = append([]*Message{}, msgs[len(msgs)-keep:]...)
	}
	return nil
}

func (s *MemStore) CountMessages(threadID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages[threadID]), nil
}

func (s *MemStore) UpsertSummary(rec *SummaryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copy := *rec
	s.summaries[rec.ThreadID] = &copy
	return nil
}

func (s *MemStore) GetSummary(threadID string) (*SummaryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if rec, ok := s.summaries[threadID]; ok {
		copy := *rec
		return &copy, nil
	}
	return nil, nil
}

func (s *MemStore) SavePreferences(p *Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copy := *p
	s.prefs = &copy
	return nil
}

func (s *MemStore) GetPreferences() (*Preferences, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.prefs == nil {
		return nil, nil
	}
	copy := *s.prefs
	return &copy, nil
}

func (s *MemStore) UpsertItemEmbedding(e *ItemEmbedding) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	vec := make([]float32, len(e.Embedding))
	copy(vec, e.Embedding)
	s.embeddings[e.ItemID] = vec
	return nil
}

// MatchItemEmbeddings brute-forces cosine distance over the stored vectors.
// Fine at this scale (dozens of items).
func (s *MemStore) MatchItemEmbeddings(vec []float32, k int) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type scoredID struct {
		id    string
		score float64
	}
	var scoredIDs []scoredID
	for id, emb := range s.embeddings {
		scoredIDs = append(scoredIDs, scoredID{id, cosine(vec, emb)})
	}
	sort.Slice(scoredIDs, func(i, j int) bool { return scoredIDs[i].score > scoredIDs[j].score })

	if k > len(scoredIDs) {
		k = len(scoredIDs)
	}
	out := make([]string, 0, k)
	for _, s := range scoredIDs[:k] {
		out = append(out, s.id)
	}
	return out, nil
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
