// Package store provides persistence for conversation sessions.
// The engine talks to the Storer interface; MemStore backs tests and
// ephemeral sessions, SQLiteStore survives page reloads.
package store

// Message is one conversation turn as persisted.
type Message struct {
	ID        string `json:"id"`
	ThreadID  string `json:"threadId"`
	Role      string `json:"role"` // "user" | "bot"
	Content   string `json:"content"`
	CreatedAt int64  `json:"createdAt"` // unix millis
}

// SummaryRecord is the rolling per-thread summary, recomputed at each
// summarization point; readers between points see the previous one.
type SummaryRecord struct {
	ThreadID    string `json:"threadId"`
	TopicCounts string `json:"topicCounts"` // rendered "topic(count)" pairs
	Synthesis   string `json:"synthesis"`   // per-topic one-liners, newline joined
	Turn        int    `json:"turn"`        // message count when computed
	UpdatedAt   int64  `json:"updatedAt"`
}

// Preferences is the small durable user-preference blob.
type Preferences struct {
	DetailedMode bool `json:"detailedMode"`
}

// ItemEmbedding pairs an index-item ID with its embedding vector, for the
// optional semantic-retrieval path.
type ItemEmbedding struct {
	ItemID    string    `json:"itemId"`
	Embedding []float32 `json:"embedding"`
}

// Storer defines the persistence interface.
type Storer interface {
	// Messages
	AddMessage(msg *Message) error
	GetMessages(threadID string) ([]*Message, error)
	// TrimMessages drops the oldest messages of a thread, keeping the most
	// recent keep entries.
	TrimMessages(threadID string, keep int) error
	CountMessages(threadID string) (int, error)

	// Summaries
	UpsertSummary(rec *SummaryRecord) error
	GetSummary(threadID string) (*SummaryRecord, error)

	// Preferences
	SavePreferences(p *Preferences) error
	GetPreferences() (*Preferences, error)

	// Item embeddings (optional semantic retrieval)
	UpsertItemEmbedding(e *ItemEmbedding) error
	MatchItemEmbeddings(vec []float32, k int) ([]string, error)

	// Lifecycle
	Close() error
}
