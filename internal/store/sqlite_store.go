// Package store provides SQLite-backed persistence for conversation
// sessions. Uses ncruces/go-sqlite3/driver which provides a database/sql
// interface; sqlite-vec is registered for the item-embedding KNN table.
package store

import (
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	_ "github.com/asg017/sqlite-vec-go-bindings/ncruces"
	_ "github.com/ncruces/go-sqlite3/driver"
)

// SQLiteStore is the durable data store.
// Thread-safe for concurrent WASM callbacks.
type SQLiteStore struct {
	mu sync.RWMutex
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS messages (
    id TEXT PRIMARY KEY,
    thread_id TEXT NOT NULL,
    role TEXT NOT NULL,
    content TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_messages_thread ON messages(thread_id, created_at);

CREATE TABLE IF NOT EXISTS summaries (
    thread_id TEXT PRIMARY KEY,
    topic_counts TEXT NOT NULL,
    synthesis TEXT NOT NULL,
    turn INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

-- Single-row preference blob.
CREATE TABLE IF NOT EXISTS preferences (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    detailed_mode INTEGER NOT NULL DEFAULT 0
);

-- Item embeddings for the optional semantic retrieval path.
CREATE VIRTUAL TABLE IF NOT EXISTS vec_items USING vec0(
    item_id TEXT PRIMARY KEY,
    embedding float[768]
);
`

// NewSQLiteStore creates an in-memory SQLite store.
func NewSQLiteStore() (*SQLiteStore, error) {
	return NewSQLiteStoreWithDSN(":memory:")
}

// NewSQLiteStoreWithDSN creates a store with a specific data source name.
// Use ":memory:" for ephemeral or a file path for persistent storage.
func NewSQLiteStoreWithDSN(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// =============================================================================
// Messages
// =============================================================================

func (s *SQLiteStore) AddMessage(msg *Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO messages (id, thread_id, role, content, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, msg.ID, msg.ThreadID, msg.Role, msg.Content, msg.CreatedAt)
	return err
}

func (s *SQLiteStore) GetMessages(threadID string) ([]*Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, thread_id, role, content, created_at
		FROM messages WHERE thread_id = ? ORDER BY created_at, id
	`, threadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.ThreadID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) TrimMessages(threadID string, keep int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		DELETE FROM messages WHERE thread_id = ? AND id NOT IN (
			SELECT id FROM messages WHERE thread_id = ?
			ORDER BY created_at DESC, id DESC LIMIT ?
		)
	`, threadID, threadID, keep)
	return err
}

func (s *SQLiteStore) CountMessages(threadID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM messages WHERE thread_id = ?`, threadID).Scan(&n)
	return n, err
}

// =============================================================================
// Summaries
// =============================================================================

func (s *SQLiteStore) UpsertSummary(rec *SummaryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO summaries (thread_id, topic_counts, synthesis, turn, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(thread_id) DO UPDATE SET
			topic_counts = excluded.topic_counts,
			synthesis = excluded.synthesis,
			turn = excluded.turn,
			updated_at = excluded.updated_at
	`, rec.ThreadID, rec.TopicCounts, rec.Synthesis, rec.Turn, rec.UpdatedAt)
	return err
}

func (s *SQLiteStore) GetSummary(threadID string) (*SummaryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rec SummaryRecord
	err := s.db.QueryRow(`
		SELECT thread_id, topic_counts, synthesis, turn, updated_at
		FROM summaries WHERE thread_id = ?
	`, threadID).Scan(&rec.ThreadID, &rec.TopicCounts, &rec.Synthesis, &rec.Turn, &rec.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// =============================================================================
// Preferences
// =============================================================================

func (s *SQLiteStore) SavePreferences(p *Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	detailed := 0
	if p.DetailedMode {
		detailed = 1
	}
	_, err := s.db.Exec(`
		INSERT INTO preferences (id, detailed_mode) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET detailed_mode = excluded.detailed_mode
	`, detailed)
	return err
}

func (s *SQLiteStore) GetPreferences() (*Preferences, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var detailed int
	err := s.db.QueryRow(`SELECT detailed_mode FROM preferences WHERE id = 1`).Scan(&detailed)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &Preferences{DetailedMode: detailed == 1}, nil
}

// =============================================================================
// Item embeddings (sqlite-vec)
// =============================================================================

func (s *SQLiteStore) UpsertItemEmbedding(e *ItemEmbedding) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// vec0 tables have no upsert; delete-then-insert.
	if _, err := s.db.Exec(`DELETE FROM vec_items WHERE item_id = ?`, e.ItemID); err != nil {
		return err
	}
	_, err := s.db.Exec(`
		INSERT INTO vec_items (item_id, embedding) VALUES (?, ?)
	`, e.ItemID, serializeF32(e.Embedding))
	return err
}

func (s *SQLiteStore) MatchItemEmbeddings(vec []float32, k int) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT item_id FROM vec_items
		WHERE embedding MATCH ? AND k = ?
		ORDER BY distance
	`, serializeF32(vec), k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// serializeF32 encodes a vector in sqlite-vec's little-endian float32 blob
// format.
func serializeF32(vec []float32) []byte {
	buf := make([]byte, len(vec)*4)
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}
