package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/soyeahso/parley/internal/knowledge"
)

// KnowledgeStore persists knowledge entries. The in-memory knowledge.Base
// stays the query engine; this store just reloads it across restarts.
type KnowledgeStore struct {
	db *DB
}

// NewKnowledgeStore creates a knowledge store over an open database.
func NewKnowledgeStore(db *DB) *KnowledgeStore {
	return &KnowledgeStore{db: db}
}

// Save upserts one entry.
func (k *KnowledgeStore) Save(ctx context.Context, e *knowledge.Entry) error {
	keywords, err := json.Marshal(e.Keywords)
	if err != nil {
		return fmt.Errorf("encode keywords: %w", err)
	}
	_, err = k.db.sql.ExecContext(ctx, `
INSERT INTO knowledge_entries (id, topic, answer, keywords, category, created_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    topic = excluded.topic,
    answer = excluded.answer,
    keywords = excluded.keywords,
    category = excluded.category`,
		e.ID, e.Topic, e.Answer, string(keywords), e.Category, e.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("save knowledge entry %s: %w", e.ID, err)
	}
	return nil
}

// LoadAll returns every stored entry, oldest first.
func (k *KnowledgeStore) LoadAll(ctx context.Context) ([]knowledge.Entry, error) {
	rows, err := k.db.sql.QueryContext(ctx, `
SELECT id, topic, answer, keywords, category, created_at
FROM knowledge_entries ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("load knowledge entries: %w", err)
	}
	defer rows.Close()

	var out []knowledge.Entry
	for rows.Next() {
		var e knowledge.Entry
		var keywords string
		if err := rows.Scan(&e.ID, &e.Topic, &e.Answer, &keywords, &e.Category, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan knowledge entry: %w", err)
		}
		if err := json.Unmarshal([]byte(keywords), &e.Keywords); err != nil {
			return nil, fmt.Errorf("decode keywords: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Restore loads all persisted entries into a knowledge base. Returns the
// number restored.
func (k *KnowledgeStore) Restore(ctx context.Context, base *knowledge.Base) (int, error) {
	entries, err := k.LoadAll(ctx)
	if err != nil {
		return 0, err
	}
	for _, e := range entries {
		base.Add(e)
	}
	return len(entries), nil
}
