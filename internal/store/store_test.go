package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soyeahso/parley/internal/domain"
	"github.com/soyeahso/parley/internal/knowledge"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), ":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// --- migration tests ---

func TestMigrateIdempotent(t *testing.T) {
	db := openTestDB(t)
	// A second run must be a no-op, not a duplicate-table error.
	require.NoError(t, db.migrate(context.Background()))
}

// --- session store tests ---

func TestSessionStoreRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ss := NewSessionStore(db)
	ctx := context.Background()

	s, err := ss.GetOrCreate(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.StateIdle, s.State)

	s.State = domain.StateClarify
	s.CurrentIntent = domain.IntentTranslate
	s.Slots["source_text"] = "你好"
	s.History = append(s.History, domain.TurnRecord{
		Turn:            1,
		Intent:          domain.IntentTranslate,
		StateTransition: "idle>clarify",
		Timestamp:       time.Now().UTC(),
	})
	s.TurnCount = 1
	require.NoError(t, ss.Save(ctx, s))

	loaded, err := ss.GetOrCreate(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.StateClarify, loaded.State)
	assert.Equal(t, domain.IntentTranslate, loaded.CurrentIntent)
	assert.Equal(t, "你好", loaded.Slots["source_text"])
	require.Len(t, loaded.History, 1)
	assert.Equal(t, "idle>clarify", loaded.History[0].StateTransition)
	assert.Equal(t, 1, loaded.TurnCount)
}

func TestSessionStoreDelete(t *testing.T) {
	db := openTestDB(t)
	ss := NewSessionStore(db)
	ctx := context.Background()

	s, err := ss.GetOrCreate(ctx, "s1")
	require.NoError(t, err)
	s.TurnCount = 5
	require.NoError(t, ss.Save(ctx, s))
	require.NoError(t, ss.Delete(ctx, "s1"))

	fresh, err := ss.GetOrCreate(ctx, "s1")
	require.NoError(t, err)
	assert.Zero(t, fresh.TurnCount)
}

func TestSessionStoreList(t *testing.T) {
	db := openTestDB(t)
	ss := NewSessionStore(db)
	ctx := context.Background()

	for _, id := range []string{"b", "a", "c"} {
		_, err := ss.GetOrCreate(ctx, id)
		require.NoError(t, err)
	}

	sessions, err := ss.List(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 3)
	assert.Equal(t, "a", sessions[0].ID)
	assert.Equal(t, "c", sessions[2].ID)
}

func TestSessionStoreExpire(t *testing.T) {
	db := openTestDB(t)
	ss := NewSessionStore(db)
	ctx := context.Background()

	old, err := ss.GetOrCreate(ctx, "old")
	require.NoError(t, err)
	old.LastActiveAt = time.Now().Add(-48 * time.Hour)
	require.NoError(t, ss.Save(ctx, old))
	_, err = ss.GetOrCreate(ctx, "fresh")
	require.NoError(t, err)

	expired, err := ss.Expire(ctx, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, []string{"old"}, expired)

	left, err := ss.List(ctx)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "fresh", left[0].ID)

	// Nothing left to expire.
	expired, err = ss.Expire(ctx, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, expired)
}

// --- knowledge store tests ---

func TestKnowledgeStoreRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ks := NewKnowledgeStore(db)
	ctx := context.Background()

	base := knowledge.NewBase(nil, 0, 0)
	added := base.Add(knowledge.Entry{
		Topic:    "什么是接口",
		Answer:   "接口定义行为而不定义实现。",
		Keywords: []string{"接口", "interface"},
		Category: "programming",
	})
	require.NoError(t, ks.Save(ctx, added))

	restored := knowledge.NewBase(nil, 0, 0)
	n, err := ks.Restore(ctx, restored)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	res := restored.Query("什么是接口")
	require.NotNil(t, res)
	assert.Equal(t, added.ID, res.Entry.ID)
	assert.Equal(t, added.Keywords, res.Entry.Keywords)
}

func TestKnowledgeStoreUpsert(t *testing.T) {
	db := openTestDB(t)
	ks := NewKnowledgeStore(db)
	ctx := context.Background()

	e := &knowledge.Entry{ID: "k1", Topic: "旧主题", Answer: "旧答案", CreatedAt: time.Now()}
	require.NoError(t, ks.Save(ctx, e))
	e.Answer = "新答案"
	require.NoError(t, ks.Save(ctx, e))

	entries, err := ks.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "新答案", entries[0].Answer)
}
