package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/soyeahso/parley/internal/domain"
)

// SessionStore persists dialogue sessions in sqlite. It satisfies
// bot.SessionStore.
type SessionStore struct {
	db *DB
}

// NewSessionStore creates a session store over an open database.
func NewSessionStore(db *DB) *SessionStore {
	return &SessionStore{db: db}
}

func (s *SessionStore) GetOrCreate(ctx context.Context, id string) (*domain.Session, error) {
	row := s.db.sql.QueryRowContext(ctx, `
SELECT id, state, current_intent, slots, history, turn_count, created_at, last_active_at
FROM sessions WHERE id = ?`, id)

	session, err := scanSession(row)
	if err == nil {
		return session, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}

	session = domain.NewSession(id)
	if err := s.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *SessionStore) Save(ctx context.Context, sess *domain.Session) error {
	slots, err := json.Marshal(sess.Slots)
	if err != nil {
		return fmt.Errorf("encode slots: %w", err)
	}
	history, err := json.Marshal(sess.History)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	_, err = s.db.sql.ExecContext(ctx, `
INSERT INTO sessions (id, state, current_intent, slots, history, turn_count, created_at, last_active_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    state = excluded.state,
    current_intent = excluded.current_intent,
    slots = excluded.slots,
    history = excluded.history,
    turn_count = excluded.turn_count,
    last_active_at = excluded.last_active_at`,
		sess.ID, string(sess.State), sess.CurrentIntent, string(slots), string(history),
		sess.TurnCount, sess.CreatedAt.UTC(), sess.LastActiveAt.UTC())
	if err != nil {
		return fmt.Errorf("save session %s: %w", sess.ID, err)
	}
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.sql.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	return nil
}

func (s *SessionStore) List(ctx context.Context) ([]*domain.Session, error) {
	rows, err := s.db.sql.QueryContext(ctx, `
SELECT id, state, current_intent, slots, history, turn_count, created_at, last_active_at
FROM sessions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []*domain.Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		out = append(out, sess)
	}
	return out, rows.Err()
}

func (s *SessionStore) Expire(ctx context.Context, cutoff time.Time) ([]string, error) {
	rows, err := s.db.sql.QueryContext(ctx,
		`SELECT id FROM sessions WHERE last_active_at < ? ORDER BY id`, cutoff.UTC())
	if err != nil {
		return nil, fmt.Errorf("find expired sessions: %w", err)
	}
	var expired []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, err
		}
		expired = append(expired, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(expired) == 0 {
		return nil, nil
	}
	if _, err := s.db.sql.ExecContext(ctx,
		`DELETE FROM sessions WHERE last_active_at < ?`, cutoff.UTC()); err != nil {
		return nil, fmt.Errorf("delete expired sessions: %w", err)
	}
	return expired, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*domain.Session, error) {
	var (
		sess    domain.Session
		state   string
		slots   string
		history string
	)
	err := row.Scan(&sess.ID, &state, &sess.CurrentIntent, &slots, &history,
		&sess.TurnCount, &sess.CreatedAt, &sess.LastActiveAt)
	if err != nil {
		return nil, err
	}
	sess.State = domain.State(state)
	if err := json.Unmarshal([]byte(slots), &sess.Slots); err != nil {
		return nil, fmt.Errorf("decode slots: %w", err)
	}
	if err := json.Unmarshal([]byte(history), &sess.History); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	if sess.Slots == nil {
		sess.Slots = make(map[string]string)
	}
	return &sess, nil
}
