package domain

import "time"

// State is a dialogue-level conversation state.
type State string

const (
	StateIdle     State = "idle"
	StateGreeting State = "greeting"
	StateTask     State = "task"
	StateClarify  State = "clarify"
	StateConfirm  State = "confirm"
	StateComplete State = "complete"
)

// SessionKey uniquely identifies a conversation session across channels.
type SessionKey struct {
	ChannelID string `json:"channelId"`
	AccountID string `json:"accountId,omitempty"`
	ChatID    string `json:"chatId"`
	SenderID  string `json:"senderId,omitempty"`
}

// String returns a canonical string form of the session key.
func (k SessionKey) String() string {
	s := k.ChannelID + ":" + k.ChatID
	if k.SenderID != "" {
		s += ":" + k.SenderID
	}
	return s
}

// TurnRecord is a compact per-turn history entry kept on the session.
type TurnRecord struct {
	Turn            int               `json:"turn"`
	Intent          string            `json:"intent"`
	Entities        map[string]string `json:"entities,omitempty"`
	StateTransition string            `json:"stateTransition"` // e.g. "idle>task"
	Timestamp       time.Time         `json:"timestamp"`
}

// Session tracks one conversation's dialogue state.
type Session struct {
	ID            string            `json:"id"`
	State         State             `json:"state"`
	CurrentIntent string            `json:"currentIntent,omitempty"`
	Slots         map[string]string `json:"slots,omitempty"`
	History       []TurnRecord      `json:"history,omitempty"`
	TurnCount     int               `json:"turnCount"`
	CreatedAt     time.Time         `json:"createdAt"`
	LastActiveAt  time.Time         `json:"lastActiveAt"`
}

// NewSession creates a fresh session in the idle state.
func NewSession(id string) *Session {
	now := time.Now()
	return &Session{
		ID:           id,
		State:        StateIdle,
		Slots:        make(map[string]string),
		CreatedAt:    now,
		LastActiveAt: now,
	}
}

// Clone returns a deep copy safe to read while the original is being
// mutated by a turn in flight.
func (s *Session) Clone() *Session {
	c := *s
	c.Slots = make(map[string]string, len(s.Slots))
	for k, v := range s.Slots {
		c.Slots[k] = v
	}
	if s.History != nil {
		c.History = make([]TurnRecord, len(s.History))
		copy(c.History, s.History)
	}
	return &c
}

// Reset clears dialogue progress while keeping the session record.
func (s *Session) Reset() {
	s.State = StateIdle
	s.CurrentIntent = ""
	s.Slots = make(map[string]string)
	s.History = nil
	s.TurnCount = 0
}
