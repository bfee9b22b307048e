// Package dialogue decides what to do with each turn: a state machine over
// conversation states plus slot filling for multi-turn tasks. The transition
// and slot tables live in states.go and slots.go as data.
package dialogue

import (
	"time"

	"github.com/soyeahso/parley/internal/domain"
	"github.com/soyeahso/parley/internal/logging"
)

// switchConfidence is the score a mid-clarification utterance needs to
// abandon the pending task and start a new one.
const switchConfidence = 0.8

// Manager applies the dialogue policy to one session at a time. It is
// stateless itself; all conversation state lives on the Session.
type Manager struct {
	log              *logging.Logger
	clarifyThreshold float64
	maxContextTurns  int
}

// NewManager creates a dialogue manager. clarifyThreshold is the confidence
// below which non-direct intents are asked to rephrase; maxContextTurns
// bounds the per-session history at twice its value.
func NewManager(log *logging.Logger, clarifyThreshold float64, maxContextTurns int) *Manager {
	if log == nil {
		log = logging.Nop()
	}
	if clarifyThreshold <= 0 {
		clarifyThreshold = 0.3
	}
	if maxContextTurns <= 0 {
		maxContextTurns = 10
	}
	return &Manager{
		log:              log.Sub("dialogue"),
		clarifyThreshold: clarifyThreshold,
		maxContextTurns:  maxContextTurns,
	}
}

// Decide advances the session by one turn and returns what the bot should do.
// The session is mutated: state, slots, turn counter, and history.
func (m *Manager) Decide(s *domain.Session, u domain.Understanding) domain.Decision {
	// A finished conversation restarts cleanly on the next utterance.
	if s.State == domain.StateComplete {
		s.State = domain.StateIdle
		s.CurrentIntent = ""
		s.Slots = make(map[string]string)
	}
	if s.Slots == nil {
		s.Slots = make(map[string]string)
	}

	prev := s.State
	intent, continued := m.resolveIntent(s, u)
	next := nextState(prev, intent)

	d := domain.Decision{
		State:         next,
		PreviousState: prev,
		Action:        domain.ActionDirect,
	}

	switch {
	case continued:
		// Mid-clarification replies answer the pending prompt; the usual
		// confidence gates do not apply.
		m.dispatch(s, u, intent, true, &d)
	case intent == domain.IntentUnknown && !u.IsQuestion:
		d.Action = domain.ActionClarify
		d.State = domain.StateClarify
	case u.Confidence < m.clarifyThreshold && !directIntents[intent]:
		d.Action = domain.ActionClarify
		d.State = domain.StateClarify
	default:
		m.dispatch(s, u, intent, false, &d)
	}

	s.State = d.State
	s.TurnCount++
	s.LastActiveAt = time.Now()
	m.appendHistory(s, u, intent, prev, d.State)
	m.log.Debug().
		Str("intent", intent).
		Str("action", string(d.Action)).
		Str("transition", string(prev)+">"+string(d.State)).
		Msg("turn decided")
	return d
}

// resolveIntent folds clarification context into the current turn. While a
// task waits on a slot, weak or matching utterances continue that task
// instead of starting a new one.
func (m *Manager) resolveIntent(s *domain.Session, u domain.Understanding) (intent string, continued bool) {
	if s.State != domain.StateClarify || s.CurrentIntent == "" {
		return u.Intent, false
	}
	if _, hasSchema := slotSchemas[s.CurrentIntent]; !hasSchema {
		return u.Intent, false
	}
	if u.Intent != s.CurrentIntent && u.Confidence >= switchConfidence {
		// Strong new intent abandons the pending task.
		s.CurrentIntent = ""
		s.Slots = make(map[string]string)
		return u.Intent, false
	}
	return s.CurrentIntent, true
}

// dispatch routes an understood intent to a direct reply, a skill, or the
// knowledge base, filling slots along the way.
func (m *Manager) dispatch(s *domain.Session, u domain.Understanding, intent string, continued bool, d *domain.Decision) {
	if directIntents[intent] {
		d.Action = domain.ActionDirect
		s.CurrentIntent = ""
		return
	}

	schema, ok := slotSchemas[intent]
	if !ok {
		// explain, how_to, compare, recommend, question: knowledge lookup.
		d.Action = domain.ActionKnowledge
		d.Query = u.OriginalText
		s.CurrentIntent = ""
		return
	}

	missing := fillSlots(schema, s.Slots, u)
	if missing != nil && continued && u.OriginalText != "" {
		// Mid-clarification the whole reply is the answer to the prompt.
		s.Slots[missing.Name] = u.OriginalText
		missing = fillSlots(schema, s.Slots, u)
	}
	if missing != nil {
		d.Action = domain.ActionClarify
		d.State = domain.StateClarify
		d.Skill = schema.Skill
		d.Prompt = missing.Prompt
		s.CurrentIntent = intent
		return
	}

	d.Action = domain.ActionSkill
	d.Skill = schema.Skill
	d.Params = copySlots(s.Slots)
	// Task done; clear task context so the next turn starts fresh.
	s.CurrentIntent = ""
	s.Slots = make(map[string]string)
}

// appendHistory records the turn, keeping at most 2x maxContextTurns entries.
func (m *Manager) appendHistory(s *domain.Session, u domain.Understanding, intent string, from, to domain.State) {
	s.History = append(s.History, domain.TurnRecord{
		Turn:            s.TurnCount,
		Intent:          intent,
		Entities:        u.Entities,
		StateTransition: string(from) + ">" + string(to),
		Timestamp:       time.Now(),
	})
	if limit := 2 * m.maxContextTurns; len(s.History) > limit {
		s.History = s.History[len(s.History)-limit:]
	}
}

func copySlots(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
