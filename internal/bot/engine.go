// Package bot wires the extractor, dialogue manager, knowledge base, skill
// registry, and response generator into one conversational engine. Process
// is the single entry point every frontend (gateway, IRC, CLI) goes
// through.
package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/soyeahso/parley/internal/config"
	"github.com/soyeahso/parley/internal/dialogue"
	"github.com/soyeahso/parley/internal/domain"
	"github.com/soyeahso/parley/internal/hooks"
	"github.com/soyeahso/parley/internal/knowledge"
	"github.com/soyeahso/parley/internal/logging"
	"github.com/soyeahso/parley/internal/nlu"
	"github.com/soyeahso/parley/internal/respond"
	"github.com/soyeahso/parley/internal/skill"
)

// Result is what one processed turn returns to the caller.
type Result struct {
	Response    string            `json:"response"`
	Suggestions []string          `json:"suggestions,omitempty"`
	Intent      string            `json:"intent"`
	Confidence  float64           `json:"confidence"`
	Entities    map[string]string `json:"entities,omitempty"`
	SessionID   string            `json:"sessionId"`
	State       domain.State      `json:"state"`
	Success     bool              `json:"success"`
	DurationMS  int64             `json:"durationMs"`
}

// Engine is the conversational core.
type Engine struct {
	log       *logging.Logger
	extractor *nlu.Extractor
	manager   *dialogue.Manager
	kb        *knowledge.Base
	skills    *skill.Registry
	generator *respond.Generator
	sessions  SessionStore
	hooks     *hooks.Manager

	// one lock per live session so turns in the same conversation are
	// serialized while different conversations proceed in parallel
	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// New assembles an engine from config. The session store is injected so the
// memory and sqlite implementations are interchangeable.
func New(log *logging.Logger, cfg config.BotConfig, kcfg config.KnowledgeConfig, sessions SessionStore, hk *hooks.Manager) *Engine {
	if log == nil {
		log = logging.Nop()
	}
	if sessions == nil {
		sessions = NewMemorySessionStore()
	}
	if hk == nil {
		hk = hooks.NewManager(log)
	}

	var minIndex, minFallback float64
	if kcfg.MinIndexScore != nil {
		minIndex = *kcfg.MinIndexScore
	}
	if kcfg.MinFallbackScore != nil {
		minFallback = *kcfg.MinFallbackScore
	}

	e := &Engine{
		log:       log.Sub("bot"),
		extractor: nlu.NewExtractor(log),
		manager:   dialogue.NewManager(log, cfg.ClarifyThreshold, cfg.MaxContextTurns),
		kb:        knowledge.NewBase(log, minIndex, minFallback),
		skills:    skill.NewRegistry(log),
		generator: respond.NewGenerator(log, respond.Options{
			BotName:             cfg.Name,
			FollowUpProbability: cfg.FollowUpProbability,
		}),
		sessions: sessions,
		hooks:    hk,
		locks:    make(map[string]*sync.Mutex),
	}
	e.registerBuiltins()
	return e
}

func (e *Engine) registerBuiltins() {
	for _, s := range []skill.Skill{
		skill.NewCalculator(),
		skill.NewDatetime(),
		skill.NewCodeGenerator(),
		skill.NewTranslator(),
		skill.NewSummarizer(),
	} {
		if err := e.skills.Register(s); err != nil {
			e.log.Error().Err(err).Str("skill", s.Name()).Msg("builtin registration failed")
		}
	}
}

// Knowledge exposes the knowledge base for seeding and the gateway API.
func (e *Engine) Knowledge() *knowledge.Base { return e.kb }

// Skills exposes the skill registry for external registration.
func (e *Engine) Skills() *skill.Registry { return e.skills }

// Hooks exposes the lifecycle hook manager.
func (e *Engine) Hooks() *hooks.Manager { return e.hooks }

// Sessions exposes the session store.
func (e *Engine) Sessions() SessionStore { return e.sessions }

// RegisterSkill adds an external skill to the registry.
func (e *Engine) RegisterSkill(s skill.Skill) error { return e.skills.Register(s) }

// AddKnowledge stores a knowledge entry and emits the corresponding event.
func (e *Engine) AddKnowledge(ctx context.Context, entry knowledge.Entry) *knowledge.Entry {
	stored := e.kb.Add(entry)
	e.hooks.Emit(ctx, hooks.EventKnowledgeAdded, map[string]any{"id": stored.ID, "topic": stored.Topic})
	return stored
}

// Process runs one conversational turn. It never returns a user-visible
// panic: failures inside skills or rendering degrade to a generic apology
// with Success=false.
func (e *Engine) Process(ctx context.Context, sessionID, utterance string) (res *Result, err error) {
	start := time.Now()

	defer func() {
		if rec := recover(); rec != nil {
			e.log.Error().Str("session", sessionID).Interface("panic", rec).Msg("turn panicked")
			res = &Result{
				Response:   "抱歉，我这边出了点问题，请再试一次。",
				Intent:     domain.IntentUnknown,
				SessionID:  sessionID,
				State:      domain.StateIdle,
				DurationMS: time.Since(start).Milliseconds(),
			}
			err = nil
		}
	}()

	if sessionID == "" {
		return nil, fmt.Errorf("empty session id")
	}

	unlock := e.lockSession(sessionID)
	defer unlock()

	session, err := e.sessions.GetOrCreate(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", sessionID, err)
	}

	e.hooks.Emit(ctx, hooks.EventBeforeTurn, map[string]any{"session": sessionID, "utterance": utterance})

	u := e.extractor.Understand(utterance)
	decision := e.manager.Decide(session, u)

	var skillRes *skill.Result
	var kbRes *knowledge.QueryResult
	switch decision.Action {
	case domain.ActionSkill:
		r := e.skills.Execute(ctx, decision.Skill, decision.Params)
		skillRes = &r
	case domain.ActionKnowledge:
		kbRes = e.kb.Query(decision.Query)
	}

	text, suggestions := e.generator.Render(u, decision, skillRes, kbRes)

	if err := e.sessions.Save(ctx, session); err != nil {
		e.log.Warn().Err(err).Str("session", sessionID).Msg("session save failed")
	}

	success := true
	if skillRes != nil && !skillRes.Success {
		success = false
	}

	res = &Result{
		Response:    text,
		Suggestions: suggestions,
		Intent:      u.Intent,
		Confidence:  u.Confidence,
		Entities:    u.Entities,
		SessionID:   sessionID,
		State:       session.State,
		Success:     success,
		DurationMS:  time.Since(start).Milliseconds(),
	}

	e.hooks.Emit(ctx, hooks.EventAfterTurn, map[string]any{
		"session": sessionID,
		"intent":  u.Intent,
		"action":  string(decision.Action),
		"state":   string(session.State),
		"ms":      res.DurationMS,
	})
	e.log.Info().
		Str("session", sessionID).
		Str("intent", u.Intent).
		Str("action", string(decision.Action)).
		Int64("ms", res.DurationMS).
		Msg("turn processed")
	return res, nil
}

// ClearSession wipes one session's dialogue progress. The record itself
// survives until the idle sweep removes it.
func (e *Engine) ClearSession(ctx context.Context, sessionID string) error {
	unlock := e.lockSession(sessionID)
	defer unlock()
	session, err := e.sessions.GetOrCreate(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("clear session %s: %w", sessionID, err)
	}
	session.Reset()
	if err := e.sessions.Save(ctx, session); err != nil {
		return fmt.Errorf("clear session %s: %w", sessionID, err)
	}
	e.hooks.Emit(ctx, hooks.EventSessionCleared, map[string]any{"session": sessionID})
	return nil
}

// StartSweeper expires idle sessions on an interval until ctx is done.
func (e *Engine) StartSweeper(ctx context.Context, interval, maxIdle time.Duration) {
	if interval <= 0 || maxIdle <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				expired, err := e.sessions.Expire(ctx, time.Now().Add(-maxIdle))
				if err != nil {
					e.log.Warn().Err(err).Msg("session sweep failed")
					continue
				}
				for _, id := range expired {
					e.hooks.Emit(ctx, hooks.EventSessionExpired, map[string]any{"session": id})
				}
				if len(expired) > 0 {
					e.log.Info().Int("count", len(expired)).Msg("expired idle sessions")
					e.dropLocks(expired)
				}
			}
		}
	}()
}

func (e *Engine) lockSession(id string) func() {
	e.locksMu.Lock()
	mu, ok := e.locks[id]
	if !ok {
		mu = &sync.Mutex{}
		e.locks[id] = mu
	}
	e.locksMu.Unlock()
	mu.Lock()
	return mu.Unlock
}

func (e *Engine) dropLocks(ids []string) {
	e.locksMu.Lock()
	defer e.locksMu.Unlock()
	for _, id := range ids {
		delete(e.locks, id)
	}
}
