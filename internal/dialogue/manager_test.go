package dialogue

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soyeahso/parley/internal/domain"
)

func newTestManager() *Manager {
	return NewManager(nil, 0.3, 10)
}

func understanding(intent string, confidence float64, text string) domain.Understanding {
	return domain.Understanding{
		Intent:       intent,
		Confidence:   confidence,
		OriginalText: text,
	}
}

// --- state transition tests ---

func TestTransitionTable(t *testing.T) {
	tests := []struct {
		from   domain.State
		intent string
		want   domain.State
	}{
		{domain.StateIdle, domain.IntentGreeting, domain.StateGreeting},
		{domain.StateIdle, domain.IntentGoodbye, domain.StateComplete},
		{domain.StateIdle, domain.IntentCalculate, domain.StateTask},
		{domain.StateGreeting, domain.IntentExplain, domain.StateTask},
		{domain.StateTask, domain.IntentGoodbye, domain.StateComplete},
		{domain.StateTask, domain.IntentThanks, domain.StateConfirm},
		{domain.StateTask, domain.IntentHowTo, domain.StateTask},
		{domain.StateConfirm, domain.IntentCalculate, domain.StateTask},
		{domain.StateComplete, domain.IntentGreeting, domain.StateIdle},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s+%s", tt.from, tt.intent), func(t *testing.T) {
			assert.Equal(t, tt.want, nextState(tt.from, tt.intent))
		})
	}
}

func TestDecideGreeting(t *testing.T) {
	m := newTestManager()
	s := domain.NewSession("s1")

	d := m.Decide(s, understanding(domain.IntentGreeting, 0.8, "你好"))

	assert.Equal(t, domain.ActionDirect, d.Action)
	assert.Equal(t, domain.StateGreeting, d.State)
	assert.Equal(t, domain.StateIdle, d.PreviousState)
	assert.Equal(t, domain.StateGreeting, s.State)
	assert.Equal(t, 1, s.TurnCount)
	require.Len(t, s.History, 1)
	assert.Equal(t, "idle>greeting", s.History[0].StateTransition)
}

func TestDecideGoodbyeThenRestart(t *testing.T) {
	m := newTestManager()
	s := domain.NewSession("s1")

	d := m.Decide(s, understanding(domain.IntentGoodbye, 0.8, "再见"))
	assert.Equal(t, domain.StateComplete, d.State)

	// Next turn starts over from idle, not from complete.
	d = m.Decide(s, understanding(domain.IntentGreeting, 0.8, "你好"))
	assert.Equal(t, domain.StateIdle, d.PreviousState)
	assert.Equal(t, domain.StateGreeting, d.State)
}

// --- clarification tests ---

func TestDecideUnknownClarifies(t *testing.T) {
	m := newTestManager()
	s := domain.NewSession("s1")

	d := m.Decide(s, understanding(domain.IntentUnknown, 0, "呜啦啦"))

	assert.Equal(t, domain.ActionClarify, d.Action)
	assert.Equal(t, domain.StateClarify, d.State)
	assert.Empty(t, d.Skill)
}

func TestDecideLowConfidenceClarifies(t *testing.T) {
	m := newTestManager()
	s := domain.NewSession("s1")

	d := m.Decide(s, understanding(domain.IntentExplain, 0.2, "嗯那个"))

	assert.Equal(t, domain.ActionClarify, d.Action)
	assert.Equal(t, domain.StateClarify, d.State)
}

func TestDecideLowConfidenceDirectIntentStillAnswered(t *testing.T) {
	m := newTestManager()
	s := domain.NewSession("s1")

	d := m.Decide(s, understanding(domain.IntentGreeting, 0.2, "嗨"))

	assert.Equal(t, domain.ActionDirect, d.Action)
}

// --- slot filling tests ---

func TestDecideCalculateFillsExpressionFromText(t *testing.T) {
	m := newTestManager()
	s := domain.NewSession("s1")

	d := m.Decide(s, understanding(domain.IntentCalculate, 0.9, "1+1等于几"))

	assert.Equal(t, domain.ActionSkill, d.Action)
	assert.Equal(t, "calculator", d.Skill)
	assert.Equal(t, "1+1等于几", d.Params["expression"])
	assert.Equal(t, domain.StateTask, d.State)
	// Task context cleared after dispatch.
	assert.Empty(t, s.CurrentIntent)
	assert.Empty(t, s.Slots)
}

func TestDecideTranslateAsksForTargetLanguage(t *testing.T) {
	m := newTestManager()
	s := domain.NewSession("s1")

	d := m.Decide(s, understanding(domain.IntentTranslate, 0.7, "帮我翻译一句话"))

	assert.Equal(t, domain.ActionClarify, d.Action)
	assert.Equal(t, domain.StateClarify, d.State)
	assert.Equal(t, "translator", d.Skill)
	assert.NotEmpty(t, d.Prompt)
	assert.Equal(t, domain.IntentTranslate, s.CurrentIntent)
}

func TestDecideClarifyReplyFillsPendingSlot(t *testing.T) {
	m := newTestManager()
	s := domain.NewSession("s1")

	d := m.Decide(s, understanding(domain.IntentTranslate, 0.7, "帮我翻译一句话"))
	require.Equal(t, domain.ActionClarify, d.Action)

	// The reply carries no recognizable intent but answers the prompt.
	reply := understanding(domain.IntentUnknown, 0, "英文")
	reply.Entities = map[string]string{domain.EntityTargetLanguage: "英文"}
	d = m.Decide(s, reply)

	assert.Equal(t, domain.ActionSkill, d.Action)
	assert.Equal(t, "translator", d.Skill)
	assert.Equal(t, "英文", d.Params["target_language"])
	assert.Equal(t, "帮我翻译一句话", d.Params["source_text"])
	assert.Equal(t, domain.StateTask, d.State)
}

func TestDecideClarifyReplyRawTextFillsSlot(t *testing.T) {
	m := newTestManager()
	s := domain.NewSession("s1")

	m.Decide(s, understanding(domain.IntentTranslate, 0.7, "帮我翻译一句话"))

	// No entity matched; the raw reply becomes the slot value.
	d := m.Decide(s, understanding(domain.IntentUnknown, 0, "克林贡语"))

	assert.Equal(t, domain.ActionSkill, d.Action)
	assert.Equal(t, "克林贡语", d.Params["target_language"])
}

func TestDecideStrongIntentAbandonsPendingTask(t *testing.T) {
	m := newTestManager()
	s := domain.NewSession("s1")

	m.Decide(s, understanding(domain.IntentTranslate, 0.7, "帮我翻译一句话"))

	d := m.Decide(s, understanding(domain.IntentGreeting, 0.9, "你好"))

	assert.Equal(t, domain.ActionDirect, d.Action)
	assert.Empty(t, s.CurrentIntent)
	assert.Empty(t, s.Slots)
}

// --- knowledge routing tests ---

func TestDecideKnowledgeIntents(t *testing.T) {
	m := newTestManager()

	for _, intent := range []string{
		domain.IntentExplain,
		domain.IntentHowTo,
		domain.IntentCompare,
		domain.IntentRecommend,
		domain.IntentQuestion,
	} {
		t.Run(intent, func(t *testing.T) {
			s := domain.NewSession("s1")
			d := m.Decide(s, understanding(intent, 0.65, "什么是闭包"))
			assert.Equal(t, domain.ActionKnowledge, d.Action)
			assert.Equal(t, "什么是闭包", d.Query)
		})
	}
}

// --- history tests ---

func TestHistoryBounded(t *testing.T) {
	m := NewManager(nil, 0.3, 3)
	s := domain.NewSession("s1")

	for i := 0; i < 20; i++ {
		m.Decide(s, understanding(domain.IntentGreeting, 0.8, "你好"))
	}

	assert.Len(t, s.History, 6) // 2 * maxContextTurns
	assert.Equal(t, 20, s.TurnCount)
	assert.Equal(t, 20, s.History[len(s.History)-1].Turn)
}
