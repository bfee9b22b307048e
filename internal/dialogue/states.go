package dialogue

import "github.com/soyeahso/parley/internal/domain"

// defaultIntent is the fallback row key in a transition table.
const defaultIntent = "default"

// transitions maps (current state, intent) to the next state. Unlisted
// intents fall through to the state's default row; a state with no row at
// all stays where it is. The table is plain data so dialogue flow can be
// reviewed and changed without touching the decision code.
var transitions = map[domain.State]map[string]domain.State{
	domain.StateIdle: {
		domain.IntentGreeting: domain.StateGreeting,
		domain.IntentGoodbye:  domain.StateComplete,
		defaultIntent:         domain.StateTask,
	},
	domain.StateGreeting: {
		domain.IntentGreeting: domain.StateGreeting,
		domain.IntentGoodbye:  domain.StateComplete,
		defaultIntent:         domain.StateTask,
	},
	domain.StateTask: {
		domain.IntentGoodbye: domain.StateComplete,
		domain.IntentThanks:  domain.StateConfirm,
		defaultIntent:        domain.StateTask,
	},
	domain.StateClarify: {
		domain.IntentGoodbye: domain.StateComplete,
		defaultIntent:        domain.StateTask,
	},
	domain.StateConfirm: {
		domain.IntentGoodbye: domain.StateComplete,
		defaultIntent:        domain.StateTask,
	},
	// A completed conversation restarts from idle on the next turn, so a
	// fresh greeting after "再见" behaves like a brand-new conversation.
	domain.StateComplete: {
		defaultIntent: domain.StateIdle,
	},
}

// nextState resolves one transition.
func nextState(current domain.State, intent string) domain.State {
	rows, ok := transitions[current]
	if !ok {
		return current
	}
	if next, ok := rows[intent]; ok {
		return next
	}
	if next, ok := rows[defaultIntent]; ok {
		return next
	}
	return current
}
