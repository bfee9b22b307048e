package domain

// Intent tags produced by the extractor. The catalogue is fixed; rule tables
// in internal/nlu decide which tag an utterance maps to.
const (
	IntentGreeting      = "greeting"
	IntentGoodbye       = "goodbye"
	IntentThanks        = "thanks"
	IntentAskCapability = "ask_capability"
	IntentCodeHelp      = "code_help"
	IntentExplain       = "explain"
	IntentHowTo         = "how_to"
	IntentCalculate     = "calculate"
	IntentDatetime      = "datetime"
	IntentTranslate     = "translate"
	IntentChitchat      = "chitchat"
	IntentCompare       = "compare"
	IntentRecommend     = "recommend"
	IntentSummarize     = "summarize"
	IntentQuestion      = "question"
	IntentUnknown       = "unknown"
)

// Entity type names produced by the extractor.
const (
	EntityProgrammingLanguage = "programming_language"
	EntityTargetLanguage      = "target_language"
	EntityCity                = "city"
	EntityDate                = "date"
	EntityNumber              = "number"
)

// Understanding is the structured result of analyzing one utterance.
// It lives for a single turn; only a compressed form enters session history.
type Understanding struct {
	Intent       string            `json:"intent"`
	Confidence   float64           `json:"confidence"`
	Entities     map[string]string `json:"entities,omitempty"`
	Keywords     []string          `json:"keywords,omitempty"`
	OriginalText string            `json:"originalText"`
	IsQuestion   bool              `json:"isQuestion"`
}

// Action is what the dialogue manager decided to do with a turn.
type Action string

const (
	ActionDirect    Action = "direct"
	ActionSkill     Action = "skill"
	ActionKnowledge Action = "knowledge"
	ActionClarify   Action = "clarify"
)

// Decision is the dialogue manager's output for one turn.
type Decision struct {
	State         State             `json:"state"`
	PreviousState State             `json:"previousState"`
	Action        Action            `json:"action"`
	Skill         string            `json:"skill,omitempty"`
	Params        map[string]string `json:"params,omitempty"`
	Query         string            `json:"query,omitempty"`
	Data          map[string]any    `json:"data,omitempty"`
	Prompt        string            `json:"prompt,omitempty"` // clarification prompt
}
