package dialogue

import "github.com/soyeahso/parley/internal/domain"

// slotDef describes one slot a task intent needs.
type slotDef struct {
	Name     string
	Entity   string // entity type that fills it, if any
	Required bool
	FreeText bool // fill from the whole utterance when no entity matched
	Prompt   string
}

// slotSchema binds an intent to its slots and the skill that consumes them.
type slotSchema struct {
	Skill string
	Slots []slotDef
}

// slotSchemas covers every skill-backed intent. Intents without a schema
// carry no slots.
var slotSchemas = map[string]slotSchema{
	domain.IntentCalculate: {
		Skill: "calculator",
		Slots: []slotDef{
			{Name: "expression", Required: true, FreeText: true, Prompt: "请告诉我要计算的算式，例如 3+5*2。"},
		},
	},
	domain.IntentDatetime: {
		Skill: "datetime",
	},
	domain.IntentCodeHelp: {
		Skill: "code_generator",
		Slots: []slotDef{
			{Name: "task_description", Required: true, FreeText: true, Prompt: "请告诉我你想实现什么功能？"},
			{Name: "programming_language", Entity: domain.EntityProgrammingLanguage, Prompt: "想用哪种编程语言呢？"},
		},
	},
	domain.IntentTranslate: {
		Skill: "translator",
		Slots: []slotDef{
			{Name: "source_text", Required: true, FreeText: true, Prompt: "请告诉我你想翻译的内容。"},
			{Name: "target_language", Entity: domain.EntityTargetLanguage, Required: true, Prompt: "要翻译成哪种语言呢？"},
		},
	},
	domain.IntentSummarize: {
		Skill: "summarizer",
		Slots: []slotDef{
			{Name: "source_text", Required: true, FreeText: true, Prompt: "请把需要总结的文本发给我。"},
		},
	},
}

// directIntents resolve to a templated reply with no skill or knowledge
// lookup.
var directIntents = map[string]bool{
	domain.IntentGreeting:      true,
	domain.IntentGoodbye:       true,
	domain.IntentThanks:        true,
	domain.IntentAskCapability: true,
	domain.IntentChitchat:      true,
}

// fillSlots merges entity and free-text evidence from one understanding into
// the session's slot map. Returns the first still-missing required slot, or
// nil when the schema is satisfied.
func fillSlots(schema slotSchema, slots map[string]string, u domain.Understanding) *slotDef {
	for _, def := range schema.Slots {
		if _, done := slots[def.Name]; done {
			continue
		}
		if def.Entity != "" {
			if v, ok := u.Entities[def.Entity]; ok {
				slots[def.Name] = v
				continue
			}
		}
		if def.FreeText && u.OriginalText != "" {
			slots[def.Name] = u.OriginalText
		}
	}
	for i := range schema.Slots {
		def := &schema.Slots[i]
		if def.Required {
			if _, ok := slots[def.Name]; !ok {
				return def
			}
		}
	}
	return nil
}
