// Package respond turns dialogue decisions and skill/knowledge results into
// user-facing text. Replies are drawn from template pools with a
// last-pick-per-pool memory so the same phrasing never appears twice in a
// row.
package respond

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/soyeahso/parley/internal/domain"
	"github.com/soyeahso/parley/internal/knowledge"
	"github.com/soyeahso/parley/internal/logging"
	"github.com/soyeahso/parley/internal/skill"
)

// DefaultFollowUpProbability is the chance of appending a follow-up
// question to a reply.
const DefaultFollowUpProbability = 0.3

// Options tune the generator. Zero values take defaults; Seed is for
// deterministic tests.
type Options struct {
	BotName             string
	FollowUpProbability *float64
	Seed                *int64
}

// Generator selects and fills reply templates.
type Generator struct {
	mu         sync.Mutex
	log        *logging.Logger
	rng        *rand.Rand
	lastPick   map[string]int
	botName    string
	followProb float64
}

// NewGenerator creates a generator.
func NewGenerator(log *logging.Logger, opts Options) *Generator {
	if log == nil {
		log = logging.Nop()
	}
	seed := time.Now().UnixNano()
	if opts.Seed != nil {
		seed = *opts.Seed
	}
	followProb := DefaultFollowUpProbability
	if opts.FollowUpProbability != nil {
		followProb = *opts.FollowUpProbability
	}
	botName := opts.BotName
	if botName == "" {
		botName = "Parley"
	}
	return &Generator{
		log:        log.Sub("respond"),
		rng:        rand.New(rand.NewSource(seed)),
		lastPick:   make(map[string]int),
		botName:    botName,
		followProb: followProb,
	}
}

// Render produces the reply text and suggestions for one turn.
func (g *Generator) Render(u domain.Understanding, d domain.Decision, skillRes *skill.Result, kb *knowledge.QueryResult) (string, []string) {
	var text string
	suggestions := intentSuggestions[u.Intent]

	switch d.Action {
	case domain.ActionClarify:
		if d.Prompt != "" {
			text = d.Prompt
		} else {
			text = g.pick(poolNotUnderstood, nil)
		}
	case domain.ActionSkill:
		text = g.renderSkill(d.Skill, skillRes)
	case domain.ActionKnowledge:
		text, suggestions = g.renderKnowledge(kb)
	default:
		text = g.renderDirect(u)
	}

	if u.Intent != domain.IntentGoodbye {
		text = g.maybeFollowUp(text, d.Action)
	}
	return text, suggestions
}

func (g *Generator) renderDirect(u domain.Understanding) string {
	vars := map[string]string{"botName": g.botName}
	switch u.Intent {
	case domain.IntentGreeting:
		return g.pick(poolGreeting, vars)
	case domain.IntentGoodbye:
		return g.pick(poolGoodbye, vars)
	case domain.IntentThanks:
		return g.pick(poolThanks, vars)
	case domain.IntentAskCapability:
		return g.pick(poolCapability, vars)
	case domain.IntentChitchat:
		return g.pick(chitchatPool(u.OriginalText), vars)
	default:
		return g.pick(poolNotUnderstood, vars)
	}
}

func (g *Generator) renderSkill(name string, res *skill.Result) string {
	if res == nil {
		return g.pick(poolSkillError, map[string]string{"error": "没有收到执行结果"})
	}
	if !res.Success {
		msg := res.Error
		if msg == "" {
			msg = "未知错误"
		}
		return g.pick(poolSkillError, map[string]string{"error": msg})
	}

	switch name {
	case "calculator":
		return g.pick(poolCalcResult, map[string]string{
			"result":     dataString(res, "formatted"),
			"expression": dataString(res, "expression"),
		})
	case "datetime":
		return g.pick(poolDatetime, map[string]string{"datetime": dataString(res, "datetime")})
	case "code_generator":
		return g.pick(poolCode, map[string]string{
			"language": dataString(res, "language"),
			"code":     dataString(res, "code"),
		})
	case "translator":
		vars := map[string]string{
			"source":      dataString(res, "source"),
			"translation": dataString(res, "translation"),
		}
		if found, _ := res.Data["found"].(bool); !found {
			return g.pick(poolTranslatorMiss, vars)
		}
		return g.pick(poolTranslation, vars)
	case "summarizer":
		return g.pick(poolSummary, map[string]string{"summary": dataString(res, "summary")})
	default:
		// An externally registered skill without a template renders its
		// data generically.
		return genericSkillText(res)
	}
}

func (g *Generator) renderKnowledge(kb *knowledge.QueryResult) (string, []string) {
	if kb == nil || kb.Entry == nil {
		return g.pick(poolKnowledgeMiss, nil), nil
	}
	text := kb.Entry.Answer
	var suggestions []string
	for _, rel := range kb.Related {
		suggestions = append(suggestions, rel.Topic)
	}
	return text, suggestions
}

// pick selects a template from a pool, never repeating the previous pick
// for that pool, and fills its placeholders.
func (g *Generator) pick(pool string, vars map[string]string) string {
	templates := pools[pool]
	if len(templates) == 0 {
		g.log.Warn().Str("pool", pool).Msg("empty template pool")
		return ""
	}

	g.mu.Lock()
	idx := 0
	if len(templates) > 1 {
		idx = g.rng.Intn(len(templates))
		if last, ok := g.lastPick[pool]; ok && idx == last {
			idx = (idx + 1 + g.rng.Intn(len(templates)-1)) % len(templates)
		}
	}
	g.lastPick[pool] = idx
	g.mu.Unlock()

	return fillTemplate(templates[idx], vars)
}

// maybeFollowUp appends a follow-up question to task replies unless the
// reply already ends with a question.
func (g *Generator) maybeFollowUp(text string, action domain.Action) string {
	if action == domain.ActionClarify || text == "" {
		return text
	}
	if strings.HasSuffix(text, "?") || strings.HasSuffix(text, "？") {
		return text
	}
	g.mu.Lock()
	roll := g.rng.Float64()
	g.mu.Unlock()
	if roll >= g.followProb {
		return text
	}
	return text + " " + g.pick(poolFollowUp, nil)
}

func chitchatPool(text string) string {
	lower := strings.ToLower(text)
	for _, t := range chitchatTopics {
		for _, kw := range t.keywords {
			if strings.Contains(lower, kw) {
				return t.pool
			}
		}
	}
	return poolChitchatDefault
}

func fillTemplate(tpl string, vars map[string]string) string {
	if len(vars) == 0 {
		return tpl
	}
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tpl)
}

func dataString(res *skill.Result, key string) string {
	v, ok := res.Data[key]
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func genericSkillText(res *skill.Result) string {
	if msg := dataString(res, "message"); msg != "" {
		return msg
	}
	if len(res.Data) == 0 {
		return "完成了。"
	}
	parts := make([]string, 0, len(res.Data))
	for k, v := range res.Data {
		parts = append(parts, fmt.Sprintf("%s: %v", k, v))
	}
	return strings.Join(parts, ", ")
}
