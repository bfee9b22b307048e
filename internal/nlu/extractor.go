// Package nlu turns raw utterances into structured intent, entity, and
// keyword data. Matching is rule based: keyword tables and a handful of
// regexps, scored with a simple additive heuristic. No network, no models.
package nlu

import (
	"strings"
	"unicode"

	"github.com/soyeahso/parley/internal/domain"
	"github.com/soyeahso/parley/internal/logging"
)

// Extractor classifies utterances against the intent catalogue.
type Extractor struct {
	log *logging.Logger
}

// NewExtractor creates an extractor. The logger may be nil.
func NewExtractor(log *logging.Logger) *Extractor {
	if log == nil {
		log = logging.Nop()
	}
	return &Extractor{log: log.Sub("nlu")}
}

// Understand analyzes one utterance. It never fails: input that matches no
// rule degrades to the unknown intent with zero confidence.
func (e *Extractor) Understand(text string) domain.Understanding {
	original := text
	normalized := normalize(text)

	u := domain.Understanding{
		Intent:       domain.IntentUnknown,
		OriginalText: original,
	}
	if normalized == "" {
		return u
	}

	u.IsQuestion = isQuestion(normalized)
	u.Keywords = Keywords(normalized)
	u.Entities = extractEntities(normalized)

	intent, confidence := classify(normalized)
	if intent == "" {
		// No rule matched. A question without a recognized intent still
		// routes to the knowledge base under the generic question tag.
		if u.IsQuestion {
			u.Intent = domain.IntentQuestion
			u.Confidence = 0.5
		}
		return u
	}

	u.Intent = intent
	u.Confidence = confidence
	e.log.Debug().Str("intent", intent).Float64("confidence", confidence).Int("entities", len(u.Entities)).Msg("understood")
	return u
}

// classify scores every rule and returns the best intent, or "" when nothing
// matched. Ties keep the earlier (higher priority) rule.
func classify(normalized string) (string, float64) {
	best := ""
	bestScore := 0.0

	for _, rule := range intentRules {
		hits := 0
		for _, kw := range rule.Keywords {
			if strings.Contains(normalized, kw) {
				hits++
			}
		}
		score := 0.0
		if hits > 0 {
			score = rule.Base + float64(hits-1)*extraHitBonus
		}
		for _, p := range rule.Patterns {
			if p.MatchString(normalized) {
				if patternConfidence > score {
					score = patternConfidence
				}
				break
			}
		}
		if score > maxConfidence {
			score = maxConfidence
		}
		if score > bestScore {
			best = rule.Intent
			bestScore = score
		}
	}
	return best, bestScore
}

func extractEntities(normalized string) map[string]string {
	var entities map[string]string
	set := func(name, value string) {
		if value == "" {
			return
		}
		if entities == nil {
			entities = make(map[string]string)
		}
		if _, dup := entities[name]; !dup {
			entities[name] = value
		}
	}

	for _, rule := range entityRules {
		if rule.Pattern != nil {
			m := rule.Pattern.FindStringSubmatch(normalized)
			if m == nil {
				continue
			}
			if len(m) > 1 {
				set(rule.Entity, m[1])
			} else {
				set(rule.Entity, m[0])
			}
			continue
		}
		for _, v := range rule.Values {
			if strings.Contains(normalized, v) {
				set(rule.Entity, v)
				break
			}
		}
	}
	return entities
}

// Keywords extracts content words from text for knowledge-base matching.
// Latin/digit runs become word tokens; Han runs are split into overlapping
// bigrams so phrase queries still share terms with indexed entries. Tokens
// shorter than two runes and stopwords are dropped.
func Keywords(text string) []string {
	normalized := normalize(text)
	var out []string
	seen := make(map[string]bool)
	add := func(tok string) {
		if stopwords[tok] || seen[tok] {
			return
		}
		if len([]rune(tok)) < 2 {
			return
		}
		seen[tok] = true
		out = append(out, tok)
	}

	var latin []rune
	var han []rune
	flush := func() {
		if len(latin) > 0 {
			add(string(latin))
			latin = latin[:0]
		}
		if len(han) >= 2 {
			for i := 0; i+1 < len(han); i++ {
				add(string(han[i : i+2]))
			}
		}
		han = han[:0]
	}

	for _, r := range normalized {
		switch {
		case unicode.Is(unicode.Han, r):
			if len(latin) > 0 {
				add(string(latin))
				latin = latin[:0]
			}
			if stopwords[string(r)] {
				flush()
				continue
			}
			han = append(han, r)
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if len(han) > 0 {
				flush()
			}
			latin = append(latin, r)
		default:
			flush()
		}
	}
	flush()
	return out
}

func isQuestion(normalized string) bool {
	trimmed := strings.TrimRight(normalized, " 。.!！")
	for _, s := range questionSuffixes {
		if strings.HasSuffix(trimmed, s) {
			return true
		}
	}
	for _, lead := range questionLeads {
		if strings.Contains(normalized, lead) {
			return true
		}
	}
	return false
}

func normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}
