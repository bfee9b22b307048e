// Package knowledge is a keyword-indexed question/answer store with a
// two-stage relevance search: an inverted-index pass over extracted
// keywords, then a substring fallback scan when the index comes up empty.
package knowledge

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/soyeahso/parley/internal/logging"
	"github.com/soyeahso/parley/internal/nlu"
)

// Entry is one question/answer pair.
type Entry struct {
	ID        string    `json:"id" yaml:"id,omitempty"`
	Topic     string    `json:"topic" yaml:"topic"`
	Answer    string    `json:"answer" yaml:"answer"`
	Keywords  []string  `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Category  string    `json:"category,omitempty" yaml:"category,omitempty"`
	CreatedAt time.Time `json:"createdAt" yaml:"-"`
}

// QueryResult is the outcome of one lookup.
type QueryResult struct {
	Entry   *Entry   `json:"entry"`
	Score   float64  `json:"score"`
	Related []*Entry `json:"related,omitempty"`
}

// Default score gates, overridable via config.
const (
	DefaultMinIndexScore    = 0.1
	DefaultMinFallbackScore = 0.2
)

const maxRelated = 3

// Base holds entries in memory behind an inverted keyword index.
type Base struct {
	mu               sync.RWMutex
	log              *logging.Logger
	entries          map[string]*Entry
	index            map[string][]string // keyword -> entry IDs
	minIndexScore    float64
	minFallbackScore float64
}

// NewBase creates an empty knowledge base. Zero thresholds take the package
// defaults.
func NewBase(log *logging.Logger, minIndexScore, minFallbackScore float64) *Base {
	if log == nil {
		log = logging.Nop()
	}
	if minIndexScore <= 0 {
		minIndexScore = DefaultMinIndexScore
	}
	if minFallbackScore <= 0 {
		minFallbackScore = DefaultMinFallbackScore
	}
	return &Base{
		log:              log.Sub("knowledge"),
		entries:          make(map[string]*Entry),
		index:            make(map[string][]string),
		minIndexScore:    minIndexScore,
		minFallbackScore: minFallbackScore,
	}
}

// Add stores an entry and indexes it. Explicit keywords are normalized;
// when none are given they are extracted from the topic text. The stored
// entry (with assigned ID) is returned.
func (b *Base) Add(e Entry) *Entry {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	keywords := make([]string, 0, len(e.Keywords))
	seen := make(map[string]bool)
	for _, kw := range e.Keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		keywords = append(keywords, kw)
	}
	if len(keywords) == 0 {
		keywords = nlu.Keywords(e.Topic)
	}
	e.Keywords = keywords

	b.mu.Lock()
	defer b.mu.Unlock()
	stored := e
	b.entries[stored.ID] = &stored
	for _, kw := range stored.Keywords {
		b.index[kw] = append(b.index[kw], stored.ID)
	}
	b.log.Debug().Str("id", stored.ID).Str("topic", stored.Topic).Int("keywords", len(stored.Keywords)).Msg("entry added")
	return &stored
}

// Query finds the best-matching entry for a free-text query. Returns nil
// when nothing clears the acceptance thresholds.
func (b *Base) Query(query string) *QueryResult {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	queryKeywords := nlu.Keywords(query)

	b.mu.RLock()
	defer b.mu.RUnlock()

	scores := b.indexScores(query, queryKeywords)
	if len(scores) == 0 {
		scores = b.fallbackScores(query)
	}
	if len(scores) == 0 {
		return nil
	}

	sort.Slice(scores, func(i, j int) bool {
		if scores[i].score != scores[j].score {
			return scores[i].score > scores[j].score
		}
		return scores[i].entry.ID < scores[j].entry.ID
	})

	res := &QueryResult{Entry: scores[0].entry, Score: scores[0].score}
	for _, sc := range scores[1:] {
		if len(res.Related) == maxRelated {
			break
		}
		res.Related = append(res.Related, sc.entry)
	}
	return res
}

// Get returns an entry by ID.
func (b *Base) Get(id string) (*Entry, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	e, ok := b.entries[id]
	return e, ok
}

// Entries returns a snapshot of all entries, sorted by topic.
func (b *Base) Entries() []*Entry {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]*Entry, 0, len(b.entries))
	for _, e := range b.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Topic < out[j].Topic })
	return out
}

// Len returns the number of stored entries.
func (b *Base) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries)
}

type scored struct {
	entry *Entry
	score float64
}

// indexScores scores the union of entries sharing at least one keyword with
// the query. Score is half keyword overlap, half rune-set similarity.
func (b *Base) indexScores(query string, queryKeywords []string) []scored {
	if len(queryKeywords) == 0 {
		return nil
	}
	candidates := make(map[string]int) // entry ID -> shared keyword count
	for _, kw := range queryKeywords {
		for _, id := range b.index[kw] {
			candidates[id]++
		}
	}

	var out []scored
	for id, shared := range candidates {
		e := b.entries[id]
		overlap := float64(shared) / float64(len(queryKeywords))
		sim := runeJaccard(query, strings.ToLower(e.Topic))
		score := 0.5*overlap + 0.5*sim
		if score >= b.minIndexScore {
			out = append(out, scored{entry: e, score: score})
		}
	}
	return out
}

// fallbackScores scans every entry when the index misses. Three tiers:
// topic containment in either direction, keyword substring match, then
// discounted rune similarity.
func (b *Base) fallbackScores(query string) []scored {
	var out []scored
	for _, e := range b.entries {
		topic := strings.ToLower(e.Topic)
		var score float64
		switch {
		case strings.Contains(query, topic) || strings.Contains(topic, query):
			score = 0.6
		case keywordSubstring(query, e.Keywords):
			score = 0.4
		default:
			score = runeJaccard(query, topic) * 0.3
		}
		if score >= b.minFallbackScore {
			out = append(out, scored{entry: e, score: score})
		}
	}
	return out
}

// keywordSubstring reports whether any entry keyword contains, or is
// contained in, the query.
func keywordSubstring(query string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(query, kw) || strings.Contains(kw, query) {
			return true
		}
	}
	return false
}

// runeJaccard is the Jaccard similarity of the two strings' rune sets.
func runeJaccard(a, b string) float64 {
	as := runeSet(a)
	bs := runeSet(b)
	if len(as) == 0 || len(bs) == 0 {
		return 0
	}
	inter := 0
	for r := range as {
		if bs[r] {
			inter++
		}
	}
	union := len(as) + len(bs) - inter
	return float64(inter) / float64(union)
}

func runeSet(s string) map[rune]bool {
	set := make(map[rune]bool)
	for _, r := range s {
		if r == ' ' {
			continue
		}
		set[r] = true
	}
	return set
}
