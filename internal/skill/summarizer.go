package skill

import (
	"context"
	"strings"
)

// minSummarizeRunes is the shortest text worth summarizing. Anything
// shorter gets an honest refusal instead of a restatement.
const minSummarizeRunes = 50

// maxSummarySentences caps the extractive summary length.
const maxSummarySentences = 3

// Summarizer produces an extractive summary: the first few sentences of the
// text. Crude, but honest about being so.
type Summarizer struct{}

func NewSummarizer() *Summarizer { return &Summarizer{} }

func (s *Summarizer) Name() string        { return "summarizer" }
func (s *Summarizer) Description() string { return "提取文本的前几句作为摘要" }

func (s *Summarizer) Execute(_ context.Context, params map[string]string) (Result, error) {
	text := strings.TrimSpace(params["source_text"])
	if len([]rune(text)) < minSummarizeRunes {
		return Result{Error: "这段文本太短了，不需要总结。请发给我至少 50 个字的内容。"}, nil
	}

	sentences := splitSentences(text)
	n := len(sentences)
	if n > maxSummarySentences {
		n = maxSummarySentences
	}
	summary := strings.Join(sentences[:n], "")

	return Result{
		Success: true,
		Data: map[string]any{
			"summary":   summary,
			"sentences": n,
			"original":  len([]rune(text)),
		},
	}, nil
}

// splitSentences cuts on Chinese and Latin sentence enders, keeping the
// punctuation with its sentence.
func splitSentences(text string) []string {
	var out []string
	var sb strings.Builder
	for _, r := range text {
		sb.WriteRune(r)
		switch r {
		case '。', '！', '？', '!', '?', '.', ';', '；', '\n':
			if s := strings.TrimSpace(sb.String()); s != "" {
				out = append(out, s)
			}
			sb.Reset()
		}
	}
	if s := strings.TrimSpace(sb.String()); s != "" {
		out = append(out, s)
	}
	return out
}
