package irc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// --- mention tests ---

func TestStripMention(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantText  string
		mentioned bool
	}{
		{"colon prefix", "parley: 你好", "你好", true},
		{"comma prefix", "parley, what time is it", "what time is it", true},
		{"space prefix", "parley 1+1等于几", "1+1等于几", true},
		{"case insensitive", "Parley: hello", "hello", true},
		{"bare nick", "parley", "", true},
		{"mention mid-line keeps text", "hey parley are you there", "hey parley are you there", true},
		{"no mention", "just chatting", "just chatting", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, mentioned := stripMention(tt.text, "parley")
			assert.Equal(t, tt.mentioned, mentioned)
			assert.Equal(t, tt.wantText, got)
		})
	}
}

func TestStripMentionEmptyNick(t *testing.T) {
	_, mentioned := stripMention("anything", "")
	assert.False(t, mentioned)
}

// --- message splitting tests ---

func TestSplitMessageShort(t *testing.T) {
	assert.Equal(t, []string{"hello"}, splitMessage("hello", 400))
}

func TestSplitMessageNewlines(t *testing.T) {
	chunks := splitMessage("line1\nline2\nline3", 400)
	assert.Equal(t, []string{"line1", "line2", "line3"}, chunks)
}

func TestSplitMessageLongLine(t *testing.T) {
	long := strings.Repeat("a", 1000)
	chunks := splitMessage(long, 400)
	assert.Len(t, chunks, 3)
	assert.Equal(t, 400, len(chunks[0]))
	assert.Equal(t, 200, len(chunks[2]))
}

func TestSplitMessageEmpty(t *testing.T) {
	assert.Equal(t, []string{""}, splitMessage("", 400))
}
