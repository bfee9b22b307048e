package nlu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/soyeahso/parley/internal/domain"
)

// --- intent classification tests ---

func TestUnderstandIntents(t *testing.T) {
	e := NewExtractor(nil)

	tests := []struct {
		text   string
		intent string
	}{
		{"你好", domain.IntentGreeting},
		{"Hello there", domain.IntentGreeting},
		{"再见", domain.IntentGoodbye},
		{"谢谢你", domain.IntentThanks},
		{"你能做什么", domain.IntentAskCapability},
		{"1+1等于几", domain.IntentCalculate},
		{"3加5乘2", domain.IntentCalculate},
		{"帮我计算一下", domain.IntentCalculate},
		{"现在几点了", domain.IntentDatetime},
		{"把这句话翻译成英文", domain.IntentTranslate},
		{"帮我总结一下这段话", domain.IntentSummarize},
		{"用Python写一个函数", domain.IntentCodeHelp},
		{"Go和Rust的区别是什么", domain.IntentCompare},
		{"推荐一本编程书", domain.IntentRecommend},
		{"什么是闭包", domain.IntentExplain},
		{"怎么学习算法", domain.IntentHowTo},
		{"讲个笑话", domain.IntentChitchat},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			u := e.Understand(tt.text)
			assert.Equal(t, tt.intent, u.Intent)
			assert.Greater(t, u.Confidence, 0.0)
			assert.LessOrEqual(t, u.Confidence, 1.0)
			assert.Equal(t, tt.text, u.OriginalText)
		})
	}
}

func TestUnderstandDegradesToUnknown(t *testing.T) {
	e := NewExtractor(nil)

	for _, text := range []string{"", "   ", "呜啦啦", "asdf"} {
		u := e.Understand(text)
		assert.Equal(t, domain.IntentUnknown, u.Intent, "text=%q", text)
		assert.Zero(t, u.Confidence)
	}
}

func TestUnderstandGenericQuestion(t *testing.T) {
	e := NewExtractor(nil)

	u := e.Understand("鲸鱼会唱歌吗")
	assert.Equal(t, domain.IntentQuestion, u.Intent)
	assert.True(t, u.IsQuestion)
	assert.InDelta(t, 0.5, u.Confidence, 0.01)
}

func TestPatternBeatsKeywordScore(t *testing.T) {
	e := NewExtractor(nil)

	// An arithmetic shape without any calculate keyword still classifies.
	u := e.Understand("12*4-3")
	assert.Equal(t, domain.IntentCalculate, u.Intent)
	assert.InDelta(t, 0.9, u.Confidence, 0.01)
}

// --- entity extraction tests ---

func TestUnderstandEntities(t *testing.T) {
	e := NewExtractor(nil)

	tests := []struct {
		text   string
		entity string
		value  string
	}{
		{"用Python写个排序", domain.EntityProgrammingLanguage, "python"},
		{"把你好翻译成英文", domain.EntityTargetLanguage, "英文"},
		{"北京今天天气怎么样", domain.EntityCity, "北京"},
		{"明天是星期几", domain.EntityDate, "明天"},
		{"2026-09-01是星期几", domain.EntityDate, "2026-09-01"},
		{"计算42的平方", domain.EntityNumber, "42"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			u := e.Understand(tt.text)
			assert.Equal(t, tt.value, u.Entities[tt.entity])
		})
	}
}

func TestUnderstandNoEntities(t *testing.T) {
	e := NewExtractor(nil)
	u := e.Understand("你好")
	assert.Empty(t, u.Entities)
}

// --- keyword extraction tests ---

func TestKeywords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "latin words keep case-folded tokens",
			text: "How to learn Golang quickly",
			want: []string{"learn", "golang", "quickly"},
		},
		{
			name: "han text yields bigrams",
			text: "学习编程",
			want: []string{"学习", "习编", "编程"},
		},
		{
			name: "stopword characters split runs",
			text: "我的爱好是编程",
			want: []string{"爱好", "编程"},
		},
		{
			name: "single runes dropped",
			text: "a 猫",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Keywords(tt.text))
		})
	}
}

func TestKeywordsDeduplicate(t *testing.T) {
	kws := Keywords("golang golang golang")
	assert.Equal(t, []string{"golang"}, kws)
}

// --- question detection tests ---

func TestIsQuestion(t *testing.T) {
	e := NewExtractor(nil)

	assert.True(t, e.Understand("你吃饭了吗").IsQuestion)
	assert.True(t, e.Understand("what is a closure?").IsQuestion)
	assert.True(t, e.Understand("为什么天是蓝的").IsQuestion)
	assert.False(t, e.Understand("我吃过饭了").IsQuestion)
	assert.False(t, e.Understand("再见").IsQuestion)
}
