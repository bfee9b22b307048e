package skill

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- registry tests ---

type fakeSkill struct {
	name string
	fn   func(ctx context.Context, params map[string]string) (Result, error)
}

func (f *fakeSkill) Name() string        { return f.name }
func (f *fakeSkill) Description() string { return "fake" }
func (f *fakeSkill) Execute(ctx context.Context, params map[string]string) (Result, error) {
	return f.fn(ctx, params)
}

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry(nil)

	require.NoError(t, r.Register(&fakeSkill{name: "echo"}))
	assert.Error(t, r.Register(&fakeSkill{name: "echo"}), "duplicate name must be rejected")
	assert.Error(t, r.Register(&fakeSkill{name: ""}))

	_, ok := r.Get("echo")
	assert.True(t, ok)
	assert.Len(t, r.List(), 1)
}

func TestRegistryExecuteUnknown(t *testing.T) {
	r := NewRegistry(nil)
	res := r.Execute(context.Background(), "nope", nil)
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "nope")
}

func TestRegistryExecuteWrapsError(t *testing.T) {
	r := NewRegistry(nil)
	require.NoError(t, r.Register(&fakeSkill{
		name: "boom",
		fn: func(context.Context, map[string]string) (Result, error) {
			return Result{}, errors.New("it broke")
		},
	}))

	res := r.Execute(context.Background(), "boom", nil)
	assert.False(t, res.Success)
	assert.Equal(t, "it broke", res.Error)
}

func TestRegistryExecuteRecoversPanic(t *testing.T) {
	r := NewRegistry(nil)
	require.NoError(t, r.Register(&fakeSkill{
		name: "panicky",
		fn: func(context.Context, map[string]string) (Result, error) {
			panic("oh no")
		},
	}))

	res := r.Execute(context.Background(), "panicky", nil)
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "panicky")
}

// --- calculator tests ---

func TestCalculator(t *testing.T) {
	c := NewCalculator()

	tests := []struct {
		expr string
		want string
	}{
		{"1+1", "2"},
		{"1+1等于几", "2"},
		{"3加5乘2", "13"},
		{"(3+5)*2", "16"},
		{"10除2", "5"},
		{"7减10", "-3"},
		{"-4+6", "2"},
		{"2.5*4", "10"},
		{"帮我算一下 100/4", "25"},
		{"１２＋３４", "46"},  // full-width digits and operator normalize
		{"3+5x2", "8"}, // alien rune bounds the expression at "3+5"
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			res, err := c.Execute(context.Background(), map[string]string{"expression": tt.expr})
			require.NoError(t, err)
			require.True(t, res.Success, "error: %s", res.Error)
			assert.Equal(t, tt.want, res.Data["formatted"])
		})
	}
}

func TestCalculatorRejects(t *testing.T) {
	c := NewCalculator()

	for _, expr := range []string{"", "你好", "1/0", "2+", "((1+2)", "12+?3"} {
		t.Run(expr, func(t *testing.T) {
			res, err := c.Execute(context.Background(), map[string]string{"expression": expr})
			require.NoError(t, err)
			assert.False(t, res.Success)
			assert.NotEmpty(t, res.Error)
		})
	}
}

// --- datetime tests ---

func TestDatetime(t *testing.T) {
	d := NewDatetime()
	d.now = func() time.Time {
		return time.Date(2026, 9, 1, 14, 30, 0, 0, time.Local) // a Tuesday
	}

	res, err := d.Execute(context.Background(), nil)
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, "2026年09月01日", res.Data["date"])
	assert.Equal(t, "14:30", res.Data["time"])
	assert.Equal(t, "星期二", res.Data["weekday"])
	assert.Contains(t, res.Data["datetime"], "星期二")
}

// --- code generator tests ---

func TestCodeGenerator(t *testing.T) {
	g := NewCodeGenerator()

	res, err := g.Execute(context.Background(), map[string]string{
		"task_description":     "帮我写个排序",
		"programming_language": "go",
	})
	require.NoError(t, err)
	require.True(t, res.Success, "error: %s", res.Error)
	assert.Equal(t, "go", res.Data["language"])
	assert.Equal(t, "sort", res.Data["topic"])
	assert.Contains(t, res.Data["code"], "sort.Ints")
}

func TestCodeGeneratorDefaultsToPython(t *testing.T) {
	g := NewCodeGenerator()

	res, err := g.Execute(context.Background(), map[string]string{
		"task_description": "写一个循环",
	})
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, "python", res.Data["language"])
}

func TestCodeGeneratorUnknownTopic(t *testing.T) {
	g := NewCodeGenerator()

	res, err := g.Execute(context.Background(), map[string]string{
		"task_description": "写一个操作系统",
	})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Error)
}

// --- translator tests ---

func TestTranslator(t *testing.T) {
	tr := NewTranslator()

	tests := []struct {
		source string
		want   string
	}{
		{"你好", "hello"},
		{"把你好翻译成英文", "hello"},
		{"帮我翻译一下谢谢", "thank you"},
		{"hello", "你好"},
		{"translate cat to chinese", "猫"},
		{"我爱你用英语怎么说", "I love you"},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			res, err := tr.Execute(context.Background(), map[string]string{"source_text": tt.source})
			require.NoError(t, err)
			require.True(t, res.Success)
			require.Equal(t, true, res.Data["found"], "source=%q cleaned=%q", tt.source, res.Data["source"])
			assert.Equal(t, tt.want, res.Data["translation"])
		})
	}
}

func TestTranslatorHonestMiss(t *testing.T) {
	tr := NewTranslator()

	res, err := tr.Execute(context.Background(), map[string]string{"source_text": "翻译形而上学"})
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, false, res.Data["found"])
	_, hasTranslation := res.Data["translation"]
	assert.False(t, hasTranslation)
}

// --- summarizer tests ---

func TestSummarizer(t *testing.T) {
	s := NewSummarizer()
	text := strings.Repeat("这是第一句话。这是第二句话。这是第三句话。这是第四句话。", 2)

	res, err := s.Execute(context.Background(), map[string]string{"source_text": text})
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, 3, res.Data["sentences"])
	assert.Equal(t, "这是第一句话。这是第二句话。这是第三句话。", res.Data["summary"])
}

func TestSummarizerRejectsShortText(t *testing.T) {
	s := NewSummarizer()

	res, err := s.Execute(context.Background(), map[string]string{"source_text": "太短了。"})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "太短")
}
