package skill

import (
	"context"
	"regexp"
	"strings"
)

// Translator does dictionary lookup between Chinese and English. It only
// knows the phrases in its table and says so when asked for anything else.
type Translator struct{}

func NewTranslator() *Translator { return &Translator{} }

func (t *Translator) Name() string        { return "translator" }
func (t *Translator) Description() string { return "中英文常用语互译（仅限内置词典）" }

// commandNoise strips the request phrasing around the text to translate,
// e.g. 帮我翻译一下X / 把X翻译成英文 / translate X to english.
var commandNoise = []*regexp.Regexp{
	regexp.MustCompile(`^(请|帮我|麻烦)+`),
	regexp.MustCompile(`^(把|将)`),
	regexp.MustCompile(`(翻译成|译成)[\p{Han}a-z]+$`),
	regexp.MustCompile(`^翻译(一下)?`),
	regexp.MustCompile(`^translate\s+`),
	regexp.MustCompile(`\s+(to|into)\s+[a-z]+$`),
	regexp.MustCompile(`(用|的)?(英语|英文|中文|汉语)(怎么说|怎么写)$`),
}

func (t *Translator) Execute(_ context.Context, params map[string]string) (Result, error) {
	source := cleanSource(params["source_text"])
	target := params["target_language"]
	if source == "" {
		return Result{Error: "没有找到需要翻译的内容"}, nil
	}

	translation, found := dictionary[strings.ToLower(source)]
	data := map[string]any{
		"source": source,
		"target": target,
		"found":  found,
	}
	if found {
		data["translation"] = translation
	}
	return Result{Success: true, Data: data}, nil
}

func cleanSource(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.Trim(s, "“”\"'？?。！!")
	for _, re := range commandNoise {
		s = re.ReplaceAllString(s, "")
	}
	return strings.TrimSpace(strings.Trim(s, "“”\"'？?。！!"))
}

// dictionary is intentionally tiny. Both directions are listed explicitly.
var dictionary = map[string]string{
	"你好":    "hello",
	"谢谢":    "thank you",
	"再见":    "goodbye",
	"早上好":   "good morning",
	"晚上好":   "good evening",
	"晚安":    "good night",
	"对不起":   "sorry",
	"没关系":   "it's okay",
	"我爱你":   "I love you",
	"生日快乐":  "happy birthday",
	"新年快乐":  "happy new year",
	"猫":     "cat",
	"狗":     "dog",
	"朋友":    "friend",
	"学习":    "study",
	"工作":    "work",
	"编程":    "programming",
	"计算机":   "computer",
	"hello":          "你好",
	"thank you":      "谢谢",
	"thanks":         "谢谢",
	"goodbye":        "再见",
	"good morning":   "早上好",
	"good night":     "晚安",
	"sorry":          "对不起",
	"i love you":     "我爱你",
	"happy birthday": "生日快乐",
	"cat":            "猫",
	"dog":            "狗",
	"friend":         "朋友",
	"computer":       "计算机",
	"programming":    "编程",
}
