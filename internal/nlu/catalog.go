package nlu

import (
	"regexp"

	"github.com/soyeahso/parley/internal/domain"
)

// intentRule maps keyword/pattern evidence to an intent tag. Rules are plain
// data so new intents can be added without touching the matching engine.
type intentRule struct {
	Intent   string
	Base     float64 // confidence for a single keyword hit
	Keywords []string
	Patterns []*regexp.Regexp
}

// patternConfidence is assigned when a regexp (not just a keyword) matches.
const patternConfidence = 0.9

// maxConfidence caps the heuristic score.
const maxConfidence = 0.95

// extraHitBonus is added per keyword hit beyond the first.
const extraHitBonus = 0.1

// intentRules is the fixed intent catalogue, in priority order. Earlier rules
// win score ties.
var intentRules = []intentRule{
	{
		Intent: domain.IntentGreeting,
		Base:   0.8,
		Keywords: []string{
			"你好", "您好", "嗨", "哈喽", "早上好", "下午好", "晚上好",
			"hello", "hi there", "hey", "good morning", "good evening",
		},
		Patterns: []*regexp.Regexp{regexp.MustCompile(`^(hi|hello|hey)\b`)},
	},
	{
		Intent: domain.IntentGoodbye,
		Base:   0.8,
		Keywords: []string{
			"再见", "拜拜", "回见", "下次聊", "晚安",
			"goodbye", "bye", "see you", "good night",
		},
	},
	{
		Intent: domain.IntentThanks,
		Base:   0.8,
		Keywords: []string{
			"谢谢", "感谢", "多谢", "辛苦了",
			"thank", "thanks", "thx",
		},
	},
	{
		Intent: domain.IntentAskCapability,
		Base:   0.8,
		Keywords: []string{
			"你能做什么", "你会做什么", "你会什么", "你有什么功能", "能帮我做什么",
			"what can you do", "your capabilities", "help me with what",
		},
	},
	{
		Intent: domain.IntentCalculate,
		Base:   0.7,
		Keywords: []string{
			"计算", "算一下", "算算", "等于几", "等于多少",
			"calculate", "compute", "plus", "minus",
		},
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`[0-9][ ]*[+\-*/×÷][ ]*[0-9]`),
			regexp.MustCompile(`[0-9][ ]*[加减乘除]`),
		},
	},
	{
		Intent: domain.IntentDatetime,
		Base:   0.7,
		Keywords: []string{
			"几点", "时间", "日期", "星期几", "几号", "今天是",
			"what time", "what date", "today's date",
		},
	},
	{
		Intent: domain.IntentTranslate,
		Base:   0.7,
		Keywords: []string{
			"翻译", "译成", "用英语怎么说", "用中文怎么说",
			"translate", "how do you say",
		},
	},
	{
		Intent: domain.IntentSummarize,
		Base:   0.7,
		Keywords: []string{
			"总结", "摘要", "概括", "提炼",
			"summarize", "summary", "tl;dr",
		},
	},
	{
		Intent: domain.IntentCodeHelp,
		Base:   0.7,
		Keywords: []string{
			"写代码", "写个程序", "写一个函数", "代码", "实现一个", "写个脚本", "报错",
			"write code", "write a function", "write a program", "implement", "debug",
		},
	},
	{
		Intent: domain.IntentCompare,
		Base:   0.65,
		Keywords: []string{
			"区别", "比较", "对比", "哪个好", "哪个更",
			"difference between", "compare", " vs ", "versus",
		},
	},
	{
		Intent: domain.IntentRecommend,
		Base:   0.65,
		Keywords: []string{
			"推荐", "建议", "有什么好",
			"recommend", "suggest", "suggestion",
		},
	},
	{
		Intent: domain.IntentExplain,
		Base:   0.65,
		Keywords: []string{
			"什么是", "是什么", "解释", "介绍一下", "含义",
			"what is", "what are", "explain", "meaning of",
		},
	},
	{
		Intent: domain.IntentHowTo,
		Base:   0.6,
		Keywords: []string{
			"怎么", "如何", "怎样",
			"how to", "how do i", "how can i",
		},
	},
	{
		Intent: domain.IntentChitchat,
		Base:   0.6,
		Keywords: []string{
			"你是谁", "你叫什么", "你多大", "你几岁", "爱好", "你喜欢", "无聊",
			"讲个笑话", "聊聊", "吃饭", "吃了吗", "睡觉", "心情",
			"who are you", "your name", "how old are you", "tell me a joke", "bored",
		},
	},
}

// entityRule extracts one typed entity via alternatives or a pattern.
type entityRule struct {
	Entity  string
	Values  []string // literal matches; the matched literal is the value
	Pattern *regexp.Regexp
}

var entityRules = []entityRule{
	{
		Entity: domain.EntityProgrammingLanguage,
		Values: []string{
			"python", "golang", "go语言", "javascript", "typescript", "java",
			"c++", "rust", "ruby", "php", "swift", "kotlin", "c#",
		},
	},
	{
		Entity: domain.EntityTargetLanguage,
		Pattern: regexp.MustCompile(`(?:翻译成|译成|translate .*(?:to|into)\s+)([\p{Han}a-z]+)`),
	},
	{
		Entity: domain.EntityTargetLanguage,
		Values: []string{"中文", "英文", "英语", "日文", "日语", "法语", "chinese", "english", "japanese", "french"},
	},
	{
		Entity: domain.EntityCity,
		Values: []string{
			"北京", "上海", "广州", "深圳", "杭州", "成都", "武汉", "西安",
			"beijing", "shanghai", "tokyo", "london", "new york",
		},
	},
	{
		Entity: domain.EntityDate,
		Values: []string{"今天", "明天", "昨天", "后天", "today", "tomorrow", "yesterday"},
	},
	{
		Entity:  domain.EntityDate,
		Pattern: regexp.MustCompile(`\d{4}-\d{1,2}-\d{1,2}`),
	},
	{
		Entity:  domain.EntityNumber,
		Pattern: regexp.MustCompile(`\d+(?:\.\d+)?`),
	},
}

// questionMarkers flag an utterance as a question.
var questionSuffixes = []string{"?", "？", "吗", "呢", "么"}

var questionLeads = []string{
	"什么", "怎么", "如何", "怎样", "为什么", "谁", "哪", "几", "多少", "是否", "能不能", "可不可以",
	"what", "how", "why", "who", "where", "when", "which", "can ", "could ", "is ", "are ", "do ", "does ",
}

// stopwords are dropped from extracted keywords. Mixed Chinese/English set.
var stopwords = map[string]bool{
	"的": true, "了": true, "是": true, "我": true, "你": true, "他": true,
	"她": true, "它": true, "在": true, "和": true, "与": true, "吗": true,
	"呢": true, "吧": true, "啊": true, "请": true, "请问": true, "一下": true,
	"这个": true, "那个": true, "什么": true, "怎么": true, "如何": true,
	"the": true, "a": true, "an": true, "is": true, "are": true, "was": true,
	"to": true, "of": true, "in": true, "on": true, "at": true, "for": true,
	"and": true, "or": true, "do": true, "does": true, "how": true,
	"what": true, "why": true, "can": true, "could": true, "please": true,
	"me": true, "my": true, "i": true, "you": true, "it": true, "this": true,
	"that": true, "with": true,
}
