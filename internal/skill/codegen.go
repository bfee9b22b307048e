package skill

import (
	"context"
	"strings"
)

// CodeGenerator returns canned example snippets matched by topic keywords in
// the task description. It is template lookup, not synthesis.
type CodeGenerator struct{}

func NewCodeGenerator() *CodeGenerator { return &CodeGenerator{} }

func (g *CodeGenerator) Name() string        { return "code_generator" }
func (g *CodeGenerator) Description() string { return "生成常见任务的示例代码片段" }

func (g *CodeGenerator) Execute(_ context.Context, params map[string]string) (Result, error) {
	task := strings.ToLower(params["task_description"])
	if strings.TrimSpace(task) == "" {
		return Result{Error: "没有说明想实现什么功能"}, nil
	}
	lang := normalizeLanguage(params["programming_language"])

	topic := matchTopic(task)
	if topic == "" {
		return Result{Error: "这个功能我还没有现成的示例代码"}, nil
	}
	code, ok := snippets[topic][lang]
	if !ok {
		// Fall back to the topic's python snippet.
		lang = "python"
		code = snippets[topic]["python"]
	}
	if code == "" {
		return Result{Error: "这个功能我还没有现成的示例代码"}, nil
	}

	return Result{
		Success: true,
		Data: map[string]any{
			"language": lang,
			"topic":    topic,
			"code":     code,
		},
	}, nil
}

func normalizeLanguage(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "go", "golang", "go语言":
		return "go"
	case "javascript", "js":
		return "javascript"
	case "python", "":
		return "python"
	default:
		return strings.ToLower(strings.TrimSpace(s))
	}
}

// topicKeywords maps description keywords to snippet topics, checked in
// order so more specific topics win.
var topicKeywords = []struct {
	topic    string
	keywords []string
}{
	{"fibonacci", []string{"斐波那契", "fibonacci"}},
	{"sort", []string{"排序", "sort"}},
	{"loop", []string{"循环", "遍历", "loop", "iterate"}},
	{"file", []string{"文件", "读取", "file", "read"}},
	{"http", []string{"http", "请求", "接口", "request"}},
	{"hello", []string{"hello", "你好世界", "入门"}},
}

func matchTopic(task string) string {
	for _, t := range topicKeywords {
		for _, kw := range t.keywords {
			if strings.Contains(task, kw) {
				return t.topic
			}
		}
	}
	return ""
}

var snippets = map[string]map[string]string{
	"sort": {
		"python": "numbers = [5, 2, 9, 1, 7]\nnumbers.sort()\nprint(numbers)  # [1, 2, 5, 7, 9]",
		"go": "numbers := []int{5, 2, 9, 1, 7}\nsort.Ints(numbers)\nfmt.Println(numbers) // [1 2 5 7 9]",
		"javascript": "const numbers = [5, 2, 9, 1, 7];\nnumbers.sort((a, b) => a - b);\nconsole.log(numbers); // [1, 2, 5, 7, 9]",
	},
	"loop": {
		"python": "for i in range(5):\n    print(i)",
		"go": "for i := 0; i < 5; i++ {\n    fmt.Println(i)\n}",
		"javascript": "for (let i = 0; i < 5; i++) {\n  console.log(i);\n}",
	},
	"file": {
		"python": "with open(\"data.txt\", encoding=\"utf-8\") as f:\n    for line in f:\n        print(line.rstrip())",
		"go": "data, err := os.ReadFile(\"data.txt\")\nif err != nil {\n    log.Fatal(err)\n}\nfmt.Print(string(data))",
		"javascript": "const fs = require(\"fs\");\nconst data = fs.readFileSync(\"data.txt\", \"utf8\");\nconsole.log(data);",
	},
	"http": {
		"python": "import urllib.request\n\nwith urllib.request.urlopen(\"https://example.com\") as resp:\n    print(resp.status)",
		"go": "resp, err := http.Get(\"https://example.com\")\nif err != nil {\n    log.Fatal(err)\n}\ndefer resp.Body.Close()\nfmt.Println(resp.Status)",
		"javascript": "const resp = await fetch(\"https://example.com\");\nconsole.log(resp.status);",
	},
	"fibonacci": {
		"python": "def fib(n):\n    a, b = 0, 1\n    for _ in range(n):\n        a, b = b, a + b\n    return a",
		"go": "func fib(n int) int {\n    a, b := 0, 1\n    for i := 0; i < n; i++ {\n        a, b = b, a+b\n    }\n    return a\n}",
		"javascript": "function fib(n) {\n  let [a, b] = [0, 1];\n  for (let i = 0; i < n; i++) [a, b] = [b, a + b];\n  return a;\n}",
	},
	"hello": {
		"python": "print(\"你好，世界\")",
		"go": "package main\n\nimport \"fmt\"\n\nfunc main() {\n    fmt.Println(\"你好，世界\")\n}",
		"javascript": "console.log(\"你好，世界\");",
	},
}
