package knowledge

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// seedFile is the on-disk shape of a knowledge seed document.
type seedFile struct {
	Entries []Entry `yaml:"entries"`
}

// LoadSeedFile reads a YAML seed document and adds its entries. Returns the
// number of entries added.
func (b *Base) LoadSeedFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read seed file: %w", err)
	}
	var doc seedFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return 0, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	n := 0
	for _, e := range doc.Entries {
		if e.Topic == "" || e.Answer == "" {
			b.log.Warn().Str("file", path).Msg("skipping seed entry without topic or answer")
			continue
		}
		b.Add(e)
		n++
	}
	return n, nil
}

// SeedDefaults loads the built-in starter entries. They keep a fresh install
// from answering every question with a miss.
func (b *Base) SeedDefaults() {
	for _, e := range defaultEntries {
		b.Add(e)
	}
}

var defaultEntries = []Entry{
	{
		Topic:    "什么是编程",
		Answer:   "编程是编写计算机程序的过程：用一种编程语言描述解决问题的步骤，让计算机去执行。常见的入门语言有 Python、JavaScript 和 Go。",
		Keywords: []string{"编程", "程序", "programming"},
		Category: "programming",
	},
	{
		Topic:    "怎么学习编程",
		Answer:   "建议从一门语言入手（比如 Python），先掌握变量、条件、循环和函数，然后通过小项目练习。每天坚持写一点代码比偶尔突击更有效。",
		Keywords: []string{"学习", "编程", "入门", "learn"},
		Category: "programming",
	},
	{
		Topic:    "什么是算法",
		Answer:   "算法是解决问题的明确步骤序列。比如排序算法规定了如何把一组数据按顺序排列。好的算法用更少的时间和空间完成同样的任务。",
		Keywords: []string{"算法", "algorithm"},
		Category: "programming",
	},
	{
		Topic:    "什么是变量",
		Answer:   "变量是程序中用来存放数据的命名容器。给变量赋值后，就可以在后面的代码里通过名字使用或修改它。",
		Keywords: []string{"变量", "variable"},
		Category: "programming",
	},
	{
		Topic:    "什么是函数",
		Answer:   "函数是一段可以重复使用的代码，接收输入（参数）并产生输出（返回值）。把逻辑拆成函数能让程序更清晰、更容易测试。",
		Keywords: []string{"函数", "function"},
		Category: "programming",
	},
	{
		Topic:    "Python和Go的区别",
		Answer:   "Python 语法简洁、生态丰富，适合脚本、数据分析和快速原型；Go 编译为单一可执行文件，并发模型简单，适合网络服务和基础设施工具。",
		Keywords: []string{"python", "go", "区别", "比较"},
		Category: "programming",
	},
	{
		Topic:    "推荐编程入门书",
		Answer:   "入门可以看《笨办法学 Python》或《Python 编程：从入门到实践》；想理解计算机底层可以读《深入理解计算机系统》。",
		Keywords: []string{"推荐", "编程", "书", "入门"},
		Category: "programming",
	},
	{
		Topic:    "什么是人工智能",
		Answer:   "人工智能是让计算机完成通常需要人类智能的任务的技术，比如理解语言、识别图像和做出决策。机器学习是实现它的主要途径之一。",
		Keywords: []string{"人工智能", "ai", "机器学习"},
		Category: "general",
	},
	{
		Topic:    "怎么提高英语",
		Answer:   "多输入多输出：每天阅读或收听英文材料，把遇到的生词记下来复习，并尽量开口说、动手写。坚持几个月就能看到明显进步。",
		Keywords: []string{"英语", "提高", "学习", "english"},
		Category: "general",
	},
	{
		Topic:    "什么是数据库",
		Answer:   "数据库是有组织地存储和管理数据的系统。关系型数据库（如 SQLite、PostgreSQL）用表和 SQL 查询；键值和文档数据库则更灵活。",
		Keywords: []string{"数据库", "database", "sql"},
		Category: "programming",
	},
}
