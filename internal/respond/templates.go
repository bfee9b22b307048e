package respond

// Pool names. Every reply the bot produces comes out of one of these pools,
// with {placeholder} substitution.
const (
	poolGreeting       = "greeting"
	poolGoodbye        = "goodbye"
	poolThanks         = "thanks"
	poolCapability     = "capability"
	poolNotUnderstood  = "not_understood"
	poolKnowledgeMiss  = "knowledge_miss"
	poolCalcResult     = "calc_result"
	poolDatetime       = "datetime"
	poolCode           = "code"
	poolTranslation    = "translation"
	poolTranslatorMiss = "translator_miss"
	poolSummary        = "summary"
	poolSkillError     = "skill_error"
	poolFollowUp       = "follow_up"

	poolChitchatDefault  = "chitchat_default"
	poolChitchatIdentity = "chitchat_identity"
	poolChitchatAge      = "chitchat_age"
	poolChitchatHobby    = "chitchat_hobby"
	poolChitchatFeeling  = "chitchat_feeling"
	poolChitchatEating   = "chitchat_eating"
	poolChitchatSleeping = "chitchat_sleeping"
	poolChitchatJoke     = "chitchat_joke"
)

var pools = map[string][]string{
	poolGreeting: {
		"你好！很高兴见到你 😊",
		"嗨！有什么我可以帮你的吗？",
		"你好呀！今天想聊点什么？",
	},
	poolGoodbye: {
		"再见！随时欢迎回来找我聊天。",
		"拜拜，祝你今天顺利！",
		"下次见！",
	},
	poolThanks: {
		"不客气！能帮上忙就好。",
		"不用谢，这是我应该做的。",
		"客气啦，还有别的需要吗？",
	},
	poolCapability: {
		"我可以帮你算算术、查时间、写示例代码、翻译常用语、总结文本，还能回答一些常见问题。试试问我「1+1等于几」？",
		"我的本领包括：四则运算、日期时间查询、生成示例代码、中英互译和文本摘要。问问看吧！",
	},
	poolNotUnderstood: {
		"抱歉，我没太明白你的意思，能换个说法吗？",
		"嗯……这个我没听懂，可以说得具体一点吗？",
		"不好意思，我还理解不了这句话。换种问法试试？",
	},
	poolKnowledgeMiss: {
		"这个问题我还不会，你可以教我：用「记住：问题=答案」的格式告诉我。",
		"抱歉，我的知识库里没有找到相关内容。",
		"这个我答不上来，换个问题试试？",
	},
	poolCalcResult: {
		"计算结果是：{result}",
		"算出来了，{expression} = {result}",
		"答案是 {result}。",
	},
	poolDatetime: {
		"现在是 {datetime}。",
		"当前时间：{datetime}。",
	},
	poolCode: {
		"好的，这是一段 {language} 示例代码：\n\n{code}",
		"试试这段 {language} 代码：\n\n{code}",
	},
	poolTranslation: {
		"「{source}」的翻译是：{translation}",
		"{source} → {translation}",
	},
	poolTranslatorMiss: {
		"抱歉，「{source}」我还不会翻译，我的词典只收录了常用语。",
		"这个超出我的词典范围了，我只会翻译一些常用短语。",
	},
	poolSummary: {
		"我帮你把要点提出来了：{summary}",
		"摘要如下：{summary}",
	},
	poolSkillError: {
		"抱歉，这个任务我没能完成：{error}",
		"出了点问题：{error}",
	},
	poolFollowUp: {
		"还有什么想问的吗？",
		"需要我再帮你做点什么吗？",
		"还想了解什么？",
	},

	poolChitchatDefault: {
		"哈哈，聊点别的吧，比如问我「你能做什么」。",
		"有意思！不过我更擅长回答问题和做小任务。",
	},
	poolChitchatIdentity: {
		"我是 {botName}，一个基于规则的聊天助手。",
		"我叫 {botName}，很高兴认识你！",
	},
	poolChitchatAge: {
		"我是程序，没有年龄，不过我的代码最近刚更新过。",
		"年龄对我来说只是一个版本号 😄",
	},
	poolChitchatHobby: {
		"我的爱好是算算术和背诵知识库。",
		"要说爱好的话，大概是帮人解决问题吧。",
	},
	poolChitchatFeeling: {
		"我状态很好，随时待命！",
		"心情不错，谢谢关心。你呢？",
	},
	poolChitchatEating: {
		"我不吃饭，电就是我的粮食。",
		"我只消耗 CPU 和内存，你吃好喝好就行。",
	},
	poolChitchatSleeping: {
		"我不用睡觉，24 小时在线。",
		"只要服务器不重启，我就一直醒着。",
	},
	poolChitchatJoke: {
		"为什么程序员分不清万圣节和圣诞节？因为 Oct 31 == Dec 25。",
		"世界上有 10 种人：懂二进制的和不懂的。",
		"程序员最讨厌的两件事：写注释，和别人不写注释。",
	},
}

// chitchatTopics routes small talk to a sub-pool by keyword. Checked in
// order.
var chitchatTopics = []struct {
	pool     string
	keywords []string
}{
	{poolChitchatJoke, []string{"笑话", "joke"}},
	{poolChitchatIdentity, []string{"你是谁", "你叫什么", "who are you", "your name"}},
	{poolChitchatAge, []string{"多大", "几岁", "年龄", "how old"}},
	{poolChitchatHobby, []string{"爱好", "喜欢什么", "hobby"}},
	{poolChitchatFeeling, []string{"心情", "开心", "难过", "how are you"}},
	{poolChitchatEating, []string{"吃饭", "吃了吗", "吃什么"}},
	{poolChitchatSleeping, []string{"睡觉", "睡了吗", "失眠"}},
}

// suggestions offered alongside replies, keyed by intent.
var intentSuggestions = map[string][]string{
	"greeting":       {"你能做什么", "现在几点", "讲个笑话"},
	"ask_capability": {"1+1等于几", "帮我写个排序代码", "什么是编程"},
	"thanks":         {"再见"},
	"calculate":      {"(3+5)*2", "今天星期几"},
	"datetime":       {"帮我算一下 12*34", "讲个笑话"},
	"code_help":      {"写一个循环", "什么是函数"},
	"translate":      {"你好用英语怎么说"},
	"chitchat":       {"你能做什么", "讲个笑话"},
}
