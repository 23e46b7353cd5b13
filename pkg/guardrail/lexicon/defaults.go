package lexicon

// DefaultTables returns a fresh copy of the built-in lexicon tables.
// Callers may modify the returned value before compiling it.
func DefaultTables() Tables {
	return Tables{
		BannedPhrases: []string{
			"you should",
			"you need to",
			"from a rational perspective",
			"just think positive",
			"calm down",
			"it's not a big deal",
		},
		BannedPatterns: []string{
			`\byou should\b`,
			`\byou need to\b`,
			`\bone thing you could try\b`,
			`\bit might help to\b`,
			`\bhave you considered\b`,
			`\bfrom a rational perspective\b`,
			`\bjust\b.*\bpositive\b`,
		},
		AdviceLikePatterns: []string{
			`\byou\s+(?:could|might|may)\s+try\b`,
			`\byou\s+(?:could|might|may)\s+consider\b`,
			`\bI\s+(?:would|d suggest|d recommend)\s+(?:you\s+)?(?:try|consider|do)\b`,
			`\bI(?:\s+would|'d|’d)\s+(?:suggest|recommend)\b`,
			`\bone\s+option\s+is\s+to\b`,
			`\bwhy\s+not\s+try\b`,
			`\bthe\s+best\s+way\s+(?:would\s+be|is)\s+to\b`,
		},
		ActionVerbPatterns: []string{
			`\btry\s+(?:to\s+)?(?:taking|writing|talking|going)\b`,
			`\bconsider\s+(?:taking|talking|writing)\b`,
			`\byou\s+could\s+(?:try|consider|take|do)\b`,
			`\bone\s+(?:option|thing)\s+(?:is\s+to|you\s+could)\b`,
		},
		AdviceRequestPatterns: []RequestPattern{
			{Language: English, Pattern: `\bwhat\s+should\s+I\s+do\b`},
			{Language: English, Pattern: `\bgive\s+me\s+advice\b`},
			{Language: English, Pattern: `\btell\s+me\s+what\s+to\s+do\b`},
			{Language: English, Pattern: `\bhow\s+should\s+I\s+(?:handle|deal|approach)\b`},
			{Language: English, Pattern: `\badvice\s+on\s+(?:how|what)\b`},
			{Language: English, Pattern: `\bwhat\s+would\s+you\s+(?:do|suggest|recommend)\b`},
			{Language: English, Pattern: `\bwhat\s+do\s+you\s+(?:think\s+I\s+should|suggest|recommend)\b`},
			{Language: Chinese, Pattern: `我该怎么办`},
			{Language: Chinese, Pattern: `给我建议`},
			{Language: Chinese, Pattern: `给我一点建议`},
			{Language: Chinese, Pattern: `告诉我该怎么做`},
			{Language: Chinese, Pattern: `你有什么建议`},
			{Language: Chinese, Pattern: `你有什么建议吗`},
			{Language: Chinese, Pattern: `我该怎么做`},
			{Language: Chinese, Pattern: `怎么办才好`},
		},
		PerspectiveRequestPatterns: []string{
			`\bwhat do you think\b`,
			`\bwhat's your take\b`,
			`你怎么看`,
		},
		ReflectionStarters: []string{
			"It sounds like",
			"I might be wrong, but",
			"What I'm hearing is",
			"That feels like a lot to carry",
			"It makes sense that this feels heavy",
		},
		RewriteClosers: []string{
			"this is really hard.",
			"you're carrying a lot.",
			"that's a lot to sit with.",
		},
	}
}
