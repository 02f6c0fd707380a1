package conversation

// Vocabulary holds the keyword lists the router and post-processor match
// against. All lists are lower-case and matched literally.
type Vocabulary struct {
	Greetings []string
	// OffTopic keywords are substring-matched, so very short entries match widely.
	OffTopic       []string
	OnTopic        []string
	Programming    []string
	VaguePhrases   []string
	Interrogatives []string
	// MinWords is the word count below which a question is vague.
	MinWords int

	Openers     []string
	ClosingCues []string
}

func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Greetings: []string{"hi", "hello", "hey", "good morning", "good afternoon", "good evening"},
		OffTopic: []string{
			"program", "code", "function", "algorithm", "script", "software",
			"python", "java", "javascript", "write", "create", "develop",
			"weather", "news", "sports", "cooking", "recipe", "movie",
			"music", "game", "joke", "story", "math", "calculate",
			"c++", "c", "typescript", "sql", "nosql",
		},
		OnTopic: []string{"travel", "trip", "flight", "hotel", "accommodation", "per diem", "allowance", "policy", "booking"},
		Programming: []string{
			"program", "code", "function", "algorithm", "script", "software",
			"python", "java", "javascript", "write", "create", "develop",
		},
		VaguePhrases: []string{
			"help", "what can you do", "tell me", "explain", "info", "information",
			"about", "details", "more", "anything", "everything",
		},
		Interrogatives: []string{"what", "how", "why", "when", "where"},
		MinWords:       4,
		Openers: []string{
			"great", "excellent", "perfect", "wonderful", "fantastic",
			"i'd be happy", "absolutely", "sure thing",
		},
		ClosingCues: []string{"help", "questions", "assist", "anything else", "clarification", "more information"},
	}
}
