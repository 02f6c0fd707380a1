package domain

type Route int

const (
	RouteGreeting Route = iota
	RouteOffTopic
	RouteVague
	RouteSubstantive
)

func (r Route) String() string {
	switch r {
	case RouteGreeting:
		return "greeting"
	case RouteOffTopic:
		return "off_topic"
	case RouteVague:
		return "vague"
	default:
		return "substantive"
	}
}

func (r Route) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// AnswerStage is the terminal state an answer reached.
type AnswerStage string

const (
	StageCanned        AnswerStage = "canned"
	StagePostprocessed AnswerStage = "postprocessed"
	StageFallback      AnswerStage = "fallback"
)

// Query is the per-request pipeline value. Stages read it and never mutate it.
type Query struct {
	Question  string
	Context   string
	Filenames []string
	Metadata  *DocumentMetadata
	Analysis  *AnalysisReport
}

type Answer struct {
	Text    string      `json:"answer"`
	Route   Route       `json:"route"`
	Stage   AnswerStage `json:"stage"`
	Sources []string    `json:"source_documents"`
}

type GenerationOptions struct {
	MaxTokens   int
	Temperature float64
	TopP        float64
	TopK        int
}
