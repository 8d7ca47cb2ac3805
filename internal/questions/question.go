package questions

import "strings"

// Level is the difficulty a question is written for.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Levels lists the supported levels in presentation order.
var Levels = []Level{LevelBeginner, LevelIntermediate, LevelAdvanced}

// Technology is the subject area of a question.
type Technology string

const (
	TechnologyHTML       Technology = "HTML"
	TechnologyCSS        Technology = "CSS"
	TechnologyJavaScript Technology = "JavaScript"
	TechnologyReact      Technology = "React"
	TechnologyGeneral    Technology = "General"

	// TechnologyAll disables technology filtering.
	TechnologyAll Technology = "all"
)

// KnownTechnologies lists the technologies of the built-in bank.
var KnownTechnologies = []Technology{
	TechnologyHTML, TechnologyCSS, TechnologyJavaScript, TechnologyReact, TechnologyGeneral,
}

// Feedback holds the canned messages shown after an answer is scored.
type Feedback struct {
	Good string `json:"good" mapstructure:"good"`
	Bad  string `json:"bad" mapstructure:"bad"`
}

// Question is a single scripted prompt. Questions are never mutated once loaded.
type Question struct {
	ID                 string     `json:"id" mapstructure:"id"`
	Prompt             string     `json:"prompt" mapstructure:"prompt"`
	Category           string     `json:"category" mapstructure:"category"`
	Level              Level      `json:"level,omitempty" mapstructure:"level"`
	Technology         Technology `json:"technology,omitempty" mapstructure:"technology"`
	Tips               string     `json:"tips,omitempty" mapstructure:"tips"`
	Feedback           Feedback   `json:"feedback" mapstructure:"feedback"`
	EvaluationCriteria []string   `json:"evaluationCriteria,omitempty" mapstructure:"evaluationCriteria"`
}

func (q Question) clone() Question {
	if q.EvaluationCriteria != nil {
		q.EvaluationCriteria = append([]string(nil), q.EvaluationCriteria...)
	}
	return q
}

// Filter selects questions by level and, optionally, technology.
type Filter struct {
	Level      Level
	Technology Technology
}

// Matches reports whether the question passes the filter. An empty level or
// technology, as well as TechnologyAll, matches everything.
func (f Filter) Matches(q Question) bool {
	if f.Level != "" && q.Level != f.Level {
		return false
	}

	tech := Technology(strings.TrimSpace(string(f.Technology)))
	if tech == "" || strings.EqualFold(string(tech), string(TechnologyAll)) {
		return true
	}

	return strings.EqualFold(string(q.Technology), string(tech))
}

// ParseLevel validates a level name.
func ParseLevel(s string) (Level, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, level := range Levels {
		if string(level) == s {
			return level, true
		}
	}
	return "", false
}
