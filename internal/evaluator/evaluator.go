// Package evaluator scores free-text answers against a question's keywords.
package evaluator

import (
	"math"
	"strconv"
	"strings"

	"github.com/spigell/jobcoach/internal/questions"
)

const (
	// MaxScore is the upper bound of every score.
	MaxScore = 15.0
	// GoodThreshold is the score from which the positive feedback is returned.
	GoodThreshold = 10.0

	maxLengthScore = 10.0
	wordsPerPoint  = 10.0
	keywordPoints  = 2.0
)

// Result is the outcome of scoring one response.
type Result struct {
	Feedback string
	Score    float64
}

// Evaluate scores response against q. It is pure: the same inputs always give the
// same result. Callers must not pass an empty response.
func Evaluate(response string, q questions.Question) Result {
	score := LengthScore(response) + float64(MatchedCriteria(response, q))*keywordPoints
	score = math.Min(score, MaxScore)
	if score < 0 {
		score = 0
	}

	feedback := q.Feedback.Bad
	if score >= GoodThreshold {
		feedback = q.Feedback.Good
	}

	return Result{Feedback: feedback, Score: score}
}

// LengthScore is the capped length term: one point per ten words, at most ten.
func LengthScore(response string) float64 {
	return math.Min(maxLengthScore, float64(WordCount(response))/wordsPerPoint)
}

// WordCount counts whitespace separated words.
func WordCount(response string) int {
	return len(strings.Fields(response))
}

// MatchedCriteria counts the evaluation keywords found in response,
// compared case-insensitively as substrings.
func MatchedCriteria(response string, q questions.Question) int {
	lower := strings.ToLower(response)
	matched := 0
	for _, criterion := range q.EvaluationCriteria {
		criterion = strings.ToLower(strings.TrimSpace(criterion))
		if criterion == "" {
			continue
		}
		if strings.Contains(lower, criterion) {
			matched++
		}
	}
	return matched
}

// FormatScore renders a score with at most one decimal, e.g. "12.5" or "15".
func FormatScore(score float64) string {
	return strconv.FormatFloat(math.Round(score*10)/10, 'f', -1, 64)
}
