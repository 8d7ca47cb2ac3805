package evaluator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/jobcoach/internal/questions"
)

func question(criteria ...string) questions.Question {
	return questions.Question{
		ID:                 "q",
		Prompt:             "prompt",
		Category:           "c",
		Feedback:           questions.Feedback{Good: "good", Bad: "bad"},
		EvaluationCriteria: criteria,
	}
}

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("zzz ", n))
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		response string
		criteria []string
		score    float64
		feedback string
	}{
		{name: "short answer no keywords", response: words(5), score: 0.5, feedback: "bad"},
		{name: "length term is capped", response: words(300), score: 10, feedback: "good"},
		{name: "keywords add two points each", response: "Flexbox and GRID " + words(7), criteria: []string{"flex", "grid", "absolute"}, score: 1 + 4, feedback: "bad"},
		{name: "total is capped", response: "flex grid absolute transform " + words(96), criteria: []string{"flex", "grid", "absolute", "transform"}, score: 15, feedback: "good"},
		{name: "threshold is inclusive", response: "alpha beta " + words(58), criteria: []string{"alpha", "beta"}, score: 10, feedback: "good"},
		{name: "blank criteria are ignored", response: words(10), criteria: []string{"", "  "}, score: 1, feedback: "bad"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Evaluate(tt.response, question(tt.criteria...))
			assert.InDelta(t, tt.score, got.Score, 1e-9)
			assert.Equal(t, tt.feedback, got.Feedback)
		})
	}
}

func TestEvaluateIsBoundedAndDeterministic(t *testing.T) {
	bank, err := questions.Default()
	require.NoError(t, err)

	responses := []string{
		"a",
		words(42),
		"element example opening closing class id value " + words(200),
		"Flex GRID absolute Transform, margin padding border content",
	}

	for _, q := range bank.All() {
		for _, response := range responses {
			first := Evaluate(response, q)
			second := Evaluate(response, q)

			assert.Equal(t, first, second, q.ID)
			assert.GreaterOrEqual(t, first.Score, 0.0, q.ID)
			assert.LessOrEqual(t, first.Score, MaxScore, q.ID)

			if first.Score >= GoodThreshold {
				assert.Equal(t, q.Feedback.Good, first.Feedback, q.ID)
			} else {
				assert.Equal(t, q.Feedback.Bad, first.Feedback, q.ID)
			}
		}
	}
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 0, WordCount("   "))
	assert.Equal(t, 3, WordCount(" one\ttwo\n three "))
}

func TestFormatScore(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "15", FormatScore(15))
	assert.Equal(t, "0", FormatScore(0))
	assert.Equal(t, "5.2", FormatScore(1.2+4))
	assert.Equal(t, "7.5", FormatScore(7.5))
}
