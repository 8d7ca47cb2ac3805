package cmd

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spigell/jobcoach/internal/ai"
	"github.com/spigell/jobcoach/internal/flow"
	"github.com/spigell/jobcoach/internal/questions"
)

func TestPrintResults(t *testing.T) {
	res := flow.Results{
		Answers: []flow.Answer{
			{
				Question: questions.Question{Prompt: "What is the DOM?"},
				Response: "A tree of nodes.",
				Feedback: "Mention the document API.",
				Score:    3.4,
			},
		},
		TotalScore: 3.4,
		MaxScore:   30,
		Percentage: 11,
		Average:    3.4,
		Elapsed:    75 * time.Second,
	}

	var out bytes.Buffer
	printResults(&out, newPalette(false), res)

	text := out.String()
	assert.Contains(t, text, "Interview completed")
	assert.Contains(t, text, "Total: 3.4/30 (11%)  Average: 3.4  Time: 01:15")
	assert.Contains(t, text, res.Verdict())
	assert.Contains(t, text, "1. What is the DOM?")
	assert.Contains(t, text, "Your answer: A tree of nodes.")
	assert.Contains(t, text, "Score: 3.4/15")
	assert.NotContains(t, text, "\x1b[")
}

func TestPrintResultsWithoutAnswers(t *testing.T) {
	var out bytes.Buffer
	printResults(&out, newPalette(false), flow.Results{})
	assert.Contains(t, out.String(), "No answers were recorded.")
}

func TestPrintReview(t *testing.T) {
	var out bytes.Buffer
	printReview(&out, newPalette(false), &ai.Review{
		Summary:      "Good structure.",
		Strengths:    []string{"clarity"},
		Improvements: []string{"examples", "terminology"},
		Answers:      []ai.AnswerReview{{Index: 2, Suggestion: "Mention hooks."}},
	})

	want := "\nCoach review\nGood structure.\nStrengths:\n  - clarity\nTo improve:\n  - examples\n  - terminology\nQ2: Mention hooks.\n"
	assert.Equal(t, want, out.String())
}

func TestUtterance(t *testing.T) {
	assert.Equal(t, []string{"What is JSX?", "Tip: compare it with HTML"},
		utterance(questions.Question{Prompt: "What is JSX?", Tips: " compare it with HTML "}))
	assert.Equal(t, []string{"What is JSX?"}, utterance(questions.Question{Prompt: "What is JSX?"}))
}

func TestNewReviewerDisabled(t *testing.T) {
	config, err := decodeConfig(testViper(t, nil))
	require.NoError(t, err)

	reviewer, err := newReviewer(context.Background(), config, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, reviewer)
}

func TestNewReviewerRequiresKey(t *testing.T) {
	t.Setenv(geminiAPIKeyEnv, "")

	config, err := decodeConfig(testViper(t, map[string]any{"ai.enabled": true}))
	require.NoError(t, err)

	_, err = newReviewer(context.Background(), config, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), geminiAPIKeyEnv)
}

func TestQuestionFilter(t *testing.T) {
	filter, err := questionFilter("", "all")
	require.NoError(t, err)
	assert.Equal(t, questions.Filter{Technology: questions.TechnologyAll}, filter)

	filter, err = questionFilter("Advanced", "CSS")
	require.NoError(t, err)
	assert.Equal(t, questions.LevelAdvanced, filter.Level)

	_, err = questionFilter("guru", "all")
	require.Error(t, err)
}

func TestValidationHint(t *testing.T) {
	bank, err := questions.DefaultCV()
	require.NoError(t, err)
	w, err := flow.NewWizard(bank, flow.DefaultWizardConfig())
	require.NoError(t, err)

	p, ok := w.Current()
	require.True(t, ok)
	assert.Equal(t, errEmptyAnswer, validationHint(w, p))

	confirm := flow.Prompt{Kind: flow.ConfirmPrompt}
	assert.EqualError(t, validationHint(w, confirm), "please answer yes or no")

	picker, ok := bank.Get(flow.DefaultWizardConfig().PickerID)
	require.True(t, ok)
	hint := validationHint(w, flow.Prompt{Kind: flow.StaticPrompt, Question: picker})
	assert.Contains(t, hint.Error(), "Internships")
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	versionCmd.Run(versionCmd, nil)
	assert.Equal(t, "jobcoach version: unknown\n", out.String())
}
