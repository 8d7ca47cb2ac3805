package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/jobcoach/internal/ai"
	"github.com/spigell/jobcoach/internal/evaluator"
	"github.com/spigell/jobcoach/internal/flow"
	"github.com/spigell/jobcoach/internal/utils"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}

// Reviewer asks Gemini for coach feedback on interview answers.
type Reviewer struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

//go:embed prompt.md
var promptTemplate string

const defaultMaxLogLength = 200

// ErrNothingToReview is returned for results without answers.
var ErrNothingToReview = errors.New("no answers to review")

func NewReviewer(generator contentGenerator, logger *zap.Logger, maxLogLength int) *Reviewer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Reviewer{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

type answerPayload struct {
	Index      int     `json:"index"`
	Question   string  `json:"question"`
	Category   string  `json:"category,omitempty"`
	Technology string  `json:"technology,omitempty"`
	Level      string  `json:"level,omitempty"`
	Answer     string  `json:"answer"`
	Score      float64 `json:"score"`
}

func (r *Reviewer) Review(ctx context.Context, results flow.Results) (*ai.Review, error) {
	if len(results.Answers) == 0 {
		return nil, ErrNothingToReview
	}

	payload := make([]answerPayload, 0, len(results.Answers))
	for i, a := range results.Answers {
		payload = append(payload, answerPayload{
			Index:      i + 1,
			Question:   a.Question.Prompt,
			Category:   a.Question.Category,
			Technology: string(a.Question.Technology),
			Level:      string(a.Question.Level),
			Answer:     a.Response,
			Score:      a.Score,
		})
	}

	answersJSON, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal answers payload: %w", err)
	}

	prompt := buildPrompt(string(answersJSON), results.Percentage)

	r.logger.Debug("gemini generate content request",
		zap.Int("answers", len(payload)),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, r.maxLogLen)),
	)

	raw, err := r.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, r.maxLogLen)),
	)

	review, err := parseResponse(raw, len(payload))
	if err != nil {
		return nil, err
	}

	review.Raw = raw
	return review, nil
}

func buildPrompt(answersJSON string, percentage int) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Answers:\n{{ANSWERS_JSON}}\n\nJSON Response:"
	}
	prompt := strings.ReplaceAll(template, "{{ANSWERS_JSON}}", answersJSON)
	prompt = strings.ReplaceAll(prompt, "{{PERCENTAGE}}", strconv.Itoa(percentage))
	prompt = strings.ReplaceAll(prompt, "{{MAX_SCORE}}", evaluator.FormatScore(evaluator.MaxScore))
	return prompt
}

// parseResponse decodes the model reply. Per-answer entries with an index outside
// 1..answers are dropped.
func parseResponse(raw string, answers int) (*ai.Review, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	review := &ai.Review{
		Summary:      coerceString(data["summary"]),
		Strengths:    coerceStrings(data["strengths"]),
		Improvements: coerceStrings(data["improvements"]),
	}

	items, _ := data["answers"].([]any)
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		index := coerceFloat(entry["index"])
		if math.IsNaN(index) || index < 1 || int(index) > answers {
			continue
		}
		suggestion := coerceString(entry["suggestion"])
		if suggestion == "" {
			continue
		}
		review.Answers = append(review.Answers, ai.AnswerReview{Index: int(index), Suggestion: suggestion})
	}

	if review.Summary == "" && len(review.Answers) == 0 {
		return nil, errors.New("gemini response has no review content")
	}

	return review, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case nil:
		return ""
	default:
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}

func coerceStrings(v any) []string {
	switch val := v.(type) {
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s := coerceString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if s := strings.TrimSpace(val); s != "" {
			return []string{s}
		}
	}
	return nil
}
